package draw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
	"pgregory.net/rapid"
)

func TestUint_BoundsRespected_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Uint32().Draw(t, "lo")
		hi := rapid.Uint32Min(lo).Draw(t, "hi")
		d := NewRapid(t)

		v, err := Uint(d, Included(lo), Included(hi))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v < lo || v > hi {
			t.Fatalf("value %d outside [%d, %d]", v, lo, hi)
		}
	})
}

func TestUint_ExclusiveEnds(t *testing.T) {
	d := NewSeeded(1)
	for i := 0; i < 1000; i++ {
		v, err := Uint(d, Excluded[uint8](0), Excluded[uint8](3))
		require.NoError(t, err)
		assert.Contains(t, []uint8{1, 2}, v)
	}
}

func TestUint_EmptyRange(t *testing.T) {
	d := NewSeeded(1)

	_, err := Uint(d, Included[uint32](5), Excluded[uint32](5))
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = Uint(d, Excluded[uint64](math.MaxUint64), Included[uint64](math.MaxUint64))
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = Uint(d, Included[uint16](0), Excluded[uint16](0))
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestInt_FullRange(t *testing.T) {
	d := NewSeeded(7)
	sawNegative, sawPositive := false, false
	for i := 0; i < 1000; i++ {
		v, err := Int(d, Included[int64](math.MinInt64), Included[int64](math.MaxInt64))
		require.NoError(t, err)
		if v < 0 {
			sawNegative = true
		} else {
			sawPositive = true
		}
	}
	assert.True(t, sawNegative)
	assert.True(t, sawPositive)
}

func TestInt_BoundsRespected_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Int32().Draw(t, "lo")
		hi := rapid.Int32Min(lo).Draw(t, "hi")

		v, err := Int(NewRapid(t), Included(lo), Included(hi))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v < lo || v > hi {
			t.Fatalf("value %d outside [%d, %d]", v, lo, hi)
		}
	})
}

func TestUint128_BoundsRespected_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := uint128.New(rapid.Uint64().Draw(t, "lo.lo"), rapid.Uint64().Draw(t, "lo.hi"))
		hi := uint128.New(rapid.Uint64().Draw(t, "hi.lo"), rapid.Uint64().Draw(t, "hi.hi"))
		if lo.Cmp(hi) > 0 {
			lo, hi = hi, lo
		}

		v, err := Uint128(NewRapid(t), Included(lo), Included(hi))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
			t.Fatalf("value %s outside [%s, %s]", v, lo, hi)
		}
	})
}

func TestUint128_ExcludedZero(t *testing.T) {
	d := NewSeeded(3)
	for i := 0; i < 100; i++ {
		v, err := Uint128(d, Excluded(uint128.Zero), Included(uint128.From64(1)))
		require.NoError(t, err)
		assert.True(t, v.Equals64(1))
	}
}

func TestIndex(t *testing.T) {
	d := NewSeeded(11)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		idx, err := Index(d, 4)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 4)
		seen[idx] = true
	}
	assert.Len(t, seen, 4)

	_, err := Index(d, 0)
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestSeeded_Deterministic(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 100; i++ {
		va, _ := a.Uint64(0, 1000)
		vb, _ := b.Uint64(0, 1000)
		require.Equal(t, va, vb)
	}
	assert.Equal(t, uint64(42), a.Seed())
}

func TestBytes_Exhaustion(t *testing.T) {
	d := NewBytes([]byte{0x01, 0x02})

	v, err := d.Uint64(0, 255)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	b, err := d.Bool()
	require.NoError(t, err)
	assert.False(t, b)

	_, err = d.Uint64(0, 255)
	assert.ErrorIs(t, err, ErrExhausted)
	_, err = d.Bool()
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestBytes_SingleValueRangeConsumesNothing(t *testing.T) {
	d := NewBytes(nil)
	v, err := d.Uint64(9, 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), v)
}

func TestBytes_PartialWordExhausts(t *testing.T) {
	d := NewBytes([]byte{0xff, 0xff, 0xff})
	_, err := d.Uint64(0, math.MaxUint32)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 0, d.Remaining())
}

func TestLimit(t *testing.T) {
	d := Limit(NewSeeded(1), 2)
	_, err := d.Uint64(0, 10)
	require.NoError(t, err)
	_, err = d.Bool()
	require.NoError(t, err)
	assert.Equal(t, 0, d.Left())

	_, err = d.Uint64(0, 10)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestRecorder_ReplayReproducesDraws_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		n := rapid.IntRange(1, 50).Draw(t, "n")

		rec := NewRecorder(NewSeeded(seed))
		var ranges [][2]uint64
		var want []uint64
		for i := 0; i < n; i++ {
			lo := rapid.Uint64().Draw(t, "lo")
			hi := rapid.Uint64Min(lo).Draw(t, "hi")
			v, err := rec.Uint64(lo, hi)
			if err != nil {
				t.Fatalf("record: %v", err)
			}
			ranges = append(ranges, [2]uint64{lo, hi})
			want = append(want, v)
		}

		replay := NewBytes(rec.Replay())
		for i, r := range ranges {
			got, err := replay.Uint64(r[0], r[1])
			if err != nil {
				t.Fatalf("replay draw %d: %v", i, err)
			}
			if got != want[i] {
				t.Fatalf("replay draw %d: got %d, want %d", i, got, want[i])
			}
		}
		if replay.Remaining() != 0 {
			t.Fatalf("replay left %d unread bytes", replay.Remaining())
		}
	})
}
