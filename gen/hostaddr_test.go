package gen

import (
	"net/netip"
	"testing"

	"github.com/Mmx233/gwfixture/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
	"pgregory.net/rapid"
)

func addrValue(a netip.Addr) uint128.Uint128 {
	if a.Is4() {
		b := a.As4()
		return uint128.From64(uint64(b[0])<<24 | uint64(b[1])<<16 | uint64(b[2])<<8 | uint64(b[3]))
	}
	b := a.As16()
	return uint128.FromBytesBE(b[:])
}

func checkHostAddrs(t require.TestingT, addrs []string, count, width int) {
	require.Len(t, addrs, count)
	maxValue := uint128.Max.Rsh(uint(128 - width))

	seen := make(map[netip.Addr]bool, count)
	for _, s := range addrs {
		p, err := netip.ParsePrefix(s)
		require.NoError(t, err, s)
		require.Equal(t, width, p.Addr().BitLen(), s)
		require.LessOrEqual(t, p.Bits(), width, s)
		require.False(t, seen[p.Addr()], "duplicate address %s", s)
		seen[p.Addr()] = true

		if p.Bits() < width-1 {
			host := addrValue(p.Addr()).And(maxValue.Rsh(uint(p.Bits())))
			require.False(t, host.IsZero(), "network address %s", s)
			require.False(t, host.Equals(maxValue.Rsh(uint(p.Bits()))), "broadcast address %s", s)
		}
	}
}

func TestUniqueV4HostAddrs_Counts(t *testing.T) {
	for _, count := range []uint16{0, 1, 2, 10, 16, 17, 100, 1000} {
		for seed := uint64(0); seed < 50; seed++ {
			addrs, err := UniqueV4HostAddrs(draw.NewSeeded(seed), count)
			require.NoError(t, err)
			checkHostAddrs(t, addrs, int(count), 32)
		}
	}
}

func TestUniqueV6HostAddrs_Counts(t *testing.T) {
	for _, count := range []uint16{0, 1, 2, 10, 16, 17, 100, 1000} {
		for seed := uint64(0); seed < 50; seed++ {
			addrs, err := UniqueV6HostAddrs(draw.NewSeeded(seed), count)
			require.NoError(t, err)
			checkHostAddrs(t, addrs, int(count), 128)
		}
	}
}

// TestProperty_UniqueV4HostAddrs verifies exact count, distinctness and the
// network/broadcast rule for arbitrary counts.
func TestProperty_UniqueV4HostAddrs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 4096).Draw(t, "count")
		addrs, err := UniqueV4HostAddrs(draw.NewRapid(t), uint16(count))
		if err != nil {
			t.Fatalf("UniqueV4HostAddrs failed: %v", err)
		}
		checkHostAddrs(t, addrs, count, 32)
	})
}

func TestProperty_UniqueV6HostAddrs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 4096).Draw(t, "count")
		addrs, err := UniqueV6HostAddrs(draw.NewRapid(t), uint16(count))
		if err != nil {
			t.Fatalf("UniqueV6HostAddrs failed: %v", err)
		}
		checkHostAddrs(t, addrs, count, 128)
	})
}

func TestUniqueHostAddrs_ZeroCountDrawsNothing(t *testing.T) {
	d := draw.Limit(draw.NewSeeded(1), 0)
	addrs, err := UniqueV6HostAddrs(d, 0)
	require.NoError(t, err)
	assert.Empty(t, addrs)
}

func TestPrefixBits(t *testing.T) {
	cases := map[uint16]uint{
		1:     1,
		2:     1,
		3:     2,
		4:     2,
		10:    4,
		16:    4,
		17:    5,
		65535: 16,
	}
	for count, want := range cases {
		assert.Equal(t, want, PrefixBits(count), "count=%d", count)
	}
}

func TestHostRange(t *testing.T) {
	lo, hi := hostRange(ipv4, 24)
	assert.True(t, lo.Equals64(1))
	assert.True(t, hi.Equals64(254))

	lo, hi = hostRange(ipv4, 31)
	assert.True(t, lo.IsZero())
	assert.True(t, hi.Equals64(1))

	lo, hi = hostRange(ipv4, 32)
	assert.True(t, lo.IsZero())
	assert.True(t, hi.IsZero())

	lo, hi = hostRange(ipv6, 127)
	assert.True(t, lo.IsZero())
	assert.True(t, hi.Equals64(1))
}
