// Package draw defines the bounded random source every generator consumes.
//
// A Driver hands out integers inside an inclusive range and booleans. It may
// run dry, in which case it returns ErrExhausted and the whole generation call
// produces no value.
package draw

import (
	"errors"
	"math"

	"lukechampine.com/uint128"
)

var (
	// ErrExhausted is returned once a driver has no more draws to give.
	ErrExhausted = errors.New("draw source exhausted")

	// ErrEmptyRange is returned when the resolved range holds no value.
	ErrEmptyRange = errors.New("empty draw range")
)

// Driver supplies bounded random values.
type Driver interface {
	// Uint64 returns a value in [lo, hi]. Callers guarantee lo <= hi.
	Uint64(lo, hi uint64) (uint64, error)
	// Bool returns a fair coin flip.
	Bool() (bool, error)
}

// Bound is one end of a draw range.
type Bound[T any] struct {
	Value     T
	Exclusive bool
}

// Included returns an inclusive bound.
func Included[T any](v T) Bound[T] {
	return Bound[T]{Value: v}
}

// Excluded returns an exclusive bound.
func Excluded[T any](v T) Bound[T] {
	return Bound[T]{Value: v, Exclusive: true}
}

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Uint draws an unsigned integer between lo and hi.
func Uint[T Unsigned](d Driver, lo, hi Bound[T]) (T, error) {
	l, h := uint64(lo.Value), uint64(hi.Value)
	if lo.Exclusive {
		if l == math.MaxUint64 {
			return 0, ErrEmptyRange
		}
		l++
	}
	if hi.Exclusive {
		if h == 0 {
			return 0, ErrEmptyRange
		}
		h--
	}
	if l > h {
		return 0, ErrEmptyRange
	}
	v, err := d.Uint64(l, h)
	if err != nil {
		return 0, err
	}
	return T(v), nil
}

// Int draws a signed integer between lo and hi.
func Int[T Signed](d Driver, lo, hi Bound[T]) (T, error) {
	l, h := int64(lo.Value), int64(hi.Value)
	if lo.Exclusive {
		if l == math.MaxInt64 {
			return 0, ErrEmptyRange
		}
		l++
	}
	if hi.Exclusive {
		if h == math.MinInt64 {
			return 0, ErrEmptyRange
		}
		h--
	}
	if l > h {
		return 0, ErrEmptyRange
	}
	// two's complement span, exact even for [MinInt64, MaxInt64]
	span := uint64(h) - uint64(l)
	off, err := d.Uint64(0, span)
	if err != nil {
		return 0, err
	}
	return T(int64(uint64(l) + off)), nil
}

// Uint128 draws a 128-bit unsigned integer between lo and hi. Spans that fit
// in 64 bits take a single draw, wider spans take two.
func Uint128(d Driver, lo, hi Bound[uint128.Uint128]) (uint128.Uint128, error) {
	l, h := lo.Value, hi.Value
	if lo.Exclusive {
		if l.Equals(uint128.Max) {
			return uint128.Zero, ErrEmptyRange
		}
		l = l.Add64(1)
	}
	if hi.Exclusive {
		if h.IsZero() {
			return uint128.Zero, ErrEmptyRange
		}
		h = h.Sub64(1)
	}
	if l.Cmp(h) > 0 {
		return uint128.Zero, ErrEmptyRange
	}
	span := h.Sub(l)
	var hiWord uint64
	if span.Hi != 0 {
		var err error
		if hiWord, err = d.Uint64(0, span.Hi); err != nil {
			return uint128.Zero, err
		}
	}
	loMax := uint64(math.MaxUint64)
	if hiWord == span.Hi {
		loMax = span.Lo
	}
	loWord, err := d.Uint64(0, loMax)
	if err != nil {
		return uint128.Zero, err
	}
	return l.Add(uint128.New(loWord, hiWord)), nil
}

// Index draws a uniform index into a collection of n elements.
func Index(d Driver, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyRange
	}
	return Int(d, Included(0), Excluded(n))
}

// Bool draws a coin flip.
func Bool(d Driver) (bool, error) {
	return d.Bool()
}
