package gen

import (
	"github.com/Mmx233/gwfixture/draw"
)

// MaxEntryAttempts bounds how often a single map entry is regenerated after
// its key collided with one already present.
const MaxEntryAttempts = 20

// Optional generates the inner value first and then chooses between it and
// absent. A failing inner generator fails the whole call.
func Optional[T any](d draw.Driver, gen func() (T, error)) (*T, error) {
	v, err := gen()
	if err != nil {
		return nil, err
	}
	present, err := Choose(d, []bool{true, false})
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return &v, nil
}

// UniqueEntries builds a map of up to n entries keyed by key(value). An entry
// whose key is taken is regenerated, at most MaxEntryAttempts times; when the
// attempts run out the entry is skipped and the map comes out smaller.
func UniqueEntries[K comparable, V any](n int, gen func() (V, error), key func(V) K) (map[K]V, error) {
	out := make(map[K]V, n)
	for range n {
		for range MaxEntryAttempts {
			v, err := gen()
			if err != nil {
				return nil, err
			}
			k := key(v)
			if _, ok := out[k]; ok {
				continue
			}
			out[k] = v
			break
		}
	}
	return out, nil
}

// UniqueSlice is UniqueEntries for results that keep generation order.
func UniqueSlice[K comparable, V any](n int, gen func() (V, error), key func(V) K) ([]V, error) {
	seen := make(map[K]struct{}, n)
	out := make([]V, 0, n)
	for range n {
		for range MaxEntryAttempts {
			v, err := gen()
			if err != nil {
				return nil, err
			}
			k := key(v)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, v)
			break
		}
	}
	return out, nil
}

// SaturatingMul returns a*b, or the maximum uint64 on overflow.
func SaturatingMul(a, b uint64) uint64 {
	if a != 0 && b > ^uint64(0)/a {
		return ^uint64(0)
	}
	return a * b
}
