package gen

import (
	"github.com/Mmx233/gwfixture/draw"
	"lukechampine.com/uint128"
)

// UniqueV4Cidrs returns up to count IPv4 blocks of the given prefix length,
// pairwise distinct by network address.
func UniqueV4Cidrs(d draw.Driver, count uint16, mask uint8) ([]string, error) {
	return uniqueCidrs(d, ipv4, count, mask)
}

// UniqueV6Cidrs is UniqueV4Cidrs for IPv6.
func UniqueV6Cidrs(d draw.Driver, count uint16, mask uint8) ([]string, error) {
	return uniqueCidrs(d, ipv6, count, mask)
}

// uniqueCidrs walks prefix identities upward from one random start. The
// all-zero identity is skipped, so at most 2^mask-1 blocks come out.
func uniqueCidrs(d draw.Driver, f family, count uint16, mask uint8) ([]string, error) {
	m := uint(mask)
	if m > f.bits {
		return nil, draw.ErrEmptyRange
	}
	if m == 0 && count > 0 {
		// only the default route exists, the draw keeps sequences aligned
		if _, err := draw.Uint128(d, draw.Included(f.seedMin), draw.Included(f.max)); err != nil {
			return nil, err
		}
		return []string{f.defaultRoute}, nil
	}

	n := uint64(count)
	if m < f.bits {
		available := uint128.From64(1).Lsh(m).Sub64(1)
		if available.Cmp64(n) < 0 {
			n = available.Lo
		}
	}

	seed, err := draw.Uint128(d, draw.Included(f.seedMin), draw.Included(f.max))
	if err != nil {
		return nil, err
	}
	shift := f.bits - m
	id := seed.Rsh(shift)
	idMask := f.max.Rsh(shift)

	cidrs := make([]string, 0, n)
	for range n {
		if id.And(idMask).IsZero() {
			id = uint128.From64(1)
		}
		cidrs = append(cidrs, f.cidr(id.Lsh(shift), m))
		id = id.AddWrap64(1)
	}
	return cidrs, nil
}
