package gen

import (
	"math/bits"
	"net/netip"

	"github.com/Mmx233/gwfixture/draw"
	"lukechampine.com/uint128"
)

// UniqueV4HostAddrs returns exactly count IPv4 interface addresses, each in
// address/mask form with its own mask length. Addresses are pairwise
// distinct and never the network or broadcast address of their block unless
// the mask is /31 or /32.
func UniqueV4HostAddrs(d draw.Driver, count uint16) ([]string, error) {
	return uniqueHostAddrs(d, ipv4, count)
}

// UniqueV6HostAddrs is UniqueV4HostAddrs for IPv6, with /127 and /128 as the
// unrestricted masks.
func UniqueV6HostAddrs(d draw.Driver, count uint16) ([]string, error) {
	return uniqueHostAddrs(d, ipv6, count)
}

// PrefixBits is the number of leading bits the host allocator reserves so
// that count addresses each get their own prefix. Never below 1.
func PrefixBits(count uint16) uint {
	if count <= 1 {
		return 1
	}
	return uint(bits.Len16(count - 1))
}

// uniqueHostAddrs gives every address its own value in the top p bits, then
// fills the host part below the per-address mask. Masks are never shorter
// than p, so the host part can not reach into the reserved prefix.
func uniqueHostAddrs(d draw.Driver, f family, count uint16) ([]string, error) {
	if count == 0 {
		return []string{}, nil
	}
	p := PrefixBits(count)
	largest := uint128.From64(1).Lsh(p).Sub64(1)

	start := draw.Included(uint128.Zero)
	if f.nonZeroStart {
		start = draw.Excluded(uint128.Zero)
	}
	prefix, err := draw.Uint128(d, start, draw.Included(largest))
	if err != nil {
		return nil, err
	}

	addrs := make([]string, 0, count)
	for range count {
		maskLen, err := draw.Uint(d, draw.Included(p), draw.Included(f.bits))
		if err != nil {
			return nil, err
		}
		lo, hi := hostRange(f, maskLen)
		data, err := draw.Uint128(d, draw.Included(lo), draw.Included(hi))
		if err != nil {
			return nil, err
		}
		v := prefix.Lsh(f.bits - p).Or(data)
		addrs = append(addrs, netip.PrefixFrom(f.addr(v), int(maskLen)).String())

		prefix = prefix.Add64(1)
		if prefix.Cmp(largest) > 0 {
			prefix = uint128.Zero
		}
	}
	return addrs, nil
}

// hostRange is the legal host part for a mask: without the all-zero and
// all-ones values, except for point-to-point masks where both are usable and
// full-width masks where the host part is empty.
func hostRange(f family, maskLen uint) (lo, hi uint128.Uint128) {
	if maskLen == f.bits {
		return uint128.Zero, uint128.Zero
	}
	hi = f.max.Rsh(maskLen)
	if maskLen >= f.bits-1 {
		return uint128.Zero, hi
	}
	return uint128.From64(1), hi.Sub64(1)
}
