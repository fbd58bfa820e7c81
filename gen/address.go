package gen

import (
	"fmt"
	"net/netip"

	"github.com/Mmx233/gwfixture/draw"
	"lukechampine.com/uint128"
)

// family describes one address family. Both are handled with 128-bit
// arithmetic; IPv4 simply uses the low 32 bits.
type family struct {
	bits         uint
	max          uint128.Uint128
	defaultRoute string
	// lowest value a block allocator seed may take
	seedMin uint128.Uint128
	// host allocator start prefix excludes zero
	nonZeroStart bool
}

var (
	ipv4 = family{
		bits:         32,
		max:          uint128.From64(0xffff_ffff),
		defaultRoute: "0.0.0.0/0",
		seedMin:      uint128.From64(0x1000_0000),
	}
	ipv6 = family{
		bits:         128,
		max:          uint128.Max,
		defaultRoute: "::/0",
		seedMin:      uint128.From64(1),
		nonZeroStart: true,
	}
)

func (f family) addr(v uint128.Uint128) netip.Addr {
	if f.bits == 32 {
		u := uint32(v.Lo)
		return netip.AddrFrom4([4]byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)})
	}
	var b [16]byte
	v.PutBytesBE(b[:])
	return netip.AddrFrom16(b)
}

// cidr formats v/mask with the host bits cleared.
func (f family) cidr(v uint128.Uint128, mask uint) string {
	return netip.PrefixFrom(f.addr(v), int(mask)).Masked().String()
}

// IPv4Addr draws an address in [16.0.0.0, 255.255.255.255).
func IPv4Addr(d draw.Driver) (string, error) {
	v, err := draw.Uint(d, draw.Included[uint32](0x1000_0000), draw.Excluded[uint32](0xffff_ffff))
	if err != nil {
		return "", err
	}
	return ipv4.addr(uint128.From64(uint64(v))).String(), nil
}

// IPv6Addr draws any address except :: and the all-ones address.
func IPv6Addr(d draw.Driver) (string, error) {
	v, err := draw.Uint128(d, draw.Included(uint128.From64(1)), draw.Excluded(uint128.Max))
	if err != nil {
		return "", err
	}
	return ipv6.addr(v).String(), nil
}

// IPAddr flips a coin between IPv4Addr and IPv6Addr.
func IPAddr(d draw.Driver) (string, error) {
	v4, err := draw.Bool(d)
	if err != nil {
		return "", err
	}
	if v4 {
		return IPv4Addr(d)
	}
	return IPv6Addr(d)
}

// V4Cidr draws a mask in [0, 32] and an address, then clears the host bits.
func V4Cidr(d draw.Driver) (string, error) {
	mask, err := draw.Uint(d, draw.Included[uint](0), draw.Included[uint](32))
	if err != nil {
		return "", err
	}
	v, err := draw.Uint(d, draw.Included[uint64](0), draw.Included[uint64](0xffff_ffff))
	if err != nil {
		return "", err
	}
	return ipv4.cidr(uint128.From64(v), mask), nil
}

// V6Cidr draws a mask in [0, 128] and an address, then clears the host bits.
func V6Cidr(d draw.Driver) (string, error) {
	mask, err := draw.Uint(d, draw.Included[uint](0), draw.Included[uint](128))
	if err != nil {
		return "", err
	}
	v, err := draw.Uint128(d, draw.Included(uint128.Zero), draw.Included(uint128.Max))
	if err != nil {
		return "", err
	}
	return ipv6.cidr(v, mask), nil
}

// Cidr flips a coin between V4Cidr and V6Cidr.
func Cidr(d draw.Driver) (string, error) {
	v4, err := draw.Bool(d)
	if err != nil {
		return "", err
	}
	if v4 {
		return V4Cidr(d)
	}
	return V6Cidr(d)
}

// MAC draws a unicast MAC address in lower-case hex. The drawn value starts
// at 2 so clearing the multicast bit can never yield all zeros.
func MAC(d draw.Driver) (string, error) {
	v, err := draw.Uint(d, draw.Included[uint64](2), draw.Excluded[uint64](0xffff_ffff_ffff))
	if err != nil {
		return "", err
	}
	v &= 0xffff_ffff_fffe
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24), byte(v>>32), byte(v>>40)), nil
}

// LocalMAC draws a locally administered MAC address of the form
// 02:xx:xx:xx:xx:xx.
func LocalMAC(d draw.Driver) (string, error) {
	var octets [5]uint8
	for i := range octets {
		o, err := draw.Uint(d, draw.Included[uint8](0), draw.Included[uint8](255))
		if err != nil {
			return "", err
		}
		octets[i] = o
	}
	return fmt.Sprintf("02:%02x:%02x:%02x:%02x:%02x",
		octets[0], octets[1], octets[2], octets[3], octets[4]), nil
}
