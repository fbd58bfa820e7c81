package fixture

import (
	"strconv"

	"github.com/Mmx233/gwfixture/draw"
	"github.com/Mmx233/gwfixture/duration"
	"github.com/Mmx233/gwfixture/gen"
	"github.com/Mmx233/gwfixture/schema"
)

const (
	maxVni         = 16_777_215
	maxVpcs        = 4
	maxUnderlayIfs = 4
	maxExposeRules = 10
)

// TracingConfig is fixed and consumes no draws.
func TracingConfig(draw.Driver) (*schema.TracingConfig, error) {
	return &schema.TracingConfig{Default: schema.LogLevelWarning}, nil
}

// Device draws the packet driver, a k8s-style hostname and a log level.
func Device(d draw.Driver) (*schema.Device, error) {
	var (
		dev schema.Device
		err error
	)
	if dev.Driver, err = gen.Enum(d, schema.PacketDriverVariants); err != nil {
		return nil, err
	}
	if dev.Hostname, err = gen.K8sObjectName(d); err != nil {
		return nil, err
	}
	if dev.Loglevel, err = gen.Enum(d, schema.LogLevelVariants); err != nil {
		return nil, err
	}
	if dev.Tracing, err = TracingConfig(d); err != nil {
		return nil, err
	}
	return &dev, nil
}

// StatefulNat draws a canonical idle timeout that fits the wire duration.
func StatefulNat(d draw.Driver) (*schema.StatefulNat, error) {
	seconds, err := draw.Uint(d, draw.Included[uint64](0), draw.Included[uint64](maxInt64))
	if err != nil {
		return nil, err
	}
	nanos, err := draw.Uint(d, draw.Included[uint32](0), draw.Included[uint32](999_999_999))
	if err != nil {
		return nil, err
	}
	timeout, err := duration.Canonical{Seconds: seconds, Nanos: nanos}.Proto()
	if err != nil {
		return nil, err
	}
	return &schema.StatefulNat{IdleTimeout: timeout}, nil
}

// Nat flips between stateless and stateful translation.
func Nat(d draw.Driver) (*schema.Nat, error) {
	stateful, err := draw.Bool(d)
	if err != nil {
		return nil, err
	}
	if !stateful {
		return &schema.Nat{Stateless: &schema.StatelessNat{}}, nil
	}
	s, err := StatefulNat(d)
	if err != nil {
		return nil, err
	}
	return &schema.Nat{Stateful: s}, nil
}

func peeringRules(d draw.Driver, cidrs []string) ([]schema.PeeringRule, error) {
	rules := make([]schema.PeeringRule, 0, len(cidrs))
	for _, cidr := range cidrs {
		not, err := draw.Bool(d)
		if err != nil {
			return nil, err
		}
		if not {
			rules = append(rules, schema.PeeringRule{Not: cidr})
		} else {
			rules = append(rules, schema.PeeringRule{Cidr: cidr})
		}
	}
	return rules, nil
}

// Expose draws one address family for all of its blocks. The exposed blocks
// and the translated ones come from two separate allocator runs with the
// same count and prefix length.
func Expose(d draw.Driver) (*schema.Expose, error) {
	v4, err := draw.Bool(d)
	if err != nil {
		return nil, err
	}
	n, err := draw.Uint(d, draw.Included[uint16](1), draw.Included[uint16](maxExposeRules))
	if err != nil {
		return nil, err
	}
	v4Mask, err := draw.Uint(d, draw.Included[uint8](8), draw.Included[uint8](32))
	if err != nil {
		return nil, err
	}
	v6Mask, err := draw.Uint(d, draw.Included[uint8](16), draw.Included[uint8](128))
	if err != nil {
		return nil, err
	}
	blocks := func() ([]string, error) {
		if v4 {
			return gen.UniqueV4Cidrs(d, n, v4Mask)
		}
		return gen.UniqueV6Cidrs(d, n, v6Mask)
	}

	cidrs, err := blocks()
	if err != nil {
		return nil, err
	}
	var e schema.Expose
	if e.Ips, err = peeringRules(d, cidrs); err != nil {
		return nil, err
	}

	hasAs, err := draw.Bool(d)
	if err != nil {
		return nil, err
	}
	if !hasAs {
		return &e, nil
	}
	if e.Nat, err = Nat(d); err != nil {
		return nil, err
	}
	if cidrs, err = blocks(); err != nil {
		return nil, err
	}
	if e.As, err = peeringRules(d, cidrs); err != nil {
		return nil, err
	}
	return &e, nil
}

// Underlay has a single default VRF whose interfaces carry one host address
// each, all from one allocator run so no two interfaces share an address.
func Underlay(d draw.Driver) (*schema.Underlay, error) {
	n, err := draw.Int(d, draw.Included(1), draw.Included(maxUnderlayIfs))
	if err != nil {
		return nil, err
	}
	names, err := gen.IfNames(d, n)
	if err != nil {
		return nil, err
	}
	v4, err := draw.Bool(d)
	if err != nil {
		return nil, err
	}
	var addrs []string
	if v4 {
		addrs, err = gen.UniqueV4HostAddrs(d, uint16(n))
	} else {
		addrs, err = gen.UniqueV6HostAddrs(d, uint16(n))
	}
	if err != nil {
		return nil, err
	}

	ifs := make([]schema.InterfaceConfig, 0, n)
	for i, name := range names {
		role, err := gen.Enum(d, schema.IfRoleVariants)
		if err != nil {
			return nil, err
		}
		mtu, err := u32(d, 576, 9216)
		if err != nil {
			return nil, err
		}
		mac, err := gen.Optional(d, func() (string, error) { return gen.MAC(d) })
		if err != nil {
			return nil, err
		}
		iface := schema.InterfaceConfig{
			Name:    name,
			Ipaddrs: []string{addrs[i]},
			Type:    schema.IfTypeEthernet,
			Role:    role,
			Mtu:     mtu,
		}
		if mac != nil {
			iface.Macaddr = *mac
		}
		ifs = append(ifs, iface)
	}
	return &schema.Underlay{Vrfs: []schema.Vrf{{Name: "default", Interfaces: ifs}}}, nil
}

// Overlay draws up to four VPCs with distinct names and VNIs, and chains
// neighbouring VPCs with peerings.
func Overlay(d draw.Driver) (*schema.Overlay, error) {
	n, err := count(d, maxVpcs)
	if err != nil {
		return nil, err
	}
	names, err := gen.UniqueSlice(n, func() (string, error) { return gen.K8sObjectName(d) },
		func(s string) string { return s })
	if err != nil {
		return nil, err
	}
	baseVni, err := u32(d, 1, maxVni-maxVpcs)
	if err != nil {
		return nil, err
	}

	o := schema.Overlay{Vpcs: make([]schema.Vpc, 0, len(names)), Peerings: []schema.VpcPeering{}}
	for i, name := range names {
		id, err := u32(d, 1, 10_000)
		if err != nil {
			return nil, err
		}
		o.Vpcs = append(o.Vpcs, schema.Vpc{
			Name:       name,
			ID:         "id-" + strconv.FormatUint(uint64(id), 10),
			Vni:        baseVni + uint32(i),
			Interfaces: []schema.InterfaceConfig{},
		})
	}

	if len(o.Vpcs) < 2 {
		return &o, nil
	}
	np, err := count(d, len(o.Vpcs)-1)
	if err != nil {
		return nil, err
	}
	for i := range np {
		p, err := Peering(d, o.Vpcs[i].Name, o.Vpcs[i+1].Name)
		if err != nil {
			return nil, err
		}
		o.Peerings = append(o.Peerings, *p)
	}
	return &o, nil
}

// Peering connects two VPCs, each side exposing one or two sets of blocks.
func Peering(d draw.Driver, a, b string) (*schema.VpcPeering, error) {
	p := schema.VpcPeering{Name: a + "--" + b}
	for _, vpc := range []string{a, b} {
		n, err := draw.Int(d, draw.Included(1), draw.Included(2))
		if err != nil {
			return nil, err
		}
		entry := schema.PeeringEntry{Vpc: vpc, Expose: make([]schema.Expose, 0, n)}
		for range n {
			e, err := Expose(d)
			if err != nil {
				return nil, err
			}
			entry.Expose = append(entry.Expose, *e)
		}
		p.For = append(p.For, entry)
	}
	return &p, nil
}

// GatewayConfig always carries the device, underlay and overlay sections, so
// the result passes GatewayConfig.Validate.
func GatewayConfig(d draw.Driver) (*schema.GatewayConfig, error) {
	var (
		c   schema.GatewayConfig
		err error
	)
	if c.Generation, err = draw.Int(d, draw.Included[int64](1), draw.Included[int64](1_000_000)); err != nil {
		return nil, err
	}
	if c.Device, err = Device(d); err != nil {
		return nil, err
	}
	if c.Underlay, err = Underlay(d); err != nil {
		return nil, err
	}
	if c.Overlay, err = Overlay(d); err != nil {
		return nil, err
	}
	return &c, nil
}
