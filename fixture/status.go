// Package fixture assembles gateway configuration and status records from a
// draw.Driver. Fields are generated in declaration order and any draw error
// aborts the whole record.
package fixture

import (
	"fmt"
	"strconv"

	"github.com/Mmx233/gwfixture/draw"
	"github.com/Mmx233/gwfixture/gen"
	"github.com/Mmx233/gwfixture/schema"
)

func u64(d draw.Driver, lo, hi uint64) (uint64, error) {
	return draw.Uint(d, draw.Included(lo), draw.Included(hi))
}

func u32(d draw.Driver, lo, hi uint32) (uint32, error) {
	return draw.Uint(d, draw.Included(lo), draw.Included(hi))
}

func count(d draw.Driver, hi int) (int, error) {
	return draw.Int(d, draw.Included(0), draw.Included(hi))
}

// InterfaceStatus draws an interface name with its oper and admin status.
func InterfaceStatus(d draw.Driver) (*schema.InterfaceStatus, error) {
	name, err := gen.IfName(d)
	if err != nil {
		return nil, err
	}
	oper, err := gen.Enum(d, schema.InterfaceOperStatusVariants)
	if err != nil {
		return nil, err
	}
	admin, err := gen.Enum(d, schema.InterfaceAdminStatusVariants)
	if err != nil {
		return nil, err
	}
	return &schema.InterfaceStatus{Ifname: name, OperStatus: oper, AdminStatus: admin}, nil
}

// FrrStatus draws agent state with a restart count skewed toward low values.
func FrrStatus(d draw.Driver) (*schema.FrrStatus, error) {
	restarts, err := gen.Skewed(d, gen.RestartTiers)
	if err != nil {
		return nil, err
	}
	s := schema.FrrStatus{Restarts: uint32(restarts)}
	if s.ZebraStatus, err = gen.Enum(d, schema.ZebraStatusVariants); err != nil {
		return nil, err
	}
	if s.FrrAgentStatus, err = gen.Enum(d, schema.FrrAgentStatusVariants); err != nil {
		return nil, err
	}
	if s.AppliedConfigGen, err = draw.Int(d, draw.Included[int64](minInt64), draw.Included[int64](maxInt64)); err != nil {
		return nil, err
	}
	if s.AppliedConfigs, err = u32(d, 0, maxUint32); err != nil {
		return nil, err
	}
	if s.FailedConfigs, err = u32(d, 0, maxUint32); err != nil {
		return nil, err
	}
	return &s, nil
}

// DataplaneStatusInfo draws one of the dataplane health states.
func DataplaneStatusInfo(d draw.Driver) (*schema.DataplaneStatusInfo, error) {
	status, err := gen.Enum(d, schema.DataplaneStatusVariants)
	if err != nil {
		return nil, err
	}
	return &schema.DataplaneStatusInfo{Status: status}, nil
}

// InterfaceCounters draws traffic and error counters with whole-number rates.
func InterfaceCounters(d draw.Driver) (*schema.InterfaceCounters, error) {
	var (
		c   schema.InterfaceCounters
		err error
	)
	if c.RxBits, err = u64(d, 0, 10_000_000); err != nil {
		return nil, err
	}
	if c.TxBits, err = u64(d, 0, 10_000_000); err != nil {
		return nil, err
	}
	if c.RxErrors, err = u64(d, 0, 10_000); err != nil {
		return nil, err
	}
	if c.TxErrors, err = u64(d, 0, 10_000); err != nil {
		return nil, err
	}
	rxBps, err := u64(d, 0, 5_000_000)
	if err != nil {
		return nil, err
	}
	txBps, err := u64(d, 0, 5_000_000)
	if err != nil {
		return nil, err
	}
	c.RxBps, c.TxBps = float64(rxBps), float64(txBps)
	return &c, nil
}

// InterfaceRuntimeStatus draws runtime state with a locally administered MAC
// and counters that may be absent.
func InterfaceRuntimeStatus(d draw.Driver) (*schema.InterfaceRuntimeStatus, error) {
	mtu, err := u32(d, 576, 9216)
	if err != nil {
		return nil, err
	}
	counters, err := gen.Optional(d, deref(d, InterfaceCounters))
	if err != nil {
		return nil, err
	}
	admin, err := gen.Enum(d, schema.InterfaceAdminStatusVariants)
	if err != nil {
		return nil, err
	}
	oper, err := gen.Enum(d, schema.InterfaceOperStatusVariants)
	if err != nil {
		return nil, err
	}
	mac, err := gen.LocalMAC(d)
	if err != nil {
		return nil, err
	}
	return &schema.InterfaceRuntimeStatus{
		AdminStatus: admin,
		OperStatus:  oper,
		Mac:         mac,
		Mtu:         mtu,
		Counters:    counters,
	}, nil
}

// BgpMessageCounters draws one counter per BGP message type.
func BgpMessageCounters(d draw.Driver) (*schema.BgpMessageCounters, error) {
	var (
		c   schema.BgpMessageCounters
		err error
	)
	if c.Capability, err = u64(d, 0, 10_000); err != nil {
		return nil, err
	}
	if c.Keepalive, err = u64(d, 0, 10_000); err != nil {
		return nil, err
	}
	if c.Notification, err = u64(d, 0, 1_000); err != nil {
		return nil, err
	}
	if c.Open, err = u64(d, 0, 5_000); err != nil {
		return nil, err
	}
	if c.RouteRefresh, err = u64(d, 0, 5_000); err != nil {
		return nil, err
	}
	if c.Update, err = u64(d, 0, 50_000); err != nil {
		return nil, err
	}
	return &c, nil
}

// BgpMessages draws received and sent counters independently.
func BgpMessages(d draw.Driver) (*schema.BgpMessages, error) {
	received, err := BgpMessageCounters(d)
	if err != nil {
		return nil, err
	}
	sent, err := BgpMessageCounters(d)
	if err != nil {
		return nil, err
	}
	return &schema.BgpMessages{Received: received, Sent: sent}, nil
}

// BgpNeighborPrefixes draws the pre-policy count first so the accepted count
// can be bounded by it.
func BgpNeighborPrefixes(d draw.Driver) (*schema.BgpNeighborPrefixes, error) {
	pre, err := u32(d, 0, 50_000)
	if err != nil {
		return nil, err
	}
	received, err := u32(d, 0, pre)
	if err != nil {
		return nil, err
	}
	sent, err := u32(d, 0, 50_000)
	if err != nil {
		return nil, err
	}
	return &schema.BgpNeighborPrefixes{Received: received, ReceivedPrePolicy: pre, Sent: sent}, nil
}

func routerID(d draw.Driver) (string, error) {
	var o [4]uint8
	bounds := [4][2]uint8{{1, 254}, {0, 255}, {0, 255}, {1, 254}}
	for i, b := range bounds {
		v, err := draw.Uint(d, draw.Included(b[0]), draw.Included(b[1]))
		if err != nil {
			return "", err
		}
		o[i] = v
	}
	return fmt.Sprintf("%d.%d.%d.%d", o[0], o[1], o[2], o[3]), nil
}

// BgpNeighborStatus draws the session of one neighbor with prefix counts
// for every address family.
func BgpNeighborStatus(d draw.Driver) (*schema.BgpNeighborStatus, error) {
	var (
		s   = schema.BgpNeighborStatus{LastResetReason: "test"}
		err error
	)
	if s.PeerPort, err = u32(d, 1, 65535); err != nil {
		return nil, err
	}
	if s.LocalAs, err = u32(d, 1, 65534); err != nil {
		return nil, err
	}
	if s.PeerAs, err = u32(d, 1, 65534); err != nil {
		return nil, err
	}
	if s.Enabled, err = draw.Bool(d); err != nil {
		return nil, err
	}
	group, err := u32(d, 0, 1000)
	if err != nil {
		return nil, err
	}
	s.PeerGroup = "grp" + strconv.FormatUint(uint64(group), 10)
	if s.RemoteRouterID, err = routerID(d); err != nil {
		return nil, err
	}
	if s.SessionState, err = gen.Enum(d, schema.BgpSessionStateVariants); err != nil {
		return nil, err
	}
	if s.ConnectionsDropped, err = u64(d, 0, 1000); err != nil {
		return nil, err
	}
	if s.EstablishedTransitions, err = u64(d, 0, 1000); err != nil {
		return nil, err
	}
	if s.Messages, err = BgpMessages(d); err != nil {
		return nil, err
	}
	if s.Ipv4UnicastPrefixes, err = BgpNeighborPrefixes(d); err != nil {
		return nil, err
	}
	if s.Ipv6UnicastPrefixes, err = BgpNeighborPrefixes(d); err != nil {
		return nil, err
	}
	if s.L2vpnEvpnPrefixes, err = BgpNeighborPrefixes(d); err != nil {
		return nil, err
	}
	return &s, nil
}

// deref adapts a record generator to the value form the gen helpers take.
func deref[T any](d draw.Driver, g func(draw.Driver) (*T, error)) func() (T, error) {
	return func() (T, error) {
		v, err := g(d)
		if err != nil {
			var zero T
			return zero, err
		}
		return *v, nil
	}
}

type keyed[V any] struct {
	key   string
	value V
}

func neighborAddr(d draw.Driver) (string, error) {
	var o [3]uint8
	bounds := [3][2]uint8{{0, 255}, {0, 255}, {1, 254}}
	for i, b := range bounds {
		v, err := draw.Uint(d, draw.Included(b[0]), draw.Included(b[1]))
		if err != nil {
			return "", err
		}
		o[i] = v
	}
	return fmt.Sprintf("10.%d.%d.%d", o[0], o[1], o[2]), nil
}

// BgpVrfStatus holds up to four neighbors keyed by their 10.0.0.0/8 address.
func BgpVrfStatus(d draw.Driver) (*schema.BgpVrfStatus, error) {
	n, err := count(d, 4)
	if err != nil {
		return nil, err
	}
	entries, err := gen.UniqueEntries(n, func() (keyed[schema.BgpNeighborStatus], error) {
		addr, err := neighborAddr(d)
		if err != nil {
			return keyed[schema.BgpNeighborStatus]{}, err
		}
		s, err := BgpNeighborStatus(d)
		if err != nil {
			return keyed[schema.BgpNeighborStatus]{}, err
		}
		return keyed[schema.BgpNeighborStatus]{key: addr, value: *s}, nil
	}, func(e keyed[schema.BgpNeighborStatus]) string { return e.key })
	if err != nil {
		return nil, err
	}
	neighbors := make(map[string]schema.BgpNeighborStatus, len(entries))
	for k, e := range entries {
		neighbors[k] = e.value
	}
	return &schema.BgpVrfStatus{Neighbors: neighbors}, nil
}

// BgpStatus holds up to three VRFs: default, vrf1 and vrf2.
func BgpStatus(d draw.Driver) (*schema.BgpStatus, error) {
	n, err := count(d, 3)
	if err != nil {
		return nil, err
	}
	vrfs := make(map[string]schema.BgpVrfStatus, n)
	for i := range n {
		name := "default"
		if i > 0 {
			name = "vrf" + strconv.Itoa(i)
		}
		v, err := BgpVrfStatus(d)
		if err != nil {
			return nil, err
		}
		vrfs[name] = *v
	}
	return &schema.BgpStatus{Vrfs: vrfs}, nil
}

// VpcInterfaceStatus draws one interface attached to a VPC.
func VpcInterfaceStatus(d draw.Driver) (*schema.VpcInterfaceStatus, error) {
	name, err := gen.IfName(d)
	if err != nil {
		return nil, err
	}
	admin, err := gen.Enum(d, schema.InterfaceAdminStatusVariants)
	if err != nil {
		return nil, err
	}
	oper, err := gen.Enum(d, schema.InterfaceOperStatusVariants)
	if err != nil {
		return nil, err
	}
	return &schema.VpcInterfaceStatus{Ifname: name, AdminStatus: admin, OperStatus: oper}, nil
}

func vpcName(d draw.Driver, hi uint32) (string, error) {
	n, err := u32(d, 1, hi)
	if err != nil {
		return "", err
	}
	return "vpc-" + strconv.FormatUint(uint64(n), 10), nil
}

// VpcStatus draws a VPC with up to four interfaces keyed by name.
func VpcStatus(d draw.Driver) (*schema.VpcStatus, error) {
	var (
		s   schema.VpcStatus
		err error
	)
	if s.Name, err = vpcName(d, 128); err != nil {
		return nil, err
	}
	id, err := u32(d, 1, 10_000)
	if err != nil {
		return nil, err
	}
	s.ID = "id-" + strconv.FormatUint(uint64(id), 10)
	if s.Vni, err = u32(d, 1, 16_777_215); err != nil {
		return nil, err
	}
	if s.RouteCount, err = u32(d, 0, 50_000); err != nil {
		return nil, err
	}
	n, err := count(d, 4)
	if err != nil {
		return nil, err
	}
	s.Interfaces, err = gen.UniqueEntries(n, deref(d, VpcInterfaceStatus), func(v schema.VpcInterfaceStatus) string { return v.Ifname })
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// VpcPeeringCounters orders the two VPCs by name and derives bytes from
// packets, saturating at the maximum counter value.
func VpcPeeringCounters(d draw.Driver) (*schema.VpcPeeringCounters, error) {
	a, err := vpcName(d, 64)
	if err != nil {
		return nil, err
	}
	b, err := vpcName(d, 64)
	if err != nil {
		return nil, err
	}
	if a > b {
		a, b = b, a
	}
	packets, err := u64(d, 0, 10_000_000)
	if err != nil {
		return nil, err
	}
	drops, err := u64(d, 0, packets)
	if err != nil {
		return nil, err
	}
	pps, err := u64(d, 0, 100_000)
	if err != nil {
		return nil, err
	}
	bps, err := u64(d, 0, 5_000_000)
	if err != nil {
		return nil, err
	}
	return &schema.VpcPeeringCounters{
		Name:    a + "--" + b,
		SrcVpc:  a,
		DstVpc:  b,
		Packets: packets,
		Bytes:   gen.SaturatingMul(packets, bytesPerPacket),
		Drops:   drops,
		Pps:     float64(pps),
		Bps:     float64(bps),
	}, nil
}

// VpcCounters draws per-VPC packet counters. Drops never exceed packets.
func VpcCounters(d draw.Driver) (*schema.VpcCounters, error) {
	name, err := vpcName(d, 128)
	if err != nil {
		return nil, err
	}
	packets, err := u64(d, 0, 100_000_000)
	if err != nil {
		return nil, err
	}
	drops, err := u64(d, 0, packets)
	if err != nil {
		return nil, err
	}
	return &schema.VpcCounters{
		Name:    name,
		Packets: packets,
		Drops:   drops,
		Bytes:   gen.SaturatingMul(packets, bytesPerPacket),
	}, nil
}

// DataplaneStatus generates a full status snapshot.
func DataplaneStatus(d draw.Driver) (*schema.DataplaneStatusSnapshot, error) {
	var (
		s   schema.DataplaneStatusSnapshot
		err error
	)
	n, err := count(d, maxInterfaceStatuses)
	if err != nil {
		return nil, err
	}
	s.InterfaceStatuses, err = gen.UniqueSlice(n, deref(d, InterfaceStatus), func(v schema.InterfaceStatus) string { return v.Ifname })
	if err != nil {
		return nil, err
	}

	s.FrrStatus, err = gen.Optional(d, deref(d, FrrStatus))
	if err != nil {
		return nil, err
	}
	s.DataplaneStatus, err = gen.Optional(d, deref(d, DataplaneStatusInfo))
	if err != nil {
		return nil, err
	}

	if s.InterfaceRuntime, err = interfaceRuntime(d, s.InterfaceStatuses); err != nil {
		return nil, err
	}

	s.Bgp, err = gen.Optional(d, deref(d, BgpStatus))
	if err != nil {
		return nil, err
	}

	if n, err = count(d, 4); err != nil {
		return nil, err
	}
	s.Vpcs, err = gen.UniqueEntries(n, deref(d, VpcStatus), func(v schema.VpcStatus) string { return v.Name })
	if err != nil {
		return nil, err
	}

	if n, err = count(d, 6); err != nil {
		return nil, err
	}
	s.VpcPeeringCounters, err = gen.UniqueEntries(n, deref(d, VpcPeeringCounters), func(v schema.VpcPeeringCounters) string { return v.Name })
	if err != nil {
		return nil, err
	}

	if n, err = count(d, 4); err != nil {
		return nil, err
	}
	s.VpcCounters, err = gen.UniqueEntries(n, deref(d, VpcCounters), func(v schema.VpcCounters) string { return v.Name })
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// interfaceRuntime covers the first target names of the reported interfaces
// followed by up to two interfaces that are not reported.
func interfaceRuntime(d draw.Driver, statuses []schema.InterfaceStatus) (map[string]schema.InterfaceRuntimeStatus, error) {
	target, err := count(d, len(statuses)+2)
	if err != nil {
		return nil, err
	}
	pool := make([]string, 0, len(statuses)+2)
	for _, s := range statuses {
		pool = append(pool, s.Ifname)
	}
	extra, err := count(d, 2)
	if err != nil {
		return nil, err
	}
	for range extra {
		i, err := u32(d, 0, 9999)
		if err != nil {
			return nil, err
		}
		pool = append(pool, "if"+strconv.FormatUint(uint64(i), 10))
	}

	runtime := make(map[string]schema.InterfaceRuntimeStatus, target)
	for _, name := range pool[:min(target, len(pool))] {
		v, err := InterfaceRuntimeStatus(d)
		if err != nil {
			return nil, err
		}
		runtime[name] = *v
	}
	return runtime, nil
}
