package schema

type InterfaceStatus struct {
	Ifname      string               `json:"ifname" yaml:"ifname"`
	OperStatus  InterfaceOperStatus  `json:"oper_status" yaml:"oper_status"`
	AdminStatus InterfaceAdminStatus `json:"admin_status" yaml:"admin_status"`
}

type FrrStatus struct {
	ZebraStatus      ZebraStatus    `json:"zebra_status" yaml:"zebra_status"`
	FrrAgentStatus   FrrAgentStatus `json:"frr_agent_status" yaml:"frr_agent_status"`
	AppliedConfigGen int64          `json:"applied_config_gen" yaml:"applied_config_gen"`
	Restarts         uint32         `json:"restarts" yaml:"restarts"`
	AppliedConfigs   uint32         `json:"applied_configs" yaml:"applied_configs"`
	FailedConfigs    uint32         `json:"failed_configs" yaml:"failed_configs"`
}

type DataplaneStatusInfo struct {
	Status DataplaneStatus `json:"status" yaml:"status"`
}

type InterfaceCounters struct {
	TxBits   uint64  `json:"tx_bits" yaml:"tx_bits"`
	TxBps    float64 `json:"tx_bps" yaml:"tx_bps"`
	TxErrors uint64  `json:"tx_errors" yaml:"tx_errors"`
	RxBits   uint64  `json:"rx_bits" yaml:"rx_bits"`
	RxBps    float64 `json:"rx_bps" yaml:"rx_bps"`
	RxErrors uint64  `json:"rx_errors" yaml:"rx_errors"`
}

type InterfaceRuntimeStatus struct {
	AdminStatus InterfaceAdminStatus `json:"admin_status" yaml:"admin_status"`
	OperStatus  InterfaceOperStatus  `json:"oper_status" yaml:"oper_status"`
	Mac         string               `json:"mac" yaml:"mac"`
	Mtu         uint32               `json:"mtu" yaml:"mtu"`
	Counters    *InterfaceCounters   `json:"counters,omitempty" yaml:"counters,omitempty"`
}

type BgpMessageCounters struct {
	Capability   uint64 `json:"capability" yaml:"capability"`
	Keepalive    uint64 `json:"keepalive" yaml:"keepalive"`
	Notification uint64 `json:"notification" yaml:"notification"`
	Open         uint64 `json:"open" yaml:"open"`
	RouteRefresh uint64 `json:"route_refresh" yaml:"route_refresh"`
	Update       uint64 `json:"update" yaml:"update"`
}

type BgpMessages struct {
	Received *BgpMessageCounters `json:"received,omitempty" yaml:"received,omitempty"`
	Sent     *BgpMessageCounters `json:"sent,omitempty" yaml:"sent,omitempty"`
}

// BgpNeighborPrefixes counts prefixes for one address family. Received never
// exceeds ReceivedPrePolicy.
type BgpNeighborPrefixes struct {
	Received          uint32 `json:"received" yaml:"received"`
	ReceivedPrePolicy uint32 `json:"received_pre_policy" yaml:"received_pre_policy"`
	Sent              uint32 `json:"sent" yaml:"sent"`
}

type BgpNeighborStatus struct {
	Enabled                bool                 `json:"enabled" yaml:"enabled"`
	LocalAs                uint32               `json:"local_as" yaml:"local_as"`
	PeerAs                 uint32               `json:"peer_as" yaml:"peer_as"`
	PeerPort               uint32               `json:"peer_port" yaml:"peer_port"`
	PeerGroup              string               `json:"peer_group" yaml:"peer_group"`
	RemoteRouterID         string               `json:"remote_router_id" yaml:"remote_router_id"`
	SessionState           BgpSessionState      `json:"session_state" yaml:"session_state"`
	ConnectionsDropped     uint64               `json:"connections_dropped" yaml:"connections_dropped"`
	EstablishedTransitions uint64               `json:"established_transitions" yaml:"established_transitions"`
	LastResetReason        string               `json:"last_reset_reason" yaml:"last_reset_reason"`
	Messages               *BgpMessages         `json:"messages,omitempty" yaml:"messages,omitempty"`
	Ipv4UnicastPrefixes    *BgpNeighborPrefixes `json:"ipv4_unicast_prefixes,omitempty" yaml:"ipv4_unicast_prefixes,omitempty"`
	Ipv6UnicastPrefixes    *BgpNeighborPrefixes `json:"ipv6_unicast_prefixes,omitempty" yaml:"ipv6_unicast_prefixes,omitempty"`
	L2vpnEvpnPrefixes      *BgpNeighborPrefixes `json:"l2vpn_evpn_prefixes,omitempty" yaml:"l2vpn_evpn_prefixes,omitempty"`
}

// BgpVrfStatus maps neighbor address to its status.
type BgpVrfStatus struct {
	Neighbors map[string]BgpNeighborStatus `json:"neighbors" yaml:"neighbors"`
}

// BgpStatus maps VRF name to its status.
type BgpStatus struct {
	Vrfs map[string]BgpVrfStatus `json:"vrfs" yaml:"vrfs"`
}

type VpcInterfaceStatus struct {
	Ifname      string               `json:"ifname" yaml:"ifname"`
	AdminStatus InterfaceAdminStatus `json:"admin_status" yaml:"admin_status"`
	OperStatus  InterfaceOperStatus  `json:"oper_status" yaml:"oper_status"`
}

type VpcStatus struct {
	ID         string                        `json:"id" yaml:"id"`
	Name       string                        `json:"name" yaml:"name"`
	Vni        uint32                        `json:"vni" yaml:"vni"`
	RouteCount uint32                        `json:"route_count" yaml:"route_count"`
	Interfaces map[string]VpcInterfaceStatus `json:"interfaces" yaml:"interfaces"`
}

type VpcPeeringCounters struct {
	Name    string  `json:"name" yaml:"name"`
	SrcVpc  string  `json:"src_vpc" yaml:"src_vpc"`
	DstVpc  string  `json:"dst_vpc" yaml:"dst_vpc"`
	Packets uint64  `json:"packets" yaml:"packets"`
	Bytes   uint64  `json:"bytes" yaml:"bytes"`
	Drops   uint64  `json:"drops" yaml:"drops"`
	Pps     float64 `json:"pps" yaml:"pps"`
	Bps     float64 `json:"bps" yaml:"bps"`
}

type VpcCounters struct {
	Name    string `json:"name" yaml:"name"`
	Packets uint64 `json:"packets" yaml:"packets"`
	Drops   uint64 `json:"drops" yaml:"drops"`
	Bytes   uint64 `json:"bytes" yaml:"bytes"`
}

// DataplaneStatusSnapshot is the answer to a GetDataplaneStatus request.
// Every name-keyed map uses the name carried by its value as the key.
type DataplaneStatusSnapshot struct {
	InterfaceStatuses  []InterfaceStatus                 `json:"interface_statuses" yaml:"interface_statuses"`
	FrrStatus          *FrrStatus                        `json:"frr_status,omitempty" yaml:"frr_status,omitempty"`
	DataplaneStatus    *DataplaneStatusInfo              `json:"dataplane_status,omitempty" yaml:"dataplane_status,omitempty"`
	InterfaceRuntime   map[string]InterfaceRuntimeStatus `json:"interface_runtime" yaml:"interface_runtime"`
	Bgp                *BgpStatus                        `json:"bgp,omitempty" yaml:"bgp,omitempty"`
	Vpcs               map[string]VpcStatus              `json:"vpcs" yaml:"vpcs"`
	VpcPeeringCounters map[string]VpcPeeringCounters     `json:"vpc_peering_counters" yaml:"vpc_peering_counters"`
	VpcCounters        map[string]VpcCounters            `json:"vpc_counters" yaml:"vpc_counters"`
}
