// Package schema holds the gateway configuration and status records that
// fixtures are generated into. The records are plain data; enums serialize
// by name in both JSON and YAML.
package schema

import (
	"fmt"
)

func enumString(names []string, v int32) string {
	if v < 0 || int(v) >= len(names) {
		return fmt.Sprintf("%d", v)
	}
	return names[v]
}

func enumValid(names []string, v int32) bool {
	return v >= 0 && int(v) < len(names)
}

func enumMarshal(names []string, v int32) ([]byte, error) {
	if !enumValid(names, v) {
		return nil, fmt.Errorf("enum value %d out of range", v)
	}
	return []byte(names[v]), nil
}

func enumUnmarshal(names []string, text []byte) (int32, error) {
	s := string(text)
	for i, name := range names {
		if name == s {
			return int32(i), nil
		}
	}
	return 0, fmt.Errorf("unknown enum name %q", s)
}

type InterfaceOperStatus int32

const (
	InterfaceStatusUnknown InterfaceOperStatus = iota
	InterfaceStatusOperUp
	InterfaceStatusOperDown
	InterfaceStatusError
)

var interfaceOperStatusNames = []string{
	"INTERFACE_STATUS_UNKNOWN",
	"INTERFACE_STATUS_OPER_UP",
	"INTERFACE_STATUS_OPER_DOWN",
	"INTERFACE_STATUS_ERROR",
}

var InterfaceOperStatusVariants = []InterfaceOperStatus{
	InterfaceStatusUnknown, InterfaceStatusOperUp, InterfaceStatusOperDown, InterfaceStatusError,
}

func (s InterfaceOperStatus) String() string {
	return enumString(interfaceOperStatusNames, int32(s))
}
func (s InterfaceOperStatus) Valid() bool { return enumValid(interfaceOperStatusNames, int32(s)) }
func (s InterfaceOperStatus) MarshalText() ([]byte, error) {
	return enumMarshal(interfaceOperStatusNames, int32(s))
}
func (s *InterfaceOperStatus) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(interfaceOperStatusNames, text)
	*s = InterfaceOperStatus(v)
	return err
}

type InterfaceAdminStatus int32

const (
	InterfaceAdminStatusUnknown InterfaceAdminStatus = iota
	InterfaceAdminStatusUp
	InterfaceAdminStatusDown
)

var interfaceAdminStatusNames = []string{
	"INTERFACE_ADMIN_STATUS_UNKNOWN",
	"INTERFACE_ADMIN_STATUS_UP",
	"INTERFACE_ADMIN_STATUS_DOWN",
}

var InterfaceAdminStatusVariants = []InterfaceAdminStatus{
	InterfaceAdminStatusUnknown, InterfaceAdminStatusUp, InterfaceAdminStatusDown,
}

func (s InterfaceAdminStatus) String() string {
	return enumString(interfaceAdminStatusNames, int32(s))
}
func (s InterfaceAdminStatus) Valid() bool { return enumValid(interfaceAdminStatusNames, int32(s)) }
func (s InterfaceAdminStatus) MarshalText() ([]byte, error) {
	return enumMarshal(interfaceAdminStatusNames, int32(s))
}
func (s *InterfaceAdminStatus) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(interfaceAdminStatusNames, text)
	*s = InterfaceAdminStatus(v)
	return err
}

type ZebraStatus int32

const (
	ZebraStatusNotConnected ZebraStatus = iota
	ZebraStatusConnected
)

var zebraStatusNames = []string{"ZEBRA_STATUS_NOT_CONNECTED", "ZEBRA_STATUS_CONNECTED"}

var ZebraStatusVariants = []ZebraStatus{ZebraStatusNotConnected, ZebraStatusConnected}

func (s ZebraStatus) String() string { return enumString(zebraStatusNames, int32(s)) }
func (s ZebraStatus) Valid() bool    { return enumValid(zebraStatusNames, int32(s)) }
func (s ZebraStatus) MarshalText() ([]byte, error) {
	return enumMarshal(zebraStatusNames, int32(s))
}
func (s *ZebraStatus) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(zebraStatusNames, text)
	*s = ZebraStatus(v)
	return err
}

type FrrAgentStatus int32

const (
	FrrAgentStatusNotConnected FrrAgentStatus = iota
	FrrAgentStatusConnected
)

var frrAgentStatusNames = []string{"FRR_AGENT_STATUS_NOT_CONNECTED", "FRR_AGENT_STATUS_CONNECTED"}

var FrrAgentStatusVariants = []FrrAgentStatus{FrrAgentStatusNotConnected, FrrAgentStatusConnected}

func (s FrrAgentStatus) String() string { return enumString(frrAgentStatusNames, int32(s)) }
func (s FrrAgentStatus) Valid() bool    { return enumValid(frrAgentStatusNames, int32(s)) }
func (s FrrAgentStatus) MarshalText() ([]byte, error) {
	return enumMarshal(frrAgentStatusNames, int32(s))
}
func (s *FrrAgentStatus) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(frrAgentStatusNames, text)
	*s = FrrAgentStatus(v)
	return err
}

type DataplaneStatus int32

const (
	DataplaneStatusUnknown DataplaneStatus = iota
	DataplaneStatusHealthy
	DataplaneStatusInit
	DataplaneStatusError
)

var dataplaneStatusNames = []string{
	"DATAPLANE_STATUS_UNKNOWN",
	"DATAPLANE_STATUS_HEALTHY",
	"DATAPLANE_STATUS_INIT",
	"DATAPLANE_STATUS_ERROR",
}

var DataplaneStatusVariants = []DataplaneStatus{
	DataplaneStatusUnknown, DataplaneStatusHealthy, DataplaneStatusInit, DataplaneStatusError,
}

func (s DataplaneStatus) String() string { return enumString(dataplaneStatusNames, int32(s)) }
func (s DataplaneStatus) Valid() bool    { return enumValid(dataplaneStatusNames, int32(s)) }
func (s DataplaneStatus) MarshalText() ([]byte, error) {
	return enumMarshal(dataplaneStatusNames, int32(s))
}
func (s *DataplaneStatus) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(dataplaneStatusNames, text)
	*s = DataplaneStatus(v)
	return err
}

type BgpSessionState int32

const (
	BgpStateUnset BgpSessionState = iota
	BgpStateIdle
	BgpStateConnect
	BgpStateActive
	BgpStateOpen
	BgpStateEstablished
)

var bgpSessionStateNames = []string{
	"BGP_STATE_UNSET",
	"BGP_STATE_IDLE",
	"BGP_STATE_CONNECT",
	"BGP_STATE_ACTIVE",
	"BGP_STATE_OPEN",
	"BGP_STATE_ESTABLISHED",
}

var BgpSessionStateVariants = []BgpSessionState{
	BgpStateUnset, BgpStateIdle, BgpStateConnect, BgpStateActive, BgpStateOpen, BgpStateEstablished,
}

func (s BgpSessionState) String() string { return enumString(bgpSessionStateNames, int32(s)) }
func (s BgpSessionState) Valid() bool    { return enumValid(bgpSessionStateNames, int32(s)) }
func (s BgpSessionState) MarshalText() ([]byte, error) {
	return enumMarshal(bgpSessionStateNames, int32(s))
}
func (s *BgpSessionState) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(bgpSessionStateNames, text)
	*s = BgpSessionState(v)
	return err
}

type PacketDriver int32

const (
	PacketDriverKernel PacketDriver = iota
	PacketDriverDPDK
)

var packetDriverNames = []string{"KERNEL", "DPDK"}

var PacketDriverVariants = []PacketDriver{PacketDriverKernel, PacketDriverDPDK}

func (p PacketDriver) String() string { return enumString(packetDriverNames, int32(p)) }
func (p PacketDriver) Valid() bool    { return enumValid(packetDriverNames, int32(p)) }
func (p PacketDriver) MarshalText() ([]byte, error) {
	return enumMarshal(packetDriverNames, int32(p))
}
func (p *PacketDriver) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(packetDriverNames, text)
	*p = PacketDriver(v)
	return err
}

type LogLevel int32

const (
	LogLevelError LogLevel = iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

var logLevelNames = []string{"ERROR", "WARNING", "INFO", "DEBUG", "TRACE"}

var LogLevelVariants = []LogLevel{LogLevelError, LogLevelWarning, LogLevelInfo, LogLevelDebug, LogLevelTrace}

func (l LogLevel) String() string { return enumString(logLevelNames, int32(l)) }
func (l LogLevel) Valid() bool    { return enumValid(logLevelNames, int32(l)) }
func (l LogLevel) MarshalText() ([]byte, error) {
	return enumMarshal(logLevelNames, int32(l))
}
func (l *LogLevel) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(logLevelNames, text)
	*l = LogLevel(v)
	return err
}

type IfType int32

const (
	IfTypeEthernet IfType = iota
	IfTypeVlan
	IfTypeLoopback
	IfTypeVtep
)

var ifTypeNames = []string{"IF_TYPE_ETHERNET", "IF_TYPE_VLAN", "IF_TYPE_LOOPBACK", "IF_TYPE_VTEP"}

var IfTypeVariants = []IfType{IfTypeEthernet, IfTypeVlan, IfTypeLoopback, IfTypeVtep}

func (t IfType) String() string { return enumString(ifTypeNames, int32(t)) }
func (t IfType) Valid() bool    { return enumValid(ifTypeNames, int32(t)) }
func (t IfType) MarshalText() ([]byte, error) {
	return enumMarshal(ifTypeNames, int32(t))
}
func (t *IfType) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(ifTypeNames, text)
	*t = IfType(v)
	return err
}

type IfRole int32

const (
	IfRoleFabric IfRole = iota
	IfRoleExternal
)

var ifRoleNames = []string{"IF_ROLE_FABRIC", "IF_ROLE_EXTERNAL"}

var IfRoleVariants = []IfRole{IfRoleFabric, IfRoleExternal}

func (r IfRole) String() string { return enumString(ifRoleNames, int32(r)) }
func (r IfRole) Valid() bool    { return enumValid(ifRoleNames, int32(r)) }
func (r IfRole) MarshalText() ([]byte, error) {
	return enumMarshal(ifRoleNames, int32(r))
}
func (r *IfRole) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(ifRoleNames, text)
	*r = IfRole(v)
	return err
}

// ErrorCode is the outcome carried by an UpdateConfig response.
type ErrorCode int32

const (
	ErrorNone ErrorCode = iota
	ErrorValidationFailed
	ErrorApplyFailed
	ErrorUnknown
)

var errorCodeNames = []string{
	"ERROR_NONE",
	"ERROR_VALIDATION_FAILED",
	"ERROR_APPLY_FAILED",
	"ERROR_UNKNOWN_ERROR",
}

func (e ErrorCode) String() string { return enumString(errorCodeNames, int32(e)) }
func (e ErrorCode) Valid() bool    { return enumValid(errorCodeNames, int32(e)) }
func (e ErrorCode) MarshalText() ([]byte, error) {
	return enumMarshal(errorCodeNames, int32(e))
}
func (e *ErrorCode) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(errorCodeNames, text)
	*e = ErrorCode(v)
	return err
}
