package schema

import (
	"errors"
	"fmt"

	"github.com/Mmx233/gwfixture/duration"
	"google.golang.org/protobuf/types/known/durationpb"
)

type TracingTagConfig struct {
	Tag      string   `json:"tag" yaml:"tag"`
	Loglevel LogLevel `json:"loglevel" yaml:"loglevel"`
}

type TracingConfig struct {
	Default   LogLevel           `json:"default" yaml:"default"`
	TagConfig []TracingTagConfig `json:"tagconfig,omitempty" yaml:"tagconfig,omitempty"`
}

type Device struct {
	Driver   PacketDriver   `json:"driver" yaml:"driver"`
	Hostname string         `json:"hostname" yaml:"hostname"`
	Loglevel LogLevel       `json:"loglevel" yaml:"loglevel"`
	Tracing  *TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`
}

type InterfaceConfig struct {
	Name    string   `json:"name" yaml:"name"`
	Ipaddrs []string `json:"ipaddrs" yaml:"ipaddrs"`
	Type    IfType   `json:"type" yaml:"type"`
	Role    IfRole   `json:"role" yaml:"role"`
	Mtu     uint32   `json:"mtu,omitempty" yaml:"mtu,omitempty"`
	Macaddr string   `json:"macaddr,omitempty" yaml:"macaddr,omitempty"`
}

type Vrf struct {
	Name       string            `json:"name" yaml:"name"`
	Interfaces []InterfaceConfig `json:"interfaces" yaml:"interfaces"`
}

type Underlay struct {
	Vrfs []Vrf `json:"vrf" yaml:"vrf"`
}

// PeeringRule either includes (Cidr) or excludes (Not) one block. Exactly one
// of the two is set.
type PeeringRule struct {
	Cidr string `json:"cidr,omitempty" yaml:"cidr,omitempty"`
	Not  string `json:"not,omitempty" yaml:"not,omitempty"`
}

// Block returns whichever of Cidr and Not is set.
func (r PeeringRule) Block() string {
	if r.Not != "" {
		return r.Not
	}
	return r.Cidr
}

type StatefulNat struct {
	IdleTimeout *durationpb.Duration `json:"idle_timeout,omitempty" yaml:"idle_timeout,omitempty"`
}

type StatelessNat struct{}

// Nat holds exactly one of its two modes.
type Nat struct {
	Stateful  *StatefulNat  `json:"stateful,omitempty" yaml:"stateful,omitempty"`
	Stateless *StatelessNat `json:"stateless,omitempty" yaml:"stateless,omitempty"`
}

// Expose lists the blocks a VPC exposes to a peer. As and Nat are set
// together: As holds the translated blocks, Nat how they are translated.
type Expose struct {
	Ips []PeeringRule `json:"ips" yaml:"ips"`
	As  []PeeringRule `json:"as,omitempty" yaml:"as,omitempty"`
	Nat *Nat          `json:"nat,omitempty" yaml:"nat,omitempty"`
}

type PeeringEntry struct {
	Vpc    string   `json:"vpc" yaml:"vpc"`
	Expose []Expose `json:"expose" yaml:"expose"`
}

type VpcPeering struct {
	Name string         `json:"name" yaml:"name"`
	For  []PeeringEntry `json:"for" yaml:"for"`
}

type Vpc struct {
	Name       string            `json:"name" yaml:"name"`
	ID         string            `json:"id" yaml:"id"`
	Vni        uint32            `json:"vni" yaml:"vni"`
	Interfaces []InterfaceConfig `json:"interfaces" yaml:"interfaces"`
}

type Overlay struct {
	Vpcs     []Vpc        `json:"vpcs" yaml:"vpcs"`
	Peerings []VpcPeering `json:"peerings" yaml:"peerings"`
}

type GatewayConfig struct {
	Generation int64     `json:"generation" yaml:"generation"`
	Device     *Device   `json:"device,omitempty" yaml:"device,omitempty"`
	Underlay   *Underlay `json:"underlay,omitempty" yaml:"underlay,omitempty"`
	Overlay    *Overlay  `json:"overlay,omitempty" yaml:"overlay,omitempty"`
}

var (
	ErrMissingDevice   = errors.New("missing device configuration")
	ErrMissingUnderlay = errors.New("missing underlay configuration")
	ErrMissingOverlay  = errors.New("missing overlay configuration")
)

// Validate checks the sections a gateway refuses to apply a config without,
// and that every peering references a VPC of the overlay.
func (c *GatewayConfig) Validate() error {
	if c.Device == nil {
		return ErrMissingDevice
	}
	if c.Underlay == nil {
		return ErrMissingUnderlay
	}
	if c.Overlay == nil {
		return ErrMissingOverlay
	}
	if c.Device.Hostname == "" {
		return errors.New("device hostname is required")
	}
	vpcs := make(map[string]struct{}, len(c.Overlay.Vpcs))
	for _, v := range c.Overlay.Vpcs {
		if _, ok := vpcs[v.Name]; ok {
			return fmt.Errorf("duplicate vpc %q", v.Name)
		}
		vpcs[v.Name] = struct{}{}
	}
	for _, p := range c.Overlay.Peerings {
		for _, e := range p.For {
			if _, ok := vpcs[e.Vpc]; !ok {
				return fmt.Errorf("peering %q references unknown vpc %q", p.Name, e.Vpc)
			}
			for i, exp := range e.Expose {
				if err := exp.validateNat(); err != nil {
					return fmt.Errorf("peering %q vpc %q expose %d: %w", p.Name, e.Vpc, i, err)
				}
			}
		}
	}
	return nil
}

// validateNat rejects idle timeouts that do not normalize to a non-negative duration.
func (e Expose) validateNat() error {
	if e.Nat == nil || e.Nat.Stateful == nil {
		return nil
	}
	if _, err := duration.FromProto(e.Nat.Stateful.IdleTimeout); err != nil {
		return fmt.Errorf("nat idle timeout: %w", err)
	}
	return nil
}
