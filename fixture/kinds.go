package fixture

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Mmx233/gwfixture/draw"
	"github.com/Mmx233/gwfixture/gen"
)

// Generator produces one fixture record of some kind.
type Generator func(draw.Driver) (any, error)

func erase[T any](g func(draw.Driver) (*T, error)) Generator {
	return func(d draw.Driver) (any, error) {
		v, err := g(d)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func scalar[T any](g func(draw.Driver) (T, error)) Generator {
	return func(d draw.Driver) (any, error) {
		v, err := g(d)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

var kinds = map[string]Generator{
	"status":            erase(DataplaneStatus),
	"config":            erase(GatewayConfig),
	"interface-status":  erase(InterfaceStatus),
	"interface-runtime": erase(InterfaceRuntimeStatus),
	"frr":               erase(FrrStatus),
	"bgp":               erase(BgpStatus),
	"bgp-neighbor":      erase(BgpNeighborStatus),
	"vpc-status":        erase(VpcStatus),
	"vpc-peering":       erase(VpcPeeringCounters),
	"vpc-counters":      erase(VpcCounters),
	"device":            erase(Device),
	"underlay":          erase(Underlay),
	"overlay":           erase(Overlay),
	"expose":            erase(Expose),
	"nat":               erase(Nat),

	"ip":      scalar(gen.IPAddr),
	"ipv4":    scalar(gen.IPv4Addr),
	"ipv6":    scalar(gen.IPv6Addr),
	"cidr":    scalar(gen.Cidr),
	"cidr-v4": scalar(gen.V4Cidr),
	"cidr-v6": scalar(gen.V6Cidr),
	"mac":     scalar(gen.MAC),
}

// Lookup returns the generator registered for kind.
func Lookup(kind string) (Generator, error) {
	g, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown fixture kind %q (known: %s)", kind, strings.Join(Kinds(), ", "))
	}
	return g, nil
}

// Kinds lists the registered fixture kinds in sorted order.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
