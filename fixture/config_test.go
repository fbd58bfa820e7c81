package fixture

import (
	"errors"
	"net"
	"net/netip"
	"testing"

	"github.com/Mmx233/gwfixture/draw"
	"github.com/Mmx233/gwfixture/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
	"pgregory.net/rapid"
)

func checkExpose(t require.TestingT, e *schema.Expose) {
	require.NotEmpty(t, e.Ips)
	require.LessOrEqual(t, len(e.Ips), 10)

	var is4 *bool
	sameFamily := func(rules []schema.PeeringRule) {
		seen := make(map[netip.Prefix]bool, len(rules))
		for _, r := range rules {
			require.True(t, (r.Cidr == "") != (r.Not == ""), "exactly one of cidr/not: %+v", r)
			p, err := netip.ParsePrefix(r.Block())
			require.NoError(t, err)
			require.False(t, seen[p], "duplicate block %s", p)
			seen[p] = true
			v4 := p.Addr().Is4()
			if is4 == nil {
				is4 = &v4
			}
			require.Equal(t, *is4, v4, "mixed address families")
		}
	}
	sameFamily(e.Ips)
	sameFamily(e.As)

	if len(e.As) > 0 {
		require.NotNil(t, e.Nat)
		require.True(t, (e.Nat.Stateful == nil) != (e.Nat.Stateless == nil))
		if e.Nat.Stateful != nil {
			to := e.Nat.Stateful.IdleTimeout
			require.NotNil(t, to)
			require.GreaterOrEqual(t, to.GetSeconds(), int64(0))
			require.GreaterOrEqual(t, to.GetNanos(), int32(0))
			require.Less(t, to.GetNanos(), int32(1_000_000_000))
		}
	} else {
		require.Nil(t, e.Nat)
	}
}

// TestProperty_Expose_Invariants verifies family consistency, block
// uniqueness and that NAT is present exactly when translated blocks are.
func TestProperty_Expose_Invariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e, err := Expose(draw.NewRapid(t))
		if err != nil {
			t.Fatalf("Expose failed: %v", err)
		}
		checkExpose(t, e)
	})
}

func TestExpose_MoreThanOneBlock(t *testing.T) {
	var moreThanOne, withAs, withoutAs bool
	for seed := uint64(0); seed < 200; seed++ {
		e, err := Expose(draw.NewSeeded(seed))
		require.NoError(t, err)
		checkExpose(t, e)
		moreThanOne = moreThanOne || len(e.Ips) > 1
		if len(e.As) > 0 {
			withAs = true
		} else {
			withoutAs = true
		}
	}
	assert.True(t, moreThanOne)
	assert.True(t, withAs)
	assert.True(t, withoutAs)
}

func TestDevice(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		dev, err := Device(draw.NewSeeded(seed))
		require.NoError(t, err)
		assert.True(t, dev.Driver.Valid())
		assert.True(t, dev.Loglevel.Valid())
		assert.Regexp(t, `^[a-z0-9][a-z0-9-]{0,61}[a-z0-9]$`, dev.Hostname)
		require.NotNil(t, dev.Tracing)
		assert.Equal(t, schema.LogLevelWarning, dev.Tracing.Default)
	}
}

func TestUnderlay_UniqueAddresses(t *testing.T) {
	withMac, withoutMac := false, false
	for seed := uint64(0); seed < 100; seed++ {
		u, err := Underlay(draw.NewSeeded(seed))
		require.NoError(t, err)
		require.Len(t, u.Vrfs, 1)

		names := make(map[string]bool)
		addrs := make(map[netip.Addr]bool)
		for _, iface := range u.Vrfs[0].Interfaces {
			require.False(t, names[iface.Name], "duplicate interface %s", iface.Name)
			names[iface.Name] = true
			require.Len(t, iface.Ipaddrs, 1)
			p, err := netip.ParsePrefix(iface.Ipaddrs[0])
			require.NoError(t, err)
			require.False(t, addrs[p.Addr()], "duplicate address %s", p)
			addrs[p.Addr()] = true

			if iface.Macaddr == "" {
				withoutMac = true
				continue
			}
			withMac = true
			hw, err := net.ParseMAC(iface.Macaddr)
			require.NoError(t, err)
			assert.Zero(t, hw[0]&1, "multicast mac %s", iface.Macaddr)
		}
	}
	assert.True(t, withMac)
	assert.True(t, withoutMac)
}

// TestProperty_GatewayConfig_Valid verifies generated configs are accepted by
// the gateway-side validation.
func TestProperty_GatewayConfig_Valid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c, err := GatewayConfig(draw.NewRapid(t))
		if err != nil {
			t.Fatalf("GatewayConfig failed: %v", err)
		}
		if err := c.Validate(); err != nil {
			t.Fatalf("generated config is invalid: %v", err)
		}
		vnis := make(map[uint32]bool)
		for _, v := range c.Overlay.Vpcs {
			if vnis[v.Vni] {
				t.Fatalf("duplicate vni %d", v.Vni)
			}
			vnis[v.Vni] = true
		}
		for _, p := range c.Overlay.Peerings {
			for _, entry := range p.For {
				for i := range entry.Expose {
					checkExpose(t, &entry.Expose[i])
				}
			}
		}
	})
}

// TestGatewayConfig_Deterministic verifies that one seed always yields the
// same config.
func TestGatewayConfig_Deterministic(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		a, err := GatewayConfig(draw.NewSeeded(seed))
		require.NoError(t, err)
		b, err := GatewayConfig(draw.NewSeeded(seed))
		require.NoError(t, err)
		if diff := cmp.Diff(a, b, protocmp.Transform()); diff != "" {
			t.Fatalf("seed %d not deterministic (-first +second):\n%s", seed, diff)
		}
	}
}

// TestGatewayConfig_ReplayFromRecording verifies a recorded draw sequence
// reproduces the same fixture through the Bytes driver.
func TestGatewayConfig_ReplayFromRecording(t *testing.T) {
	rec := draw.NewRecorder(draw.NewSeeded(77))
	want, err := GatewayConfig(rec)
	require.NoError(t, err)

	got, err := GatewayConfig(draw.NewBytes(rec.Replay()))
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Fatalf("replay differs (-recorded +replayed):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	for _, kind := range Kinds() {
		g, err := Lookup(kind)
		require.NoError(t, err)
		v, err := g(draw.NewSeeded(1))
		require.NoError(t, err, kind)
		assert.NotNil(t, v, kind)
	}
	_, err := Lookup("nope")
	assert.Error(t, err)
}

func TestLookup_AddressKinds(t *testing.T) {
	for _, kind := range []string{"ip", "ipv4", "ipv6", "cidr", "cidr-v4", "cidr-v6"} {
		g, err := Lookup(kind)
		require.NoError(t, err)
		for seed := uint64(0); seed < 20; seed++ {
			v, err := g(draw.NewSeeded(seed))
			require.NoError(t, err, kind)
			s, ok := v.(string)
			require.True(t, ok, kind)
			switch kind {
			case "ipv4":
				assert.True(t, netip.MustParseAddr(s).Is4(), s)
			case "ipv6":
				assert.True(t, netip.MustParseAddr(s).Is6(), s)
			case "ip":
				_, err = netip.ParseAddr(s)
				assert.NoError(t, err, s)
			default:
				p, err := netip.ParsePrefix(s)
				require.NoError(t, err, s)
				assert.Equal(t, p.Masked(), p, s)
			}
		}
	}
}

func FuzzGatewayConfig(f *testing.F) {
	f.Add([]byte("gateway"))
	f.Fuzz(func(t *testing.T, data []byte) {
		c, err := GatewayConfig(draw.NewBytes(data))
		if errors.Is(err, draw.ErrExhausted) {
			return
		}
		require.NoError(t, err)
		require.NoError(t, c.Validate())
	})
}
