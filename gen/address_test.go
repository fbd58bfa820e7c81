package gen

import (
	"net/netip"
	"regexp"
	"testing"

	"github.com/Mmx233/gwfixture/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestProperty_IPAddr_Parses(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, err := IPAddr(draw.NewRapid(t))
		if err != nil {
			t.Fatalf("IPAddr failed: %v", err)
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			t.Fatalf("unparsable address %q: %v", s, err)
		}
		if addr.IsUnspecified() {
			t.Fatalf("unspecified address %q", s)
		}
	})
}

func TestIPv4Addr_LowerBound(t *testing.T) {
	d := draw.NewSeeded(9)
	for i := 0; i < 1000; i++ {
		s, err := IPv4Addr(d)
		require.NoError(t, err)
		addr := netip.MustParseAddr(s)
		require.True(t, addr.Is4())
		assert.GreaterOrEqual(t, addr.As4()[0], byte(0x10))
		assert.NotEqual(t, "255.255.255.255", s)
	}
}

// TestProperty_Cidr_HostBitsCleared verifies that every generated block is
// already in its masked form.
func TestProperty_Cidr_HostBitsCleared(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, err := Cidr(draw.NewRapid(t))
		if err != nil {
			t.Fatalf("Cidr failed: %v", err)
		}
		p, err := netip.ParsePrefix(s)
		if err != nil {
			t.Fatalf("unparsable prefix %q: %v", s, err)
		}
		if p.Masked() != p {
			t.Fatalf("prefix %q has host bits set", s)
		}
	})
}

func TestProperty_MAC_Unicast(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{2}(:[0-9a-f]{2}){5}$`)
	rapid.Check(t, func(t *rapid.T) {
		mac, err := MAC(draw.NewRapid(t))
		if err != nil {
			t.Fatalf("MAC failed: %v", err)
		}
		if !re.MatchString(mac) {
			t.Fatalf("malformed MAC %q", mac)
		}
		if mac == "00:00:00:00:00:00" {
			t.Fatal("all-zero MAC")
		}
	})
}

func TestLocalMAC_Prefix(t *testing.T) {
	re := regexp.MustCompile(`^02(:[0-9a-f]{2}){5}$`)
	d := draw.NewSeeded(2)
	for i := 0; i < 100; i++ {
		mac, err := LocalMAC(d)
		require.NoError(t, err)
		assert.Regexp(t, re, mac)
	}
}
