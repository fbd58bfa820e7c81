package config

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func TestAddressFormatValidation_Property(t *testing.T) {
	validAddressGen := rapid.Custom(func(t *rapid.T) string {
		hostType := rapid.IntRange(0, 2).Draw(t, "hostType")
		var host string
		switch hostType {
		case 0: // hostname
			host = rapid.StringMatching(`[a-z][a-z0-9\-]{0,10}\.[a-z]{2,4}`).Draw(t, "hostname")
		case 1: // IPv4
			host = fmt.Sprintf("%d.%d.%d.%d",
				rapid.IntRange(1, 255).Draw(t, "ip1"),
				rapid.IntRange(0, 255).Draw(t, "ip2"),
				rapid.IntRange(0, 255).Draw(t, "ip3"),
				rapid.IntRange(1, 254).Draw(t, "ip4"))
		case 2:
			host = "localhost"
		}
		port := rapid.IntRange(1, 65535).Draw(t, "port")
		return fmt.Sprintf("%s:%d", host, port)
	})

	rapid.Check(t, func(t *rapid.T) {
		addr := validAddressGen.Draw(t, "validAddress")
		if err := ValidateAddress(addr, false); err != nil {
			t.Fatalf("expected valid address %q to pass validation, got error: %v", addr, err)
		}
	})
}

func TestAddressFormatValidation_Invalid(t *testing.T) {
	invalidAddresses := []string{
		"",                // empty
		"noport",          // missing port
		":8080",           // missing host
		"host:",           // missing port number
		"host:0",          // port out of range (0)
		"host:65536",      // port out of range (>65535)
		"host:abc",        // non-numeric port
		"host:-1",         // negative port
		"host:8080:extra", // too many colons (not IPv6)
	}

	for _, addr := range invalidAddresses {
		if err := ValidateAddress(addr, false); err == nil {
			t.Errorf("expected invalid address %q to fail validation, got nil", addr)
		}
	}
}

func TestListenAddressAllowsEmptyHost(t *testing.T) {
	if err := ValidateAddress(":50051", true); err != nil {
		t.Fatalf("expected listen address to pass, got %v", err)
	}
}

func TestQuicGetConfig_DefaultIdleTimeout(t *testing.T) {
	if got := (Quic{}).GetConfig().MaxIdleTimeout; got != DefaultMaxIdleTimeout {
		t.Fatalf("expected %v, got %v", DefaultMaxIdleTimeout, got)
	}
}
