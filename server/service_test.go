package server

import (
	"sync"
	"testing"

	"github.com/Mmx233/gwfixture/draw"
	"github.com/Mmx233/gwfixture/fixture"
	"github.com/Mmx233/gwfixture/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/durationpb"
)

func TestNewService_BootConfig(t *testing.T) {
	s, err := NewService(42, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.Generation())

	want, err := fixture.GatewayConfig(draw.NewSeeded(42))
	require.NoError(t, err)
	want.Generation = 7
	if diff := cmp.Diff(want, s.Config(), protocmp.Transform(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("boot config mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Update(t *testing.T) {
	s, err := NewService(1, 1)
	require.NoError(t, err)

	next, err := fixture.GatewayConfig(draw.NewSeeded(2))
	require.NoError(t, err)
	next.Generation = 2

	code, msg := s.Update(next)
	assert.Equal(t, schema.ErrorNone, code)
	assert.Equal(t, "Config applied", msg)
	assert.Equal(t, int64(2), s.Generation())
	assert.Same(t, next, s.Config())
}

func TestService_UpdateRejects(t *testing.T) {
	s, err := NewService(1, 5)
	require.NoError(t, err)
	before := s.Config()

	code, _ := s.Update(nil)
	assert.Equal(t, schema.ErrorValidationFailed, code)

	code, msg := s.Update(&schema.GatewayConfig{Generation: 6})
	assert.Equal(t, schema.ErrorValidationFailed, code)
	assert.Equal(t, schema.ErrMissingDevice.Error(), msg)

	stale, err := fixture.GatewayConfig(draw.NewSeeded(9))
	require.NoError(t, err)
	stale.Generation = 5
	code, msg = s.Update(stale)
	assert.Equal(t, schema.ErrorApplyFailed, code)
	assert.Contains(t, msg, "stale generation")

	assert.Same(t, before, s.Config())
	assert.Equal(t, int64(5), s.Generation())
}

func TestService_UpdateRejectsNegativeIdleTimeout(t *testing.T) {
	s, err := NewService(1, 1)
	require.NoError(t, err)

	next := &schema.GatewayConfig{
		Generation: 2,
		Device:     &schema.Device{Hostname: "gw"},
		Underlay:   &schema.Underlay{},
		Overlay: &schema.Overlay{
			Vpcs: []schema.Vpc{{Name: "a"}, {Name: "b"}},
			Peerings: []schema.VpcPeering{{
				Name: "a--b",
				For: []schema.PeeringEntry{
					{Vpc: "a", Expose: []schema.Expose{{
						Ips: []schema.PeeringRule{{Cidr: "10.0.0.0/24"}},
						As:  []schema.PeeringRule{{Cidr: "192.168.0.0/24"}},
						Nat: &schema.Nat{Stateful: &schema.StatefulNat{
							IdleTimeout: &durationpb.Duration{Seconds: -5, Nanos: -3},
						}},
					}}},
					{Vpc: "b"},
				},
			}},
		},
	}
	code, msg := s.Update(next)
	assert.Equal(t, schema.ErrorValidationFailed, code)
	assert.Contains(t, msg, "nat idle timeout")
	assert.Contains(t, msg, "negative")
	assert.Equal(t, int64(1), s.Generation())

	next.Overlay.Peerings[0].For[0].Expose[0].Nat.Stateful.IdleTimeout = &durationpb.Duration{Seconds: 5, Nanos: -3}
	code, _ = s.Update(next)
	assert.Equal(t, schema.ErrorNone, code)
}

func TestService_StatusSequenceIsSeeded(t *testing.T) {
	a, err := NewService(100, 1)
	require.NoError(t, err)
	b, err := NewService(100, 1)
	require.NoError(t, err)

	for i := range 5 {
		sa, err := a.Status()
		require.NoError(t, err)
		sb, err := b.Status()
		require.NoError(t, err)
		if diff := cmp.Diff(sa, sb); diff != "" {
			t.Fatalf("snapshot %d differs between identically seeded services:\n%s", i, diff)
		}

		want, err := fixture.DataplaneStatus(draw.NewSeeded(100 + uint64(i)))
		require.NoError(t, err)
		if diff := cmp.Diff(want, sa); diff != "" {
			t.Fatalf("snapshot %d is not drawn from seed+%d:\n%s", i, i, diff)
		}
	}
}

func TestService_ConcurrentAccess(t *testing.T) {
	s, err := NewService(3, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg, err := fixture.GatewayConfig(draw.NewSeeded(uint64(i)))
			if err != nil {
				return
			}
			cfg.Generation = int64(i + 2)
			s.Update(cfg)
			s.Config()
			s.Generation()
			_, _ = s.Status()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(9), s.Generation())
}
