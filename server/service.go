package server

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Mmx233/gwfixture/draw"
	"github.com/Mmx233/gwfixture/fixture"
	"github.com/Mmx233/gwfixture/schema"
)

// Service holds the state of the mock gateway: the applied config and a
// seeded source for dataplane status snapshots.
type Service struct {
	mu     sync.RWMutex
	config *schema.GatewayConfig

	seed     uint64
	snapshot atomic.Uint64 // number of status snapshots handed out
}

// NewService boots a service with a config generated from seed.
func NewService(seed uint64, generation int64) (*Service, error) {
	cfg, err := fixture.GatewayConfig(draw.NewSeeded(seed))
	if err != nil {
		return nil, fmt.Errorf("generate boot config: %w", err)
	}
	cfg.Generation = generation
	return &Service{config: cfg, seed: seed}, nil
}

// Generation returns the generation of the applied config.
func (s *Service) Generation() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Generation
}

// Config returns the applied config. Configs are replaced, never mutated, so
// the caller may encode it without holding a lock.
func (s *Service) Config() *schema.GatewayConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update applies cfg when it validates and moves the generation forward.
func (s *Service) Update(cfg *schema.GatewayConfig) (schema.ErrorCode, string) {
	if cfg == nil {
		return schema.ErrorValidationFailed, "missing config"
	}
	if err := cfg.Validate(); err != nil {
		return schema.ErrorValidationFailed, err.Error()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.Generation <= s.config.Generation {
		return schema.ErrorApplyFailed, fmt.Sprintf("stale generation %d, current is %d", cfg.Generation, s.config.Generation)
	}
	s.config = cfg
	return schema.ErrorNone, "Config applied"
}

// Status returns a fresh snapshot. The n-th snapshot is drawn from seed+n, so
// a restarted service with the same seed replays the same sequence.
func (s *Service) Status() (*schema.DataplaneStatusSnapshot, error) {
	n := s.snapshot.Add(1) - 1
	return fixture.DataplaneStatus(draw.NewSeeded(s.seed + n))
}
