package registry

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quic-go/quic-go"
	"github.com/rs/zerolog"
)

// Registry tracks the client sessions of the mock config service
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session // clientID -> session
	logger   zerolog.Logger
}

// Session represents a connected query client
type Session struct {
	ID           string
	Conn         *quic.Conn
	Version      string
	Subject      string // client certificate common name
	RegisteredAt time.Time

	lastSeen atomic.Int64 // unix nano
	requests atomic.Uint64
}

// LastSeen returns when the session last issued a request.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Requests returns how many requests the session has issued.
func (s *Session) Requests() uint64 {
	return s.requests.Load()
}

// Touch records one request.
func (s *Session) Touch() {
	s.lastSeen.Store(time.Now().UnixNano())
	s.requests.Add(1)
}

var ErrSessionExists = errors.New("session already registered")

// New creates an empty registry
func New(logger zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Add registers a new session
func (r *Registry) Add(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; exists {
		return ErrSessionExists
	}
	if s.RegisteredAt.IsZero() {
		s.RegisteredAt = time.Now()
	}
	s.lastSeen.Store(s.RegisteredAt.UnixNano())
	r.sessions[s.ID] = s

	r.logger.Info().
		Str("client_id", s.ID).
		Str("version", s.Version).
		Str("subject", s.Subject).
		Msg("session registered")

	return nil
}

// Remove drops a session. Only the given session is removed, so a client that
// reconnected under the same ID keeps its newer session.
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, exists := r.sessions[s.ID]; exists && cur == s {
		delete(r.sessions, s.ID)
		r.logger.Info().
			Str("client_id", s.ID).
			Uint64("requests", s.Requests()).
			Msg("session removed")
	}
}

// Get retrieves a specific session by client ID
func (r *Registry) Get(clientID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[clientID]
	return s, exists
}

// List returns all sessions ordered by client ID
func (r *Registry) List() []*Session {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	slices.SortFunc(sessions, func(a, b *Session) int {
		return strings.Compare(a.ID, b.ID)
	})
	return sessions
}

// Count returns the number of registered sessions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
