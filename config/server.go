package config

import (
	"fmt"

	"github.com/c2h5oh/datasize"
)

// Server configures the mock gateway config service.
type Server struct {
	Listen         string            `yaml:"listen"` // host:port
	Seed           uint64            `yaml:"seed"`
	Generation     int64             `yaml:"generation"` // generation of the boot config
	MaxMessageSize datasize.ByteSize `yaml:"max_message_size"`
	Quic           Quic              `yaml:"quic"`
	TLS            TLS               `yaml:"tls"`
}

// ApplyDefaults fills zero values.
func (s *Server) ApplyDefaults() {
	if s.Listen == "" {
		s.Listen = DefaultListenAddress
	}
	if s.Generation == 0 {
		s.Generation = DefaultGeneration
	}
	if s.MaxMessageSize == 0 {
		s.MaxMessageSize = DefaultMaxMessageSize
	}
}

func (s *Server) Validate() error {
	if err := ValidateAddress(s.Listen, true); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	if s.Generation < 0 {
		return fmt.Errorf("generation must not be negative, got %d", s.Generation)
	}
	if s.MaxMessageSize < datasize.KB {
		return fmt.Errorf("max_message_size must be at least 1KB, got %s", s.MaxMessageSize.HumanReadable())
	}
	return s.TLS.Validate()
}
