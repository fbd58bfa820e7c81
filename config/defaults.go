package config

import (
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/google/uuid"
)

// Default timeout and interval values
const (
	// DefaultMaxIdleTimeout is the default QUIC connection idle timeout
	DefaultMaxIdleTimeout = 5 * time.Minute

	// DefaultRequestTimeout bounds one request/response exchange on the client
	DefaultRequestTimeout = 10 * time.Second

	// DefaultDialAttempts is how many times the client dials before giving up
	DefaultDialAttempts = 5

	// DefaultMaxMessageSize caps a single protocol frame
	DefaultMaxMessageSize = 10 * datasize.MB

	// DefaultListenAddress is where the mock service listens
	DefaultListenAddress = "127.0.0.1:50051"

	// DefaultServerName matches the SAN of the generated server certificate
	DefaultServerName = "localhost"

	// DefaultGeneration is the generation of the config the service boots with
	DefaultGeneration = 1
)

// Corpus defaults
const (
	DefaultCount     = 16
	DefaultOutputDir = "corpus"
	DefaultKind      = "status"
	DefaultFormat    = FormatJSON
	DefaultCidrMask  = 24

	DefaultCidrCount     = 8
	DefaultHostAddrCount = 8
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// GenerateClientID generates a new UUID for use as a client identifier.
func GenerateClientID() string {
	return uuid.New().String()
}
