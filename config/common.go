package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/quic-go/quic-go"
)

const (
	EnvPrefix = "GWFIXTURE_"
)

type Quic struct {
	MaxIncomingStreams   int64         `yaml:"max_incoming_streams"`
	KeepAlivePeriod      time.Duration `yaml:"keep_alive_period"`
	HandshakeIdleTimeout time.Duration `yaml:"handshake_idle_timeout"`
	MaxIdleTimeout       time.Duration `yaml:"max_idle_timeout"`
}

func (q Quic) GetConfig() *quic.Config {
	if q.MaxIdleTimeout == 0 {
		q.MaxIdleTimeout = DefaultMaxIdleTimeout
	}
	return &quic.Config{
		MaxIncomingStreams:   q.MaxIncomingStreams,
		KeepAlivePeriod:      q.KeepAlivePeriod,
		HandshakeIdleTimeout: q.HandshakeIdleTimeout,
		MaxIdleTimeout:       q.MaxIdleTimeout,
	}
}

// TLS holds the PEM file paths of one side of the mTLS pair.
type TLS struct {
	CACertFile string `yaml:"ca_cert_file"`
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`

	// Loaded certificates (not from YAML)
	CACertPool *x509.CertPool  `yaml:"-"`
	Cert       tls.Certificate `yaml:"-"`
}

// LoadCertificates loads TLS certificates from files
func (t *TLS) LoadCertificates() error {
	caCertPEM, err := os.ReadFile(t.CACertFile)
	if err != nil {
		return fmt.Errorf("read CA cert: %w", err)
	}

	t.CACertPool = x509.NewCertPool()
	if !t.CACertPool.AppendCertsFromPEM(caCertPEM) {
		return fmt.Errorf("failed to parse CA certificate")
	}

	cert, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
	if err != nil {
		return fmt.Errorf("load cert/key: %w", err)
	}
	t.Cert = cert

	return nil
}

// Validate checks all three files are configured.
func (t *TLS) Validate() error {
	switch {
	case t.CACertFile == "":
		return fmt.Errorf("tls.ca_cert_file is required")
	case t.CertFile == "":
		return fmt.Errorf("tls.cert_file is required")
	case t.KeyFile == "":
		return fmt.Errorf("tls.key_file is required")
	}
	return nil
}

// ValidateAddress validates that an address is in valid host:port format.
// An empty host is accepted for listen addresses when allowEmptyHost is set.
func ValidateAddress(addr string, allowEmptyHost bool) error {
	if addr == "" {
		return fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format %q: %w", addr, err)
	}

	if host == "" && !allowEmptyHost {
		return fmt.Errorf("host cannot be empty in address %q", addr)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port in address %q: %w", addr, err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d in address %q", port, addr)
	}

	return nil
}
