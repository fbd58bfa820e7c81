package config

import (
	"fmt"
	"time"

	"github.com/c2h5oh/datasize"
)

type Client struct {
	ClientID       string            `yaml:"client_id"` // uuid generated when empty
	Server         ServerEndpoint    `yaml:"server"`
	DialAttempts   uint              `yaml:"dial_attempts"`
	RequestTimeout time.Duration     `yaml:"request_timeout"`
	MaxMessageSize datasize.ByteSize `yaml:"max_message_size"`
	Quic           Quic              `yaml:"quic"`
	TLS            TLS               `yaml:"tls"`
}

// ServerEndpoint represents the mock service endpoint
type ServerEndpoint struct {
	Address    string `yaml:"address"`     // host:port
	ServerName string `yaml:"server_name"` // TLS server name for verification
}

// ApplyDefaults fills zero values.
func (c *Client) ApplyDefaults() {
	if c.ClientID == "" {
		c.ClientID = GenerateClientID()
	}
	if c.Server.ServerName == "" {
		c.Server.ServerName = DefaultServerName
	}
	if c.DialAttempts == 0 {
		c.DialAttempts = DefaultDialAttempts
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = DefaultMaxMessageSize
	}
}

func (c *Client) Validate() error {
	if err := ValidateAddress(c.Server.Address, false); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %v", c.RequestTimeout)
	}
	return c.TLS.Validate()
}
