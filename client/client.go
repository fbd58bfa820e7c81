package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Mmx233/gwfixture/config"
	"github.com/Mmx233/gwfixture/protocol"
	"github.com/Mmx233/gwfixture/schema"
	"github.com/cenkalti/backoff/v5"
	"github.com/quic-go/quic-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotConnected = errors.New("client not connected")
	ErrRejected     = errors.New("server rejected hello")
)

// Client talks to a gateway config service, one stream per request
type Client struct {
	config    *config.Client
	tlsConfig *tls.Config
	logger    zerolog.Logger

	mu   sync.RWMutex
	conn *quic.Conn
}

// New creates a new client
func New(conf *config.Client) (*Client, error) {
	conf.ApplyDefaults()

	logger := log.With().
		Str("com", "client").
		Str("client_id", conf.ClientID).
		Logger()

	if err := conf.TLS.LoadCertificates(); err != nil {
		return nil, fmt.Errorf("load certificates: %w", err)
	}

	return &Client{
		config: conf,
		tlsConfig: &tls.Config{
			Certificates:       []tls.Certificate{conf.TLS.Cert},
			RootCAs:            conf.TLS.CACertPool,
			ServerName:         conf.Server.ServerName,
			NextProtos:         []string{protocol.ALPN},
			MinVersion:         tls.VersionTLS13,
			ClientSessionCache: tls.NewLRUClientSessionCache(1),
		},
		logger: logger,
	}, nil
}

// Connect dials the service with exponential backoff and says hello. A
// rejected hello is not retried.
func (c *Client) Connect(ctx context.Context) error {
	attempt := 0
	conn, err := backoff.Retry(ctx, func() (*quic.Conn, error) {
		attempt++
		conn, err := c.dial(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Int("attempt", attempt).Msg("connect failed")
			if errors.Is(err, ErrRejected) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return conn, nil
	},
		backoff.WithBackOff(&backoff.ExponentialBackOff{
			InitialInterval:     100 * time.Millisecond,
			RandomizationFactor: backoff.DefaultRandomizationFactor,
			Multiplier:          backoff.DefaultMultiplier,
			MaxInterval:         5 * time.Second,
		}),
		backoff.WithMaxTries(c.config.DialAttempts),
	)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.config.Server.Address, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.logger.Info().Str("server", c.config.Server.Address).Msg("connected to server")
	return nil
}

func (c *Client) dial(ctx context.Context) (*quic.Conn, error) {
	conn, err := quic.DialAddr(ctx, c.config.Server.Address, c.tlsConfig, c.config.Quic.GetConfig())
	if err != nil {
		return nil, fmt.Errorf("dial server: %w", err)
	}

	ack, err := c.hello(ctx, conn)
	if err != nil {
		_ = conn.CloseWithError(1, "hello failed")
		return nil, err
	}
	if !ack.Success {
		_ = conn.CloseWithError(1, "hello rejected")
		return nil, fmt.Errorf("%w: %s", ErrRejected, ack.Message)
	}
	return conn, nil
}

func (c *Client) hello(ctx context.Context, conn *quic.Conn) (*protocol.HelloAckMsg, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		return nil, fmt.Errorf("open hello stream: %w", err)
	}
	defer stream.CancelRead(0)
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetDeadline(deadline)
	}

	if err := protocol.WriteHello(stream, c.config.ClientID, protocol.ProtocolVersion); err != nil {
		return nil, err
	}
	_ = stream.Close()

	var ack protocol.HelloAckMsg
	if err := protocol.ReadTypedMessage(stream, c.maxPayload(), protocol.MsgTypeHelloAck, &ack); err != nil {
		return nil, fmt.Errorf("read hello ack: %w", err)
	}
	return &ack, nil
}

// Close closes the connection to the service
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.CloseWithError(0, "client closed")
	c.conn = nil
	return err
}

// roundTrip sends one request on a fresh stream and decodes the response into resp.
func (c *Client) roundTrip(ctx context.Context, reqType byte, req any, respType byte, resp any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer stream.CancelRead(0)
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetDeadline(deadline)
	}

	if err := protocol.WriteMessage(stream, reqType, req); err != nil {
		return err
	}
	_ = stream.Close()

	return protocol.ReadTypedMessage(stream, c.maxPayload(), respType, resp)
}

// GetConfigGeneration returns the generation of the applied config
func (c *Client) GetConfigGeneration(ctx context.Context) (int64, error) {
	var resp protocol.GetConfigGenerationResponse
	err := c.roundTrip(ctx, protocol.MsgTypeGetConfigGeneration, protocol.GetConfigGenerationRequest{},
		protocol.MsgTypeGetConfigGenerationResponse, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Generation, nil
}

// GetConfig returns the applied config
func (c *Client) GetConfig(ctx context.Context) (*schema.GatewayConfig, error) {
	var resp schema.GatewayConfig
	err := c.roundTrip(ctx, protocol.MsgTypeGetConfig, protocol.GetConfigRequest{},
		protocol.MsgTypeGetConfigResponse, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateConfig sends cfg as is
func (c *Client) UpdateConfig(ctx context.Context, cfg *schema.GatewayConfig) (*protocol.UpdateConfigResponse, error) {
	var resp protocol.UpdateConfigResponse
	err := c.roundTrip(ctx, protocol.MsgTypeUpdateConfig, protocol.UpdateConfigRequest{Config: cfg},
		protocol.MsgTypeUpdateConfigResponse, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ApplyConfig checks the mandatory sections of cfg, stamps it with the next
// generation and sends it.
func (c *Client) ApplyConfig(ctx context.Context, cfg *schema.GatewayConfig) (*protocol.UpdateConfigResponse, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	generation, err := c.GetConfigGeneration(ctx)
	if err != nil {
		return nil, fmt.Errorf("get config generation: %w", err)
	}
	cfg.Generation = generation + 1

	c.logger.Info().Int64("generation", cfg.Generation).Msg("updating config")
	return c.UpdateConfig(ctx, cfg)
}

// GetDataplaneStatus returns a dataplane status snapshot
func (c *Client) GetDataplaneStatus(ctx context.Context) (*schema.DataplaneStatusSnapshot, error) {
	var resp schema.DataplaneStatusSnapshot
	err := c.roundTrip(ctx, protocol.MsgTypeGetDataplaneStatus, protocol.GetDataplaneStatusRequest{},
		protocol.MsgTypeGetDataplaneStatusResponse, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) maxPayload() uint64 {
	return c.config.MaxMessageSize.Bytes()
}
