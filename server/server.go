package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/Mmx233/gwfixture/config"
	"github.com/Mmx233/gwfixture/protocol"
	"github.com/Mmx233/gwfixture/server/registry"
	"github.com/quic-go/quic-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Server is the mock gateway config service
type Server struct {
	config   *config.Server
	service  *Service
	registry *registry.Registry
	logger   zerolog.Logger

	wg sync.WaitGroup
}

// New creates a new server
func New(conf *config.Server) (*Server, error) {
	conf.ApplyDefaults()

	logger := log.With().Str("com", "server").Logger()

	if err := conf.TLS.LoadCertificates(); err != nil {
		return nil, fmt.Errorf("load certificates: %w", err)
	}

	service, err := NewService(conf.Seed, conf.Generation)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Uint64("seed", conf.Seed).
		Int64("generation", conf.Generation).
		Str("max_message_size", conf.MaxMessageSize.HumanReadable()).
		Msg("config service ready")

	return &Server{
		config:   conf,
		service:  service,
		registry: registry.New(logger),
		logger:   logger,
	}, nil
}

// Start starts the server on the configured listen address
func Start(ctx context.Context, conf *config.Server) error {
	srv, err := New(conf)
	if err != nil {
		return err
	}

	udpAddr, err := net.ResolveUDPAddr("udp", conf.Listen)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}
	udpConn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("listen UDP: %w", err)
	}
	defer udpConn.Close()

	return srv.Serve(ctx, udpConn)
}

// Service returns the state behind the server.
func (s *Server) Service() *Service {
	return s.service
}

// Registry returns the session registry.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Serve accepts connections on conn until ctx is done. It returns once every
// connection handler has finished.
func (s *Server) Serve(ctx context.Context, conn net.PacketConn) error {
	tlsConf := &tls.Config{
		Certificates: []tls.Certificate{s.config.TLS.Cert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    s.config.TLS.CACertPool,
		NextProtos:   []string{protocol.ALPN},
		MinVersion:   tls.VersionTLS13,
	}

	tr := &quic.Transport{
		Conn: conn,
	}
	defer tr.Close()

	ln, err := tr.Listen(tlsConf, s.config.Quic.GetConfig())
	if err != nil {
		return fmt.Errorf("listen QUIC: %w", err)
	}
	defer ln.Close()

	s.logger.Info().Str("addr", conn.LocalAddr().String()).Msg("QUIC listener started")

	defer s.wg.Wait()
	for {
		qc, err := ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info().Msg("server shutting down")
				_ = ln.Close()
				return ctx.Err()
			}
			if errors.Is(err, quic.ErrServerClosed) {
				return err
			}
			s.logger.Error().Err(err).Msg("accept connection failed")
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(ctx, qc)
		}()
	}
}

// handleConnection registers the client from its hello stream, then serves
// one request per stream until the connection goes away.
func (s *Server) handleConnection(ctx context.Context, conn *quic.Conn) {
	logger := s.logger.With().Str("remote", conn.RemoteAddr().String()).Logger()

	subject, err := verifyPeer(conn, s.config.TLS.CACertPool)
	if err != nil {
		logger.Error().Err(err).Msg("authentication failed")
		_ = conn.CloseWithError(1, "authentication failed")
		return
	}

	helloCtx, cancel := context.WithTimeout(ctx, s.config.Quic.GetConfig().MaxIdleTimeout)
	hello, err := conn.AcceptStream(helloCtx)
	cancel()
	if err != nil {
		logger.Error().Err(err).Msg("accept hello stream failed")
		_ = conn.CloseWithError(1, "hello stream error")
		return
	}

	var msg protocol.HelloMsg
	if err := protocol.ReadTypedMessage(hello, s.maxPayload(), protocol.MsgTypeHello, &msg); err != nil {
		logger.Error().Err(err).Msg("read hello failed")
		_ = conn.CloseWithError(1, "hello error")
		return
	}

	logger = logger.With().Str("client_id", msg.ClientID).Logger()

	session := &registry.Session{
		ID:      msg.ClientID,
		Conn:    conn,
		Version: msg.Version,
		Subject: subject,
	}
	if err := s.registry.Add(session); err != nil {
		logger.Error().Err(err).Msg("register session failed")
		_ = protocol.WriteHelloAck(hello, false, err.Error())
		_ = hello.Close()
		// let the client read the ack and hang up first
		select {
		case <-conn.Context().Done():
		case <-time.After(time.Second):
		}
		_ = conn.CloseWithError(1, "registration error")
		return
	}
	defer s.registry.Remove(session)

	if err := protocol.WriteHelloAck(hello, true, "registered"); err != nil {
		logger.Error().Err(err).Msg("send hello ack failed")
		return
	}
	_ = hello.Close()

	var streams sync.WaitGroup
	defer streams.Wait()
	for {
		stream, err := conn.AcceptStream(ctx)
		if err != nil {
			if ctx.Err() != nil {
				_ = conn.CloseWithError(0, "server shutting down")
			}
			logger.Info().Uint64("requests", session.Requests()).Msg("client disconnected")
			return
		}

		session.Touch()
		streams.Add(1)
		go func() {
			defer streams.Done()
			s.handleStream(stream, logger)
		}()
	}
}

// handleStream answers the single request carried by stream.
func (s *Server) handleStream(stream *quic.Stream, logger zerolog.Logger) {
	defer stream.Close()
	_ = stream.SetDeadline(time.Now().Add(s.config.Quic.GetConfig().MaxIdleTimeout))

	msgType, payload, err := protocol.ReadMessage(stream, s.maxPayload())
	if err != nil {
		logger.Debug().Err(err).Msg("read request failed")
		if errors.Is(err, protocol.ErrPayloadTooLarge) {
			_ = protocol.WriteError(stream, protocol.ErrCodeBadRequest, err.Error())
		}
		return
	}

	if err := s.dispatch(stream, msgType, payload, logger); err != nil {
		logger.Debug().Err(err).Uint8("type", msgType).Msg("write response failed")
	}
}

func (s *Server) dispatch(stream *quic.Stream, msgType byte, payload []byte, logger zerolog.Logger) error {
	switch msgType {
	case protocol.MsgTypeGetConfigGeneration:
		return protocol.WriteMessage(stream, protocol.MsgTypeGetConfigGenerationResponse,
			protocol.GetConfigGenerationResponse{Generation: s.service.Generation()})

	case protocol.MsgTypeGetConfig:
		return protocol.WriteMessage(stream, protocol.MsgTypeGetConfigResponse, s.service.Config())

	case protocol.MsgTypeUpdateConfig:
		var req protocol.UpdateConfigRequest
		if err := protocol.DecodeMessage(payload, &req); err != nil {
			return protocol.WriteError(stream, protocol.ErrCodeBadRequest, err.Error())
		}
		code, message := s.service.Update(req.Config)
		logger.Info().
			Stringer("result", code).
			Int64("generation", s.service.Generation()).
			Msg(message)
		return protocol.WriteMessage(stream, protocol.MsgTypeUpdateConfigResponse,
			protocol.UpdateConfigResponse{Error: code, Message: message})

	case protocol.MsgTypeGetDataplaneStatus:
		status, err := s.service.Status()
		if err != nil {
			logger.Error().Err(err).Msg("generate status failed")
			return protocol.WriteError(stream, protocol.ErrCodeInternal, err.Error())
		}
		return protocol.WriteMessage(stream, protocol.MsgTypeGetDataplaneStatusResponse, status)

	default:
		return protocol.WriteError(stream, protocol.ErrCodeUnknownType,
			fmt.Sprintf("unknown request type 0x%02x", msgType))
	}
}

func (s *Server) maxPayload() uint64 {
	return s.config.MaxMessageSize.Bytes()
}
