package protocol

import (
	"github.com/Mmx233/gwfixture/schema"
)

// Message types. Requests are even, their responses follow at request+1.
const (
	MsgTypeHello                       = 0x01 // Client introduction
	MsgTypeHelloAck                    = 0x02 // Server acknowledgment
	MsgTypeGetConfigGeneration         = 0x10
	MsgTypeGetConfigGenerationResponse = 0x11
	MsgTypeGetConfig                   = 0x12
	MsgTypeGetConfigResponse           = 0x13
	MsgTypeUpdateConfig                = 0x14
	MsgTypeUpdateConfigResponse        = 0x15
	MsgTypeGetDataplaneStatus          = 0x16
	MsgTypeGetDataplaneStatusResponse  = 0x17
	MsgTypeError                       = 0xFF // Error message
)

// Every request travels on its own QUIC stream: one request frame, one
// response frame, then the stream is closed.

// HelloMsg is sent by client on the control stream right after dialing
type HelloMsg struct {
	ClientID string `json:"client_id"`
	Version  string `json:"version"`
}

// HelloAckMsg answers HelloMsg
type HelloAckMsg struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type GetConfigGenerationRequest struct{}

type GetConfigGenerationResponse struct {
	Generation int64 `json:"generation"`
}

type GetConfigRequest struct{}

type UpdateConfigRequest struct {
	Config *schema.GatewayConfig `json:"config"`
}

type UpdateConfigResponse struct {
	Error   schema.ErrorCode `json:"error"`
	Message string           `json:"message"`
}

type GetDataplaneStatusRequest struct{}

// ErrorMsg carries a transport level failure, e.g. an unknown request type
type ErrorMsg struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

// Error codes carried by ErrorMsg
const (
	ErrCodeUnknownType   uint32 = 400
	ErrCodeBadRequest    uint32 = 422
	ErrCodeInternal      uint32 = 500
	ErrCodeNotRegistered uint32 = 401
)

const ProtocolVersion = "1.0"

// ALPN is negotiated on every QUIC connection of the config service
const ALPN = "gwfixture-config/1"
