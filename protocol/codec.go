package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// json is a drop-in replacement for encoding/json with better performance
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Wire format: [1 byte type][4 bytes length][payload]

// DefaultMaxPayload bounds a frame when the reader has no configured limit.
const DefaultMaxPayload = 10 * 1024 * 1024

var ErrPayloadTooLarge = errors.New("payload too large")

// RemoteError is returned by ReadTypedMessage when the peer answered with an
// ErrorMsg instead of the expected message.
type RemoteError struct {
	Code    uint32
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
}

// WriteMessage writes a message to the writer using buffer pooling to reduce allocations.
func WriteMessage(w io.Writer, msgType byte, payload any) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	header := [5]byte{msgType}
	binary.BigEndian.PutUint32(header[1:], uint32(len(data)))

	// Write header and payload to pooled buffer first, then flush to writer
	buf.Write(header[:])
	buf.Write(data)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// ReadMessage reads one frame whose payload may not exceed maxPayload bytes.
// A zero maxPayload means DefaultMaxPayload.
func ReadMessage(r io.Reader, maxPayload uint64) (msgType byte, payload []byte, err error) {
	if maxPayload == 0 {
		maxPayload = DefaultMaxPayload
	}
	var header [5]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, fmt.Errorf("read header: %w", err)
	}

	msgType = header[0]
	length := binary.BigEndian.Uint32(header[1:])
	if uint64(length) > maxPayload {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, length)
	}

	payload = make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, fmt.Errorf("read payload: %w", err)
	}
	return msgType, payload, nil
}

// DecodeMessage decodes a payload into a message structure
func DecodeMessage(payload []byte, msg any) error {
	if err := json.Unmarshal(payload, msg); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}

// ReadTypedMessage reads and decodes a message in one call. An ErrorMsg from
// the peer is returned as *RemoteError.
func ReadTypedMessage(r io.Reader, maxPayload uint64, expectedType byte, msg any) error {
	msgType, payload, err := ReadMessage(r, maxPayload)
	if err != nil {
		return err
	}

	if msgType == MsgTypeError && expectedType != MsgTypeError {
		var e ErrorMsg
		if err := DecodeMessage(payload, &e); err != nil {
			return err
		}
		return &RemoteError{Code: e.Code, Message: e.Message}
	}
	if msgType != expectedType {
		return fmt.Errorf("unexpected message type: got 0x%02x, expected 0x%02x", msgType, expectedType)
	}
	return DecodeMessage(payload, msg)
}

// WriteHello writes a hello message
func WriteHello(w io.Writer, clientID, version string) error {
	return WriteMessage(w, MsgTypeHello, HelloMsg{ClientID: clientID, Version: version})
}

// WriteHelloAck writes a hello acknowledgment
func WriteHelloAck(w io.Writer, success bool, message string) error {
	return WriteMessage(w, MsgTypeHelloAck, HelloAckMsg{Success: success, Message: message})
}

// WriteError writes an error message
func WriteError(w io.Writer, code uint32, message string) error {
	return WriteMessage(w, MsgTypeError, ErrorMsg{Code: code, Message: message})
}
