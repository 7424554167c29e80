package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

const DefaultTimeout = 10 * time.Second

// Message is a decoded JSON object, keyed by field name.
type Message map[string]json.RawMessage

// String returns the field as a string. The second value is false if the field is
// absent or not a string.
func (m Message) String(key string) (string, bool) {
	raw, ok := m[key]
	if !ok {
		return "", false
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", false
	}
	return *s, true
}

// Send writes v as a single JSON object.
func Send(conn io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling message: %w", err)
	}
	if !isObject(data) {
		return &NotAJSONObjectError{}
	}

	_, err = conn.Write(data)
	if err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	return nil
}

// Receive reads one JSON object from conn, waiting at most timeout for it to be complete.
// A message is framed by its own outer braces, so it may arrive split across reads.
func Receive(conn net.Conn, timeout time.Duration) (Message, error) {
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("setting read deadline: %w", err)
	}
	// Ignoring error - the connection is either reused for a write or closed
	defer func() { _ = conn.SetReadDeadline(time.Time{}) }()

	var raw json.RawMessage
	err := json.NewDecoder(conn).Decode(&raw)
	if err != nil {
		var netErr net.Error
		var syntaxErr *json.SyntaxError
		switch {
		case errors.As(err, &netErr) && netErr.Timeout():
			return nil, ErrTimeout
		case errors.As(err, &syntaxErr):
			return nil, &NotAJSONObjectError{Err: err}
		case errors.Is(err, io.EOF):
			return nil, fmt.Errorf("connection closed before a message arrived: %w", io.ErrUnexpectedEOF)
		default:
			return nil, fmt.Errorf("reading message: %w", err)
		}
	}

	if !isObject(raw) {
		return nil, &NotAJSONObjectError{}
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, &NotAJSONObjectError{Err: err}
	}
	return msg, nil
}

// Fetch dials address, sends v and returns the reply.
func Fetch(ctx context.Context, address string, v any, timeout time.Duration) (Message, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", address, err)
	}
	// Ignoring close error - the exchange is already complete
	defer func() { _ = conn.Close() }()

	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("setting write deadline: %w", err)
	}
	if err := Send(conn, v); err != nil {
		return nil, err
	}

	return Receive(conn, timeout)
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
