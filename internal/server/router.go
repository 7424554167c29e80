package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/pixil98/go-championship/internal/wire"
)

const timeoutMessage = "transmission took too long"

type okReply struct {
	Response string `json:"response"`
}

type errorReply struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Router reads a single request from a connection and dispatches it by kind.
type Router struct {
	subscriptions *Subscriptions
	timeout       time.Duration
}

func NewRouter(subs *Subscriptions, opts ...RouterOpt) *Router {
	r := &Router{
		subscriptions: subs,
		timeout:       wire.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Handle serves one request from peerHost on conn. Exactly one reply is written,
// unless writing itself fails.
func (r *Router) Handle(ctx context.Context, conn net.Conn, peerHost string) {
	ex := &exchange{conn: conn}

	err := r.route(ctx, ex, peerHost)
	if err == nil {
		return
	}

	if ex.replied {
		slog.WarnContext(ctx, "request failed after reply", "peer", peerHost, "error", err)
		return
	}

	slog.InfoContext(ctx, "rejecting request", "peer", peerHost, "error", err)
	sendErr := ex.reply(errorReply{Response: "error", Error: errorMessage(err)})
	if sendErr != nil {
		slog.WarnContext(ctx, "sending error reply", "peer", peerHost, "error", sendErr)
	}
}

func (r *Router) route(ctx context.Context, ex *exchange, peerHost string) error {
	msg, err := wire.Receive(ex.conn, r.timeout)
	if err != nil {
		return err
	}

	raw, ok := msg["request"]
	if !ok {
		return &MissingFieldError{Field: "request"}
	}

	kind := requestKind(raw)
	slog.DebugContext(ctx, "request received", "peer", peerHost, "request", kind)

	switch kind {
	case "subscribe":
		return r.subscriptions.Subscribe(ctx, ex, peerHost, msg)
	default:
		return &UnknownRequestError{Request: kind}
	}
}

func errorMessage(err error) string {
	var notObj *wire.NotAJSONObjectError
	var missing *MissingFieldError
	var mismatch *TypeMismatchError
	var unknown *UnknownRequestError

	switch {
	case errors.Is(err, wire.ErrTimeout):
		return timeoutMessage
	case errors.As(err, &notObj):
		return notObj.Error()
	case errors.As(err, &missing):
		return missing.Error()
	case errors.As(err, &mismatch):
		return mismatch.Error()
	case errors.As(err, &unknown):
		return unknown.Error()
	default:
		return err.Error()
	}
}

// requestKind returns the request value as text: the string itself, or the raw JSON
// for any other type.
func requestKind(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// exchange remembers whether a reply has been written on a connection.
type exchange struct {
	conn    net.Conn
	replied bool
}

func (e *exchange) reply(v any) error {
	e.replied = true
	return wire.Send(e.conn, v)
}
