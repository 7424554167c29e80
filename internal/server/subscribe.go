package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/pixil98/go-championship/internal/tournament"
	"github.com/pixil98/go-championship/internal/wire"
)

const DefaultConfirmDelay = time.Second

// Confirmer checks a newly subscribed player once it has had time to start listening.
type Confirmer interface {
	ScheduleConfirm(addr tournament.Address, delay time.Duration) *time.Timer
}

type subscribeRequest struct {
	Name       string
	Port       int
	Matricules []string
}

// Subscriptions registers players and schedules their first liveness check.
type Subscriptions struct {
	store     *tournament.Store
	hooks     *tournament.Hooks
	confirmer Confirmer
	delay     time.Duration
}

func NewSubscriptions(store *tournament.Store, hooks *tournament.Hooks, confirmer Confirmer, opts ...SubscriptionsOpt) *Subscriptions {
	s := &Subscriptions{
		store:     store,
		hooks:     hooks,
		confirmer: confirmer,
		delay:     DefaultConfirmDelay,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Subscribe registers the player described by msg at (peerHost, declared port),
// replies ok and schedules a deferred liveness check of that address.
func (s *Subscriptions) Subscribe(ctx context.Context, ex *exchange, peerHost string, msg wire.Message) error {
	req, err := parseSubscribeRequest(msg)
	if err != nil {
		return err
	}

	addr := tournament.NewAddress(peerHost, req.Port)
	slog.InfoContext(ctx, "subscription received", "name", req.Name, "address", addr.String())

	created := false
	s.store.Update(func(snap tournament.Snapshot) tournament.Snapshot {
		next := tournament.AddPlayer(req.Name, addr, req.Matricules, 0, 0, 0)(snap)
		created = len(next.Players) != len(snap.Players)
		return next
	})

	err = ex.reply(okReply{Response: "ok"})
	if err != nil {
		return fmt.Errorf("sending subscription reply: %w", err)
	}

	if created && s.hooks != nil {
		s.hooks.Fire(ctx, tournament.EventPlayerSubscribed)
	}

	s.confirmer.ScheduleConfirm(addr, s.delay)
	return nil
}

func parseSubscribeRequest(msg wire.Message) (subscribeRequest, error) {
	var req subscribeRequest

	rawPort, ok := msg["port"]
	if !ok {
		return req, &MissingFieldError{Field: "port"}
	}
	port, err := parsePort(rawPort)
	if err != nil {
		return req, err
	}
	req.Port = port

	rawName, ok := msg["name"]
	if !ok {
		return req, &MissingFieldError{Field: "name"}
	}
	req.Name, ok = stringValue(rawName)
	if !ok {
		return req, &TypeMismatchError{Field: "name", Expected: "a string"}
	}

	rawMatricules, ok := msg["matricules"]
	if !ok {
		return req, &MissingFieldError{Field: "matricules"}
	}
	var items []json.RawMessage
	err = json.Unmarshal(rawMatricules, &items)
	if err != nil || items == nil {
		return req, &TypeMismatchError{Field: "matricules", Expected: "a list of strings"}
	}
	req.Matricules = make([]string, 0, len(items))
	for _, item := range items {
		m, ok := stringValue(item)
		if !ok {
			return req, &TypeMismatchError{Field: "matricules", Expected: "a list of strings"}
		}
		req.Matricules = append(req.Matricules, m)
	}

	return req, nil
}

// stringValue decodes raw as a JSON string. null is not a string.
func stringValue(raw json.RawMessage) (string, bool) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", false
	}
	return *s, true
}

// parsePort accepts an integer or a string holding one.
func parsePort(raw json.RawMessage) (int, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, &TypeMismatchError{Field: "port", Expected: "an integer"}
	}

	var port int
	switch p := v.(type) {
	case float64:
		if p != math.Trunc(p) {
			return 0, &TypeMismatchError{Field: "port", Expected: "an integer"}
		}
		port = int(p)
	case string:
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, &TypeMismatchError{Field: "port", Expected: "an integer"}
		}
		port = n
	default:
		return 0, &TypeMismatchError{Field: "port", Expected: "an integer"}
	}

	if port < 1 || port > math.MaxUint16 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}
