package liveness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-championship/internal/tournament"
	"github.com/pixil98/go-championship/internal/wire"
)

// UnreachablePeerError records why a probe failed.
type UnreachablePeerError struct {
	Address tournament.Address
	Err     error
}

func (e *UnreachablePeerError) Error() string {
	return fmt.Sprintf("player %s unreachable: %s", e.Address, e.Err)
}

func (e *UnreachablePeerError) Unwrap() error {
	return e.Err
}

// Checker pings players and records whether they are reachable.
type Checker struct {
	store   *tournament.Store
	timeout time.Duration
}

func NewChecker(store *tournament.Store, opts ...CheckerOpt) *Checker {
	c := &Checker{
		store:   store,
		timeout: wire.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CheckOne pings addr and returns online if it answers pong, lost otherwise.
func (c *Checker) CheckOne(ctx context.Context, addr tournament.Address) tournament.Status {
	err := c.ping(ctx, addr)
	if err != nil {
		slog.DebugContext(ctx, "liveness probe failed", "address", addr.String(), "error", err)
		slog.InfoContext(ctx, "checked player", "address", addr.String(), "status", tournament.StatusLost)
		return tournament.StatusLost
	}

	slog.InfoContext(ctx, "checked player", "address", addr.String(), "status", tournament.StatusOnline)
	return tournament.StatusOnline
}

// CheckAll probes every registered player in turn and records the outcome.
func (c *Checker) CheckAll(ctx context.Context) {
	for _, p := range c.store.State().AllPlayers() {
		status := c.CheckOne(ctx, p.Address)
		c.store.Update(tournament.ChangePlayerStatus(p.Address, status))
	}
}

// Confirm probes addr and marks the player online if it answers. A failed probe
// leaves the status as it was.
func (c *Checker) Confirm(ctx context.Context, addr tournament.Address) {
	if c.CheckOne(ctx, addr) == tournament.StatusOnline {
		c.store.Update(tournament.ChangePlayerStatus(addr, tournament.StatusOnline))
	}
}

// ScheduleConfirm runs Confirm for addr after delay. The returned timer may be stopped
// to cancel the check.
func (c *Checker) ScheduleConfirm(addr tournament.Address, delay time.Duration) *time.Timer {
	return time.AfterFunc(delay, func() {
		c.Confirm(context.Background(), addr)
	})
}

func (c *Checker) ping(ctx context.Context, addr tournament.Address) error {
	reply, err := wire.Fetch(ctx, addr.String(), map[string]string{"request": "ping"}, c.timeout)
	if err != nil {
		return &UnreachablePeerError{Address: addr, Err: err}
	}

	resp, _ := reply.String("response")
	if resp != "pong" {
		return &UnreachablePeerError{Address: addr, Err: fmt.Errorf("unexpected response %q", resp)}
	}

	return nil
}
