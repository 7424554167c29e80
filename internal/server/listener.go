package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

const DefaultAcceptTimeout = time.Second

type deadliner interface {
	SetDeadline(time.Time) error
}

// Listener accepts subscription connections and hands each one to the router.
type Listener struct {
	address       string
	router        *Router
	acceptTimeout time.Duration

	stopping atomic.Bool
	started  chan struct{}
	done     chan struct{}

	mu   sync.Mutex
	addr net.Addr
}

func NewListener(port uint16, router *Router, opts ...ListenerOpt) *Listener {
	l := &Listener{
		address:       fmt.Sprintf(":%d", port),
		router:        router,
		acceptTimeout: DefaultAcceptTimeout,
		started:       make(chan struct{}),
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Start runs the accept loop until ctx is canceled or Stop is called. In-flight
// connections are finished before it returns.
func (l *Listener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.address)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("address %s is already in use (another server running?)", l.address)
		}
		return fmt.Errorf("listening on %s: %w", l.address, err)
	}
	defer close(l.done)
	// Ignoring close error - nothing more is accepted either way
	defer func() { _ = ln.Close() }()

	l.mu.Lock()
	l.addr = ln.Addr()
	l.mu.Unlock()
	close(l.started)

	slog.InfoContext(ctx, "listening for subscriptions", "addr", ln.Addr().String())

	var conns errgroup.Group
	defer func() { _ = conns.Wait() }()

	for !l.stopping.Load() && ctx.Err() == nil {
		if dl, ok := ln.(deadliner); ok {
			if err := dl.SetDeadline(time.Now().Add(l.acceptTimeout)); err != nil {
				return fmt.Errorf("setting accept deadline: %w", err)
			}
		}

		conn, err := ln.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			slog.ErrorContext(ctx, "accepting connection", "error", err)
			continue
		}

		conns.Go(func() error {
			l.handleConnection(ctx, conn)
			return nil
		})
	}

	slog.InfoContext(ctx, "subscription listener stopping", "addr", ln.Addr().String())
	return nil
}

// Stop asks the accept loop to exit and waits for it, including any connection
// still being handled. It returns immediately if the listener was never started.
func (l *Listener) Stop() {
	l.stopping.Store(true)

	select {
	case <-l.started:
		<-l.done
	default:
	}
}

// Started is closed once the listener is bound.
func (l *Listener) Started() <-chan struct{} {
	return l.started
}

// Addr returns the bound address, or nil before Start has bound the socket.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.addr
}

func (l *Listener) handleConnection(ctx context.Context, conn net.Conn) {
	// Ignoring close error - the reply has already been written or abandoned
	defer func() { _ = conn.Close() }()

	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		slog.WarnContext(ctx, "parsing peer address", "remote", conn.RemoteAddr().String(), "error", err)
		return
	}

	slog.DebugContext(ctx, "connection accepted", "remote", conn.RemoteAddr().String())
	l.router.Handle(ctx, conn, host)
}
