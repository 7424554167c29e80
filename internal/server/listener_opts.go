package server

import "time"

type ListenerOpt func(*Listener)

// WithAddress overrides the listen address built from the port, e.g. "127.0.0.1:0"
func WithAddress(address string) ListenerOpt {
	return func(l *Listener) {
		l.address = address
	}
}

// WithAcceptTimeout sets how often the accept loop checks whether it should stop
func WithAcceptTimeout(d time.Duration) ListenerOpt {
	return func(l *Listener) {
		l.acceptTimeout = d
	}
}
