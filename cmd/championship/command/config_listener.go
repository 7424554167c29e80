package command

import (
	"fmt"

	"github.com/pixil98/go-championship/internal/server"
	"github.com/pixil98/go-championship/internal/wire"
	"github.com/pixil98/go-errors"
)

const DefaultPort = 3000

type ListenerConfig struct {
	Port           uint16 `json:"port"`
	AcceptTimeout  string `json:"accept_timeout"`
	ReceiveTimeout string `json:"receive_timeout"`
	SubscribeDelay string `json:"subscribe_delay"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	for name, v := range map[string]string{
		"accept_timeout":  cl.AcceptTimeout,
		"receive_timeout": cl.ReceiveTimeout,
		"subscribe_delay": cl.SubscribeDelay,
	} {
		_, err := parseOptionalDuration(v, 0)
		if err != nil {
			el.Add(fmt.Errorf("listener: parsing %s: %w", name, err))
		}
	}

	return el.Err()
}

func (cl *ListenerConfig) port() uint16 {
	if cl.Port == 0 {
		return DefaultPort
	}
	return cl.Port
}

func (cl *ListenerConfig) BuildRouter(subs *server.Subscriptions) (*server.Router, error) {
	d, err := parseOptionalDuration(cl.ReceiveTimeout, wire.DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing receive_timeout: %w", err)
	}
	return server.NewRouter(subs, server.WithReceiveTimeout(d)), nil
}

func (cl *ListenerConfig) SubscriptionOpts() ([]server.SubscriptionsOpt, error) {
	d, err := parseOptionalDuration(cl.SubscribeDelay, server.DefaultConfirmDelay)
	if err != nil {
		return nil, fmt.Errorf("parsing subscribe_delay: %w", err)
	}
	return []server.SubscriptionsOpt{server.WithConfirmDelay(d)}, nil
}

func (cl *ListenerConfig) BuildListener(router *server.Router) (*server.Listener, error) {
	d, err := parseOptionalDuration(cl.AcceptTimeout, server.DefaultAcceptTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing accept_timeout: %w", err)
	}
	return server.NewListener(cl.port(), router, server.WithAcceptTimeout(d)), nil
}
