package command

import (
	"fmt"

	"github.com/pixil98/go-championship/internal/liveness"
	"github.com/pixil98/go-championship/internal/tournament"
	"github.com/pixil98/go-championship/internal/wire"
)

type LivenessConfig struct {
	Timeout string `json:"timeout"`
}

func (c *LivenessConfig) validate() error {
	_, err := parseOptionalDuration(c.Timeout, wire.DefaultTimeout)
	if err != nil {
		return fmt.Errorf("liveness: parsing timeout: %w", err)
	}
	return nil
}

func (c *LivenessConfig) BuildChecker(store *tournament.Store) (*liveness.Checker, error) {
	d, err := parseOptionalDuration(c.Timeout, wire.DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing timeout: %w", err)
	}
	return liveness.NewChecker(store, liveness.WithTimeout(d)), nil
}
