package command

import (
	"fmt"
	"os"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	Game          string         `json:"game"`
	LoadPath      string         `json:"load_path"`
	SavePath      string         `json:"save_path"`
	MatchCount    int            `json:"match_count"`
	MatchInterval string         `json:"match_interval"`
	Listener      ListenerConfig `json:"listener"`
	Liveness      LivenessConfig `json:"liveness"`
	Nats          NatsConfig     `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.LoadPath != "" {
		_, err := os.Stat(c.LoadPath)
		if err != nil {
			el.Add(fmt.Errorf("invalid load_path %q: %w", c.LoadPath, err))
		}
	}

	if c.MatchCount < 0 {
		el.Add(fmt.Errorf("match_count must not be negative"))
	}

	if c.MatchInterval != "" {
		_, err := time.ParseDuration(c.MatchInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing match_interval: %w", err))
		}
	}

	el.Add(c.Listener.validate())
	el.Add(c.Liveness.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

// parseOptionalDuration returns def when s is empty.
func parseOptionalDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
