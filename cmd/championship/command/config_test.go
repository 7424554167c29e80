package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-championship/internal/championship"
	"github.com/pixil98/go-championship/internal/games"
	"github.com/pixil98/go-championship/internal/server"
	"github.com/pixil98/go-championship/internal/tournament"
	"github.com/pixil98/go-testutil"
)

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		cfg    Config
		expErr string
	}{
		"empty config": {
			cfg: Config{},
		},
		"negative match count": {
			cfg:    Config{MatchCount: -1},
			expErr: "match_count must not be negative",
		},
		"bad match interval": {
			cfg:    Config{MatchInterval: "soon"},
			expErr: "parsing match_interval",
		},
		"missing load path": {
			cfg:    Config{LoadPath: "/nonexistent/tournament.json"},
			expErr: "invalid load_path",
		},
		"bad receive timeout": {
			cfg:    Config{Listener: ListenerConfig{ReceiveTimeout: "ten"}},
			expErr: "parsing receive_timeout",
		},
		"bad liveness timeout": {
			cfg:    Config{Liveness: LivenessConfig{Timeout: "1 hour"}},
			expErr: "liveness: parsing timeout",
		},
		"bad nats start timeout": {
			cfg:    Config{Nats: NatsConfig{StartTimeout: "x"}},
			expErr: "nats: parsing start_timeout",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestListenerConfig_DefaultPort(t *testing.T) {
	cl := ListenerConfig{}
	testutil.AssertEqual(t, "port", cl.port(), uint16(DefaultPort))

	cl.Port = 4242
	testutil.AssertEqual(t, "port", cl.port(), uint16(4242))
}

func TestBuildWorkers(t *testing.T) {
	games.Register("build-workers-test", championship.RefereeFunc(
		func(context.Context, []tournament.Player) (tournament.MatchResult, error) {
			return tournament.MatchResult{}, nil
		},
	))

	tests := map[string]struct {
		cfg        Config
		expWorkers []string
		expErr     string
	}{
		"subscriptions only": {
			cfg:        Config{},
			expWorkers: []string{"listener"},
		},
		"with game and nats": {
			cfg: Config{
				Game: "build-workers-test",
				Nats: NatsConfig{Enabled: true, Port: -1},
			},
			expWorkers: []string{"listener", "scheduler", "nats"},
		},
		"unknown game": {
			cfg:    Config{Game: "no-such-game"},
			expErr: `unknown game "no-such-game"`,
		},
		"unreadable tournament": {
			cfg:    Config{LoadPath: "/nonexistent/tournament.json"},
			expErr: "loading tournament",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			workers, err := BuildWorkers(&tt.cfg)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "worker count", len(workers), len(tt.expWorkers))
			for _, name := range tt.expWorkers {
				if _, ok := workers[name]; !ok {
					t.Errorf("missing worker %q", name)
				}
			}
		})
	}
}

func TestBuildWorkers_ResumesTournament(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournament.json")
	err := os.WriteFile(path, []byte(`{
		"players": [{"name": "Bot1", "address": ["127.0.0.1", 4000], "matricules": ["m1"], "points": 3, "badMoves": 0, "matchCount": 1}],
		"results": []
	}`), 0644)
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	workers, err := BuildWorkers(&Config{LoadPath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := workers["listener"].(*server.Listener); !ok {
		t.Errorf("listener worker has type %T", workers["listener"])
	}
}

func TestBuildWorkers_WrongConfigType(t *testing.T) {
	_, err := BuildWorkers(struct{}{})
	testutil.AssertErrorContains(t, err, "unable to cast config")
}
