package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-championship/internal/championship"
	"github.com/pixil98/go-championship/internal/games"
	"github.com/pixil98/go-championship/internal/messaging"
	"github.com/pixil98/go-championship/internal/server"
	"github.com/pixil98/go-championship/internal/storage"
	"github.com/pixil98/go-championship/internal/tournament"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	store := tournament.NewStore()
	hooks := tournament.NewHooks()

	// Resume a previous championship before accepting any subscription
	if cfg.LoadPath != "" {
		tf, err := storage.LoadTournament(cfg.LoadPath)
		if err != nil {
			return nil, fmt.Errorf("loading tournament %s: %w", cfg.LoadPath, err)
		}
		tf.Restore(store)
		snap := store.State()
		slog.Info("tournament resumed", "path", cfg.LoadPath, "players", len(snap.Players), "results", len(snap.Results))
	}

	workers := service.WorkerList{}

	// Every finished match re-checks the whole roster first
	checker, err := cfg.Liveness.BuildChecker(store)
	if err != nil {
		return nil, fmt.Errorf("creating liveness checker: %w", err)
	}
	hooks.Register(tournament.EventMatchEnd, checker.CheckAll)

	if cfg.SavePath != "" {
		saver := storage.NewFileSaver(cfg.SavePath, store)
		hooks.Register(tournament.EventMatchEnd, saver.Hook)
	}

	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		pub := messaging.NewStatePublisher(ns, store)
		hooks.Register(tournament.EventMatchEnd, pub.Hook)
		hooks.Register(tournament.EventPlayerSubscribed, pub.Hook)
		workers["nats"] = ns
	}

	// Subscription listener
	subOpts, err := cfg.Listener.SubscriptionOpts()
	if err != nil {
		return nil, fmt.Errorf("creating subscriptions: %w", err)
	}
	subs := server.NewSubscriptions(store, hooks, checker, subOpts...)
	router, err := cfg.Listener.BuildRouter(subs)
	if err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}
	listener, err := cfg.Listener.BuildListener(router)
	if err != nil {
		return nil, fmt.Errorf("creating listener: %w", err)
	}
	workers["listener"] = listener

	if cfg.Game == "" {
		slog.Warn("no game configured, only accepting subscriptions")
		return workers, nil
	}

	referee, err := games.Lookup(cfg.Game)
	if err != nil {
		return nil, fmt.Errorf("selecting game: %w", err)
	}
	interval, err := parseOptionalDuration(cfg.MatchInterval, championship.DefaultInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing match_interval: %w", err)
	}
	workers["scheduler"] = championship.NewScheduler(referee, store, hooks,
		championship.WithInterval(interval),
		championship.WithMatchLimit(cfg.MatchCount),
	)

	return workers, nil
}
