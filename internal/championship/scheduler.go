package championship

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-championship/internal/tournament"
)

const (
	DefaultInterval = time.Second * 2

	WinPoints  = 3
	DrawPoints = 1
)

// Scheduler plays round-robin matches between reachable players, one per tick.
type Scheduler struct {
	referee  Referee
	store    *tournament.Store
	hooks    *tournament.Hooks
	interval time.Duration
	limit    int

	played int
}

func NewScheduler(referee Referee, store *tournament.Store, hooks *tournament.Hooks, opts ...SchedulerOpt) *Scheduler {
	s := &Scheduler{
		referee:  referee,
		store:    store,
		hooks:    hooks,
		interval: DefaultInterval,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if s.Done() {
				continue
			}
			err := s.Tick(ctx)
			if err != nil {
				slog.WarnContext(ctx, "playing match", "error", err)
			}
		}
	}
}

// Done reports whether the match limit has been reached.
func (s *Scheduler) Done() bool {
	return s.limit > 0 && s.played >= s.limit
}

// Tick plays the next match, if two players are available. It records the result,
// scores the players and fires the matchEnd event.
func (s *Scheduler) Tick(ctx context.Context) error {
	if s.Done() {
		return nil
	}

	snap := s.store.State()
	players, ok := nextPairing(snap)
	if !ok {
		return nil
	}

	slog.InfoContext(ctx, "starting match", "players", []string{players[0].Name, players[1].Name})

	result, err := s.referee.Play(ctx, players)
	if err != nil {
		return fmt.Errorf("playing %s against %s: %w", players[0].Name, players[1].Name, err)
	}

	result.ID = uuid.NewString()
	if len(result.Players) == 0 {
		for _, p := range players {
			result.Players = append(result.Players, p.Address)
		}
	}

	s.store.Update(tournament.Chain(append(
		[]tournament.Transition{tournament.AppendResult(result)},
		scoreTransitions(result)...,
	)...))
	s.played++

	slog.InfoContext(ctx, "match ended", "id", result.ID, "winner", winnerName(result, players))

	s.hooks.Fire(ctx, tournament.EventMatchEnd)
	return nil
}

func scoreTransitions(r tournament.MatchResult) []tournament.Transition {
	ts := make([]tournament.Transition, 0, len(r.Players))
	for i, addr := range r.Players {
		points := 0
		switch {
		case r.Winner == nil:
			points = DrawPoints
		case *r.Winner == i:
			points = WinPoints
		}

		badMoves := 0
		if i < len(r.BadMoves) {
			badMoves = r.BadMoves[i]
		}

		ts = append(ts, tournament.ScorePlayer(addr, points, badMoves))
	}
	return ts
}

// nextPairing picks the two non-lost players that have met each other the fewest
// times. Ties go to the earliest registered players.
func nextPairing(snap tournament.Snapshot) ([]tournament.Player, bool) {
	var candidates []tournament.Player
	for _, p := range snap.Players {
		if p.Status != tournament.StatusLost {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) < 2 {
		return nil, false
	}

	meetings := map[[2]tournament.Address]int{}
	for _, r := range snap.Results {
		for i := range r.Players {
			for j := range r.Players {
				if i != j {
					meetings[[2]tournament.Address{r.Players[i], r.Players[j]}]++
				}
			}
		}
	}

	best := -1
	var pair []tournament.Player
	for i := range candidates {
		for j := i + 1; j < len(candidates); j++ {
			n := meetings[[2]tournament.Address{candidates[i].Address, candidates[j].Address}]
			if best < 0 || n < best {
				best = n
				pair = []tournament.Player{candidates[i], candidates[j]}
			}
		}
	}

	// Alternate who moves first on each rematch.
	if best%2 == 1 {
		pair[0], pair[1] = pair[1], pair[0]
	}
	return pair, true
}

func winnerName(r tournament.MatchResult, players []tournament.Player) string {
	if r.Winner == nil {
		return "draw"
	}
	for _, p := range players {
		if *r.Winner < len(r.Players) && p.Address == r.Players[*r.Winner] {
			return p.Name
		}
	}
	return "unknown"
}
