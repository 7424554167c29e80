package championship

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-championship/internal/tournament"
	"github.com/pixil98/go-testutil"
)

var (
	addrA = tournament.NewAddress("10.0.0.1", 4000)
	addrB = tournament.NewAddress("10.0.0.2", 4000)
	addrC = tournament.NewAddress("10.0.0.3", 4000)
)

func newRoster(statuses ...tournament.Status) *tournament.Store {
	store := tournament.NewStore()
	addrs := []tournament.Address{addrA, addrB, addrC}
	names := []string{"A", "B", "C"}
	for i, st := range statuses {
		store.Update(tournament.Chain(
			tournament.AddPlayer(names[i], addrs[i], nil, 0, 0, 0),
			tournament.ChangePlayerStatus(addrs[i], st),
		))
	}
	return store
}

// firstWins is a referee where the first player always wins with one bad move from the loser.
func firstWins(calls *[][]tournament.Player) Referee {
	return RefereeFunc(func(_ context.Context, players []tournament.Player) (tournament.MatchResult, error) {
		*calls = append(*calls, players)
		winner := 0
		return tournament.MatchResult{
			Winner:      &winner,
			BadMoves:    []int{0, 1},
			MoveCount:   10,
			PlayerTimes: []float64{1, 2},
			TotalTime:   3,
		}, nil
	})
}

func TestScheduler_Tick(t *testing.T) {
	store := newRoster(tournament.StatusOnline, tournament.StatusOnline)
	hooks := tournament.NewHooks()
	ended := 0
	hooks.Register(tournament.EventMatchEnd, func(context.Context) { ended++ })

	var calls [][]tournament.Player
	s := NewScheduler(firstWins(&calls), store, hooks)

	err := s.Tick(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := store.State()
	testutil.AssertEqual(t, "match end hooks", ended, 1)
	testutil.AssertEqual(t, "result count", len(snap.Results), 1)
	if snap.Results[0].ID == "" {
		t.Error("expected result id to be set")
	}
	testutil.AssertEqual(t, "result players", len(snap.Results[0].Players), 2)

	a, _ := snap.Player(addrA)
	b, _ := snap.Player(addrB)
	testutil.AssertEqual(t, "A points", a.Points, WinPoints)
	testutil.AssertEqual(t, "A matchCount", a.MatchCount, 1)
	testutil.AssertEqual(t, "B points", b.Points, 0)
	testutil.AssertEqual(t, "B badMoves", b.BadMoves, 1)
	testutil.AssertEqual(t, "B matchCount", b.MatchCount, 1)
}

func TestScheduler_Draw(t *testing.T) {
	store := newRoster(tournament.StatusOnline, tournament.StatusOnline)
	ref := RefereeFunc(func(context.Context, []tournament.Player) (tournament.MatchResult, error) {
		return tournament.MatchResult{}, nil
	})

	s := NewScheduler(ref, store, tournament.NewHooks())
	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range store.State().AllPlayers() {
		testutil.AssertEqual(t, p.Name+" points", p.Points, DrawPoints)
	}
}

func TestScheduler_SkipsLostPlayers(t *testing.T) {
	tests := map[string]struct {
		statuses []tournament.Status
		expMatch bool
	}{
		"two online": {
			statuses: []tournament.Status{tournament.StatusOnline, tournament.StatusOnline},
			expMatch: true,
		},
		"unknown counts as available": {
			statuses: []tournament.Status{tournament.StatusOnline, tournament.StatusUnknown},
			expMatch: true,
		},
		"one lost": {
			statuses: []tournament.Status{tournament.StatusOnline, tournament.StatusLost},
			expMatch: false,
		},
		"single player": {
			statuses: []tournament.Status{tournament.StatusOnline},
			expMatch: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var calls [][]tournament.Player
			store := newRoster(tt.statuses...)
			s := NewScheduler(firstWins(&calls), store, tournament.NewHooks())

			if err := s.Tick(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "played", len(calls) == 1, tt.expMatch)
		})
	}
}

func TestScheduler_RoundRobin(t *testing.T) {
	var calls [][]tournament.Player
	store := newRoster(tournament.StatusOnline, tournament.StatusOnline, tournament.StatusOnline)
	s := NewScheduler(firstWins(&calls), store, tournament.NewHooks())

	for i := 0; i < 6; i++ {
		if err := s.Tick(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	meetings := map[[2]string]int{}
	for _, c := range calls {
		meetings[[2]string{c[0].Name, c[1].Name}]++
	}
	testutil.AssertEqual(t, "distinct ordered pairings", len(meetings), 6)
	for pair, n := range meetings {
		testutil.AssertEqual(t, pair[0]+" vs "+pair[1], n, 1)
	}
}

func TestScheduler_MatchLimit(t *testing.T) {
	var calls [][]tournament.Player
	store := newRoster(tournament.StatusOnline, tournament.StatusOnline)
	s := NewScheduler(firstWins(&calls), store, tournament.NewHooks(), WithMatchLimit(2))

	for i := 0; i < 5; i++ {
		if err := s.Tick(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	testutil.AssertEqual(t, "matches played", len(calls), 2)
	testutil.AssertEqual(t, "done", s.Done(), true)
}

func TestScheduler_RefereeError(t *testing.T) {
	store := newRoster(tournament.StatusOnline, tournament.StatusOnline)
	hooks := tournament.NewHooks()
	ended := 0
	hooks.Register(tournament.EventMatchEnd, func(context.Context) { ended++ })
	ref := RefereeFunc(func(context.Context, []tournament.Player) (tournament.MatchResult, error) {
		return tournament.MatchResult{}, errors.New("player crashed")
	})

	s := NewScheduler(ref, store, hooks)
	err := s.Tick(context.Background())

	testutil.AssertErrorContains(t, err, "player crashed")
	testutil.AssertEqual(t, "result count", len(store.State().Results), 0)
	testutil.AssertEqual(t, "match end hooks", ended, 0)
}

func TestScheduler_StartStopsOnCancel(t *testing.T) {
	var calls [][]tournament.Player
	store := newRoster(tournament.StatusOnline)
	s := NewScheduler(firstWins(&calls), store, tournament.NewHooks(), WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
