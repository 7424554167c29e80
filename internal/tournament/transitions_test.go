package tournament

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestAddPlayer(t *testing.T) {
	addr := NewAddress("10.0.0.5", 4000)

	tests := map[string]struct {
		initial  Snapshot
		expCount int
		expName  string
	}{
		"empty roster": {
			initial:  Snapshot{},
			expCount: 1,
			expName:  "Bot1",
		},
		"address already registered": {
			initial: Snapshot{Players: []Player{
				{Name: "Original", Address: addr, Status: StatusOnline},
			}},
			expCount: 1,
			expName:  "Original",
		},
		"other address registered": {
			initial: Snapshot{Players: []Player{
				{Name: "Other", Address: NewAddress("10.0.0.5", 4001)},
			}},
			expCount: 2,
			expName:  "Bot1",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			next := AddPlayer("Bot1", addr, []string{"m1"}, 0, 0, 0)(tt.initial)

			testutil.AssertEqual(t, "player count", len(next.Players), tt.expCount)
			p, ok := next.Player(addr)
			testutil.AssertEqual(t, "found", ok, true)
			testutil.AssertEqual(t, "name", p.Name, tt.expName)
		})
	}
}

func TestAddPlayer_DefaultsToUnknown(t *testing.T) {
	addr := NewAddress("127.0.0.1", 5000)
	next := AddPlayer("Bot", addr, []string{"a", "b"}, 4, 2, 3)(Snapshot{})

	p, _ := next.Player(addr)
	testutil.AssertEqual(t, "status", p.Status, StatusUnknown)
	testutil.AssertEqual(t, "points", p.Points, 4)
	testutil.AssertEqual(t, "badMoves", p.BadMoves, 2)
	testutil.AssertEqual(t, "matchCount", p.MatchCount, 3)
	testutil.AssertEqual(t, "matricules", len(p.Matricules), 2)
}

func TestTransitions_DoNotModifyInput(t *testing.T) {
	a := NewAddress("127.0.0.1", 1)
	b := NewAddress("127.0.0.1", 2)
	initial := Chain(
		AddPlayer("A", a, nil, 0, 0, 0),
		AddPlayer("B", b, nil, 0, 0, 0),
	)(Snapshot{})

	next := ChangePlayerStatus(a, StatusOnline)(initial)
	next = ScorePlayer(b, 3, 1)(next)
	next = AddMatchResult([]Address{a, b}, nil, []int{0, 1}, 10, []float64{1, 2}, 3)(next)

	testutil.AssertEqual(t, "original status", initial.Players[0].Status, StatusUnknown)
	testutil.AssertEqual(t, "original points", initial.Players[1].Points, 0)
	testutil.AssertEqual(t, "original results", len(initial.Results), 0)

	testutil.AssertEqual(t, "new status", next.Players[0].Status, StatusOnline)
	testutil.AssertEqual(t, "new points", next.Players[1].Points, 3)
	testutil.AssertEqual(t, "new badMoves", next.Players[1].BadMoves, 1)
	testutil.AssertEqual(t, "new matchCount", next.Players[1].MatchCount, 1)
	testutil.AssertEqual(t, "new results", len(next.Results), 1)
}

func TestChangePlayerStatus_UnknownAddress(t *testing.T) {
	initial := AddPlayer("A", NewAddress("h", 1), nil, 0, 0, 0)(Snapshot{})

	next := ChangePlayerStatus(NewAddress("h", 2), StatusLost)(initial)

	testutil.AssertEqual(t, "player count", len(next.Players), 1)
	testutil.AssertEqual(t, "status", next.Players[0].Status, StatusUnknown)
}

func TestAddMatchResult_LeavesScores(t *testing.T) {
	a := NewAddress("h", 1)
	b := NewAddress("h", 2)
	winner := 0
	initial := Chain(
		AddPlayer("A", a, nil, 5, 0, 2),
		AddPlayer("B", b, nil, 1, 0, 2),
	)(Snapshot{})

	next := AddMatchResult([]Address{a, b}, &winner, []int{0, 0}, 7, []float64{0.5, 0.6}, 1.1)(initial)

	testutil.AssertEqual(t, "A points", next.Players[0].Points, 5)
	testutil.AssertEqual(t, "B matchCount", next.Players[1].MatchCount, 2)
	testutil.AssertEqual(t, "winner", *next.Results[0].Winner, 0)
	testutil.AssertEqual(t, "moveCount", next.Results[0].MoveCount, 7)
}
