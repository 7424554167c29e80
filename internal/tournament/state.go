package tournament

import "slices"

type Status string

const (
	StatusUnknown Status = "unknown"
	StatusOnline  Status = "online"
	StatusLost    Status = "lost"
)

// Player is a registered player program.
type Player struct {
	Name       string   `json:"name"`
	Address    Address  `json:"address"`
	Matricules []string `json:"matricules"`
	Points     int      `json:"points"`
	BadMoves   int      `json:"badMoves"`
	MatchCount int      `json:"matchCount"`
	Status     Status   `json:"status"`
}

// MatchResult is the outcome of one match. Winner indexes Players; nil means a draw.
type MatchResult struct {
	ID          string    `json:"id,omitempty"`
	Players     []Address `json:"players"`
	Winner      *int      `json:"winner"`
	BadMoves    []int     `json:"badMoves"`
	MoveCount   int       `json:"moveCount"`
	PlayerTimes []float64 `json:"playerTimes"`
	TotalTime   float64   `json:"totalTime"`
}

// Snapshot is an immutable view of the tournament. Do not modify the slices of a
// snapshot returned by the store; build a new one with a Transition instead.
type Snapshot struct {
	Version int           `json:"version"`
	Players []Player      `json:"players"`
	Results []MatchResult `json:"results"`
}

// AllPlayers returns a copy of the roster in registration order.
func (s Snapshot) AllPlayers() []Player {
	return slices.Clone(s.Players)
}

// Player returns the player registered at addr.
func (s Snapshot) Player(addr Address) (Player, bool) {
	i := s.indexOf(addr)
	if i < 0 {
		return Player{}, false
	}
	return s.Players[i], true
}

func (s Snapshot) HasPlayer(addr Address) bool {
	return s.indexOf(addr) >= 0
}

func (s Snapshot) indexOf(addr Address) int {
	return slices.IndexFunc(s.Players, func(p Player) bool {
		return p.Address == addr
	})
}
