package championship

import (
	"context"

	"github.com/pixil98/go-championship/internal/tournament"
)

// Referee plays one match of a specific game between the given players and reports
// the outcome. Game rules and move exchange with the players live behind it.
type Referee interface {
	Play(ctx context.Context, players []tournament.Player) (tournament.MatchResult, error)
}

// RefereeFunc adapts a function to the Referee interface.
type RefereeFunc func(ctx context.Context, players []tournament.Player) (tournament.MatchResult, error)

func (f RefereeFunc) Play(ctx context.Context, players []tournament.Player) (tournament.MatchResult, error) {
	return f(ctx, players)
}
