package tournament

import "slices"

// Transition maps one snapshot to the next. Transitions must not modify their input.
type Transition func(Snapshot) Snapshot

// AddPlayer registers a player with status unknown. It is a no-op if the address is
// already registered.
func AddPlayer(name string, addr Address, matricules []string, points, badMoves, matchCount int) Transition {
	return func(s Snapshot) Snapshot {
		if s.HasPlayer(addr) {
			return s
		}
		p := Player{
			Name:       name,
			Address:    addr,
			Matricules: slices.Clone(matricules),
			Points:     points,
			BadMoves:   badMoves,
			MatchCount: matchCount,
			Status:     StatusUnknown,
		}
		s.Players = append(slices.Clone(s.Players), p)
		return s
	}
}

// ChangePlayerStatus sets the status of the player at addr. Unknown addresses are ignored.
func ChangePlayerStatus(addr Address, status Status) Transition {
	return updatePlayer(addr, func(p *Player) {
		p.Status = status
	})
}

// ScorePlayer adds points, bad moves and one played match to the player at addr.
func ScorePlayer(addr Address, points, badMoves int) Transition {
	return updatePlayer(addr, func(p *Player) {
		p.Points += points
		p.BadMoves += badMoves
		p.MatchCount++
	})
}

// AddMatchResult appends a match result. Player scores are left untouched.
func AddMatchResult(players []Address, winner *int, badMoves []int, moveCount int, playerTimes []float64, totalTime float64) Transition {
	return AppendResult(MatchResult{
		Players:     players,
		Winner:      winner,
		BadMoves:    badMoves,
		MoveCount:   moveCount,
		PlayerTimes: playerTimes,
		TotalTime:   totalTime,
	})
}

// AppendResult appends a copy of r to the match history.
func AppendResult(r MatchResult) Transition {
	r.Players = slices.Clone(r.Players)
	r.BadMoves = slices.Clone(r.BadMoves)
	r.PlayerTimes = slices.Clone(r.PlayerTimes)
	if r.Winner != nil {
		w := *r.Winner
		r.Winner = &w
	}
	return func(s Snapshot) Snapshot {
		s.Results = append(slices.Clone(s.Results), r)
		return s
	}
}

// Chain applies transitions in order.
func Chain(ts ...Transition) Transition {
	return func(s Snapshot) Snapshot {
		for _, t := range ts {
			s = t(s)
		}
		return s
	}
}

func updatePlayer(addr Address, fn func(*Player)) Transition {
	return func(s Snapshot) Snapshot {
		i := s.indexOf(addr)
		if i < 0 {
			return s
		}
		s.Players = slices.Clone(s.Players)
		fn(&s.Players[i])
		return s
	}
}
