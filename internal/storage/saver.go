package storage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pixil98/go-championship/internal/tournament"
)

// FileSaver writes the tournament to a file after every match.
type FileSaver struct {
	path  string
	store *tournament.Store

	mu sync.Mutex
}

func NewFileSaver(path string, store *tournament.Store) *FileSaver {
	return &FileSaver{
		path:  path,
		store: store,
	}
}

// Save writes the current snapshot.
func (s *FileSaver) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SaveTournament(s.path, NewTournamentFile(s.store.State()))
}

// Hook saves the tournament, logging any failure. It is meant for the matchEnd event.
func (s *FileSaver) Hook(ctx context.Context) {
	if err := s.Save(); err != nil {
		slog.ErrorContext(ctx, "saving tournament", "path", s.path, "error", err)
		return
	}
	slog.DebugContext(ctx, "tournament saved", "path", s.path)
}
