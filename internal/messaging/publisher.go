package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pixil98/go-championship/internal/tournament"
)

const StateSubject = "championship.state"

// Publisher sends raw messages to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// StatePublisher broadcasts tournament snapshots so renderers can follow the championship.
type StatePublisher struct {
	pub   Publisher
	store *tournament.Store
}

func NewStatePublisher(pub Publisher, store *tournament.Store) *StatePublisher {
	return &StatePublisher{pub: pub, store: store}
}

// Hook publishes the current snapshot. Failures are logged and otherwise ignored.
func (p *StatePublisher) Hook(ctx context.Context) {
	snap := p.store.State()

	data, err := json.Marshal(snap)
	if err != nil {
		slog.ErrorContext(ctx, "marshalling tournament state", "error", err)
		return
	}

	if err := p.pub.Publish(StateSubject, data); err != nil {
		slog.WarnContext(ctx, "publishing tournament state", "version", snap.Version, "error", err)
	}
}
