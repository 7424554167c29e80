package tournament

import (
	"context"
	"sync"
)

const (
	// EventMatchEnd fires after a match result has been recorded.
	EventMatchEnd = "matchEnd"
	// EventPlayerSubscribed fires after a new player record has been created.
	EventPlayerSubscribed = "playerSubscribed"
)

type Hook func(context.Context)

// Hooks maps event names to callbacks.
type Hooks struct {
	mu    sync.RWMutex
	hooks map[string][]Hook
}

func NewHooks() *Hooks {
	return &Hooks{hooks: map[string][]Hook{}}
}

// Register appends fn to the callbacks for event.
func (h *Hooks) Register(event string, fn Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hooks[event] = append(h.hooks[event], fn)
}

// Fire runs the callbacks for event synchronously, in registration order.
func (h *Hooks) Fire(ctx context.Context, event string) {
	h.mu.RLock()
	hooks := h.hooks[event]
	h.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx)
	}
}
