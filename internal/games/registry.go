package games

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pixil98/go-championship/internal/championship"
)

var (
	mu       sync.RWMutex
	referees = map[string]championship.Referee{}
)

// Register makes a game available by name. It panics if name is registered twice.
func Register(name string, r championship.Referee) {
	mu.Lock()
	defer mu.Unlock()

	if r == nil {
		panic("games: Register referee is nil")
	}
	if _, dup := referees[name]; dup {
		panic("games: Register called twice for " + name)
	}
	referees[name] = r
}

// Lookup returns the referee registered for name.
func Lookup(name string) (championship.Referee, error) {
	mu.RLock()
	defer mu.RUnlock()

	r, ok := referees[name]
	if !ok {
		return nil, fmt.Errorf("unknown game %q (available: %v)", name, names())
	}
	return r, nil
}

// Names lists the registered games in alphabetical order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	return names()
}

func names() []string {
	out := make([]string, 0, len(referees))
	for n := range referees {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
