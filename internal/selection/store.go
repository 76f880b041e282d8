package selection

import (
	"context"
	"sync"
)

// Store persists selection sets per session key. Load returns a fresh empty
// set for unknown sessions; selections are ephemeral and losing one is
// never an error worth surfacing to the operator.
type Store interface {
	Load(ctx context.Context, session string) (*Set, error)
	Save(ctx context.Context, session string, set *Set) error
}

// InMemoryStore keeps selections in process memory. Suitable for a single
// instance; multi-instance deployments use the redis store.
type InMemoryStore struct {
	mu   sync.RWMutex
	sets map[string]*Set
}

// NewInMemoryStore creates an empty selection store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sets: make(map[string]*Set)}
}

func (s *InMemoryStore) Load(_ context.Context, session string) (*Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sets[session]
	if !ok {
		return NewSet(), nil
	}
	return set.Clone(), nil
}

func (s *InMemoryStore) Save(_ context.Context, session string, set *Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[session] = set.Clone()
	return nil
}
