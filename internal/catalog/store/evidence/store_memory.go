package evidence

import (
	"context"
	"sort"
	"sync"

	"auditlink/internal/catalog"
	"auditlink/internal/catalog/models"
	id "auditlink/pkg/domain"
)

// InMemoryStore holds evidence items in memory. Used in development, tests,
// and as the seed target when catalogs are loaded from fixtures.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[id.EvidenceID]*models.EvidenceItem
}

// NewInMemoryStore creates an empty in-memory evidence store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[id.EvidenceID]*models.EvidenceItem)}
}

// Seed inserts an item. Copies are stored so callers cannot mutate shared
// state after seeding.
func (s *InMemoryStore) Seed(_ context.Context, item *models.EvidenceItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

// Delete removes an item, simulating an external collaborator deleting
// evidence. Returns catalog.ErrNotFound if absent.
func (s *InMemoryStore) Delete(_ context.Context, evidenceID id.EvidenceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[evidenceID]; !ok {
		return catalog.ErrNotFound
	}
	delete(s.items, evidenceID)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, factoryID id.FactoryID) ([]*models.EvidenceItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.EvidenceItem, 0, len(s.items))
	for _, item := range s.items {
		if item.FactoryID != factoryID {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, evidenceID id.EvidenceID) (*models.EvidenceItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[evidenceID]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *item
	return &cp, nil
}
