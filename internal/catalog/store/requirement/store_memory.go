package requirement

import (
	"context"
	"sort"
	"sync"

	"auditlink/internal/catalog"
	"auditlink/internal/catalog/models"
	id "auditlink/pkg/domain"
)

// InMemoryStore holds requirements in memory, seeded once per session from
// the regulatory framework fixtures.
type InMemoryStore struct {
	mu           sync.RWMutex
	requirements map[id.RequirementID]*models.Requirement
}

// NewInMemoryStore creates an empty in-memory requirement store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{requirements: make(map[id.RequirementID]*models.Requirement)}
}

// Seed inserts a requirement.
func (s *InMemoryStore) Seed(_ context.Context, req *models.Requirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *req
	s.requirements[req.ID] = &cp
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Requirement, 0, len(s.requirements))
	for _, req := range s.requirements {
		cp := *req
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Standard != out[j].Standard {
			return out[i].Standard < out[j].Standard
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, requirementID id.RequirementID) (*models.Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requirements[requirementID]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *req
	return &cp, nil
}
