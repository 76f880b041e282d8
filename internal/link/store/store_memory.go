package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"auditlink/internal/link/models"
	id "auditlink/pkg/domain"
)

// InMemoryStore keeps links in memory behind one RWMutex. Batched mutations
// run under the write lock, so a List can never observe a half-applied
// batch.
type InMemoryStore struct {
	mu    sync.RWMutex
	links map[id.LinkID]*models.Link
}

// NewInMemoryStore creates an empty in-memory link store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{links: make(map[id.LinkID]*models.Link)}
}

func (s *InMemoryStore) Insert(_ context.Context, link *models.Link) (id.LinkID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *link
	s.links[link.ID] = &cp
	return link.ID, nil
}

func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]*models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Link, 0)
	for _, link := range s.links {
		if !matches(link, filter) {
			continue
		}
		cp := *link
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, linkID id.LinkID) (*models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.links[linkID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *link
	return &cp, nil
}

func (s *InMemoryStore) CountByEvidence(_ context.Context, evidenceID id.EvidenceID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, link := range s.links {
		if link.EvidenceID == evidenceID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) CountsByEvidence(_ context.Context) (map[id.EvidenceID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[id.EvidenceID]int)
	for _, link := range s.links {
		counts[link.EvidenceID]++
	}
	return counts, nil
}

func (s *InMemoryStore) DeleteByEvidence(_ context.Context, evidenceID id.EvidenceID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for linkID, link := range s.links {
		if link.EvidenceID == evidenceID {
			delete(s.links, linkID)
			removed++
		}
	}
	return removed, nil
}

func (s *InMemoryStore) DeleteBatch(_ context.Context, evidenceIDs []id.EvidenceID, requirementIDs []id.RequirementID) (int, error) {
	evidenceSet := make(map[id.EvidenceID]struct{}, len(evidenceIDs))
	for _, eid := range evidenceIDs {
		evidenceSet[eid] = struct{}{}
	}
	requirementSet := make(map[id.RequirementID]struct{}, len(requirementIDs))
	for _, rid := range requirementIDs {
		requirementSet[rid] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for linkID, link := range s.links {
		_, evMatch := evidenceSet[link.EvidenceID]
		_, reqMatch := requirementSet[link.RequirementID]
		if evMatch || reqMatch {
			delete(s.links, linkID)
			removed++
		}
	}
	return removed, nil
}

func (s *InMemoryStore) MarkVerified(_ context.Context, linkID id.LinkID, verifiedBy string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[linkID]
	if !ok {
		return ErrNotFound
	}
	link.ApplyVerification(verifiedBy, at)
	return nil
}

func matches(link *models.Link, filter Filter) bool {
	if filter.EvidenceID != nil && link.EvidenceID != *filter.EvidenceID {
		return false
	}
	if filter.RequirementID != nil && link.RequirementID != *filter.RequirementID {
		return false
	}
	if filter.Verified != nil && link.Verified != *filter.Verified {
		return false
	}
	return true
}
