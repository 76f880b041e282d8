// Package store defines the persistence boundary for links. The engine
// treats the store as an append-mostly log with batched delete, owned by
// the external document repository.
package store

import (
	"context"
	"time"

	"auditlink/internal/link/models"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

// ErrNotFound keeps store 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "link not found")

// Filter narrows List results. Nil fields match everything, so queries are
// restartable snapshots: each List call re-reads current state.
type Filter struct {
	EvidenceID    *id.EvidenceID
	RequirementID *id.RequirementID
	Verified      *bool
}

// Store is the repository boundary for links.
//
// Batched mutations (DeleteBatch, DeleteByEvidence) are atomic with respect
// to List: no query observes a half-applied batch. Insert never enforces
// referential integrity to the catalogs; that check belongs to the engine.
type Store interface {
	Insert(ctx context.Context, link *models.Link) (id.LinkID, error)
	List(ctx context.Context, filter Filter) ([]*models.Link, error)
	FindByID(ctx context.Context, linkID id.LinkID) (*models.Link, error)
	// CountByEvidence returns the number of links referencing the evidence
	// item; status derivation is defined over this count.
	CountByEvidence(ctx context.Context, evidenceID id.EvidenceID) (int, error)
	// CountsByEvidence returns counts for all evidence items with at least
	// one link. Items absent from the map have zero links.
	CountsByEvidence(ctx context.Context) (map[id.EvidenceID]int, error)
	// DeleteByEvidence removes every link for one evidence item, returning
	// the number removed.
	DeleteByEvidence(ctx context.Context, evidenceID id.EvidenceID) (int, error)
	// DeleteBatch removes links matching any of the given evidence ids or
	// any of the given requirement ids, returning the number removed.
	DeleteBatch(ctx context.Context, evidenceIDs []id.EvidenceID, requirementIDs []id.RequirementID) (int, error)
	// MarkVerified flips one link to verified, recording verifier and
	// timestamp. Returns ErrNotFound when the link does not exist.
	MarkVerified(ctx context.Context, linkID id.LinkID, verifiedBy string, at time.Time) error
}
