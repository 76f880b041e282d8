// Package catalog owns the two reference-data collections the engine reads:
// uploaded evidence items and the requirement hierarchy. Both are loaded by
// external collaborators before the engine runs and are read-only here.
package catalog

import (
	"context"

	"auditlink/internal/catalog/models"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

// ErrNotFound keeps catalog 404s consistent across store implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "catalog record not found")

// EvidenceStore is the repository boundary for evidence items. List returns
// items for one factory ordered by upload time descending.
type EvidenceStore interface {
	List(ctx context.Context, factoryID id.FactoryID) ([]*models.EvidenceItem, error)
	FindByID(ctx context.Context, evidenceID id.EvidenceID) (*models.EvidenceItem, error)
}

// RequirementStore is the repository boundary for requirements. List returns
// all requirements ordered by standard, then category, then code.
type RequirementStore interface {
	List(ctx context.Context) ([]*models.Requirement, error)
	FindByID(ctx context.Context, requirementID id.RequirementID) (*models.Requirement, error)
}
