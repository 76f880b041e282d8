package service

import (
	"context"

	"auditlink/internal/link/models"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

// StatusReport pairs the derived status with the count it was derived from.
type StatusReport struct {
	EvidenceID id.EvidenceID        `json:"evidence_id"`
	LinkCount  int                  `json:"link_count"`
	Status     models.DerivedStatus `json:"status"`
}

// Status derives the linkage status for one evidence item from its current
// link count. The evidence id must resolve in the catalog.
func (e *Engine) Status(ctx context.Context, evidenceID id.EvidenceID) (*StatusReport, error) {
	if _, err := e.catalog.EvidenceByID(ctx, evidenceID); err != nil {
		return nil, err
	}
	count, err := e.store.CountByEvidence(ctx, evidenceID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "count links")
	}
	return &StatusReport{
		EvidenceID: evidenceID,
		LinkCount:  count,
		Status:     models.DeriveStatus(count),
	}, nil
}
