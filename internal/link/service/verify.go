package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"auditlink/internal/audit"
	"auditlink/internal/link/models"
	"auditlink/internal/link/store"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
	"auditlink/pkg/requestcontext"
)

// Verify marks the given links verified, stamping the acting user and the
// request time. Verification is monotonic; links that are already verified
// count as succeeded. Unknown link ids and store failures are skipped and
// collected.
func (e *Engine) Verify(ctx context.Context, linkIDs []id.LinkID) (*models.BatchResult, error) {
	ctx, span := e.tracer.Start(ctx, "link.verify",
		trace.WithAttributes(attribute.Int("link_count", len(linkIDs))))
	defer span.End()
	defer e.observe("verify", time.Now())

	if len(linkIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "link_ids must not be empty")
	}

	actor := requestcontext.Actor(ctx)
	now := requestcontext.Now(ctx)

	result := &models.BatchResult{}
	for _, linkID := range linkIDs {
		if err := e.store.MarkVerified(ctx, linkID, actor, now); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				e.logger.Warn("verify link failed", "link_id", linkID, "error", err)
			}
			result.RecordFailure(linkID.String(), err)
			continue
		}
		result.Succeeded++
	}

	e.metrics.AddVerified(result.Succeeded)
	e.emitAudit(ctx, audit.Event{
		Type:      audit.EventLinkVerified,
		SubjectID: subjectForVerify(linkIDs),
		Detail: map[string]any{
			"succeeded": result.Succeeded,
			"failed":    result.FailedCount(),
		},
	})
	e.logBatch(ctx, "verify complete", result)
	return result, nil
}

// FindUnverified returns all links whose verified flag is still false.
func (e *Engine) FindUnverified(ctx context.Context) ([]*models.Link, error) {
	unverified := false
	links, err := e.store.List(ctx, store.Filter{Verified: &unverified})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "list unverified links")
	}
	return links, nil
}

func subjectForVerify(linkIDs []id.LinkID) string {
	if len(linkIDs) == 1 {
		return linkIDs[0].String()
	}
	return "batch"
}
