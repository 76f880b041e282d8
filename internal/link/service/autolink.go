package service

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"auditlink/internal/audit"
	catmodels "auditlink/internal/catalog/models"
	"auditlink/internal/link/models"
	dErrors "auditlink/pkg/domain-errors"
	"auditlink/pkg/requestcontext"
)

type declaredKey struct {
	standard string
	code     string
}

// AutoLink scans unlinked evidence items that declare both a standard and a
// requirement code, and links each to every requirement whose (standard,
// code) matches exactly. Matching is best-effort: items without declared
// metadata, without a matching requirement, or no longer unlinked are
// skipped. When several requirements share a code within a standard, all of
// them are linked.
//
// Idempotent with respect to already-linked items: a second pass skips
// everything the first pass linked, because those items are no longer
// unlinked.
func (e *Engine) AutoLink(ctx context.Context) (*models.AutoLinkResult, error) {
	ctx, span := e.tracer.Start(ctx, "link.auto")
	defer span.End()
	defer e.observe("auto", time.Now())

	evidence, err := e.catalog.Evidence(ctx)
	if err != nil {
		return nil, err
	}
	requirements, err := e.catalog.Requirements(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := e.store.CountsByEvidence(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "count links by evidence")
	}

	byDeclared := make(map[declaredKey][]*catmodels.Requirement)
	for _, req := range requirements {
		key := declaredKey{standard: req.Standard, code: req.Code}
		byDeclared[key] = append(byDeclared[key], req)
	}

	actor := requestcontext.Actor(ctx)
	now := requestcontext.Now(ctx)
	attrs := models.Attrs{
		Type:     models.TypeDirect,
		Strength: models.StrengthAuto,
		Tags:     []string{models.AutoLinkTag},
	}

	var mu sync.Mutex
	result := &models.AutoLinkResult{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.insertLimit)
	for _, item := range evidence {
		if counts[item.ID] > 0 || !item.HasDeclaredMatch() {
			result.Skipped++
			continue
		}
		matches := byDeclared[declaredKey{standard: item.DeclaredStandard, code: item.DeclaredCode}]
		if len(matches) == 0 {
			result.Skipped++
			continue
		}
		for _, req := range matches {
			g.Go(func() error {
				link, err := models.NewLink(item.ID, req.ID, attrs, actor, now)
				if err == nil {
					_, err = e.store.Insert(gctx, link)
				}

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					e.logger.Warn("auto-link insert failed",
						"evidence_id", item.ID,
						"requirement_id", req.ID,
						"error", err)
					result.Failed = append(result.Failed, item.ID.String())
					return nil
				}
				result.Created++
				return nil
			})
		}
	}
	_ = g.Wait()

	span.SetAttributes(
		attribute.Int("created", result.Created),
		attribute.Int("skipped", result.Skipped),
	)
	e.metrics.AddCreated("auto", result.Created)
	e.metrics.IncrementAutoLinkRuns()
	e.emitAudit(ctx, audit.Event{
		Type:      audit.EventLinkAutoCreated,
		SubjectID: "auto-link pass",
		Detail: map[string]any{
			"created": result.Created,
			"skipped": result.Skipped,
			"failed":  len(result.Failed),
		},
	})
	e.logger.Info("auto-link pass complete",
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", len(result.Failed),
		"request_id", requestcontext.RequestID(ctx))
	return result, nil
}
