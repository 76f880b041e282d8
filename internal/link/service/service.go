// Package service implements the linking engine: manual, bulk, and
// heuristic auto-linking between evidence items and requirements, plus
// verification and status derivation.
//
// Batch operations never abort on a single item's failure. Each failed item
// is logged, recorded in the result, and skipped; the rest of the batch
// completes. Inserts within a batch are dispatched concurrently and joined
// before the call returns, so a coverage read issued after a batch never
// observes a half-written store. There is no mutual exclusion across
// concurrent batches; interleaving between them is accepted.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"auditlink/internal/audit"
	catmodels "auditlink/internal/catalog/models"
	"auditlink/internal/link/metrics"
	"auditlink/internal/link/models"
	"auditlink/internal/link/store"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
	"auditlink/pkg/requestcontext"
)

// defaultInsertLimit bounds concurrent store inserts within one batch.
const defaultInsertLimit = 8

// Catalog is the engine's read view of the evidence and requirement
// catalogs. Referential integrity of new links is checked against it, not
// against the link store.
type Catalog interface {
	Evidence(ctx context.Context) ([]*catmodels.EvidenceItem, error)
	EvidenceByID(ctx context.Context, evidenceID id.EvidenceID) (*catmodels.EvidenceItem, error)
	Requirements(ctx context.Context) ([]*catmodels.Requirement, error)
	RequirementByID(ctx context.Context, requirementID id.RequirementID) (*catmodels.Requirement, error)
}

// Auditor records domain events. Emission is fail-open: an audit failure is
// logged but never fails the operation that triggered it.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Engine orchestrates link creation, removal, and verification.
type Engine struct {
	store       store.Store
	catalog     Catalog
	auditor     Auditor
	metrics     *metrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
	insertLimit int
}

// Option configures optional Engine collaborators.
type Option func(*Engine)

// WithAuditor attaches an audit event publisher.
func WithAuditor(auditor Auditor) Option {
	return func(e *Engine) { e.auditor = auditor }
}

// WithMetrics attaches link module metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithInsertLimit overrides the concurrent insert bound for batches.
func WithInsertLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.insertLimit = n
		}
	}
}

// NewEngine creates a linking engine.
func NewEngine(linkStore store.Store, catalog Catalog, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:       linkStore,
		catalog:     catalog,
		logger:      logger,
		tracer:      otel.Tracer("auditlink/link"),
		insertLimit: defaultInsertLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ManualLink inserts one link per requirement id, all with the same attrs.
// The evidence id must resolve in the catalog; requirement ids that do not
// resolve, and inserts that fail, are skipped and collected.
func (e *Engine) ManualLink(ctx context.Context, evidenceID id.EvidenceID, requirementIDs []id.RequirementID, attrs models.Attrs) (*models.BatchResult, error) {
	ctx, span := e.tracer.Start(ctx, "link.manual",
		trace.WithAttributes(attribute.Int("requirement_count", len(requirementIDs))))
	defer span.End()
	defer e.observe("manual", time.Now())

	if len(requirementIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requirement_ids must not be empty")
	}
	if _, err := e.catalog.EvidenceByID(ctx, evidenceID); err != nil {
		return nil, err
	}

	result := &models.BatchResult{}
	validRequirements := make([]id.RequirementID, 0, len(requirementIDs))
	for _, requirementID := range requirementIDs {
		if _, err := e.catalog.RequirementByID(ctx, requirementID); err != nil {
			result.RecordFailure(requirementID.String(), err)
			continue
		}
		validRequirements = append(validRequirements, requirementID)
	}

	inserted := e.insertBatch(ctx, pairsFor([]id.EvidenceID{evidenceID}, validRequirements), attrs)
	result.Succeeded = inserted.Succeeded
	for _, failedID := range inserted.Failed {
		result.RecordFailure(failedID, inserted.FirstErr())
	}

	e.metrics.AddCreated("manual", result.Succeeded)
	e.emitAudit(ctx, audit.Event{
		Type:      audit.EventLinkCreated,
		SubjectID: evidenceID.String(),
		Detail: map[string]any{
			"requirement_count": len(requirementIDs),
			"succeeded":         result.Succeeded,
			"failed":            result.FailedCount(),
		},
	})
	e.logBatch(ctx, "manual link complete", result)
	return result, nil
}

// BulkLink inserts the full cross product of evidence ids and requirement
// ids, each link with identical attrs. Ids missing from the catalogs are
// recorded as failures once and their pairs skipped.
func (e *Engine) BulkLink(ctx context.Context, evidenceIDs []id.EvidenceID, requirementIDs []id.RequirementID, attrs models.Attrs) (*models.BatchResult, error) {
	ctx, span := e.tracer.Start(ctx, "link.bulk",
		trace.WithAttributes(
			attribute.Int("evidence_count", len(evidenceIDs)),
			attribute.Int("requirement_count", len(requirementIDs)),
		))
	defer span.End()
	defer e.observe("bulk", time.Now())

	if len(evidenceIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "evidence_ids must not be empty")
	}
	if len(requirementIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requirement_ids must not be empty")
	}

	result := &models.BatchResult{}
	validEvidence := make([]id.EvidenceID, 0, len(evidenceIDs))
	for _, evidenceID := range evidenceIDs {
		if _, err := e.catalog.EvidenceByID(ctx, evidenceID); err != nil {
			result.RecordFailure(evidenceID.String(), err)
			continue
		}
		validEvidence = append(validEvidence, evidenceID)
	}
	validRequirements := make([]id.RequirementID, 0, len(requirementIDs))
	for _, requirementID := range requirementIDs {
		if _, err := e.catalog.RequirementByID(ctx, requirementID); err != nil {
			result.RecordFailure(requirementID.String(), err)
			continue
		}
		validRequirements = append(validRequirements, requirementID)
	}

	inserted := e.insertBatch(ctx, pairsFor(validEvidence, validRequirements), attrs)
	result.Succeeded = inserted.Succeeded
	for _, failedID := range inserted.Failed {
		result.RecordFailure(failedID, inserted.FirstErr())
	}

	e.metrics.AddCreated("bulk", result.Succeeded)
	e.emitAudit(ctx, audit.Event{
		Type:      audit.EventLinkBulkCreated,
		SubjectID: fmt.Sprintf("%d evidence x %d requirements", len(evidenceIDs), len(requirementIDs)),
		Detail: map[string]any{
			"succeeded": result.Succeeded,
			"failed":    result.FailedCount(),
		},
	})
	e.logBatch(ctx, "bulk link complete", result)
	return result, nil
}

// Unlink removes every link for one evidence item, returning the item to
// the unlinked status. Returns the number of links removed.
func (e *Engine) Unlink(ctx context.Context, evidenceID id.EvidenceID) (int, error) {
	ctx, span := e.tracer.Start(ctx, "link.unlink")
	defer span.End()
	defer e.observe("unlink", time.Now())

	removed, err := e.store.DeleteByEvidence(ctx, evidenceID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "delete links")
	}

	e.metrics.AddDeleted("unlink", removed)
	e.emitAudit(ctx, audit.Event{
		Type:      audit.EventLinksCleared,
		SubjectID: evidenceID.String(),
		Detail:    map[string]any{"removed": removed},
	})
	return removed, nil
}

// Clear removes every link touching any of the given evidence ids or any of
// the given requirement ids, in one batch. At least one id is required.
func (e *Engine) Clear(ctx context.Context, evidenceIDs []id.EvidenceID, requirementIDs []id.RequirementID) (int, error) {
	ctx, span := e.tracer.Start(ctx, "link.clear")
	defer span.End()
	defer e.observe("clear", time.Now())

	if len(evidenceIDs) == 0 && len(requirementIDs) == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "nothing selected to clear")
	}

	removed, err := e.store.DeleteBatch(ctx, evidenceIDs, requirementIDs)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "delete link batch")
	}

	e.metrics.AddDeleted("clear", removed)
	e.emitAudit(ctx, audit.Event{
		Type:      audit.EventLinksCleared,
		SubjectID: fmt.Sprintf("%d evidence, %d requirements", len(evidenceIDs), len(requirementIDs)),
		Detail:    map[string]any{"removed": removed},
	})
	return removed, nil
}

// List returns links matching the filter.
func (e *Engine) List(ctx context.Context, filter store.Filter) ([]*models.Link, error) {
	links, err := e.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "list links")
	}
	return links, nil
}

type pair struct {
	evidenceID    id.EvidenceID
	requirementID id.RequirementID
}

// String identifies both endpoints so a failure in a cross product is
// attributable to the exact link attempt, not just one side.
func (p pair) String() string {
	return p.evidenceID.String() + ":" + p.requirementID.String()
}

func pairsFor(evidenceIDs []id.EvidenceID, requirementIDs []id.RequirementID) []pair {
	pairs := make([]pair, 0, len(evidenceIDs)*len(requirementIDs))
	for _, evidenceID := range evidenceIDs {
		for _, requirementID := range requirementIDs {
			pairs = append(pairs, pair{evidenceID, requirementID})
		}
	}
	return pairs
}

// insertBatch dispatches inserts concurrently and joins them all before
// returning. Workers always return nil: a failed insert is recorded under
// the mutex and the rest of the batch proceeds.
func (e *Engine) insertBatch(ctx context.Context, pairs []pair, attrs models.Attrs) *models.BatchResult {
	actor := requestcontext.Actor(ctx)
	now := requestcontext.Now(ctx)

	var mu sync.Mutex
	result := &models.BatchResult{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.insertLimit)
	for _, p := range pairs {
		g.Go(func() error {
			link, err := models.NewLink(p.evidenceID, p.requirementID, attrs, actor, now)
			if err == nil {
				_, err = e.store.Insert(gctx, link)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.RecordFailure(p.String(), err)
				return nil
			}
			result.Succeeded++
			return nil
		})
	}
	_ = g.Wait()
	return result
}

func (e *Engine) emitAudit(ctx context.Context, event audit.Event) {
	if e.auditor == nil {
		return
	}
	event.Actor = requestcontext.Actor(ctx)
	if err := e.auditor.Emit(ctx, event); err != nil {
		e.logger.Warn("audit emit failed", "event_type", event.Type, "error", err)
	}
}

func (e *Engine) logBatch(ctx context.Context, msg string, result *models.BatchResult) {
	attrs := []any{
		"succeeded", result.Succeeded,
		"failed", result.FailedCount(),
		"request_id", requestcontext.RequestID(ctx),
	}
	if err := result.FirstErr(); err != nil {
		attrs = append(attrs, "first_error", err)
	}
	e.logger.Info(msg, attrs...)
}

func (e *Engine) observe(operation string, start time.Time) {
	e.metrics.ObserveOperation(operation, time.Since(start))
}
