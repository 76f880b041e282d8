// Package service provides the read-through cached view of the catalogs.
//
// The catalogs are immutable per session, so the engine reads them through a
// cache that loads once and serves from memory until explicitly invalidated.
// Explicit invalidation replaces the ambient global collections the original
// system kept as an in-memory mirror of the remote store.
package service

import (
	"context"
	"log/slog"
	"sync"

	"auditlink/internal/catalog"
	"auditlink/internal/catalog/models"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

// Catalog serves evidence and requirement reads for one factory scope.
type Catalog struct {
	evidence     catalog.EvidenceStore
	requirements catalog.RequirementStore
	factoryID    id.FactoryID
	logger       *slog.Logger

	mu             sync.RWMutex
	evidenceByID   map[id.EvidenceID]*models.EvidenceItem
	evidenceOrder  []id.EvidenceID
	reqByID        map[id.RequirementID]*models.Requirement
	reqOrder       []id.RequirementID
	evidenceLoaded bool
	reqLoaded      bool
}

// New creates a catalog view scoped to one factory.
func New(evidence catalog.EvidenceStore, requirements catalog.RequirementStore, factoryID id.FactoryID, logger *slog.Logger) *Catalog {
	return &Catalog{
		evidence:     evidence,
		requirements: requirements,
		factoryID:    factoryID,
		logger:       logger,
	}
}

// Evidence returns all evidence items in upload order (newest first),
// loading from the store on first call.
func (c *Catalog) Evidence(ctx context.Context) ([]*models.EvidenceItem, error) {
	if err := c.ensureEvidence(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*models.EvidenceItem, 0, len(c.evidenceOrder))
	for _, evidenceID := range c.evidenceOrder {
		out = append(out, c.evidenceByID[evidenceID])
	}
	return out, nil
}

// EvidenceByID resolves one evidence item. Returns CodeNotFound when the id
// is not in the loaded catalog.
func (c *Catalog) EvidenceByID(ctx context.Context, evidenceID id.EvidenceID) (*models.EvidenceItem, error) {
	if err := c.ensureEvidence(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.evidenceByID[evidenceID]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "evidence %s not in catalog", evidenceID)
	}
	return item, nil
}

// Requirements returns all requirements ordered by standard then category.
func (c *Catalog) Requirements(ctx context.Context) ([]*models.Requirement, error) {
	if err := c.ensureRequirements(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*models.Requirement, 0, len(c.reqOrder))
	for _, reqID := range c.reqOrder {
		out = append(out, c.reqByID[reqID])
	}
	return out, nil
}

// RequirementByID resolves one requirement from the loaded catalog.
func (c *Catalog) RequirementByID(ctx context.Context, requirementID id.RequirementID) (*models.Requirement, error) {
	if err := c.ensureRequirements(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	req, ok := c.reqByID[requirementID]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "requirement %s not in catalog", requirementID)
	}
	return req, nil
}

// Invalidate drops the cached catalogs so the next read re-loads from the
// stores. Called when external collaborators change reference data
// mid-session.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evidenceByID = nil
	c.evidenceOrder = nil
	c.reqByID = nil
	c.reqOrder = nil
	c.evidenceLoaded = false
	c.reqLoaded = false
	c.logger.Info("catalog cache invalidated", "factory_id", c.factoryID)
}

func (c *Catalog) ensureEvidence(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.evidenceLoaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	items, err := c.evidence.List(ctx, c.factoryID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "load evidence catalog")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.evidenceLoaded {
		return nil
	}
	c.evidenceByID = make(map[id.EvidenceID]*models.EvidenceItem, len(items))
	c.evidenceOrder = make([]id.EvidenceID, 0, len(items))
	for _, item := range items {
		c.evidenceByID[item.ID] = item
		c.evidenceOrder = append(c.evidenceOrder, item.ID)
	}
	c.evidenceLoaded = true
	c.logger.Debug("evidence catalog loaded", "count", len(items), "factory_id", c.factoryID)
	return nil
}

func (c *Catalog) ensureRequirements(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.reqLoaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	reqs, err := c.requirements.List(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "load requirement catalog")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reqLoaded {
		return nil
	}
	c.reqByID = make(map[id.RequirementID]*models.Requirement, len(reqs))
	c.reqOrder = make([]id.RequirementID, 0, len(reqs))
	for _, req := range reqs {
		c.reqByID[req.ID] = req
		c.reqOrder = append(c.reqOrder, req.ID)
	}
	c.reqLoaded = true
	c.logger.Debug("requirement catalog loaded", "count", len(reqs))
	return nil
}
