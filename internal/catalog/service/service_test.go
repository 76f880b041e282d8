package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditlink/internal/catalog/models"
	evidencestore "auditlink/internal/catalog/store/evidence"
	requirementstore "auditlink/internal/catalog/store/requirement"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

func newTestCatalog(t *testing.T) (*Catalog, *evidencestore.InMemoryStore, *requirementstore.InMemoryStore, id.FactoryID) {
	t.Helper()
	evStore := evidencestore.NewInMemoryStore()
	reqStore := requirementstore.NewInMemoryStore()
	factoryID := id.NewFactoryID()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(evStore, reqStore, factoryID, logger), evStore, reqStore, factoryID
}

func seedEvidence(t *testing.T, store *evidencestore.InMemoryStore, factoryID id.FactoryID, name string, uploadedAt time.Time) *models.EvidenceItem {
	t.Helper()
	item, err := models.NewEvidenceItem(id.NewEvidenceID(), factoryID, name, "", "", "", nil, uploadedAt, 100)
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(), item))
	return item
}

func TestEvidenceOrderedNewestFirst(t *testing.T) {
	cat, evStore, _, factoryID := newTestCatalog(t)
	base := time.Now()

	older := seedEvidence(t, evStore, factoryID, "older.pdf", base.Add(-time.Hour))
	newer := seedEvidence(t, evStore, factoryID, "newer.pdf", base)

	items, err := cat.Evidence(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
	assert.Equal(t, older.ID, items[1].ID)
}

func TestEvidenceScopedToFactory(t *testing.T) {
	cat, evStore, _, factoryID := newTestCatalog(t)
	seedEvidence(t, evStore, factoryID, "mine.pdf", time.Now())
	seedEvidence(t, evStore, id.NewFactoryID(), "theirs.pdf", time.Now())

	items, err := cat.Evidence(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "mine.pdf", items[0].Name)
}

func TestCacheServesUntilInvalidated(t *testing.T) {
	cat, evStore, _, factoryID := newTestCatalog(t)
	seedEvidence(t, evStore, factoryID, "first.pdf", time.Now())

	items, err := cat.Evidence(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Seeding after the first read is invisible until invalidation.
	seedEvidence(t, evStore, factoryID, "second.pdf", time.Now())
	items, err = cat.Evidence(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)

	cat.Invalidate()
	items, err = cat.Evidence(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestEvidenceByID_NotFound(t *testing.T) {
	cat, _, _, _ := newTestCatalog(t)
	_, err := cat.EvidenceByID(context.Background(), id.NewEvidenceID())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestRequirementLookup(t *testing.T) {
	cat, _, reqStore, _ := newTestCatalog(t)
	req, err := models.NewRequirement(id.NewRequirementID(), "iso_9001", models.CategoryPolicy, "4.1", "Quality policy")
	require.NoError(t, err)
	require.NoError(t, reqStore.Seed(context.Background(), req))

	got, err := cat.RequirementByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, "4.1", got.Code)

	_, err = cat.RequirementByID(context.Background(), id.NewRequirementID())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestRequirementsOrdered(t *testing.T) {
	cat, _, reqStore, _ := newTestCatalog(t)
	ctx := context.Background()

	mk := func(standard string, category models.Category, code string) {
		req, err := models.NewRequirement(id.NewRequirementID(), standard, category, code, "title")
		require.NoError(t, err)
		require.NoError(t, reqStore.Seed(ctx, req))
	}
	mk("iso_9001", models.CategoryRecord, "7.5")
	mk("haccp", models.CategoryMonitoring, "2.1")
	mk("iso_9001", models.CategoryPolicy, "4.1")

	reqs, err := cat.Requirements(ctx)
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	assert.Equal(t, "haccp", reqs[0].Standard)
	assert.Equal(t, models.CategoryPolicy, reqs[1].Category)
	assert.Equal(t, models.CategoryRecord, reqs[2].Category)
}
