package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditlink/internal/link/models"
	"auditlink/internal/link/store"
	id "auditlink/pkg/domain"
)

func TestAutoLink_MatchesDeclaredStandardAndCode(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	r3 := f.seedRequirement(t, "iso_9001", "7.5")
	f.seedRequirement(t, "iso_9001", "9.1")
	item := f.seedEvidence(t, "calibration-record.pdf", "iso_9001", "7.5")

	result, err := f.engine.AutoLink(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Empty(t, result.Failed)

	links, err := f.store.List(ctx, store.Filter{EvidenceID: &item.ID})
	require.NoError(t, err)
	require.Len(t, links, 1)
	link := links[0]
	assert.Equal(t, r3.ID, link.RequirementID)
	assert.Equal(t, models.TypeDirect, link.Type)
	assert.Equal(t, models.StrengthAuto, link.Strength)
	assert.True(t, link.IsAutoLinked())
	assert.Equal(t, testActor, link.CreatedBy)
}

func TestAutoLink_SecondPassIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	f.seedRequirement(t, "iso_9001", "7.5")
	f.seedEvidence(t, "record.pdf", "iso_9001", "7.5")

	first, err := f.engine.AutoLink(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	// The item is now linked, so the second pass skips it.
	second, err := f.engine.AutoLink(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Equal(t, 1, second.Skipped)

	links, err := f.store.List(ctx, store.Filter{})
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestAutoLink_TiesAllLinked(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	f.seedRequirement(t, "iso_9001", "7.5")
	f.seedRequirement(t, "iso_9001", "7.5")
	item := f.seedEvidence(t, "record.pdf", "iso_9001", "7.5")

	result, err := f.engine.AutoLink(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created, "every requirement sharing the code is linked")

	links, err := f.store.List(ctx, store.Filter{EvidenceID: &item.ID})
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestAutoLink_SkipsUnmatchableItems(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	f.seedRequirement(t, "iso_9001", "7.5")

	// No declared metadata at all.
	f.seedEvidence(t, "photo.jpg", "", "")
	// Standard declared but no code.
	f.seedEvidence(t, "partial.pdf", "iso_9001", "")
	// Declared pair matches no requirement.
	f.seedEvidence(t, "orphan.pdf", "iso_14001", "7.5")
	// Already linked.
	linked := f.seedEvidence(t, "linked.pdf", "iso_9001", "7.5")
	req := f.seedRequirement(t, "iso_9001", "9.9")
	_, err := f.engine.ManualLink(ctx, linked.ID, []id.RequirementID{req.ID}, models.Attrs{})
	require.NoError(t, err)

	result, err := f.engine.AutoLink(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Created)
	assert.Equal(t, 4, result.Skipped)
}

func TestAutoLink_StandardMatchIsExact(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	f.seedRequirement(t, "iso_9001", "7.5")
	f.seedEvidence(t, "record.pdf", "ISO_9001", "7.5")

	result, err := f.engine.AutoLink(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Created, "matching is case-sensitive exact equality")
	assert.Equal(t, 1, result.Skipped)
}
