package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditlink/internal/link/models"
	"auditlink/internal/link/store"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

func (f *engineFixture) linkOne(t *testing.T) *models.Link {
	t.Helper()
	ctx := testContext()
	item := f.seedEvidence(t, "doc.pdf", "", "")
	req := f.seedRequirement(t, "iso_9001", "4.1")
	_, err := f.engine.ManualLink(ctx, item.ID, []id.RequirementID{req.ID}, models.Attrs{})
	require.NoError(t, err)
	links, err := f.store.List(ctx, store.Filter{})
	require.NoError(t, err)
	require.Len(t, links, 1)
	return links[0]
}

func TestVerify_StampsVerifierAndTime(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	link := f.linkOne(t)

	result, err := f.engine.Verify(ctx, []id.LinkID{link.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Empty(t, result.Failed)

	got, err := f.store.FindByID(ctx, link.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)
	assert.Equal(t, testActor, got.VerifiedBy)
	require.NotNil(t, got.VerifiedAt)
	assert.Equal(t, testTime, *got.VerifiedAt)
}

func TestVerify_RemovesLinkFromUnverified(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	link := f.linkOne(t)

	unverified, err := f.engine.FindUnverified(ctx)
	require.NoError(t, err)
	require.Len(t, unverified, 1)

	_, err = f.engine.Verify(ctx, []id.LinkID{link.ID})
	require.NoError(t, err)

	unverified, err = f.engine.FindUnverified(ctx)
	require.NoError(t, err)
	assert.Empty(t, unverified)
}

func TestVerify_DoesNotChangeDerivedStatus(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	link := f.linkOne(t)

	before, err := f.engine.Status(ctx, link.EvidenceID)
	require.NoError(t, err)

	_, err = f.engine.Verify(ctx, []id.LinkID{link.ID})
	require.NoError(t, err)

	after, err := f.engine.Status(ctx, link.EvidenceID)
	require.NoError(t, err)
	assert.Equal(t, before.Status, after.Status,
		"the link verified flag is independent of the count-based status")
}

func TestVerify_UnknownIDsCollected(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	link := f.linkOne(t)
	unknown := id.NewLinkID()

	result, err := f.engine.Verify(ctx, []id.LinkID{link.ID, unknown})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, []string{unknown.String()}, result.Failed)
}

func TestVerify_EmptyInputRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Verify(testContext(), nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
