//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditlink/internal/link/models"
	id "auditlink/pkg/domain"
	"auditlink/pkg/testutil/containers"
)

func TestPostgresStore_Integration(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	s := NewPostgresStore(pg.DB)

	newLink := func(evidenceID id.EvidenceID, requirementID id.RequirementID, attrs models.Attrs) *models.Link {
		link, err := models.NewLink(evidenceID, requirementID, attrs, "auditor-1",
			time.Now().UTC().Truncate(time.Microsecond))
		require.NoError(t, err)
		return link
	}

	t.Run("insert and round trip", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))
		link := newLink(id.NewEvidenceID(), id.NewRequirementID(), models.Attrs{
			Type:        "supporting",
			Strength:    5,
			Description: "fire drill log covers emergency procedure",
			Tags:        []string{"q1", "safety"},
			Priority:    "high",
		})
		_, err := s.Insert(ctx, link)
		require.NoError(t, err)

		got, err := s.FindByID(ctx, link.ID)
		require.NoError(t, err)
		assert.Equal(t, link.EvidenceID, got.EvidenceID)
		assert.Equal(t, link.RequirementID, got.RequirementID)
		assert.Equal(t, models.TypeSupporting, got.Type)
		assert.Equal(t, 5, got.Strength)
		assert.Equal(t, link.Description, got.Description)
		assert.Equal(t, []string{"q1", "safety"}, []string(got.Tags))
		assert.Equal(t, models.PriorityHigh, got.Priority)
		assert.False(t, got.Verified)
		assert.True(t, link.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("list filters and ordering", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))
		evidenceID := id.NewEvidenceID()
		first := newLink(evidenceID, id.NewRequirementID(), models.Attrs{})
		second := newLink(evidenceID, id.NewRequirementID(), models.Attrs{})
		second.CreatedAt = first.CreatedAt.Add(time.Second)
		other := newLink(id.NewEvidenceID(), id.NewRequirementID(), models.Attrs{})
		for _, link := range []*models.Link{second, other, first} {
			_, err := s.Insert(ctx, link)
			require.NoError(t, err)
		}

		scoped, err := s.List(ctx, Filter{EvidenceID: &evidenceID})
		require.NoError(t, err)
		require.Len(t, scoped, 2)
		assert.Equal(t, first.ID, scoped[0].ID)
		assert.Equal(t, second.ID, scoped[1].ID)

		all, err := s.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("counts", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))
		heavy := id.NewEvidenceID()
		light := id.NewEvidenceID()
		for i := 0; i < 3; i++ {
			_, err := s.Insert(ctx, newLink(heavy, id.NewRequirementID(), models.Attrs{}))
			require.NoError(t, err)
		}
		_, err := s.Insert(ctx, newLink(light, id.NewRequirementID(), models.Attrs{}))
		require.NoError(t, err)

		count, err := s.CountByEvidence(ctx, heavy)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		counts, err := s.CountsByEvidence(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[id.EvidenceID]int{heavy: 3, light: 1}, counts)
	})

	t.Run("batch delete", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))
		evA := id.NewEvidenceID()
		reqB := id.NewRequirementID()
		keep := newLink(id.NewEvidenceID(), id.NewRequirementID(), models.Attrs{})
		for _, link := range []*models.Link{
			newLink(evA, id.NewRequirementID(), models.Attrs{}),
			newLink(id.NewEvidenceID(), reqB, models.Attrs{}),
			newLink(evA, reqB, models.Attrs{}),
			keep,
		} {
			_, err := s.Insert(ctx, link)
			require.NoError(t, err)
		}

		removed, err := s.DeleteBatch(ctx, []id.EvidenceID{evA}, []id.RequirementID{reqB})
		require.NoError(t, err)
		assert.Equal(t, 3, removed)

		remaining, err := s.List(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, keep.ID, remaining[0].ID)
	})

	t.Run("mark verified is monotonic", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))
		link := newLink(id.NewEvidenceID(), id.NewRequirementID(), models.Attrs{})
		_, err := s.Insert(ctx, link)
		require.NoError(t, err)

		first := time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, s.MarkVerified(ctx, link.ID, "verifier-1", first))
		require.NoError(t, s.MarkVerified(ctx, link.ID, "verifier-2", first.Add(time.Hour)))

		got, err := s.FindByID(ctx, link.ID)
		require.NoError(t, err)
		assert.True(t, got.Verified)
		assert.Equal(t, "verifier-1", got.VerifiedBy)
		require.NotNil(t, got.VerifiedAt)
		assert.True(t, first.Equal(*got.VerifiedAt))

		err = s.MarkVerified(ctx, id.NewLinkID(), "verifier-1", first)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
