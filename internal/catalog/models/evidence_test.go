package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

func TestKindFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     EvidenceKind
	}{
		{"audit-report.pdf", KindDocument},
		{"training-roster.XLSX", KindDocument},
		{"line3-photo.jpg", KindImage},
		{"walkthrough.mp4", KindVideo},
		{"interview.wav", KindAudio},
		{"data.bin", KindOther},
		{"no-extension", KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFromFilename(tt.filename))
		})
	}
}

func TestNewEvidenceItem(t *testing.T) {
	now := time.Now()
	factoryID := id.NewFactoryID()

	t.Run("valid item derives kind from name", func(t *testing.T) {
		item, err := NewEvidenceItem(id.NewEvidenceID(), factoryID, "report.pdf", "", "iso_9001", "7.1", []string{" q1 ", "q1"}, now, 1024)
		require.NoError(t, err)
		assert.Equal(t, KindDocument, item.Kind)
		assert.Equal(t, []string{"q1"}, item.Tags)
		assert.True(t, item.HasDeclaredMatch())
	})

	t.Run("declared metadata optional", func(t *testing.T) {
		item, err := NewEvidenceItem(id.NewEvidenceID(), factoryID, "photo.png", "", "", "", nil, now, 10)
		require.NoError(t, err)
		assert.False(t, item.HasDeclaredMatch())
	})

	t.Run("standard alone is not enough for auto-link", func(t *testing.T) {
		item, err := NewEvidenceItem(id.NewEvidenceID(), factoryID, "photo.png", "", "iso_9001", "", nil, now, 10)
		require.NoError(t, err)
		assert.False(t, item.HasDeclaredMatch())
	})

	t.Run("rejects nil evidence id", func(t *testing.T) {
		_, err := NewEvidenceItem(id.EvidenceID{}, factoryID, "report.pdf", "", "", "", nil, now, 0)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewEvidenceItem(id.NewEvidenceID(), factoryID, "   ", "", "", "", nil, now, 0)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewEvidenceItem(id.NewEvidenceID(), factoryID, "report.pdf", EvidenceKind("hologram"), "", "", nil, now, 0)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects negative size", func(t *testing.T) {
		_, err := NewEvidenceItem(id.NewEvidenceID(), factoryID, "report.pdf", "", "", "", nil, now, -1)
		require.Error(t, err)
	})
}

func TestNewRequirement(t *testing.T) {
	t.Run("valid requirement", func(t *testing.T) {
		req, err := NewRequirement(id.NewRequirementID(), " iso_9001 ", CategoryPolicy, " 4.1 ", "Quality policy")
		require.NoError(t, err)
		assert.Equal(t, "iso_9001", req.Standard)
		assert.Equal(t, "4.1", req.Code)
	})

	t.Run("rejects empty standard", func(t *testing.T) {
		_, err := NewRequirement(id.NewRequirementID(), "", CategoryPolicy, "4.1", "Quality policy")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects invalid category", func(t *testing.T) {
		_, err := NewRequirement(id.NewRequirementID(), "iso_9001", Category("vibes"), "4.1", "Quality policy")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewRequirement(id.NewRequirementID(), "iso_9001", CategoryRecord, "  ", "Records control")
		require.Error(t, err)
	})
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Training ")
	require.NoError(t, err)
	assert.Equal(t, CategoryTraining, c)

	_, err = ParseCategory("unknown")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
