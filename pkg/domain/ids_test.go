package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "auditlink/pkg/domain-errors"
)

// Parsing invariant: ids must be valid, non-empty, non-nil UUIDs. Parse*
// functions sit at trust boundaries, so they must reject attack-shaped input.
func TestParseID_Invariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty string", "", true},
		{"not a uuid", "not-a-uuid", true},
		{"nil uuid", uuid.Nil.String(), true},
		{"sql injection attempt", "'; DROP TABLE links;--", true},
		{"path traversal", "../../../etc/passwd", true},
		{"oversized input", strings.Repeat("a", 1000), true},
		{"valid lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
		{"valid uppercase", "550E8400-E29B-41D4-A716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEvidenceID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseID_RoundTrip(t *testing.T) {
	raw := uuid.New()

	evidenceID, err := ParseEvidenceID(raw.String())
	require.NoError(t, err)
	assert.Equal(t, raw.String(), evidenceID.String())

	requirementID, err := ParseRequirementID(raw.String())
	require.NoError(t, err)
	assert.Equal(t, raw.String(), requirementID.String())

	linkID, err := ParseLinkID(raw.String())
	require.NoError(t, err)
	assert.Equal(t, raw.String(), linkID.String())

	factoryID, err := ParseFactoryID(raw.String())
	require.NoError(t, err)
	assert.Equal(t, raw.String(), factoryID.String())
}

func TestIsNil(t *testing.T) {
	assert.True(t, EvidenceID{}.IsNil())
	assert.True(t, LinkID(uuid.Nil).IsNil())
	assert.False(t, NewEvidenceID().IsNil())
	assert.False(t, NewRequirementID().IsNil())
}

// Typed ids prevent cross-entity assignment at compile time. If EvidenceID
// and RequirementID ever become aliases of the same type, the commented
// lines below would compile and the invariant is gone.
func TestTypeDistinction(t *testing.T) {
	evidenceID := NewEvidenceID()
	requirementID := NewRequirementID()

	// var _ EvidenceID = requirementID  // compile error by design
	// var _ RequirementID = evidenceID  // compile error by design

	assert.NotEqual(t, uuid.UUID(evidenceID), uuid.UUID(requirementID))
}

func TestMarshalText(t *testing.T) {
	id := NewLinkID()
	b, err := id.MarshalText()
	require.NoError(t, err)

	var decoded LinkID
	require.NoError(t, decoded.UnmarshalText(b))
	assert.Equal(t, id, decoded)

	var bad LinkID
	assert.Error(t, bad.UnmarshalText([]byte("garbage")))
}
