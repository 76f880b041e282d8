package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	id "auditlink/pkg/domain"
)

func TestSetToggleEvidence(t *testing.T) {
	set := NewSet()
	evidenceID := id.NewEvidenceID()

	assert.True(t, set.ToggleEvidence(evidenceID, true))
	assert.Equal(t, 1, set.EvidenceCount())
	assert.Equal(t, uint64(1), set.Revision())

	assert.False(t, set.ToggleEvidence(evidenceID, true), "re-selecting is a no-op")
	assert.Equal(t, uint64(1), set.Revision(), "no-op must not bump the revision")

	assert.True(t, set.ToggleEvidence(evidenceID, false))
	assert.Equal(t, 0, set.EvidenceCount())
	assert.Equal(t, uint64(2), set.Revision())

	assert.False(t, set.ToggleEvidence(evidenceID, false), "deselecting absent id is a no-op")
}

func TestSetToggleRequirement(t *testing.T) {
	set := NewSet()
	requirementID := id.NewRequirementID()

	assert.True(t, set.ToggleRequirement(requirementID, true))
	assert.False(t, set.ToggleRequirement(requirementID, true))
	assert.True(t, set.ToggleRequirement(requirementID, false))
	assert.Equal(t, 0, set.RequirementCount())
}

func TestSetPotentialLinkCount(t *testing.T) {
	set := NewSet()
	for range 3 {
		set.ToggleEvidence(id.NewEvidenceID(), true)
	}
	for range 4 {
		set.ToggleRequirement(id.NewRequirementID(), true)
	}

	assert.Equal(t, 12, set.PotentialLinkCount())

	set.Clear()
	assert.Equal(t, 0, set.PotentialLinkCount())
	assert.Equal(t, 0, set.EvidenceCount())
	assert.Equal(t, 0, set.RequirementCount())
}

func TestSetSelectAllEvidenceReplaces(t *testing.T) {
	set := NewSet()
	old := id.NewEvidenceID()
	set.ToggleEvidence(old, true)

	visible := []id.EvidenceID{id.NewEvidenceID(), id.NewEvidenceID()}
	set.SelectAllEvidence(visible)

	assert.Equal(t, 2, set.EvidenceCount())
	assert.NotContains(t, set.EvidenceIDs(), old, "previous selection is replaced, not merged")
	assert.ElementsMatch(t, visible, set.EvidenceIDs())
}

func TestSetCloneIsIndependent(t *testing.T) {
	set := NewSet()
	set.ToggleEvidence(id.NewEvidenceID(), true)
	set.ToggleRequirement(id.NewRequirementID(), true)

	cp := set.Clone()
	cp.Clear()

	assert.Equal(t, 1, set.EvidenceCount())
	assert.Equal(t, 1, set.RequirementCount())
	assert.Equal(t, 0, cp.EvidenceCount())
}

func TestSetSnapshot(t *testing.T) {
	set := NewSet()
	set.ToggleEvidence(id.NewEvidenceID(), true)
	set.ToggleEvidence(id.NewEvidenceID(), true)
	set.ToggleRequirement(id.NewRequirementID(), true)

	snapshot := set.Snapshot()
	assert.Equal(t, 2, snapshot.EvidenceCount)
	assert.Equal(t, 1, snapshot.RequirementCount)
	assert.Equal(t, 2, snapshot.PotentialLinkCount)
	assert.Equal(t, uint64(3), snapshot.Revision)
}
