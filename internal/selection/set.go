// Package selection tracks which evidence items and requirements an
// operator currently has selected in the linking workspace. Selections are
// per session, ephemeral, and feed the bulk link and clear operations.
package selection

import (
	"sort"

	id "auditlink/pkg/domain"
)

// Set holds one session's selected ids plus a revision counter bumped on
// every mutation, so change listeners can discard stale notifications.
type Set struct {
	evidence     map[id.EvidenceID]struct{}
	requirements map[id.RequirementID]struct{}
	revision     uint64
}

// NewSet creates an empty selection set.
func NewSet() *Set {
	return &Set{
		evidence:     make(map[id.EvidenceID]struct{}),
		requirements: make(map[id.RequirementID]struct{}),
	}
}

// ToggleEvidence sets or clears one evidence id. Reports whether the set
// changed.
func (s *Set) ToggleEvidence(evidenceID id.EvidenceID, selected bool) bool {
	_, present := s.evidence[evidenceID]
	if selected == present {
		return false
	}
	if selected {
		s.evidence[evidenceID] = struct{}{}
	} else {
		delete(s.evidence, evidenceID)
	}
	s.revision++
	return true
}

// ToggleRequirement sets or clears one requirement id. Reports whether the
// set changed.
func (s *Set) ToggleRequirement(requirementID id.RequirementID, selected bool) bool {
	_, present := s.requirements[requirementID]
	if selected == present {
		return false
	}
	if selected {
		s.requirements[requirementID] = struct{}{}
	} else {
		delete(s.requirements, requirementID)
	}
	s.revision++
	return true
}

// SelectAllEvidence replaces the evidence selection with the given visible
// ids.
func (s *Set) SelectAllEvidence(evidenceIDs []id.EvidenceID) {
	s.evidence = make(map[id.EvidenceID]struct{}, len(evidenceIDs))
	for _, evidenceID := range evidenceIDs {
		s.evidence[evidenceID] = struct{}{}
	}
	s.revision++
}

// Clear empties both sides of the selection.
func (s *Set) Clear() {
	s.evidence = make(map[id.EvidenceID]struct{})
	s.requirements = make(map[id.RequirementID]struct{})
	s.revision++
}

// EvidenceCount returns the number of selected evidence items.
func (s *Set) EvidenceCount() int { return len(s.evidence) }

// RequirementCount returns the number of selected requirements.
func (s *Set) RequirementCount() int { return len(s.requirements) }

// PotentialLinkCount is the size of the cross product a bulk link over this
// selection would create. Used to warn the operator, never enforced.
func (s *Set) PotentialLinkCount() int {
	return len(s.evidence) * len(s.requirements)
}

// Revision returns the mutation counter.
func (s *Set) Revision() uint64 { return s.revision }

// EvidenceIDs returns the selected evidence ids in stable order.
func (s *Set) EvidenceIDs() []id.EvidenceID {
	out := make([]id.EvidenceID, 0, len(s.evidence))
	for evidenceID := range s.evidence {
		out = append(out, evidenceID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// RequirementIDs returns the selected requirement ids in stable order.
func (s *Set) RequirementIDs() []id.RequirementID {
	out := make([]id.RequirementID, 0, len(s.requirements))
	for requirementID := range s.requirements {
		out = append(out, requirementID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Clone returns a deep copy.
func (s *Set) Clone() *Set {
	cp := &Set{
		evidence:     make(map[id.EvidenceID]struct{}, len(s.evidence)),
		requirements: make(map[id.RequirementID]struct{}, len(s.requirements)),
		revision:     s.revision,
	}
	for evidenceID := range s.evidence {
		cp.evidence[evidenceID] = struct{}{}
	}
	for requirementID := range s.requirements {
		cp.requirements[requirementID] = struct{}{}
	}
	return cp
}

// Snapshot is the read-only view handed to listeners and HTTP responses.
type Snapshot struct {
	EvidenceCount      int    `json:"evidence_count"`
	RequirementCount   int    `json:"requirement_count"`
	PotentialLinkCount int    `json:"potential_link_count"`
	Revision           uint64 `json:"revision"`
}

// Snapshot captures the current counts.
func (s *Set) Snapshot() Snapshot {
	return Snapshot{
		EvidenceCount:      s.EvidenceCount(),
		RequirementCount:   s.RequirementCount(),
		PotentialLinkCount: s.PotentialLinkCount(),
		Revision:           s.revision,
	}
}
