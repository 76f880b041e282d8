package models

import (
	"strings"
	"time"

	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
	"auditlink/pkg/strutil"
)

// LinkType classifies how an evidence item supports a requirement.
type LinkType string

const (
	TypeDirect     LinkType = "direct"
	TypeIndirect   LinkType = "indirect"
	TypeSupporting LinkType = "supporting"
	TypeReference  LinkType = "reference"
)

// IsValid checks if the link type is one of the supported enum values.
func (t LinkType) IsValid() bool {
	switch t {
	case TypeDirect, TypeIndirect, TypeSupporting, TypeReference:
		return true
	}
	return false
}

// ParseLinkType creates a LinkType from a string, validating it.
func ParseLinkType(s string) (LinkType, error) {
	t := LinkType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid link type %q", s)
	}
	return t, nil
}

// Priority ranks a link for reviewer attention.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the priority is one of the supported enum values.
func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ParsePriority creates a Priority from a string, validating it.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid priority %q", s)
	}
	return p, nil
}

const (
	// StrengthDefault applies when the caller does not specify a strength.
	StrengthDefault = 3
	// StrengthAuto is assigned by the auto-linker.
	StrengthAuto = 4
	// AutoLinkTag marks links the auto-linker created.
	AutoLinkTag = "auto-linked"
)

// Link asserts that one evidence item supports one requirement. Links are
// weak reference pairs: they own neither endpoint and are cascade-deleted
// when an endpoint is removed by an external collaborator.
//
// The system deliberately does not deduplicate identical
// (evidence, requirement) pairs: status derivation is defined over link
// count, not distinct pairs, and callers own redundancy avoidance.
//
// Invariants:
//   - EvidenceID and RequirementID are non-nil
//   - Type and Priority are supported enum values
//   - Strength is in [1,5]
//   - Verified transitions false -> true only (no un-verify)
type Link struct {
	ID            id.LinkID        `json:"id"`
	EvidenceID    id.EvidenceID    `json:"evidence_id"`
	RequirementID id.RequirementID `json:"requirement_id"`
	Type          LinkType         `json:"type"`
	Strength      int              `json:"strength"`
	Description   string           `json:"description,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	Priority      Priority         `json:"priority"`
	Verified      bool             `json:"verified"`
	VerifiedBy    string           `json:"verified_by,omitempty"`
	VerifiedAt    *time.Time       `json:"verified_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	CreatedBy     string           `json:"created_by"`
}

// Attrs carries the caller-supplied attributes applied to every link a
// manual or bulk operation creates.
type Attrs struct {
	Type        LinkType
	Strength    int
	Description string
	Tags        []string
	Priority    Priority
}

// withDefaults fills unset attrs with their documented defaults.
func (a Attrs) withDefaults() Attrs {
	if a.Type == "" {
		a.Type = TypeDirect
	}
	if a.Strength == 0 {
		a.Strength = StrengthDefault
	}
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	return a
}

// NewLink creates a Link with domain invariant validation.
func NewLink(evidenceID id.EvidenceID, requirementID id.RequirementID, attrs Attrs, createdBy string, now time.Time) (*Link, error) {
	attrs = attrs.withDefaults()

	if evidenceID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "link evidence id cannot be nil")
	}
	if requirementID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "link requirement id cannot be nil")
	}
	if !attrs.Type.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "invalid link type %q", attrs.Type)
	}
	if attrs.Strength < 1 || attrs.Strength > 5 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "link strength must be between 1 and 5")
	}
	if !attrs.Priority.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "invalid link priority %q", attrs.Priority)
	}

	return &Link{
		ID:            id.NewLinkID(),
		EvidenceID:    evidenceID,
		RequirementID: requirementID,
		Type:          attrs.Type,
		Strength:      attrs.Strength,
		Description:   strings.TrimSpace(attrs.Description),
		Tags:          strutil.NormalizeTags(attrs.Tags),
		Priority:      attrs.Priority,
		Verified:      false,
		CreatedAt:     now,
		CreatedBy:     createdBy,
	}, nil
}

// IsAutoLinked reports whether the auto-linker created this link.
func (l *Link) IsAutoLinked() bool {
	return strutil.ContainsFold(l.Tags, AutoLinkTag)
}

// ApplyVerification marks the link verified, recording who and when.
// Verification is monotonic: verifying an already-verified link is a no-op
// that keeps the original verifier.
func (l *Link) ApplyVerification(verifiedBy string, now time.Time) {
	if l.Verified {
		return
	}
	l.Verified = true
	l.VerifiedBy = verifiedBy
	t := now
	l.VerifiedAt = &t
}
