// Package domain holds typed identifiers shared across modules.
//
// Every entity gets its own UUID-backed type so ids cannot be swapped across
// entities by accident: handing an EvidenceID where a RequirementID is
// expected is a compile error, not a runtime surprise.
package domain

import (
	"github.com/google/uuid"

	dErrors "auditlink/pkg/domain-errors"
)

type (
	// EvidenceID identifies an uploaded evidence item.
	EvidenceID uuid.UUID
	// RequirementID identifies one auditable requirement clause.
	RequirementID uuid.UUID
	// LinkID identifies an evidence-requirement link.
	LinkID uuid.UUID
	// FactoryID identifies the factory that owns evidence items.
	FactoryID uuid.UUID
)

// NewEvidenceID generates a fresh EvidenceID.
func NewEvidenceID() EvidenceID { return EvidenceID(uuid.New()) }

// NewRequirementID generates a fresh RequirementID.
func NewRequirementID() RequirementID { return RequirementID(uuid.New()) }

// NewLinkID generates a fresh LinkID.
func NewLinkID() LinkID { return LinkID(uuid.New()) }

// NewFactoryID generates a fresh FactoryID.
func NewFactoryID() FactoryID { return FactoryID(uuid.New()) }

func (id EvidenceID) String() string    { return uuid.UUID(id).String() }
func (id RequirementID) String() string { return uuid.UUID(id).String() }
func (id LinkID) String() string        { return uuid.UUID(id).String() }
func (id FactoryID) String() string     { return uuid.UUID(id).String() }

func (id EvidenceID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id RequirementID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id LinkID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id FactoryID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed ids serialize as plain UUID strings in JSON.
func (id EvidenceID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *EvidenceID) UnmarshalText(b []byte) error {
	parsed, err := ParseEvidenceID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id RequirementID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *RequirementID) UnmarshalText(b []byte) error {
	parsed, err := ParseRequirementID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id LinkID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *LinkID) UnmarshalText(b []byte) error {
	parsed, err := ParseLinkID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id FactoryID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *FactoryID) UnmarshalText(b []byte) error {
	parsed, err := ParseFactoryID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// parseUUID enforces the shared id invariant: ids must be valid, non-empty,
// non-nil UUIDs. Used by all Parse* functions at trust boundaries.
func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id cannot be empty", kind)
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id is not a valid UUID", kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id cannot be the nil UUID", kind)
	}
	return parsed, nil
}

// ParseEvidenceID validates and converts a raw string into an EvidenceID.
func ParseEvidenceID(raw string) (EvidenceID, error) {
	parsed, err := parseUUID(raw, "evidence")
	if err != nil {
		return EvidenceID{}, err
	}
	return EvidenceID(parsed), nil
}

// ParseRequirementID validates and converts a raw string into a RequirementID.
func ParseRequirementID(raw string) (RequirementID, error) {
	parsed, err := parseUUID(raw, "requirement")
	if err != nil {
		return RequirementID{}, err
	}
	return RequirementID(parsed), nil
}

// ParseLinkID validates and converts a raw string into a LinkID.
func ParseLinkID(raw string) (LinkID, error) {
	parsed, err := parseUUID(raw, "link")
	if err != nil {
		return LinkID{}, err
	}
	return LinkID(parsed), nil
}

// ParseFactoryID validates and converts a raw string into a FactoryID.
func ParseFactoryID(raw string) (FactoryID, error) {
	parsed, err := parseUUID(raw, "factory")
	if err != nil {
		return FactoryID{}, err
	}
	return FactoryID(parsed), nil
}
