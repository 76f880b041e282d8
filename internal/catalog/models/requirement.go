package models

import (
	"strings"

	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

// Category groups requirements within a standard.
type Category string

const (
	CategoryPolicy     Category = "policy"
	CategoryProcedure  Category = "procedure"
	CategoryRecord     Category = "record"
	CategoryTraining   Category = "training"
	CategoryMonitoring Category = "monitoring"
)

// IsValid checks if the category is one of the supported enum values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPolicy, CategoryProcedure, CategoryRecord, CategoryTraining, CategoryMonitoring:
		return true
	}
	return false
}

// ParseCategory creates a Category from a string, validating it.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid requirement category %q", s)
	}
	return c, nil
}

// Requirement is one auditable clause within a standard. Requirements are
// loaded once per session and never mutated by the engine: a requirement
// cannot change its standard or category after loading.
type Requirement struct {
	ID       id.RequirementID `json:"id"`
	Standard string           `json:"standard"`
	Category Category         `json:"category"`
	Code     string           `json:"code"`
	Title    string           `json:"title"`
}

// NewRequirement validates a record at the catalog-loading boundary.
func NewRequirement(requirementID id.RequirementID, standard string, category Category, code, title string) (*Requirement, error) {
	if requirementID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "requirement id cannot be nil")
	}
	standard = strings.TrimSpace(standard)
	if standard == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "requirement standard cannot be empty")
	}
	if !category.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "invalid requirement category %q", category)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "requirement code cannot be empty")
	}
	return &Requirement{
		ID:       requirementID,
		Standard: standard,
		Category: category,
		Code:     code,
		Title:    strings.TrimSpace(title),
	}, nil
}
