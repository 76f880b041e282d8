package models

import (
	"path/filepath"
	"strings"
	"time"

	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
	"auditlink/pkg/strutil"
)

// EvidenceKind classifies an evidence item by its file name. The kind is
// used only for display grouping; file contents are never processed here.
type EvidenceKind string

const (
	KindDocument EvidenceKind = "document"
	KindImage    EvidenceKind = "image"
	KindVideo    EvidenceKind = "video"
	KindAudio    EvidenceKind = "audio"
	KindOther    EvidenceKind = "other"
)

// IsValid checks if the evidence kind is one of the supported enum values.
func (k EvidenceKind) IsValid() bool {
	switch k {
	case KindDocument, KindImage, KindVideo, KindAudio, KindOther:
		return true
	}
	return false
}

var extensionKinds = map[string]EvidenceKind{
	".pdf": KindDocument, ".doc": KindDocument, ".docx": KindDocument,
	".xls": KindDocument, ".xlsx": KindDocument, ".txt": KindDocument,
	".csv": KindDocument,
	".jpg": KindImage, ".jpeg": KindImage, ".png": KindImage,
	".gif": KindImage, ".webp": KindImage,
	".mp4": KindVideo, ".mov": KindVideo, ".avi": KindVideo, ".mkv": KindVideo,
	".mp3": KindAudio, ".wav": KindAudio, ".m4a": KindAudio, ".ogg": KindAudio,
}

// KindFromFilename derives the evidence kind from a file name extension.
// Unknown extensions classify as other.
func KindFromFilename(name string) EvidenceKind {
	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := extensionKinds[ext]; ok {
		return kind
	}
	return KindOther
}

// EvidenceItem is an uploaded artifact offered as proof of compliance.
// Items are reference data from the engine's perspective: created and edited
// by external collaborators, read-only here.
//
// Invariants:
//   - ID and FactoryID are non-nil
//   - Name is non-empty
//   - Kind is a supported enum value
//   - SizeBytes is non-negative
//   - DeclaredStandard/DeclaredCode are optional but come as a pair for
//     auto-linking to consider the item
type EvidenceItem struct {
	ID               id.EvidenceID `json:"id"`
	Name             string        `json:"name"`
	Kind             EvidenceKind  `json:"kind"`
	DeclaredStandard string        `json:"declared_standard,omitempty"`
	DeclaredCode     string        `json:"declared_code,omitempty"`
	Tags             []string      `json:"tags,omitempty"`
	UploadedAt       time.Time     `json:"uploaded_at"`
	SizeBytes        int64         `json:"size_bytes"`
	FactoryID        id.FactoryID  `json:"factory_id"`
}

// HasDeclaredMatch reports whether the item carries enough declared metadata
// for the auto-linker to attempt a match.
func (e *EvidenceItem) HasDeclaredMatch() bool {
	return e.DeclaredStandard != "" && e.DeclaredCode != ""
}

// NewEvidenceItem validates a record at the catalog-loading boundary.
// Unknown-shape records (missing ids, bad enums) are rejected here rather
// than trusted downstream.
func NewEvidenceItem(
	evidenceID id.EvidenceID,
	factoryID id.FactoryID,
	name string,
	kind EvidenceKind,
	declaredStandard, declaredCode string,
	tags []string,
	uploadedAt time.Time,
	sizeBytes int64,
) (*EvidenceItem, error) {
	if evidenceID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "evidence id cannot be nil")
	}
	if factoryID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "factory id cannot be nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "evidence name cannot be empty")
	}
	if kind == "" {
		kind = KindFromFilename(name)
	}
	if !kind.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "invalid evidence kind %q", kind)
	}
	if sizeBytes < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "evidence size cannot be negative")
	}
	return &EvidenceItem{
		ID:               evidenceID,
		Name:             strings.TrimSpace(name),
		Kind:             kind,
		DeclaredStandard: strings.TrimSpace(declaredStandard),
		DeclaredCode:     strings.TrimSpace(declaredCode),
		Tags:             strutil.NormalizeTags(tags),
		UploadedAt:       uploadedAt,
		SizeBytes:        sizeBytes,
		FactoryID:        factoryID,
	}, nil
}
