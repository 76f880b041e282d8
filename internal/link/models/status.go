package models

// DerivedStatus is the per-evidence-item linkage status computed from the
// current link count. It is recomputed on every read and never stored.
//
// Note the deliberate naming collision: StatusVerified is a count threshold
// (three or more links) and has nothing to do with the per-link Verified
// flag set by the verification workflow.
type DerivedStatus string

const (
	StatusUnlinked DerivedStatus = "unlinked"
	StatusLinked   DerivedStatus = "linked"
	StatusVerified DerivedStatus = "verified"
)

// DeriveStatus maps a link count to a status: 0 links is unlinked, 1-2 is
// linked, 3 or more is verified.
func DeriveStatus(count int) DerivedStatus {
	switch {
	case count <= 0:
		return StatusUnlinked
	case count <= 2:
		return StatusLinked
	default:
		return StatusVerified
	}
}
