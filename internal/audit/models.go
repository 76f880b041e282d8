package audit

import "time"

// Event types emitted by the linking engine and selection manager.
const (
	EventLinkCreated     = "link.created"
	EventLinkBulkCreated = "link.bulk_created"
	EventLinkAutoCreated = "link.auto_created"
	EventLinkVerified    = "link.verified"
	EventLinksCleared    = "links.cleared"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Actor     string         `json:"actor"`
	SubjectID string         `json:"subject_id"`
	Detail    map[string]any `json:"detail,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
