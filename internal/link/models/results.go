package models

// BatchResult summarizes a batch operation that completes as many items as
// possible instead of aborting on the first failure. Failed holds one entry
// per failed step: the id that did not resolve in the catalogs, the link id
// that could not be verified, or an evidence:requirement pair whose insert
// failed.
type BatchResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    []string `json:"failed,omitempty"`

	firstErr error
}

// RecordFailure appends one failed id, keeping the first underlying error
// for logging context.
func (r *BatchResult) RecordFailure(failedID string, err error) {
	r.Failed = append(r.Failed, failedID)
	if r.firstErr == nil {
		r.firstErr = err
	}
}

// FailedCount returns the number of failed items.
func (r *BatchResult) FailedCount() int { return len(r.Failed) }

// FirstErr returns the first failure's underlying error, or nil.
func (r *BatchResult) FirstErr() error { return r.firstErr }

// AutoLinkResult summarizes one auto-link pass. Skipped counts evidence
// items left untouched: already linked, missing declared metadata, or no
// matching requirement. Auto-linking is best-effort, so skipping is the
// normal outcome for most items.
type AutoLinkResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  []string `json:"failed,omitempty"`
}
