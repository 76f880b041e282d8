package coverage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	catmodels "auditlink/internal/catalog/models"
	linkmodels "auditlink/internal/link/models"
	"auditlink/internal/link/store"
	id "auditlink/pkg/domain"
	"auditlink/pkg/requestcontext"
)

// Report is the serializable snapshot handed to exports: the catalogs, the
// link set, and the coverage figures at generation time.
type Report struct {
	GeneratedAt  time.Time                 `json:"generated_at"`
	Evidence     []*catmodels.EvidenceItem `json:"evidence"`
	Requirements []*catmodels.Requirement  `json:"requirements"`
	Links        []*linkmodels.Link        `json:"links"`
	Coverage     *Summary                  `json:"coverage"`
}

// BuildReport assembles a report from current state. The generation
// timestamp comes from the request clock.
func (c *Calculator) BuildReport(ctx context.Context) (*Report, error) {
	evidence, err := c.catalog.Evidence(ctx)
	if err != nil {
		return nil, err
	}
	requirements, err := c.catalog.Requirements(ctx)
	if err != nil {
		return nil, err
	}
	links, err := c.links.List(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}
	summary, err := c.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &Report{
		GeneratedAt:  requestcontext.Now(ctx),
		Evidence:     evidence,
		Requirements: requirements,
		Links:        links,
		Coverage:     summary,
	}, nil
}

// csvHeader matches the established tabular export format.
var csvHeader = []string{
	"evidence_name", "requirement_code", "requirement_title",
	"link_type", "strength", "description", "created_at",
}

// WriteCSV flattens the report to one row per link. Links whose endpoints
// are no longer in the catalogs (deleted after the link was created) appear
// with the raw id in place of a name so the export never silently drops a
// link.
func (r *Report) WriteCSV(w io.Writer) error {
	evidenceNames := make(map[id.EvidenceID]string, len(r.Evidence))
	for _, item := range r.Evidence {
		evidenceNames[item.ID] = item.Name
	}
	requirementsByID := make(map[id.RequirementID]*catmodels.Requirement, len(r.Requirements))
	for _, req := range r.Requirements {
		requirementsByID[req.ID] = req
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, link := range r.Links {
		name, ok := evidenceNames[link.EvidenceID]
		if !ok {
			name = link.EvidenceID.String()
		}
		code, title := link.RequirementID.String(), ""
		if req, ok := requirementsByID[link.RequirementID]; ok {
			code, title = req.Code, req.Title
		}
		row := []string{
			name,
			code,
			title,
			string(link.Type),
			strconv.Itoa(link.Strength),
			link.Description,
			link.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
