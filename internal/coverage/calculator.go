// Package coverage computes requirement coverage statistics on demand.
//
// Coverage is a pure function of the requirement catalog and the current
// link set: a requirement counts as linked when at least one link references
// it, regardless of the link's verified flag. Percentages are plain float64
// with no internal rounding; display rounding belongs to presentation.
package coverage

import (
	"context"
	"fmt"

	catmodels "auditlink/internal/catalog/models"
	linkmodels "auditlink/internal/link/models"
	"auditlink/internal/link/store"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

// Catalog is the calculator's read view of the catalogs.
type Catalog interface {
	Evidence(ctx context.Context) ([]*catmodels.EvidenceItem, error)
	Requirements(ctx context.Context) ([]*catmodels.Requirement, error)
}

// LinkSource reads the current link set.
type LinkSource interface {
	List(ctx context.Context, filter store.Filter) ([]*linkmodels.Link, error)
}

// Breakdown is one coverage figure: how many requirements in the slice have
// at least one link, out of how many total.
type Breakdown struct {
	Linked  int     `json:"linked"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// Summary holds every coverage figure the calculator produces.
//
// ByCategory pools identically named categories across standards, matching
// the established report format. ByStandardCategory keys are
// "standard/category" and separate them.
type Summary struct {
	Overall            Breakdown            `json:"overall"`
	ByStandard         map[string]Breakdown `json:"by_standard"`
	ByCategory         map[string]Breakdown `json:"by_category"`
	ByStandardCategory map[string]Breakdown `json:"by_standard_category"`
}

// Calculator derives coverage figures from the catalogs and the link store.
type Calculator struct {
	catalog Catalog
	links   LinkSource
}

// NewCalculator creates a coverage calculator.
func NewCalculator(catalog Catalog, links LinkSource) *Calculator {
	return &Calculator{catalog: catalog, links: links}
}

// Summary computes all coverage figures from current state. Each call
// re-reads the link store, so a summary taken after a batch operation
// reflects the whole batch.
func (c *Calculator) Summary(ctx context.Context) (*Summary, error) {
	requirements, err := c.catalog.Requirements(ctx)
	if err != nil {
		return nil, err
	}
	linked, err := c.linkedRequirements(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		ByStandard:         make(map[string]Breakdown),
		ByCategory:         make(map[string]Breakdown),
		ByStandardCategory: make(map[string]Breakdown),
	}
	for _, req := range requirements {
		isLinked := linked[req.ID]
		summary.Overall = summary.Overall.add(isLinked)
		summary.ByStandard[req.Standard] = summary.ByStandard[req.Standard].add(isLinked)
		summary.ByCategory[string(req.Category)] = summary.ByCategory[string(req.Category)].add(isLinked)
		nsKey := fmt.Sprintf("%s/%s", req.Standard, req.Category)
		summary.ByStandardCategory[nsKey] = summary.ByStandardCategory[nsKey].add(isLinked)
	}
	return summary, nil
}

// Standard computes coverage for one standard only.
func (c *Calculator) Standard(ctx context.Context, standard string) (Breakdown, error) {
	requirements, err := c.catalog.Requirements(ctx)
	if err != nil {
		return Breakdown{}, err
	}
	linked, err := c.linkedRequirements(ctx)
	if err != nil {
		return Breakdown{}, err
	}

	var breakdown Breakdown
	for _, req := range requirements {
		if req.Standard != standard {
			continue
		}
		breakdown = breakdown.add(linked[req.ID])
	}
	return breakdown, nil
}

func (c *Calculator) linkedRequirements(ctx context.Context) (map[id.RequirementID]bool, error) {
	links, err := c.links.List(ctx, store.Filter{})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "list links for coverage")
	}
	linked := make(map[id.RequirementID]bool, len(links))
	for _, link := range links {
		linked[link.RequirementID] = true
	}
	return linked, nil
}

func (b Breakdown) add(isLinked bool) Breakdown {
	b.Total++
	if isLinked {
		b.Linked++
	}
	b.Percent = percent(b.Linked, b.Total)
	return b
}

// percent returns 0 for an empty requirement set rather than NaN.
func percent(linked, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(linked) / float64(total) * 100
}
