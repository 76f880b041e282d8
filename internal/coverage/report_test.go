package coverage

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catmodels "auditlink/internal/catalog/models"
	"auditlink/pkg/requestcontext"
)

func TestBuildReport_SnapshotsEverything(t *testing.T) {
	f := newCoverageFixture(t)
	generatedAt := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), generatedAt)

	req := f.seedRequirement(t, "iso_9001", catmodels.CategoryRecord, "7.5")
	item := f.seedEvidence(t, "calibration.pdf")
	f.link(t, item.ID, req.ID)

	report, err := f.calculator.BuildReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, generatedAt, report.GeneratedAt)
	assert.Len(t, report.Evidence, 1)
	assert.Len(t, report.Requirements, 1)
	assert.Len(t, report.Links, 1)
	require.NotNil(t, report.Coverage)
	assert.Equal(t, 100.0, report.Coverage.Overall.Percent)
}

func TestWriteCSV_OneRowPerLink(t *testing.T) {
	f := newCoverageFixture(t)
	ctx := context.Background()

	req := f.seedRequirement(t, "iso_9001", catmodels.CategoryRecord, "7.5")
	item := f.seedEvidence(t, "calibration.pdf")
	link := f.link(t, item.ID, req.ID)

	report, err := f.calculator.BuildReport(ctx)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, report.WriteCSV(&buf))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "calibration.pdf", rows[1][0])
	assert.Equal(t, "7.5", rows[1][1])
	assert.Equal(t, "requirement 7.5", rows[1][2])
	assert.Equal(t, "direct", rows[1][3])
	assert.Equal(t, "3", rows[1][4])
	assert.Equal(t, link.CreatedAt.Format(time.RFC3339), rows[1][6])
}

func TestWriteCSV_DanglingLinkKeepsRow(t *testing.T) {
	f := newCoverageFixture(t)
	ctx := context.Background()

	req := f.seedRequirement(t, "iso_9001", catmodels.CategoryRecord, "7.5")
	item := f.seedEvidence(t, "calibration.pdf")
	f.link(t, item.ID, req.ID)
	// Evidence deleted by an external collaborator after linking.
	require.NoError(t, f.evidence.Delete(ctx, item.ID))

	report, err := f.calculator.BuildReport(ctx)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, report.WriteCSV(&buf))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, item.ID.String(), rows[1][0], "raw id stands in for the deleted item")
}
