package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/models"
)

func newTestManager(t *testing.T) interfaces.StorageManager {
	t.Helper()
	manager, err := NewManager(arbor.NewLogger(), &common.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })
	return manager
}

func sampleAssessment(id string) *models.AssessmentRecord {
	return &models.AssessmentRecord{
		ID:          id,
		CompanyName: "Kilimo Farms",
		Country:     "Kenya",
		MidpointImpacts: map[string]models.ImpactValue{
			"Global warming": {Value: 1234.5678, Unit: "kg CO2 eq"},
		},
	}
}

func sampleReport(id, assessmentID string) *models.Report {
	return &models.Report{
		ID:           id,
		AssessmentID: assessmentID,
		ReportType:   models.ReportTypeComprehensive,
		GeneratedAt:  time.Now().UTC(),
		SectionKeys:  []string{"executive_summary"},
		Sections:     map[string]string{"executive_summary": "## Executive Summary\nFine."},
	}
}

func TestAssessmentCRUD(t *testing.T) {
	manager := newTestManager(t)
	storage := manager.AssessmentStorage()
	ctx := context.Background()

	rec := sampleAssessment("asmt_1")
	require.NoError(t, storage.StoreAssessment(ctx, rec))
	assert.False(t, rec.CreatedAt.IsZero(), "StoreAssessment fills CreatedAt")

	got, err := storage.GetAssessment(ctx, "asmt_1")
	require.NoError(t, err)
	assert.Equal(t, "Kilimo Farms", got.CompanyName)
	assert.Equal(t, 1234.5678, got.MidpointImpacts["Global warming"].Value)

	count, err := storage.CountAssessments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, storage.DeleteAssessment(ctx, "asmt_1"))
	_, err = storage.GetAssessment(ctx, "asmt_1")
	assert.ErrorIs(t, err, interfaces.ErrAssessmentNotFound)
}

func TestAssessmentNotFound(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	_, err := manager.AssessmentStorage().GetAssessment(ctx, "asmt_missing")
	assert.ErrorIs(t, err, interfaces.ErrAssessmentNotFound)

	err = manager.AssessmentStorage().DeleteAssessment(ctx, "asmt_missing")
	assert.ErrorIs(t, err, interfaces.ErrAssessmentNotFound)
}

func TestListAssessmentsNewestFirst(t *testing.T) {
	manager := newTestManager(t)
	storage := manager.AssessmentStorage()
	ctx := context.Background()

	older := sampleAssessment("asmt_old")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := sampleAssessment("asmt_new")
	newer.CreatedAt = time.Now().UTC()

	require.NoError(t, storage.StoreAssessment(ctx, older))
	require.NoError(t, storage.StoreAssessment(ctx, newer))

	records, err := storage.ListAssessments(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "asmt_new", records[0].ID)
	assert.Equal(t, "asmt_old", records[1].ID)
}

func TestReportCRUDAndOverwrite(t *testing.T) {
	manager := newTestManager(t)
	storage := manager.ReportStorage()
	ctx := context.Background()

	rpt := sampleReport("rpt_comprehensive_asmt_1", "asmt_1")
	require.NoError(t, storage.StoreReport(ctx, rpt))

	// Regeneration stores under the same id and replaces the value.
	updated := sampleReport("rpt_comprehensive_asmt_1", "asmt_1")
	updated.Sections["executive_summary"] = "## Executive Summary\nRevised."
	require.NoError(t, storage.StoreReport(ctx, updated))

	got, err := storage.GetReport(ctx, "rpt_comprehensive_asmt_1")
	require.NoError(t, err)
	assert.Contains(t, got.Sections["executive_summary"], "Revised")

	count, err := storage.CountReports(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, storage.DeleteReport(ctx, "rpt_comprehensive_asmt_1"))
	_, err = storage.GetReport(ctx, "rpt_comprehensive_asmt_1")
	assert.ErrorIs(t, err, interfaces.ErrReportNotFound)
}

func TestListReportsByAssessment(t *testing.T) {
	manager := newTestManager(t)
	storage := manager.ReportStorage()
	ctx := context.Background()

	require.NoError(t, storage.StoreReport(ctx, sampleReport("rpt_comprehensive_asmt_1", "asmt_1")))
	require.NoError(t, storage.StoreReport(ctx, sampleReport("rpt_executive_asmt_1", "asmt_1")))
	require.NoError(t, storage.StoreReport(ctx, sampleReport("rpt_comprehensive_asmt_2", "asmt_2")))

	reports, err := storage.ListReportsByAssessment(ctx, "asmt_1")
	require.NoError(t, err)
	assert.Len(t, reports, 2)

	reports, err = storage.ListReportsByAssessment(ctx, "asmt_9")
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestRunValueLogGC(t *testing.T) {
	manager := newTestManager(t)
	// Nothing to rewrite on a fresh store; that must not surface as an error.
	assert.NoError(t, manager.RunValueLogGC())
}
