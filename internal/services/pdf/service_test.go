package pdf

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/models"
	"github.com/greenmeansgo/verdant/internal/services/charts"
)

func testAssessment() *models.AssessmentRecord {
	return &models.AssessmentRecord{
		ID:             "asmt_pdf",
		CompanyName:    "Kilimo Farms",
		Country:        "Kenya",
		AssessmentDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		MidpointImpacts: map[string]models.ImpactValue{
			"Global warming":    {Value: 1234.5678, Unit: "kg CO2 eq"},
			"Water consumption": {Value: 802.5, Unit: "m3"},
			"Land use":          {Value: 120.25, Unit: "m2a crop eq"},
			"Acidification":     {Value: 14.2, Unit: "kg SO2 eq"},
		},
		SingleScore: &models.SingleScore{Value: 512.75, Unit: "pt"},
		DataQuality: &models.DataQuality{OverallConfidence: "medium"},
		Foods: []models.FoodItem{
			{Name: "Maize", QuantityKg: 5000, Category: "cereal"},
		},
	}
}

func testReport() *models.Report {
	return &models.Report{
		ID:           "rpt_comprehensive_asmt_pdf",
		AssessmentID: "asmt_pdf",
		ReportType:   models.ReportTypeComprehensive,
		CompanyName:  "Kilimo Farms",
		Country:      "Kenya",
		GeneratedAt:  time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC),
		SectionKeys:  []string{"executive_summary", "impact_analysis"},
		Sections: map[string]string{
			"executive_summary": "## Executive Summary\n\nThe farm performed **well** this season.\n\n- Emissions down\n- Water use stable",
			"impact_analysis":   "## Environmental Impact Analysis\n\n| Category | Value |\n|----------|-------|\n| Global warming | 1234.5678 |\n\nHotspots identified.",
		},
		Metadata: models.ReportMetadata{
			ModelUsed:         "claude-sonnet-4-20250514",
			QualityLevel:      models.QualityHigh,
			SectionsGenerated: 2,
		},
	}
}

func newTestService() *Service {
	config := common.NewDefaultConfig()
	logger := arbor.NewLogger()
	return NewService(config, charts.NewService(config, logger), logger)
}

func TestRenderReportProducesPDF(t *testing.T) {
	svc := newTestService()

	data, err := svc.RenderReport(testReport(), testAssessment())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderReportWithoutOptionalData(t *testing.T) {
	assessment := &models.AssessmentRecord{
		ID:          "asmt_bare",
		CompanyName: "Bare Farm",
		Country:     "Uganda",
		MidpointImpacts: map[string]models.ImpactValue{
			"Global warming": {Value: 10, Unit: "kg CO2 eq"},
		},
	}
	rpt := testReport()
	rpt.AssessmentID = assessment.ID

	svc := newTestService()
	data, err := svc.RenderReport(rpt, assessment)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

type failingCharts struct{}

func (failingCharts) RenderBarChart(title string, labels []string, values []float64) ([]byte, error) {
	return nil, errors.New("rasterization failed")
}

func TestRenderReportChartFailureFailsExport(t *testing.T) {
	config := common.NewDefaultConfig()
	svc := NewService(config, failingCharts{}, arbor.NewLogger())

	data, err := svc.RenderReport(testReport(), testAssessment())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "impact chart")
	assert.Nil(t, data)
}

func TestRenderFarmerReportSkipsChart(t *testing.T) {
	rpt := testReport()
	rpt.ReportType = models.ReportTypeFarmerFriendly
	rpt.SectionKeys = []string{"practical_steps"}
	rpt.Sections = map[string]string{
		"practical_steps": "Add compost to your maize fields before the rains.",
	}

	// A charts implementation that always fails proves the chart path is
	// never reached for farmer reports.
	svc := NewService(common.NewDefaultConfig(), failingCharts{}, arbor.NewLogger())
	data, err := svc.RenderReport(rpt, testAssessment())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestTopImpactsOrderedAndBounded(t *testing.T) {
	impacts := map[string]models.ImpactValue{
		"c": {Value: 3},
		"a": {Value: 1},
		"b": {Value: 3},
		"d": {Value: 9, Unit: "kg"},
	}

	entries := topImpacts(impacts, 3)

	require.Len(t, entries, 3)
	assert.Equal(t, "d", entries[0].label)
	assert.Equal(t, "kg", entries[0].unit)
	// Equal values fall back to alphabetical order.
	assert.Equal(t, "b", entries[1].label)
	assert.Equal(t, "c", entries[2].label)
	assert.Equal(t, "units", entries[1].unit)
}

func TestKeyMetricRows(t *testing.T) {
	rows := keyMetricRows(testAssessment())

	assert.Equal(t, []string{"Overall Environmental Score", "512.7500 pt"}, rows[0])
	assert.Equal(t, []string{"Global warming", "1234.5678 kg CO2 eq"}, rows[1])
	assert.Contains(t, rows, []string{"Overall Confidence", "medium"})
	assert.Contains(t, rows, []string{"Products Assessed", "1"})
}
