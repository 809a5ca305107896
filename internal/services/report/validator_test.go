package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenmeansgo/verdant/internal/models"
)

func fullAssessment() *models.AssessmentRecord {
	return &models.AssessmentRecord{
		ID:          "asmt_test",
		CompanyName: "Kilimo Farms",
		Country:     "Kenya",
		MidpointImpacts: map[string]models.ImpactValue{
			"Global warming":    {Value: 1234.5678, Unit: "kg CO2 eq"},
			"Water consumption": {Value: 42.1, Unit: "m3"},
			"Land use":          {Value: 300.25, Unit: "m2a crop eq"},
		},
		BreakdownByFood: map[string]map[string]models.ImpactValue{
			"Maize": {"Global warming": {Value: 800, Unit: "kg CO2 eq"}},
		},
		Recommendations: []models.Recommendation{
			{Category: "soil", Title: "Apply compost", Priority: "high"},
		},
		DataQuality:         &models.DataQuality{OverallConfidence: "medium", CompletenessScore: 0.8},
		SensitivityAnalysis: &models.SensitivityAnalysis{},
		ComparativeAnalysis: &models.ComparativeAnalysis{},
		ManagementAnalysis:  &models.ManagementAnalysis{SoilHealthScore: 70},
	}
}

func TestValidateCompleteAssessment(t *testing.T) {
	verdict := Validate(fullAssessment())

	assert.True(t, verdict.IsComplete)
	assert.Equal(t, models.QualityHigh, verdict.QualityLevel)
	assert.Empty(t, verdict.Missing)
	assert.Empty(t, verdict.Warnings)
}

func TestValidateNoMidpointImpactsBlocks(t *testing.T) {
	rec := fullAssessment()
	rec.MidpointImpacts = nil

	verdict := Validate(rec)

	assert.False(t, verdict.IsComplete)
	assert.Equal(t, models.QualityLow, verdict.QualityLevel)
	assert.Equal(t, []string{"midpoint_impacts"}, verdict.Missing)
	assert.Len(t, verdict.Warnings, 1)
}

func TestValidateGlobalWarmingOnlyIsMediumQuality(t *testing.T) {
	// A record carrying only a single midpoint category still generates,
	// but every optional structure it lacks is flagged.
	rec := &models.AssessmentRecord{
		ID:          "asmt_minimal",
		CompanyName: "Shamba Ltd",
		Country:     "Tanzania",
		MidpointImpacts: map[string]models.ImpactValue{
			"Global warming": {Value: 500, Unit: "kg CO2 eq"},
		},
	}

	verdict := Validate(rec)

	assert.True(t, verdict.IsComplete)
	assert.Equal(t, models.QualityMedium, verdict.QualityLevel)
	assert.Contains(t, verdict.Missing, "breakdown_by_food")
	assert.Contains(t, verdict.Missing, "recommendations")
	assert.Contains(t, verdict.Missing, "data_quality")
	assert.Contains(t, verdict.Missing, "sensitivity_analysis")
	assert.Contains(t, verdict.Missing, "comparative_analysis")
	assert.Contains(t, verdict.Missing, "management_analysis")
	assert.Len(t, verdict.Warnings, len(verdict.Missing))
}

func TestValidateBenchmarkingCoversComparative(t *testing.T) {
	rec := fullAssessment()
	rec.ComparativeAnalysis = nil
	rec.Benchmarking = &models.Benchmarking{PerformancePercentile: 60}

	verdict := Validate(rec)

	assert.True(t, verdict.IsComplete)
	assert.NotContains(t, verdict.Missing, "comparative_analysis")
}

func TestValidateIsPure(t *testing.T) {
	rec := fullAssessment()
	first := Validate(rec)
	second := Validate(rec)

	assert.Equal(t, first, second)
	assert.Equal(t, "Kilimo Farms", rec.CompanyName)
}
