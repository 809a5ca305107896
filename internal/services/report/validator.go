package report

import (
	"github.com/greenmeansgo/verdant/internal/models"
)

// Validate inspects an assessment record and decides whether it carries
// enough structure to narrate. The only hard-blocking condition is a missing
// or empty midpoint impact group - a report without numeric impacts has
// nothing to say. Every other absent structure degrades quality and adds a
// warning but never blocks generation.
//
// Pure function of its input; no side effects.
func Validate(rec *models.AssessmentRecord) models.CompletenessVerdict {
	verdict := models.CompletenessVerdict{
		IsComplete:   true,
		QualityLevel: models.QualityHigh,
	}

	if len(rec.MidpointImpacts) == 0 {
		verdict.IsComplete = false
		verdict.QualityLevel = models.QualityLow
		verdict.Missing = append(verdict.Missing, "midpoint_impacts")
		verdict.Warnings = append(verdict.Warnings, "No midpoint impact data available - report generation is not possible")
		return verdict
	}

	soft := func(field, warning string) {
		verdict.Missing = append(verdict.Missing, field)
		verdict.Warnings = append(verdict.Warnings, warning)
		if verdict.QualityLevel == models.QualityHigh {
			verdict.QualityLevel = models.QualityMedium
		}
	}

	if len(rec.BreakdownByFood) == 0 {
		soft("breakdown_by_food", "No per-crop impact breakdown available - hotspot analysis will be limited")
	}
	if len(rec.Recommendations) == 0 {
		soft("recommendations", "No system recommendations available - the action plan will rely on generated guidance only")
	}
	if rec.DataQuality == nil {
		soft("data_quality", "No data quality sub-record available - confidence statements cannot be substantiated")
	}
	if rec.SensitivityAnalysis == nil {
		soft("sensitivity_analysis", "No sensitivity analysis available - the uncertainty section will be qualitative")
	}
	if rec.ComparativeAnalysis == nil && rec.Benchmarking == nil {
		soft("comparative_analysis", "No comparative or benchmarking data available - performance cannot be contextualized against peers")
	}
	if rec.ManagementAnalysis == nil {
		soft("management_analysis", "No management analysis available - practice scoring omitted")
	}

	return verdict
}
