package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/greenmeansgo/verdant/internal/models"
)

func TestFormatContextDeterministic(t *testing.T) {
	rec := fullAssessment()
	rec.AssessmentDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	first := FormatContext(rec)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, FormatContext(rec), "map iteration order must not leak into the brief")
	}
}

func TestFormatContextBlockOrder(t *testing.T) {
	rec := fullAssessment()
	out := FormatContext(rec)

	order := []string{
		"## Basic Information",
		"## Farm / Operation Profile",
		"## Crops / Food Products Assessed",
		"## Environmental Impact Score",
		"## Midpoint Environmental Impacts",
		"## Data Quality Assessment",
		"## System Recommendations",
	}
	last := -1
	for _, header := range order {
		idx := strings.Index(out, header)
		assert.GreaterOrEqual(t, idx, 0, header)
		assert.Greater(t, idx, last, "%s out of order", header)
		last = idx
	}
}

func TestFormatContextNumericPrecisionAndUnits(t *testing.T) {
	rec := &models.AssessmentRecord{
		ID:          "asmt_units",
		CompanyName: "Acme",
		Country:     "Ghana",
		MidpointImpacts: map[string]models.ImpactValue{
			"Global warming":  {Value: 1234.56789, Unit: "kg CO2 eq"},
			"Ozone depletion": {Value: 0.5}, // no unit
		},
	}

	out := FormatContext(rec)

	assert.Contains(t, out, "Global warming: 1234.5679 kg CO2 eq")
	assert.Contains(t, out, "Ozone depletion: 0.5000 units")
}

func TestFormatContextMissingEssentials(t *testing.T) {
	rec := &models.AssessmentRecord{ID: "asmt_sparse"}
	out := FormatContext(rec)

	assert.Contains(t, out, "- Company/Farm: Not provided")
	assert.Contains(t, out, "- Country: Not provided")
	assert.Contains(t, out, "- Assessment Date: Not provided")
	// Essential headers appear even when the structure is absent.
	assert.Contains(t, out, "## Environmental Impact Score\n- Not provided")
	assert.Contains(t, out, "## Data Quality Assessment\n- Not provided")
	// Optional structures are omitted entirely.
	assert.NotContains(t, out, "## Sensitivity Analysis")
	assert.NotContains(t, out, "## Comparative Analysis")
	assert.NotContains(t, out, "## System Recommendations")
}

func TestFormatContextSortsMapGroups(t *testing.T) {
	rec := &models.AssessmentRecord{
		ID:          "asmt_sorted",
		CompanyName: "Acme",
		Country:     "Ghana",
		MidpointImpacts: map[string]models.ImpactValue{
			"Water consumption": {Value: 1, Unit: "m3"},
			"Acidification":     {Value: 2, Unit: "kg SO2 eq"},
			"Land use":          {Value: 3, Unit: "m2a crop eq"},
		},
	}

	out := FormatContext(rec)
	a := strings.Index(out, "Acidification")
	l := strings.Index(out, "Land use")
	w := strings.Index(out, "Water consumption")
	assert.True(t, a < l && l < w, "categories must be sorted alphabetically")
}
