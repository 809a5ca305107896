package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/greenmeansgo/verdant/internal/models"
)

func TestRenderMarkdownCanonicalForms(t *testing.T) {
	doc := models.Document{
		{Type: models.BlockHeading, Level: 2, Text: "Conclusions"},
		{Type: models.BlockParagraph, Text: "Overall performance is **strong**."},
		{Type: models.BlockBulletList, Items: []string{"Reduce fertilizer", "Mulch beds"}},
		{Type: models.BlockTable, Headers: []string{"K", "V"}, Rows: [][]string{{"a", "1"}}},
		{Type: models.BlockRule},
	}

	out := RenderMarkdown(doc)

	assert.Contains(t, out, "## Conclusions")
	assert.Contains(t, out, "Overall performance is **strong**.")
	assert.Contains(t, out, "- Reduce fertilizer\n- Mulch beds")
	assert.Contains(t, out, "| K | V |\n| --- | --- |\n| a | 1 |")
	assert.Contains(t, out, "---")
}

func TestMarkdownRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"heading and paragraph", "## Introduction\n\nScope of the study."},
		{"bullets", "- one\n- two\n- three"},
		{"table", "| A | B |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |"},
		{"rule between paragraphs", "Before.\n\n---\n\nAfter."},
		{"bullet with continuation line", "- one\ntwo\n- three"},
		{"mixed section", "## Results\n\nKey findings:\n\n- finding one\n- finding two\n\n| Metric | Score |\n|--------|-------|\n| Soil | 70 |"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := ToDocument(tt.text)
			again := ToDocument(RenderMarkdown(once))
			assert.Equal(t, once, again, "structural equality must survive re-serialization")
		})
	}
}

func TestRenderReportMarkdown(t *testing.T) {
	rpt := &models.Report{
		ID:           "rpt_comprehensive_asmt_1",
		AssessmentID: "asmt_1",
		ReportType:   models.ReportTypeComprehensive,
		CompanyName:  "Kilimo Farms",
		Country:      "Kenya",
		GeneratedAt:  time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC),
		SectionKeys:  []string{"executive_summary", "conclusions"},
		Sections: map[string]string{
			"executive_summary": "## Executive Summary\n\nGood year.",
			"conclusions":       "## Conclusions\n\nKeep it up.",
		},
	}

	out := RenderReportMarkdown(rpt)

	assert.Contains(t, out, "# Environmental Sustainability Assessment Report")
	assert.Contains(t, out, "**Company:** Kilimo Farms")
	assert.Contains(t, out, "**Generated:** 2026-04-02 09:30 UTC")
	assert.Contains(t, out, "## Executive Summary")
	assert.Contains(t, out, "## Conclusions")
	// Section order follows SectionKeys.
	assert.Less(t,
		strings.Index(out, "## Executive Summary"),
		strings.Index(out, "## Conclusions"))
}
