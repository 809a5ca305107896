package render

import (
	"fmt"
	"strings"

	"github.com/greenmeansgo/verdant/internal/models"
)

// RenderMarkdown re-serializes a document using canonical Markdown syntax.
// The output is stable: parsing it again yields a structurally equal
// document.
func RenderMarkdown(doc models.Document) string {
	parts := make([]string, 0, len(doc))
	for _, block := range doc {
		parts = append(parts, renderBlock(block))
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(block models.Block) string {
	switch block.Type {
	case models.BlockHeading:
		return strings.Repeat("#", block.Level) + " " + block.Text
	case models.BlockRule:
		return "---"
	case models.BlockBulletList:
		lines := make([]string, 0, len(block.Items))
		for _, item := range block.Items {
			lines = append(lines, "- "+item)
		}
		return strings.Join(lines, "\n")
	case models.BlockTable:
		return renderTable(block)
	default:
		return block.Text
	}
}

func renderTable(block models.Block) string {
	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	writeRow(block.Headers)
	sep := make([]string, len(block.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)
	for _, row := range block.Rows {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderReportMarkdown serializes a whole report: a title header, metadata
// lines, then each section's parsed document in generation order.
func RenderReportMarkdown(report *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Environmental Sustainability Assessment Report\n\n")
	if report.CompanyName != "" {
		fmt.Fprintf(&b, "**Company:** %s\n\n", report.CompanyName)
	}
	if report.Country != "" {
		fmt.Fprintf(&b, "**Country:** %s\n\n", report.Country)
	}
	fmt.Fprintf(&b, "**Report Type:** %s\n\n", report.ReportType)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "**Assessment ID:** %s\n\n", report.AssessmentID)
	b.WriteString("---\n\n")

	for i, key := range report.SectionKeys {
		doc := ToDocument(report.Sections[key])
		b.WriteString(RenderMarkdown(doc))
		if i < len(report.SectionKeys)-1 {
			b.WriteString("\n\n---\n\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}
