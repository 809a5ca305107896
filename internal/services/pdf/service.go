package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/models"
	"github.com/greenmeansgo/verdant/internal/services/render"
)

// Service renders assembled reports as paginated A4 PDFs: cover page, key
// metrics, an optional impact chart, then each section's block tree.
type Service struct {
	config *common.Config
	charts interfaces.ChartService
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.PDFService = (*Service)(nil)

func NewService(config *common.Config, charts interfaces.ChartService, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		charts: charts,
		logger: logger,
	}
}

// RenderReport lays the report out as a PDF byte stream. The assessment
// supplies the numbers shown on the cover and in the key metrics table;
// rendering reads both records and mutates neither.
func (s *Service) RenderReport(report *models.Report, assessment *models.AssessmentRecord) ([]byte, error) {
	s.logger.Debug().
		Str("report_id", report.ID).
		Str("report_type", string(report.ReportType)).
		Msg("Rendering report PDF")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle("Environmental Sustainability Assessment Report", true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	r := &renderer{pdf: pdf, font: "Arial", size: 9, md: goldmark.New()}

	s.renderCover(r, report, assessment)
	s.renderKeyMetrics(r, assessment)
	if report.ReportType != models.ReportTypeFarmerFriendly {
		// A chart failure fails this export call only; the stored report is
		// untouched and other formats remain exportable.
		if err := s.renderImpactChart(r, assessment); err != nil {
			return nil, err
		}
	}

	for _, key := range report.SectionKeys {
		doc := render.ToDocument(report.Sections[key])
		r.renderDocument(doc)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	s.logger.Debug().Int("pdf_size", buf.Len()).Msg("Report PDF rendered")
	return buf.Bytes(), nil
}

func (s *Service) renderCover(r *renderer, report *models.Report, assessment *models.AssessmentRecord) {
	pdf := r.pdf
	pdf.AddPage()

	pdf.Ln(40)
	pdf.SetFont("Arial", "B", 20)
	pdf.MultiCell(0, 10, "Environmental Sustainability\nAssessment Report", "", "C", false)
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(0, 8, report.CompanyName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, report.Country, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 6, label, "", 0, "R", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, "  "+value, "", 1, "L", false, 0, "")
	}
	line("Report Type:", string(report.ReportType))
	line("Generated:", report.GeneratedAt.Format("2006-01-02 15:04 UTC"))
	line("Assessment ID:", report.AssessmentID)
	line("Model:", report.Metadata.ModelUsed)
	line("Data Quality:", string(report.Metadata.QualityLevel))
	if !assessment.AssessmentDate.IsZero() {
		line("Assessment Date:", assessment.AssessmentDate.Format("2006-01-02"))
	}

	if len(report.Metadata.Warnings) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Arial", "I", 9)
		pdf.SetTextColor(150, 90, 20)
		for _, w := range report.Metadata.Warnings {
			pdf.MultiCell(0, 5, "Note: "+w, "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
	}
}

// renderKeyMetrics prints a compact summary table of the headline numbers
// on a fresh page ahead of the narrative sections.
func (s *Service) renderKeyMetrics(r *renderer, assessment *models.AssessmentRecord) {
	rows := keyMetricRows(assessment)
	if len(rows) == 0 {
		return
	}

	pdf := r.pdf
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Key Metrics", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	r.renderTableBlock(models.Block{
		Type:    models.BlockTable,
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	})
}

func keyMetricRows(assessment *models.AssessmentRecord) [][]string {
	var rows [][]string
	if ss := assessment.SingleScore; ss != nil {
		unit := ss.Unit
		if unit == "" {
			unit = "pt"
		}
		rows = append(rows, []string{"Overall Environmental Score", fmt.Sprintf("%.4f %s", ss.Value, unit)})
	}
	for _, entry := range topImpacts(assessment.MidpointImpacts, 3) {
		rows = append(rows, []string{entry.label, fmt.Sprintf("%.4f %s", entry.value, entry.unit)})
	}
	if dq := assessment.DataQuality; dq != nil && dq.OverallConfidence != "" {
		rows = append(rows, []string{"Overall Confidence", dq.OverallConfidence})
	}
	if len(assessment.Foods) > 0 {
		rows = append(rows, []string{"Products Assessed", fmt.Sprintf("%d", len(assessment.Foods))})
	}
	return rows
}

type impactEntry struct {
	label string
	value float64
	unit  string
}

// topImpacts returns the n largest midpoint impacts, largest first, with
// ties broken alphabetically so output is stable.
func topImpacts(impacts map[string]models.ImpactValue, n int) []impactEntry {
	entries := make([]impactEntry, 0, len(impacts))
	for label, v := range impacts {
		unit := v.Unit
		if unit == "" {
			unit = "units"
		}
		entries = append(entries, impactEntry{label: label, value: v.Value, unit: unit})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].label < entries[j].label
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// renderImpactChart embeds a bar chart of the top midpoint impacts. A nil
// chart (no positive values) is skipped silently.
func (s *Service) renderImpactChart(r *renderer, assessment *models.AssessmentRecord) error {
	entries := topImpacts(assessment.MidpointImpacts, s.config.Reports.ChartTopN)
	if len(entries) == 0 {
		return nil
	}
	labels := make([]string, 0, len(entries))
	values := make([]float64, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.label)
		values = append(values, e.value)
	}

	img, err := s.charts.RenderBarChart("Top Environmental Impacts", labels, values)
	if err != nil {
		return fmt.Errorf("failed to render impact chart: %w", err)
	}
	if img == nil {
		return nil
	}

	pdf := r.pdf
	pdf.Ln(6)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("impact_chart", opts, bytes.NewReader(img))
	pdf.ImageOptions("impact_chart", 15, pdf.GetY(), 180, 0, true, opts, 0, "")
	pdf.Ln(6)
	return nil
}

// renderer holds the pagination cursor and current font state.
type renderer struct {
	pdf    *fpdf.Fpdf
	md     goldmark.Markdown
	font   string
	size   float64
	bold   bool
	italic bool
}

func (r *renderer) updateFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont(r.font, style, r.size)
}

func (r *renderer) renderDocument(doc models.Document) {
	for _, block := range doc {
		switch block.Type {
		case models.BlockHeading:
			r.renderHeadingBlock(block)
		case models.BlockParagraph:
			r.renderParagraphBlock(block)
		case models.BlockBulletList:
			r.renderBulletListBlock(block)
		case models.BlockTable:
			r.renderTableBlock(block)
		case models.BlockRule:
			r.pdf.Ln(2)
			r.pdf.Line(15, r.pdf.GetY(), 195, r.pdf.GetY())
			r.pdf.Ln(3)
		}
	}
}

func (r *renderer) renderHeadingBlock(block models.Block) {
	size := 14.0
	switch block.Level {
	case 1:
		size = 14
	case 2:
		size = 12
	case 3:
		size = 11
	default:
		size = 10
	}
	// Level-two headings open a new page: each canonical section starts
	// with one.
	if block.Level <= 2 && r.pdf.GetY() > 40 {
		r.pdf.AddPage()
	}
	r.pdf.Ln(4)
	r.pdf.SetFont(r.font, "B", size)
	r.pdf.MultiCell(0, 7, block.Text, "", "L", false)
	r.pdf.Ln(2)
	r.updateFont()
}

func (r *renderer) renderParagraphBlock(block models.Block) {
	r.updateFont()
	r.writeInline(block.Text)
	r.pdf.Ln(7)
}

func (r *renderer) renderBulletListBlock(block models.Block) {
	r.updateFont()
	for _, item := range block.Items {
		r.pdf.SetX(18)
		r.pdf.Write(5, "- ")
		r.writeInline(item)
		r.pdf.Ln(5)
	}
	r.pdf.Ln(2)
}

func (r *renderer) renderTableBlock(block models.Block) {
	pdf := r.pdf
	pdf.Ln(2)

	numCols := len(block.Headers)
	if numCols == 0 {
		return
	}
	pageWidth := 180.0
	fontSize := 8.0
	lineHeight := 4.5

	colWidths := r.tableColumnWidths(block, pageWidth, fontSize)

	rows := append([][]string{block.Headers}, block.Rows...)
	for i, row := range rows {
		if i == 0 {
			pdf.SetFont(r.font, "B", fontSize)
			pdf.SetFillColor(230, 230, 230)
		} else {
			pdf.SetFont(r.font, "", fontSize)
			pdf.SetFillColor(255, 255, 255)
		}

		rowHeight := lineHeight + 2
		startY := pdf.GetY()
		startX := pdf.GetX()

		if startY+rowHeight > 277 {
			pdf.AddPage()
			startY = pdf.GetY()
		}

		x := startX
		for j, cell := range row {
			if j >= numCols {
				break
			}
			if i == 0 {
				pdf.Rect(x, startY, colWidths[j], rowHeight, "FD")
			} else {
				pdf.Rect(x, startY, colWidths[j], rowHeight, "D")
			}
			pdf.SetXY(x+1, startY+1)
			pdf.CellFormat(colWidths[j]-2, lineHeight, r.fitCell(stripInline(cell), colWidths[j]-2), "", 0, "L", false, 0, "")
			x += colWidths[j]
		}
		pdf.SetXY(startX, startY+rowHeight)
	}

	pdf.Ln(3)
	r.updateFont()
}

// tableColumnWidths sizes columns from measured content, clamped and then
// scaled to fit the printable width.
func (r *renderer) tableColumnWidths(block models.Block, pageWidth, fontSize float64) []float64 {
	numCols := len(block.Headers)
	colWidths := make([]float64, numCols)

	r.pdf.SetFont(r.font, "B", fontSize)
	for i, cell := range block.Headers {
		colWidths[i] = r.pdf.GetStringWidth(stripInline(cell)) + 4
	}
	r.pdf.SetFont(r.font, "", fontSize)
	for _, row := range block.Rows {
		for i, cell := range row {
			if i >= numCols {
				break
			}
			if w := r.pdf.GetStringWidth(stripInline(cell)) + 4; w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	minWidth := 12.0
	total := 0.0
	for i := range colWidths {
		if colWidths[i] < minWidth {
			colWidths[i] = minWidth
		}
		total += colWidths[i]
	}
	scale := pageWidth / total
	if scale < 1 {
		for i := range colWidths {
			colWidths[i] *= scale
		}
	}
	return colWidths
}

func (r *renderer) fitCell(text string, width float64) string {
	if r.pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 3 && r.pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}

// writeInline writes text with **bold** and *italic* spans honored. The
// fragment is parsed as markdown and the inline nodes walked against the
// current font state.
func (r *renderer) writeInline(content string) {
	source := []byte(content)
	doc := r.md.Parser().Parse(gmtext.NewReader(source))

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				r.pdf.Write(5, string(node.Segment.Value(source)))
			}
		case *ast.Emphasis:
			if node.Level == 2 {
				r.bold = entering
			} else {
				r.italic = entering
			}
			r.updateFont()
		}
		return ast.WalkContinue, nil
	})

	// Unterminated spans must not leak into later blocks.
	r.bold = false
	r.italic = false
	r.updateFont()
}

// stripInline drops emphasis markers for contexts rendered in a single
// style, like table cells.
func stripInline(s string) string {
	return strings.NewReplacer("**", "", "*", "").Replace(s)
}
