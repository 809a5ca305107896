package charts

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/ternarybob/arbor"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
)

const (
	chartWidth   = 900
	chartHeight  = 60 // per bar
	marginLeft   = 260
	marginRight  = 40
	marginTop    = 50
	marginBottom = 30
	barHeight    = 28
)

var (
	bgColor     = color.RGBA{255, 255, 255, 255}
	axisColor   = color.RGBA{60, 60, 60, 255}
	labelColor  = color.RGBA{40, 40, 40, 255}
	highColor   = color.RGBA{198, 57, 46, 255}  // red
	mediumColor = color.RGBA{230, 145, 40, 255} // orange
	lowColor    = color.RGBA{84, 158, 77, 255}  // green
)

// Service rasterizes horizontal bar charts for PDF embedding. Bars are
// colored by severity relative to the largest value in the set, using the
// configured thresholds.
type Service struct {
	config *common.Config
	logger arbor.ILogger
}

var _ interfaces.ChartService = (*Service)(nil)

func NewService(config *common.Config, logger arbor.ILogger) *Service {
	return &Service{config: config, logger: logger}
}

// severityFor grades a value against the set maximum. High when the
// normalized magnitude reaches the high threshold, medium at the medium
// threshold, low otherwise.
func (s *Service) severityFor(value, max float64) interfaces.Severity {
	if max <= 0 {
		return interfaces.SeverityLow
	}
	ratio := value / max
	switch {
	case ratio >= s.config.Reports.ChartHighThreshold:
		return interfaces.SeverityHigh
	case ratio >= s.config.Reports.ChartMediumThreshold:
		return interfaces.SeverityMedium
	default:
		return interfaces.SeverityLow
	}
}

func severityColor(sev interfaces.Severity) color.RGBA {
	switch sev {
	case interfaces.SeverityHigh:
		return highColor
	case interfaces.SeverityMedium:
		return mediumColor
	default:
		return lowColor
	}
}

// RenderBarChart rasterizes labels/values as a horizontal bar chart PNG.
// Returns (nil, nil) when no value is positive.
func (s *Service) RenderBarChart(title string, labels []string, values []float64) ([]byte, error) {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return nil, nil
	}

	height := marginTop + marginBottom + chartHeight*len(values)
	img := image.NewRGBA(image.Rect(0, 0, chartWidth, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{bgColor}, image.Point{}, draw.Src)

	drawText(img, title, marginLeft, marginTop/2, labelColor)

	plotWidth := chartWidth - marginLeft - marginRight
	for i, v := range values {
		y := marginTop + i*chartHeight + (chartHeight-barHeight)/2

		label := labels[i]
		drawText(img, truncateLabel(label, 38), 10, y+barHeight/2, labelColor)

		if v <= 0 {
			continue
		}
		w := int(float64(plotWidth) * (v / max))
		if w < 2 {
			w = 2
		}
		barColor := severityColor(s.severityFor(v, max))
		fillRect(img, marginLeft, y, marginLeft+w, y+barHeight, barColor)
	}

	// Baseline axis on the label/bar boundary.
	fillRect(img, marginLeft-1, marginTop, marginLeft, height-marginBottom, axisColor)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	s.logger.Debug().Int("bars", len(values)).Int("bytes", buf.Len()).Msg("Rendered bar chart")
	return buf.Bytes(), nil
}

func drawText(img *image.RGBA, text string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), &image.Uniform{c}, image.Point{}, draw.Src)
}

func truncateLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
