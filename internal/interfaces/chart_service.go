package interfaces

// Severity grades the relative magnitude of an impact value for chart coloring.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ChartService defines the chart rasterization capability. Rendering
// internals are opaque to the report pipeline, which only embeds the
// returned image bytes.
type ChartService interface {
	// RenderBarChart rasterizes a horizontal bar chart as PNG bytes.
	// Returns (nil, nil) when no value is positive - there is nothing to
	// chart, which is not an error.
	RenderBarChart(title string, labels []string, values []float64) ([]byte, error)
}
