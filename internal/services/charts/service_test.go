package charts

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
)

func newTestService() *Service {
	return NewService(common.NewDefaultConfig(), arbor.NewLogger())
}

func TestRenderBarChartProducesPNG(t *testing.T) {
	svc := newTestService()

	data, err := svc.RenderBarChart("Top Environmental Impacts",
		[]string{"Global warming", "Water consumption", "Land use"},
		[]float64{1234.56, 800.2, 120.0})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 900, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 0)
}

func TestRenderBarChartNoPositiveValues(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name   string
		values []float64
	}{
		{"empty", nil},
		{"all zero", []float64{0, 0}},
		{"all negative", []float64{-1, -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := make([]string, len(tt.values))
			data, err := svc.RenderBarChart("Nothing", labels, tt.values)
			assert.NoError(t, err)
			assert.Nil(t, data)
		})
	}
}

func TestSeverityThresholds(t *testing.T) {
	svc := newTestService()

	// Defaults: high at 75% of the maximum, medium at 40%.
	assert.Equal(t, interfaces.SeverityHigh, svc.severityFor(100, 100))
	assert.Equal(t, interfaces.SeverityHigh, svc.severityFor(75, 100))
	assert.Equal(t, interfaces.SeverityMedium, svc.severityFor(74.9, 100))
	assert.Equal(t, interfaces.SeverityMedium, svc.severityFor(40, 100))
	assert.Equal(t, interfaces.SeverityLow, svc.severityFor(39.9, 100))
	assert.Equal(t, interfaces.SeverityLow, svc.severityFor(0, 0))
}
