package interfaces

import "github.com/greenmeansgo/verdant/internal/models"

// PDFService renders an assembled report into a paginated PDF document.
// Rendering never re-triggers generation; a failure here invalidates only
// the export call, not the stored report.
type PDFService interface {
	RenderReport(report *models.Report, assessment *models.AssessmentRecord) ([]byte, error)
}
