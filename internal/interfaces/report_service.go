package interfaces

import (
	"context"

	"github.com/greenmeansgo/verdant/internal/models"
)

// ReportService runs the report generation pipeline for stored assessments.
type ReportService interface {
	// Generate produces and stores a report for the assessment. Returns
	// ErrAssessmentNotFound when the assessment does not exist,
	// ErrIncompleteAssessment when completeness checking blocks generation,
	// and ErrAllSectionsFailed when no section could be generated.
	Generate(ctx context.Context, assessmentID string, reportType models.ReportType) (*models.Report, error)

	// CheckCompleteness reports whether an assessment carries enough data
	// for narrative generation, without generating anything.
	CheckCompleteness(ctx context.Context, assessmentID string) (*models.CompletenessVerdict, error)
}
