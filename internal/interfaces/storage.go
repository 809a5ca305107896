package interfaces

import (
	"context"

	"github.com/greenmeansgo/verdant/internal/models"
)

// AssessmentStorage - interface for assessment record persistence
type AssessmentStorage interface {
	StoreAssessment(ctx context.Context, record *models.AssessmentRecord) error
	GetAssessment(ctx context.Context, id string) (*models.AssessmentRecord, error)
	ListAssessments(ctx context.Context) ([]*models.AssessmentRecord, error)
	DeleteAssessment(ctx context.Context, id string) error
	CountAssessments(ctx context.Context) (int, error)
}

// ReportStorage - interface for generated report persistence. Storing an
// existing id overwrites the prior value; regeneration is last-write-wins.
type ReportStorage interface {
	StoreReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context) ([]*models.Report, error)
	ListReportsByAssessment(ctx context.Context, assessmentID string) ([]*models.Report, error)
	DeleteReport(ctx context.Context, id string) error
	CountReports(ctx context.Context) (int, error)
}

// StorageManager - composite interface for all storage operations
type StorageManager interface {
	AssessmentStorage() AssessmentStorage
	ReportStorage() ReportStorage
	RunValueLogGC() error
	Close() error
}
