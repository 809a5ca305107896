package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/models"
)

// ReportStorage implements the ReportStorage interface for Badger. Storing
// under an existing id overwrites the prior value, which is how report
// regeneration works: last write wins.
type ReportStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewReportStorage creates a new ReportStorage instance
func NewReportStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ReportStorage {
	return &ReportStorage{
		db:     db,
		logger: logger,
	}
}

// StoreReport inserts or overwrites a report
func (s *ReportStorage) StoreReport(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		return fmt.Errorf("report id cannot be empty")
	}

	if err := s.db.Store().Upsert(report.ID, report); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}

	s.logger.Debug().Str("report_id", report.ID).Msg("Report stored")
	return nil
}

// GetReport retrieves a report by id
func (s *ReportStorage) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := s.db.Store().Get(id, &report)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// ListReports returns all reports, newest first
func (s *ReportStorage) ListReports(ctx context.Context) ([]*models.Report, error) {
	var reports []*models.Report
	query := (&badgerhold.Query{}).SortBy("GeneratedAt").Reverse()
	if err := s.db.Store().Find(&reports, query); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// ListReportsByAssessment returns all reports generated for one assessment
func (s *ReportStorage) ListReportsByAssessment(ctx context.Context, assessmentID string) ([]*models.Report, error) {
	var reports []*models.Report
	query := badgerhold.Where("AssessmentID").Eq(assessmentID)
	if err := s.db.Store().Find(&reports, query); err != nil {
		return nil, fmt.Errorf("failed to list reports for assessment: %w", err)
	}
	return reports, nil
}

// DeleteReport removes a report by id
func (s *ReportStorage) DeleteReport(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.Report{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrReportNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	s.logger.Debug().Str("report_id", id).Msg("Report deleted")
	return nil
}

// CountReports returns the number of stored reports
func (s *ReportStorage) CountReports(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Report{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return int(count), nil
}
