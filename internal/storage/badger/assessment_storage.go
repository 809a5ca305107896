package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/models"
)

// AssessmentStorage implements the AssessmentStorage interface for Badger
type AssessmentStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAssessmentStorage creates a new AssessmentStorage instance
func NewAssessmentStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AssessmentStorage {
	return &AssessmentStorage{
		db:     db,
		logger: logger,
	}
}

// StoreAssessment inserts or updates an assessment record
func (s *AssessmentStorage) StoreAssessment(ctx context.Context, record *models.AssessmentRecord) error {
	if record.ID == "" {
		return fmt.Errorf("assessment id cannot be empty")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to store assessment: %w", err)
	}

	s.logger.Debug().Str("assessment_id", record.ID).Msg("Assessment stored")
	return nil
}

// GetAssessment retrieves an assessment record by id
func (s *AssessmentStorage) GetAssessment(ctx context.Context, id string) (*models.AssessmentRecord, error) {
	var record models.AssessmentRecord
	err := s.db.Store().Get(id, &record)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return &record, nil
}

// ListAssessments returns all assessment records, newest first
func (s *AssessmentStorage) ListAssessments(ctx context.Context) ([]*models.AssessmentRecord, error) {
	var records []*models.AssessmentRecord
	query := (&badgerhold.Query{}).SortBy("CreatedAt").Reverse()
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return records, nil
}

// DeleteAssessment removes an assessment record by id
func (s *AssessmentStorage) DeleteAssessment(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.AssessmentRecord{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrAssessmentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	s.logger.Debug().Str("assessment_id", id).Msg("Assessment deleted")
	return nil
}

// CountAssessments returns the number of stored assessment records
func (s *AssessmentStorage) CountAssessments(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.AssessmentRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count assessments: %w", err)
	}
	return int(count), nil
}
