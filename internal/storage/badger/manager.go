package badger

import (
	"errors"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db         *BadgerDB
	assessment interfaces.AssessmentStorage
	report     interfaces.ReportStorage
	logger     arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:         db,
		assessment: NewAssessmentStorage(db, logger),
		report:     NewReportStorage(db, logger),
		logger:     logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// AssessmentStorage returns the assessment storage interface
func (m *Manager) AssessmentStorage() interfaces.AssessmentStorage {
	return m.assessment
}

// ReportStorage returns the report storage interface
func (m *Manager) ReportStorage() interfaces.ReportStorage {
	return m.report
}

// RunValueLogGC triggers one round of Badger value-log garbage collection.
// Badger reports ErrNoRewrite when there was nothing to collect; that is
// not an error for callers.
func (m *Manager) RunValueLogGC() error {
	err := m.db.Store().Badger().RunValueLogGC(0.5)
	if errors.Is(err, badgerdb.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
