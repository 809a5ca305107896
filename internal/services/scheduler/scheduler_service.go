package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
)

// Service runs background storage maintenance on a cron schedule. The only
// registered task is Badger value-log garbage collection.
type Service struct {
	config  *common.MaintenanceConfig
	storage interfaces.StorageManager
	cron    *cron.Cron
	logger  arbor.ILogger

	mu      sync.Mutex
	running bool
}

// NewService creates a maintenance scheduler
func NewService(config *common.MaintenanceConfig, storage interfaces.StorageManager, logger arbor.ILogger) *Service {
	return &Service{
		config:  config,
		storage: storage,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start registers the GC task and begins the cron loop. Disabled maintenance
// is a no-op start.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Debug().Msg("Storage maintenance disabled")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	schedule := s.config.GCSchedule
	if schedule == "" {
		schedule = "@every 30m"
	}

	if _, err := s.cron.AddFunc(schedule, s.runGC); err != nil {
		return fmt.Errorf("failed to add GC cron job: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info().Str("schedule", schedule).Msg("Storage maintenance scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running task to finish
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info().Msg("Storage maintenance scheduler stopped")
}

func (s *Service) runGC() {
	if err := s.storage.RunValueLogGC(); err != nil {
		s.logger.Warn().Err(err).Msg("Value log GC failed")
		return
	}
	s.logger.Debug().Msg("Value log GC completed")
}
