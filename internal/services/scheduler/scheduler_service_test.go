package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
)

type gcCountingStorage struct {
	gcRuns atomic.Int32
}

var _ interfaces.StorageManager = (*gcCountingStorage)(nil)

func (g *gcCountingStorage) AssessmentStorage() interfaces.AssessmentStorage { return nil }
func (g *gcCountingStorage) ReportStorage() interfaces.ReportStorage         { return nil }
func (g *gcCountingStorage) Close() error                                    { return nil }
func (g *gcCountingStorage) RunValueLogGC() error {
	g.gcRuns.Add(1)
	return nil
}

func TestSchedulerRunsGC(t *testing.T) {
	storage := &gcCountingStorage{}
	svc := NewService(&common.MaintenanceConfig{
		Enabled:    true,
		GCSchedule: "@every 50ms",
	}, storage, arbor.NewLogger())

	require.NoError(t, svc.Start())
	defer svc.Stop()

	assert.Eventually(t, func() bool {
		return storage.gcRuns.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestSchedulerDisabled(t *testing.T) {
	storage := &gcCountingStorage{}
	svc := NewService(&common.MaintenanceConfig{Enabled: false}, storage, arbor.NewLogger())

	require.NoError(t, svc.Start())
	svc.Stop()

	assert.Zero(t, storage.gcRuns.Load())
}

func TestSchedulerDoubleStart(t *testing.T) {
	svc := NewService(&common.MaintenanceConfig{
		Enabled:    true,
		GCSchedule: "@every 1h",
	}, &gcCountingStorage{}, arbor.NewLogger())

	require.NoError(t, svc.Start())
	defer svc.Stop()

	assert.Error(t, svc.Start())
}
