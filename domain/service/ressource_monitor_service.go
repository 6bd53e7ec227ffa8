package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/ajkula/moni/domain/port/inbound"
	"github.com/ajkula/moni/domain/port/outbound"
)

const (
	defaultCollectInterval = time.Minute
	defaultHistorySize     = 60
)

type ResourceMonitorServiceImpl struct {
	watchService    inbound.WatchService
	logger          outbound.Logger
	statsHistory    []*inbound.ResourceStats
	lastStats       *inbound.ResourceStats
	maxHistorySize  int
	collectInterval time.Duration
	stopCollect     chan struct{}
	stopOnce        sync.Once
	mu              sync.RWMutex
}

// NewResourceMonitorService starts sampling every collectInterval (one
// minute when zero) until ctx is done or Cleanup is called.
func NewResourceMonitorService(
	ctx context.Context,
	watchService inbound.WatchService,
	logger outbound.Logger,
	collectInterval time.Duration,
) *ResourceMonitorServiceImpl {
	if collectInterval <= 0 {
		collectInterval = defaultCollectInterval
	}

	svc := &ResourceMonitorServiceImpl{
		watchService:    watchService,
		logger:          logger,
		statsHistory:    make([]*inbound.ResourceStats, 0, defaultHistorySize), // 1 hour at 1 point per minute
		maxHistorySize:  defaultHistorySize,
		collectInterval: collectInterval,
		stopCollect:     make(chan struct{}),
	}

	logger.Debug("Initializing resource monitoring service", "interval", collectInterval.String())
	go svc.startCollection(ctx)

	return svc
}

var _ inbound.ResourceMonitorService = (*ResourceMonitorServiceImpl)(nil)

func (s *ResourceMonitorServiceImpl) startCollection(ctx context.Context) {
	ticker := time.NewTicker(s.collectInterval)
	defer ticker.Stop()

	s.collectStats()

	for {
		select {
		case <-ticker.C:
			s.collectStats()
		case <-s.stopCollect:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *ResourceMonitorServiceImpl) collectStats() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := s.watchService.Status()

	stats := &inbound.ResourceStats{
		Timestamp:    time.Now().Unix(),
		MemoryUsage:  int64(memStats.Alloc),
		Goroutines:   runtime.NumGoroutine(),
		GCCycles:     memStats.NumGC,
		GCPauseNs:    int64(memStats.PauseNs[(memStats.NumGC+255)%256]), // last GC pause
		HeapObjects:  memStats.HeapObjects,
		TrackedFiles: status.TrackedFiles,
		Cycles:       status.Cycles,
		Dispatched:   status.Dispatched,
	}

	s.mu.Lock()
	s.lastStats = stats
	s.statsHistory = append(s.statsHistory, stats)
	if len(s.statsHistory) > s.maxHistorySize {
		s.statsHistory = s.statsHistory[len(s.statsHistory)-s.maxHistorySize:]
	}
	s.mu.Unlock()
}

func (s *ResourceMonitorServiceImpl) GetCurrentStats(ctx context.Context) (*inbound.ResourceStats, error) {
	s.mu.RLock()
	last := s.lastStats
	s.mu.RUnlock()

	if last == nil {
		s.collectStats()
		s.mu.RLock()
		last = s.lastStats
		s.mu.RUnlock()
	}

	return last, nil
}

func (s *ResourceMonitorServiceImpl) GetStatsHistory(ctx context.Context, limit int) ([]*inbound.ResourceStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*inbound.ResourceStats, len(s.statsHistory))
	copy(result, s.statsHistory)

	if limit > 0 && limit < len(result) {
		result = result[len(result)-limit:]
	}

	return result, nil
}

func (s *ResourceMonitorServiceImpl) Cleanup() {
	s.stopOnce.Do(func() {
		close(s.stopCollect)
		s.logger.Debug("Resource monitoring stopped")
	})
}
