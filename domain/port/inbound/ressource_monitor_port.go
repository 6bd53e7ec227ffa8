package inbound

import (
	"context"
)

// ResourceStats is one sample of process usage next to the watch counters
type ResourceStats struct {
	Timestamp   int64  `json:"timestamp"`
	MemoryUsage int64  `json:"memoryUsage"` // bytes
	Goroutines  int    `json:"goroutines"`
	GCCycles    uint32 `json:"gcCycles"`
	GCPauseNs   int64  `json:"gcPauseNs"`
	HeapObjects uint64 `json:"heapObjects"`

	TrackedFiles int   `json:"trackedFiles"`
	Cycles       int64 `json:"cycles"`
	Dispatched   int64 `json:"dispatched"`
}

// ResourceMonitorService samples resource usage periodically
type ResourceMonitorService interface {
	// GetCurrentStats returns the latest sample, collecting one if none exists
	GetCurrentStats(ctx context.Context) (*ResourceStats, error)

	// GetStatsHistory returns at most limit samples, oldest first; limit <= 0 returns all
	GetStatsHistory(ctx context.Context, limit int) ([]*ResourceStats, error)

	// Cleanup stops the collection
	Cleanup()
}
