package inbound

import (
	"context"

	"github.com/ajkula/moni/domain/model"
)

// WatchService drives the polling loop over the watched tree
type WatchService interface {
	// Initialize scans the tree once and seeds the change store so that
	// pre-existing files are not reported as new
	Initialize(ctx context.Context) error

	// Run initializes if needed, then polls until ctx is cancelled
	Run(ctx context.Context) error

	// RunCycle performs a single scan/diff/dispatch pass
	RunCycle(ctx context.Context) error

	// Status returns a snapshot of the loop counters
	Status() model.WatchStatus

	// TrackedFiles returns the change store contents
	TrackedFiles() map[string]int64
}
