package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ajkula/moni/domain/model"
	"github.com/ajkula/moni/domain/port/outbound"
)

// DefaultInterval is the pause between two polling cycles.
const DefaultInterval = 100 * time.Millisecond

// WatchConfig carries the loop settings fixed at construction.
type WatchConfig struct {
	// Interval is the sleep between the end of a cycle and the next scan
	Interval time.Duration

	// PruneMissing drops store entries for paths absent from the latest scan
	PruneMissing bool
}

// WatchServiceImpl is the polling loop: scan, diff against the change store,
// dispatch, record. Everything runs on the caller's goroutine, one file at a
// time, in scan order.
type WatchServiceImpl struct {
	config     WatchConfig
	scanner    outbound.TreeScanner
	observer   outbound.FileObserver
	store      outbound.ChangeStore
	dispatcher *ActionDispatcher
	reporter   outbound.Reporter
	logger     outbound.Logger

	mu          sync.RWMutex
	status      model.WatchStatus
	initialized bool
}

func NewWatchService(
	config WatchConfig,
	scanner outbound.TreeScanner,
	observer outbound.FileObserver,
	store outbound.ChangeStore,
	dispatcher *ActionDispatcher,
	reporter outbound.Reporter,
	logger outbound.Logger,
) (*WatchServiceImpl, error) {
	if config.Interval == 0 {
		config.Interval = DefaultInterval
	}
	if config.Interval < 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidInterval, config.Interval)
	}
	if scanner == nil || observer == nil || store == nil || dispatcher == nil || reporter == nil || logger == nil {
		return nil, errors.New("watch service: missing dependency")
	}

	return &WatchServiceImpl{
		config:     config,
		scanner:    scanner,
		observer:   observer,
		store:      store,
		dispatcher: dispatcher,
		reporter:   reporter,
		logger:     logger,
		status: model.WatchStatus{
			State: model.StateIdle,
			Root:  scanner.Root(),
		},
	}, nil
}

// Initialize seeds the change store from one full scan and emits the start
// notification. A scan failure here refuses to start the watch.
func (s *WatchServiceImpl) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.status.State = model.StateInitializing
	s.mu.Unlock()

	s.logger.Info("Scanning watch root", "root", s.scanner.Root())

	paths, err := s.scanner.Scan(ctx)
	if err != nil {
		s.setState(model.StateIdle)
		return fmt.Errorf("initial scan: %w", err)
	}

	seeded := 0
	for _, path := range paths {
		value, err := s.observer.Observe(path)
		if err != nil {
			s.logger.Debug("Skipping unreadable file during seed", "path", path, "error", err)
			continue
		}
		s.store.Insert(path, value)
		seeded++
	}

	s.mu.Lock()
	s.initialized = true
	s.status.State = model.StatePolling
	s.status.StartedAt = time.Now()
	s.status.TrackedFiles = s.store.Len()
	s.mu.Unlock()

	s.logger.Info("Watch initialized", "root", s.scanner.Root(), "files", seeded,
		"interval", s.config.Interval.String())
	s.reporter.OnStart()
	return nil
}

// Run polls until ctx is cancelled. Each cycle starts one interval after
// the previous one finished, so slow actions never overlap.
func (s *WatchServiceImpl) Run(ctx context.Context) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(s.config.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.setState(model.StateStopped)
			s.logger.Info("Watch loop stopped")
			return nil

		case <-timer.C:
			if err := s.RunCycle(ctx); err != nil && !isCancellation(err) {
				s.logger.Debug("Cycle ended with error", "error", err)
			}
			timer.Reset(s.config.Interval)
		}
	}
}

// RunCycle performs one scan/diff/dispatch pass. A scan failure is reported
// and returned; per-file observation failures are skipped silently.
func (s *WatchServiceImpl) RunCycle(ctx context.Context) error {
	paths, err := s.scanner.Scan(ctx)
	if err != nil {
		if isCancellation(err) {
			return err
		}
		s.recordScanFailure(err)
		s.logger.Error("Scan failed", "root", s.scanner.Root(), "error", err)
		s.reporter.OnError(err.Error())
		return err
	}

	var present map[string]struct{}
	if s.config.PruneMissing {
		present = make(map[string]struct{}, len(paths))
	}

	var skipped int64
	for _, path := range paths {
		if present != nil {
			present[path] = struct{}{}
		}

		value, err := s.observer.Observe(path)
		if err != nil {
			// vanished between listing and stat
			skipped++
			continue
		}

		switch {
		case s.store.IsModified(path, value):
			if err := ctx.Err(); err != nil {
				return err
			}
			s.logger.Debug("File changed", "path", path, "kind", model.ChangeModified)
			s.recordOutcome(s.dispatcher.Dispatch(ctx, path))
			s.store.Update(path, value)

		case s.store.IsNew(path):
			if err := ctx.Err(); err != nil {
				return err
			}
			s.logger.Debug("File changed", "path", path, "kind", model.ChangeCreated)
			s.recordOutcome(s.dispatcher.Dispatch(ctx, path))
			s.store.Insert(path, value)
		}
	}

	var pruned int
	if present != nil {
		if pruned = s.store.Prune(present); pruned > 0 {
			s.logger.Debug("Pruned missing files", "count", pruned)
		}
	}

	s.mu.Lock()
	s.status.Cycles++
	s.status.SkippedObservations += skipped
	s.status.Pruned += int64(pruned)
	s.status.TrackedFiles = s.store.Len()
	s.status.LastScanError = ""
	s.status.LastCycleAt = time.Now()
	s.mu.Unlock()

	return nil
}

func (s *WatchServiceImpl) Status() model.WatchStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *WatchServiceImpl) TrackedFiles() map[string]int64 {
	return s.store.Snapshot()
}

func (s *WatchServiceImpl) setState(state model.WatchState) {
	s.mu.Lock()
	s.status.State = state
	s.mu.Unlock()
}

func (s *WatchServiceImpl) recordOutcome(outcome model.DispatchOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch outcome {
	case model.OutcomeSucceeded:
		s.status.Dispatched++
		s.status.Succeeded++
	case model.OutcomeFailed:
		s.status.Dispatched++
		s.status.Failed++
	}
}

func (s *WatchServiceImpl) recordScanFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.Cycles++
	s.status.ScanFailures++
	s.status.LastScanError = err.Error()
	s.status.LastCycleAt = time.Now()
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
