package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajkula/moni/domain/model"
)

type watchFixture struct {
	tree     *fakeTree
	store    *mapStore
	reporter *eventRecorder
	seen     []string
	service  *WatchServiceImpl
}

func newWatchFixture(t *testing.T, cfg WatchConfig) *watchFixture {
	t.Helper()

	f := &watchFixture{
		tree:     newFakeTree(),
		store:    newMapStore(),
		reporter: &eventRecorder{},
	}

	action := model.ActionSpec{Callback: func(path string) (string, error) {
		f.seen = append(f.seen, path)
		return path, nil
	}}
	logger := newQuietLogger()
	dispatcher := NewActionDispatcher(action, nil, f.reporter, logger)

	svc, err := NewWatchService(cfg, f.tree, f.tree, f.store, dispatcher, f.reporter, logger)
	require.NoError(t, err)
	f.service = svc
	return f
}

func TestNewWatchService_Validation(t *testing.T) {
	tree := newFakeTree()
	logger := newQuietLogger()
	reporter := &eventRecorder{}
	dispatcher := NewActionDispatcher(model.ActionSpec{}, nil, reporter, logger)

	svc, err := NewWatchService(WatchConfig{}, tree, tree, newMapStore(), dispatcher, reporter, logger)
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, svc.config.Interval)
	assert.Equal(t, model.StateIdle, svc.Status().State)
	assert.Equal(t, "/fake", svc.Status().Root)

	_, err = NewWatchService(WatchConfig{Interval: -time.Second}, tree, tree, newMapStore(), dispatcher, reporter, logger)
	assert.ErrorIs(t, err, model.ErrInvalidInterval)

	_, err = NewWatchService(WatchConfig{}, tree, tree, nil, dispatcher, reporter, logger)
	assert.Error(t, err)
}

func TestWatchService_InitializeSeedsWithoutDispatch(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	f.tree.Set("a.txt", 1)
	f.tree.Set("b.txt", 2)

	require.NoError(t, f.service.Initialize(context.Background()))

	assert.Empty(t, f.seen)
	assert.Equal(t, []string{"start"}, f.reporter.Events())
	assert.Equal(t, map[string]int64{"a.txt": 1, "b.txt": 2}, f.service.TrackedFiles())

	status := f.service.Status()
	assert.Equal(t, model.StatePolling, status.State)
	assert.Equal(t, 2, status.TrackedFiles)
	assert.False(t, status.StartedAt.IsZero())

	// second call is a no-op
	require.NoError(t, f.service.Initialize(context.Background()))
	assert.Equal(t, []string{"start"}, f.reporter.Events())
}

func TestWatchService_InitializeScanFailure(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	f.tree.FailScan(model.ErrScanFailed)

	err := f.service.Initialize(context.Background())

	assert.ErrorIs(t, err, model.ErrScanFailed)
	assert.Equal(t, model.StateIdle, f.service.Status().State)
	assert.Empty(t, f.reporter.Events())
}

func TestWatchService_UnchangedTreeDispatchesNothing(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	f.tree.Set("a.txt", 1)
	require.NoError(t, f.service.Initialize(context.Background()))

	for i := 0; i < 3; i++ {
		require.NoError(t, f.service.RunCycle(context.Background()))
	}

	assert.Empty(t, f.seen)
	assert.Equal(t, int64(3), f.service.Status().Cycles)
}

func TestWatchService_NewFileDispatchedOnce(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	require.NoError(t, f.service.Initialize(context.Background()))

	f.tree.Set("new.txt", 5)
	require.NoError(t, f.service.RunCycle(context.Background()))
	require.NoError(t, f.service.RunCycle(context.Background()))

	assert.Equal(t, []string{"new.txt"}, f.seen)
	assert.Equal(t, map[string]int64{"new.txt": 5}, f.service.TrackedFiles())
	assert.Equal(t, []string{"start", "success:new.txt", "separator"}, f.reporter.Events())
}

func TestWatchService_ModifiedFileDispatched(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	f.tree.Set("a.txt", 1)
	require.NoError(t, f.service.Initialize(context.Background()))

	f.tree.Set("a.txt", 7)
	require.NoError(t, f.service.RunCycle(context.Background()))

	assert.Equal(t, []string{"a.txt"}, f.seen)
	assert.Equal(t, int64(7), f.service.TrackedFiles()["a.txt"])

	status := f.service.Status()
	assert.Equal(t, int64(1), status.Dispatched)
	assert.Equal(t, int64(1), status.Succeeded)
}

func TestWatchService_SameSizeRewriteIsInvisible(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	f.tree.Set("a.txt", 3)
	require.NoError(t, f.service.Initialize(context.Background()))

	f.tree.Set("a.txt", 3)
	require.NoError(t, f.service.RunCycle(context.Background()))

	assert.Empty(t, f.seen)
}

func TestWatchService_DispatchFollowsScanOrder(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	f.tree.Set("a.txt", 1)
	f.tree.Set("b.txt", 1)
	require.NoError(t, f.service.Initialize(context.Background()))

	f.tree.Set("a.txt", 2)
	f.tree.Set("b.txt", 2)
	require.NoError(t, f.service.RunCycle(context.Background()))

	assert.Equal(t, []string{"a.txt", "b.txt"}, f.seen)
}

func TestWatchService_VanishedFileSkipped(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	require.NoError(t, f.service.Initialize(context.Background()))

	f.tree.Set("ghost.txt", 1)
	f.tree.vanished["ghost.txt"] = true
	require.NoError(t, f.service.RunCycle(context.Background()))

	assert.Empty(t, f.seen)
	assert.Equal(t, int64(1), f.service.Status().SkippedObservations)
	assert.NotContains(t, f.service.TrackedFiles(), "ghost.txt")
}

func TestWatchService_ScanFailureReported(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	require.NoError(t, f.service.Initialize(context.Background()))

	f.tree.FailScan(model.ErrScanFailed)
	err := f.service.RunCycle(context.Background())

	assert.ErrorIs(t, err, model.ErrScanFailed)
	status := f.service.Status()
	assert.Equal(t, int64(1), status.ScanFailures)
	assert.NotEmpty(t, status.LastScanError)
	assert.Equal(t, []string{"start", "error:" + model.ErrScanFailed.Error()}, f.reporter.Events())

	// the next good cycle clears the error
	f.tree.FailScan(nil)
	require.NoError(t, f.service.RunCycle(context.Background()))
	assert.Empty(t, f.service.Status().LastScanError)
}

func TestWatchService_DeletedFileKeptWithoutPrune(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	f.tree.Set("a.txt", 1)
	require.NoError(t, f.service.Initialize(context.Background()))

	f.tree.Remove("a.txt")
	require.NoError(t, f.service.RunCycle(context.Background()))
	assert.Contains(t, f.service.TrackedFiles(), "a.txt")

	// recreated with the same size: still known, nothing fires
	f.tree.Set("a.txt", 1)
	require.NoError(t, f.service.RunCycle(context.Background()))
	assert.Empty(t, f.seen)
}

func TestWatchService_PruneMissing(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{PruneMissing: true})
	f.tree.Set("a.txt", 1)
	f.tree.Set("b.txt", 1)
	require.NoError(t, f.service.Initialize(context.Background()))

	f.tree.Remove("a.txt")
	require.NoError(t, f.service.RunCycle(context.Background()))

	assert.Equal(t, []string{"b.txt"}, sortedKeys(f.service.TrackedFiles()))
	assert.Equal(t, int64(1), f.service.Status().Pruned)

	// recreated: new again
	f.tree.Set("a.txt", 1)
	require.NoError(t, f.service.RunCycle(context.Background()))
	assert.Equal(t, []string{"a.txt"}, f.seen)
}

func TestWatchService_CancelledCycle(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{})
	require.NoError(t, f.service.Initialize(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := f.service.RunCycle(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int64(0), f.service.Status().ScanFailures)
	assert.Equal(t, []string{"start"}, f.reporter.Events())
}

func TestWatchService_RunStopsOnCancel(t *testing.T) {
	f := newWatchFixture(t, WatchConfig{Interval: 5 * time.Millisecond})
	f.tree.Set("a.txt", 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.service.Run(ctx) }()

	require.Eventually(t, func() bool {
		return f.service.Status().Cycles >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, model.StateStopped, f.service.Status().State)
}

func TestWatchService_RunDetectsChange(t *testing.T) {
	tree := newFakeTree()
	tree.Set("a.txt", 1)
	reporter := &eventRecorder{}
	logger := newQuietLogger()

	fired := make(chan string, 1)
	action := model.ActionSpec{Callback: func(path string) (string, error) {
		fired <- path
		return "", nil
	}}
	svc, err := NewWatchService(WatchConfig{Interval: 5 * time.Millisecond},
		tree, tree, newMapStore(), NewActionDispatcher(action, nil, reporter, logger), reporter, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	require.Eventually(t, func() bool {
		return svc.Status().State == model.StatePolling
	}, time.Second, time.Millisecond)

	tree.Set("a.txt", 2)

	select {
	case path := <-fired:
		assert.Equal(t, "a.txt", path)
	case <-time.After(time.Second):
		t.Fatal("change was not dispatched")
	}
}
