package service

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/ajkula/moni/domain/model"
)

type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Error(msg string, args ...any) { m.Called(msg, args) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.Called(msg, args) }
func (m *MockLogger) Info(msg string, args ...any)  { m.Called(msg, args) }
func (m *MockLogger) Debug(msg string, args ...any) { m.Called(msg, args) }

// newQuietLogger accepts any log call
func newQuietLogger() *MockLogger {
	l := new(MockLogger)
	for _, level := range []string{"Error", "Warn", "Info", "Debug"} {
		l.On(level, mock.Anything, mock.Anything).Maybe()
	}
	return l
}

type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) OnStart()                      { m.Called() }
func (m *MockReporter) OnCommandAbout(command string) { m.Called(command) }
func (m *MockReporter) OnSuccess(output string)       { m.Called(output) }
func (m *MockReporter) OnError(output string)         { m.Called(output) }
func (m *MockReporter) OnSeparator()                  { m.Called() }

type MockCommandRunner struct {
	mock.Mock
}

func (m *MockCommandRunner) Run(ctx context.Context, command string) (model.CommandResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(model.CommandResult), args.Error(1)
}

// eventRecorder is a Reporter keeping every notification in order
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) add(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) OnStart()                { r.add("start") }
func (r *eventRecorder) OnCommandAbout(c string) { r.add("command:" + c) }
func (r *eventRecorder) OnSuccess(o string)      { r.add("success:" + o) }
func (r *eventRecorder) OnError(o string)        { r.add("error:" + o) }
func (r *eventRecorder) OnSeparator()            { r.add("separator") }

func (r *eventRecorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// fakeTree plays scanner and observer over an in-memory file set
type fakeTree struct {
	mu      sync.Mutex
	files   map[string]int64
	order   []string
	scanErr error
	// listed but fail to observe, as if deleted in between
	vanished map[string]bool
}

func newFakeTree() *fakeTree {
	return &fakeTree{files: map[string]int64{}, vanished: map[string]bool{}}
}

func (t *fakeTree) Set(path string, size int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.files[path]; !ok {
		t.order = append(t.order, path)
	}
	t.files[path] = size
}

func (t *fakeTree) Remove(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.files, path)
	for i, p := range t.order {
		if p == path {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *fakeTree) FailScan(err error) {
	t.mu.Lock()
	t.scanErr = err
	t.mu.Unlock()
}

func (t *fakeTree) Scan(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.scanErr != nil {
		return nil, t.scanErr
	}
	return append([]string(nil), t.order...), nil
}

func (t *fakeTree) Root() string { return "/fake" }

func (t *fakeTree) Observe(path string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.vanished[path] {
		return 0, model.ErrScanFailed
	}
	size, ok := t.files[path]
	if !ok {
		return 0, model.ErrScanFailed
	}
	return size, nil
}

// mapStore is a minimal ChangeStore
type mapStore struct {
	mu     sync.Mutex
	values map[string]int64
}

func newMapStore() *mapStore { return &mapStore{values: map[string]int64{}} }

func (s *mapStore) IsNew(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[path]
	return !ok
}

func (s *mapStore) IsModified(path string, value int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.values[path]
	return ok && old != value
}

func (s *mapStore) Insert(path string, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[path]; !ok {
		s.values[path] = value
	}
}

func (s *mapStore) Update(path string, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[path]; ok {
		s.values[path] = value
	}
}

func (s *mapStore) Prune(present map[string]struct{}) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for p := range s.values {
		if _, ok := present[p]; !ok {
			delete(s.values, p)
			n++
		}
	}
	return n
}

func (s *mapStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

func (s *mapStore) Snapshot() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
