package memory

import (
	"sync"

	"github.com/ajkula/moni/domain/port/outbound"
)

// ChangeStore is the in-memory record of the last observed value per path.
// One mutex guards the whole map so check-then-write stays atomic.
type ChangeStore struct {
	values map[string]int64
	mutex  sync.RWMutex
}

func NewChangeStore() outbound.ChangeStore {
	return &ChangeStore{
		values: make(map[string]int64),
	}
}

func (s *ChangeStore) IsNew(path string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, exists := s.values[path]
	return !exists
}

func (s *ChangeStore) IsModified(path string, value int64) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.isModifiedLocked(path, value)
}

func (s *ChangeStore) Insert(path string, value int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.values[path]; !exists {
		s.values[path] = value
	}
}

func (s *ChangeStore) Update(path string, value int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.isModifiedLocked(path, value) {
		s.values[path] = value
	}
}

// Prune removes every path not in present.
func (s *ChangeStore) Prune(present map[string]struct{}) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for path := range s.values {
		if _, ok := present[path]; !ok {
			delete(s.values, path)
			removed++
		}
	}
	return removed
}

func (s *ChangeStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.values)
}

func (s *ChangeStore) Snapshot() map[string]int64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snapshot := make(map[string]int64, len(s.values))
	for path, value := range s.values {
		snapshot[path] = value
	}
	return snapshot
}

func (s *ChangeStore) isModifiedLocked(path string, value int64) bool {
	old, exists := s.values[path]
	return exists && old != value
}
