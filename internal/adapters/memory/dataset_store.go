package memory

import (
	"sync/atomic"

	"github.com/samirrijal/isstracker/internal/core/domain"
)

// DatasetStore implements ports.DatasetStore in process memory. Load and
// Clear swap a single pointer, so readers always see a whole document.
type DatasetStore struct {
	current atomic.Pointer[domain.Dataset]
}

// NewDatasetStore creates an empty store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Load replaces the held dataset.
func (s *DatasetStore) Load(ds *domain.Dataset) {
	s.current.Store(ds)
}

// Clear drops the held dataset.
func (s *DatasetStore) Clear() {
	s.current.Store(nil)
}

// Get returns the held dataset.
func (s *DatasetStore) Get() (*domain.Dataset, bool) {
	ds := s.current.Load()
	return ds, ds != nil
}
