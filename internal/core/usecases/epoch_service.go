package usecases

import (
	"context"
	"fmt"
	"math"

	"github.com/samirrijal/isstracker/internal/core/domain"
	"github.com/samirrijal/isstracker/internal/core/ports"
	"github.com/samirrijal/isstracker/internal/pkg/geospatial"
)

// EpochService answers queries about individual state vectors.
type EpochService struct {
	store ports.DatasetStore
}

// NewEpochService creates a new EpochService.
func NewEpochService(store ports.DatasetStore) *EpochService {
	return &EpochService{store: store}
}

// Epochs returns epochs[offset : offset+limit] of the held dataset. A nil
// offset means 0 and a nil limit means the full list length. Bounds follow
// half-open slice rules: negative values count from the end, out-of-range
// values clamp, and an end before the start yields an empty list.
func (s *EpochService) Epochs(ctx context.Context, offset, limit *int) ([]string, error) {
	ds, ok := s.store.Get()
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	epochs := ds.Epochs()

	start := 0
	if offset != nil {
		start = *offset
	}
	length := len(epochs)
	if limit != nil {
		length = *limit
	}

	from, to := sliceBounds(len(epochs), start, saturatingAdd(start, length))
	return epochs[from:to], nil
}

// Count returns the number of state vectors in the held dataset.
func (s *EpochService) Count(ctx context.Context) (int, error) {
	ds, ok := s.store.Get()
	if !ok {
		return 0, domain.ErrDataNotFound
	}
	return len(ds.StateVectors), nil
}

// StateVector returns the state vector recorded at epoch.
func (s *EpochService) StateVector(ctx context.Context, epoch string) (*domain.StateVector, error) {
	ds, ok := s.store.Get()
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	sv, ok := ds.Find(epoch)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEpochNotFound, epoch)
	}
	return &sv, nil
}

// Speed returns the instantaneous speed at epoch.
func (s *EpochService) Speed(ctx context.Context, epoch string) (*domain.Speed, error) {
	sv, err := s.StateVector(ctx, epoch)
	if err != nil {
		return nil, err
	}
	speed := speedOf(*sv)
	return &speed, nil
}

// speedOf is the Euclidean norm of the velocity, in the units of Z_DOT.
func speedOf(sv domain.StateVector) domain.Speed {
	return domain.Speed{
		Speed: geospatial.Norm(sv.XDot.Value, sv.YDot.Value, sv.ZDot.Value),
		Units: sv.ZDot.Units,
	}
}

// saturatingAdd returns a+b pinned to the int range instead of wrapping.
func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

func sliceBounds(n, start, stop int) (int, int) {
	start = clampIndex(n, start)
	stop = clampIndex(n, stop)
	if stop < start {
		stop = start
	}
	return start, stop
}

func clampIndex(n, i int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}
