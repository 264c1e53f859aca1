package usecases_test

import (
	"context"
	"errors"

	"github.com/samirrijal/isstracker/internal/core/domain"
	"github.com/samirrijal/isstracker/internal/core/ports"
)

// --- Mock DatasetStore ---

type mockStore struct {
	ds *domain.Dataset
}

func (m *mockStore) Load(ds *domain.Dataset) { m.ds = ds }
func (m *mockStore) Clear()                  { m.ds = nil }
func (m *mockStore) Get() (*domain.Dataset, bool) {
	return m.ds, m.ds != nil
}

// --- Mock FeedFetcher ---

type mockFeed struct {
	fetchFn func(ctx context.Context) (*domain.Dataset, error)
}

func (m *mockFeed) Fetch(ctx context.Context) (*domain.Dataset, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx)
	}
	return nil, errors.New("no feed")
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	events []*domain.DatasetEvent
	err    error
}

func (m *mockPublisher) PublishDatasetEvent(ctx context.Context, event *domain.DatasetEvent) error {
	m.events = append(m.events, event)
	return m.err
}

// --- Mock ReverseGeocoder ---

type mockGeocoder struct {
	reverseFn func(ctx context.Context, lat, lon float64, zoom int) (map[string]string, bool, error)
	zooms     []int
}

func (m *mockGeocoder) Reverse(ctx context.Context, lat, lon float64, zoom int) (map[string]string, bool, error) {
	m.zooms = append(m.zooms, zoom)
	if m.reverseFn != nil {
		return m.reverseFn(ctx, lat, lon, zoom)
	}
	return nil, false, nil
}

// --- Mock CacheService ---

type mockCache struct {
	data map[string][]byte
}

var _ ports.CacheService = (*mockCache)(nil)

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("miss")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.data[key] = value
	return nil
}

// --- Fixtures ---

func km(v float64) domain.Quantity   { return domain.Quantity{Value: v, Units: "km"} }
func kmps(v float64) domain.Quantity { return domain.Quantity{Value: v, Units: "km/s"} }

func sampleDataset() *domain.Dataset {
	return &domain.Dataset{
		Header:   domain.Header{CreationDate: "2023-048T19:52:53.337Z", Originator: "JSC"},
		Metadata: domain.Metadata{ObjectName: "ISS", ObjectID: "1998-067-A", CenterName: "EARTH"},
		Comments: []string{"Source: ISS Trajectory Operations", "Units are km and km/s"},
		StateVectors: []domain.StateVector{
			{Epoch: "2023-048T12:00:00.000Z", X: km(100), Y: km(0), Z: km(0), XDot: kmps(0), YDot: kmps(0), ZDot: kmps(0)},
			{Epoch: "2023-048T12:04:00.000Z", X: km(-5097.51711371908), Y: km(1202.93232659766), Z: km(4205.64425745073),
				XDot: kmps(-2.30166741398655), YDot: kmps(-7.22542281016489), ZDot: kmps(-0.72839066716375)},
			{Epoch: "2023-048T12:08:00.000Z", X: km(3), Y: km(4), Z: km(12), XDot: kmps(1), YDot: kmps(2), ZDot: kmps(2)},
			{Epoch: "2023-048T12:12:00.000Z", X: km(6800), Y: km(0), Z: km(0), XDot: kmps(0), YDot: kmps(7.6), ZDot: kmps(0)},
		},
	}
}
