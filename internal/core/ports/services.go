package ports

import (
	"context"

	"github.com/samirrijal/isstracker/internal/core/domain"
)

// EventPublisher publishes dataset lifecycle events to a message broker.
type EventPublisher interface {
	PublishDatasetEvent(ctx context.Context, event *domain.DatasetEvent) error
}

// ReverseGeocoder maps coordinates to an address. zoom controls the
// precision of the lookup; higher is more precise. A lookup that finds
// nothing returns found=false and a nil error.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64, zoom int) (address map[string]string, found bool, err error)
}

// CacheService provides read-through caching. Entries expire by TTL;
// nothing evicts them explicitly.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
}
