package ports

import (
	"context"

	"github.com/samirrijal/isstracker/internal/core/domain"
)

// DatasetStore holds the single loaded OEM dataset.
type DatasetStore interface {
	// Load replaces any previously held dataset.
	Load(ds *domain.Dataset)
	// Clear drops the held dataset.
	Clear()
	// Get returns the held dataset, or false when nothing is loaded.
	Get() (*domain.Dataset, bool)
}

// FeedFetcher retrieves and parses the remote OEM feed.
type FeedFetcher interface {
	Fetch(ctx context.Context) (*domain.Dataset, error)
}
