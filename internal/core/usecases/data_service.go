package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/samirrijal/isstracker/internal/core/domain"
	"github.com/samirrijal/isstracker/internal/core/ports"
	"github.com/samirrijal/isstracker/internal/pkg/metrics"
	"github.com/samirrijal/isstracker/internal/pkg/telemetry"
)

// DataService loads, clears and exposes the held OEM dataset.
type DataService struct {
	store  ports.DatasetStore
	feed   ports.FeedFetcher
	events ports.EventPublisher
}

// NewDataService creates a new DataService. events may be nil.
func NewDataService(store ports.DatasetStore, feed ports.FeedFetcher, events ports.EventPublisher) *DataService {
	return &DataService{store: store, feed: feed, events: events}
}

// Reload fetches the feed and replaces the held dataset with the result.
// A failed fetch leaves the previous dataset in place.
func (s *DataService) Reload(ctx context.Context) (*domain.Dataset, error) {
	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, telemetry.SpanDatasetReload)
	defer span.End()

	start := time.Now()
	ds, err := s.feed.Fetch(ctx)
	metrics.FeedLoadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FeedLoads.WithLabelValues("error").Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("reload dataset: %w", err)
	}

	s.store.Load(ds)
	metrics.FeedLoads.WithLabelValues("ok").Inc()
	metrics.DatasetEpochs.Set(float64(len(ds.StateVectors)))

	slog.InfoContext(ctx, "dataset loaded",
		"epochs", len(ds.StateVectors),
		"object", ds.Metadata.ObjectName,
		"duration", time.Since(start).String(),
	)

	s.publish(ctx, &domain.DatasetEvent{
		Type:       domain.EventDatasetLoaded,
		Epochs:     len(ds.StateVectors),
		ObjectName: ds.Metadata.ObjectName,
		StartTime:  ds.Metadata.StartTime,
		StopTime:   ds.Metadata.StopTime,
		OccurredAt: time.Now().UTC(),
	})

	return ds, nil
}

// Clear drops the held dataset.
func (s *DataService) Clear(ctx context.Context) {
	s.store.Clear()
	metrics.DatasetEpochs.Set(0)
	slog.InfoContext(ctx, "dataset cleared")

	s.publish(ctx, &domain.DatasetEvent{
		Type:       domain.EventDatasetCleared,
		OccurredAt: time.Now().UTC(),
	})
}

// Dataset returns the held dataset or domain.ErrDataNotFound.
func (s *DataService) Dataset(ctx context.Context) (*domain.Dataset, error) {
	ds, ok := s.store.Get()
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return ds, nil
}

// Loaded reports whether a dataset is held.
func (s *DataService) Loaded() bool {
	_, ok := s.store.Get()
	return ok
}

// Header returns the OEM header.
func (s *DataService) Header(ctx context.Context) (*domain.Header, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return &ds.Header, nil
}

// Metadata returns the segment metadata.
func (s *DataService) Metadata(ctx context.Context) (*domain.Metadata, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return &ds.Metadata, nil
}

// Comments returns the comment lines of the data block.
func (s *DataService) Comments(ctx context.Context) ([]string, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	if ds.Comments == nil {
		return []string{}, nil
	}
	return ds.Comments, nil
}

func (s *DataService) publish(ctx context.Context, event *domain.DatasetEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishDatasetEvent(ctx, event); err != nil {
		slog.WarnContext(ctx, "publish dataset event failed", "type", event.Type, "error", err)
	}
}
