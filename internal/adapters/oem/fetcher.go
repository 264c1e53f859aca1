package oem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/isstracker/internal/core/domain"
	"github.com/samirrijal/isstracker/internal/pkg/telemetry"
)

// DefaultURL is NASA's public ISS trajectory feed.
const DefaultURL = "https://nasa-public-data.s3.amazonaws.com/iss-coords/current/ISS_OEM/ISS.OEM_J2K_EPH.xml"

// Fetcher implements ports.FeedFetcher over HTTP.
type Fetcher struct {
	url    string
	client *http.Client
}

// NewFetcher creates a Fetcher for url. client may be nil, in which case a
// client with the given timeout is used.
func NewFetcher(url string, client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{url: url, client: client}
}

// Fetch downloads the feed and parses it. There is no retry.
func (f *Fetcher) Fetch(ctx context.Context) (*domain.Dataset, error) {
	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, telemetry.SpanFeedFetch)
	defer span.End()
	span.SetAttributes(attribute.String("url", f.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	slog.DebugContext(ctx, "fetching oem feed", "url", f.url)
	resp, err := f.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, f.url)
	}

	ds, err := Parse(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("epochs", len(ds.StateVectors)))
	return ds, nil
}
