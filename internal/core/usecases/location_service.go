package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/isstracker/internal/core/domain"
	"github.com/samirrijal/isstracker/internal/core/ports"
	"github.com/samirrijal/isstracker/internal/pkg/geospatial"
	"github.com/samirrijal/isstracker/internal/pkg/metrics"
	"github.com/samirrijal/isstracker/internal/pkg/telemetry"
)

const (
	// MaxZoom is the most precise zoom level the geocoder is asked for.
	MaxZoom = 15
	// ZoomStep is how much precision is dropped after each miss.
	ZoomStep = 3

	defaultGeocodeTTL = 3600
)

// LocationService turns state vectors into geodetic positions and places.
type LocationService struct {
	store    ports.DatasetStore
	geocoder ports.ReverseGeocoder
	cache    ports.CacheService
	cacheTTL int
}

// NewLocationService creates a new LocationService. cache may be nil.
func NewLocationService(store ports.DatasetStore, geocoder ports.ReverseGeocoder, cache ports.CacheService, cacheTTLSeconds int) *LocationService {
	if cacheTTLSeconds <= 0 {
		cacheTTLSeconds = defaultGeocodeTTL
	}
	return &LocationService{store: store, geocoder: geocoder, cache: cache, cacheTTL: cacheTTLSeconds}
}

// Locate computes the location of the ISS at epoch.
func (s *LocationService) Locate(ctx context.Context, epoch string) (*domain.LocationReport, error) {
	ds, ok := s.store.Get()
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	sv, ok := ds.Find(epoch)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEpochNotFound, epoch)
	}
	return s.locate(ctx, sv)
}

// Now computes the location at the most recent epoch of the dataset.
func (s *LocationService) Now(ctx context.Context) (*domain.LocationReport, error) {
	ds, ok := s.store.Get()
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	sv, ok := ds.Last()
	if !ok {
		return nil, domain.ErrEpochNotFound
	}
	return s.locate(ctx, sv)
}

func (s *LocationService) locate(ctx context.Context, sv domain.StateVector) (*domain.LocationReport, error) {
	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, telemetry.SpanLocate)
	defer span.End()
	span.SetAttributes(attribute.String("epoch", sv.Epoch))

	hour, minute, err := domain.Clock(sv.Epoch)
	if err != nil {
		return nil, err
	}

	lat, lon, alt := geospatial.SubPoint(sv.X.Value, sv.Y.Value, sv.Z.Value, hour, minute)

	geo, err := s.geocode(ctx, lat, lon)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &domain.LocationReport{
		Epoch: sv.Epoch,
		Location: domain.Location{
			Latitude:    lat,
			Longitude:   lon,
			Altitude:    alt,
			Geoposition: geo,
		},
		Speed: speedOf(sv),
	}, nil
}

// geocode asks for an address at MaxZoom and lowers the zoom by ZoomStep
// after every miss. The attempt at zoom 0 is the last one.
func (s *LocationService) geocode(ctx context.Context, lat, lon float64) (domain.Geoposition, error) {
	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, telemetry.SpanGeocode)
	defer span.End()

	attempts := 0
	for zoom := MaxZoom; zoom >= 0; zoom -= ZoomStep {
		attempts++
		address, found, err := s.reverse(ctx, lat, lon, zoom)
		if err != nil {
			metrics.GeocodeLookups.WithLabelValues("error").Inc()
			return domain.Geoposition{}, fmt.Errorf("%w - %v", domain.ErrGeocoder, err)
		}
		if found {
			metrics.GeocodeLookups.WithLabelValues("found").Inc()
			metrics.GeocodeAttempts.Observe(float64(attempts))
			span.SetAttributes(attribute.Int("zoom", zoom), attribute.Int("attempts", attempts))
			return domain.Geoposition{Found: true, Zoom: zoom, Address: address}, nil
		}
	}

	metrics.GeocodeLookups.WithLabelValues("not_found").Inc()
	metrics.GeocodeAttempts.Observe(float64(attempts))
	slog.DebugContext(ctx, "no place found", "lat", lat, "lon", lon, "attempts", attempts)
	return domain.Geoposition{Found: false}, nil
}

type cachedPlace struct {
	Found   bool              `json:"found"`
	Address map[string]string `json:"address,omitempty"`
}

// reverse is a read-through cache in front of the geocoder. Misses are
// cached too so a repeated ocean lookup costs nothing.
func (s *LocationService) reverse(ctx context.Context, lat, lon float64, zoom int) (map[string]string, bool, error) {
	cacheKey := fmt.Sprintf("geocode:%.4f:%.4f:%d", lat, lon, zoom)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var p cachedPlace
			if err := json.Unmarshal(data, &p); err == nil {
				metrics.CacheHits.WithLabelValues("geocode").Inc()
				return p.Address, p.Found, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("geocode").Inc()
	}

	address, found, err := s.geocoder.Reverse(ctx, lat, lon, zoom)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(cachedPlace{Found: found, Address: address}); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	return address, found, nil
}
