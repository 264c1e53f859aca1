package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isstracker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "isstracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "isstracker",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Feed metrics
	FeedLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isstracker",
		Subsystem: "feed",
		Name:      "loads_total",
		Help:      "Total OEM feed loads by result",
	}, []string{"result"})

	FeedLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "isstracker",
		Subsystem: "feed",
		Name:      "load_duration_seconds",
		Help:      "Duration of fetching and parsing the OEM feed",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	DatasetEpochs = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "isstracker",
		Subsystem: "feed",
		Name:      "dataset_epochs",
		Help:      "Number of state vectors in the held dataset",
	})

	// Geocoding metrics
	GeocodeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isstracker",
		Subsystem: "geocode",
		Name:      "lookups_total",
		Help:      "Reverse geocoding lookups by outcome",
	}, []string{"outcome"})

	GeocodeAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "isstracker",
		Subsystem: "geocode",
		Name:      "attempts",
		Help:      "Provider attempts needed per location lookup",
		Buckets:   []float64{1, 2, 3, 4, 5, 6},
	})

	GeocodeRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "isstracker",
		Subsystem: "geocode",
		Name:      "request_duration_seconds",
		Help:      "Latency of single reverse geocoding provider requests",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "isstracker",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isstracker",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isstracker",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		// Route pattern keeps epoch values out of the label set.
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
