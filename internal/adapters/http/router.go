package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"
	"github.com/samirrijal/isstracker/internal/pkg/metrics"
)

const (
	// queryTimeout bounds in-memory lookups.
	queryTimeout = 15 * time.Second
	// locateTimeout covers every zoom attempt against the geocoder.
	locateTimeout = 75 * time.Second
	// reloadTimeout covers downloading and parsing the feed.
	reloadTimeout = 60 * time.Second
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
	}))

	// Security headers
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness, no timeout
	app.Get("/health", HealthHandler(deps))
	app.Get("/ready", ReadyHandler(deps))

	// Data set
	app.Get("/", timeout.NewWithContext(DatasetHandler(deps), queryTimeout))
	app.Get("/epochs", timeout.NewWithContext(EpochsHandler(deps), queryTimeout))
	app.Get("/epochs/:epoch", timeout.NewWithContext(StateVectorHandler(deps), queryTimeout))
	app.Get("/epochs/:epoch/speed", timeout.NewWithContext(SpeedHandler(deps), queryTimeout))
	app.Get("/epochs/:epoch/location", timeout.NewWithContext(LocationHandler(deps), locateTimeout))
	app.Get("/now", timeout.NewWithContext(NowHandler(deps), locateTimeout))
	app.Get("/comment", timeout.NewWithContext(CommentHandler(deps), queryTimeout))
	app.Get("/header", timeout.NewWithContext(HeaderHandler(deps), queryTimeout))
	app.Get("/metadata", timeout.NewWithContext(MetadataHandler(deps), queryTimeout))
	app.Get("/help", HelpHandler())

	// Data set lifecycle
	app.Post("/post-data", timeout.NewWithContext(PostDataHandler(deps), reloadTimeout))
	app.Delete("/delete-data", DeleteDataHandler(deps))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket relay of data set events
	if deps.NATS != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
	}
}
