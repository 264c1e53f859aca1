package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/isstracker/internal/adapters/http"
	"github.com/samirrijal/isstracker/internal/adapters/memory"
	natsadapter "github.com/samirrijal/isstracker/internal/adapters/nats"
	"github.com/samirrijal/isstracker/internal/adapters/nominatim"
	"github.com/samirrijal/isstracker/internal/adapters/oem"
	"github.com/samirrijal/isstracker/internal/adapters/valkey"
	"github.com/samirrijal/isstracker/internal/core/ports"
	"github.com/samirrijal/isstracker/internal/core/usecases"
	"github.com/samirrijal/isstracker/internal/pkg/config"
	"github.com/samirrijal/isstracker/internal/pkg/logging"
	"github.com/samirrijal/isstracker/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("isstracker-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Geocode cache. Left as a nil interface when disabled or unreachable.
	var geocodeCache ports.CacheService
	var cache *valkey.Cache
	if cfg.Valkey.Enabled {
		cache, err = valkey.New(cfg.Valkey.Addr, cfg.Valkey.Prefix)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			defer cache.Close()
			geocodeCache = cache
		}
	}

	// Dataset events
	var events ports.EventPublisher
	var natsConn *nats.Conn
	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer pub.Close()
			events = pub
		}

		// Raw NATS connection for WebSocket relay
		natsConn, err = natsadapter.RawConn(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats ws conn unavailable", "error", err)
			natsConn = nil
		} else {
			defer natsConn.Close()
		}
	}

	// Adapters
	store := memory.NewDatasetStore()
	feed := oem.NewFetcher(cfg.Feed.URL, nil, time.Duration(cfg.Feed.Timeout)*time.Second)
	geocoder := nominatim.New(nominatim.Config{
		BaseURL:          cfg.Geocoder.BaseURL,
		UserAgent:        cfg.Geocoder.UserAgent,
		Language:         cfg.Geocoder.Language,
		Timeout:          time.Duration(cfg.Geocoder.Timeout) * time.Second,
		FailureThreshold: uint32(cfg.Geocoder.FailureThreshold),
		OpenTimeout:      time.Duration(cfg.Geocoder.OpenTimeout) * time.Second,
	}, nil)

	// Use cases
	dataSvc := usecases.NewDataService(store, feed, events)
	epochSvc := usecases.NewEpochService(store)
	locationSvc := usecases.NewLocationService(store, geocoder, geocodeCache, cfg.Valkey.CacheTTL)

	if cfg.Feed.LoadOnStart {
		loadCtx, loadCancel := context.WithTimeout(ctx, time.Duration(cfg.Feed.Timeout)*time.Second)
		ds, err := dataSvc.Reload(loadCtx)
		loadCancel()
		if err != nil {
			log.Fatalf("initial data load: %v", err)
		}
		slog.Info("initial data loaded", "epochs", len(ds.StateVectors), "url", cfg.Feed.URL)
	}

	deps := &http.Dependencies{
		Data:      dataSvc,
		Epochs:    epochSvc,
		Locations: locationSvc,
		NATS:      natsConn,
		Cache:     cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "ISS Tracker API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, If-None-Match",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
