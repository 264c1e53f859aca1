// Command events tails dataset load and delete events from JetStream and
// writes each one as a structured log line.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	natsadapter "github.com/samirrijal/isstracker/internal/adapters/nats"
	"github.com/samirrijal/isstracker/internal/core/domain"
	"github.com/samirrijal/isstracker/internal/pkg/config"
	"github.com/samirrijal/isstracker/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load("isstracker-events")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	durable := "isstracker-events"
	if len(os.Args) > 1 {
		durable = os.Args[1]
	}

	err = sub.SubscribeDatasetEvents(ctx, durable, func(ctx context.Context, event *domain.DatasetEvent) error {
		slog.InfoContext(ctx, "dataset event",
			"type", event.Type,
			"epochs", event.Epochs,
			"object_name", event.ObjectName,
			"start_time", event.StartTime,
			"stop_time", event.StopTime,
			"occurred_at", event.OccurredAt,
		)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	slog.Info("tailing dataset events", "url", cfg.NATS.URL, "durable", durable)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutting down", "signal", sig.String())
}
