package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/samirrijal/isstracker/internal/core/domain"
)

// DatasetEventHandler processes one dataset event. Returning an error asks
// JetStream to redeliver it.
type DatasetEventHandler func(ctx context.Context, event *domain.DatasetEvent) error

// Subscriber consumes dataset events from the ISS_DATASET stream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber connects to NATS and enables JetStream.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeDatasetEvents attaches a durable consumer to every dataset event
// subject. Messages are acked after handler succeeds and nak'd otherwise,
// with at most three deliveries.
func (s *Subscriber) SubscribeDatasetEvents(ctx context.Context, durable string, handler DatasetEventHandler) error {
	sub, err := s.js.Subscribe(SubjectPrefix+".>", func(msg *nats.Msg) {
		if err := decodeAndHandle(ctx, msg.Data, handler); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

func decodeAndHandle(ctx context.Context, data []byte, handler DatasetEventHandler) error {
	var event domain.DatasetEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decode dataset event: %w", err)
	}
	return handler(ctx, &event)
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
