package http

import (
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/isstracker/internal/adapters/nats"
	"github.com/samirrijal/isstracker/internal/core/domain"
	"github.com/samirrijal/isstracker/internal/pkg/metrics"
)

const wsPingInterval = 30 * time.Second

// wsAllEvents matches every dataset event subject.
var wsAllEvents = natsadapter.SubjectPrefix + ".>"

// wsMessage is sent from client to subscribe/unsubscribe to event types.
type wsMessage struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Event  string `json:"event"`  // "loaded" | "cleared" | "" for both
}

// WebSocketHandler relays dataset events from NATS to connected clients.
// Every client starts subscribed to all events and can narrow that with
// {"action":"unsubscribe"} followed by {"action":"subscribe","event":"loaded"}.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		logger := slog.Default().With("remote", c.RemoteAddr().String())
		logger.Info("ws client connected")
		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		var mu sync.Mutex
		subs := make(map[string]*nats.Subscription) // subject -> subscription

		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		subscribe := func(subject string) error {
			s, err := nc.Subscribe(subject, func(msg *nats.Msg) {
				if err := writeJSON(json.RawMessage(msg.Data)); err != nil {
					logger.Debug("ws relay write failed", "subject", msg.Subject, "error", err)
				}
			})
			if err != nil {
				return err
			}
			subs[subject] = s
			return nil
		}

		if err := subscribe(wsAllEvents); err != nil {
			logger.Error("ws default subscribe failed", "error", err)
			return
		}

		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(wsPingInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(raw, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			subject, ok := eventSubject(m.Event)
			if !ok {
				_ = writeJSON(map[string]string{"error": "unknown event: " + m.Event})
				continue
			}

			switch m.Action {
			case "subscribe":
				if held, covered := coveringSubject(subs, subject); covered {
					_ = writeJSON(map[string]string{"status": "already subscribed", "subject": held})
					continue
				}
				for _, narrower := range supersededSubjects(subs, subject) {
					_ = subs[narrower].Unsubscribe()
					delete(subs, narrower)
				}
				if err := subscribe(subject); err != nil {
					_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
					continue
				}
				_ = writeJSON(map[string]string{"status": "subscribed", "subject": subject})

			case "unsubscribe":
				s, exists := subs[subject]
				if !exists {
					_ = writeJSON(map[string]string{"error": "not subscribed to " + subject})
					continue
				}
				_ = s.Unsubscribe()
				delete(subs, subject)
				_ = writeJSON(map[string]string{"status": "unsubscribed", "subject": subject})

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		logger.Info("ws client disconnected")
	}
}

// eventSubject maps a client event name to its NATS subject.
func eventSubject(event string) (string, bool) {
	switch event {
	case "":
		return wsAllEvents, true
	case domain.EventDatasetLoaded, domain.EventDatasetCleared:
		return natsadapter.Subject(event), true
	}
	return "", false
}

// coveringSubject returns the held subject that already delivers events on
// subject: the subject itself or the all-events wildcard.
func coveringSubject(held map[string]*nats.Subscription, subject string) (string, bool) {
	if _, ok := held[subject]; ok {
		return subject, true
	}
	if _, ok := held[wsAllEvents]; ok {
		return wsAllEvents, true
	}
	return "", false
}

// supersededSubjects lists the held per-event subjects that a wildcard
// subscription to subject would deliver a second time.
func supersededSubjects(held map[string]*nats.Subscription, subject string) []string {
	if subject != wsAllEvents {
		return nil
	}
	var out []string
	for s := range held {
		if s != wsAllEvents {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
