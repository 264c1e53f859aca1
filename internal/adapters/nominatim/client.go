package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/samirrijal/isstracker/internal/pkg/metrics"
)

// DefaultBaseURL is the public OpenStreetMap Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Config configures a Client.
type Config struct {
	BaseURL   string
	UserAgent string
	Language  string
	Timeout   time.Duration

	// Breaker opens after FailureThreshold consecutive provider failures and
	// half-opens again after OpenTimeout.
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// reverseResponse is the subset of the jsonv2 reverse payload we use.
// A lookup that finds nothing comes back as {"error": "Unable to geocode"}.
type reverseResponse struct {
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
	Error       string            `json:"error"`
}

// Client implements ports.ReverseGeocoder against a Nominatim server.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*reverseResponse]
}

// New creates a Client. Zero config fields fall back to defaults.
func New(cfg Config, client *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "iss_tracker"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	threshold := cfg.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker[*reverseResponse](gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("geocoder circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Client{cfg: cfg, http: client, breaker: breaker}
}

// Reverse looks up the address at lat/lon with the given zoom.
func (c *Client) Reverse(ctx context.Context, lat, lon float64, zoom int) (map[string]string, bool, error) {
	res, err := c.breaker.Execute(func() (*reverseResponse, error) {
		return c.do(ctx, lat, lon, zoom)
	})
	if err != nil {
		return nil, false, err
	}
	if res.Error != "" || len(res.Address) == 0 {
		return nil, false, nil
	}
	return res.Address, true, nil
}

func (c *Client) do(ctx context.Context, lat, lon float64, zoom int) (*reverseResponse, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("zoom", strconv.Itoa(zoom))
	q.Set("addressdetails", "1")
	q.Set("accept-language", c.cfg.Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.GeocodeRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nominatim HTTP %d: %s", resp.StatusCode, body)
	}

	var r reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	slog.DebugContext(ctx, "nominatim reverse", "lat", lat, "lon", lon, "zoom", zoom, "place", r.DisplayName, "error", r.Error)
	return &r, nil
}
