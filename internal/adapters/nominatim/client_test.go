package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestClient_Reverse_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("zoom") != "12" || q.Get("accept-language") != "en" || q.Get("format") != "jsonv2" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("lat") != "-27.5" || q.Get("lon") != "153.25" {
			t.Errorf("unexpected coordinates %s", r.URL.RawQuery)
		}
		if ua := r.Header.Get("User-Agent"); ua != "iss_tracker" {
			t.Errorf("unexpected user agent %q", ua)
		}
		_, _ = w.Write([]byte(`{"display_name":"Brisbane, Queensland, Australia","address":{"city":"Brisbane","state":"Queensland","country":"Australia","country_code":"au"}}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, srv.Client())
	addr, found, err := c.Reverse(context.Background(), -27.5, 153.25, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a result")
	}
	if addr["country"] != "Australia" || addr["city"] != "Brisbane" {
		t.Errorf("unexpected address %v", addr)
	}
}

func TestClient_Reverse_UnableToGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, srv.Client())
	addr, found, err := c.Reverse(context.Background(), 0, -140, 15)
	if err != nil {
		t.Fatalf("a miss must not be an error: %v", err)
	}
	if found || addr != nil {
		t.Errorf("expected no result, got %v", addr)
	}
}

func TestClient_Reverse_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, srv.Client())
	_, _, err := c.Reverse(context.Background(), 1, 2, 15)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status in error, got %q", err.Error())
	}
}

func TestClient_Reverse_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, srv.Client())
	if _, _, err := c.Reverse(context.Background(), 1, 2, 15); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClient_BreakerOpensAfterFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, FailureThreshold: 2, OpenTimeout: time.Minute}, srv.Client())
	for i := 0; i < 2; i++ {
		if _, _, err := c.Reverse(context.Background(), 1, 2, 15); err == nil {
			t.Fatal("expected error")
		}
	}

	_, _, err := c.Reverse(context.Background(), 1, 2, 15)
	if err != gobreaker.ErrOpenState {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("expected 2 upstream hits, got %d", hits.Load())
	}
}
