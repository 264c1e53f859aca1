package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("isstracker-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("expected port 5000, got %d", cfg.Server.Port)
	}
	if !strings.HasSuffix(cfg.Feed.URL, "ISS.OEM_J2K_EPH.xml") {
		t.Errorf("unexpected feed url %s", cfg.Feed.URL)
	}
	if cfg.Geocoder.UserAgent != "iss_tracker" || cfg.Geocoder.Language != "en" {
		t.Errorf("unexpected geocoder config %+v", cfg.Geocoder)
	}
	if cfg.Telemetry.ServiceName != "isstracker-test" {
		t.Errorf("expected service name from argument, got %s", cfg.Telemetry.ServiceName)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ISSTRACKER_SERVER_PORT", "8081")
	t.Setenv("ISSTRACKER_FEED_URL", "http://localhost:9000/iss.xml")
	t.Setenv("ISSTRACKER_FEED_LOAD_ON_START", "false")

	cfg, err := Load("isstracker-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("expected port 8081, got %d", cfg.Server.Port)
	}
	if cfg.Feed.URL != "http://localhost:9000/iss.xml" {
		t.Errorf("unexpected feed url %s", cfg.Feed.URL)
	}
	if cfg.Feed.LoadOnStart {
		t.Error("expected load_on_start to be disabled")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 0, ReadTimeout: 1, WriteTimeout: 1},
		Feed:     FeedConfig{URL: "ftp://example.com/iss.xml", Timeout: 1},
		Geocoder: GeocoderConfig{BaseURL: "https://nominatim.openstreetmap.org", UserAgent: "", Timeout: 1, FailureThreshold: 1},
		Valkey:   ValkeyConfig{Enabled: true},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"server.port", "feed.url", "geocoder.user_agent", "valkey.addr"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}
