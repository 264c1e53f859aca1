// Command oemcheck downloads the ISS OEM feed, or reads a local file given
// as the first argument, and prints a JSON summary of what was parsed.
package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/samirrijal/isstracker/internal/adapters/oem"
	"github.com/samirrijal/isstracker/internal/core/domain"
	"github.com/samirrijal/isstracker/internal/pkg/config"
	"github.com/samirrijal/isstracker/internal/pkg/geospatial"
	"github.com/samirrijal/isstracker/internal/pkg/logging"
)

type summary struct {
	Source      string          `json:"source"`
	Header      domain.Header   `json:"header"`
	Metadata    domain.Metadata `json:"metadata"`
	Comments    int             `json:"comments"`
	Epochs      int             `json:"epochs"`
	FirstEpoch  string          `json:"first_epoch,omitempty"`
	LastEpoch   string          `json:"last_epoch,omitempty"`
	MinAltitude float64         `json:"min_altitude_km"`
	MaxAltitude float64         `json:"max_altitude_km"`
}

func main() {
	cfg, err := config.Load("isstracker-oemcheck")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	var (
		ds     *domain.Dataset
		source string
	)
	if len(os.Args) > 1 {
		source = os.Args[1]
		f, err := os.Open(source)
		if err != nil {
			log.Fatalf("open %s: %v", source, err)
		}
		ds, err = oem.Parse(f)
		f.Close()
		if err != nil {
			log.Fatalf("parse %s: %v", source, err)
		}
	} else {
		source = cfg.Feed.URL
		timeout := time.Duration(cfg.Feed.Timeout) * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ds, err = oem.NewFetcher(source, nil, timeout).Fetch(ctx)
		if err != nil {
			log.Fatalf("fetch: %v", err)
		}
	}

	s := summarize(source, ds)
	slog.Info("feed parsed", "source", source, "epochs", s.Epochs)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

func summarize(source string, ds *domain.Dataset) summary {
	s := summary{
		Source:   source,
		Header:   ds.Header,
		Metadata: ds.Metadata,
		Comments: len(ds.Comments),
		Epochs:   len(ds.StateVectors),
	}
	if len(ds.StateVectors) == 0 {
		return s
	}
	s.FirstEpoch = ds.StateVectors[0].Epoch
	s.LastEpoch = ds.StateVectors[len(ds.StateVectors)-1].Epoch

	for i, sv := range ds.StateVectors {
		alt := geospatial.Altitude(sv.X.Value, sv.Y.Value, sv.Z.Value)
		if i == 0 || alt < s.MinAltitude {
			s.MinAltitude = alt
		}
		if i == 0 || alt > s.MaxAltitude {
			s.MaxAltitude = alt
		}
	}
	return s
}
