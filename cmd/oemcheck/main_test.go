package main

import (
	"testing"

	"github.com/samirrijal/isstracker/internal/core/domain"
)

func TestSummarize(t *testing.T) {
	ds := &domain.Dataset{
		Header:   domain.Header{Originator: "JSC"},
		Comments: []string{"a", "b"},
		StateVectors: []domain.StateVector{
			{Epoch: "2024-047T12:00:00.000Z", X: domain.Quantity{Value: 6771}},
			{Epoch: "2024-047T12:04:00.000Z", X: domain.Quantity{Value: 6791}},
			{Epoch: "2024-047T12:08:00.000Z", X: domain.Quantity{Value: 6781}},
		},
	}

	s := summarize("file.xml", ds)
	if s.Epochs != 3 || s.Comments != 2 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.FirstEpoch != "2024-047T12:00:00.000Z" || s.LastEpoch != "2024-047T12:08:00.000Z" {
		t.Errorf("unexpected epoch range %s..%s", s.FirstEpoch, s.LastEpoch)
	}
	if s.MinAltitude != 400 || s.MaxAltitude != 420 {
		t.Errorf("expected altitude 400..420, got %f..%f", s.MinAltitude, s.MaxAltitude)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := summarize("file.xml", &domain.Dataset{})
	if s.Epochs != 0 || s.FirstEpoch != "" {
		t.Errorf("unexpected summary %+v", s)
	}
}
