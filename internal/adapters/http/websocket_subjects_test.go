package http

import (
	"reflect"
	"testing"

	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/isstracker/internal/adapters/nats"
	"github.com/samirrijal/isstracker/internal/core/domain"
)

func TestEventSubject(t *testing.T) {
	tests := []struct {
		event   string
		subject string
		ok      bool
	}{
		{"", wsAllEvents, true},
		{domain.EventDatasetLoaded, natsadapter.Subject(domain.EventDatasetLoaded), true},
		{domain.EventDatasetCleared, natsadapter.Subject(domain.EventDatasetCleared), true},
		{"reloaded", "", false},
	}

	for _, tt := range tests {
		subject, ok := eventSubject(tt.event)
		if ok != tt.ok || subject != tt.subject {
			t.Errorf("eventSubject(%q) = %q, %v; want %q, %v", tt.event, subject, ok, tt.subject, tt.ok)
		}
	}
}

func TestCoveringSubject(t *testing.T) {
	loaded := natsadapter.Subject(domain.EventDatasetLoaded)
	cleared := natsadapter.Subject(domain.EventDatasetCleared)

	tests := []struct {
		name    string
		held    []string
		subject string
		want    string
		covered bool
	}{
		{"wildcard covers loaded", []string{wsAllEvents}, loaded, wsAllEvents, true},
		{"wildcard covers itself", []string{wsAllEvents}, wsAllEvents, wsAllEvents, true},
		{"exact match", []string{loaded}, loaded, loaded, true},
		{"other event not covered", []string{loaded}, cleared, "", false},
		{"events do not cover wildcard", []string{loaded, cleared}, wsAllEvents, "", false},
		{"nothing held", nil, loaded, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, covered := coveringSubject(heldSubjects(tt.held...), tt.subject)
			if covered != tt.covered || got != tt.want {
				t.Errorf("coveringSubject = %q, %v; want %q, %v", got, covered, tt.want, tt.covered)
			}
		})
	}
}

func TestSupersededSubjects(t *testing.T) {
	loaded := natsadapter.Subject(domain.EventDatasetLoaded)
	cleared := natsadapter.Subject(domain.EventDatasetCleared)
	held := heldSubjects(loaded, cleared)

	got := supersededSubjects(held, wsAllEvents)
	want := []string{cleared, loaded}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("supersededSubjects(wildcard) = %v, want %v", got, want)
	}

	if got := supersededSubjects(held, loaded); got != nil {
		t.Errorf("supersededSubjects(loaded) = %v, want nil", got)
	}
}

func heldSubjects(subjects ...string) map[string]*nats.Subscription {
	held := make(map[string]*nats.Subscription, len(subjects))
	for _, s := range subjects {
		held[s] = nil
	}
	return held
}
