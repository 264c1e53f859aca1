package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/isstracker/internal/core/domain"
	"github.com/samirrijal/isstracker/internal/core/usecases"
)

func TestDataService_Reload(t *testing.T) {
	store := &mockStore{}
	pub := &mockPublisher{}
	feed := &mockFeed{fetchFn: func(ctx context.Context) (*domain.Dataset, error) {
		return sampleDataset(), nil
	}}
	svc := usecases.NewDataService(store, feed, pub)

	ds, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.StateVectors) != 4 {
		t.Errorf("expected 4 state vectors, got %d", len(ds.StateVectors))
	}
	if store.ds != ds {
		t.Error("expected dataset to be stored")
	}
	if len(pub.events) != 1 || pub.events[0].Type != "loaded" || pub.events[0].Epochs != 4 {
		t.Errorf("unexpected events %+v", pub.events)
	}
}

func TestDataService_Reload_FetchErrorKeepsPrevious(t *testing.T) {
	previous := sampleDataset()
	store := &mockStore{ds: previous}
	feed := &mockFeed{fetchFn: func(ctx context.Context) (*domain.Dataset, error) {
		return nil, errors.New("connection refused")
	}}
	svc := usecases.NewDataService(store, feed, nil)

	if _, err := svc.Reload(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if store.ds != previous {
		t.Error("previous dataset should be untouched")
	}
}

func TestDataService_Reload_PublishErrorIsNotFatal(t *testing.T) {
	feed := &mockFeed{fetchFn: func(ctx context.Context) (*domain.Dataset, error) {
		return sampleDataset(), nil
	}}
	svc := usecases.NewDataService(&mockStore{}, feed, &mockPublisher{err: errors.New("nats down")})

	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDataService_Clear(t *testing.T) {
	store := &mockStore{ds: sampleDataset()}
	pub := &mockPublisher{}
	svc := usecases.NewDataService(store, &mockFeed{}, pub)

	svc.Clear(context.Background())

	if svc.Loaded() {
		t.Error("expected no dataset after clear")
	}
	if _, err := svc.Dataset(context.Background()); !errors.Is(err, domain.ErrDataNotFound) {
		t.Errorf("expected ErrDataNotFound, got %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Type != "cleared" {
		t.Errorf("unexpected events %+v", pub.events)
	}
}

func TestDataService_Sections(t *testing.T) {
	svc := usecases.NewDataService(&mockStore{ds: sampleDataset()}, &mockFeed{}, nil)
	ctx := context.Background()

	header, err := svc.Header(ctx)
	if err != nil || header.Originator != "JSC" {
		t.Errorf("unexpected header %+v (%v)", header, err)
	}
	meta, err := svc.Metadata(ctx)
	if err != nil || meta.ObjectName != "ISS" {
		t.Errorf("unexpected metadata %+v (%v)", meta, err)
	}
	comments, err := svc.Comments(ctx)
	if err != nil || len(comments) != 2 {
		t.Errorf("unexpected comments %v (%v)", comments, err)
	}
}

func TestDataService_Sections_NoData(t *testing.T) {
	svc := usecases.NewDataService(&mockStore{}, &mockFeed{}, nil)
	ctx := context.Background()

	if _, err := svc.Header(ctx); !errors.Is(err, domain.ErrDataNotFound) {
		t.Errorf("header: expected ErrDataNotFound, got %v", err)
	}
	if _, err := svc.Metadata(ctx); !errors.Is(err, domain.ErrDataNotFound) {
		t.Errorf("metadata: expected ErrDataNotFound, got %v", err)
	}
	if _, err := svc.Comments(ctx); !errors.Is(err, domain.ErrDataNotFound) {
		t.Errorf("comments: expected ErrDataNotFound, got %v", err)
	}
}
