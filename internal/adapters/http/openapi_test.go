package http_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/samirrijal/isstracker/api"
)

func loadOpenAPI(t *testing.T) *openapi3.T {
	t.Helper()
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}
	return spec
}

// TestOpenAPISpec validates the embedded OpenAPI document.
func TestOpenAPISpec(t *testing.T) {
	spec := loadOpenAPI(t)

	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI spec validation failed: %v", err)
	}

	expectedPaths := []string{
		"/",
		"/epochs",
		"/epochs/{epoch}",
		"/epochs/{epoch}/speed",
		"/epochs/{epoch}/location",
		"/now",
		"/comment",
		"/header",
		"/metadata",
		"/help",
		"/post-data",
		"/delete-data",
		"/graphql",
		"/health",
		"/ready",
	}
	for _, path := range expectedPaths {
		if item := spec.Paths.Find(path); item == nil {
			t.Errorf("expected path %s not found in spec", path)
		}
	}

	expectedSchemas := []string{
		"APIError",
		"Dataset",
		"StateVector",
		"Speed",
		"Location",
		"LocationReport",
		"Geoposition",
	}
	for _, schema := range expectedSchemas {
		if spec.Components.Schemas[schema] == nil {
			t.Errorf("expected schema %s not found", schema)
		}
	}

	t.Logf("OpenAPI spec valid: %d paths, %d schemas", len(spec.Paths.Map()), len(spec.Components.Schemas))
}

// TestOpenAPIInfo verifies spec metadata.
func TestOpenAPIInfo(t *testing.T) {
	spec := loadOpenAPI(t)

	if spec.Info.Title != "ISS Tracker API" {
		t.Errorf("expected title 'ISS Tracker API', got %q", spec.Info.Title)
	}
	if spec.Info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", spec.Info.Version)
	}
	if spec.Info.Description == "" {
		t.Error("expected non-empty description")
	}
	if len(spec.Servers) == 0 {
		t.Fatal("expected at least one server")
	}
}

// TestOpenAPIResponses checks that lookups document the 400 envelope and
// that geocoded routes document the 500 case.
func TestOpenAPIResponses(t *testing.T) {
	spec := loadOpenAPI(t)

	for _, path := range []string{"/", "/epochs", "/epochs/{epoch}", "/epochs/{epoch}/speed", "/comment", "/header", "/metadata"} {
		op := spec.Paths.Find(path).Get
		if op == nil || op.Responses.Status(400) == nil {
			t.Errorf("%s: expected a documented 400 response", path)
		}
	}
	for _, path := range []string{"/epochs/{epoch}/location", "/now"} {
		op := spec.Paths.Find(path).Get
		if op == nil || op.Responses.Status(500) == nil {
			t.Errorf("%s: expected a documented 500 response", path)
		}
	}
}
