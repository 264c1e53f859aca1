package geospatial

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAltitude_PointOnXAxis(t *testing.T) {
	if got := Altitude(100, 0, 0); !almostEqual(got, -6271) {
		t.Errorf("expected -6271, got %f", got)
	}
}

func TestLatitude(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float64
		want    float64
	}{
		{"equator", 7000, 0, 0, 0},
		{"north pole", 0, 0, 7000, 90},
		{"south pole", 0, 0, -7000, -90},
		{"45 north", 1000, 0, 1000, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Latitude(tt.x, tt.y, tt.z); !almostEqual(got, tt.want) {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestLongitude_NoonAppliesOnlyOffset(t *testing.T) {
	if got := Longitude(7000, 0, 12, 0); !almostEqual(got, LongitudeOffsetDeg) {
		t.Errorf("expected %f, got %f", LongitudeOffsetDeg, got)
	}
	// 90 degrees of right ascension, 13:30 => 22.5 degrees of rotation.
	if got := Longitude(0, 7000, 13, 30); !almostEqual(got, 90-22.5+LongitudeOffsetDeg) {
		t.Errorf("unexpected longitude %f", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{181, -179},
		{392, 32},
		{-327.75, 32.25},
		{725, 5},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("Wrap(%f): expected %f, got %f", tt.in, tt.want, got)
		}
	}
}

func TestSubPoint_AlwaysInRange(t *testing.T) {
	positions := [][3]float64{
		{-5097.5, 1202.9, 4205.6},
		{6800, -10, -3},
		{-1, -6790, 0.5},
		{100, 0, 0},
	}
	for _, p := range positions {
		for hour := 0; hour < 24; hour++ {
			for _, minute := range []int{0, 15, 59} {
				lat, lon, _ := SubPoint(p[0], p[1], p[2], hour, minute)
				if lat < -180 || lat > 180 {
					t.Fatalf("latitude %f out of range", lat)
				}
				if lon < -180 || lon > 180 {
					t.Fatalf("longitude %f out of range for %v at %02d:%02d", lon, p, hour, minute)
				}
			}
		}
	}
}

func TestNorm(t *testing.T) {
	if got := Norm(3, 4, 12); !almostEqual(got, 13) {
		t.Errorf("expected 13, got %f", got)
	}
	if got := Norm(0, 0, 0); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}
