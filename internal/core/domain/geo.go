package domain

import "encoding/json"

// OverTheOcean is reported when reverse geocoding finds nothing at any zoom.
const OverTheOcean = "over the ocean"

// Speed is the magnitude of a state vector's velocity.
type Speed struct {
	Speed float64 `json:"speed"`
	Units string  `json:"units"`
}

// Geoposition is the outcome of reverse geocoding a sub-satellite point.
type Geoposition struct {
	Found   bool
	Zoom    int
	Address map[string]string
}

// Label is a short human-readable description of the geoposition.
func (g Geoposition) Label() string {
	if !g.Found {
		return OverTheOcean
	}
	for _, key := range []string{"country", "state", "county", "city"} {
		if v, ok := g.Address[key]; ok && v != "" {
			return v
		}
	}
	return ""
}

// MarshalJSON renders the address when found and the ocean label otherwise.
func (g Geoposition) MarshalJSON() ([]byte, error) {
	if !g.Found {
		return json.Marshal(OverTheOcean)
	}
	return json.Marshal(g.Address)
}

// Location is the geodetic position of the ISS at one epoch.
type Location struct {
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Altitude    float64     `json:"altitude"`
	Geoposition Geoposition `json:"geoposition"`
}

// LocationReport bundles a location with the instantaneous speed.
type LocationReport struct {
	Epoch    string   `json:"epoch"`
	Location Location `json:"location"`
	Speed    Speed    `json:"speed"`
}
