package domain

import (
	"fmt"
	"time"
)

// Dataset is a parsed Orbit Ephemeris Message (OEM) document.
type Dataset struct {
	ID           string        `json:"id,omitempty"`
	Version      string        `json:"version,omitempty"`
	Header       Header        `json:"header"`
	Metadata     Metadata      `json:"metadata"`
	Comments     []string      `json:"comments"`
	StateVectors []StateVector `json:"state_vectors"`
}

// Header is the OEM header block.
type Header struct {
	CreationDate string `json:"creation_date"`
	Originator   string `json:"originator"`
}

// Metadata describes the object and reference frame of a segment.
type Metadata struct {
	ObjectName       string `json:"object_name"`
	ObjectID         string `json:"object_id"`
	CenterName       string `json:"center_name"`
	RefFrame         string `json:"ref_frame"`
	TimeSystem       string `json:"time_system"`
	StartTime        string `json:"start_time"`
	UseableStartTime string `json:"useable_start_time,omitempty"`
	UseableStopTime  string `json:"useable_stop_time,omitempty"`
	StopTime         string `json:"stop_time"`
}

// Quantity is a numeric value with the units it was published in.
type Quantity struct {
	Value float64 `json:"value"`
	Units string  `json:"units,omitempty"`
}

// StateVector is the ISS position (km) and velocity (km/s) at one epoch.
type StateVector struct {
	Epoch string   `json:"epoch"`
	X     Quantity `json:"x"`
	Y     Quantity `json:"y"`
	Z     Quantity `json:"z"`
	XDot  Quantity `json:"x_dot"`
	YDot  Quantity `json:"y_dot"`
	ZDot  Quantity `json:"z_dot"`
}

// Epochs returns the epoch of every state vector, in document order.
func (d *Dataset) Epochs() []string {
	epochs := make([]string, 0, len(d.StateVectors))
	for _, sv := range d.StateVectors {
		epochs = append(epochs, sv.Epoch)
	}
	return epochs
}

// Find returns the state vector whose epoch matches exactly.
func (d *Dataset) Find(epoch string) (StateVector, bool) {
	for _, sv := range d.StateVectors {
		if sv.Epoch == epoch {
			return sv, true
		}
	}
	return StateVector{}, false
}

// Last returns the most recent state vector in the document.
func (d *Dataset) Last() (StateVector, bool) {
	if len(d.StateVectors) == 0 {
		return StateVector{}, false
	}
	return d.StateVectors[len(d.StateVectors)-1], true
}

// Clock extracts the hour and minute of an OEM epoch such as
// "2023-048T12:04:00.000Z". The clock part sits between the day-of-year
// separator and the trailing ".sssZ".
func Clock(epoch string) (hour, minute int, err error) {
	if len(epoch) < 9+8+5 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidEpoch, epoch)
	}
	t, err := time.Parse("15:04:05", epoch[9:len(epoch)-5])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidEpoch, epoch)
	}
	return t.Hour(), t.Minute(), nil
}

// Dataset event types.
const (
	EventDatasetLoaded  = "loaded"
	EventDatasetCleared = "cleared"
)

// DatasetEvent is published whenever the held dataset changes.
type DatasetEvent struct {
	Type       string    `json:"type"`
	Epochs     int       `json:"epochs"`
	ObjectName string    `json:"object_name,omitempty"`
	StartTime  string    `json:"start_time,omitempty"`
	StopTime   string    `json:"stop_time,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
