package domain

import "errors"

var (
	// ErrDataNotFound is returned when no dataset has been loaded.
	ErrDataNotFound = errors.New("data not found")
	// ErrEpochNotFound is returned when no state vector matches an epoch.
	ErrEpochNotFound = errors.New("epoch not found")
	// ErrInvalidEpoch is returned when an epoch string has no readable clock.
	ErrInvalidEpoch = errors.New("invalid epoch")
	// ErrGeocoder wraps failures reported by the reverse-geocoding provider.
	ErrGeocoder = errors.New("geocoder returned an error")
)
