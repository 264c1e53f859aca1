package geospatial

import "math"

const (
	// MeanEarthRadiusKm is the mean Earth radius used for altitude.
	MeanEarthRadiusKm = 6371.0

	// LongitudeOffsetDeg is an empirical correction added to the
	// rotation-adjusted longitude. Its origin is undocumented.
	LongitudeOffsetDeg = 32.0

	// earthRotationDegPerHour is 360 degrees over 24 hours.
	earthRotationDegPerHour = 360.0 / 24.0
)

// Norm returns the Euclidean length of (x, y, z).
func Norm(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}

// Latitude returns the geocentric latitude in degrees of an ECI position.
func Latitude(x, y, z float64) float64 {
	return toDeg(math.Atan2(z, math.Sqrt(x*x+y*y)))
}

// Longitude returns the longitude in degrees of an ECI position sampled at
// hour:minute UTC, corrected for Earth's rotation relative to noon.
func Longitude(x, y float64, hour, minute int) float64 {
	rotation := (float64(hour-12) + float64(minute)/60) * earthRotationDegPerHour
	return toDeg(math.Atan2(y, x)) - rotation + LongitudeOffsetDeg
}

// Altitude returns the height in km above the mean Earth radius.
func Altitude(x, y, z float64) float64 {
	return Norm(x, y, z) - MeanEarthRadiusKm
}

// Wrap maps an angle in degrees into [-180, 180].
func Wrap(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg < -180 {
		deg += 360
	}
	return deg
}

// SubPoint converts an ECI position at hour:minute into wrapped latitude,
// wrapped longitude and altitude.
func SubPoint(x, y, z float64, hour, minute int) (lat, lon, alt float64) {
	lat = Wrap(Latitude(x, y, z))
	lon = Wrap(Longitude(x, y, hour, minute))
	alt = Altitude(x, y, z)
	return lat, lon, alt
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
