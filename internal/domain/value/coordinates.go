package value

import (
	"fmt"
	"math"
)

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) ||
		math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return Coordinates{}, fmt.Errorf("coordinates are not decimal degrees: %v, %v", latitude, longitude)
	}

	if latitude < -90 || latitude > 90 {
		return Coordinates{}, fmt.Errorf("latitude %v out of range [-90, 90]", latitude)
	}

	if longitude < -180 || longitude > 180 {
		return Coordinates{}, fmt.Errorf("longitude %v out of range [-180, 180]", longitude)
	}

	return Coordinates{Latitude: latitude, Longitude: longitude}, nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}
