package entity

import (
	"math"
	"time"

	"github.com/paulmach/orb"
)

// LocationPing is a single position report from a field agent. Pings are
// relayed to administrators and never persisted.
type LocationPing struct {
	UserID    string           `json:"userId"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Timestamp time.Time        `json:"timestamp"`
	UserInfo  *ActivityContext `json:"userInfo,omitempty"` // Context looked up at relay time.
}

// Point returns the ping position in orb's (lon, lat) order.
func (p LocationPing) Point() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// ValidCoordinates reports whether lat/lng are finite and within WGS84 bounds.
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}

	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// NewerThan reports whether p should replace other in a per-user view.
// Equal timestamps favour the later arrival.
func (p LocationPing) NewerThan(other LocationPing) bool {
	return !p.Timestamp.Before(other.Timestamp)
}
