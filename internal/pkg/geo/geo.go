package geo

import (
	"math"

	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/validator"
)

// Coordinate is a point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) Validate() error {
	var errs validator.ValidationErrors

	if c.Latitude < -90 || c.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HaversineDistanceMeters returns the great-circle distance between two
// coordinates in meters.
func HaversineDistanceMeters(a, b Coordinate) float64 {
	const earthRadiusMeters = 6371000

	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Fence is a circular tolerance zone around a site.
type Fence struct {
	ID           string
	Center       Coordinate
	RadiusMeters int
}

// Match is a fence that contains the reported point.
type Match struct {
	Fence          Fence
	DistanceMeters float64
}

// Resolve picks the fence containing point with the smallest distance.
// Distances are compared inclusively at the radius boundary; ties keep the
// first fence encountered, so iteration order is deterministic.
//
// The second return value is the nearest distance seen across all fences,
// for diagnostics when nothing matched. It is +Inf when fences is empty.
func Resolve(point Coordinate, fences []Fence) (*Match, float64) {
	var match *Match
	nearest := math.Inf(1)

	for _, f := range fences {
		d := HaversineDistanceMeters(point, f.Center)
		if d < nearest {
			nearest = d
		}
		if d > float64(f.RadiusMeters) {
			continue
		}
		if match == nil || d < match.DistanceMeters {
			match = &Match{Fence: f, DistanceMeters: d}
		}
	}

	return match, nearest
}
