package branch

import (
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/geo"
)

type BranchStatus string

const (
	StatusActive   BranchStatus = "active"
	StatusInactive BranchStatus = "inactive"
)

var BranchStatusValues = []string{
	string(StatusActive),
	string(StatusInactive),
}

// Branch is a physical site with a circular geofence and local business hours.
// OpensAt and ClosesAt carry wall-clock times only (hour/minute/second); the
// calendar date portion is meaningless and always combined with a real date in
// the branch timezone before use.
type Branch struct {
	ID                   string
	BusinessID           string
	Name                 string
	Address              *string
	Latitude             float64
	Longitude            float64
	RadiusMeters         int
	Timezone             string // IANA name, e.g. "America/Mexico_City"
	OpensAt              time.Time
	ClosesAt             time.Time
	LateToleranceMinutes int
	Status               BranchStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

// Coordinate returns the registered geofence center.
func (b Branch) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: b.Latitude, Longitude: b.Longitude}
}

// Fence returns the branch as a geofence candidate.
func (b Branch) Fence() geo.Fence {
	return geo.Fence{
		ID:           b.ID,
		Center:       b.Coordinate(),
		RadiusMeters: b.RadiusMeters,
	}
}

// Location loads the branch timezone, falling back to UTC when the stored
// name cannot be resolved.
func (b Branch) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
