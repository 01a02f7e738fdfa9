package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineDistanceMeters_ZeroForIdenticalPoints(t *testing.T) {
	t.Parallel()
	points := []Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 19.4326, Longitude: -99.1332},
		{Latitude: -33.8688, Longitude: 151.2093},
	}
	for _, p := range points {
		assert.Zero(t, HaversineDistanceMeters(p, p))
	}
}

func TestHaversineDistanceMeters_Symmetric(t *testing.T) {
	t.Parallel()
	a := Coordinate{Latitude: 19.4326, Longitude: -99.1332}
	b := Coordinate{Latitude: 19.4340, Longitude: -99.1400}
	assert.InDelta(t, HaversineDistanceMeters(a, b), HaversineDistanceMeters(b, a), 1e-9)
}

func TestHaversineDistanceMeters_KnownDistance(t *testing.T) {
	t.Parallel()
	// Mexico City Zocalo to Angel de la Independencia, roughly 4.2 km.
	zocalo := Coordinate{Latitude: 19.4326, Longitude: -99.1332}
	angel := Coordinate{Latitude: 19.4270, Longitude: -99.1677}
	d := HaversineDistanceMeters(zocalo, angel)
	assert.Greater(t, d, 3500.0)
	assert.Less(t, d, 4500.0)
}

func TestCoordinate_Validate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Coordinate{Latitude: 90, Longitude: -180}.Validate())
	assert.NoError(t, Coordinate{Latitude: -90, Longitude: 180}.Validate())
	assert.Error(t, Coordinate{Latitude: 90.0001, Longitude: 0}.Validate())
	assert.Error(t, Coordinate{Latitude: 0, Longitude: -180.5}.Validate())
}

func TestResolve_MatchWithinRadius(t *testing.T) {
	t.Parallel()
	branchCenter := Coordinate{Latitude: 19.4326, Longitude: -99.1332}
	// ~50m north of center
	point := Coordinate{Latitude: 19.43305, Longitude: -99.1332}

	match, nearest := Resolve(point, []Fence{
		{ID: "branch-1", Center: branchCenter, RadiusMeters: 100},
	})

	require.NotNil(t, match)
	assert.Equal(t, "branch-1", match.Fence.ID)
	assert.LessOrEqual(t, match.DistanceMeters, 100.0)
	assert.Equal(t, match.DistanceMeters, nearest)
}

func TestResolve_NoMatchReportsNearestDistance(t *testing.T) {
	t.Parallel()
	point := Coordinate{Latitude: 19.4326, Longitude: -99.1332}
	far := Coordinate{Latitude: 19.4270, Longitude: -99.1677}

	match, nearest := Resolve(point, []Fence{
		{ID: "far-branch", Center: far, RadiusMeters: 100},
	})

	assert.Nil(t, match)
	assert.Greater(t, nearest, 100.0)
	assert.False(t, math.IsInf(nearest, 1))
}

func TestResolve_EmptyFences(t *testing.T) {
	t.Parallel()
	match, nearest := Resolve(Coordinate{}, nil)
	assert.Nil(t, match)
	assert.True(t, math.IsInf(nearest, 1))
}

func TestResolve_PicksClosestAmongMatches(t *testing.T) {
	t.Parallel()
	point := Coordinate{Latitude: 19.4326, Longitude: -99.1332}
	near := Coordinate{Latitude: 19.43265, Longitude: -99.1332}  // a few meters
	further := Coordinate{Latitude: 19.4331, Longitude: -99.1332} // ~55m

	match, _ := Resolve(point, []Fence{
		{ID: "further", Center: further, RadiusMeters: 200},
		{ID: "near", Center: near, RadiusMeters: 200},
	})

	require.NotNil(t, match)
	assert.Equal(t, "near", match.Fence.ID)
}

func TestResolve_TieKeepsFirstEncountered(t *testing.T) {
	t.Parallel()
	point := Coordinate{Latitude: 19.4326, Longitude: -99.1332}
	center := Coordinate{Latitude: 19.4326, Longitude: -99.1332}

	match, _ := Resolve(point, []Fence{
		{ID: "first", Center: center, RadiusMeters: 50},
		{ID: "second", Center: center, RadiusMeters: 50},
	})

	require.NotNil(t, match)
	assert.Equal(t, "first", match.Fence.ID)
}

func TestResolve_NeverMatchesBeyondOwnRadius(t *testing.T) {
	t.Parallel()
	point := Coordinate{Latitude: 19.4326, Longitude: -99.1332}
	// ~120m away; matched only by the fence whose radius covers it.
	center := Coordinate{Latitude: 19.43368, Longitude: -99.1332}

	match, _ := Resolve(point, []Fence{
		{ID: "tight", Center: center, RadiusMeters: 100},
		{ID: "wide", Center: center, RadiusMeters: 200},
	})

	require.NotNil(t, match)
	assert.Equal(t, "wide", match.Fence.ID)
	assert.LessOrEqual(t, match.DistanceMeters, float64(match.Fence.RadiusMeters))
}
