package fault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seistech/nshmdb/fault"
)

func TestPlaneFromTraceVertical(t *testing.T) {
	plane := fault.PlaneFromTrace(
		fault.Point{Lat: -43.0, Lon: 171.0},
		fault.Point{Lat: -43.1, Lon: 171.0},
		0, 12, 90, 90,
	)

	// A vertical plane's bottom edge sits directly beneath the top edge.
	assert.InDelta(t, -43.0, plane.Corners[3].Lat, 1e-9)
	assert.InDelta(t, 171.0, plane.Corners[3].Lon, 1e-9)
	assert.InDelta(t, 90, plane.Dip(), 1e-9)
	assert.InDelta(t, 12, plane.Width(), 1e-9)
	assert.InDelta(t, 0, plane.ProjectedWidth(), 1e-9)
}

func TestPlaneFromTraceDipping(t *testing.T) {
	plane := fault.PlaneFromTrace(
		fault.Point{Lat: -42.0, Lon: 172.0},
		fault.Point{Lat: -42.0, Lon: 172.2},
		0, 10, 45, 180,
	)

	// 45 degree dip from 0 to 10 km depth projects 10 km onto the surface.
	assert.InDelta(t, 10, plane.ProjectedWidth(), 0.05)
	assert.InDelta(t, 45, plane.Dip(), 0.5)
	assert.InDelta(t, 180, plane.DipDir(), 0.5)
	assert.InDelta(t, 14.14, plane.Width(), 0.1)
	assert.Greater(t, plane.Corners[0].Lat, plane.Corners[3].Lat)
}

func TestPlaneStrikeAndLength(t *testing.T) {
	plane := fault.PlaneFromTrace(
		fault.Point{Lat: -41.0, Lon: 174.0},
		fault.Point{Lat: -41.0, Lon: 174.5},
		0, 20, 60, 0,
	)

	// Due east along the top edge.
	assert.InDelta(t, 90, plane.Strike(), 1)
	assert.InDelta(t, 42.0, plane.Length(), 0.5)
}

func TestFaultAggregates(t *testing.T) {
	p1 := fault.PlaneFromTrace(
		fault.Point{Lat: -43.0, Lon: 170.0},
		fault.Point{Lat: -43.0, Lon: 170.2},
		0, 10, 90, 0,
	)
	p2 := fault.PlaneFromTrace(
		fault.Point{Lat: -43.0, Lon: 170.2},
		fault.Point{Lat: -43.0, Lon: 170.4},
		0, 15, 90, 0,
	)
	f := fault.NewFault([]fault.Plane{p1, p2})

	require.Len(t, f.Corners(), 8)
	assert.InDelta(t, p1.Length()+p2.Length(), f.Length(), 1e-9)
	assert.InDelta(t, 15, f.Width(), 1e-9)

	minLat, minLon, maxLat, maxLon := f.Bounds()
	assert.InDelta(t, -43.0, minLat, 1e-9)
	assert.InDelta(t, -43.0, maxLat, 1e-9)
	assert.InDelta(t, 170.0, minLon, 1e-9)
	assert.InDelta(t, 170.4, maxLon, 1e-9)
}
