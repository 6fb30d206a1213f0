// Package fault models fault planes and faults of the seismic hazard model.
//
// A fault is one or more quadrilateral planes. Each plane is described by
// its four corners in geographic coordinates with depths in kilometres;
// helpers derive the usual source parameters (length, width, strike, dip,
// dip direction) from the corner geometry.
package fault

import "math"

// Point is a geographic position with a depth below the surface in
// kilometres.
type Point struct {
	Lat   float64
	Lon   float64
	Depth float64
}

// Plane is a single quadrilateral plane of a fault. Corners are stored in
// the order top-left, top-right, bottom-right, bottom-left, where the top
// edge is the shallow edge along strike.
type Plane struct {
	Corners [4]Point
}

// NewPlane builds a plane directly from its four corners.
func NewPlane(corners [4]Point) Plane {
	return Plane{Corners: corners}
}

// PlaneFromTrace builds a plane from one segment of a surface trace. The
// bottom edge is the top edge offset along the dip direction bearing by the
// width the plane projects onto the surface; a vertical plane (dip = 90)
// has its bottom edge directly beneath the top edge.
func PlaneFromTrace(topLeft, topRight Point, topDepth, bottomDepth, dip, dipDir float64) Plane {
	projected := 0.0
	if dip != 90 {
		projected = (bottomDepth - topDepth) / math.Tan(radians(dip))
	}

	brLat, brLon := topRight.Lat, topRight.Lon
	blLat, blLon := topLeft.Lat, topLeft.Lon
	if projected != 0 {
		brLat, brLon = destination(topRight.Lat, topRight.Lon, dipDir, projected)
		blLat, blLon = destination(topLeft.Lat, topLeft.Lon, dipDir, projected)
	}

	return Plane{Corners: [4]Point{
		{Lat: topLeft.Lat, Lon: topLeft.Lon, Depth: topDepth},
		{Lat: topRight.Lat, Lon: topRight.Lon, Depth: topDepth},
		{Lat: brLat, Lon: brLon, Depth: bottomDepth},
		{Lat: blLat, Lon: blLon, Depth: bottomDepth},
	}}
}

// TopDepth returns the depth of the shallow edge in kilometres.
func (p Plane) TopDepth() float64 {
	return p.Corners[0].Depth
}

// BottomDepth returns the depth of the deep edge in kilometres.
func (p Plane) BottomDepth() float64 {
	return p.Corners[3].Depth
}

// Length returns the along-strike length of the plane in kilometres.
func (p Plane) Length() float64 {
	return distanceKm(p.Corners[0].Lat, p.Corners[0].Lon, p.Corners[1].Lat, p.Corners[1].Lon)
}

// ProjectedWidth returns the width the plane projects onto the surface in
// kilometres. Zero for a vertical plane.
func (p Plane) ProjectedWidth() float64 {
	return distanceKm(p.Corners[0].Lat, p.Corners[0].Lon, p.Corners[3].Lat, p.Corners[3].Lon)
}

// Width returns the down-dip width of the plane in kilometres.
func (p Plane) Width() float64 {
	return math.Hypot(p.ProjectedWidth(), p.BottomDepth()-p.TopDepth())
}

// Strike returns the bearing of the top edge in degrees from north.
func (p Plane) Strike() float64 {
	return initialBearing(p.Corners[0].Lat, p.Corners[0].Lon, p.Corners[1].Lat, p.Corners[1].Lon)
}

// DipDir returns the bearing of the dip direction in degrees from north.
// Undefined (zero) for a vertical plane, whose bottom edge lies directly
// beneath the top edge.
func (p Plane) DipDir() float64 {
	if p.ProjectedWidth() == 0 {
		return 0
	}
	return initialBearing(p.Corners[0].Lat, p.Corners[0].Lon, p.Corners[3].Lat, p.Corners[3].Lon)
}

// Dip returns the dip angle of the plane in degrees.
func (p Plane) Dip() float64 {
	projected := p.ProjectedWidth()
	depthExtent := p.BottomDepth() - p.TopDepth()
	if projected == 0 {
		return 90
	}
	return degrees(math.Atan2(depthExtent, projected))
}
