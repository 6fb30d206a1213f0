package fault

// Fault is an ordered collection of planes making up one fault section.
type Fault struct {
	Planes []Plane
}

// NewFault builds a fault from its planes.
func NewFault(planes []Plane) Fault {
	return Fault{Planes: planes}
}

// Corners returns the corners of all planes, flattened in plane order.
func (f Fault) Corners() []Point {
	corners := make([]Point, 0, 4*len(f.Planes))
	for _, plane := range f.Planes {
		corners = append(corners, plane.Corners[:]...)
	}
	return corners
}

// Length returns the total along-strike length of the fault in kilometres.
func (f Fault) Length() float64 {
	total := 0.0
	for _, plane := range f.Planes {
		total += plane.Length()
	}
	return total
}

// Width returns the down-dip width of the fault in kilometres, taken from
// the widest plane.
func (f Fault) Width() float64 {
	widest := 0.0
	for _, plane := range f.Planes {
		if w := plane.Width(); w > widest {
			widest = w
		}
	}
	return widest
}

// Bounds returns the geographic bounding box of the fault as
// (minLat, minLon, maxLat, maxLon).
func (f Fault) Bounds() (minLat, minLon, maxLat, maxLon float64) {
	corners := f.Corners()
	if len(corners) == 0 {
		return 0, 0, 0, 0
	}
	minLat, minLon = corners[0].Lat, corners[0].Lon
	maxLat, maxLon = corners[0].Lat, corners[0].Lon
	for _, c := range corners[1:] {
		minLat = min(minLat, c.Lat)
		minLon = min(minLon, c.Lon)
		maxLat = max(maxLat, c.Lat)
		maxLon = max(maxLon, c.Lon)
	}
	return minLat, minLon, maxLat, maxLon
}
