// Package render exports rupture fault geometry as GeoJSON for mapping
// tools. Each fault plane becomes one polygon feature carrying the parent
// fault name.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/seistech/nshmdb/fault"
)

// Geometry is a GeoJSON polygon.
type Geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// Feature is a GeoJSON feature wrapping one fault plane.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// FeatureCollection is a GeoJSON feature collection with a padded bounding
// box suitable as a map region.
type FeatureCollection struct {
	Type     string     `json:"type"`
	BBox     [4]float64 `json:"bbox"`
	Features []Feature  `json:"features"`
}

// Padding around the rupture's bounding box, in degrees.
const (
	lonPadding = 0.5
	latPadding = 0.25
)

// planeRing builds a closed (lon, lat) ring from the plane's corners.
func planeRing(plane fault.Plane) [][2]float64 {
	ring := make([][2]float64, 0, 5)
	for _, corner := range plane.Corners {
		ring = append(ring, [2]float64{corner.Lon, corner.Lat})
	}
	return append(ring, ring[0])
}

// RuptureCollection builds a feature collection for the faults of a
// rupture, keyed by parent fault name as returned by
// nshmdb.DB.RuptureFaults. Features are emitted in name order so output is
// deterministic.
func RuptureCollection(faults map[string]fault.Fault) FeatureCollection {
	names := make([]string, 0, len(faults))
	for name := range faults {
		names = append(names, name)
	}
	sort.Strings(names)

	collection := FeatureCollection{Type: "FeatureCollection"}
	if len(faults) == 0 {
		return collection
	}

	first := true
	for _, name := range names {
		f := faults[name]
		minLat, minLon, maxLat, maxLon := f.Bounds()
		if first {
			collection.BBox = [4]float64{minLon, minLat, maxLon, maxLat}
			first = false
		} else {
			collection.BBox[0] = min(collection.BBox[0], minLon)
			collection.BBox[1] = min(collection.BBox[1], minLat)
			collection.BBox[2] = max(collection.BBox[2], maxLon)
			collection.BBox[3] = max(collection.BBox[3], maxLat)
		}

		for i, plane := range f.Planes {
			collection.Features = append(collection.Features, Feature{
				Type: "Feature",
				Properties: map[string]any{
					"name":  name,
					"plane": i,
				},
				Geometry: Geometry{
					Type:        "Polygon",
					Coordinates: [][][2]float64{planeRing(plane)},
				},
			})
		}
	}

	collection.BBox[0] -= lonPadding
	collection.BBox[1] -= latPadding
	collection.BBox[2] += lonPadding
	collection.BBox[3] += latPadding
	return collection
}

// WriteRupture writes the faults of a rupture to path as indented GeoJSON.
func WriteRupture(path string, faults map[string]fault.Fault) error {
	collection := RuptureCollection(faults)
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rupture geojson: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write rupture geojson: %w", err)
	}
	return nil
}
