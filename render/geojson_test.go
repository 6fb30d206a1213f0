package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/seistech/nshmdb/fault"
	"github.com/seistech/nshmdb/render"
)

func testFaults() map[string]fault.Fault {
	alpine := fault.NewFault([]fault.Plane{
		fault.PlaneFromTrace(
			fault.Point{Lat: -43.0, Lon: 170.0},
			fault.Point{Lat: -43.2, Lon: 170.2},
			0, 12, 90, 0,
		),
	})
	wairau := fault.NewFault([]fault.Plane{
		fault.PlaneFromTrace(
			fault.Point{Lat: -41.5, Lon: 174.0},
			fault.Point{Lat: -41.4, Lon: 174.2},
			0, 20, 60, 150,
		),
	})
	return map[string]fault.Fault{"Alpine Fault": alpine, "Wairau": wairau}
}

func TestRuptureCollection(t *testing.T) {
	collection := render.RuptureCollection(testFaults())

	require.Len(t, collection.Features, 2)
	// Name order is deterministic.
	assert.Equal(t, "Alpine Fault", collection.Features[0].Properties["name"])
	assert.Equal(t, "Wairau", collection.Features[1].Properties["name"])

	// Rings are closed.
	for _, feature := range collection.Features {
		ring := feature.Geometry.Coordinates[0]
		require.Len(t, ring, 5)
		assert.Equal(t, ring[0], ring[4])
	}

	// The padded region covers both faults.
	assert.LessOrEqual(t, collection.BBox[0], 170.0-0.5)
	assert.LessOrEqual(t, collection.BBox[1], -43.2-0.25)
	assert.GreaterOrEqual(t, collection.BBox[2], 174.2+0.5)
	assert.GreaterOrEqual(t, collection.BBox[3], -41.4+0.25)
}

func TestRuptureCollectionEmpty(t *testing.T) {
	collection := render.RuptureCollection(nil)

	assert.Equal(t, "FeatureCollection", collection.Type)
	assert.Empty(t, collection.Features)
	// No faults, no region to pad.
	assert.Equal(t, [4]float64{}, collection.BBox)
}

func TestWriteRupture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rupture.geojson")
	require.NoError(t, render.WriteRupture(path, testFaults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	parsed := gjson.ParseBytes(data)
	assert.Equal(t, "FeatureCollection", parsed.Get("type").String())
	assert.Equal(t, int64(2), parsed.Get("features.#").Int())
	assert.Equal(t, "Polygon", parsed.Get("features.0.geometry.type").String())
}
