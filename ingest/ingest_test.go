package ingest_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seistech/nshmdb/ingest"
	"github.com/seistech/nshmdb/nshmdb"
	"github.com/seistech/nshmdb/query"
)

const faultSectionsJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {
        "FaultID": 0,
        "FaultName": "Alpine: Jacksons to Kaniere",
        "ParentID": 1,
        "ParentName": "Alpine Fault",
        "Rake": 180,
        "DipDeg": 90,
        "DipDir": 0,
        "LowDepth": 12
      },
      "geometry": {
        "type": "LineString",
        "coordinates": [[170.0, -43.0], [170.0, -43.0], [170.1, -43.1]]
      }
    },
    {
      "type": "Feature",
      "properties": {
        "FaultID": 1,
        "FaultName": "Wairau 1",
        "ParentID": 2,
        "ParentName": "Wairau",
        "Rake": -170,
        "DipDeg": 60,
        "DipDir": 150,
        "LowDepth": 20
      },
      "geometry": {
        "type": "LineString",
        "coordinates": [[174.0, -41.5], [174.2, -41.4]]
      }
    }
  ]
}`

var fixtureFiles = map[string]string{
	"ruptures/fault_sections.geojson": faultSectionsJSON,
	"ruptures/properties.csv": "Rupture Index,Magnitude,Area (m^2),Length (m)\n" +
		"0,7.2,1.5e9,80000\n" +
		"1,6.5,6.0e8,30000\n",
	"aggregate_rates.csv": "Rupture Index,rate_weighted_mean\n" +
		"0,1e-6\n",
	"ruptures/fast_indices.csv": "rupture,section\n" +
		"0,0\n" +
		"0,1\n" +
		"1,0\n" +
		"1,\n",
	"ruptures/sub_seismo_on_fault_mfds.csv": "Section Index,6.5,7.0\n" +
		"0,0.001,0.002\n" +
		"1,0.0,0.005\n",
}

func writeFixtureZip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cru_solutions.zip")

	out, err := os.Create(path)
	require.NoError(t, err)
	writer := zip.NewWriter(out)
	for name, contents := range fixtureFiles {
		file, err := writer.Create(name)
		require.NoError(t, err)
		_, err = file.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, out.Close())
	return path
}

func newIngestedDB(t *testing.T, opts ingest.Options) *nshmdb.DB {
	t.Helper()
	ctx := context.Background()

	db, err := nshmdb.Open(filepath.Join(t.TempDir(), "nshm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Create(ctx))
	require.NoError(t, ingest.Run(ctx, db, writeFixtureZip(t), opts))
	return db
}

func TestRunIngestsFaults(t *testing.T) {
	db := newIngestedDB(t, ingest.Options{})
	ctx := context.Background()

	names, err := db.FaultNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"Alpine Fault": {}, "Wairau": {}}, names)

	// The repeated trace point collapses, leaving a single plane.
	alpine, err := db.Fault(ctx, 0)
	require.NoError(t, err)
	require.Len(t, alpine.Planes, 1)
	assert.InDelta(t, 12, alpine.Planes[0].BottomDepth(), 1e-9)
	assert.InDelta(t, 90, alpine.Planes[0].Dip(), 1e-9)

	wairau, err := db.Fault(ctx, 1)
	require.NoError(t, err)
	require.Len(t, wairau.Planes, 1)
	assert.InDelta(t, 60, wairau.Planes[0].Dip(), 1)

	info, err := db.FaultInfo(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Alpine: Jacksons to Kaniere", info.Name)
	assert.Equal(t, int64(1), info.ParentID)
	assert.InDelta(t, 180, info.Rake, 1e-9)
}

func TestRunIngestsRuptures(t *testing.T) {
	db := newIngestedDB(t, ingest.Options{})
	ctx := context.Background()

	rupture, err := db.Rupture(ctx, 0)
	require.NoError(t, err)
	assert.InDelta(t, 7.2, rupture.Magnitude, 1e-9)
	assert.InDelta(t, 1.5e9, rupture.Area, 1)
	require.NotNil(t, rupture.Rate)
	assert.InDelta(t, 1e-6, *rupture.Rate, 1e-12)
	assert.Len(t, rupture.Faults, 2)

	// Rupture 1 has no aggregate rate row.
	rupture, err = db.Rupture(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, rupture.Rate)
}

func TestRunThenQuery(t *testing.T) {
	db := newIngestedDB(t, ingest.Options{})

	ruptures, err := db.Query(context.Background(), "Alpine Fault & Wairau", query.Bounds{})
	require.NoError(t, err)
	require.Len(t, ruptures, 1)
	assert.Contains(t, ruptures, int64(0))
}

func TestRunIngestsMFDs(t *testing.T) {
	db := newIngestedDB(t, ingest.Options{})

	rates, err := db.MostLikelyFault(context.Background(), 0, map[string]float64{
		"Alpine Fault": 6.4,
		"Wairau":       7.3,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.001, rates["Alpine Fault"], 1e-12)
	// The zero-rate 6.5 sample for section 1 is dropped during melt.
	assert.InDelta(t, 0.005, rates["Wairau"], 1e-12)
}

func TestRunSkipStages(t *testing.T) {
	db := newIngestedDB(t, ingest.Options{SkipRuptures: true, SkipMFDs: true})
	ctx := context.Background()

	names, err := db.FaultNames(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 2)

	ruptures, err := db.Query(ctx, "Alpine Fault", query.Bounds{})
	require.NoError(t, err)
	assert.Empty(t, ruptures)
}
