package ingest

import (
	"archive/zip"
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/seistech/nshmdb/fault"
	"github.com/seistech/nshmdb/internal/debug"
	"github.com/seistech/nshmdb/nshmdb"
)

// faultSection is one fault section feature from the geojson fault
// information file.
type faultSection struct {
	FaultID    int64
	FaultName  string
	ParentID   int64
	ParentName string
	Rake       float64
	Dip        float64
	DipDir     float64
	LowDepth   float64
	Trace      []fault.Point
}

// parseFaultSections extracts the fault sections from the geojson fault
// information file. Repeated consecutive trace points are dropped; the trace
// alteration is logged because it changes the plane count.
func parseFaultSections(data []byte) ([]faultSection, error) {
	features := gjson.GetBytes(data, "features")
	if !features.Exists() {
		return nil, fmt.Errorf("fault information file has no features")
	}

	var sections []faultSection
	for _, feature := range features.Array() {
		props := feature.Get("properties")
		section := faultSection{
			FaultID:    props.Get("FaultID").Int(),
			FaultName:  props.Get("FaultName").String(),
			ParentID:   props.Get("ParentID").Int(),
			ParentName: props.Get("ParentName").String(),
			Rake:       props.Get("Rake").Float(),
			Dip:        props.Get("DipDeg").Float(),
			DipDir:     props.Get("DipDir").Float(),
			LowDepth:   props.Get("LowDepth").Float(),
		}

		dropped := 0
		for _, coord := range feature.Get("geometry.coordinates").Array() {
			pair := coord.Array()
			if len(pair) < 2 {
				return nil, fmt.Errorf("fault %s: malformed trace coordinate", section.FaultName)
			}
			// GeoJSON order is (lon, lat).
			point := fault.Point{Lat: pair[1].Float(), Lon: pair[0].Float()}
			if n := len(section.Trace); n > 0 && section.Trace[n-1].Lat == point.Lat && section.Trace[n-1].Lon == point.Lon {
				dropped++
				continue
			}
			section.Trace = append(section.Trace, point)
		}
		if dropped > 0 {
			debug.Warn("fault trace altered: repeated points removed",
				"fault", section.FaultName, "dropped", dropped)
		}
		if len(section.Trace) < 2 {
			return nil, fmt.Errorf("fault %s: trace has fewer than two points", section.FaultName)
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// planes builds one fault plane per trace segment, dipping from the surface
// down to the section's low depth.
func (s faultSection) planes() []fault.Plane {
	dipDir := s.DipDir
	if s.Dip == 90 {
		// Dip direction is meaningless for a vertical section.
		dipDir = 0
	}
	planes := make([]fault.Plane, 0, len(s.Trace)-1)
	for i := 0; i < len(s.Trace)-1; i++ {
		planes = append(planes, fault.PlaneFromTrace(s.Trace[i], s.Trace[i+1], 0, s.LowDepth, s.Dip, dipDir))
	}
	return planes
}

func ingestFaults(ctx context.Context, db *nshmdb.DB, archive *zip.Reader) error {
	data, err := readArchiveFile(archive, faultSectionsPath)
	if err != nil {
		return err
	}
	sections, err := parseFaultSections(data)
	if err != nil {
		return err
	}
	debug.Info("ingesting fault sections", "count", len(sections))

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, section := range sections {
		if err := db.AddParentFault(ctx, tx, section.ParentID, section.ParentName); err != nil {
			return fmt.Errorf("fault %s: %w", section.FaultName, err)
		}
		info := nshmdb.FaultInfo{
			FaultID:  section.FaultID,
			Name:     section.FaultName,
			ParentID: section.ParentID,
			Rake:     section.Rake,
		}
		if err := db.AddFault(ctx, tx, info); err != nil {
			return fmt.Errorf("fault %s: %w", section.FaultName, err)
		}
		for _, plane := range section.planes() {
			corners := [4][2]float64{
				{plane.Corners[0].Lat, plane.Corners[0].Lon},
				{plane.Corners[1].Lat, plane.Corners[1].Lon},
				{plane.Corners[2].Lat, plane.Corners[2].Lon},
				{plane.Corners[3].Lat, plane.Corners[3].Lon},
			}
			if err := db.AddFaultPlane(ctx, tx, section.FaultID, corners, plane.TopDepth(), plane.BottomDepth()); err != nil {
				return fmt.Errorf("fault %s: %w", section.FaultName, err)
			}
		}
	}
	return tx.Commit()
}
