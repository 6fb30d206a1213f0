package nshmdb

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/seistech/nshmdb/fault"
	"github.com/seistech/nshmdb/internal/debug"
	"github.com/seistech/nshmdb/query"
)

// scanPlane converts one fault_plane row (minus plane_id and fault_id)
// into a Plane.
func scanPlane(corners [8]float64, topDepth, bottomDepth float64) fault.Plane {
	return fault.NewPlane([4]fault.Point{
		{Lat: corners[0], Lon: corners[1], Depth: topDepth},
		{Lat: corners[2], Lon: corners[3], Depth: topDepth},
		{Lat: corners[4], Lon: corners[5], Depth: bottomDepth},
		{Lat: corners[6], Lon: corners[7], Depth: bottomDepth},
	})
}

// Fault returns the geometry of a single fault section.
func (db *DB) Fault(ctx context.Context, faultID int64) (fault.Fault, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT top_left_lat, top_left_lon, top_right_lat, top_right_lon,
            bottom_right_lat, bottom_right_lon, bottom_left_lat, bottom_left_lon,
            top_depth, bottom_depth
        FROM fault_plane WHERE fault_id = ? ORDER BY plane_id`, faultID)
	if err != nil {
		return fault.Fault{}, fmt.Errorf("fault %d: %w", faultID, err)
	}
	defer rows.Close()

	var planes []fault.Plane
	for rows.Next() {
		var c [8]float64
		var top, bottom float64
		if err := rows.Scan(&c[0], &c[1], &c[2], &c[3], &c[4], &c[5], &c[6], &c[7], &top, &bottom); err != nil {
			return fault.Fault{}, err
		}
		planes = append(planes, scanPlane(c, top, bottom))
	}
	return fault.NewFault(planes), rows.Err()
}

// FaultInfo returns the metadata of a single fault section.
func (db *DB) FaultInfo(ctx context.Context, faultID int64) (FaultInfo, error) {
	var info FaultInfo
	var tectType sql.NullInt64
	err := db.conn.QueryRowContext(ctx,
		"SELECT fault_id, name, parent_id, rake, tect_type FROM fault WHERE fault_id = ?",
		faultID).Scan(&info.FaultID, &info.Name, &info.ParentID, &info.Rake, &tectType)
	if err != nil {
		return FaultInfo{}, fmt.Errorf("fault info %d: %w", faultID, err)
	}
	if tectType.Valid {
		info.TectType = &tectType.Int64
	}
	return info, nil
}

// Rupture returns a rupture with its fault geometry loaded.
func (db *DB) Rupture(ctx context.Context, ruptureID int64) (Rupture, error) {
	var rupture Rupture
	var rate sql.NullFloat64
	err := db.conn.QueryRowContext(ctx,
		"SELECT rupture_id, magnitude, area, len, rate FROM rupture WHERE rupture_id = ?",
		ruptureID).Scan(&rupture.ID, &rupture.Magnitude, &rupture.Area, &rupture.Length, &rate)
	if err != nil {
		return Rupture{}, fmt.Errorf("rupture %d: %w", ruptureID, err)
	}
	if rate.Valid {
		rupture.Rate = &rate.Float64
	}
	rupture.Faults, err = db.RuptureFaults(ctx, ruptureID)
	return rupture, err
}

// RuptureFaults returns the geometry of every fault involved in a rupture,
// keyed by parent fault name. Plane rows of sections sharing a parent fault
// are merged into one Fault per parent.
func (db *DB) RuptureFaults(ctx context.Context, ruptureID int64) (map[string]fault.Fault, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT fs.top_left_lat, fs.top_left_lon, fs.top_right_lat, fs.top_right_lon,
            fs.bottom_right_lat, fs.bottom_right_lon, fs.bottom_left_lat, fs.bottom_left_lon,
            fs.top_depth, fs.bottom_depth, p.name
        FROM fault_plane fs
        JOIN rupture_faults rf ON fs.fault_id = rf.fault_id
        JOIN fault f ON fs.fault_id = f.fault_id
        JOIN parent_fault p ON f.parent_id = p.parent_id
        WHERE rf.rupture_id = ?
        ORDER BY f.parent_id, fs.plane_id`, ruptureID)
	if err != nil {
		return nil, fmt.Errorf("rupture faults %d: %w", ruptureID, err)
	}
	defer rows.Close()

	planes := make(map[string][]fault.Plane)
	for rows.Next() {
		var c [8]float64
		var top, bottom float64
		var parentName string
		if err := rows.Scan(&c[0], &c[1], &c[2], &c[3], &c[4], &c[5], &c[6], &c[7], &top, &bottom, &parentName); err != nil {
			return nil, err
		}
		planes[parentName] = append(planes[parentName], scanPlane(c, top, bottom))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	faults := make(map[string]fault.Fault, len(planes))
	for name, ps := range planes {
		faults[name] = fault.NewFault(ps)
	}
	return faults, nil
}

// RuptureFaultInfo returns the metadata of every fault in a rupture, keyed
// by parent fault name.
func (db *DB) RuptureFaultInfo(ctx context.Context, ruptureID int64) (map[string]FaultInfo, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT p.name, f.fault_id, f.name, f.parent_id, f.rake, f.tect_type
        FROM fault f
        JOIN rupture_faults rf ON f.fault_id = rf.fault_id
        JOIN parent_fault p ON f.parent_id = p.parent_id
        WHERE rf.rupture_id = ?`, ruptureID)
	if err != nil {
		return nil, fmt.Errorf("rupture fault info %d: %w", ruptureID, err)
	}
	defer rows.Close()

	infos := make(map[string]FaultInfo)
	for rows.Next() {
		var parentName string
		var info FaultInfo
		var tectType sql.NullInt64
		if err := rows.Scan(&parentName, &info.FaultID, &info.Name, &info.ParentID, &info.Rake, &tectType); err != nil {
			return nil, err
		}
		if tectType.Valid {
			info.TectType = &tectType.Int64
		}
		infos[parentName] = info
	}
	return infos, rows.Err()
}

// FaultNames returns the set of parent fault names in the database. These
// are the identifiers users type into search expressions.
func (db *DB) FaultNames(ctx context.Context) (map[string]struct{}, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT name FROM parent_fault")
	if err != nil {
		return nil, fmt.Errorf("fault names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names[name] = struct{}{}
	}
	return names, rows.Err()
}

// Query compiles a fault search expression (see package query) and executes
// it, returning the matching ruptures keyed by id with their fault geometry
// loaded.
func (db *DB) Query(ctx context.Context, expression string, bounds query.Bounds) (map[int64]Rupture, error) {
	sqlText, params, err := query.ToSQL(expression, bounds)
	if err != nil {
		return nil, err
	}
	debug.Debug("executing rupture query", "sql", sqlText, "params", params)

	rows, err := db.conn.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, fmt.Errorf("execute rupture query: %w", err)
	}
	defer rows.Close()

	ruptures := make(map[int64]Rupture)
	for rows.Next() {
		var rupture Rupture
		var rate sql.NullFloat64
		if err := rows.Scan(&rupture.ID, &rupture.Magnitude, &rupture.Area, &rupture.Length, &rate); err != nil {
			return nil, err
		}
		if rate.Valid {
			rupture.Rate = &rate.Float64
		}
		ruptures[rupture.ID] = rupture
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for id, rupture := range ruptures {
		rupture.Faults, err = db.RuptureFaults(ctx, id)
		if err != nil {
			return nil, err
		}
		ruptures[id] = rupture
	}
	return ruptures, nil
}

// MostLikelyFault sums, for each parent fault in a rupture, the activity
// rates stored in the magnitude-frequency distribution at the nearest
// stored magnitude to the expected magnitude supplied for that fault. The
// resulting pseudo-activity rates support picking a likely starting fault
// for rupture propagation.
func (db *DB) MostLikelyFault(ctx context.Context, ruptureID int64, parentMagnitudes map[string]float64) (map[string]float64, error) {
	if len(parentMagnitudes) == 0 {
		return map[string]float64{}, nil
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT mfd.magnitude
        FROM magnitude_frequency_distribution mfd
        JOIN rupture_faults rf ON rf.fault_id = mfd.fault_id
        WHERE rf.rupture_id = ?
        ORDER BY mfd.magnitude`, ruptureID)
	if err != nil {
		return nil, fmt.Errorf("mfd magnitudes for rupture %d: %w", ruptureID, err)
	}
	defer rows.Close()

	var magnitudes []float64
	for rows.Next() {
		var m float64
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		magnitudes = append(magnitudes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(magnitudes) == 0 {
		return map[string]float64{}, nil
	}

	// Snap each expected magnitude to the nearest stored magnitude at or
	// above it, clamped to the largest stored value.
	var clauses []string
	args := []any{ruptureID}
	for name, magnitude := range parentMagnitudes {
		idx := sort.SearchFloat64s(magnitudes, magnitude)
		if idx >= len(magnitudes) {
			idx = len(magnitudes) - 1
		}
		clauses = append(clauses, "pf.name = ? AND mfd.magnitude = ?")
		args = append(args, name, magnitudes[idx])
	}

	rateRows, err := db.conn.QueryContext(ctx,
		`SELECT pf.name, SUM(mfd.rate)
        FROM parent_fault pf
        JOIN fault f ON f.parent_id = pf.parent_id
        JOIN rupture_faults rf ON rf.fault_id = f.fault_id
        JOIN magnitude_frequency_distribution mfd ON mfd.fault_id = f.fault_id
        WHERE rf.rupture_id = ? AND (`+strings.Join(clauses, " OR ")+`)
        GROUP BY pf.name`, args...)
	if err != nil {
		return nil, fmt.Errorf("mfd rates for rupture %d: %w", ruptureID, err)
	}
	defer rateRows.Close()

	rates := make(map[string]float64)
	for rateRows.Next() {
		var name string
		var rate float64
		if err := rateRows.Scan(&name, &rate); err != nil {
			return nil, err
		}
		rates[name] = rate
	}
	return rates, rateRows.Err()
}
