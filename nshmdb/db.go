// Package nshmdb reads and writes the National Seismic Hazard Model rupture
// database: ruptures, faults, parent faults, fault plane geometry, rupture
// rates and magnitude-frequency distributions, stored in SQLite.
package nshmdb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/seistech/nshmdb/internal/debug"
)

//go:embed schema.sql
var schemaSQL string

// DB is a handle on an NSHM rupture database file.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) the database file at path. The schema is not
// created until Create is called.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return &DB{conn: conn, path: path}, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Create creates the database tables and indexes if they do not exist.
func (db *DB) Create(ctx context.Context) error {
	debug.Debug("creating schema", "path", db.path)
	if _, err := db.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Begin starts a transaction. Bulk ingestion wraps its inserts in one
// transaction per stage.
func (db *DB) Begin(ctx context.Context) (*sql.Tx, error) {
	return db.conn.BeginTx(ctx, nil)
}

// AddParentFault inserts or replaces a parent fault.
func (db *DB) AddParentFault(ctx context.Context, tx *sql.Tx, parentID int64, name string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO parent_fault (parent_id, name) VALUES (?, ?)",
		parentID, name)
	return err
}

// AddFault inserts or replaces a fault section belonging to a parent fault.
func (db *DB) AddFault(ctx context.Context, tx *sql.Tx, info FaultInfo) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO fault (fault_id, name, parent_id, rake, tect_type) VALUES (?, ?, ?, ?, ?)",
		info.FaultID, info.Name, info.ParentID, info.Rake, info.TectType)
	return err
}

// AddFaultPlane inserts one plane of a fault's geometry. Corners are given
// in (lat, lon) with top and bottom depths in kilometres.
func (db *DB) AddFaultPlane(ctx context.Context, tx *sql.Tx, faultID int64, corners [4][2]float64, topDepth, bottomDepth float64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO fault_plane (
            top_left_lat, top_left_lon,
            top_right_lat, top_right_lon,
            bottom_right_lat, bottom_right_lon,
            bottom_left_lat, bottom_left_lon,
            top_depth, bottom_depth, fault_id
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		corners[0][0], corners[0][1],
		corners[1][0], corners[1][1],
		corners[2][0], corners[2][1],
		corners[3][0], corners[3][1],
		topDepth, bottomDepth, faultID)
	return err
}

// AddRupture inserts a rupture with its scalar properties.
func (db *DB) AddRupture(ctx context.Context, tx *sql.Tx, ruptureID int64, magnitude, area, length float64, rate *float64) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO rupture (rupture_id, magnitude, area, len, rate) VALUES (?, ?, ?, ?, ?)",
		ruptureID, magnitude, area, length, rate)
	return err
}

// AddFaultToRupture binds a fault to a rupture, creating the rupture row if
// it does not yet exist.
func (db *DB) AddFaultToRupture(ctx context.Context, tx *sql.Tx, ruptureID, faultID int64) error {
	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO rupture (rupture_id) VALUES (?)", ruptureID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx,
		"INSERT INTO rupture_faults (rupture_id, fault_id) VALUES (?, ?)",
		ruptureID, faultID)
	return err
}

// AddMFDRow inserts one magnitude-frequency distribution sample for a
// fault.
func (db *DB) AddMFDRow(ctx context.Context, tx *sql.Tx, faultID int64, magnitude, rate float64) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO magnitude_frequency_distribution (fault_id, magnitude, rate) VALUES (?, ?, ?)",
		faultID, magnitude, rate)
	return err
}
