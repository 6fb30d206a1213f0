package ingest

import (
	"archive/zip"
	"context"
	"fmt"
	"strconv"

	"github.com/seistech/nshmdb/internal/debug"
	"github.com/seistech/nshmdb/nshmdb"
)

// ingestMFDs loads the sub-seismo on-fault magnitude-frequency
// distributions. The CSV is wide (one magnitude per column); it is melted
// into one (fault, magnitude, rate) row per sample, dropping zero rates.
func ingestMFDs(ctx context.Context, db *nshmdb.DB, archive *zip.Reader) error {
	records, err := readArchiveCSV(archive, mfdsPath)
	if err != nil {
		return err
	}

	header := records[0]
	index := columnIndex(header)
	idCol, ok := index["Section Index"]
	if !ok {
		return fmt.Errorf("%s: missing Section Index column", mfdsPath)
	}

	magnitudes := make(map[int]float64)
	for col, name := range header {
		if col == idCol {
			continue
		}
		magnitude, err := strconv.ParseFloat(name, 64)
		if err != nil {
			return fmt.Errorf("%s: magnitude column %q: %w", mfdsPath, name, err)
		}
		magnitudes[col] = magnitude
	}
	debug.Info("ingesting magnitude frequency distributions",
		"faults", len(records)-1, "magnitudes", len(magnitudes))

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, record := range records[1:] {
		faultID, err := strconv.ParseInt(record[idCol], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: section index %q: %w", mfdsPath, record[idCol], err)
		}
		for col, magnitude := range magnitudes {
			rate, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				return fmt.Errorf("%s: rate for fault %d at magnitude %g: %w", mfdsPath, faultID, magnitude, err)
			}
			if rate <= 0 {
				continue
			}
			if err := db.AddMFDRow(ctx, tx, faultID, magnitude, rate); err != nil {
				return fmt.Errorf("fault %d: %w", faultID, err)
			}
		}
	}
	return tx.Commit()
}
