// Package ingest loads a CRU system solution package (a zip archive of
// geojson fault sections and CSV rupture tables) into an NSHM rupture
// database.
package ingest

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/seistech/nshmdb/nshmdb"
)

// Archive member paths inside a CRU solution package.
const (
	faultSectionsPath     = "ruptures/fault_sections.geojson"
	ruptureFaultJoinPath  = "ruptures/fast_indices.csv"
	ruptureRatesPath      = "aggregate_rates.csv"
	rupturePropertiesPath = "ruptures/properties.csv"
	mfdsPath              = "ruptures/sub_seismo_on_fault_mfds.csv"
)

// Options selects which ingestion stages run. All stages run by default.
type Options struct {
	SkipFaults   bool
	SkipRuptures bool
	SkipMFDs     bool
}

// Run ingests the CRU solution package at zipPath into db. The schema must
// already exist (see nshmdb.DB.Create).
func Run(ctx context.Context, db *nshmdb.DB, zipPath string, opts Options) error {
	archive, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open solution package %s: %w", zipPath, err)
	}
	defer archive.Close()

	if !opts.SkipFaults {
		if err := ingestFaults(ctx, db, &archive.Reader); err != nil {
			return fmt.Errorf("ingest faults: %w", err)
		}
	}
	if !opts.SkipMFDs {
		if err := ingestMFDs(ctx, db, &archive.Reader); err != nil {
			return fmt.Errorf("ingest magnitude frequency distributions: %w", err)
		}
	}
	if !opts.SkipRuptures {
		if err := ingestRuptures(ctx, db, &archive.Reader); err != nil {
			return fmt.Errorf("ingest ruptures: %w", err)
		}
	}
	return nil
}

func readArchiveFile(archive *zip.Reader, name string) ([]byte, error) {
	file, err := archive.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()
	return io.ReadAll(file)
}

func readArchiveCSV(archive *zip.Reader, name string) ([][]string, error) {
	file, err := archive.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: empty file", name)
	}
	return records, nil
}

// columnIndex maps a CSV header row to column positions.
func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	return index
}
