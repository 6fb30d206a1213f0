package ingest

import (
	"archive/zip"
	"context"
	"fmt"
	"strconv"

	"github.com/seistech/nshmdb/internal/debug"
	"github.com/seistech/nshmdb/nshmdb"
)

// ruptureProperties holds one rupture's scalar columns from
// ruptures/properties.csv joined with its mean rate from
// aggregate_rates.csv.
type ruptureProperties struct {
	Magnitude float64
	Area      float64
	Length    float64
	Rate      *float64
}

func parseRuptureRates(records [][]string) (map[int64]float64, error) {
	index := columnIndex(records[0])
	idCol, ok := index["Rupture Index"]
	rateCol, okRate := index["rate_weighted_mean"]
	if !ok || !okRate {
		return nil, fmt.Errorf("%s: missing Rupture Index or rate_weighted_mean column", ruptureRatesPath)
	}

	rates := make(map[int64]float64, len(records)-1)
	for _, record := range records[1:] {
		id, err := strconv.ParseInt(record[idCol], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: rupture index %q: %w", ruptureRatesPath, record[idCol], err)
		}
		rate, err := strconv.ParseFloat(record[rateCol], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: rate for rupture %d: %w", ruptureRatesPath, id, err)
		}
		rates[id] = rate
	}
	return rates, nil
}

func parseRuptureProperties(records [][]string, rates map[int64]float64) (map[int64]ruptureProperties, error) {
	index := columnIndex(records[0])
	for _, column := range []string{"Rupture Index", "Magnitude", "Area (m^2)", "Length (m)"} {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("%s: missing %s column", rupturePropertiesPath, column)
		}
	}

	properties := make(map[int64]ruptureProperties, len(records)-1)
	for _, record := range records[1:] {
		id, err := strconv.ParseInt(record[index["Rupture Index"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: rupture index %q: %w", rupturePropertiesPath, record[index["Rupture Index"]], err)
		}
		magnitude, err := strconv.ParseFloat(record[index["Magnitude"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: magnitude for rupture %d: %w", rupturePropertiesPath, id, err)
		}
		area, err := strconv.ParseFloat(record[index["Area (m^2)"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: area for rupture %d: %w", rupturePropertiesPath, id, err)
		}
		length, err := strconv.ParseFloat(record[index["Length (m)"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: length for rupture %d: %w", rupturePropertiesPath, id, err)
		}

		props := ruptureProperties{Magnitude: magnitude, Area: area, Length: length}
		if rate, ok := rates[id]; ok {
			props.Rate = &rate
		}
		properties[id] = props
	}
	return properties, nil
}

func ingestRuptures(ctx context.Context, db *nshmdb.DB, archive *zip.Reader) error {
	rateRecords, err := readArchiveCSV(archive, ruptureRatesPath)
	if err != nil {
		return err
	}
	rates, err := parseRuptureRates(rateRecords)
	if err != nil {
		return err
	}

	propertyRecords, err := readArchiveCSV(archive, rupturePropertiesPath)
	if err != nil {
		return err
	}
	properties, err := parseRuptureProperties(propertyRecords, rates)
	if err != nil {
		return err
	}
	debug.Info("ingesting ruptures", "count", len(properties))

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for id, props := range properties {
		if err := db.AddRupture(ctx, tx, id, props.Magnitude, props.Area, props.Length, props.Rate); err != nil {
			return fmt.Errorf("rupture %d: %w", id, err)
		}
	}

	joinRecords, err := readArchiveCSV(archive, ruptureFaultJoinPath)
	if err != nil {
		return err
	}
	index := columnIndex(joinRecords[0])
	ruptureCol, ok := index["rupture"]
	sectionCol, okSection := index["section"]
	if !ok || !okSection {
		return fmt.Errorf("%s: missing rupture or section column", ruptureFaultJoinPath)
	}

	for _, record := range joinRecords[1:] {
		// Rows with an empty section column carry no fault binding.
		if record[sectionCol] == "" {
			continue
		}
		ruptureID, err := strconv.ParseInt(record[ruptureCol], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: rupture %q: %w", ruptureFaultJoinPath, record[ruptureCol], err)
		}
		faultID, err := strconv.ParseInt(record[sectionCol], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: section %q: %w", ruptureFaultJoinPath, record[sectionCol], err)
		}
		if err := db.AddFaultToRupture(ctx, tx, ruptureID, faultID); err != nil {
			return fmt.Errorf("rupture %d fault %d: %w", ruptureID, faultID, err)
		}
	}
	return tx.Commit()
}
