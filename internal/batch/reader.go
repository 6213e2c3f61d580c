// Package batch drives the geocoding pipeline over CSV record sets and
// partitions the results into import-ready and manual-review outputs.
package batch

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/antoineclaval/new-orleans-surveillance-map/internal/model"
)

// ReadInputRecords parses the loose-records CSV: column 0 is the business
// name, column 1 the apparent address. The header row is skipped, short
// rows are padded, and rows with no usable field are dropped.
func ReadInputRecords(path string) ([]model.InputRecord, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	var records []model.InputRecord
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		for len(row) < 2 {
			row = append(row, "")
		}
		name := strings.TrimSpace(row[0])
		addr := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(row[1]), ","))
		if name == "" && addr == "" {
			continue
		}
		records = append(records, model.InputRecord{
			BusinessName:    name,
			ApparentAddress: addr,
		})
	}
	return records, nil
}

// ReadCoordRecords parses the coordinate CSV by its Latitude and Longitude
// header columns. Rows with missing or non-numeric coordinates are skipped
// with a warning and never reach either output.
func ReadCoordRecords(path string) ([]model.CoordRecord, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	latIdx, lonIdx := -1, -1
	for i, col := range rows[0] {
		switch strings.TrimSpace(col) {
		case "Latitude":
			latIdx = i
		case "Longitude":
			lonIdx = i
		}
	}
	if latIdx < 0 || lonIdx < 0 {
		return nil, eris.Errorf("batch: %s is missing Latitude/Longitude columns", path)
	}

	var records []model.CoordRecord
	for _, row := range rows[1:] {
		lat, lon, ok := parseCoords(row, latIdx, lonIdx)
		if !ok {
			continue
		}
		records = append(records, model.CoordRecord{Latitude: lat, Longitude: lon})
	}
	return records, nil
}

func parseCoords(row []string, latIdx, lonIdx int) (float64, float64, bool) {
	var latRaw, lonRaw string
	if latIdx < len(row) {
		latRaw = strings.TrimSpace(row[latIdx])
	}
	if lonIdx < len(row) {
		lonRaw = strings.TrimSpace(row[lonIdx])
	}
	if latRaw == "" || lonRaw == "" {
		return 0, 0, false
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lon, lonErr := strconv.ParseFloat(lonRaw, 64)
	if latErr != nil || lonErr != nil {
		zap.L().Warn("batch: skipping invalid coordinates",
			zap.String("lat", latRaw),
			zap.String("lon", lonRaw),
		)
		return 0, 0, false
	}
	return lat, lon, true
}

// readRows loads a whole CSV file. A missing file is the one fatal error of
// a run.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: open input %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable fields

	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read input %s", path)
	}
	return rows, nil
}
