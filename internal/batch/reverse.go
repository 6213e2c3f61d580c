package batch

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/antoineclaval/new-orleans-surveillance-map/internal/model"
	"github.com/antoineclaval/new-orleans-surveillance-map/pkg/nominatim"
)

// reverseFailureShop labels reverse-geocode failures for manual review.
const reverseFailureShop = "NOPD Camera"

// ReverseGeocoder is the reverse-geocoding dependency.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*nominatim.Address, error)
}

// RunReverse reverse-geocodes every coordinate record in input order and
// partitions the results. Provider errors fail the record, never the run.
func RunReverse(ctx context.Context, geo ReverseGeocoder, records []model.CoordRecord, outPath, failPath, cameraType, batchTag string, w io.Writer) (Summary, error) {
	var resolvedRows, failureRows [][]string
	var failures []model.CoordRecord

	total := len(records)
	for i, rec := range records {
		fmt.Fprintf(w, "[%d/%d] (%s, %s)\n", i+1, total,
			model.FormatCoord(rec.Latitude), model.FormatCoord(rec.Longitude))

		addr, err := geo.Reverse(ctx, rec.Latitude, rec.Longitude)
		if err != nil {
			zap.L().Warn("batch: reverse geocode failed",
				zap.Float64("lat", rec.Latitude),
				zap.Float64("lon", rec.Longitude),
				zap.Error(err),
			)
			addr = nil
		}

		if addr != nil {
			notes := model.ReverseGeocodedNotes(addr.DisplayName)
			resolvedRows = append(resolvedRows, model.ReverseImportRow(
				addr.StreetAddress, rec.Latitude, rec.Longitude, cameraType, batchTag, notes))
			continue
		}

		fmt.Fprintf(w, "  !! UNRESOLVED (%s, %s)\n",
			model.FormatCoord(rec.Latitude), model.FormatCoord(rec.Longitude))
		reason := fmt.Sprintf("UNRESOLVED: reverse geocoding failed | %s,%s",
			model.FormatCoord(rec.Latitude), model.FormatCoord(rec.Longitude))
		failureRows = append(failureRows, model.FailureRow(reverseFailureShop, "", reason))
		failures = append(failures, rec)
	}

	if err := writeCSV(outPath, model.ReverseImportColumns, resolvedRows); err != nil {
		return Summary{}, err
	}
	if err := writeCSV(failPath, model.FailureColumns, failureRows); err != nil {
		return Summary{}, err
	}

	sum := Summary{Resolved: len(resolvedRows), Unresolved: len(failureRows)}
	fmt.Fprintf(w, "\nDone. %d resolved → %s\n", sum.Resolved, outPath)
	if sum.Unresolved > 0 {
		fmt.Fprintf(w, "      %d unresolved → %s\n", sum.Unresolved, failPath)
		for _, rec := range failures {
			fmt.Fprintf(w, "  (%s, %s)\n",
				model.FormatCoord(rec.Latitude), model.FormatCoord(rec.Longitude))
		}
	}
	return sum, nil
}
