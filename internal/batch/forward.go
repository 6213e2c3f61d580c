package batch

import (
	"context"
	"fmt"
	"io"

	"github.com/antoineclaval/new-orleans-surveillance-map/internal/model"
	"github.com/antoineclaval/new-orleans-surveillance-map/internal/resolver"
)

// Summary reports how a run partitioned its records.
type Summary struct {
	Resolved   int
	Unresolved int
}

// RunForward resolves every record in input order, writes resolved rows to
// outPath and unresolved rows to failPath, and reports progress on w.
// Processing is strictly sequential so output order matches input order and
// the shared rate limiter is respected.
func RunForward(ctx context.Context, res *resolver.Resolver, records []model.InputRecord, outPath, failPath string, w io.Writer) (Summary, error) {
	var resolvedRows, failureRows [][]string
	var failures []model.InputRecord

	total := len(records)
	for i, rec := range records {
		label := rec.BusinessName
		if label == "" {
			label = rec.ApparentAddress
		}
		fmt.Fprintf(w, "[%d/%d] %q\n", i+1, total, label)

		out := res.Resolve(ctx, rec)
		if out.Resolved {
			notes := model.GeocodedNotes(string(out.Strategy), out.Evidence)
			resolvedRows = append(resolvedRows, model.ResolvedImportRow(
				rec.BusinessName, out.StreetAddress, out.Fix.Latitude, out.Fix.Longitude, notes))
			continue
		}

		fmt.Fprintf(w, "  !! UNRESOLVED %q\n", label)
		failureRows = append(failureRows, model.FailureRow(rec.BusinessName, out.StreetAddress, out.Reason))
		failures = append(failures, rec)
	}

	if err := writeCSV(outPath, model.ImportColumns, resolvedRows); err != nil {
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
			fmt.Fprintf(w, "  - %q / %q\n", rec.BusinessName, rec.ApparentAddress)
		}
	}
	return sum, nil
}
