package batch

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// writeCSV writes a header plus rows to path, creating or truncating it.
func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "batch: create output %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrapf(err, "batch: write header %s", path)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "batch: write row %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "batch: flush output %s", path)
	}
	return nil
}
