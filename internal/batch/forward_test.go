package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antoineclaval/new-orleans-surveillance-map/internal/model"
	"github.com/antoineclaval/new-orleans-surveillance-map/internal/resolver"
	"github.com/antoineclaval/new-orleans-surveillance-map/pkg/nominatim"
)

type stubGeocoder struct {
	fixes map[string]*nominatim.Fix
}

func (s *stubGeocoder) Search(_ context.Context, query string) (*nominatim.Fix, error) {
	return s.fixes[query], nil
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRunForward_PartitionsAndPreservesOrder(t *testing.T) {
	geo := &stubGeocoder{fixes: map[string]*nominatim.Fix{
		"100 Canal St, New Orleans, Louisiana": {
			Latitude: 29.9527, Longitude: -90.0686,
			DisplayName: "100 Canal St, New Orleans, LA",
		},
		"800 Decatur St, New Orleans, Louisiana": {
			Latitude: 29.9574, Longitude: -90.0618,
			DisplayName: "800 Decatur St, New Orleans, LA",
		},
	}}
	res := resolver.New(geo, nil, "New Orleans", "Louisiana", 5)

	records := []model.InputRecord{
		{BusinessName: "Corner Store", ApparentAddress: "100 Canal St"},
		{BusinessName: "Vanished Shop", ApparentAddress: "999 Nowhere"},
		{BusinessName: "", ApparentAddress: "800 Decatur St"},
	}

	dir := t.TempDir()
	outPath := filepath.Join(dir, "clean.csv")
	failPath := filepath.Join(dir, "failures.csv")
	var progress bytes.Buffer

	sum, err := RunForward(context.Background(), res, records, outPath, failPath, &progress)
	require.NoError(t, err)
	assert.Equal(t, Summary{Resolved: 2, Unresolved: 1}, sum)

	out := readCSV(t, outPath)
	require.Len(t, out, 3)
	assert.Equal(t, model.ImportColumns, out[0])

	// Order preserved within the resolved set.
	row1 := mapRow(t, out[0], out[1])
	assert.Equal(t, "Corner Store", row1["associated_shop"])
	assert.Equal(t, "100 Canal St", row1["street_address"])
	assert.Equal(t, "29.9527", row1["latitude"])
	assert.Equal(t, "-90.0686", row1["longitude"])
	assert.Equal(t, "False", row1["facial_recognition"])
	assert.Equal(t, "pending", row1["status"])
	assert.Equal(t, "geocoded:direct_address | 100 Canal St, New Orleans, LA", row1["notes"])

	row2 := mapRow(t, out[0], out[2])
	assert.Equal(t, "800 Decatur St", row2["street_address"])

	fails := readCSV(t, failPath)
	require.Len(t, fails, 2)
	assert.Equal(t, model.FailureColumns, fails[0])
	assert.Equal(t, []string{"Vanished Shop", "999 Nowhere", resolver.ReasonManual}, fails[1])

	text := progress.String()
	assert.Contains(t, text, `[1/3] "Corner Store"`)
	assert.Contains(t, text, `[3/3] "800 Decatur St"`)
	assert.Contains(t, text, "!! UNRESOLVED")
	assert.Contains(t, text, "2 resolved")
	assert.Contains(t, text, "1 unresolved")
	assert.Contains(t, text, `"Vanished Shop" / "999 Nowhere"`)
}

func TestRunForward_NoRecords(t *testing.T) {
	res := resolver.New(&stubGeocoder{}, nil, "New Orleans", "Louisiana", 5)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "clean.csv")
	failPath := filepath.Join(dir, "failures.csv")

	sum, err := RunForward(context.Background(), res, nil, outPath, failPath, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)

	// Both outputs exist with only their headers.
	assert.Equal(t, [][]string{model.ImportColumns}, readCSV(t, outPath))
	assert.Equal(t, [][]string{model.FailureColumns}, readCSV(t, failPath))
}

func mapRow(t *testing.T, header, row []string) map[string]string {
	t.Helper()
	require.Len(t, row, len(header))
	m := make(map[string]string, len(header))
	for i, col := range header {
		m[col] = row[i]
	}
	return m
}
