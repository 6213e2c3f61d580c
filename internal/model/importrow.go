package model

import "fmt"

// ImportColumns is the ordered column set of the camera import format.
// Any schema change in the destination store must be mirrored here.
var ImportColumns = []string{
	"id",
	"cross_road",
	"street_address",
	"latitude",
	"longitude",
	"facial_recognition",
	"associated_shop",
	"status",
	"reported_by",
	"reported_at",
	"vetted_at",
	"vetted_by",
	"notes",
}

// ReverseImportColumns is the import format for the coordinate dataset,
// which additionally carries a camera type.
var ReverseImportColumns = []string{
	"id",
	"cross_road",
	"street_address",
	"latitude",
	"longitude",
	"facial_recognition",
	"associated_shop",
	"camera_type",
	"status",
	"reported_by",
	"reported_at",
	"vetted_at",
	"vetted_by",
	"notes",
}

// FailureColumns is the column set of the manual-review output.
var FailureColumns = []string{
	"associated_shop",
	"street_address",
	"notes",
}

// The pipeline never infers facial recognition.
const facialRecognition = "False"

const (
	// StatusPending marks forward-geocoded rows awaiting review.
	StatusPending = "pending"
	// StatusVetted marks reverse-geocoded rows from an authoritative
	// coordinate source.
	StatusVetted = "vetted"
)

// evidenceMax caps provenance text carried in notes. Downstream consumers
// depend on the exact length, so truncation is a plain rune cut.
const evidenceMax = 80

// TruncateEvidence cuts evidence text to the fixed provenance length.
func TruncateEvidence(s string) string {
	r := []rune(s)
	if len(r) <= evidenceMax {
		return s
	}
	return string(r[:evidenceMax])
}

// GeocodedNotes builds the provenance notes for a forward-geocoded row.
func GeocodedNotes(strategy, evidence string) string {
	return fmt.Sprintf("geocoded:%s | %s", strategy, TruncateEvidence(evidence))
}

// ReverseGeocodedNotes builds the provenance notes for a reverse-geocoded row.
func ReverseGeocodedNotes(evidence string) string {
	return fmt.Sprintf("reverse_geocoded:nominatim | %s", TruncateEvidence(evidence))
}

// ResolvedImportRow builds an import row for a forward-geocoded record, in
// ImportColumns order.
func ResolvedImportRow(shop, streetAddress string, lat, lon float64, notes string) []string {
	return []string{
		"",                // id
		"",                // cross_road
		streetAddress,     // street_address
		FormatCoord(lat),  // latitude
		FormatCoord(lon),  // longitude
		facialRecognition, // facial_recognition
		shop,              // associated_shop
		StatusPending,     // status
		"",                // reported_by
		"",                // reported_at
		"",                // vetted_at
		"",                // vetted_by
		notes,             // notes
	}
}

// ReverseImportRow builds an import row for a reverse-geocoded record, in
// ReverseImportColumns order.
func ReverseImportRow(streetAddress string, lat, lon float64, cameraType, batchTag, notes string) []string {
	return []string{
		"",                // id
		"",                // cross_road
		streetAddress,     // street_address
		FormatCoord(lat),  // latitude
		FormatCoord(lon),  // longitude
		facialRecognition, // facial_recognition
		"",                // associated_shop
		cameraType,        // camera_type
		StatusVetted,      // status
		batchTag,          // reported_by
		"",                // reported_at
		"",                // vetted_at
		"",                // vetted_by
		notes,             // notes
	}
}

// FailureRow builds a manual-review row, in FailureColumns order.
func FailureRow(shop, streetAddress, notes string) []string {
	return []string{shop, streetAddress, notes}
}
