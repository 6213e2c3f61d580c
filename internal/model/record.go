// Package model defines the pipeline's input records and the fixed camera
// import schema its output rows must match.
package model

import "strconv"

// InputRecord is one loose camera sighting to geocode. Never mutated after
// parsing.
type InputRecord struct {
	BusinessName    string
	ApparentAddress string
}

// CoordRecord is one camera sighting that already has coordinates but lacks
// an address.
type CoordRecord struct {
	Latitude  float64
	Longitude float64
}

// FormatCoord writes a coordinate as raw decimal text.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
