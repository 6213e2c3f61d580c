package normalize

import (
	"regexp"
	"strings"
)

// streetAddressRe matches "123 Main St", "456 N. Robertson St", and the
// handful of French Quarter streets that carry no street-type suffix.
var streetAddressRe = regexp.MustCompile(
	`(?i)\b\d{1,5}\s+(?:[NSEW]\.?\s+)?[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*` +
		`\s+(?:St(?:reet)?|Ave(?:nue)?|Blvd|Rd|Dr|Ct|Ln|Pl|Way|Hwy|Pkwy|Bienville|Bourbon|Decatur|Frenchmen|Chartres|Royal|Toulouse|Burgundy|Iberville|Canal|Tchoupitoulas|Tchoup)\b`,
)

// ExtractStreetAddress returns the first house-number-plus-street-name
// substring found in text, or "" when none matches.
func ExtractStreetAddress(text string) string {
	return strings.TrimSpace(streetAddressRe.FindString(text))
}
