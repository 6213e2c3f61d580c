// Package normalize rewrites New Orleans street addresses into forms the
// geocoder resolves reliably.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// expansion rewrites a known local abbreviation or misspelling.
type expansion struct {
	pattern     *regexp.Regexp
	replacement string
}

// Common NOLA street abbreviation expansions. Whole-word, case-insensitive,
// applied in order. Replacements must not re-match any pattern so that
// normalization stays idempotent.
var expansions = []expansion{
	{regexp.MustCompile(`(?i)\bTchoup\b`), "Tchoupitoulas"},
	{regexp.MustCompile(`(?i)\bSt\.?\s+Phillip\b`), "St Philip"},
	{regexp.MustCompile(`(?i)\bRoberston\b`), "Robertson"},
	{regexp.MustCompile(`(?i)\bS\.\s+Peters\b`), "South Peters"},
	{regexp.MustCompile(`(?i)\bN\.\s+Robertson\b`), "North Robertson"},
}

// Expand rewrites known abbreviations and typos in an address.
func Expand(address string) string {
	for _, e := range expansions {
		address = e.pattern.ReplaceAllString(address, e.replacement)
	}
	return address
}

// EnsureLocale expands abbreviations and appends ", <city>, <region>" unless
// the address already mentions either (case-insensitive substring check).
func EnsureLocale(address, city, region string) string {
	address = Expand(address)
	low := strings.ToLower(address)
	if strings.Contains(low, strings.ToLower(city)) || strings.Contains(low, strings.ToLower(region)) {
		return address
	}
	return fmt.Sprintf("%s, %s, %s", address, city, region)
}
