// Package resolver turns loose camera records into geographic fixes by
// trying an ordered chain of geocoding strategies.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/antoineclaval/new-orleans-surveillance-map/internal/model"
	"github.com/antoineclaval/new-orleans-surveillance-map/internal/normalize"
	"github.com/antoineclaval/new-orleans-surveillance-map/pkg/duckduckgo"
	"github.com/antoineclaval/new-orleans-surveillance-map/pkg/nominatim"
)

// Strategy identifies which resolution path produced a fix.
type Strategy string

const (
	// StrategyDirectAddress geocoded the record's own address.
	StrategyDirectAddress Strategy = "direct_address"
	// StrategyBusinessName geocoded the business name directly.
	StrategyBusinessName Strategy = "business_name"
	// StrategyWebSearch geocoded an address extracted from web search results.
	StrategyWebSearch Strategy = "web_search_fallback"
)

// ReasonManual is the fixed reason recorded when every strategy fails.
const ReasonManual = "UNRESOLVED: manual geocoding needed"

// Outcome is the terminal result of resolving one record. Exactly one
// Outcome exists per record; a record is never retried within a run.
type Outcome struct {
	Resolved bool

	// Set when Resolved.
	Fix           nominatim.Fix
	StreetAddress string
	Strategy      Strategy
	Evidence      string

	// Set when not Resolved.
	Reason string
}

// Geocoder is the forward-geocoding dependency.
type Geocoder interface {
	Search(ctx context.Context, query string) (*nominatim.Fix, error)
}

// Searcher is the optional web-search dependency.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]duckduckgo.Result, error)
	Available() bool
}

// Resolver tries strategies in fixed priority order, short-circuiting on the
// first fix.
type Resolver struct {
	geo        Geocoder
	search     Searcher
	city       string
	region     string
	maxResults int
}

// New creates a Resolver. search may be nil, in which case the web-search
// strategy always yields no candidate.
func New(geo Geocoder, search Searcher, city, region string, maxResults int) *Resolver {
	if search != nil && !search.Available() {
		zap.L().Warn("resolver: web search unavailable, continuing without fallback")
		search = nil
	}
	return &Resolver{
		geo:        geo,
		search:     search,
		city:       city,
		region:     region,
		maxResults: maxResults,
	}
}

// Resolve runs the strategy chain for one record. Each strategy is gated
// only by its own input being non-empty, never by how a previous strategy
// failed.
func (r *Resolver) Resolve(ctx context.Context, rec model.InputRecord) Outcome {
	name := strings.TrimSpace(rec.BusinessName)
	addr := strings.TrimSpace(rec.ApparentAddress)

	// Strategy 1: the record's own address. The normalized form is only
	// the query; the original text is what gets imported.
	if addr != "" {
		query := normalize.EnsureLocale(addr, r.city, r.region)
		if fix := r.geocode(ctx, query); fix != nil {
			return resolved(*fix, addr, StrategyDirectAddress)
		}
	}

	// Strategy 2: the business name as a point of interest.
	if name != "" {
		query := fmt.Sprintf("%s, %s, %s", name, r.city, r.region)
		if fix := r.geocode(ctx, query); fix != nil {
			return resolved(*fix, addr, StrategyBusinessName)
		}
	}

	// Strategy 3: pull a candidate address out of web search snippets and
	// geocode that. The candidate, not the original address, is imported.
	if name != "" {
		if candidate := r.searchAddress(ctx, name); candidate != "" {
			query := normalize.EnsureLocale(candidate, r.city, r.region)
			if fix := r.geocode(ctx, query); fix != nil {
				return resolved(*fix, candidate, StrategyWebSearch)
			}
		}
	}

	return Outcome{Reason: ReasonManual, StreetAddress: addr}
}

// geocode swallows geocoder errors; a failed call is a failed strategy,
// never a failed run.
func (r *Resolver) geocode(ctx context.Context, query string) *nominatim.Fix {
	fix, err := r.geo.Search(ctx, query)
	if err != nil {
		zap.L().Warn("resolver: geocode failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}
	return fix
}

// searchAddress scans web search snippets for the first plausible street
// address. Returns "" when the searcher is absent, errors, or finds nothing.
func (r *Resolver) searchAddress(ctx context.Context, name string) string {
	if r.search == nil {
		return ""
	}

	query := fmt.Sprintf("%s %s address", name, r.city)
	results, err := r.search.Search(ctx, query, r.maxResults)
	if err != nil {
		zap.L().Warn("resolver: web search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return ""
	}

	for _, res := range results {
		if found := normalize.ExtractStreetAddress(res.Body + " " + res.Title); found != "" {
			zap.L().Debug("resolver: snippet address",
				zap.String("name", name),
				zap.String("address", found),
			)
			return found
		}
	}
	return ""
}

func resolved(fix nominatim.Fix, streetAddress string, s Strategy) Outcome {
	return Outcome{
		Resolved:      true,
		Fix:           fix,
		StreetAddress: streetAddress,
		Strategy:      s,
		Evidence:      fix.DisplayName,
	}
}
