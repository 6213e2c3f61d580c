// Package nominatim provides forward and reverse geocoding via the OSM Nominatim API.
package nominatim

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim's usage policy allows at most one request per second.
const defaultRateInterval = 1100 * time.Millisecond

// Client performs Nominatim geocoding operations.
type Client interface {
	// Search forward-geocodes a free-text query to a single best fix.
	// Returns (nil, nil) when the service finds nothing.
	Search(ctx context.Context, query string) (*Fix, error)

	// Reverse resolves coordinates to a street address.
	// Returns (nil, nil) when the service reports no result.
	Reverse(ctx context.Context, lat, lon float64) (*Address, error)
}

// Fix is the result of a successful forward geocode.
type Fix struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Address is the result of a successful reverse geocode.
type Address struct {
	StreetAddress string
	DisplayName   string
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
// Nominatim rejects requests without an identifying agent.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// WithCountryCodes restricts forward search to a comma-separated country list.
func WithCountryCodes(codes string) Option {
	return func(c *httpClient) {
		c.countryCodes = codes
	}
}

// WithRateInterval sets the minimum interval between requests.
func WithRateInterval(d time.Duration) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithLimiter replaces the rate limiter entirely. Tests pass
// rate.NewLimiter(rate.Inf, 1) to run without delay.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

type httpClient struct {
	baseURL      string
	userAgent    string
	countryCodes string
	http         *http.Client
	limiter      *rate.Limiter
}

// NewClient creates a Nominatim client. Search and Reverse share one rate
// limiter because they hit the same service.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:      defaultBaseURL,
		countryCodes: "us",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(defaultRateInterval), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}
