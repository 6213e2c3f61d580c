package nominatim

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
)

// searchResult is one entry of the Nominatim /search response array.
// Coordinates come back string-typed.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search implements Client.
func (c *httpClient) Search(ctx context.Context, query string) (*Fix, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "nominatim: search rate limit")
	}

	params := url.Values{
		"q":              {query},
		"format":         {"json"},
		"limit":          {"1"},
		"addressdetails": {"1"},
	}
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}

	body, err := c.get(ctx, c.baseURL+"/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, eris.Wrap(err, "nominatim: search parse response")
	}
	if len(results) == 0 {
		return nil, nil
	}

	r := results[0]
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: search parse lat")
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: search parse lon")
	}

	return &Fix{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: r.DisplayName,
	}, nil
}

// get issues a GET with the configured User-Agent and returns the response
// body. Callers wait on the limiter first.
func (c *httpClient) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: build request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
