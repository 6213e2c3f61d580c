package nominatim

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// reverseResponse is the Nominatim /reverse response. A populated Error
// field means "no result here", not a transport failure.
type reverseResponse struct {
	Error       string `json:"error"`
	DisplayName string `json:"display_name"`
	Address     struct {
		HouseNumber string `json:"house_number"`
		Road        string `json:"road"`
	} `json:"address"`
}

// Reverse implements Client. Callers are responsible for passing in-range
// coordinates.
func (c *httpClient) Reverse(ctx context.Context, lat, lon float64) (*Address, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "nominatim: reverse rate limit")
	}

	params := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', -1, 64)},
		"format":         {"json"},
		"addressdetails": {"1"},
	}

	body, err := c.get(ctx, c.baseURL+"/reverse?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp reverseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "nominatim: reverse parse response")
	}
	if resp.Error != "" {
		zap.L().Debug("nominatim: reverse no result",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.String("error", resp.Error),
		)
		return nil, nil
	}

	return &Address{
		StreetAddress: joinStreet(resp.Address.HouseNumber, resp.Address.Road),
		DisplayName:   resp.DisplayName,
	}, nil
}

// joinStreet builds "<house number> <road>". No road means no usable
// street address.
func joinStreet(houseNumber, road string) string {
	if road == "" {
		return ""
	}
	return strings.TrimSpace(houseNumber + " " + road)
}
