// Package location provides French municipality autocomplete, reverse
// geocoding and browser-style geolocation.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
	"github.com/leboncoincoin/marketplace-web/pkg/metrics"
)

const (
	// DefaultAddressURL is the public French address service.
	DefaultAddressURL = "https://api-adresse.data.gouv.fr"
	// DefaultSuggestionLimit is used when SearchLocations gets limit <= 0.
	DefaultSuggestionLimit = 5
	// MinQueryLength is the shortest query, in runes, sent upstream.
	MinQueryLength = 2
)

// AddressClient talks to the address service. Lookups never fail from
// the caller's point of view: problems are logged and an empty result
// is returned.
type AddressClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewAddressClient creates a client for baseURL; empty means DefaultAddressURL.
func NewAddressClient(baseURL string, httpClient *http.Client, log *logger.Logger) *AddressClient {
	if baseURL == "" {
		baseURL = DefaultAddressURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &AddressClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     log,
	}
}

type featureCollection struct {
	Features []struct {
		Properties featureProperties `json:"properties"`
	} `json:"features"`
}

type featureProperties struct {
	Label        string `json:"label"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Municipality string `json:"municipality"`
	Postcode     string `json:"postcode"`
	Context      string `json:"context"`
}

// SearchLocations returns municipality suggestions for query. Queries
// shorter than MinQueryLength return an empty slice without any request.
func (c *AddressClient) SearchLocations(ctx context.Context, query string, limit int) []model.LocationSuggestion {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []model.LocationSuggestion{}
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "municipality")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("autocomplete", "1")

	var fc featureCollection
	if err := c.get(ctx, "/search/", params, &fc); err != nil {
		c.logger.Warn("location search failed", zap.String("query", query), zap.Error(err))
		metrics.RecordLocationLookup("search", "error")
		return []model.LocationSuggestion{}
	}

	out := make([]model.LocationSuggestion, 0, len(fc.Features))
	for _, f := range fc.Features {
		p := f.Properties
		out = append(out, model.LocationSuggestion{
			Label:    p.Label,
			City:     p.City,
			Postcode: p.Postcode,
			Context:  p.Context,
		})
	}
	metrics.RecordLocationLookup("search", "ok")
	return out
}

// CityFromCoordinates reverse-geocodes a position. It returns nil when the
// lookup fails or yields no city name.
func (c *AddressClient) CityFromCoordinates(ctx context.Context, lat, lon float64) *model.CityFromCoordinates {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var fc featureCollection
	if err := c.get(ctx, "/reverse/", params, &fc); err != nil {
		c.logger.Warn("reverse geocoding failed",
			zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		metrics.RecordLocationLookup("reverse", "error")
		return nil
	}
	if len(fc.Features) == 0 {
		metrics.RecordLocationLookup("reverse", "empty")
		return nil
	}

	p := fc.Features[0].Properties
	city := firstNonEmpty(p.City, p.Name, p.Municipality)
	if city == "" {
		metrics.RecordLocationLookup("reverse", "empty")
		return nil
	}

	label := p.Label
	if label == "" {
		label = city
		if p.Postcode != "" {
			label = FormatLabel(city, p.Postcode)
		}
	}

	metrics.RecordLocationLookup("reverse", "ok")
	return &model.CityFromCoordinates{
		City:     city,
		Postcode: p.Postcode,
		Label:    label,
	}
}

// FormatLabel renders a suggestion as "City (Postcode)".
func FormatLabel(city, postcode string) string {
	return fmt.Sprintf("%s (%s)", city, postcode)
}

func (c *AddressClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request address service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("address service returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode address response: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
