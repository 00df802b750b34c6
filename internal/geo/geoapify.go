package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fitlyapps/fitly-api/internal/models"
)

const (
	autocompleteURL = "https://api.geoapify.com/v1/geocode/autocomplete"
	reverseURL      = "https://api.geoapify.com/v1/geocode/reverse"

	minSuggestionLimit = 1
	maxSuggestionLimit = 10
)

// ErrMissingAPIKey is a configuration fault: the server refuses to start
// without a Geoapify credential rather than failing on the first lookup.
var ErrMissingAPIKey = errors.New("geoapify api key is required")

// UpstreamError is returned when Geoapify answers with a non-success status.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("geoapify returned status %d", e.StatusCode)
}

// HTTPClient allows injecting a fake transport in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client resolves free-text place names to city suggestions and coordinates
// back to the nearest city, using the Geoapify geocoding API.
type Client struct {
	http            HTTPClient
	autocompleteURL string
	reverseURL      string
	apiKey          string
	limiter         *rate.Limiter
}

func NewClient(apiKey string) (*Client, error) {
	const requestsPerSecond = 5
	return NewClientWithHTTP(
		&http.Client{Timeout: 10 * time.Second},
		apiKey,
		rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	)
}

// NewClientWithHTTP builds a client around a custom transport and rate
// limiter. Used by tests and by callers that share one limiter.
func NewClientWithHTTP(httpClient HTTPClient, apiKey string, limiter *rate.Limiter) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	return &Client{
		http:            httpClient,
		autocompleteURL: autocompleteURL,
		reverseURL:      reverseURL,
		apiKey:          apiKey,
		limiter:         limiter,
	}, nil
}

type geoapifyResult struct {
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	Country     *string  `json:"country"`
	CountryCode *string  `json:"country_code"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	Formatted   *string  `json:"formatted"`
}

type geoapifyResponse struct {
	Results []geoapifyResult `json:"results"`
}

// Autocomplete resolves a free-text place name to an ordered list of city
// suggestions. Blank input yields no suggestions without touching the
// provider. The limit is clamped to [1,10].
func (c *Client) Autocomplete(ctx context.Context, text string, limit int) ([]models.CitySuggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []models.CitySuggestion{}, nil
	}

	if limit < minSuggestionLimit {
		limit = minSuggestionLimit
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}

	params := url.Values{}
	params.Set("text", text)
	params.Set("limit", strconv.Itoa(limit))

	return c.lookup(ctx, c.autocompleteURL, params)
}

// Reverse resolves coordinates to the nearest city, or nil when the provider
// has no city-level result for that location.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*models.CitySuggestion, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	results, err := c.lookup(ctx, c.reverseURL, params)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (c *Client) lookup(ctx context.Context, baseURL string, params url.Values) ([]models.CitySuggestion, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("geoapify rate limit: %w", err)
		}
	}

	params.Set("type", "city")
	params.Set("format", "json")
	params.Set("lang", "fr")
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geoapify request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoapify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	var payload geoapifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode geoapify response: %w", err)
	}

	suggestions := make([]models.CitySuggestion, 0, len(payload.Results))
	for _, item := range payload.Results {
		// A result without a city name or coordinates is unusable for the
		// catalog; drop it and keep the rest of the batch.
		if item.City == nil || *item.City == "" || item.Lat == nil || item.Lon == nil {
			continue
		}
		suggestions = append(suggestions, mapResult(item))
	}
	return suggestions, nil
}

func mapResult(item geoapifyResult) models.CitySuggestion {
	suggestion := models.CitySuggestion{
		City:    *item.City,
		State:   item.State,
		Country: item.Country,
		Lat:     *item.Lat,
		Lon:     *item.Lon,
	}

	if item.CountryCode != nil {
		upper := strings.ToUpper(*item.CountryCode)
		suggestion.CountryCode = &upper
	}

	if item.Formatted != nil && *item.Formatted != "" {
		suggestion.Label = *item.Formatted
	} else {
		parts := make([]string, 0, 3)
		for _, part := range []*string{item.City, item.State, item.Country} {
			if part != nil && *part != "" {
				parts = append(parts, *part)
			}
		}
		suggestion.Label = strings.Join(parts, ", ")
	}

	return suggestion
}
