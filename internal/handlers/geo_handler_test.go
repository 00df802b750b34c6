package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fitlyapps/fitly-api/internal/geo"
	"github.com/fitlyapps/fitly-api/internal/models"
)

type stubCityLookup struct {
	suggestions       []models.CitySuggestion
	autocompleteErr   error
	autocompleteCalls int
	lastText          string
	lastLimit         int

	reverseResult *models.CitySuggestion
	reverseErr    error
	lastLat       float64
	lastLon       float64
}

func (s *stubCityLookup) Autocomplete(_ context.Context, text string, limit int) ([]models.CitySuggestion, error) {
	s.autocompleteCalls++
	s.lastText = text
	s.lastLimit = limit
	return s.suggestions, s.autocompleteErr
}

func (s *stubCityLookup) Reverse(_ context.Context, lat, lon float64) (*models.CitySuggestion, error) {
	s.lastLat = lat
	s.lastLon = lon
	return s.reverseResult, s.reverseErr
}

func geoApp(lookup *stubCityLookup, cache geo.SuggestionCache) *fiber.App {
	app := fiber.New()
	handler := NewGeoHandler(lookup, cache)
	app.Get("/api/geo/cities", handler.Cities)
	return app
}

type geoResponse struct {
	Results []models.CitySuggestion `json:"results"`
}

func TestCitiesAutocomplete(t *testing.T) {
	lookup := &stubCityLookup{suggestions: []models.CitySuggestion{
		{City: "Paris", CountryCode: strPtr("FR"), Lat: 48.8566, Lon: 2.3522, Label: "Paris, France"},
	}}
	app := geoApp(lookup, nil)

	req := httptest.NewRequest("GET", "/api/geo/cities?text=par&limit=3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].City != "Paris" {
		t.Fatalf("unexpected results: %+v", body.Results)
	}
	if lookup.lastText != "par" || lookup.lastLimit != 3 {
		t.Fatalf("unexpected lookup call: text=%q limit=%d", lookup.lastText, lookup.lastLimit)
	}
}

func TestCitiesBlankTextReturnsEmpty(t *testing.T) {
	lookup := &stubCityLookup{}
	app := geoApp(lookup, nil)

	req := httptest.NewRequest("GET", "/api/geo/cities?text=%20%20", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Results) != 0 {
		t.Fatalf("expected no results, got %+v", body.Results)
	}
	if lookup.autocompleteCalls != 0 {
		t.Fatal("expected no upstream call for blank text")
	}
}

func TestCitiesAutocompleteUsesCache(t *testing.T) {
	lookup := &stubCityLookup{suggestions: []models.CitySuggestion{
		{City: "Paris", CountryCode: strPtr("FR"), Lat: 48.8566, Lon: 2.3522},
	}}
	app := geoApp(lookup, geo.NewMemoryCache(time.Hour))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/geo/cities?text=paris", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}

		var body geoResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(body.Results) != 1 || body.Results[0].City != "Paris" {
			t.Fatalf("request %d: unexpected results %+v", i, body.Results)
		}
	}

	if lookup.autocompleteCalls != 1 {
		t.Fatalf("expected a single upstream call, got %d", lookup.autocompleteCalls)
	}
}

func TestCitiesUpstreamFailureMapsToBadGateway(t *testing.T) {
	lookup := &stubCityLookup{autocompleteErr: &geo.UpstreamError{StatusCode: 503}}
	app := geoApp(lookup, nil)

	req := httptest.NewRequest("GET", "/api/geo/cities?text=paris", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Error != "Geo lookup temporarily unavailable, try again" {
		t.Fatalf("unexpected error message %q", body.Error)
	}
}

func TestCitiesOtherFailureMapsToInternalError(t *testing.T) {
	lookup := &stubCityLookup{autocompleteErr: errors.New("dial timeout")}
	app := geoApp(lookup, nil)

	req := httptest.NewRequest("GET", "/api/geo/cities?text=paris", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestCitiesReverse(t *testing.T) {
	lookup := &stubCityLookup{reverseResult: &models.CitySuggestion{
		City: "Lyon", CountryCode: strPtr("FR"), Lat: 45.764, Lon: 4.8357,
	}}
	app := geoApp(lookup, nil)

	req := httptest.NewRequest("GET", "/api/geo/cities?lat=45.76&lon=4.83", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].City != "Lyon" {
		t.Fatalf("unexpected results: %+v", body.Results)
	}
	if lookup.lastLat != 45.76 || lookup.lastLon != 4.83 {
		t.Fatalf("unexpected reverse call: lat=%v lon=%v", lookup.lastLat, lookup.lastLon)
	}
}

func TestCitiesReverseNoMatch(t *testing.T) {
	app := geoApp(&stubCityLookup{}, nil)

	req := httptest.NewRequest("GET", "/api/geo/cities?lat=0&lon=0", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var body geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Results) != 0 {
		t.Fatalf("expected empty results, got %+v", body.Results)
	}
}

func TestCitiesReverseRejectsBadCoordinates(t *testing.T) {
	app := geoApp(&stubCityLookup{}, nil)

	req := httptest.NewRequest("GET", "/api/geo/cities?lat=abc&lon=4.83", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
