package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/fitlyapps/fitly-api/internal/models"
	"github.com/fitlyapps/fitly-api/internal/repository"
)

type stubCoachOnboardingStore struct {
	lastUserID int64
	lastInput  repository.CoachOnboardingInput
	profile    *models.CoachProfile
	err        error
}

func (s *stubCoachOnboardingStore) UpdateOnboarding(_ context.Context, userID int64, input repository.CoachOnboardingInput) (*models.CoachProfile, error) {
	s.lastUserID = userID
	s.lastInput = input
	return s.profile, s.err
}

type stubClientOnboardingStore struct {
	lastGoals []string
	profile   *models.ClientProfile
	err       error
}

func (s *stubClientOnboardingStore) UpdateGoals(_ context.Context, _ int64, goals []string) (*models.ClientProfile, error) {
	s.lastGoals = goals
	return s.profile, s.err
}

type stubOnboardingGeocoder struct {
	suggestions []models.CitySuggestion
	err         error
	lastText    string
}

func (s *stubOnboardingGeocoder) Autocomplete(_ context.Context, text string, _ int) ([]models.CitySuggestion, error) {
	s.lastText = text
	return s.suggestions, s.err
}

func onboardingApp(coach *stubCoachOnboardingStore, client *stubClientOnboardingStore, geocoder *stubOnboardingGeocoder, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		c.Locals("role", role)
		return c.Next()
	})
	handler := NewOnboardingHandler(coach, client, geocoder)
	app.Post("/api/v1/coaches/onboarding", handler.CoachOnboarding)
	app.Post("/api/v1/clients/onboarding", handler.ClientOnboarding)
	return app
}

func strPtr(v string) *string { return &v }

func coachOnboardingBody() map[string]any {
	return map[string]any{
		"full_name":    "Ana Duarte",
		"bio":          "Coach spécialisée en préparation physique",
		"specialties":  []string{"Force", " Force ", "Cardio", ""},
		"city":         "Paris",
		"country_code": "fr",
		"monthly_price": 90.0,
	}
}

func performJSON(t *testing.T, app *fiber.App, path string, payload any) (int, map[string]json.RawMessage) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	decoded := map[string]json.RawMessage{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return resp.StatusCode, decoded
}

func TestCoachOnboarding(t *testing.T) {
	price := int64(9000)
	bio := "Coach spécialisée en préparation physique"
	store := &stubCoachOnboardingStore{profile: &models.CoachProfile{
		ID:                1,
		UserID:            42,
		Bio:               &bio,
		City:              strPtr("Paris"),
		CountryCode:       strPtr("FR"),
		MonthlyPriceCents: &price,
		Specialties:       []string{"Force", "Cardio"},
	}}
	geocoder := &stubOnboardingGeocoder{suggestions: []models.CitySuggestion{
		{City: "Paris", CountryCode: strPtr("FR"), Lat: 48.8566, Lon: 2.3522},
	}}
	app := onboardingApp(store, &stubClientOnboardingStore{}, geocoder, models.RoleCoach)

	status, body := performJSON(t, app, "/api/v1/coaches/onboarding", coachOnboardingBody())
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}

	if store.lastUserID != 42 {
		t.Fatalf("expected user 42, got %d", store.lastUserID)
	}
	input := store.lastInput
	if input.CountryCode != "FR" {
		t.Fatalf("expected upper-cased country code, got %q", input.CountryCode)
	}
	if len(input.Specialties) != 2 || input.Specialties[0] != "Force" || input.Specialties[1] != "Cardio" {
		t.Fatalf("expected trimmed deduplicated specialties, got %v", input.Specialties)
	}
	if input.MonthlyPriceCents == nil || *input.MonthlyPriceCents != 9000 {
		t.Fatalf("expected 9000 cents, got %v", input.MonthlyPriceCents)
	}
	if input.Currency != "EUR" {
		t.Fatalf("expected default EUR currency, got %q", input.Currency)
	}
	if input.Latitude == nil || *input.Latitude != 48.8566 {
		t.Fatalf("expected geocoded latitude, got %v", input.Latitude)
	}
	if geocoder.lastText != "Paris, FR" {
		t.Fatalf("expected country-qualified geocode query, got %q", geocoder.lastText)
	}

	var eligible bool
	if err := json.Unmarshal(body["catalog_eligible"], &eligible); err != nil {
		t.Fatalf("decode catalog_eligible: %v", err)
	}
	if !eligible {
		t.Fatal("expected catalog_eligible true")
	}
}

func TestCoachOnboardingSurvivesGeocoderFailure(t *testing.T) {
	store := &stubCoachOnboardingStore{profile: &models.CoachProfile{ID: 1, UserID: 42}}
	geocoder := &stubOnboardingGeocoder{err: errors.New("upstream down")}
	app := onboardingApp(store, &stubClientOnboardingStore{}, geocoder, models.RoleCoach)

	status, _ := performJSON(t, app, "/api/v1/coaches/onboarding", coachOnboardingBody())
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 despite geocoder failure, got %d", status)
	}
	if store.lastInput.Latitude != nil || store.lastInput.Longitude != nil {
		t.Fatal("expected no coordinates when geocoding fails")
	}
}

func TestCoachOnboardingRejectsWrongRole(t *testing.T) {
	app := onboardingApp(&stubCoachOnboardingStore{}, &stubClientOnboardingStore{}, &stubOnboardingGeocoder{}, models.RoleClient)

	status, _ := performJSON(t, app, "/api/v1/coaches/onboarding", coachOnboardingBody())
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
}

func TestCoachOnboardingValidatesPayload(t *testing.T) {
	app := onboardingApp(&stubCoachOnboardingStore{}, &stubClientOnboardingStore{}, &stubOnboardingGeocoder{}, models.RoleCoach)

	body := coachOnboardingBody()
	body["country_code"] = "FRA"

	status, decoded := performJSON(t, app, "/api/v1/coaches/onboarding", body)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %v", status, decoded)
	}
}

func TestClientOnboarding(t *testing.T) {
	client := &stubClientOnboardingStore{profile: &models.ClientProfile{ID: 3, UserID: 42, Goals: []string{"Perte de poids"}}}
	app := onboardingApp(&stubCoachOnboardingStore{}, client, &stubOnboardingGeocoder{}, models.RoleClient)

	status, _ := performJSON(t, app, "/api/v1/clients/onboarding", map[string]any{
		"goals": []string{"Perte de poids", " Perte de poids ", "Endurance"},
	})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(client.lastGoals) != 2 || client.lastGoals[0] != "Perte de poids" || client.lastGoals[1] != "Endurance" {
		t.Fatalf("expected normalized goals, got %v", client.lastGoals)
	}
}

func TestClientOnboardingRejectsWrongRole(t *testing.T) {
	app := onboardingApp(&stubCoachOnboardingStore{}, &stubClientOnboardingStore{}, &stubOnboardingGeocoder{}, models.RoleCoach)

	status, _ := performJSON(t, app, "/api/v1/clients/onboarding", map[string]any{"goals": []string{"Endurance"}})
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
}
