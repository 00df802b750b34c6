package handlers

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fitlyapps/fitly-api/internal/models"
	"github.com/fitlyapps/fitly-api/internal/repository"
)

type coachOnboardingStore interface {
	UpdateOnboarding(ctx context.Context, userID int64, req repository.CoachOnboardingInput) (*models.CoachProfile, error)
}

type clientOnboardingStore interface {
	UpdateGoals(ctx context.Context, userID int64, goals []string) (*models.ClientProfile, error)
}

type onboardingGeocoder interface {
	Autocomplete(ctx context.Context, text string, limit int) ([]models.CitySuggestion, error)
}

type OnboardingHandler struct {
	coachProfileRepo  coachOnboardingStore
	clientProfileRepo clientOnboardingStore
	geocoder          onboardingGeocoder
}

func NewOnboardingHandler(
	coachProfileRepo coachOnboardingStore,
	clientProfileRepo clientOnboardingStore,
	geocoder onboardingGeocoder,
) *OnboardingHandler {
	return &OnboardingHandler{
		coachProfileRepo:  coachProfileRepo,
		clientProfileRepo: clientProfileRepo,
		geocoder:          geocoder,
	}
}

type coachOnboardingRequest struct {
	FullName        string   `json:"full_name"`
	Bio             string   `json:"bio"`
	Specialties     []string `json:"specialties"`
	City            string   `json:"city"`
	CountryCode     string   `json:"country_code"`
	YearsExperience *int     `json:"years_experience"`
	MonthlyPrice    *float64 `json:"monthly_price"`
	Currency        string   `json:"currency"`
}

type clientOnboardingRequest struct {
	Goals []string `json:"goals"`
}

func (h *OnboardingHandler) CoachOnboarding(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req coachOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateCoachOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	input := repository.CoachOnboardingInput{
		FullName:        strings.TrimSpace(req.FullName),
		Bio:             strings.TrimSpace(req.Bio),
		Specialties:     normalizeSpecialties(req.Specialties),
		City:            strings.TrimSpace(req.City),
		CountryCode:     strings.ToUpper(strings.TrimSpace(req.CountryCode)),
		YearsExperience: req.YearsExperience,
		Currency:        normalizeCurrency(req.Currency),
	}

	// Prices arrive in major units and are stored in cents, like the web form.
	if req.MonthlyPrice != nil {
		cents := int64(math.Round(*req.MonthlyPrice * 100))
		input.MonthlyPriceCents = &cents
	}

	// Best-effort geocoding: the catalog can still resolve the city per
	// request, so a provider hiccup must not block onboarding.
	if lat, lon, ok := h.geocodeCity(c.Context(), input.City, input.CountryCode); ok {
		input.Latitude = &lat
		input.Longitude = &lon
	}

	profile, err := h.coachProfileRepo.UpdateOnboarding(c.Context(), userID, input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":          profile,
		"catalog_eligible": profile.CatalogEligible(),
	})
}

func (h *OnboardingHandler) ClientOnboarding(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req clientOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateClientOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.clientProfileRepo.UpdateGoals(c.Context(), userID, normalizeSpecialties(req.Goals))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

func (h *OnboardingHandler) geocodeCity(ctx context.Context, city, countryCode string) (float64, float64, bool) {
	if h.geocoder == nil || city == "" {
		return 0, 0, false
	}

	query := city
	if countryCode != "" {
		query = city + ", " + countryCode
	}

	suggestions, err := h.geocoder.Autocomplete(ctx, query, 5)
	if err != nil {
		log.Printf("geocode %q during onboarding: %v", city, err)
		return 0, 0, false
	}
	if len(suggestions) == 0 {
		return 0, 0, false
	}

	match := suggestions[0]
	for _, suggestion := range suggestions {
		if strings.EqualFold(suggestion.City, city) {
			match = suggestion
			break
		}
	}
	return match.Lat, match.Lon, true
}

// normalizeSpecialties trims entries, drops blanks and deduplicates by value
// while preserving order.
func normalizeSpecialties(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	return normalized
}

func normalizeCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return "EUR"
	}
	return currency
}
