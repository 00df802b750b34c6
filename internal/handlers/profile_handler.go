package handlers

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/fitlyapps/fitly-api/internal/models"
	"github.com/fitlyapps/fitly-api/internal/repository"
)

type coachProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.CoachProfile, error)
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateCoachProfileInput) (*models.CoachProfile, error)
}

type clientProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.ClientProfile, error)
}

type ProfileHandler struct {
	coachProfileRepo  coachProfileStore
	clientProfileRepo clientProfileStore
}

func NewProfileHandler(coachProfileRepo coachProfileStore, clientProfileRepo clientProfileStore) *ProfileHandler {
	return &ProfileHandler{
		coachProfileRepo:  coachProfileRepo,
		clientProfileRepo: clientProfileRepo,
	}
}

func (h *ProfileHandler) GetCoachProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.coachProfileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{
		"profile":          profile,
		"catalog_eligible": profile.CatalogEligible(),
	})
}

type updateCoachProfileRequest struct {
	FullName     *string   `json:"full_name"`
	AvatarURL    *string   `json:"avatar_url"`
	Bio          *string   `json:"bio"`
	Specialties  *[]string `json:"specialties"`
	City         *string   `json:"city"`
	CountryCode  *string   `json:"country_code"`
	YearsExp     *int      `json:"years_experience"`
	MonthlyPrice *float64  `json:"monthly_price"`
	Currency     *string   `json:"currency"`
}

func (h *ProfileHandler) UpdateCoachProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateCoachProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	input := repository.UpdateCoachProfileInput{
		FullName:        req.FullName,
		AvatarURL:       req.AvatarURL,
		Bio:             req.Bio,
		YearsExperience: req.YearsExp,
	}
	if req.Specialties != nil {
		normalized := normalizeSpecialties(*req.Specialties)
		if len(normalized) == 0 {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "specialties must contain at least one item"})
		}
		input.Specialties = &normalized
	}
	if req.City != nil {
		city := strings.TrimSpace(*req.City)
		input.City = &city
	}
	if req.CountryCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.CountryCode))
		if len(code) != 2 {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "country_code must be a 2-letter ISO code"})
		}
		input.CountryCode = &code
	}
	if req.MonthlyPrice != nil {
		if *req.MonthlyPrice <= 0 {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "monthly_price must be greater than 0"})
		}
		cents := int64(math.Round(*req.MonthlyPrice * 100))
		input.MonthlyPriceCents = &cents
	}
	if req.Currency != nil {
		currency := normalizeCurrency(*req.Currency)
		input.Currency = &currency
	}

	profile, err := h.coachProfileRepo.UpdatePartial(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":          profile,
		"catalog_eligible": profile.CatalogEligible(),
	})
}

func (h *ProfileHandler) GetClientProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.clientProfileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}
