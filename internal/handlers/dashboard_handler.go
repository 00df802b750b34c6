package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/fitlyapps/fitly-api/internal/models"
)

type dashboardCoachStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.CoachProfile, error)
}

type DashboardHandler struct {
	coachProfileRepo dashboardCoachStore
}

func NewDashboardHandler(coachProfileRepo dashboardCoachStore) *DashboardHandler {
	return &DashboardHandler{coachProfileRepo: coachProfileRepo}
}

// Overview powers the dashboard banner: coaches learn whether their profile
// is complete enough to appear in the public catalog.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	response := fiber.Map{"role": role}

	if role == models.RoleCoach {
		profile, err := h.coachProfileRepo.GetByUserID(c.Context(), userID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
		}
		response["profile_complete"] = err == nil && profile.CatalogEligible()
	}

	return c.JSON(response)
}
