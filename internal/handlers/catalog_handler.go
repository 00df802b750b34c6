package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/fitlyapps/fitly-api/internal/models"
	"github.com/fitlyapps/fitly-api/internal/repository"
	"github.com/fitlyapps/fitly-api/internal/services"
)

type catalogStore interface {
	ListCatalog(ctx context.Context, q repository.CatalogQuery) ([]models.CoachProfile, error)
	GetCatalogByID(ctx context.Context, id int64) (*models.CoachProfile, error)
}

type catalogFilter interface {
	Filter(ctx context.Context, profiles []models.CoachProfile, criteria services.FilterCriteria) []models.CoachProfile
}

type CatalogHandler struct {
	store  catalogStore
	filter catalogFilter
}

func NewCatalogHandler(store catalogStore, filter catalogFilter) *CatalogHandler {
	return &CatalogHandler{store: store, filter: filter}
}

// ListCoaches serves the public catalog. The store returns catalog-eligible
// profiles (optionally narrowed to a country in SQL); free-text, specialty
// and city/radius criteria are applied in memory, then the result is sorted
// and projected into display-ready cards.
func (h *CatalogHandler) ListCoaches(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	radius, err := parseNonNegativeFloat(c.Query("radius"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "radius must be a valid non-negative number"})
	}

	profiles, err := h.store.ListCatalog(c.Context(), repository.CatalogQuery{
		Country: strings.TrimSpace(c.Query("country")),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch coaches"})
	}

	criteria := services.FilterCriteria{
		Query:       strings.TrimSpace(c.Query("q")),
		Specialties: splitCSV(c.Query("specialty")),
		City:        strings.TrimSpace(c.Query("city")),
		RadiusKm:    radius,
	}

	filtered := h.filter.Filter(c.Context(), profiles, criteria)
	services.SortProfiles(filtered)

	total := len(filtered)
	start, end := pageBounds(page, limit, total)
	view := services.BuildCatalogView(filtered[start:end])

	return c.JSON(fiber.Map{
		"coaches":     view.Coaches,
		"count_label": services.CountLabel(total),
		"pagination":  buildPaginationMeta(page, limit, total),
	})
}

func (h *CatalogHandler) GetCoachDetail(c *fiber.Ctx) error {
	coachID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || coachID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coach id"})
	}

	profile, err := h.store.GetCatalogByID(c.Context(), coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coach not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch coach"})
	}

	view := services.BuildCatalogView([]models.CoachProfile{*profile})
	card := view.Coaches[0]

	return c.JSON(fiber.Map{
		"coach": fiber.Map{
			"card":             card,
			"years_experience": profile.YearsExperience,
			"currency":         profile.Currency,
		},
	})
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
