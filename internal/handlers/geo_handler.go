package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fitlyapps/fitly-api/internal/geo"
	"github.com/fitlyapps/fitly-api/internal/models"
)

const defaultSuggestionLimit = 6

type cityLookup interface {
	Autocomplete(ctx context.Context, text string, limit int) ([]models.CitySuggestion, error)
	Reverse(ctx context.Context, lat, lon float64) (*models.CitySuggestion, error)
}

type GeoHandler struct {
	geocoder cityLookup
	cache    geo.SuggestionCache
}

func NewGeoHandler(geocoder cityLookup, cache geo.SuggestionCache) *GeoHandler {
	return &GeoHandler{geocoder: geocoder, cache: cache}
}

// Cities answers both lookup directions: `?lat=..&lon=..` reverse-resolves
// coordinates to the nearest city, `?text=..` autocompletes a place name.
// Autocomplete results are cached for an hour keyed on the normalized text.
func (h *GeoHandler) Cities(c *fiber.Ctx) error {
	latRaw := c.Query("lat")
	lonRaw := c.Query("lon")

	if latRaw != "" && lonRaw != "" {
		return h.reverse(c, latRaw, lonRaw)
	}

	if text := strings.TrimSpace(c.Query("text")); text != "" {
		return h.autocomplete(c, text)
	}

	return c.JSON(fiber.Map{"results": []models.CitySuggestion{}})
}

func (h *GeoHandler) autocomplete(c *fiber.Ctx, text string) error {
	limit := parsePositiveInt(c.Query("limit"), defaultSuggestionLimit)

	if h.cache != nil {
		if cached, ok := h.cache.Get(c.Context(), text); ok {
			return c.JSON(fiber.Map{"results": cached})
		}
	}

	results, err := h.geocoder.Autocomplete(c.Context(), text, limit)
	if err != nil {
		return upstreamError(c, err)
	}

	if h.cache != nil {
		h.cache.Set(c.Context(), text, results)
	}

	return c.JSON(fiber.Map{"results": results})
}

func (h *GeoHandler) reverse(c *fiber.Ctx, latRaw, lonRaw string) error {
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lat must be a valid number"})
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lon must be a valid number"})
	}

	result, err := h.geocoder.Reverse(c.Context(), lat, lon)
	if err != nil {
		return upstreamError(c, err)
	}

	results := []models.CitySuggestion{}
	if result != nil {
		results = append(results, *result)
	}
	return c.JSON(fiber.Map{"results": results})
}

func upstreamError(c *fiber.Ctx, err error) error {
	var upstream *geo.UpstreamError
	if errors.As(err, &upstream) {
		return c.Status(fiber.StatusBadGateway).
			JSON(fiber.Map{"error": "Geo lookup temporarily unavailable, try again"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Geo lookup failed"})
}
