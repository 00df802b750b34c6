package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

var errInvalidNumber = errors.New("invalid number")

// parseAuthUserID reads the user id placed in locals by the auth middleware.
func parseAuthUserID(c *fiber.Ctx) (int64, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return 0, errors.New("missing user_id")
	}
	return strconv.ParseInt(raw, 10, 64)
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseNonNegativeFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0, errInvalidNumber
	}
	return value, nil
}
