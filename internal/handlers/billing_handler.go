package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/fitlyapps/fitly-api/internal/models"
)

type connectAccountCreator interface {
	Configured() bool
	CreateConnectAccount() (string, error)
}

type BillingHandler struct {
	billing connectAccountCreator
}

func NewBillingHandler(billing connectAccountCreator) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// CreateConnectAccount provisions a Stripe Express account for the
// authenticated coach so they can receive payouts.
func (h *BillingHandler) CreateConnectAccount(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	if h.billing == nil || !h.billing.Configured() {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Stripe non configuré. Ajoute STRIPE_SECRET_KEY dans .env."})
	}

	accountID, err := h.billing.CreateConnectAccount()
	if err != nil {
		log.Printf("create stripe connect account: %v", err)
		return c.Status(fiber.StatusBadGateway).
			JSON(fiber.Map{"error": "Failed to create payment account, try again"})
	}

	return c.JSON(fiber.Map{"account_id": accountID})
}
