package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tradebinder/internal/services"
)

// fail maps service errors onto HTTP statuses with a stable error body.
// Unknown errors become a generic 500 so internals never leak.
func fail(c *fiber.Ctx, err error) error {
	var (
		insufficient *services.InsufficientInventoryError
		shortfall    *services.SettlementShortfallError
		illegal      *services.IllegalTransitionError
	)
	switch {
	case errors.Is(err, services.ErrTradeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotConnected),
		errors.Is(err, services.ErrSelfTrade),
		errors.Is(err, services.ErrCardUnknown):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "card_id": insufficient.CardID})
	case errors.As(err, &shortfall):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "card_id": shortfall.CardID})
	case errors.As(err, &illegal):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "status": illegal.Status})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
}

// callerID returns the authenticated user id placed by RequireUser.
func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}
