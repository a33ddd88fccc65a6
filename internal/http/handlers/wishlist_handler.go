package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "tradebinder/internal/log"
	"tradebinder/internal/services"
	"tradebinder/internal/validate"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

type wishlistRequest struct {
	CardID string `json:"card_id"`
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.Wish.List(callerID(c))
	if err != nil {
		applog.Error(c, "wishlist.list.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"wishlist": items})
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	var req wishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	if _, ok := validate.ID(req.CardID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing card_id"})
	}
	if err := h.Wish.Save(callerID(c), req.CardID); err != nil {
		applog.Error(c, "wishlist.save.fail", err, map[string]any{"card": req.CardID})
		return fail(c, err)
	}
	applog.Audit(c, "wishlist.save", map[string]any{"card": req.CardID})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	var req wishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	if _, ok := validate.ID(req.CardID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing card_id"})
	}
	if err := h.Wish.Unsave(callerID(c), req.CardID); err != nil {
		applog.Error(c, "wishlist.unsave.fail", err, map[string]any{"card": req.CardID})
		return fail(c, err)
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"card": req.CardID})
	return c.SendStatus(fiber.StatusNoContent)
}
