package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tradebinder/internal/domain"
	applog "tradebinder/internal/log"
	"tradebinder/internal/services"
	"tradebinder/internal/validate"
)

type CollectionHandler struct {
	Collection *services.CollectionService
}

type collectionEditRequest struct {
	CardID    string `json:"card_id"`
	Condition string `json:"condition"`
	Foil      bool   `json:"foil"`
	Qty       int    `json:"qty"`
}

func (h *CollectionHandler) List(c *fiber.Ctx) error {
	rows, err := h.Collection.List(callerID(c))
	if err != nil {
		applog.Error(c, "collection.list.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"collection": rows})
}

func (h *CollectionHandler) Add(c *fiber.Ctx) error {
	req, cond, ok := parseCollectionEdit(c)
	if !ok {
		return nil
	}
	if err := h.Collection.Add(callerID(c), req.CardID, cond, req.Foil, req.Qty); err != nil {
		applog.Error(c, "collection.add.fail", err, map[string]any{"card": req.CardID})
		return fail(c, err)
	}
	applog.Audit(c, "collection.add", map[string]any{"card": req.CardID, "qty": req.Qty})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CollectionHandler) Remove(c *fiber.Ctx) error {
	req, cond, ok := parseCollectionEdit(c)
	if !ok {
		return nil
	}
	if err := h.Collection.Remove(callerID(c), req.CardID, cond, req.Foil, req.Qty); err != nil {
		applog.Error(c, "collection.remove.fail", err, map[string]any{"card": req.CardID})
		return fail(c, err)
	}
	applog.Audit(c, "collection.remove", map[string]any{"card": req.CardID, "qty": req.Qty})
	return c.SendStatus(fiber.StatusNoContent)
}

// parseCollectionEdit validates the shared add/remove body; on failure the
// 400 response has already been written and ok is false.
func parseCollectionEdit(c *fiber.Ctx) (collectionEditRequest, domain.Condition, bool) {
	var req collectionEditRequest
	if err := c.BodyParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
		return req, "", false
	}
	if _, ok := validate.ID(req.CardID); !ok {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad card id"})
		return req, "", false
	}
	if _, ok := validate.Qty(req.Qty); !ok {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad quantity"})
		return req, "", false
	}
	cond, ok := validate.Condition(req.Condition)
	if !ok {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad condition"})
		return req, "", false
	}
	return req, cond, true
}
