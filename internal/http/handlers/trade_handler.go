package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "tradebinder/internal/log"
	"tradebinder/internal/services"
	"tradebinder/internal/validate"
)

type TradeHandler struct {
	Trades     *services.TradeService
	Settlement *services.SettlementService
}

type proposeRequest struct {
	RecipientID string              `json:"recipient_id"`
	Message     string              `json:"message"`
	Offered     []services.ItemSpec `json:"offered"`
	Requested   []services.ItemSpec `json:"requested"`
}

func (h *TradeHandler) Propose(c *fiber.Ctx) error {
	var req proposeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	if _, ok := validate.ID(req.RecipientID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing recipient_id"})
	}
	msg, ok := validate.Message(req.Message)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message too long"})
	}
	for _, spec := range append(append([]services.ItemSpec{}, req.Offered...), req.Requested...) {
		if _, ok := validate.ID(spec.CardID); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad card id"})
		}
		if _, ok := validate.Qty(spec.Qty); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad quantity"})
		}
		if _, ok := validate.Condition(string(spec.Condition)); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad condition"})
		}
	}

	t, err := h.Trades.Propose(callerID(c), req.RecipientID, msg, req.Offered, req.Requested)
	if err != nil {
		applog.Error(c, "trade.propose.fail", err, map[string]any{"recipient": req.RecipientID})
		return fail(c, err)
	}
	applog.Audit(c, "trade.propose", map[string]any{"trade": t.ID, "recipient": req.RecipientID})
	return c.Status(fiber.StatusCreated).JSON(t)
}

type respondRequest struct {
	Action  string `json:"action"` // accept | decline
	Message string `json:"message"`
}

func (h *TradeHandler) Respond(c *fiber.Ctx) error {
	tradeID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad trade id"})
	}
	var req respondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	if req.Action != "accept" && req.Action != "decline" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "action must be accept or decline"})
	}
	msg, ok := validate.Message(req.Message)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message too long"})
	}

	t, err := h.Trades.Respond(tradeID, callerID(c), req.Action == "accept", msg)
	if err != nil {
		applog.Error(c, "trade.respond.fail", err, map[string]any{"trade": tradeID, "action": req.Action})
		return fail(c, err)
	}
	applog.Audit(c, "trade.respond", map[string]any{"trade": tradeID, "action": req.Action})
	return c.JSON(t)
}

func (h *TradeHandler) Cancel(c *fiber.Ctx) error {
	tradeID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad trade id"})
	}
	t, err := h.Trades.Cancel(tradeID, callerID(c))
	if err != nil {
		applog.Error(c, "trade.cancel.fail", err, map[string]any{"trade": tradeID})
		return fail(c, err)
	}
	applog.Audit(c, "trade.cancel", map[string]any{"trade": tradeID})
	return c.JSON(t)
}

func (h *TradeHandler) Settle(c *fiber.Ctx) error {
	tradeID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad trade id"})
	}
	report, err := h.Settlement.Settle(tradeID, callerID(c))
	if err != nil {
		applog.Error(c, "trade.settle.fail", err, map[string]any{"trade": tradeID})
		return fail(c, err)
	}
	applog.Audit(c, "trade.settle", map[string]any{"trade": tradeID, "transfers": len(report.Transfers)})
	return c.JSON(report)
}

func (h *TradeHandler) Get(c *fiber.Ctx) error {
	tradeID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad trade id"})
	}
	t, items, err := h.Trades.Get(tradeID, callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"trade": t, "items": items})
}

func (h *TradeHandler) List(c *fiber.Ctx) error {
	trades, err := h.Trades.ListByUser(callerID(c))
	if err != nil {
		applog.Error(c, "trade.list.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"trades": trades})
}
