package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "tradebinder/internal/log"
	"tradebinder/internal/repos"
	"tradebinder/internal/validate"
)

type CardHandler struct {
	Cards *repos.CardRepo
}

// Search lists the card catalog, optionally filtered by name and set.
func (h *CardHandler) Search(c *fiber.Ctx) error {
	q := ""
	if raw := c.Query("q"); raw != "" {
		var ok bool
		if q, ok = validate.Q(raw); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad query"})
		}
	}
	setCode := c.Query("set")

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	cards, err := h.Cards.Search(q, setCode, limit, offset)
	if err != nil {
		applog.Error(c, "cards.search.fail", err, map[string]any{"q": q})
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"cards": cards})
}
