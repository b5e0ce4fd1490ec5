package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.insightService.Stats(user.ID)
	if err != nil {
		return insightsAPIError(c, err)
	}
	return c.JSON(fiber.Map{
		"stats":      stats,
		"risk_label": handler.viewService.RiskLabel(stats.RiskLevel, handler.currentLanguage(c)),
	})
}

// GetNarrative answers 200 even when the provider fails; the body then holds
// the localized fallback text.
func (handler *Handler) GetNarrative(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	narrative, err := handler.insightService.Narrative(c.UserContext(), user.ID, handler.currentLanguage(c))
	if err != nil {
		return insightsAPIError(c, err)
	}
	return c.JSON(narrative)
}

func insightsAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInsufficientData):
		return apiError(c, fiber.StatusConflict, "not enough data")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch entries")
	}
}
