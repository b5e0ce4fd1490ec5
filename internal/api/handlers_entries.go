package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
)

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.entryService.ListEntries(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch entries")
	}
	if entries == nil {
		entries = []models.SymptomEntry{}
	}
	for index := range entries {
		if entries[index].Triggers == nil {
			entries[index].Triggers = []string{}
		}
	}
	return c.JSON(entries)
}

func (handler *Handler) GetTodayEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	draft, stored, err := handler.entryService.TodayDraft(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch entries")
	}
	return c.JSON(fiber.Map{"entry": draft, "stored": stored})
}

// SaveTodayEntry writes today's log. Only the current calendar day in the
// configured timezone can be written.
func (handler *Handler) SaveTodayEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload, err := parseEntryPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	draft, _, err := handler.entryService.TodayDraft(user.ID)
	if err != nil {
		return saveEntryAPIError(c, err)
	}

	saved, err := handler.entryService.SaveToday(user.ID, applyEntryPayload(services.InputFromEntry(draft), payload))
	if err != nil {
		return saveEntryAPIError(c, err)
	}
	if saved.Triggers == nil {
		saved.Triggers = []string{}
	}
	return c.JSON(saved)
}
