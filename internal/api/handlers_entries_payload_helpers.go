package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

var errEntryPayloadEmpty = errors.New("entry payload is empty")

func parseEntryPayload(c *fiber.Ctx) (entryPayload, error) {
	payload := entryPayload{}
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return payload, errEntryPayloadEmpty
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func applyEntryPayload(input services.EntryInput, payload entryPayload) services.EntryInput {
	setScore := func(target *int, value *int) {
		if value != nil {
			*target = *value
		}
	}
	setScore(&input.PainLevel, payload.PainLevel)
	setScore(&input.FatigueLevel, payload.FatigueLevel)
	setScore(&input.BloatingLevel, payload.BloatingLevel)
	setScore(&input.MoodLevel, payload.MoodLevel)
	setScore(&input.NauseaLevel, payload.NauseaLevel)

	if payload.BleedingLevel != nil {
		input.BleedingLevel = *payload.BleedingLevel
	}
	if payload.Triggers != nil {
		input.Triggers = payload.Triggers
	}
	if payload.Notes != nil {
		input.Notes = *payload.Notes
	}
	return input
}

func saveEntryAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidScore):
		return apiError(c, fiber.StatusBadRequest, "invalid score")
	case errors.Is(err, services.ErrInvalidBleedingLevel):
		return apiError(c, fiber.StatusBadRequest, "invalid bleeding level")
	case errors.Is(err, services.ErrInvalidTriggers):
		return apiError(c, fiber.StatusBadRequest, "invalid triggers")
	case errors.Is(err, services.ErrEntryLoadFailed):
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch entries")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save entry")
	}
}
