package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// SetLanguage stores the chosen language and returns to ?next.
func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	language := handler.i18n.NormalizeLanguage(c.Params("lang"))
	handler.rememberLanguage(c, language)
	c.Locals(contextLanguageKey, language)

	return redirectOrJSON(c, localRedirectTarget(c.Query("next"), "/"), fiber.Map{
		"ok":       true,
		"language": language,
	})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
