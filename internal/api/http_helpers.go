package api

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderAccept)), fiber.MIMEApplicationJSON)
}

// redirectOrJSON answers API clients with payload and browsers with a 303.
func redirectOrJSON(c *fiber.Ctx, path string, payload fiber.Map) error {
	if !acceptsJSON(c) {
		return c.Redirect(path, fiber.StatusSeeOther)
	}
	return c.JSON(payload)
}

// localRedirectTarget returns raw when it points at a path on this host,
// otherwise fallback.
func localRedirectTarget(raw, fallback string) string {
	target := strings.TrimSpace(raw)
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return fallback
	}
	return target
}
