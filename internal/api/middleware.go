package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/models"
)

const (
	authCookieName     = "bloom_auth"
	languageCookieName = "bloom_lang"
	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
)

// AuthRequired loads the session user into the request context. API callers
// get a 401, browsers are sent back to the root page.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.sessionUser(c)
	if err != nil {
		if strings.HasPrefix(c.Path(), "/api/") {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

// LanguageMiddleware picks the request language from the ?lang query, the
// language cookie, then Accept-Language, and keeps the cookie in sync.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	stored := c.Cookies(languageCookieName)

	var language string
	switch {
	case c.Query("lang") != "":
		language = handler.i18n.NormalizeLanguage(c.Query("lang"))
	case stored != "":
		language = handler.i18n.NormalizeLanguage(stored)
	default:
		language = handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}

	if stored != language {
		handler.rememberLanguage(c, language)
	}
	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) rememberLanguage(c *fiber.Ctx, language string) {
	c.Cookie(handler.cookie(languageCookieName, language, time.Now().AddDate(1, 0, 0), false))
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}
