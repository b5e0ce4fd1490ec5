package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) RequestSignInLink(c *fiber.Ctx) error {
	input := signInLinkInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	email, err := services.NormalizeSignInEmailInput(input.Email)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid email")
	}

	now := time.Now()
	ipKey := requestLimiterKey(c)
	emailKey := signInEmailLimiterKey(email)
	if !handler.signInIPLimiter.allow(ipKey, now) || !handler.signInEmailLimiter.allow(emailKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, signInLinkLimitMessage)
	}

	if err := handler.authService.RequestSignInLink(c.UserContext(), email); err != nil {
		if errors.Is(err, services.ErrAuthEmailInvalid) {
			return apiError(c, fiber.StatusBadRequest, "invalid email")
		}
		handler.logger.Error("send sign-in link failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to send sign-in link")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"ok":      true,
		"message": handler.i18n.Translate(handler.currentLanguage(c), "auth.link_sent"),
	})
}

func (handler *Handler) VerifySignInLink(c *fiber.Ctx) error {
	user, err := handler.authService.VerifySignInLink(c.Query("token"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSignInLinkExpired):
			return apiError(c, fiber.StatusUnauthorized, "sign-in link expired")
		case errors.Is(err, services.ErrSignInLinkInvalid):
			return apiError(c, fiber.StatusUnauthorized, "invalid sign-in link")
		default:
			handler.logger.Error("verify sign-in link failed", zap.Error(err))
			return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
		}
	}

	handler.signInEmailLimiter.reset(signInEmailLimiterKey(user.Email))
	if err := handler.startSession(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return redirectOrJSON(c, "/", fiber.Map{"ok": true, "user": user})
}

func (handler *Handler) Session(c *fiber.Ctx) error {
	user, err := handler.sessionUser(c)
	if err != nil {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{"authenticated": true, "user": user})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.endSession(c)
	return redirectOrJSON(c, "/", fiber.Map{"ok": true})
}

func signInEmailLimiterKey(email string) string {
	return "email:" + email
}
