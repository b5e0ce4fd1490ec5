package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/bloom/internal/models"
)

var (
	errNoSession      = errors.New("no session cookie")
	errSessionInvalid = errors.New("invalid session token")
)

type sessionClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// issueSessionToken signs an HS256 token for userID valid until expiresAt.
func issueSessionToken(secret []byte, userID uint, issuedAt, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseSessionToken returns the user id carried by raw. Tokens without an
// expiry or signed with anything other than HS256 are rejected.
func parseSessionToken(secret []byte, raw string) (uint, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.UserID == 0 {
		return 0, errSessionInvalid
	}
	return claims.UserID, nil
}

func (handler *Handler) sessionUser(c *fiber.Ctx) (*models.User, error) {
	raw := strings.TrimSpace(c.Cookies(authCookieName))
	if raw == "" {
		return nil, errNoSession
	}
	userID, err := parseSessionToken(handler.secretKey, raw)
	if err != nil {
		return nil, err
	}
	user, err := handler.authService.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (handler *Handler) startSession(c *fiber.Ctx, user *models.User) error {
	now := time.Now()
	expiresAt := now.Add(sessionTTL)
	token, err := issueSessionToken(handler.secretKey, user.ID, now, expiresAt)
	if err != nil {
		return err
	}
	c.Cookie(handler.cookie(authCookieName, token, expiresAt, true))
	return nil
}

func (handler *Handler) endSession(c *fiber.Ctx) {
	c.Cookie(handler.cookie(authCookieName, "", time.Unix(0, 0), true))
}

func (handler *Handler) cookie(name, value string, expires time.Time, httpOnly bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: httpOnly,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
