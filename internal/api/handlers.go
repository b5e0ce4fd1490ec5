package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/bloom/internal/i18n"
	"github.com/terraincognita07/bloom/internal/insight"
	"github.com/terraincognita07/bloom/internal/mail"
	"github.com/terraincognita07/bloom/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Settings holds the runtime values the handler needs from configuration.
type Settings struct {
	SecretKey      string
	BaseURL        string
	Location       *time.Location
	CookieSecure   bool
	RiskPolicy     services.RiskPolicy
	InsightTimeout time.Duration
}

func NewHandler(database *gorm.DB, settings Settings, i18nManager *i18n.Manager, provider insight.Provider, mailer mail.Mailer, logger *zap.Logger) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if provider == nil {
		return nil, errors.New("insight provider is required")
	}
	if mailer == nil {
		return nil, errors.New("mailer is required")
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := &Handler{
		secretKey:          []byte(settings.SecretKey),
		location:           settings.Location,
		cookieSecure:       settings.CookieSecure,
		i18n:               i18nManager,
		logger:             logger.Named("api"),
		signInIPLimiter:    newAttemptLimiter(signInLinkIPLimit, signInLinkLimitWindow),
		signInEmailLimiter: newAttemptLimiter(signInLinkEmailLimit, signInLinkLimitWindow),
	}
	return handler.withDependencies(database, settings, provider, mailer), nil
}

// SignInLinkPruner exposes the auth service to the background link janitor.
func (handler *Handler) SignInLinkPruner() services.ExpiredLinkPruner {
	return handler.authService
}
