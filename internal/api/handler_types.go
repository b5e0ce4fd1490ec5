package api

import (
	"time"

	"github.com/terraincognita07/bloom/internal/i18n"
	"github.com/terraincognita07/bloom/internal/services"
	"go.uber.org/zap"
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	logger       *zap.Logger

	entryService   *services.EntryService
	authService    *services.AuthService
	insightService *services.InsightService
	viewService    *services.ViewService
	exportService  *services.ExportService

	signInIPLimiter    *attemptLimiter
	signInEmailLimiter *attemptLimiter
}

const (
	sessionTTL = 7 * 24 * time.Hour

	signInLinkIPLimit      = 10
	signInLinkEmailLimit   = 3
	signInLinkLimitWindow  = 15 * time.Minute
	signInLinkLimitMessage = "too many sign-in requests"
)

type signInLinkInput struct {
	Email string `json:"email" form:"email"`
}

// entryPayload carries a partial log. Missing fields keep the values of
// today's draft.
type entryPayload struct {
	PainLevel     *int     `json:"pain_level"`
	FatigueLevel  *int     `json:"fatigue_level"`
	BloatingLevel *int     `json:"bloating_level"`
	MoodLevel     *int     `json:"mood_level"`
	NauseaLevel   *int     `json:"nausea_level"`
	BleedingLevel *string  `json:"bleeding_level"`
	Triggers      []string `json:"triggers"`
	Notes         *string  `json:"notes"`
}
