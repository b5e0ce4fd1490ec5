package api

import (
	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/insight"
	"github.com/terraincognita07/bloom/internal/mail"
	"github.com/terraincognita07/bloom/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, settings Settings, provider insight.Provider, mailer mail.Mailer) *Handler {
	repositories := db.NewRepositories(database)
	sender := mail.NewSignInSender(mailer, handler.i18n, handler.i18n.DefaultLanguage())

	handler.entryService = services.NewEntryService(repositories.Entries, handler.location)
	handler.authService = services.NewAuthService(repositories.Users, repositories.SignInLinks, sender, settings.BaseURL)
	handler.insightService = services.NewInsightService(repositories.Entries, provider, handler.i18n, settings.RiskPolicy, settings.InsightTimeout)
	handler.viewService = services.NewViewService(handler.entryService, handler.i18n, settings.RiskPolicy, handler.logger)
	handler.exportService = services.NewExportService(repositories.Entries)
	return handler
}
