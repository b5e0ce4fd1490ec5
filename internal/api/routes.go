package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPublicRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPublicRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)
	app.Get("/auth/verify", handler.VerifySignInLink)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/sign-in-link", handler.RequestSignInLink)
	auth.Get("/session", handler.Session)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	views := api.Group("/views", handler.AuthRequired)
	views.Get("", handler.GetTabBar)
	views.Get("/log", handler.GetLogView)
	views.Get("/history", handler.GetHistoryView)
	views.Get("/insights", handler.GetInsightsView)

	entries := api.Group("/entries", handler.AuthRequired)
	entries.Get("", handler.ListEntries)
	entries.Get("/today", handler.GetTodayEntry)
	entries.Put("/today", handler.SaveTodayEntry)

	insights := api.Group("/insights", handler.AuthRequired)
	insights.Get("", handler.GetInsights)
	insights.Post("/narrative", handler.GetNarrative)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
