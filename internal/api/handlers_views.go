package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

func (handler *Handler) GetTabBar(c *fiber.Ctx) error {
	tab, err := services.ParseTrackerTab(c.Query("tab"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "unknown tab")
	}
	return c.JSON(handler.viewService.TabBar(tab, handler.currentLanguage(c)))
}

func (handler *Handler) GetLogView(c *fiber.Ctx) error {
	state, status, message := handler.loadTrackerState(c, services.TabLog)
	if status != 0 {
		return apiError(c, status, message)
	}
	return c.JSON(handler.viewService.BuildLogView(state, handler.currentLanguage(c)))
}

func (handler *Handler) GetHistoryView(c *fiber.Ctx) error {
	state, status, message := handler.loadTrackerState(c, services.TabHistory)
	if status != 0 {
		return apiError(c, status, message)
	}
	return c.JSON(handler.viewService.BuildHistoryView(state, handler.currentLanguage(c)))
}

func (handler *Handler) GetInsightsView(c *fiber.Ctx) error {
	state, status, message := handler.loadTrackerState(c, services.TabInsights)
	if status != 0 {
		return apiError(c, status, message)
	}
	return c.JSON(handler.viewService.BuildInsightsView(state, handler.currentLanguage(c)))
}

func (handler *Handler) loadTrackerState(c *fiber.Ctx, tab services.TrackerTab) (services.TrackerState, int, string) {
	user, ok := currentUser(c)
	if !ok {
		return services.TrackerState{}, fiber.StatusUnauthorized, "unauthorized"
	}

	state, err := handler.viewService.LoadState(user.ID, tab)
	if err != nil {
		return services.TrackerState{}, fiber.StatusInternalServerError, "failed to fetch entries"
	}
	return state, 0, ""
}
