package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
)

func (handler *Handler) parseExportRange(c *fiber.Ctx) (services.ExportRange, string) {
	exportRange, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExportFromDateInvalid):
			return services.ExportRange{}, "invalid from date"
		case errors.Is(err, services.ErrExportToDateInvalid):
			return services.ExportRange{}, "invalid to date"
		default:
			return services.ExportRange{}, "invalid range"
		}
	}
	return exportRange, ""
}

func (handler *Handler) exportUserAndRange(c *fiber.Ctx) (*models.User, services.ExportRange, int, string) {
	user, ok := currentUser(c)
	if !ok || user == nil {
		return nil, services.ExportRange{}, fiber.StatusUnauthorized, "unauthorized"
	}

	exportRange, rangeError := handler.parseExportRange(c)
	if rangeError != "" {
		return nil, services.ExportRange{}, fiber.StatusBadRequest, rangeError
	}
	return user, exportRange, 0, ""
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("bloom-export-%s.%s", now.Format(models.EntryDateLayout), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
