package api

import (
	"bytes"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	return handler.sendExport(c, "text/csv", "csv", func(w io.Writer, user *models.User, exportRange services.ExportRange, _ time.Time) error {
		return handler.exportService.WriteCSV(w, user.ID, exportRange)
	})
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	return handler.sendExport(c, fiber.MIMEApplicationJSON, "json", func(w io.Writer, user *models.User, exportRange services.ExportRange, now time.Time) error {
		return handler.exportService.WriteJSON(w, user.ID, exportRange, now)
	})
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, exportRange, status, message := handler.exportUserAndRange(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	summary, err := handler.exportService.BuildSummary(user.ID, exportRange)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch entries")
	}
	return c.JSON(summary)
}

type exportEncoder func(w io.Writer, user *models.User, exportRange services.ExportRange, now time.Time) error

// sendExport buffers the encoded export so a failed encode can still be
// answered with a JSON error instead of a truncated attachment.
func (handler *Handler) sendExport(c *fiber.Ctx, contentType, extension string, encode exportEncoder) error {
	user, exportRange, status, message := handler.exportUserAndRange(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	now := time.Now().In(handler.location)
	var output bytes.Buffer
	if err := encode(&output, user, exportRange, now); err != nil {
		handler.logger.Error("build export failed", zap.String("format", extension), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, contentType, buildExportFilename(now, extension))
	return c.Send(output.Bytes())
}
