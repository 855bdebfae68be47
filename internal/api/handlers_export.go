package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/paaga/internal/services"
)

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "challengeId")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	challenge, deposits, err := handler.progressService.Snapshot(callerID(c), id)
	if err != nil {
		return handler.respondError(c, err)
	}

	body, err := services.BuildExportCSV(services.BuildExportRows(challenge, deposits))
	if err != nil {
		return handler.respondError(c, err)
	}

	setAttachmentHeaders(c, "text/csv; charset=utf-8", services.BuildExportFilename(challenge.ID, handler.now(), "csv"))
	return c.Send(body)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "challengeId")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	challenge, deposits, err := handler.progressService.Snapshot(callerID(c), id)
	if err != nil {
		return handler.respondError(c, err)
	}

	now := handler.now()
	setAttachmentHeaders(c, fiber.MIMEApplicationJSONCharsetUTF8, services.BuildExportFilename(challenge.ID, now, "json"))
	return c.JSON(services.BuildExportDocument(challenge, deposits, now))
}

func setAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Set(fiber.HeaderCacheControl, "no-store")
}
