package api

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/basaltlabs/basalt/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(parsed), nil
}

func rangeErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrFromDateInvalid):
		return "invalid from date"
	case errors.Is(err, services.ErrToDateInvalid):
		return "invalid to date"
	case errors.Is(err, services.ErrRangeInvalid):
		return "from date must not be after to date"
	default:
		return "invalid range"
	}
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}

func sendCSVAttachment(c *fiber.Ctx, filename string, headers []string, rows [][]string) error {
	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(headers); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build export")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", filename)
	return c.Send(output.Bytes())
}
