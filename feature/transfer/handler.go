package transfer

import (
	"errors"

	"craftdex/core/logger"
	"craftdex/core/reconcile"
	"craftdex/feature/transfer/codec"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the transfer feature. The CSV format is
// file-bundle based and only reachable through the CLI; over HTTP it is
// rejected with a 400.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the transfer routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/transfer/export", h.HandleExport)
	app.Post("/transfer/import", h.HandleImport)
}

// HandleExport streams the whole catalog in the requested format.
// @Summary Export Catalog
// @Description Export all resources and crafting recipes as a JSON or Markdown document.
// @Tags transfer
// @Produce json
// @Param format query string false "Document format (json or markdown)"
// @Success 200 {string} string "Exported document"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transfer/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	format, err := h.requestFormat(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	data, err := h.service.ExportBytes(c.Context(), format)
	if err != nil {
		l.Error("Failed to export catalog", zap.String("format", string(format)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if format == codec.FormatMarkdown {
		c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	}
	return c.Send(data)
}

// HandleImport imports the document in the request body.
// @Summary Import Catalog
// @Description Import a JSON or Markdown document, merging it into the catalog under the given strategy.
// @Tags transfer
// @Accept json
// @Produce json
// @Param format query string false "Document format (json or markdown)"
// @Param strategy query string false "Merge strategy (update, replace or skip)"
// @Success 200 {object} Report "Per-record import outcomes"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transfer/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	format, err := h.requestFormat(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	strategyName := c.Query("strategy", h.service.cfg.DefaultStrategy)
	strategy, err := reconcile.ParseStrategy(strategyName)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "empty request body",
		})
	}

	report, err := h.service.ImportBytes(c.Context(), body, format, strategy)
	if err != nil {
		l.Warn("Import rejected",
			zap.String("format", string(format)),
			zap.String("strategy", string(strategy)),
			zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// requestFormat resolves the format query parameter, defaulting from config
// and rejecting CSV, which has no single-document HTTP form.
func (h *Handler) requestFormat(c *fiber.Ctx) (codec.Format, error) {
	format, err := codec.ParseFormat(c.Query("format", h.service.cfg.DefaultFormat))
	if err != nil {
		return "", err
	}
	if format == codec.FormatCSV {
		return "", errors.New("csv transfer is only available via the command line")
	}
	return format, nil
}
