package handlers

import (
	"strconv"

	"finanzas-chat/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxReportWindowDays = 366

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// GetSummary godoc
// @Summary Spending summary
// @Description Total spent, breakdown per category (largest first) and daily totals for the last N days
// @Tags reports
// @Produce json
// @Param days query int false "Number of days in the daily breakdown" default(7)
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string
// @Router /reports/summary [get]
func (h *ReportHandler) GetSummary(c *fiber.Ctx) error {
	// 0 selects the configured window.
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxReportWindowDays {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "days must be an integer between 1 and 366",
			})
		}
		days = n
	}

	return c.JSON(h.reportService.Summary(days))
}

// ListCategories godoc
// @Summary List categories
// @Description Get the fixed category set with the icon and color used to display each one
// @Tags reports
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (h *ReportHandler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(h.reportService.Categories())
}
