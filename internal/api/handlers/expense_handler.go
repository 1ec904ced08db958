package handlers

import (
	"bytes"
	"fmt"
	"time"

	"finanzas-chat/internal/dto"
	"finanzas-chat/internal/repository"
	"finanzas-chat/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	session  *service.Session
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewExpenseHandler(session *service.Session, location *time.Location, logger *zap.Logger) *ExpenseHandler {
	if location == nil {
		location = time.Local
	}
	return &ExpenseHandler{
		session:  session,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// ListExpenses godoc
// @Summary List expenses
// @Description Get every logged expense in the order it was recorded
// @Tags expenses
// @Produce json
// @Success 200 {array} dto.ExpenseResponse
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	expenses := h.session.Expenses()

	response := make([]*dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		response = append(response, dto.NewExpenseResponse(&expenses[i]))
	}

	return c.JSON(response)
}

// ExportExpenses godoc
// @Summary Export expenses as CSV
// @Description Download every logged expense as a CSV file (id, date, amount, description, category)
// @Tags expenses
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} map[string]string
// @Router /expenses/export [get]
func (h *ExpenseHandler) ExportExpenses(c *fiber.Ctx) error {
	expenses := h.session.Expenses()

	var buf bytes.Buffer
	if err := repository.WriteExpensesCSV(&buf, expenses, h.location); err != nil {
		h.logger.Error("Failed to export expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export expenses",
		})
	}

	filename := fmt.Sprintf("gastos-%s.csv", h.now().In(h.location).Format("2006-01-02"))
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}
