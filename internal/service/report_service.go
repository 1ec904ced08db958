package service

import (
	"time"

	"finanzas-chat/internal/dto"
	"finanzas-chat/internal/models"

	"go.uber.org/zap"
)

// ReportService renders aggregate reports over the session's expenses.
type ReportService struct {
	session    *Session
	windowDays int
	location   *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func NewReportService(session *Session, windowDays int, location *time.Location, now func() time.Time, logger *zap.Logger) *ReportService {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &ReportService{
		session:    session,
		windowDays: windowDays,
		location:   location,
		now:        now,
		logger:     logger,
	}
}

// Summary aggregates the current expenses. windowDays <= 0 uses the configured window.
func (s *ReportService) Summary(windowDays int) *dto.SummaryResponse {
	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	expenses := s.session.Expenses()
	now := s.now().In(s.location)

	byCategory := ByCategory(expenses)
	categories := make([]dto.CategoryTotalResponse, 0, len(byCategory))
	for _, ct := range byCategory {
		categories = append(categories, dto.CategoryTotalResponse{
			Category:   string(ct.Category),
			Total:      ct.Total,
			Count:      ct.Count,
			Percentage: ct.Percentage,
			Style:      ct.Category.Style(),
		})
	}

	byDay := ByDay(expenses, windowDays, now)
	days := make([]dto.DayTotalResponse, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, dto.DayTotalResponse{
			Date:  d.Date.Format("2006-01-02"),
			Total: d.Total,
		})
	}

	s.logger.Debug("Report generated",
		zap.Int("expenses", len(expenses)),
		zap.Int("window_days", windowDays),
	)

	return &dto.SummaryResponse{
		Total:      Total(expenses),
		Count:      len(expenses),
		WindowDays: windowDays,
		ByCategory: categories,
		ByDay:      days,
	}
}

// Categories lists the category set with display styles.
func (s *ReportService) Categories() []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, dto.CategoryResponse{Name: string(c), Style: c.Style()})
	}
	return out
}
