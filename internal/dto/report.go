package dto

import "finanzas-chat/internal/models"

type CategoryTotalResponse struct {
	Category   string               `json:"category"`
	Total      float64              `json:"total"`
	Count      int                  `json:"count"`
	Percentage float64              `json:"percentage"`
	Style      models.CategoryStyle `json:"style"`
}

type DayTotalResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type SummaryResponse struct {
	Total      float64                 `json:"total"`
	Count      int                     `json:"count"`
	WindowDays int                     `json:"window_days"`
	ByCategory []CategoryTotalResponse `json:"by_category"`
	ByDay      []DayTotalResponse      `json:"by_day"`
}

type CategoryResponse struct {
	Name  string               `json:"name"`
	Style models.CategoryStyle `json:"style"`
}
