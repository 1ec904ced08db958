package models

import (
	"time"
)

type CategoryTotal struct {
	Category   Category `json:"category"`
	Total      float64  `json:"total"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// DayTotal is the amount spent on one local calendar day. Date is midnight of that day.
type DayTotal struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}
