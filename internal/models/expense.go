package models

import (
	"time"
)

type Category string

const (
	CategoryTransport     Category = "Transporte"
	CategoryFood          Category = "Alimentación"
	CategoryEntertainment Category = "Entretenimiento"
	CategoryUtilities     Category = "Servicios"
	CategoryShopping      Category = "Compras"
	CategoryHealthcare    Category = "Salud"
	CategoryEducation     Category = "Educación"
	CategoryOther         Category = "Otros"
)

// Categories is the closed category set in prompt order.
var Categories = []Category{
	CategoryTransport,
	CategoryFood,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryShopping,
	CategoryHealthcare,
	CategoryEducation,
	CategoryOther,
}

// IsValid reports whether c is a member of the category set.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// OrOther returns c, or CategoryOther when c is not a known category.
func (c Category) OrOther() Category {
	if c.IsValid() {
		return c
	}
	return CategoryOther
}

type Expense struct {
	ID          string    `json:"id" db:"id"`
	Amount      float64   `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	Category    Category  `json:"category" db:"category"`
	Timestamp   time.Time `json:"timestamp" db:"created_at"`
}
