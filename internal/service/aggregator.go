package service

import (
	"sort"
	"time"

	"finanzas-chat/internal/models"

	"github.com/shopspring/decimal"
)

// Total is the sum of all expense amounts.
func Total(expenses []models.Expense) float64 {
	return sumAmounts(expenses).InexactFloat64()
}

func sumAmounts(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return total
}

// ByCategory breaks expenses down per category, largest total first. Equal
// totals keep the order in which their category first appears in expenses.
// A zero grand total yields an empty slice.
func ByCategory(expenses []models.Expense) []models.CategoryTotal {
	grand := sumAmounts(expenses)
	if grand.IsZero() {
		return []models.CategoryTotal{}
	}

	index := make(map[models.Category]int)
	totals := make([]decimal.Decimal, 0, len(models.Categories))
	result := make([]models.CategoryTotal, 0, len(models.Categories))

	for _, e := range expenses {
		category := e.Category.OrOther()
		i, ok := index[category]
		if !ok {
			i = len(result)
			index[category] = i
			result = append(result, models.CategoryTotal{Category: category})
			totals = append(totals, decimal.Zero)
		}
		totals[i] = totals[i].Add(decimal.NewFromFloat(e.Amount))
		result[i].Count++
	}

	hundred := decimal.NewFromInt(100)
	for i := range result {
		result[i].Total = totals[i].InexactFloat64()
		result[i].Percentage = totals[i].Mul(hundred).Div(grand).InexactFloat64()
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Total > result[b].Total
	})

	return result
}

// ByDay returns one entry per local calendar day for the windowDays days
// ending on now's day, oldest first, including days without expenses. Days
// are taken in now's location.
func ByDay(expenses []models.Expense, windowDays int, now time.Time) []models.DayTotal {
	if windowDays <= 0 {
		return []models.DayTotal{}
	}

	loc := now.Location()
	today := startOfDay(now)
	first := today.AddDate(0, 0, -(windowDays - 1))

	const dayKey = "2006-01-02"
	totals := make(map[string]decimal.Decimal, windowDays)
	for _, e := range expenses {
		key := e.Timestamp.In(loc).Format(dayKey)
		totals[key] = totals[key].Add(decimal.NewFromFloat(e.Amount))
	}

	result := make([]models.DayTotal, windowDays)
	for i := 0; i < windowDays; i++ {
		day := first.AddDate(0, 0, i)
		result[i] = models.DayTotal{
			Date:  day,
			Total: totals[day.Format(dayKey)].InexactFloat64(),
		}
	}

	return result
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
