package service

import (
	"testing"
	"time"

	"finanzas-chat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
	assert.Equal(t, 179.75, Total(sampleExpenses()))

	// 0.1 + 0.2 must not drift.
	assert.Equal(t, 0.3, Total([]models.Expense{{Amount: 0.1}, {Amount: 0.2}}))
}

func TestByCategory(t *testing.T) {
	got := ByCategory(sampleExpenses())

	require.Len(t, got, 5)
	assert.Equal(t, models.CategoryUtilities, got[0].Category)
	assert.Equal(t, 80.0, got[0].Total)
	assert.Equal(t, 1, got[0].Count)

	assert.Equal(t, models.CategoryEntertainment, got[1].Category)
	assert.Equal(t, models.CategoryFood, got[2].Category)
	assert.Equal(t, 32.75, got[2].Total)
	assert.Equal(t, 2, got[2].Count)
	assert.Equal(t, models.CategoryTransport, got[3].Category)
	assert.Equal(t, models.CategoryHealthcare, got[4].Category)

	var percentages, totals float64
	for i, ct := range got {
		percentages += ct.Percentage
		totals += ct.Total
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Total, ct.Total)
		}
	}
	assert.InDelta(t, 100.0, percentages, 1e-9)
	assert.InDelta(t, Total(sampleExpenses()), totals, 1e-9)
}

func TestByCategory_Empty(t *testing.T) {
	assert.Empty(t, ByCategory(nil))
	assert.Empty(t, ByCategory([]models.Expense{{Amount: 0, Category: models.CategoryFood}}))
}

func TestByCategory_TiesKeepFirstAppearance(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 10, Category: models.CategoryHealthcare},
		{Amount: 10, Category: models.CategoryFood},
		{Amount: 10, Category: models.CategoryTransport},
	}

	got := ByCategory(expenses)
	require.Len(t, got, 3)
	assert.Equal(t, models.CategoryHealthcare, got[0].Category)
	assert.Equal(t, models.CategoryFood, got[1].Category)
	assert.Equal(t, models.CategoryTransport, got[2].Category)
	assert.InDelta(t, 100.0/3, got[0].Percentage, 1e-9)
}

func TestByCategory_UnknownCategoryCountsAsOther(t *testing.T) {
	got := ByCategory([]models.Expense{
		{Amount: 5, Category: ""},
		{Amount: 5, Category: models.CategoryOther},
	})

	require.Len(t, got, 1)
	assert.Equal(t, models.CategoryOther, got[0].Category)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, 100.0, got[0].Percentage)
}

func TestByCategory_Idempotent(t *testing.T) {
	expenses := sampleExpenses()
	assert.Equal(t, ByCategory(expenses), ByCategory(expenses))
	assert.Equal(t, sampleExpenses(), expenses)
}

func TestByDay(t *testing.T) {
	lima := time.FixedZone("PET", -5*60*60)
	now := time.Date(2024, time.March, 15, 20, 0, 0, 0, lima)

	expenses := []models.Expense{
		{Amount: 10, Timestamp: time.Date(2024, time.March, 15, 8, 0, 0, 0, lima)},
		{Amount: 5, Timestamp: time.Date(2024, time.March, 15, 19, 0, 0, 0, lima)},
		// 02:00 UTC on the 14th is still the 13th in Lima.
		{Amount: 7, Timestamp: time.Date(2024, time.March, 14, 2, 0, 0, 0, time.UTC)},
		// Outside the window.
		{Amount: 100, Timestamp: time.Date(2024, time.March, 1, 12, 0, 0, 0, lima)},
	}

	got := ByDay(expenses, 7, now)
	require.Len(t, got, 7)

	assert.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, lima), got[0].Date)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, lima), got[6].Date)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Date.Before(got[i].Date))
	}

	assert.Equal(t, 15.0, got[6].Total)
	assert.Equal(t, 0.0, got[5].Total)
	assert.Equal(t, 7.0, got[4].Total)
	assert.Equal(t, 0.0, got[0].Total)
}

func TestByDay_WindowSizes(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	assert.Empty(t, ByDay(nil, 0, now))
	assert.Empty(t, ByDay(nil, -3, now))

	for _, n := range []int{1, 7, 30} {
		got := ByDay(nil, n, now)
		require.Len(t, got, n)
		for _, d := range got {
			assert.Equal(t, 0.0, d.Total)
		}
	}
}
