package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFrequencyValid(t *testing.T) {
	require.True(t, FrequencyWeekly.Valid())
	require.True(t, FrequencyMonthly.Valid())
	require.False(t, Frequency("daily").Valid())
	require.False(t, Frequency("").Valid())
}

func TestAdvancePeriod_Weekly(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	require.Equal(t, start.AddDate(0, 0, 7), FrequencyWeekly.AdvancePeriod(start))
}

func TestAdvancePeriod_Monthly(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), FrequencyMonthly.AdvancePeriod(start))

	// month-end normalization follows time.AddDate
	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), FrequencyMonthly.AdvancePeriod(jan31))
}

func TestMealPlanPriceFor(t *testing.T) {
	p := &MealPlan{
		WeeklyPrice:           100,
		MonthlyPrice:          350,
		BreakfastWeeklyPrice:  20,
		BreakfastMonthlyPrice: 70,
	}

	require.Equal(t, int64(100), p.PriceFor(FrequencyWeekly, false))
	require.Equal(t, int64(120), p.PriceFor(FrequencyWeekly, true))
	require.Equal(t, int64(350), p.PriceFor(FrequencyMonthly, false))
	require.Equal(t, int64(420), p.PriceFor(FrequencyMonthly, true))
	require.Equal(t, int64(0), (*MealPlan)(nil).PriceFor(FrequencyWeekly, true))
}
