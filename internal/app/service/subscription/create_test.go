package subscription

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/types"
)

func capturedOrder(extra *models.OrderExtra) *models.Order {
	return &models.Order{
		ID:     "order-1",
		UserID: "user-1",
		Total:  99900,
		Extra:  datatypes.NewJSONType(extra),
	}
}

func TestBuildFromOrder(t *testing.T) {
	plan := &types.MealPlan{ID: "plan-std", Name: "Standard", MealsPerWeek: 5, WeeklyPrice: 99900}
	extra := &models.OrderExtra{
		PlanSnapshot: plan,
		Frequency:    types.FrequencyWeekly,
		VegDays:      []int{2},
		StartDate:    "2025-06-02", // a Monday
	}

	sub, err := buildFromOrder(capturedOrder(extra), "sub_ext_1")
	require.NoError(t, err)

	require.NotEmpty(t, sub.ID)
	require.Equal(t, "user-1", sub.UserID)
	require.Equal(t, "plan-std", sub.PlanID)
	require.Equal(t, "order-1", sub.OrderID)
	require.Equal(t, types.SubscriptionStatusActive, sub.Status)
	require.Equal(t, int64(99900), sub.Price)
	require.Equal(t, sub.StartDate, sub.CurrentPeriodStart)
	require.Equal(t, sub.StartDate.AddDate(0, 0, 7), sub.CurrentPeriodEnd)

	// full Mon-start week on a 5-meal plan promises 5 meals, none consumed
	require.Equal(t, 5, sub.TotalMealsPromisedThisPeriod)
	require.Equal(t, 5, sub.MealsRemainingThisPeriod)
	require.Equal(t, 0, sub.MealsDeliveredThisPeriod)

	require.NotNil(t, sub.ExternalSubscriptionRef)
	require.Equal(t, "sub_ext_1", *sub.ExternalSubscriptionRef)
	require.Equal(t, plan, sub.Extra.Data().PlanSnapshot)
}

func TestBuildFromOrder_NoExternalRefYet(t *testing.T) {
	extra := &models.OrderExtra{
		PlanSnapshot: &types.MealPlan{ID: "plan-std", MealsPerWeek: 5},
		Frequency:    types.FrequencyWeekly,
		StartDate:    "2025-06-02",
	}

	sub, err := buildFromOrder(capturedOrder(extra), "")
	require.NoError(t, err)
	require.Nil(t, sub.ExternalSubscriptionRef)
}

func TestBuildFromOrder_RejectsBadSnapshots(t *testing.T) {
	cases := []struct {
		name  string
		extra *models.OrderExtra
	}{
		{"missing_snapshot", nil},
		{"missing_plan", &models.OrderExtra{Frequency: types.FrequencyWeekly, StartDate: "2025-06-02"}},
		{"invalid_frequency", &models.OrderExtra{
			PlanSnapshot: &types.MealPlan{ID: "plan-std", MealsPerWeek: 5},
			Frequency:    "fortnightly",
			StartDate:    "2025-06-02",
		}},
		{"invalid_start_date", &models.OrderExtra{
			PlanSnapshot: &types.MealPlan{ID: "plan-std", MealsPerWeek: 5},
			Frequency:    types.FrequencyWeekly,
			StartDate:    "02/06/2025",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildFromOrder(capturedOrder(tc.extra), "")
			require.Error(t, err)
		})
	}
}
