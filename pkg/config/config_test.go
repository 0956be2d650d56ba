package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freshtiffin/mealbox/pkg/types"
)

func TestGetPlanByID(t *testing.T) {
	c := &Config{Plans: []*types.MealPlan{
		{ID: "standard", MealsPerWeek: 5},
		{ID: "mini", MealsPerWeek: 3},
	}}

	require.Equal(t, 5, c.GetPlanByID("standard").MealsPerWeek)
	require.Equal(t, 3, c.GetPlanByID("mini").MealsPerWeek)
	require.Nil(t, c.GetPlanByID("jumbo"))
}

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.Equal(t, EnvDev, c.Env)
	require.Equal(t, 8888, c.Server.Port)
	require.Equal(t, SkippedMealPolicySave, c.SkippedMealPolicy)
	require.Equal(t, int64(1800), c.Pricing.TaxBasisPoints)
	require.Equal(t, "INR", c.Gateway.Currency)
}

func TestNew_RejectsUnknownSkippedMealPolicy(t *testing.T) {
	t.Setenv("APP_SKIPPED_MEAL_POLICY", "rollover")
	_, err := New()
	require.Error(t, err)
}
