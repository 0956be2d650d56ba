package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/types"
)

func TestCanTransition_Matrix(t *testing.T) {
	cases := []struct {
		from types.SubscriptionStatus
		to   types.SubscriptionStatus
		want bool
	}{
		{types.SubscriptionStatusActive, types.SubscriptionStatusPaused, true},
		{types.SubscriptionStatusActive, types.SubscriptionStatusCanceled, true},
		{types.SubscriptionStatusActive, types.SubscriptionStatusActive, false},
		{types.SubscriptionStatusPaused, types.SubscriptionStatusActive, true},
		{types.SubscriptionStatusPaused, types.SubscriptionStatusCanceled, true},
		{types.SubscriptionStatusPaused, types.SubscriptionStatusPaused, false},
		{types.SubscriptionStatusCanceled, types.SubscriptionStatusActive, false},
		{types.SubscriptionStatusCanceled, types.SubscriptionStatusPaused, false},
		{types.SubscriptionStatusCanceled, types.SubscriptionStatusCanceled, false},
		{"unknown", types.SubscriptionStatusActive, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransition_PauseOnPausedRejected(t *testing.T) {
	svc := &Service{}
	sub := &models.Subscription{Status: types.SubscriptionStatusPaused}

	err := svc.transition(sub, types.SubscriptionStatusPaused)
	require.ErrorIs(t, err, ErrInvalidTransition)
	// rejected transitions leave the row untouched
	require.Equal(t, types.SubscriptionStatusPaused, sub.Status)
}

func TestTransition_CanceledIsTerminal(t *testing.T) {
	svc := &Service{}
	for _, target := range []types.SubscriptionStatus{
		types.SubscriptionStatusActive,
		types.SubscriptionStatusPaused,
	} {
		sub := &models.Subscription{Status: types.SubscriptionStatusCanceled}
		err := svc.transition(sub, target)
		require.ErrorIs(t, err, ErrInvalidTransition)
		require.Equal(t, types.SubscriptionStatusCanceled, sub.Status)
	}
}

func TestTransition_ListedEdges(t *testing.T) {
	svc := &Service{}

	sub := &models.Subscription{Status: types.SubscriptionStatusActive}
	require.NoError(t, svc.transition(sub, types.SubscriptionStatusPaused))
	require.Equal(t, types.SubscriptionStatusPaused, sub.Status)

	require.NoError(t, svc.transition(sub, types.SubscriptionStatusActive))
	require.Equal(t, types.SubscriptionStatusActive, sub.Status)

	require.NoError(t, svc.transition(sub, types.SubscriptionStatusCanceled))
	require.Equal(t, types.SubscriptionStatusCanceled, sub.Status)
}

func TestIsFutureDate(t *testing.T) {
	now := time.Now()
	require.False(t, isFutureDate(now), "today is not future")
	require.False(t, isFutureDate(now.AddDate(0, 0, -1)))
	require.True(t, isFutureDate(now.AddDate(0, 0, 1)))
}

func TestInCurrentPeriod(t *testing.T) {
	svc := &Service{}
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   start.AddDate(0, 0, 7),
	}

	require.True(t, svc.inCurrentPeriod(sub, start))
	require.True(t, svc.inCurrentPeriod(sub, start.AddDate(0, 0, 6)))
	// half-open: period end is excluded
	require.False(t, svc.inCurrentPeriod(sub, start.AddDate(0, 0, 7)))
	require.False(t, svc.inCurrentPeriod(sub, start.AddDate(0, 0, -1)))
}

func TestForfeitSkippedMeal(t *testing.T) {
	sub := &models.Subscription{
		TotalMealsPromisedThisPeriod: 5,
		MealsDeliveredThisPeriod:     3,
		MealsRemainingThisPeriod:     2,
	}
	require.True(t, forfeitSkippedMeal(sub))
	require.Equal(t, 4, sub.TotalMealsPromisedThisPeriod)
	require.Equal(t, 1, sub.MealsRemainingThisPeriod)

	// exhausted quota has nothing left to forfeit
	sub = &models.Subscription{
		TotalMealsPromisedThisPeriod: 5,
		MealsDeliveredThisPeriod:     5,
		MealsRemainingThisPeriod:     0,
	}
	require.False(t, forfeitSkippedMeal(sub))
	require.Equal(t, 5, sub.TotalMealsPromisedThisPeriod)
	require.Equal(t, 0, sub.MealsRemainingThisPeriod)
}

func TestRestoreForfeitedMeal(t *testing.T) {
	cases := []struct {
		name          string
		promised      int
		remaining     int
		ceiling       int
		want          bool
		wantPromised  int
		wantRemaining int
	}{
		{"restores_prior_forfeit", 4, 1, 5, true, 5, 2},
		{"at_calendar_count_no_op", 5, 2, 5, false, 5, 2},
		{"above_calendar_count_no_op", 6, 3, 5, false, 6, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := &models.Subscription{
				TotalMealsPromisedThisPeriod: tc.promised,
				MealsRemainingThisPeriod:     tc.remaining,
			}
			require.Equal(t, tc.want, restoreForfeitedMeal(sub, tc.ceiling))
			require.Equal(t, tc.wantPromised, sub.TotalMealsPromisedThisPeriod)
			require.Equal(t, tc.wantRemaining, sub.MealsRemainingThisPeriod)
		})
	}
}

func TestForfeitRoundTrip_NoQuotaInflation(t *testing.T) {
	// Skip with nothing remaining forfeits nothing; unskipping the same
	// date must restore nothing rather than push the promised counter
	// past the calendar count for the period.
	const ceiling = 5
	sub := &models.Subscription{
		TotalMealsPromisedThisPeriod: ceiling,
		MealsDeliveredThisPeriod:     ceiling,
		MealsRemainingThisPeriod:     0,
	}
	require.False(t, forfeitSkippedMeal(sub))
	require.False(t, restoreForfeitedMeal(sub, ceiling))
	require.Equal(t, ceiling, sub.TotalMealsPromisedThisPeriod)
	require.Equal(t, 0, sub.MealsRemainingThisPeriod)

	// a forfeit that did happen round-trips exactly once
	sub.MealsDeliveredThisPeriod = 3
	sub.MealsRemainingThisPeriod = 2
	require.True(t, forfeitSkippedMeal(sub))
	require.True(t, restoreForfeitedMeal(sub, ceiling))
	require.False(t, restoreForfeitedMeal(sub, ceiling))
	require.Equal(t, ceiling, sub.TotalMealsPromisedThisPeriod)
	require.Equal(t, 2, sub.MealsRemainingThisPeriod)
}
