package subscription

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freshtiffin/mealbox/internal/app/service/delivery"
	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/logctx"
	"github.com/freshtiffin/mealbox/pkg/metrics"
	"github.com/freshtiffin/mealbox/pkg/types"
)

// RolloverPeriod advances the billing period of one subscription if it is
// due. Idempotent: calling before current_period_end is a no-op, so the
// external scheduler may run at any cadence of at least once per day.
// Returns true when a rollover happened.
func (s *Service) RolloverPeriod(ctx context.Context, subID string, now time.Time) (bool, error) {
	rolled := false

	sub, err := s.mutate(ctx, "", subID, types.SubscriptionChangeReasonRollover, nil, func(tx *gorm.DB, sub *models.Subscription) error {
		if !rolloverDue(sub, now) {
			// leaves the row untouched: no save, audit row or hook
			return errNoChange
		}

		// Catch up if more than one period behind.
		start, end := advancePeriods(sub.Frequency, sub.CurrentPeriodStart, sub.CurrentPeriodEnd, now)
		sub.CurrentPeriodStart = start
		sub.CurrentPeriodEnd = end

		promised := delivery.PromisedMeals(sub.PlanSnapshot(), start, end, sub.StartDate, sub.EndDate)
		sub.TotalMealsPromisedThisPeriod = promised
		sub.MealsDeliveredThisPeriod = 0
		sub.MealsRemainingThisPeriod = promised

		// Drop skips that belonged to prior periods; keep future ones.
		kept := make(datatypes.JSONSlice[string], 0, len(sub.SkippedDates))
		for _, d := range sub.SkippedDates {
			t, err := time.Parse(models.DateLayout, d)
			if err != nil {
				continue
			}
			if !t.Before(start) {
				kept = append(kept, d)
			}
		}
		sub.SkippedDates = kept

		rolled = true
		return nil
	})
	if err != nil {
		return false, err
	}
	_ = sub
	if rolled {
		metrics.PeriodRolloverTotal.Inc()
	}
	return rolled, nil
}

// rolloverDue reports whether the period window has elapsed for a
// subscription that can still roll.
func rolloverDue(sub *models.Subscription, now time.Time) bool {
	return !sub.IsCanceled() && !now.Before(sub.CurrentPeriodEnd)
}

// advancePeriods steps the period window forward until it contains now.
func advancePeriods(freq types.Frequency, start, end, now time.Time) (time.Time, time.Time) {
	for !now.Before(end) {
		start = end
		end = freq.AdvancePeriod(start)
	}
	return start, end
}

// RolloverDuePeriods rolls every non-canceled subscription whose period
// has elapsed. Safe to invoke repeatedly; already-rolled rows no-op.
func (s *Service) RolloverDuePeriods(ctx context.Context, now time.Time) (int, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("status <> ? AND current_period_end <= ?", types.SubscriptionStatusCanceled, now).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to list due subscriptions: %w", err)
	}

	count := 0
	for _, id := range ids {
		rolled, err := s.RolloverPeriod(ctx, id, now)
		if err != nil {
			logctx.FromCtx(ctx, s.log).Errorw("rollover failed", "subscription_id", id, "err", err)
			continue
		}
		if rolled {
			count++
		}
	}
	return count, nil
}
