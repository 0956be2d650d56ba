package subscription

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/logctx"
	"github.com/freshtiffin/mealbox/pkg/metrics"
	"github.com/freshtiffin/mealbox/pkg/types"
)

// MarkDelivered consumes one meal of the period quota in response to an
// externally reported delivery-completed event. The delivered, remaining
// and promised counters only ever change together, in one update.
//
// Delivered never exceeds promised: an excess report is clamped and logged
// as a quota anomaly, never surfaced to the customer.
func (s *Service) MarkDelivered(ctx context.Context, subID string) (*models.Subscription, error) {
	return s.mutate(ctx, "", subID, types.SubscriptionChangeReasonDelivered, nil, func(tx *gorm.DB, sub *models.Subscription) error {
		if sub.IsCanceled() {
			return fmt.Errorf("%w: delivery on canceled subscription", ErrInvalidTransition)
		}
		if !consumeQuota(sub) {
			metrics.QuotaAnomalyTotal.Inc()
			logctx.FromCtx(ctx, s.log).Errorw("quota_anomaly",
				"subscription_id", sub.ID,
				"delivered", sub.MealsDeliveredThisPeriod,
				"promised", sub.TotalMealsPromisedThisPeriod,
			)
		}
		return nil
	})
}

// consumeQuota advances the delivered counter by one, keeping
// delivered + remaining == promised. An excess report clamps the counters
// and returns false.
func consumeQuota(sub *models.Subscription) bool {
	if sub.MealsDeliveredThisPeriod >= sub.TotalMealsPromisedThisPeriod {
		sub.MealsDeliveredThisPeriod = sub.TotalMealsPromisedThisPeriod
		sub.MealsRemainingThisPeriod = 0
		return false
	}
	sub.MealsDeliveredThisPeriod++
	sub.MealsRemainingThisPeriod = sub.TotalMealsPromisedThisPeriod - sub.MealsDeliveredThisPeriod
	return true
}
