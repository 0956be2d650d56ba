package subscription

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freshtiffin/mealbox/internal/app/service/delivery"
	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/tool"
	"github.com/freshtiffin/mealbox/pkg/types"
)

// CreateFromOrder materializes the subscription a captured order entitles
// the customer to. externalRef is the gateway-side subscription id used to
// attribute later webhook events; empty until the gateway assigns one.
// Runs inside the caller's capture transaction so order, subscription and
// coupon bookkeeping commit together or not at all; the caller audits via
// LogCreated once the transaction commits.
func (s *Service) CreateFromOrder(ctx context.Context, tx *gorm.DB, order *models.Order, externalRef string) (*models.Subscription, error) {
	sub, err := buildFromOrder(order, externalRef)
	if err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

// LogCreated writes the audit row for a subscription created from a
// captured order. Called after the capture transaction commits, so a
// rollback never leaves an audit row without a subscription.
func (s *Service) LogCreated(ctx context.Context, sub *models.Subscription, orderID string) {
	s.logChange(ctx, nil, sub, types.SubscriptionChangeReasonCheckout, datatypes.JSONMap{"order_id": orderID})
}

// buildFromOrder derives the initial subscription row from the order's
// pricing snapshot. Pure: storage untouched.
func buildFromOrder(order *models.Order, externalRef string) (*models.Subscription, error) {
	extra := order.Extra.Data()
	if extra == nil || extra.PlanSnapshot == nil {
		return nil, fmt.Errorf("order %s has no plan snapshot", order.ID)
	}
	if !extra.Frequency.Valid() {
		return nil, fmt.Errorf("order %s has invalid frequency %q", order.ID, extra.Frequency)
	}

	startDate, err := time.Parse(models.DateLayout, extra.StartDate)
	if err != nil {
		return nil, fmt.Errorf("order %s has invalid start date: %w", order.ID, err)
	}

	periodStart := startDate
	periodEnd := extra.Frequency.AdvancePeriod(periodStart)
	promised := delivery.PromisedMeals(extra.PlanSnapshot, periodStart, periodEnd, startDate, nil)

	sub := &models.Subscription{
		ID:                           tool.GenerateUUIDV7(),
		UserID:                       order.UserID,
		PlanID:                       extra.PlanSnapshot.ID,
		OrderID:                      order.ID,
		Frequency:                    extra.Frequency,
		Status:                       types.SubscriptionStatusActive,
		Price:                        order.Total,
		StartDate:                    startDate,
		CurrentPeriodStart:           periodStart,
		CurrentPeriodEnd:             periodEnd,
		VegDays:                      datatypes.NewJSONSlice(extra.VegDays),
		WithBreakfast:                extra.WithBreakfast,
		SkippedDates:                 datatypes.NewJSONSlice([]string{}),
		MealsDeliveredThisPeriod:     0,
		MealsRemainingThisPeriod:     promised,
		TotalMealsPromisedThisPeriod: promised,
		Extra: datatypes.NewJSONType(&models.SubscriptionExtra{
			PlanSnapshot: extra.PlanSnapshot,
			CouponCode:   extra.CouponCode,
		}),
	}
	if externalRef != "" {
		sub.ExternalSubscriptionRef = &externalRef
	}
	return sub, nil
}
