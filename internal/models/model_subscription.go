package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/freshtiffin/mealbox/pkg/types"
)

const DateLayout = "2006-01-02"

// SubscriptionExtra stores auxiliary JSON data alongside a subscription.
type SubscriptionExtra struct {
	// PlanSnapshot captures the catalog entry at purchase time so later
	// catalog edits do not change past entitlements.
	PlanSnapshot *types.MealPlan `json:"plan_snapshot"`
	CouponCode   string          `json:"coupon_code,omitempty"`
}

// Subscription is a recurring meal entitlement created as the side effect
// of a captured order. It is never hard-deleted; canceled is terminal.
type Subscription struct {
	ID        string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID    string                   `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	PlanID    string                   `gorm:"column:plan_id;type:varchar(64);not null" json:"plan_id"`
	OrderID   string                   `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	Frequency types.Frequency          `gorm:"column:frequency;type:varchar(16);not null" json:"frequency"`
	Status    types.SubscriptionStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	// Price is the captured per-period price in minor units.
	Price     int64     `gorm:"column:price;type:bigint;not null" json:"price"`
	StartDate time.Time `gorm:"column:start_date;not null" json:"start_date"`
	// EndDate is set when the subscription is canceled.
	EndDate *time.Time `gorm:"column:end_date;default:null" json:"end_date"`

	CurrentPeriodStart time.Time `gorm:"column:current_period_start;not null" json:"current_period_start"`
	CurrentPeriodEnd   time.Time `gorm:"column:current_period_end;not null" json:"current_period_end"`

	// VegDays holds weekday indexes (Monday=0) on which the customer wants
	// the vegetarian menu.
	VegDays       datatypes.JSONSlice[int] `gorm:"column:veg_days;type:jsonb" json:"veg_days"`
	WithBreakfast bool                     `gorm:"column:with_breakfast;not null" json:"with_breakfast"`
	// SkippedDates holds dates ("2006-01-02") removed from the schedule.
	SkippedDates datatypes.JSONSlice[string] `gorm:"column:skipped_dates;type:jsonb" json:"skipped_dates"`

	// Quota counters for the current billing period. The three values only
	// ever change together: delivered + remaining == promised while the
	// subscription is not canceled.
	MealsDeliveredThisPeriod     int `gorm:"column:meals_delivered_this_period;not null;default:0" json:"meals_delivered_this_period"`
	MealsRemainingThisPeriod     int `gorm:"column:meals_remaining_this_period;not null;default:0" json:"meals_remaining_this_period"`
	TotalMealsPromisedThisPeriod int `gorm:"column:total_meals_promised_this_period;not null;default:0" json:"total_meals_promised_this_period"`

	// ExternalSubscriptionRef is the gateway-side correlation id used to
	// attribute webhook events; nil until the gateway assigns one.
	ExternalSubscriptionRef *string `gorm:"column:external_subscription_ref;type:varchar(128);uniqueIndex;default:null" json:"external_subscription_ref"`
	CancelAtPeriodEnd       bool    `gorm:"column:cancel_at_period_end;not null;default:false" json:"cancel_at_period_end"`

	// NextDeliveryAt is a best-effort estimate refreshed on resume.
	NextDeliveryAt *time.Time `gorm:"column:next_delivery_at;default:null" json:"next_delivery_at"`

	Extra     datatypes.JSONType[*SubscriptionExtra] `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time                              `json:"created_at"`
	UpdatedAt time.Time                              `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

func (s *Subscription) IsActive() bool {
	return s != nil && s.Status == types.SubscriptionStatusActive
}

func (s *Subscription) IsCanceled() bool {
	return s != nil && s.Status == types.SubscriptionStatusCanceled
}

// IsSkipped reports whether date is in the skipped set. Only the calendar
// date matters; time-of-day is ignored.
func (s *Subscription) IsSkipped(date time.Time) bool {
	key := date.Format(DateLayout)
	for _, d := range s.SkippedDates {
		if d == key {
			return true
		}
	}
	return false
}

// PlanSnapshot returns the captured plan, if present.
func (s *Subscription) PlanSnapshot() *types.MealPlan {
	if s == nil || s.Extra.Data() == nil {
		return nil
	}
	return s.Extra.Data().PlanSnapshot
}

// VegDaySet returns the veg weekday indexes as a set.
func (s *Subscription) VegDaySet() map[int]bool {
	set := make(map[int]bool, len(s.VegDays))
	for _, d := range s.VegDays {
		set[d] = true
	}
	return set
}
