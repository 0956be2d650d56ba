package coupon

import (
	"time"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/types"
)

// InvalidReason classifies why a coupon produced no discount.
type InvalidReason string

const (
	InvalidReasonNone        InvalidReason = ""
	InvalidReasonNotStarted  InvalidReason = "not_started"
	InvalidReasonExpired     InvalidReason = "expired"
	InvalidReasonMinOrder    InvalidReason = "min_order_not_met"
	InvalidReasonExhausted   InvalidReason = "exhausted"
	InvalidReasonAlreadyUsed InvalidReason = "already_used"
	InvalidReasonUnknownType InvalidReason = "unknown_discount_type"
)

// Discount is the outcome of the pure calculation. Amount is zero whenever
// Reason is set; checkout proceeds without a discount in that case.
type Discount struct {
	Amount       int64
	FreeShipping bool
	Reason       InvalidReason
}

func (d Discount) Valid() bool { return d.Reason == InvalidReasonNone }

// Calculate is a stateless function of (coupon, order amount): it never
// touches storage and never mutates the coupon. Single-use enforcement is
// composed by the caller around order creation.
//
//   - percent: orderAmount * value / 100, capped at the order amount so
//     configured values over 100% cannot exceed what was charged
//   - fixed: min(value, orderAmount), never drives the total negative
//   - free_shipping: the caller-supplied shipping fee passes through
func Calculate(c *models.CouponCode, orderAmount, shippingFee int64, now time.Time) Discount {
	if c == nil {
		return Discount{Reason: InvalidReasonUnknownType}
	}
	if now.Before(c.ValidFrom) {
		return Discount{Reason: InvalidReasonNotStarted}
	}
	if now.After(c.ValidUntil) {
		return Discount{Reason: InvalidReasonExpired}
	}
	if orderAmount < c.MinOrderValue {
		return Discount{Reason: InvalidReasonMinOrder}
	}
	if c.Exhausted() {
		return Discount{Reason: InvalidReasonExhausted}
	}

	switch c.DiscountType {
	case types.DiscountTypePercent:
		amt := orderAmount * c.DiscountValue / 100
		if amt > orderAmount {
			amt = orderAmount
		}
		return Discount{Amount: amt}
	case types.DiscountTypeFixed:
		if c.DiscountValue > orderAmount {
			return Discount{Amount: orderAmount}
		}
		return Discount{Amount: c.DiscountValue}
	case types.DiscountTypeFreeShipping:
		return Discount{Amount: shippingFee, FreeShipping: true}
	default:
		return Discount{Reason: InvalidReasonUnknownType}
	}
}

// OrderTotal applies a discount to an amount, clamped at zero.
func OrderTotal(orderAmount, discount int64) int64 {
	total := orderAmount - discount
	if total < 0 {
		return 0
	}
	return total
}
