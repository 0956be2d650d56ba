package coupon

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/types"
)

var clock = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func validCoupon(dt types.DiscountType, value int64) *models.CouponCode {
	return &models.CouponCode{
		ID:            "coupon-1",
		Code:          "WELCOME",
		DiscountType:  dt,
		DiscountValue: value,
		ValidFrom:     clock.AddDate(0, -1, 0),
		ValidUntil:    clock.AddDate(0, 1, 0),
	}
}

func TestCalculate_PercentTenOnThousand(t *testing.T) {
	c := validCoupon(types.DiscountTypePercent, 10)
	c.MinOrderValue = 500

	d := Calculate(c, 1000, 0, clock)
	require.True(t, d.Valid())
	require.Equal(t, int64(100), d.Amount)
	require.Equal(t, int64(900), OrderTotal(1000, d.Amount))
}

func TestCalculate_PercentCappedAtOrderAmount(t *testing.T) {
	// Values over 100% cap at the order amount: the discount never exceeds
	// what was charged and the total bottoms out at zero.
	c := validCoupon(types.DiscountTypePercent, 150)

	d := Calculate(c, 1000, 0, clock)
	require.True(t, d.Valid())
	require.Equal(t, int64(1000), d.Amount)
	require.Equal(t, int64(0), OrderTotal(1000, d.Amount))
}

func TestCalculate_FixedCappedAtOrderAmount(t *testing.T) {
	c := validCoupon(types.DiscountTypeFixed, 200)

	d := Calculate(c, 150, 0, clock)
	require.True(t, d.Valid())
	require.Equal(t, int64(150), d.Amount)
	require.Equal(t, int64(0), OrderTotal(150, d.Amount))
}

func TestCalculate_FreeShippingPassesFeeThrough(t *testing.T) {
	c := validCoupon(types.DiscountTypeFreeShipping, 0)

	d := Calculate(c, 1000, 60, clock)
	require.True(t, d.Valid())
	require.True(t, d.FreeShipping)
	require.Equal(t, int64(60), d.Amount)
}

func TestCalculate_InvalidOutcomes(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *models.CouponCode)
		amount int64
		want   InvalidReason
	}{
		{
			name:   "not_started",
			mutate: func(c *models.CouponCode) { c.ValidFrom = clock.AddDate(0, 0, 1) },
			amount: 1000,
			want:   InvalidReasonNotStarted,
		},
		{
			name:   "expired",
			mutate: func(c *models.CouponCode) { c.ValidUntil = clock.AddDate(0, 0, -1) },
			amount: 1000,
			want:   InvalidReasonExpired,
		},
		{
			name:   "below_min_order",
			mutate: func(c *models.CouponCode) { c.MinOrderValue = 500 },
			amount: 499,
			want:   InvalidReasonMinOrder,
		},
		{
			name: "exhausted",
			mutate: func(c *models.CouponCode) {
				c.MaxUses = lo.ToPtr(int64(3))
				c.CurrentUses = 3
			},
			amount: 1000,
			want:   InvalidReasonExhausted,
		},
		{
			name:   "unknown_discount_type",
			mutate: func(c *models.CouponCode) { c.DiscountType = "bogus" },
			amount: 1000,
			want:   InvalidReasonUnknownType,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validCoupon(types.DiscountTypePercent, 10)
			tc.mutate(c)

			d := Calculate(c, tc.amount, 0, clock)
			require.False(t, d.Valid())
			require.Equal(t, tc.want, d.Reason)
			require.Zero(t, d.Amount)
		})
	}
}

func TestCalculate_NilCoupon(t *testing.T) {
	d := Calculate(nil, 1000, 0, clock)
	require.False(t, d.Valid())
}

func TestCouponExhausted(t *testing.T) {
	c := validCoupon(types.DiscountTypePercent, 10)
	require.False(t, c.Exhausted())

	c.MaxUses = lo.ToPtr(int64(1))
	require.False(t, c.Exhausted())

	c.CurrentUses = 1
	require.True(t, c.Exhausted())
}

func TestNormalizeCouponCode(t *testing.T) {
	require.Equal(t, "WELCOME", models.NormalizeCouponCode("  welcome "))
	require.Equal(t, "WELCOME", models.NormalizeCouponCode("Welcome"))
}
