package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freshtiffin/mealbox/internal/app/service/coupon"
	"github.com/freshtiffin/mealbox/internal/app/service/eventlog"
	subsvc "github.com/freshtiffin/mealbox/internal/app/service/subscription"
	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/internal/platform/gateway"
	"github.com/freshtiffin/mealbox/pkg/config"
	"github.com/freshtiffin/mealbox/pkg/logctx"
	"github.com/freshtiffin/mealbox/pkg/tool"
	"github.com/freshtiffin/mealbox/pkg/types"
)

// Service reconciles payment-gateway events into orders and
// subscriptions. Gateway credentials arrive through explicit config at
// construction; there is no ambient gateway state.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	log       *zap.SugaredLogger
	gw        gateway.Client
	subSvc    *subsvc.Service
	couponSvc *coupon.Service
	events    *eventlog.Service
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger, gw gateway.Client, sub *subsvc.Service, cpn *coupon.Service, events *eventlog.Service) *Service {
	return &Service{cfg: cfg, db: db, log: log, gw: gw, subSvc: sub, couponSvc: cpn, events: events}
}

// CheckoutRequest is supplied by the checkout collaborator. UserID is
// pre-authenticated by the caller.
type CheckoutRequest struct {
	UserID        string          `json:"-"`
	PlanID        string          `json:"plan_id"`
	Frequency     types.Frequency `json:"frequency"`
	VegDays       []int           `json:"veg_days"`
	WithBreakfast bool            `json:"with_breakfast"`
	CouponCode    string          `json:"coupon_code"`
	// StartDate ("2006-01-02"); defaults to tomorrow.
	StartDate string `json:"start_date"`
}

type CheckoutResult struct {
	OrderID         string `json:"order_id"`
	GatewayOrderRef string `json:"gateway_order_ref"`
	Amount          int64  `json:"amount"`
	Discount        int64  `json:"discount"`
	Tax             int64  `json:"tax"`
	DeliveryFee     int64  `json:"delivery_fee"`
	Total           int64  `json:"total"`
	CouponApplied   bool   `json:"coupon_applied"`
	// CouponReason carries the rejection reason when a coupon was supplied
	// but not applied; checkout still succeeds without the discount.
	CouponReason string `json:"coupon_reason,omitempty"`
}

// Checkout prices the plan, applies the coupon when valid, opens a
// gateway order for the total and persists one pending order carrying the
// full pricing snapshot for later confirmation.
func (s *Service) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	plan := s.cfg.GetPlanByID(req.PlanID)
	if plan == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, req.PlanID)
	}
	if !req.Frequency.Valid() {
		return nil, fmt.Errorf("invalid frequency: %q", req.Frequency)
	}
	for _, d := range req.VegDays {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid veg day index: %d", d)
		}
	}

	startDate := req.StartDate
	if startDate == "" {
		startDate = time.Now().AddDate(0, 0, 1).Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, startDate); err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}

	amount := plan.PriceFor(req.Frequency, req.WithBreakfast)
	shipping := s.cfg.Pricing.DeliveryFee

	res := &CheckoutResult{Amount: amount, DeliveryFee: shipping}
	var appliedCoupon *models.CouponCode

	if req.CouponCode != "" {
		disc, c, reason, err := s.evaluateCoupon(ctx, req.UserID, req.CouponCode, amount, shipping)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			res.CouponReason = reason
		} else {
			appliedCoupon = c
			res.CouponApplied = true
			res.Discount = disc.Amount
			if disc.FreeShipping {
				// the discount waives the fee instead of reducing the base
				res.DeliveryFee = 0
			}
		}
	}

	baseDiscount := int64(0)
	if res.CouponApplied && appliedCoupon.DiscountType != types.DiscountTypeFreeShipping {
		baseDiscount = res.Discount
	}
	res.Tax, res.Total = computeTotals(res.Amount, baseDiscount, res.DeliveryFee, s.cfg.Pricing.TaxBasisPoints)

	receipt := tool.GenerateUUIDV7()
	gwOrder, err := s.gw.CreateOrder(ctx, &gateway.CreateOrderRequest{
		Amount:   res.Total,
		Currency: s.cfg.Gateway.Currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gateway order: %w", err)
	}

	extra := &models.OrderExtra{
		PlanSnapshot:  plan,
		Frequency:     req.Frequency,
		VegDays:       req.VegDays,
		WithBreakfast: req.WithBreakfast,
		StartDate:     startDate,
		ShippingFee:   res.DeliveryFee,
		Tax:           res.Tax,
	}
	if appliedCoupon != nil {
		extra.CouponCode = appliedCoupon.Code
		extra.CouponID = appliedCoupon.ID
	}

	order := &models.Order{
		ID:               tool.GenerateUUIDV7(),
		UserID:           req.UserID,
		Amount:           res.Amount,
		Discount:         res.Discount,
		Total:            res.Total,
		Status:           types.OrderStatusPending,
		PaymentStatus:    types.PaymentStatusPending,
		ReceiptID:        receipt,
		ExternalOrderRef: gwOrder.Ref,
		Extra:            datatypes.NewJSONType(extra),
	}
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("checkout_order_opened",
		"order_id", order.ID, "gateway_order_ref", gwOrder.Ref, "total", res.Total)

	res.OrderID = order.ID
	res.GatewayOrderRef = gwOrder.Ref
	return res, nil
}

// computeTotals derives the tax and payable total from a priced order.
// The base discount never drives the subtotal negative; tax applies to
// the discounted subtotal and the delivery fee is added untaxed.
func computeTotals(amount, baseDiscount, deliveryFee, taxBasisPoints int64) (tax, total int64) {
	subtotal := coupon.OrderTotal(amount, baseDiscount)
	tax = subtotal * taxBasisPoints / 10000
	return tax, subtotal + tax + deliveryFee
}

// evaluateCoupon validates a coupon for checkout. Validation failures are
// business outcomes (reason set), not errors; only storage faults error.
func (s *Service) evaluateCoupon(ctx context.Context, userID, code string, amount, shipping int64) (coupon.Discount, *models.CouponCode, string, error) {
	c, err := s.couponSvc.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, coupon.ErrCouponInvalid) {
			return coupon.Discount{}, nil, "not_found", nil
		}
		return coupon.Discount{}, nil, "", err
	}

	if c.IsSingleUse {
		used, err := s.couponSvc.HasUsage(ctx, c.ID, userID)
		if err != nil {
			return coupon.Discount{}, nil, "", err
		}
		if used {
			return coupon.Discount{}, nil, string(coupon.InvalidReasonAlreadyUsed), nil
		}
	}

	disc := coupon.Calculate(c, amount, shipping, time.Now())
	if !disc.Valid() {
		return coupon.Discount{}, nil, string(disc.Reason), nil
	}
	return disc, c, "", nil
}
