package checkout

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/internal/platform/gateway"
	"github.com/freshtiffin/mealbox/pkg/logctx"
	"github.com/freshtiffin/mealbox/pkg/types"
)

// ConfirmRequest is the client-submitted payment confirmation.
type ConfirmRequest struct {
	UserID     string `json:"-"`
	OrderRef   string `json:"gateway_order_ref"`
	PaymentRef string `json:"gateway_payment_ref"`
	// SubscriptionRef is the gateway-side subscription id, when the gateway
	// opened a recurring mandate alongside the payment.
	SubscriptionRef string `json:"gateway_subscription_ref"`
	Signature       string `json:"signature"`
}

type ConfirmResult struct {
	OrderID        string `json:"order_id"`
	SubscriptionID string `json:"subscription_id"`
	// Duplicate is true when the confirmation had already been processed;
	// the stored outcome is returned unchanged.
	Duplicate bool `json:"duplicate"`
}

// ConfirmPayment verifies the gateway signature and, in one transaction,
// captures the order, creates exactly one active subscription and records
// coupon usage. Duplicate submissions are no-ops: the unique gateway order
// ref plus the row lock guarantee at most one subscription regardless of
// arrival order or concurrency.
func (s *Service) ConfirmPayment(ctx context.Context, req *ConfirmRequest) (*ConfirmResult, error) {
	if err := gateway.VerifyPaymentSignature(s.cfg.Gateway.KeySecret, req.OrderRef, req.PaymentRef, req.Signature); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("payment_verification_failed", "gateway_order_ref", req.OrderRef)
		return nil, fmt.Errorf("%w: %v", ErrPaymentVerificationFailed, err)
	}

	result := &ConfirmResult{}
	var createdSub *models.Subscription

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_order_ref = ?", req.OrderRef).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: gateway order %s", ErrOrderNotFound, req.OrderRef)
			}
			return fmt.Errorf("failed to load order: %w", err)
		}
		if req.UserID != "" && order.UserID != req.UserID {
			return fmt.Errorf("%w: gateway order %s", ErrOrderNotFound, req.OrderRef)
		}

		result.OrderID = order.ID

		if order.IsCaptured() {
			if order.SubscriptionID != nil {
				result.SubscriptionID = *order.SubscriptionID
			}
			// aborts the transaction with nothing written; converted to a
			// success no-op below
			return fmt.Errorf("%w: gateway order %s", ErrDuplicateSubmission, req.OrderRef)
		}

		order.Status = types.OrderStatusConfirmed
		order.PaymentStatus = types.PaymentStatusCaptured
		order.ExternalPaymentRef = &req.PaymentRef

		sub, err := s.subSvc.CreateFromOrder(ctx, tx, &order, req.SubscriptionRef)
		if err != nil {
			return err
		}
		order.SubscriptionID = &sub.ID
		result.SubscriptionID = sub.ID
		createdSub = sub

		if extra := order.Extra.Data(); extra != nil && extra.CouponID != "" {
			if err := s.couponSvc.Redeem(ctx, tx, extra.CouponID, order.UserID, order.ID); err != nil {
				// rolls back order capture and subscription together
				return err
			}
		}

		if err := tx.WithContext(ctx).Save(&order).Error; err != nil {
			return fmt.Errorf("failed to capture order: %w", err)
		}
		return nil
	})
	result.Duplicate, err = duplicateOutcome(err)
	if err != nil {
		return nil, err
	}

	if result.Duplicate {
		// a retry may carry the gateway subscription ref the first
		// confirmation lacked; backfill it for webhook attribution
		if req.SubscriptionRef != "" && result.SubscriptionID != "" {
			if sub, err := s.subSvc.Get(ctx, result.SubscriptionID); err == nil && sub.ExternalSubscriptionRef == nil {
				if err := s.subSvc.AttachExternalRef(ctx, sub.ID, req.SubscriptionRef); err != nil {
					logctx.FromCtx(ctx, s.log).Warnw("attach_external_ref_failed",
						"subscription_id", sub.ID, "err", err)
				}
			}
		}
		logctx.FromCtx(ctx, s.log).Infow("confirmation_duplicate",
			"order_id", result.OrderID, "subscription_id", result.SubscriptionID)
		return result, nil
	}

	// audit only after the capture transaction committed; a rollback must
	// leave no trace of a subscription that was never created
	if createdSub != nil {
		s.subSvc.LogCreated(ctx, createdSub, result.OrderID)
	}

	logctx.FromCtx(ctx, s.log).Infow("payment_captured",
		"order_id", result.OrderID, "subscription_id", result.SubscriptionID)
	return result, nil
}

// duplicateOutcome converts an ErrDuplicateSubmission abort into the
// success-no-op outcome; every other error passes through.
func duplicateOutcome(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, ErrDuplicateSubmission) {
		return true, nil
	}
	return false, err
}
