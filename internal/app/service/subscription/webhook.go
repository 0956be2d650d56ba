package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/logctx"
	"github.com/freshtiffin/mealbox/pkg/types"
)

// GatewayUpdate is the already-verified, already-mapped content of a
// subscription-updated webhook event.
type GatewayUpdate struct {
	Status            types.SubscriptionStatus
	PeriodStart       time.Time
	PeriodEnd         time.Time
	CancelAtPeriodEnd bool
}

// ApplyGatewayUpdate reconciles gateway-reported subscription state with
// the stored row, correlated strictly by external_subscription_ref.
// Idempotent: an event identical to stored state returns (false, nil)
// without touching the row.
func (s *Service) ApplyGatewayUpdate(ctx context.Context, externalRef string, upd *GatewayUpdate) (bool, error) {
	return s.applyWebhook(ctx, externalRef, "update", func(sub *models.Subscription) (bool, error) {
		return s.reconcileGatewayUpdate(ctx, sub, upd)
	})
}

func (s *Service) reconcileGatewayUpdate(ctx context.Context, sub *models.Subscription, upd *GatewayUpdate) (bool, error) {
	samePeriod := sub.CurrentPeriodStart.Equal(upd.PeriodStart) && sub.CurrentPeriodEnd.Equal(upd.PeriodEnd)
	if sub.Status == upd.Status && samePeriod && sub.CancelAtPeriodEnd == upd.CancelAtPeriodEnd {
		return false, nil
	}
	if sub.IsCanceled() && upd.Status != types.SubscriptionStatusCanceled {
		// canceled is terminal; a stale out-of-order event cannot revive it
		logctx.FromCtx(ctx, s.log).Warnw("webhook_ignored_terminal",
			"subscription_id", sub.ID, "gateway_status", upd.Status)
		return false, nil
	}

	if sub.Status != upd.Status {
		if upd.Status == types.SubscriptionStatusCanceled {
			now := time.Now()
			sub.EndDate = &now
		}
		sub.Status = upd.Status
	}
	if !samePeriod && upd.PeriodEnd.After(upd.PeriodStart) {
		sub.CurrentPeriodStart = upd.PeriodStart
		sub.CurrentPeriodEnd = upd.PeriodEnd
	}
	sub.CancelAtPeriodEnd = upd.CancelAtPeriodEnd
	return true, nil
}

// ApplyGatewayDeletion handles a subscription-deleted event: canceled with
// end_date now. A second delivery finds the row already canceled and
// reports "already applied" via (false, nil).
func (s *Service) ApplyGatewayDeletion(ctx context.Context, externalRef string) (bool, error) {
	return s.applyWebhook(ctx, externalRef, "deletion", func(sub *models.Subscription) (bool, error) {
		return reconcileGatewayDeletion(sub), nil
	})
}

func reconcileGatewayDeletion(sub *models.Subscription) bool {
	if sub.IsCanceled() {
		return false
	}
	now := time.Now()
	sub.Status = types.SubscriptionStatusCanceled
	sub.EndDate = &now
	sub.CancelAtPeriodEnd = false
	return true
}

// AttachExternalRef stores the gateway correlation id on a subscription
// that does not have one yet.
func (s *Service) AttachExternalRef(ctx context.Context, subID, externalRef string) error {
	_, err := s.mutate(ctx, "", subID, types.SubscriptionChangeReasonWebhook,
		datatypes.JSONMap{"external_subscription_ref": externalRef},
		func(tx *gorm.DB, sub *models.Subscription) error {
			if sub.ExternalSubscriptionRef != nil && *sub.ExternalSubscriptionRef != externalRef {
				return fmt.Errorf("subscription %s already bound to ref %s", sub.ID, *sub.ExternalSubscriptionRef)
			}
			sub.ExternalSubscriptionRef = &externalRef
			return nil
		})
	return err
}

func (s *Service) applyWebhook(ctx context.Context, externalRef, kind string, apply func(sub *models.Subscription) (bool, error)) (bool, error) {
	var before, after *models.Subscription
	applied := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub models.Subscription
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_subscription_ref = ?", externalRef).
			First(&sub).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: external ref %s", ErrSubscriptionNotFound, externalRef)
			}
			return fmt.Errorf("failed to load subscription by ref: %w", err)
		}

		snapshot := sub
		before = &snapshot

		changed, err := apply(&sub)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		if err := tx.WithContext(ctx).Save(&sub).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}
		after = &sub
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if applied {
		s.logChange(ctx, before, after, types.SubscriptionChangeReasonWebhook, datatypes.JSONMap{"kind": kind})
		go s.handleSubscriptionChange(ctx, after, types.SubscriptionChangeReasonWebhook)
	}
	return applied, nil
}
