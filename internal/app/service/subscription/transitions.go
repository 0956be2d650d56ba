package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freshtiffin/mealbox/internal/app/service/delivery"
	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/config"
	"github.com/freshtiffin/mealbox/pkg/types"
)

// resumeDeliveryLeadTime is the gap between resuming and the estimated
// next delivery.
const resumeDeliveryLeadTime = 72 * time.Hour

// transition moves the locked row to target after re-checking the edge is
// listed. No partial mutation: the row is saved once, inside the caller's
// transaction.
func (s *Service) transition(sub *models.Subscription, target types.SubscriptionStatus) error {
	if !CanTransition(sub.Status, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sub.Status, target)
	}
	sub.Status = target
	return nil
}

// Pause moves an active subscription to paused.
func (s *Service) Pause(ctx context.Context, userID, subID string) (*models.Subscription, error) {
	return s.mutate(ctx, userID, subID, types.SubscriptionChangeReasonPause, nil, func(tx *gorm.DB, sub *models.Subscription) error {
		return s.transition(sub, types.SubscriptionStatusPaused)
	})
}

// Resume moves a paused subscription back to active and refreshes the
// next-delivery estimate. The billing period is left untouched.
func (s *Service) Resume(ctx context.Context, userID, subID string) (*models.Subscription, error) {
	return s.mutate(ctx, userID, subID, types.SubscriptionChangeReasonResume, nil, func(tx *gorm.DB, sub *models.Subscription) error {
		if sub.Status != types.SubscriptionStatusPaused {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sub.Status, types.SubscriptionStatusActive)
		}
		if err := s.transition(sub, types.SubscriptionStatusActive); err != nil {
			return err
		}
		next := time.Now().Add(resumeDeliveryLeadTime)
		sub.NextDeliveryAt = &next
		return nil
	})
}

// Cancel terminates an active or paused subscription. Canceled is terminal.
func (s *Service) Cancel(ctx context.Context, userID, subID string) (*models.Subscription, error) {
	return s.mutate(ctx, userID, subID, types.SubscriptionChangeReasonCancel, nil, func(tx *gorm.DB, sub *models.Subscription) error {
		if err := s.transition(sub, types.SubscriptionStatusCanceled); err != nil {
			return err
		}
		now := time.Now()
		sub.EndDate = &now
		return nil
	})
}

// SkipDelivery removes a future delivery date from the schedule. Skipping
// an already-skipped date is a no-op success. Under the "save" policy the
// promised quota is unchanged; under "forfeit" it shrinks with the
// remaining counter when the date falls in the current period.
func (s *Service) SkipDelivery(ctx context.Context, userID, subID string, date time.Time) (*models.Subscription, error) {
	extra := datatypes.JSONMap{"date": date.Format(models.DateLayout)}
	return s.mutate(ctx, userID, subID, types.SubscriptionChangeReasonSkip, extra, func(tx *gorm.DB, sub *models.Subscription) error {
		if sub.Status != types.SubscriptionStatusActive {
			return fmt.Errorf("%w: skip requires active, got %s", ErrInvalidTransition, sub.Status)
		}
		if sub.IsSkipped(date) {
			// idempotent no-op success
			return errNoChange
		}
		if !isFutureDate(date) || !delivery.WouldDeliver(sub, date) {
			return fmt.Errorf("%w: %s", ErrDateNotDeliverable, date.Format(models.DateLayout))
		}
		sub.SkippedDates = append(sub.SkippedDates, date.Format(models.DateLayout))
		if s.cfg.SkippedMealPolicy == config.SkippedMealPolicyForfeit && s.inCurrentPeriod(sub, date) {
			forfeitSkippedMeal(sub)
		}
		return nil
	})
}

// forfeitSkippedMeal shrinks the period quota for a forfeited skip.
// Nothing to forfeit once the remaining counter hits zero.
func forfeitSkippedMeal(sub *models.Subscription) bool {
	if sub.MealsRemainingThisPeriod <= 0 {
		return false
	}
	sub.TotalMealsPromisedThisPeriod--
	sub.MealsRemainingThisPeriod--
	return true
}

// restoreForfeitedMeal reverses forfeitSkippedMeal. The calendar count for
// the period bounds the promised counter, so only a decrement that actually
// happened is reversed and an unskip can never inflate the quota past what
// the period delivers.
func restoreForfeitedMeal(sub *models.Subscription, ceiling int) bool {
	if sub.TotalMealsPromisedThisPeriod >= ceiling {
		return false
	}
	sub.TotalMealsPromisedThisPeriod++
	sub.MealsRemainingThisPeriod++
	return true
}

// UnskipDelivery restores a previously skipped future date.
func (s *Service) UnskipDelivery(ctx context.Context, userID, subID string, date time.Time) (*models.Subscription, error) {
	extra := datatypes.JSONMap{"date": date.Format(models.DateLayout)}
	return s.mutate(ctx, userID, subID, types.SubscriptionChangeReasonUnskip, extra, func(tx *gorm.DB, sub *models.Subscription) error {
		if sub.Status != types.SubscriptionStatusActive {
			return fmt.Errorf("%w: unskip requires active, got %s", ErrInvalidTransition, sub.Status)
		}
		if !sub.IsSkipped(date) {
			return fmt.Errorf("%w: %s", ErrDateNotSkipped, date.Format(models.DateLayout))
		}
		if !isFutureDate(date) {
			return fmt.Errorf("%w: %s already passed", ErrDateNotDeliverable, date.Format(models.DateLayout))
		}
		key := date.Format(models.DateLayout)
		kept := make(datatypes.JSONSlice[string], 0, len(sub.SkippedDates))
		for _, d := range sub.SkippedDates {
			if d != key {
				kept = append(kept, d)
			}
		}
		sub.SkippedDates = kept
		if s.cfg.SkippedMealPolicy == config.SkippedMealPolicyForfeit && s.inCurrentPeriod(sub, date) {
			ceiling := delivery.PromisedMeals(sub.PlanSnapshot(), sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.StartDate, sub.EndDate)
			restoreForfeitedMeal(sub, ceiling)
		}
		return nil
	})
}

// mutate runs one guarded transition: lock, ownership check, apply, save,
// then audit-log and fire the change hook after commit. An apply returning
// errNoChange short-circuits: the row is not re-saved and no audit row or
// hook fires.
func (s *Service) mutate(ctx context.Context, userID, subID string, reason types.SubscriptionChangeReason, extra datatypes.JSONMap, apply func(tx *gorm.DB, sub *models.Subscription) error) (*models.Subscription, error) {
	var before, after *models.Subscription
	noop := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := s.lockForUpdate(ctx, tx, subID)
		if err != nil {
			return err
		}
		if userID != "" && sub.UserID != userID {
			return ErrSubscriptionNotFound
		}

		snapshot := *sub
		before = &snapshot

		if err := apply(tx, sub); err != nil {
			if errors.Is(err, errNoChange) {
				noop = true
				after = sub
				return nil
			}
			return err
		}

		if err := tx.WithContext(ctx).Save(sub).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}
		after = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !noop {
		s.logChange(ctx, before, after, reason, extra)
		go s.handleSubscriptionChange(ctx, after, reason)
	}
	return after, nil
}

func (s *Service) inCurrentPeriod(sub *models.Subscription, date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return !d.Before(sub.CurrentPeriodStart) && d.Before(sub.CurrentPeriodEnd)
}

func isFutureDate(date time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return d.After(today)
}
