package subscription

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/config"
	"github.com/freshtiffin/mealbox/pkg/logctx"
	"github.com/freshtiffin/mealbox/pkg/tool"
	"github.com/freshtiffin/mealbox/pkg/types"
)

type Service struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, db: db, log: log}
}

// allowedTransitions is the closed transition table. Anything not listed
// here is rejected with ErrInvalidTransition; canceled has no exits.
var allowedTransitions = map[types.SubscriptionStatus][]types.SubscriptionStatus{
	types.SubscriptionStatusActive:   {types.SubscriptionStatusPaused, types.SubscriptionStatusCanceled},
	types.SubscriptionStatusPaused:   {types.SubscriptionStatusActive, types.SubscriptionStatusCanceled},
	types.SubscriptionStatusCanceled: {},
}

// CanTransition reports whether from→to is a listed edge.
func CanTransition(from, to types.SubscriptionStatus) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// lockForUpdate loads the subscription row under FOR UPDATE so concurrent
// transitions serialize and preconditions hold for the whole transaction.
func (s *Service) lockForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Subscription, error) {
	var sub models.Subscription
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

// Get loads a subscription by id without locking.
func (s *Service) Get(ctx context.Context, id string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

// logChange writes the audit row asynchronously; errors are logged but not
// returned, the business transaction has already committed.
func (s *Service) logChange(ctx context.Context, before, after *models.Subscription, reason types.SubscriptionChangeReason, extra datatypes.JSONMap) {
	go func() {
		if extra == nil {
			extra = datatypes.JSONMap{}
		}
		entry := &models.SubscriptionLog{
			ID:             tool.GenerateUUIDV7(),
			UserID:         after.UserID,
			SubscriptionID: after.ID,
			Reason:         reason,
			Before:         datatypes.NewJSONType(before),
			After:          datatypes.NewJSONType(after),
			Extra:          extra,
		}
		if err := s.db.Save(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save subscription log: %v", err)
		}
	}()
}

// handleSubscriptionChange is the post-commit notification hook. SMS/email
// collaborators attach here; content formatting is out of scope.
func (s *Service) handleSubscriptionChange(ctx context.Context, sub *models.Subscription, reason types.SubscriptionChangeReason) {
	logctx.FromCtx(ctx, s.log).Infow("subscription_changed",
		"subscription_id", sub.ID,
		"user_id", sub.UserID,
		"status", sub.Status,
		"reason", reason,
	)
}
