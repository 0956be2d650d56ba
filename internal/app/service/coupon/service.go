package coupon

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/tool"
)

// ErrCouponInvalid marks expected validation failures: expired, exhausted,
// minimum order unmet, already redeemed. Checkout surfaces the reason and
// proceeds without the discount.
var ErrCouponInvalid = errors.New("coupon invalid")

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// Lookup finds a coupon by code, case-insensitively. A missing code is an
// ErrCouponInvalid, not a fault.
func (s *Service) Lookup(ctx context.Context, code string) (*models.CouponCode, error) {
	normalized := models.NormalizeCouponCode(code)
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty code", ErrCouponInvalid)
	}
	var c models.CouponCode
	if err := s.db.WithContext(ctx).Where("UPPER(code) = ?", normalized).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: code %s not found", ErrCouponInvalid, normalized)
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	return &c, nil
}

// HasUsage reports whether the user already redeemed the coupon. Checkout
// uses it as the pre-check; Redeem re-checks under lock inside the capture
// transaction.
func (s *Service) HasUsage(ctx context.Context, couponID, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.CouponUsage{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check coupon usage: %w", err)
	}
	return count > 0, nil
}

// Redeem records a redemption inside the caller's transaction, the same
// one that captures the order. The coupon row is locked so two concurrent
// checkouts cannot both pass the bound check; the unique (coupon, user)
// index on coupon_usage is the final backstop for single-use codes.
func (s *Service) Redeem(ctx context.Context, tx *gorm.DB, couponID, userID, orderID string) error {
	var c models.CouponCode
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", couponID).
		First(&c).Error
	if err != nil {
		return fmt.Errorf("failed to lock coupon: %w", err)
	}

	if c.Exhausted() {
		return fmt.Errorf("%w: max uses reached", ErrCouponInvalid)
	}

	if c.IsSingleUse {
		var count int64
		if err := tx.WithContext(ctx).
			Model(&models.CouponUsage{}).
			Where("coupon_id = ? AND user_id = ?", c.ID, userID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to re-check coupon usage: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: already redeemed by user", ErrCouponInvalid)
		}
	}

	usage := &models.CouponUsage{
		ID:       tool.GenerateUUIDV7(),
		CouponID: c.ID,
		UserID:   userID,
		OrderID:  orderID,
	}
	if err := tx.WithContext(ctx).Create(usage).Error; err != nil {
		return fmt.Errorf("failed to record coupon usage: %w", err)
	}

	if err := tx.WithContext(ctx).
		Model(&models.CouponCode{}).
		Where("id = ?", c.ID).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1")).Error; err != nil {
		return fmt.Errorf("failed to increment coupon uses: %w", err)
	}
	return nil
}
