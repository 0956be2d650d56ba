package models

import (
	"strings"
	"time"

	"github.com/freshtiffin/mealbox/pkg/types"
)

// CouponCode is a promotional code. Codes are stored upper-cased and
// matched case-insensitively.
type CouponCode struct {
	ID            string             `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Code          string             `gorm:"column:code;type:varchar(64);not null;uniqueIndex" json:"code"`
	DiscountType  types.DiscountType `gorm:"column:discount_type;type:varchar(32);not null" json:"discount_type"`
	DiscountValue int64              `gorm:"column:discount_value;type:bigint;not null" json:"discount_value"`
	MinOrderValue int64              `gorm:"column:min_order_value;type:bigint;not null;default:0" json:"min_order_value"`
	IsSingleUse   bool               `gorm:"column:is_single_use;not null;default:false" json:"is_single_use"`
	// MaxUses bounds total redemptions across all users; nil means unbounded.
	MaxUses     *int64    `gorm:"column:max_uses;type:bigint;default:null" json:"max_uses"`
	CurrentUses int64     `gorm:"column:current_uses;type:bigint;not null;default:0" json:"current_uses"`
	ValidFrom   time.Time `gorm:"column:valid_from;not null" json:"valid_from"`
	ValidUntil  time.Time `gorm:"column:valid_until;not null" json:"valid_until"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CouponCode) TableName() string {
	return "coupon_code"
}

// NormalizeCouponCode canonicalizes user input for lookup.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Exhausted reports whether the global usage bound has been reached.
func (c *CouponCode) Exhausted() bool {
	return c != nil && c.MaxUses != nil && c.CurrentUses >= *c.MaxUses
}

// CouponUsage existence is the authoritative "already redeemed" record for
// a (coupon, user) pair.
type CouponUsage struct {
	ID       string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	CouponID string `gorm:"column:coupon_id;type:uuid;not null;uniqueIndex:unique_coupon_user,priority:1" json:"coupon_id"`
	UserID   string `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:unique_coupon_user,priority:2" json:"user_id"`
	OrderID  string `gorm:"column:order_id;type:uuid;not null" json:"order_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (CouponUsage) TableName() string {
	return "coupon_usage"
}
