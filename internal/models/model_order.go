package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/freshtiffin/mealbox/pkg/types"
)

// OrderExtra is the pricing snapshot captured at checkout. Payment
// confirmation builds the subscription from this snapshot instead of
// trusting anything client-supplied.
type OrderExtra struct {
	PlanSnapshot  *types.MealPlan `json:"plan_snapshot"`
	Frequency     types.Frequency `json:"frequency"`
	VegDays       []int           `json:"veg_days"`
	WithBreakfast bool            `json:"with_breakfast"`
	StartDate     string          `json:"start_date"`
	CouponCode    string          `json:"coupon_code,omitempty"`
	CouponID      string          `json:"coupon_id,omitempty"`
	ShippingFee   int64           `json:"shipping_fee"`
	Tax           int64           `json:"tax"`
}

// Order is created once per checkout attempt and becomes immutable once
// the payment is captured.
type Order struct {
	ID             string  `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID         string  `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	SubscriptionID *string `gorm:"column:subscription_id;type:uuid;default:null" json:"subscription_id"`
	// Amount is the pre-discount base, Discount the applied coupon value,
	// Total the tax-inclusive amount submitted to the gateway.
	Amount        int64               `gorm:"column:amount;type:bigint;not null" json:"amount"`
	Discount      int64               `gorm:"column:discount;type:bigint;not null;default:0" json:"discount"`
	Total         int64               `gorm:"column:total;type:bigint;not null" json:"total"`
	Status        types.OrderStatus   `gorm:"column:status;type:varchar(16);not null" json:"status"`
	PaymentStatus types.PaymentStatus `gorm:"column:payment_status;type:varchar(16);not null" json:"payment_status"`
	// ReceiptID is the locally generated idempotent receipt forwarded to
	// the gateway when opening the order.
	ReceiptID string `gorm:"column:receipt_id;type:varchar(64);not null" json:"receipt_id"`
	// ExternalOrderRef is the gateway order id; its uniqueness is the
	// idempotency guard for duplicate confirmations.
	ExternalOrderRef   string  `gorm:"column:external_order_ref;type:varchar(128);not null;uniqueIndex" json:"external_order_ref"`
	ExternalPaymentRef *string `gorm:"column:external_payment_ref;type:varchar(128);default:null" json:"external_payment_ref"`

	Extra     datatypes.JSONType[*OrderExtra] `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time                       `json:"created_at"`
	UpdatedAt time.Time                       `json:"updated_at"`
}

func (Order) TableName() string {
	return "order"
}

func (o *Order) IsCaptured() bool {
	return o != nil && o.PaymentStatus == types.PaymentStatusCaptured
}
