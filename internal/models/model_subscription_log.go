package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/freshtiffin/mealbox/pkg/types"
)

// SubscriptionLog records every subscription state change.
// Use case: troubleshooting.
type SubscriptionLog struct {
	ID             string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID         string `gorm:"column:user_id;type:varchar(64);index:idx_sub_log_user,priority:1;not null"`
	SubscriptionID string `gorm:"column:subscription_id;type:uuid;index:idx_sub_log_user,priority:2;not null"`
	// Reason is the change reason.
	Reason types.SubscriptionChangeReason `gorm:"column:reason;type:varchar(32);not null"`
	// Before/After store the subscription snapshots around the change.
	Before datatypes.JSONType[*Subscription] `gorm:"column:before;type:jsonb;default:'null'"`
	After  datatypes.JSONType[*Subscription] `gorm:"column:after;type:jsonb;default:'null'"`
	// Extra stores additional context such as the skipped date or webhook event id.
	Extra     datatypes.JSONMap `gorm:"column:extra;type:jsonb;default:'{}'"`
	CreatedAt time.Time
}

func (SubscriptionLog) TableName() string {
	return "subscription_log"
}
