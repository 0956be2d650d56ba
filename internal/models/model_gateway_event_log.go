package models

import (
	"time"

	"gorm.io/datatypes"
)

type GatewayEventLogStatus string

const (
	GatewayEventLogStatusReceived GatewayEventLogStatus = "received"
	GatewayEventLogStatusApplied  GatewayEventLogStatus = "applied"
	GatewayEventLogStatusIgnored  GatewayEventLogStatus = "ignored"
	GatewayEventLogStatusRejected GatewayEventLogStatus = "rejected"
)

// GatewayEventLog is the audit trail for asynchronous gateway webhooks.
// Every delivery is logged as received and again with its final outcome.
type GatewayEventLog struct {
	ID      string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	EventID string `gorm:"column:event_id;type:varchar(128)" json:"event_id"`
	// SubscriptionRef is the gateway correlation id carried in the event.
	SubscriptionRef string                `gorm:"column:subscription_ref;type:varchar(128)" json:"subscription_ref"`
	TraceID         string                `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	EventType       string                `gorm:"column:event_type;type:varchar(64)" json:"event_type"`
	ReceivedAt      time.Time             `gorm:"column:received_at" json:"received_at"`
	Data            datatypes.JSON        `gorm:"column:data;type:jsonb" json:"data"`
	Result          *datatypes.JSON       `gorm:"column:result;type:jsonb" json:"result"`
	Status          GatewayEventLogStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func (GatewayEventLog) TableName() string { return "gateway_event_log" }
