package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/freshtiffin/mealbox/pkg/types"
)

type EventType string

const (
	EventSubscriptionUpdated EventType = "subscription.updated"
	EventSubscriptionDeleted EventType = "subscription.deleted"
)

// Event is a gateway webhook payload. Deliveries are unordered and may be
// duplicated; EventSubscription.Ref is the mandatory correlation id.
type Event struct {
	ID           string             `json:"id"`
	Type         EventType          `json:"event"`
	CreatedAt    int64              `json:"created_at"`
	Subscription *EventSubscription `json:"subscription"`
}

type EventSubscription struct {
	Ref                string `json:"id"`
	Status             string `json:"status"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
}

func (s *EventSubscription) PeriodStart() time.Time { return time.Unix(s.CurrentPeriodStart, 0).UTC() }
func (s *EventSubscription) PeriodEnd() time.Time   { return time.Unix(s.CurrentPeriodEnd, 0).UTC() }

// ParseEvent decodes and structurally validates a webhook payload. Events
// without a correlation id are malformed: attribution by heuristics (for
// example "most recent subscription without a ref") is not allowed.
func ParseEvent(payload []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}
	switch ev.Type {
	case EventSubscriptionUpdated, EventSubscriptionDeleted:
	default:
		return nil, fmt.Errorf("unsupported webhook event type: %q", ev.Type)
	}
	if ev.Subscription == nil || ev.Subscription.Ref == "" {
		return nil, fmt.Errorf("webhook event %q missing subscription correlation id", ev.Type)
	}
	return &ev, nil
}

// MapSubscriptionStatus translates a gateway subscription status into the
// internal three-state enumeration. Unknown statuses are not mapped.
func MapSubscriptionStatus(gatewayStatus string) (types.SubscriptionStatus, bool) {
	switch gatewayStatus {
	case "active", "past_due":
		return types.SubscriptionStatusActive, true
	case "canceled", "cancelled", "unpaid":
		return types.SubscriptionStatusCanceled, true
	default:
		return "", false
	}
}
