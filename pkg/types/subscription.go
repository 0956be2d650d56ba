package types

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPaused   SubscriptionStatus = "paused"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// Frequency is the billing cadence of a subscription.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyWeekly || f == FrequencyMonthly
}

// AdvancePeriod returns the start of the period following start.
func (f Frequency) AdvancePeriod(start time.Time) time.Time {
	if f == FrequencyMonthly {
		return start.AddDate(0, 1, 0)
	}
	return start.AddDate(0, 0, 7)
}

type SubscriptionChangeReason string

const (
	SubscriptionChangeReasonCheckout  SubscriptionChangeReason = "checkout"
	SubscriptionChangeReasonPause     SubscriptionChangeReason = "pause"
	SubscriptionChangeReasonResume    SubscriptionChangeReason = "resume"
	SubscriptionChangeReasonCancel    SubscriptionChangeReason = "cancel"
	SubscriptionChangeReasonSkip      SubscriptionChangeReason = "skip"
	SubscriptionChangeReasonUnskip    SubscriptionChangeReason = "unskip"
	SubscriptionChangeReasonRollover  SubscriptionChangeReason = "rollover"
	SubscriptionChangeReasonDelivered SubscriptionChangeReason = "delivered"
	SubscriptionChangeReasonWebhook   SubscriptionChangeReason = "webhook"
)
