package eventlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/freshtiffin/mealbox/internal/models"
)

func TestSnapshot_NilEntry(t *testing.T) {
	rec, ok := snapshot(nil)
	require.False(t, ok)
	require.Nil(t, rec)
}

func TestSnapshot_AssignsIDWhenMissing(t *testing.T) {
	rec, ok := snapshot(&models.GatewayEventLog{})
	require.True(t, ok)
	require.NotEmpty(t, rec.ID)

	rec, ok = snapshot(&models.GatewayEventLog{ID: "fixed"})
	require.True(t, ok)
	require.Equal(t, "fixed", rec.ID)
}

func TestSnapshot_IndependentOfLaterMutation(t *testing.T) {
	// Webhook handling keeps enriching its bookkeeping after the received
	// row is handed off; the persisted copy must keep the pre-enrichment
	// content.
	entry := &models.GatewayEventLog{
		TraceID:    "trace-1",
		ReceivedAt: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		Data:       datatypes.JSON(`{"id":"evt_1"}`),
		Status:     models.GatewayEventLogStatusReceived,
	}

	rec, ok := snapshot(entry)
	require.True(t, ok)
	require.NotSame(t, entry, rec)

	entry.EventID = "evt_1"
	entry.EventType = "subscription.updated"
	entry.SubscriptionRef = "sub_ext_1"
	entry.Status = models.GatewayEventLogStatusApplied

	require.Empty(t, rec.EventID)
	require.Empty(t, rec.EventType)
	require.Empty(t, rec.SubscriptionRef)
	require.Equal(t, models.GatewayEventLogStatusReceived, rec.Status)
}
