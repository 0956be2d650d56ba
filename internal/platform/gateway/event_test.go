package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/freshtiffin/mealbox/pkg/types"
)

func TestParseEvent_Valid(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"event": "subscription.updated",
		"created_at": 1750000000,
		"subscription": {
			"id": "sub_ext_1",
			"status": "active",
			"current_period_start": 1750000000,
			"current_period_end": 1750604800,
			"cancel_at_period_end": true
		}
	}`)

	ev, err := ParseEvent(payload)
	require.NoError(t, err)
	require.Equal(t, "evt_1", ev.ID)
	require.Equal(t, EventSubscriptionUpdated, ev.Type)
	require.Equal(t, "sub_ext_1", ev.Subscription.Ref)
	require.True(t, ev.Subscription.CancelAtPeriodEnd)
	require.Equal(t, time.Unix(1750000000, 0).UTC(), ev.Subscription.PeriodStart())
	require.Equal(t, time.Unix(1750604800, 0).UTC(), ev.Subscription.PeriodEnd())
}

func TestParseEvent_MissingCorrelationID(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"no_subscription", `{"id":"evt_1","event":"subscription.deleted"}`},
		{"empty_ref", `{"id":"evt_1","event":"subscription.deleted","subscription":{"id":""}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEvent([]byte(tc.payload))
			require.Error(t, err)
			require.Contains(t, err.Error(), "correlation id")
		})
	}
}

func TestParseEvent_UnsupportedType(t *testing.T) {
	_, err := ParseEvent([]byte(`{"id":"evt_1","event":"invoice.paid","subscription":{"id":"sub_ext_1"}}`))
	require.Error(t, err)
}

func TestParseEvent_MalformedJSON(t *testing.T) {
	_, err := ParseEvent([]byte(`{not json`))
	require.Error(t, err)
}

func TestMapSubscriptionStatus(t *testing.T) {
	cases := []struct {
		in   string
		want types.SubscriptionStatus
		ok   bool
	}{
		{"active", types.SubscriptionStatusActive, true},
		{"past_due", types.SubscriptionStatusActive, true},
		{"canceled", types.SubscriptionStatusCanceled, true},
		{"cancelled", types.SubscriptionStatusCanceled, true},
		{"unpaid", types.SubscriptionStatusCanceled, true},
		{"trialing", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := MapSubscriptionStatus(tc.in)
		require.Equal(t, tc.ok, ok, "status %q", tc.in)
		require.Equal(t, tc.want, got, "status %q", tc.in)
	}
}
