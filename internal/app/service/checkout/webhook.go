package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	subsvc "github.com/freshtiffin/mealbox/internal/app/service/subscription"
	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/internal/platform/gateway"
	"github.com/freshtiffin/mealbox/pkg/logctx"
)

// WebhookOutcome is reported back to the webhook collaborator.
type WebhookOutcome string

const (
	WebhookOutcomeApplied  WebhookOutcome = "applied"
	WebhookOutcomeIgnored  WebhookOutcome = "ignored"
	WebhookOutcomeRejected WebhookOutcome = "rejected"
)

// HandleWebhook processes one asynchronous gateway event. The signature
// is verified against the raw body before anything is mutated; rejected
// events carry ErrWebhookRejected so the HTTP layer answers non-2xx and
// the gateway retries. Applying an event identical to stored state is an
// ignored no-op.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature, traceID string) (outcome WebhookOutcome, resErr error) {
	receivedAt := time.Now()

	// Each audit row gets its own struct: Save writes asynchronously, so
	// nothing handed to it may be mutated afterwards.
	s.events.Save(ctx, &models.GatewayEventLog{
		TraceID:    traceID,
		ReceivedAt: receivedAt,
		Data:       datatypes.JSON(payload),
		Status:     models.GatewayEventLogStatusReceived,
	})

	var eventID, eventType, subscriptionRef string
	defer func() {
		final := &models.GatewayEventLog{
			EventID:         eventID,
			SubscriptionRef: subscriptionRef,
			TraceID:         traceID,
			EventType:       eventType,
			ReceivedAt:      receivedAt,
			Data:            datatypes.JSON(payload),
			Status:          models.GatewayEventLogStatus(outcome),
		}
		resMap := map[string]any{"outcome": outcome}
		if resErr != nil {
			resMap["error"] = resErr.Error()
		}
		if resBytes, err := json.Marshal(resMap); err == nil {
			j := datatypes.JSON(resBytes)
			final.Result = &j
		}
		s.events.Save(ctx, final)
	}()

	if err := gateway.VerifyWebhookSignature(s.cfg.Gateway.WebhookSecret, payload, signature); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("webhook_signature_rejected", "err", err)
		return WebhookOutcomeRejected, fmt.Errorf("%w: %v", ErrWebhookRejected, err)
	}

	ev, err := gateway.ParseEvent(payload)
	if err != nil {
		return WebhookOutcomeRejected, fmt.Errorf("%w: %v", ErrWebhookRejected, err)
	}
	eventID = ev.ID
	eventType = string(ev.Type)
	subscriptionRef = ev.Subscription.Ref

	var applied bool
	switch ev.Type {
	case gateway.EventSubscriptionUpdated:
		status, ok := gateway.MapSubscriptionStatus(ev.Subscription.Status)
		if !ok {
			return WebhookOutcomeRejected, fmt.Errorf("%w: unknown gateway status %q", ErrWebhookRejected, ev.Subscription.Status)
		}
		applied, err = s.subSvc.ApplyGatewayUpdate(ctx, ev.Subscription.Ref, &subsvc.GatewayUpdate{
			Status:            status,
			PeriodStart:       ev.Subscription.PeriodStart(),
			PeriodEnd:         ev.Subscription.PeriodEnd(),
			CancelAtPeriodEnd: ev.Subscription.CancelAtPeriodEnd,
		})
	case gateway.EventSubscriptionDeleted:
		applied, err = s.subSvc.ApplyGatewayDeletion(ctx, ev.Subscription.Ref)
	}

	if err != nil {
		if errors.Is(err, subsvc.ErrSubscriptionNotFound) {
			// confirmation may not have landed yet; reject so the gateway
			// redelivers later
			return WebhookOutcomeRejected, fmt.Errorf("%w: %v", ErrWebhookRejected, err)
		}
		return WebhookOutcomeRejected, err
	}

	if !applied {
		logctx.FromCtx(ctx, s.log).Infow("webhook_already_applied",
			"event_id", ev.ID, "subscription_ref", ev.Subscription.Ref)
		return WebhookOutcomeIgnored, nil
	}
	return WebhookOutcomeApplied, nil
}
