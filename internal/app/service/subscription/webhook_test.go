package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/types"
)

func webhookTestService() *Service {
	return &Service{log: zap.NewNop().Sugar()}
}

func webhookTestSub() *models.Subscription {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return &models.Subscription{
		ID:                 "sub-1",
		Status:             types.SubscriptionStatusActive,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   start.AddDate(0, 0, 7),
	}
}

func TestReconcileGatewayUpdate_IdenticalStateIsNoop(t *testing.T) {
	svc := webhookTestService()
	sub := webhookTestSub()

	changed, err := svc.reconcileGatewayUpdate(context.Background(), sub, &GatewayUpdate{
		Status:      sub.Status,
		PeriodStart: sub.CurrentPeriodStart,
		PeriodEnd:   sub.CurrentPeriodEnd,
	})
	require.NoError(t, err)
	require.False(t, changed)
}

func TestReconcileGatewayUpdate_AppliesCancellation(t *testing.T) {
	svc := webhookTestService()
	sub := webhookTestSub()

	changed, err := svc.reconcileGatewayUpdate(context.Background(), sub, &GatewayUpdate{
		Status:      types.SubscriptionStatusCanceled,
		PeriodStart: sub.CurrentPeriodStart,
		PeriodEnd:   sub.CurrentPeriodEnd,
	})
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, types.SubscriptionStatusCanceled, sub.Status)
	require.NotNil(t, sub.EndDate)
}

func TestReconcileGatewayUpdate_StaleEventCannotReviveCanceled(t *testing.T) {
	svc := webhookTestService()
	sub := webhookTestSub()
	sub.Status = types.SubscriptionStatusCanceled

	changed, err := svc.reconcileGatewayUpdate(context.Background(), sub, &GatewayUpdate{
		Status:      types.SubscriptionStatusActive,
		PeriodStart: sub.CurrentPeriodStart.AddDate(0, 0, 7),
		PeriodEnd:   sub.CurrentPeriodEnd.AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, types.SubscriptionStatusCanceled, sub.Status)
}

func TestReconcileGatewayUpdate_AdvancesPeriod(t *testing.T) {
	svc := webhookTestService()
	sub := webhookTestSub()
	newStart := sub.CurrentPeriodEnd
	newEnd := newStart.AddDate(0, 0, 7)

	changed, err := svc.reconcileGatewayUpdate(context.Background(), sub, &GatewayUpdate{
		Status:      types.SubscriptionStatusActive,
		PeriodStart: newStart,
		PeriodEnd:   newEnd,
	})
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, newStart, sub.CurrentPeriodStart)
	require.Equal(t, newEnd, sub.CurrentPeriodEnd)
}

func TestReconcileGatewayUpdate_RejectsInvertedPeriod(t *testing.T) {
	svc := webhookTestService()
	sub := webhookTestSub()
	origStart, origEnd := sub.CurrentPeriodStart, sub.CurrentPeriodEnd

	changed, err := svc.reconcileGatewayUpdate(context.Background(), sub, &GatewayUpdate{
		Status:            types.SubscriptionStatusActive,
		PeriodStart:       origEnd,
		PeriodEnd:         origStart,
		CancelAtPeriodEnd: true,
	})
	require.NoError(t, err)
	require.True(t, changed)
	// the flag applies but the inverted period is dropped
	require.True(t, sub.CancelAtPeriodEnd)
	require.Equal(t, origStart, sub.CurrentPeriodStart)
	require.Equal(t, origEnd, sub.CurrentPeriodEnd)
}

func TestReconcileGatewayDeletion_SecondDeliveryIsNoop(t *testing.T) {
	sub := webhookTestSub()

	require.True(t, reconcileGatewayDeletion(sub))
	require.Equal(t, types.SubscriptionStatusCanceled, sub.Status)
	require.NotNil(t, sub.EndDate)
	firstEnd := *sub.EndDate

	// duplicate delivery: no further mutation
	require.False(t, reconcileGatewayDeletion(sub))
	require.Equal(t, firstEnd, *sub.EndDate)
}
