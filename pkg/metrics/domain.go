package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters. Registered on the default registry; the metrics
// listener exposes them alongside the HTTP request metrics.
var (
	CheckoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealbox_checkout_total",
		Help: "Checkout attempts by result.",
	}, []string{"result"})

	PaymentCaptureTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealbox_payment_capture_total",
		Help: "Payment confirmations by result.",
	}, []string{"result"})

	WebhookEventTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealbox_gateway_webhook_total",
		Help: "Gateway webhook deliveries by outcome.",
	}, []string{"outcome"})

	QuotaAnomalyTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealbox_quota_anomaly_total",
		Help: "Delivery confirmations arriving beyond the promised quota.",
	})

	PeriodRolloverTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealbox_period_rollover_total",
		Help: "Subscription periods rolled over.",
	})
)
