package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyPaymentSignature_RoundTrip(t *testing.T) {
	sig := SignPayment("secret", "order_1", "pay_1")
	require.NoError(t, VerifyPaymentSignature("secret", "order_1", "pay_1", sig))
}

func TestVerifyPaymentSignature_Mismatch(t *testing.T) {
	sig := SignPayment("secret", "order_1", "pay_1")

	require.ErrorIs(t, VerifyPaymentSignature("secret", "order_2", "pay_1", sig), ErrSignatureMismatch)
	require.ErrorIs(t, VerifyPaymentSignature("secret", "order_1", "pay_2", sig), ErrSignatureMismatch)
	require.ErrorIs(t, VerifyPaymentSignature("other", "order_1", "pay_1", sig), ErrSignatureMismatch)
	require.ErrorIs(t, VerifyPaymentSignature("secret", "order_1", "pay_1", "deadbeef"), ErrSignatureMismatch)
}

func TestVerifyPaymentSignature_MissingFields(t *testing.T) {
	require.Error(t, VerifyPaymentSignature("", "order_1", "pay_1", "sig"))
	require.ErrorIs(t, VerifyPaymentSignature("secret", "", "pay_1", "sig"), ErrSignatureMismatch)
	require.ErrorIs(t, VerifyPaymentSignature("secret", "order_1", "", "sig"), ErrSignatureMismatch)
	require.ErrorIs(t, VerifyPaymentSignature("secret", "order_1", "pay_1", ""), ErrSignatureMismatch)
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"event":"subscription.updated"}`)
	sig := SignWebhook("whsec", payload)

	require.NoError(t, VerifyWebhookSignature("whsec", payload, sig))
	require.ErrorIs(t, VerifyWebhookSignature("whsec", []byte(`{}`), sig), ErrSignatureMismatch)
	require.ErrorIs(t, VerifyWebhookSignature("wrong", payload, sig), ErrSignatureMismatch)
	require.ErrorIs(t, VerifyWebhookSignature("whsec", nil, sig), ErrSignatureMismatch)
	require.Error(t, VerifyWebhookSignature("", payload, sig))
}
