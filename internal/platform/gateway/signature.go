package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrSignatureMismatch = errors.New("gateway signature mismatch")

// signHex computes the hex-encoded HMAC-SHA256 of msg under secret.
func signHex(secret string, msg []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(msg)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyPaymentSignature checks the client-submitted checkout confirmation.
// The gateway signs "orderRef|paymentRef" with the merchant key secret.
// Comparison is constant-time.
func VerifyPaymentSignature(keySecret, orderRef, paymentRef, signature string) error {
	if keySecret == "" {
		return fmt.Errorf("gateway key secret not configured")
	}
	if orderRef == "" || paymentRef == "" || signature == "" {
		return fmt.Errorf("%w: missing fields", ErrSignatureMismatch)
	}
	expected := signHex(keySecret, []byte(orderRef+"|"+paymentRef))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// VerifyWebhookSignature checks the signature header of an asynchronous
// webhook delivery against the raw request body.
func VerifyWebhookSignature(webhookSecret string, payload []byte, signature string) error {
	if webhookSecret == "" {
		return fmt.Errorf("gateway webhook secret not configured")
	}
	if len(payload) == 0 || signature == "" {
		return fmt.Errorf("%w: missing payload or signature", ErrSignatureMismatch)
	}
	expected := signHex(webhookSecret, payload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// SignPayment mirrors the gateway-side payment signing. Test helper.
func SignPayment(keySecret, orderRef, paymentRef string) string {
	return signHex(keySecret, []byte(orderRef+"|"+paymentRef))
}

// SignWebhook mirrors the gateway-side webhook signing. Test helper.
func SignWebhook(webhookSecret string, payload []byte) string {
	return signHex(webhookSecret, payload)
}
