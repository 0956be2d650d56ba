package checkout

import "errors"

var (
	// ErrPaymentVerificationFailed marks a confirmation whose signature did
	// not match. Nothing is mutated.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")

	// ErrWebhookRejected marks a webhook with a bad signature or malformed
	// payload. The HTTP layer must answer non-2xx so the gateway retries.
	ErrWebhookRejected = errors.New("webhook rejected")

	// ErrDuplicateSubmission marks a confirmation whose idempotency key was
	// already processed. Internal: it aborts the capture transaction and
	// the caller converts it into the stored success outcome, so the API
	// reports a no-op success rather than an error.
	ErrDuplicateSubmission = errors.New("duplicate submission")

	ErrPlanNotFound  = errors.New("meal plan not found")
	ErrOrderNotFound = errors.New("order not found")
)
