package subscription

import "errors"

var (
	// ErrInvalidTransition is returned when a state-machine precondition
	// fails. Recoverable: surfaced to the user, never retried.
	ErrInvalidTransition = errors.New("invalid subscription transition")

	// ErrDateNotDeliverable is returned when a skip targets a date the
	// calendar would not produce, or a date already in the past.
	ErrDateNotDeliverable = errors.New("date is not a skippable delivery date")

	// ErrDateNotSkipped is returned when unskip targets a date that is not
	// in the skipped set.
	ErrDateNotSkipped = errors.New("date is not skipped")

	ErrSubscriptionNotFound = errors.New("subscription not found")

	// errNoChange aborts a mutate without saving, auditing or firing the
	// change hook. Callers still get the loaded row back as success.
	errNoChange = errors.New("no change")
)
