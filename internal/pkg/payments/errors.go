package payments

import "errors"

var (
	// ErrInvalidSignature means the payload could not be authenticated.
	// Nothing is recorded and no handler runs.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrInvalidPayload means the body was missing or not a parseable event.
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrDuplicateEvent signals that the event id was already recorded.
	// It is not a failure: the dispatcher reports the delivery as processed.
	ErrDuplicateEvent = errors.New("duplicate event")

	// ErrMalformedEvent is returned by handlers when a payload of a known
	// type is missing required fields. The event record is kept and the
	// delivery is acknowledged so the provider stops retrying.
	ErrMalformedEvent = errors.New("malformed event")

	// ErrEntityNotFound is returned by handlers when an update-class event
	// references a subscription or account this system never created.
	// Handlers must never create entities from update-class events.
	ErrEntityNotFound = errors.New("referenced entity not found")
)

// IsDiscardable reports whether a handler error should be swallowed after
// logging: the event stays recorded and the provider receives a success so
// it does not retry an unrecoverable condition forever.
func IsDiscardable(err error) bool {
	return errors.Is(err, ErrMalformedEvent) || errors.Is(err, ErrEntityNotFound)
}
