package notification

import "errors"

// Domain errors for notification operations.
var (
	// ErrInvalidDefinition is returned when a notification definition is malformed.
	ErrInvalidDefinition = errors.New("notification.invalid_definition")

	// ErrDuplicateDefinition is returned when a notification name is registered twice.
	ErrDuplicateDefinition = errors.New("notification.duplicate_definition")

	// ErrNotRegistered is returned when an operation names an unknown notification.
	ErrNotRegistered = errors.New("notification.not_registered")

	// ErrMissingUserID is returned when a subscription operation receives the zero user ID.
	ErrMissingUserID = errors.New("notification.missing_user_id")

	// ErrPublisherClosed is returned when publishing after Close.
	ErrPublisherClosed = errors.New("notification.publisher_closed")

	// ErrQueueFull is returned when the publish queue is saturated.
	// Publishing never blocks on delivery; callers decide whether to retry.
	ErrQueueFull = errors.New("notification.queue_full")
)
