package eventstream

import "errors"

var (
	// ErrNilEvent indicates a nil event payload was provided to a publisher.
	ErrNilEvent = errors.New("nil event")

	// ErrPublish wraps failures to deliver an event to the backend.
	ErrPublish = errors.New("publish failed")
)
