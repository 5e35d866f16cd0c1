package nop

import (
	"context"

	"github.com/papercomputeco/jigyasa/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

var _ eventstream.Publisher = (*Publisher)(nil)

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishNote validates input and otherwise does nothing.
func (p *Publisher) PublishNote(_ context.Context, event *eventstream.NoteAddedEvent) error {
	if event == nil {
		return eventstream.ErrNilEvent
	}
	return nil
}

// PublishAgent validates input and otherwise does nothing.
func (p *Publisher) PublishAgent(_ context.Context, event *eventstream.AgentCompletedEvent) error {
	if event == nil {
		return eventstream.ErrNilEvent
	}
	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
