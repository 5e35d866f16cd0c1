package eventstream

import "context"

// Publisher publishes events to an event stream backend.
type Publisher interface {
	PublishNote(ctx context.Context, event *NoteAddedEvent) error
	PublishAgent(ctx context.Context, event *AgentCompletedEvent) error
	Close() error
}
