package eventstream

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeNoteAdded is emitted after a note is appended to the notebook.
	EventTypeNoteAdded = "jigyasa.note.added"

	// EventTypeAgentCompleted is emitted after an agent operation finishes.
	EventTypeAgentCompleted = "jigyasa.agent.completed"

	// ServiceName identifies this service in event sources.
	ServiceName = "jigyasa"
)

// EventSource identifies where the event originated.
type EventSource struct {
	Service string `json:"service"`
	Origin  string `json:"origin,omitempty"`
}

// Envelope carries the fields common to every event.
type Envelope struct {
	SchemaVersion int         `json:"schema_version"`
	EventType     string      `json:"event_type"`
	EventID       string      `json:"event_id"`
	EmittedAt     time.Time   `json:"emitted_at"`
	Source        EventSource `json:"source"`
}

func newEnvelope(eventType, origin string) Envelope {
	return Envelope{
		SchemaVersion: SchemaVersionV1,
		EventType:     eventType,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		Source:        EventSource{Service: ServiceName, Origin: origin},
	}
}

// NoteAddedEvent is a transport-neutral event payload for an added note.
type NoteAddedEvent struct {
	Envelope
	Note NoteMeta `json:"note"`
}

// NoteMeta describes the added note.
type NoteMeta struct {
	Text      string `json:"text"`
	Runes     int    `json:"runes"`
	NoteCount int    `json:"note_count"`
}

// NewNoteAddedEvent builds a NoteAddedEvent. origin names the entry point
// that added the note, e.g. "api" or "ingest".
func NewNoteAddedEvent(origin, text string, noteCount int) *NoteAddedEvent {
	return &NoteAddedEvent{
		Envelope: newEnvelope(EventTypeNoteAdded, origin),
		Note: NoteMeta{
			Text:      text,
			Runes:     len([]rune(text)),
			NoteCount: noteCount,
		},
	}
}

// AgentCompletedEvent is a transport-neutral event payload for a finished
// agent operation.
type AgentCompletedEvent struct {
	Envelope
	Agent AgentRunMeta `json:"agent"`
}

// AgentRunMeta captures the outcome of one agent operation.
type AgentRunMeta struct {
	Operation  string `json:"operation"`
	Kind       string `json:"kind"`
	Failed     bool   `json:"failed"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// NewAgentCompletedEvent builds an AgentCompletedEvent.
func NewAgentCompletedEvent(origin string, run AgentRunMeta) *AgentCompletedEvent {
	return &AgentCompletedEvent{
		Envelope: newEnvelope(EventTypeAgentCompleted, origin),
		Agent:    run,
	}
}
