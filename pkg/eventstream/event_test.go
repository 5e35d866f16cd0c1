package eventstream_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/jigyasa/pkg/eventstream"
)

var _ = Describe("Event", func() {
	It("marshals NoteAddedEvent with expected top-level keys", func() {
		event := eventstream.NewNoteAddedEvent("api", "Acme margins 12%", 3)

		payload, err := json.Marshal(event)
		Expect(err).NotTo(HaveOccurred())

		var got map[string]any
		Expect(json.Unmarshal(payload, &got)).To(Succeed())

		Expect(got).To(HaveKey("schema_version"))
		Expect(got).To(HaveKeyWithValue("event_type", eventstream.EventTypeNoteAdded))
		Expect(got).To(HaveKey("event_id"))
		Expect(got).To(HaveKey("emitted_at"))
		Expect(got).To(HaveKey("source"))
		Expect(got).To(HaveKey("note"))

		note := got["note"].(map[string]any)
		Expect(note).To(HaveKeyWithValue("note_count", BeNumerically("==", 3)))
		Expect(note).To(HaveKeyWithValue("runes", BeNumerically("==", 16)))
	})

	It("gives every event a distinct id", func() {
		a := eventstream.NewAgentCompletedEvent("api", eventstream.AgentRunMeta{Operation: "ask"})
		b := eventstream.NewAgentCompletedEvent("api", eventstream.AgentRunMeta{Operation: "ask"})
		Expect(a.EventID).NotTo(Equal(b.EventID))
		Expect(a.Source.Service).To(Equal("jigyasa"))
		Expect(a.EventType).To(Equal(eventstream.EventTypeAgentCompleted))
	})

	It("defines stable event constants", func() {
		Expect(eventstream.SchemaVersionV1).To(BeNumerically(">", 0))
		Expect(eventstream.EventTypeNoteAdded).To(Equal("jigyasa.note.added"))
		Expect(eventstream.EventTypeAgentCompleted).To(Equal("jigyasa.agent.completed"))
	})

	It("provides ErrNilEvent for nil payload validation", func() {
		Expect(eventstream.ErrNilEvent).To(MatchError("nil event"))
	})
})
