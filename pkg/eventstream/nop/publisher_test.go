package nop_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/jigyasa/pkg/eventstream"
	"github.com/papercomputeco/jigyasa/pkg/eventstream/nop"
)

var _ = Describe("Publisher", func() {
	It("creates a non-nil publisher", func() {
		p := nop.NewPublisher()
		Expect(p).NotTo(BeNil())
	})

	It("returns ErrNilEvent for nil events", func() {
		p := nop.NewPublisher()
		Expect(p.PublishNote(context.Background(), nil)).To(MatchError(eventstream.ErrNilEvent))
		Expect(p.PublishAgent(context.Background(), nil)).To(MatchError(eventstream.ErrNilEvent))
	})

	It("succeeds for non-nil events", func() {
		p := nop.NewPublisher()
		Expect(p.PublishNote(context.Background(), eventstream.NewNoteAddedEvent("api", "n", 1))).To(Succeed())
		Expect(p.PublishAgent(context.Background(), eventstream.NewAgentCompletedEvent("api", eventstream.AgentRunMeta{}))).To(Succeed())
	})

	It("closes successfully", func() {
		p := nop.NewPublisher()
		Expect(p.Close()).To(Succeed())
	})
})
