package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/jigyasa/pkg/agent"
	jigyasalogger "github.com/papercomputeco/jigyasa/pkg/logger"
	"github.com/papercomputeco/jigyasa/pkg/notebook"
	testutils "github.com/papercomputeco/jigyasa/pkg/utils/test"
)

var _ = Describe("Research tools", func() {
	var (
		ctx    context.Context
		gen    *testutils.MockGenerator
		notes  *notebook.Notebook
		server *Server
	)

	BeforeEach(func() {
		ctx = context.Background()
		gen = testutils.NewMockGenerator("tool answer")
		notes = notebook.New(nil)

		agents, err := agent.New(agent.Config{
			Embedder:     testutils.NewMockEmbedder(),
			IndexFactory: testutils.NewMockIndexFactory().Factory(),
			Generate:     gen.CallFunc(),
			Extractor:    testutils.NewMockExtractor("article body"),
		})
		Expect(err).NotTo(HaveOccurred())

		server, err = NewServer(Config{Agents: agents, Notes: notes, Logger: jigyasalogger.Nop()})
		Expect(err).NotTo(HaveOccurred())
	})

	textOf := func(res *mcp.CallToolResult) string {
		Expect(res.Content).To(HaveLen(1))
		tc, ok := res.Content[0].(*mcp.TextContent)
		Expect(ok).To(BeTrue())
		return tc.Text
	}

	It("adds notes and answers from them", func() {
		_, added, err := server.handleAddNote(ctx, nil, AddNoteInput{Text: "Acme margins rose."})
		Expect(err).NotTo(HaveOccurred())
		Expect(added.NoteCount).To(Equal(1))

		res, out, err := server.handleAsk(ctx, nil, AskInput{Question: "What happened to margins?"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IsError).To(BeFalse())
		Expect(out).To(Equal(AgentOutput{Result: "tool answer", Kind: string(agent.KindAnswer)}))
		Expect(textOf(res)).To(Equal("tool answer"))
		Expect(gen.LastPrompt()).To(ContainSubstring("Acme margins rose."))
	})

	It("marks manual notes", func() {
		_, _, err := server.handleAddNote(ctx, nil, AddNoteInput{Text: "from chat", Manual: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(notes.Snapshot()).To(Equal([]string{notebook.ManualPrefix + "from chat"}))
	})

	It("rejects blank notes as tool errors", func() {
		res, _, err := server.handleAddNote(ctx, nil, AddNoteInput{Text: " "})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IsError).To(BeTrue())
		Expect(notes.Len()).To(Equal(0))
	})

	It("reports insufficient notes for the contradiction check", func() {
		_, out, err := server.handleCheckContradictions(ctx, nil, CheckInput{})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Kind).To(Equal(string(agent.KindInsufficientNotes)))
		Expect(gen.Calls()).To(Equal(0))
	})

	It("flags generation failures as tool errors", func() {
		gen.Err = testutils.ErrMockGeneration
		res, out, err := server.handleExtractData(ctx, nil, ExtractInput{Text: "Revenue $5M"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IsError).To(BeTrue())
		Expect(out.Kind).To(Equal(string(agent.KindGenerationFailed)))
	})

	It("guides research and summarizes URLs against the notes", func() {
		notes.Add("Debt rose sharply.")

		_, out, err := server.handleGuideResearch(ctx, nil, GuideInput{FinancialData: "D/E 2.5"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Result).To(Equal("tool answer"))

		_, out, err = server.handleSummarizeURL(ctx, nil, SummarizeInput{URL: "https://example.com/a"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Kind).To(Equal(string(agent.KindAnswer)))

		res, _, err := server.handleSummarizeURL(ctx, nil, SummarizeInput{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IsError).To(BeTrue())
	})
})
