package researchcmder_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/jigyasa/cmd/jigyasa/cmdutil/cmdtest"
	researchcmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/research"
	"github.com/papercomputeco/jigyasa/pkg/agent"
)

func command(name string) *cobra.Command {
	for _, cmd := range researchcmder.NewCommands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	Fail("no command " + name)
	return nil
}

var _ = Describe("Research commands", func() {
	var server *cmdtest.Server

	run := func(name string, args ...string) (string, error) {
		return cmdtest.Execute(server.URL, command(name), append([]string{name}, args...)...)
	}

	BeforeEach(func() {
		var err error
		server, err = cmdtest.NewServer(nil, "model output")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(server.Close)
	})

	It("provides every agent command", func() {
		names := []string{}
		for _, cmd := range researchcmder.NewCommands() {
			names = append(names, cmd.Name())
			Expect(cmd.Flags().Lookup("api-target")).NotTo(BeNil(), cmd.Name())
		}
		Expect(names).To(ConsistOf("ask", "check", "verify", "extract", "guide", "summarize", "xray"))
	})

	Describe("ask", func() {
		It("answers from the notes", func() {
			server.Notes.Add("Acme grew 12%.")

			out, err := run("ask", "How", "is", "Acme?")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("model output"))
			Expect(server.Generator.LastPrompt()).To(ContainSubstring("How is Acme?"))
		})

		It("answers greetings without the model", func() {
			out, err := run("ask", "hello")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("How can I help"))
			Expect(server.Generator.Calls()).To(BeZero())
		})

		It("requires arguments", func() {
			_, err := run("ask")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("check", func() {
		It("needs two notes", func() {
			server.Notes.Add("only one")

			out, err := run("check")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("at least two notes"))
		})

		It("reports a clean check", func() {
			server.Generator.Responses = []string{"NO_CONTRADICTION"}
			server.Notes.Add("Acme grew.")
			server.Notes.Add("Acme hired.")

			out, err := run("check")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("No contradictions"))
		})
	})

	Describe("verify", func() {
		It("shows the contradiction", func() {
			server.Generator.Responses = []string{"CONTRADICTION: revenue direction differs"}
			server.Notes.Add("Acme revenue grew.")

			out, err := run("verify", "Acme revenue fell.")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("revenue direction differs"))
			Expect(server.Notes.Len()).To(Equal(1))
		})

		It("explains an empty result", func() {
			out, err := run("verify", "Anything")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("No contradictions found"))
		})
	})

	Describe("extract", func() {
		It("extracts from an argument", func() {
			out, err := run("extract", "Revenue was $10M")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("model output"))
			Expect(server.Generator.LastPrompt()).To(ContainSubstring("Revenue was $10M"))
		})

		It("extracts from a file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "earnings.txt")
			Expect(os.WriteFile(path, []byte("Net income of $1M"), 0o600)).To(Succeed())

			_, err := run("extract", "--file", path)
			Expect(err).NotTo(HaveOccurred())
			Expect(server.Generator.LastPrompt()).To(ContainSubstring("Net income of $1M"))
		})

		It("requires text", func() {
			_, err := run("extract")
			Expect(err).To(MatchError(ContainSubstring("text is required")))
		})
	})

	Describe("guide", func() {
		It("sends the financial data", func() {
			_, err := run("guide", "P/E 35")
			Expect(err).NotTo(HaveOccurred())
			Expect(server.Generator.LastPrompt()).To(ContainSubstring("P/E 35"))
		})
	})

	Describe("summarize", func() {
		It("summarizes the article", func() {
			server.Notes.Add("Acme context")

			out, err := run("summarize", "https://example.com/acme")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("model output"))
			Expect(server.Extractor.URLs).To(ContainElement("https://example.com/acme"))
		})

		It("reports an empty notebook", func() {
			out, err := run("summarize", "https://example.com/acme")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("notebook is empty"))
		})
	})

	Describe("xray", func() {
		It("fails for an unreadable PDF", func() {
			path := filepath.Join(GinkgoT().TempDir(), "filing.pdf")
			Expect(os.WriteFile(path, []byte("not a pdf"), 0o600)).To(Succeed())

			out, err := run("xray", path)
			Expect(err).To(MatchError(ContainSubstring(string(agent.KindFetchFailed))))
			Expect(out).To(ContainSubstring("Could not read the PDF"))
		})

		It("fails for a missing file", func() {
			_, err := run("xray", filepath.Join(GinkgoT().TempDir(), "missing.pdf"))
			Expect(err).To(MatchError(ContainSubstring("opening")))
		})
	})
})
