// Package researchcmder provides the agent commands: ask, check, verify,
// extract, guide, summarize and xray.
package researchcmder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/jigyasa/cmd/jigyasa/cmdutil"
	"github.com/papercomputeco/jigyasa/pkg/agent"
	"github.com/papercomputeco/jigyasa/pkg/apiclient"
	"github.com/papercomputeco/jigyasa/pkg/cliui"
)

const msgNoContradiction = "No contradictions found with your notes."

// NewCommands returns every research command.
func NewCommands() []*cobra.Command {
	return []*cobra.Command{
		newAskCmd(),
		newCheckCmd(),
		newVerifyCmd(),
		newExtractCmd(),
		newGuideCmd(),
		newSummarizeCmd(),
		newXRayCmd(),
	}
}

// agentCall runs one agent request behind a spinner and returns the
// response text and kind.
type agentCall func(cmd *cobra.Command, client *apiclient.Client) (text, kind string, err error)

// newAgentCmd builds a command that sends one request and renders the
// result under title.
func newAgentCmd(cmd *cobra.Command, title, step string, call agentCall) *cobra.Command {
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		client, err := cmdutil.NewClient(cmd)
		if err != nil {
			return err
		}

		var text, kind string
		err = cliui.Step(cmd.ErrOrStderr(), step, func() error {
			var err error
			text, kind, err = call(cmd, client)
			return err
		})
		if err != nil {
			return err
		}

		return cmdutil.PrintResult(cmd.OutOrStdout(), title, text, kind)
	}
	cmdutil.AddAPITargetFlag(cmd)
	return cmd
}

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question answered from your notes",
		Long: `Ask a question. The answer is grounded in the most relevant notes.

Examples:
  jigyasa ask "What drove Acme's revenue growth?"
  jigyasa ask hello`,
		Args: cobra.MinimumNArgs(1),
	}
	return newAgentCmd(cmd, "Answer", "Researching", func(cmd *cobra.Command, client *apiclient.Client) (string, string, error) {
		question, err := requiredText(cmd, "question")
		if err != nil {
			return "", "", err
		}
		resp, err := client.Ask(cmdutil.Context(cmd), question)
		return resp.Answer, resp.Kind, err
	})
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the latest note against earlier ones",
		Long: `Check whether the most recent note contradicts any earlier note.

Examples:
  jigyasa check`,
		Args: cobra.NoArgs,
	}
	return newAgentCmd(cmd, "Contradiction check", "Checking", func(cmd *cobra.Command, client *apiclient.Client) (string, string, error) {
		resp, err := client.CheckContradictions(cmdutil.Context(cmd))
		return resp.Result, resp.Kind, err
	})
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <note>",
		Short: "Verify a candidate note against your notes",
		Long: `Verify a candidate note against the notebook without adding it.

Examples:
  jigyasa verify "Acme revenue fell 5%"`,
		Args: cobra.MinimumNArgs(1),
	}
	return newAgentCmd(cmd, "Verification", "Verifying", func(cmd *cobra.Command, client *apiclient.Client) (string, string, error) {
		note, err := requiredText(cmd, "note")
		if err != nil {
			return "", "", err
		}
		resp, err := client.Verify(cmdutil.Context(cmd), note)
		if resp.Kind == string(agent.KindNoContradiction) && resp.Result == "" {
			resp.Result = msgNoContradiction
		}
		return resp.Result, resp.Kind, err
	})
}

func newExtractCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Extract structured financial data from text",
		Long: `Extract key financial figures from unstructured text as JSON.

Examples:
  jigyasa extract "Revenue was $10M with net income of $1M"
  jigyasa extract --file earnings.txt
  cat earnings.txt | jigyasa extract -`,
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the text from a file")

	return newAgentCmd(cmd, "Structured data", "Extracting", func(cmd *cobra.Command, client *apiclient.Client) (string, string, error) {
		var text string
		if file != "" {
			data, err := os.ReadFile(file)
			if err != nil {
				return "", "", fmt.Errorf("reading %s: %w", file, err)
			}
			text = string(data)
		} else {
			var err error
			if text, err = requiredText(cmd, "text"); err != nil {
				return "", "", err
			}
		}
		resp, err := client.Extract(cmdutil.Context(cmd), text)
		return resp.StructuredData, resp.Kind, err
	})
}

func newGuideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide <financial-data>",
		Short: "Get research guidance for financial data",
		Long: `Get guidance on what to research next, given financial data and your notes.

Examples:
  jigyasa guide "P/E 35, debt to equity 2.1, revenue growth 4%"`,
		Args: cobra.MinimumNArgs(1),
	}
	return newAgentCmd(cmd, "Guidance", "Thinking", func(cmd *cobra.Command, client *apiclient.Client) (string, string, error) {
		data, err := requiredText(cmd, "financial data")
		if err != nil {
			return "", "", err
		}
		resp, err := client.Guide(cmdutil.Context(cmd), data)
		return resp.Guidance, resp.Kind, err
	})
}

func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize <url>",
		Short: "Summarize an article in the context of your notes",
		Long: `Fetch an article and summarize it in the context of your notes.

Examples:
  jigyasa summarize https://example.com/acme-earnings`,
		Args: cobra.ExactArgs(1),
	}
	return newAgentCmd(cmd, "Summary", "Reading", func(cmd *cobra.Command, client *apiclient.Client) (string, string, error) {
		url, err := requiredText(cmd, "url")
		if err != nil {
			return "", "", err
		}
		resp, err := client.Summarize(cmdutil.Context(cmd), url)
		return resp.Summary, resp.Kind, err
	})
}

func newXRayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xray <file.pdf>",
		Short: "Summarize a PDF filing",
		Long: `Upload a PDF filing and get a summary of its key points.

Examples:
  jigyasa xray 10-K.pdf`,
		Args: cobra.ExactArgs(1),
	}
	return newAgentCmd(cmd, "X-Ray", "Analyzing", func(cmd *cobra.Command, client *apiclient.Client) (string, string, error) {
		path := cmd.Flags().Arg(0)
		f, err := os.Open(path)
		if err != nil {
			return "", "", fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		resp, err := client.XRay(cmdutil.Context(cmd), filepath.Base(path), f)
		return resp.Result, resp.Kind, err
	})
}

func requiredText(cmd *cobra.Command, name string) (string, error) {
	text, err := cmdutil.TextArg(cmd, cmd.Flags().Args())
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New(name + " is required")
	}
	return text, nil
}
