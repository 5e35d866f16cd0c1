// Package jigyasacmder is the root jigyasa command.
package jigyasacmder

import (
	"github.com/spf13/cobra"

	authcmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/auth"
	calccmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/calc"
	companycmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/company"
	configcmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/config"
	initcmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/init"
	notecmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/note"
	researchcmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/research"
	servecmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/serve"
	versioncmder "github.com/papercomputeco/jigyasa/cmd/version"
)

const jigyasaLongDesc string = `Jigyasa is a research notebook with AI agents for financial analysis.

Run the server with:
  jigyasa serve        Run the API and MCP server

Then work with it from the CLI:
  jigyasa note add "..."       Add a research note
  jigyasa ask "..."            Ask a question grounded in your notes
  jigyasa check                Check the latest note for contradictions
  jigyasa summarize <url>      Summarize an article against your notes
  jigyasa xray <file.pdf>      Summarize a PDF filing
  jigyasa calc npv ...         Run a financial calculator
  jigyasa company analyze AAPL Compute metrics for a company`

const jigyasaShortDesc string = "Jigyasa - financial research notebook"

func NewJigyasaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jigyasa",
		Short:         jigyasaShortDesc,
		Long:          jigyasaLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .jigyasa/ config directory")

	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(notecmder.NewNoteCmd())
	cmd.AddCommand(researchcmder.NewCommands()...)
	cmd.AddCommand(calccmder.NewCalcCmd())
	cmd.AddCommand(companycmder.NewCompanyCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
