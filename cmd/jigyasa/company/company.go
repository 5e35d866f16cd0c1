// Package companycmder provides the company command for fetching and
// analyzing company fundamentals.
package companycmder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/jigyasa/api"
	"github.com/papercomputeco/jigyasa/cmd/jigyasa/cmdutil"
	"github.com/papercomputeco/jigyasa/pkg/cliui"
	"github.com/papercomputeco/jigyasa/pkg/finance"
)

const companyLongDesc string = `Fetch and analyze company fundamentals.

Examples:
  jigyasa company fetch AAPL
  jigyasa company fetch AAPL --json > aapl.json
  jigyasa company analyze AAPL
  jigyasa company analyze --file aapl.json`

const companyShortDesc string = "Fetch and analyze company fundamentals"

func NewCompanyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: companyShortDesc,
		Long:  companyLongDesc,
	}

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newAnalyzeCmd())

	return cmd
}

func newFetchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fetch <symbol>",
		Short: "Fetch company data for a ticker symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cmdutil.NewClient(cmd)
			if err != nil {
				return err
			}

			var data *finance.CompanyData
			err = cliui.Step(cmd.ErrOrStderr(), "Fetching "+strings.ToUpper(args[0]), func() error {
				var err error
				data, err = client.Company(cmdutil.Context(cmd), args[0])
				return err
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			}

			printCompany(cmd.OutOrStdout(), data)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw company data as JSON")
	cmdutil.AddAPITargetFlag(cmd)

	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "analyze [symbol]",
		Short: "Compute metrics and an AI analysis for a company",
		Long: `Compute valuation metrics and an AI analysis for a company.

Pass a ticker symbol to fetch its data first, or --file with company data
saved by "jigyasa company fetch --json". Use "-" to read the file from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (len(args) == 0) {
				return errors.New("pass either a symbol or --file")
			}

			client, err := cmdutil.NewClient(cmd)
			if err != nil {
				return err
			}
			ctx := cmdutil.Context(cmd)

			var data *finance.CompanyData
			if file != "" {
				raw, err := cmdutil.ReadFileArg(cmd, file)
				if err != nil {
					return fmt.Errorf("reading %s: %w", file, err)
				}
				data = &finance.CompanyData{}
				if err := json.Unmarshal(raw, data); err != nil {
					return fmt.Errorf("parsing company data: %w", err)
				}
			} else {
				data, err = client.Company(ctx, args[0])
				if err != nil {
					return err
				}
			}

			var resp api.CompanyAnalysisResponse
			err = cliui.Step(cmd.ErrOrStderr(), "Analyzing "+data.Symbol, func() error {
				var err error
				resp, err = client.AnalyzeCompany(ctx, *data)
				return err
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printCompany(w, &resp.CompanyData)
			printMetrics(w, resp.Metrics)
			return cmdutil.PrintResult(w, "AI analysis", resp.AISummary, resp.Kind)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read company data from a JSON file")
	cmdutil.AddAPITargetFlag(cmd)

	return cmd
}

func printCompany(w io.Writer, d *finance.CompanyData) {
	rows := [][2]string{
		{"symbol", d.Symbol},
		{"company_name", d.CompanyName},
		{"sector", d.Sector},
		{"industry", d.Industry},
		{"market_cap", finance.Num(d.MarketCap)},
		{"current_price", finance.Num(d.CurrentPrice)},
		{"total_revenue", finance.Num(d.TotalRevenue)},
		{"net_income", finance.Num(d.NetIncome)},
		{"free_cash_flow", finance.Num(d.FreeCashFlow)},
		{"pe_ratio", finance.Num(d.PERatio)},
		{"beta", finance.Num(d.Beta)},
	}

	fmt.Fprintf(w, "\n  %s\n\n", cliui.HeaderStyle.Render("Company"))
	for _, r := range rows {
		cliui.KeyValue(w, r[0], len("free_cash_flow"), r[1])
	}
}

func printMetrics(w io.Writer, m finance.Metrics) {
	pairs := m.Pairs()
	width := 0
	for _, p := range pairs {
		width = max(width, len(p.Key))
	}

	fmt.Fprintf(w, "\n  %s\n\n", cliui.HeaderStyle.Render("Metrics"))
	for _, p := range pairs {
		cliui.KeyValue(w, p.Key, width, p.Value.String())
	}
	if m.DCFError != "" {
		fmt.Fprintf(w, "  %s %s\n", cliui.WarnStyle.Render("!"), m.DCFError)
	}
}
