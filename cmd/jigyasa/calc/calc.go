// Package calccmder provides the financial calculator commands.
package calccmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/jigyasa/api"
	"github.com/papercomputeco/jigyasa/cmd/jigyasa/cmdutil"
	"github.com/papercomputeco/jigyasa/pkg/apiclient"
	"github.com/papercomputeco/jigyasa/pkg/cliui"
)

const calcLongDesc string = `Run financial calculators on the jigyasa server.

Rates are decimals (0.08 is 8%). WACC is reported as a percentage.

Examples:
  jigyasa calc fv --present-value 1000 --rate 0.05 --periods 10
  jigyasa calc compound --principal 1000 --rate 0.05 --periods 10 --compounds 12
  jigyasa calc npv --initial 1000 --cash-flows 300,400,500 --rate 0.08
  jigyasa calc breakeven --fixed-costs 10000 --variable-cost 20 --price 120
  jigyasa calc wacc --equity 600 --debt 400 --cost-of-equity 0.1 --cost-of-debt 0.05 --tax-rate 0.25
  jigyasa calc dcf --fcf 100 --growth 0.05 --terminal-growth 0.02 --wacc 0.08 --years 5`

const calcShortDesc string = "Run financial calculators"

// row is one labelled output value.
type row struct {
	key   string
	value float64
}

// calculation sends one calculator request and returns the rows to print.
type calculation func(cmd *cobra.Command, client *apiclient.Client) ([]row, error)

func NewCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: calcShortDesc,
		Long:  calcLongDesc,
	}

	cmd.AddCommand(newFutureValueCmd())
	cmd.AddCommand(newCompoundCmd())
	cmd.AddCommand(newNPVCmd())
	cmd.AddCommand(newBreakEvenCmd())
	cmd.AddCommand(newWACCCmd())
	cmd.AddCommand(newDCFCmd())

	return cmd
}

func newCalcCmd(cmd *cobra.Command, title string, calc calculation) *cobra.Command {
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		client, err := cmdutil.NewClient(cmd)
		if err != nil {
			return err
		}

		rows, err := calc(cmd, client)
		if err != nil {
			return err
		}

		printRows(cmd.OutOrStdout(), title, rows)
		return nil
	}
	cmdutil.AddAPITargetFlag(cmd)
	return cmd
}

func printRows(w io.Writer, title string, rows []row) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.key))
	}

	fmt.Fprintf(w, "\n  %s\n\n", cliui.HeaderStyle.Render(title))
	for _, r := range rows {
		cliui.KeyValue(w, r.key, width, fmt.Sprintf("%.2f", r.value))
	}
	fmt.Fprintln(w)
}

func newFutureValueCmd() *cobra.Command {
	var req api.FutureValueRequest
	cmd := &cobra.Command{Use: "fv", Short: "Future value of a present amount"}
	cmd.Flags().Float64Var(&req.PresentValue, "present-value", 0, "Present value")
	cmd.Flags().Float64Var(&req.Rate, "rate", 0, "Rate per period as a decimal")
	cmd.Flags().IntVar(&req.Periods, "periods", 0, "Number of periods")

	return newCalcCmd(cmd, "Future value", func(cmd *cobra.Command, client *apiclient.Client) ([]row, error) {
		fv, err := client.FutureValue(cmdutil.Context(cmd), req)
		return []row{{"future_value", fv}}, err
	})
}

func newCompoundCmd() *cobra.Command {
	var req api.CompoundInterestRequest
	cmd := &cobra.Command{Use: "compound", Short: "Compound interest on a principal"}
	cmd.Flags().Float64Var(&req.Principal, "principal", 0, "Principal")
	cmd.Flags().Float64Var(&req.Rate, "rate", 0, "Rate per period as a decimal")
	cmd.Flags().IntVar(&req.Periods, "periods", 0, "Number of periods")
	cmd.Flags().IntVar(&req.CompoundsPerPeriod, "compounds", 1, "Compounding events per period")

	return newCalcCmd(cmd, "Compound interest", func(cmd *cobra.Command, client *apiclient.Client) ([]row, error) {
		res, err := client.CompoundInterest(cmdutil.Context(cmd), req)
		return []row{
			{"final_amount", res.FinalAmount},
			{"interest_earned", res.InterestEarned},
			{"principal", res.Principal},
		}, err
	})
}

func newNPVCmd() *cobra.Command {
	var req api.NPVRequest
	cmd := &cobra.Command{Use: "npv", Short: "Net present value of cash flows"}
	cmd.Flags().Float64Var(&req.InitialInvestment, "initial", 0, "Initial investment")
	cmd.Flags().Float64SliceVar(&req.CashFlows, "cash-flows", nil, "Cash flow per period, comma-separated")
	cmd.Flags().Float64Var(&req.DiscountRate, "rate", 0, "Discount rate as a decimal")

	return newCalcCmd(cmd, "Net present value", func(cmd *cobra.Command, client *apiclient.Client) ([]row, error) {
		res, err := client.NPV(cmdutil.Context(cmd), req)
		return []row{
			{"npv", res.NPV},
			{"initial_investment", res.InitialInvestment},
			{"total_cash_flows", res.TotalCashFlows},
			{"discount_rate", res.DiscountRate},
		}, err
	})
}

func newBreakEvenCmd() *cobra.Command {
	var req api.BreakEvenRequest
	cmd := &cobra.Command{Use: "breakeven", Short: "Break-even units and revenue"}
	cmd.Flags().Float64Var(&req.FixedCosts, "fixed-costs", 0, "Fixed costs")
	cmd.Flags().Float64Var(&req.VariableCostPerUnit, "variable-cost", 0, "Variable cost per unit")
	cmd.Flags().Float64Var(&req.PricePerUnit, "price", 0, "Price per unit")

	return newCalcCmd(cmd, "Break-even", func(cmd *cobra.Command, client *apiclient.Client) ([]row, error) {
		res, err := client.BreakEven(cmdutil.Context(cmd), req)
		return []row{
			{"break_even_units", res.Units},
			{"break_even_revenue", res.Revenue},
			{"contribution_margin", res.ContributionMargin},
		}, err
	})
}

func newWACCCmd() *cobra.Command {
	var req api.WACCRequest
	cmd := &cobra.Command{Use: "wacc", Short: "Weighted average cost of capital"}
	cmd.Flags().Float64Var(&req.MarketValueEquity, "equity", 0, "Market value of equity")
	cmd.Flags().Float64Var(&req.MarketValueDebt, "debt", 0, "Market value of debt")
	cmd.Flags().Float64Var(&req.CostOfEquity, "cost-of-equity", 0, "Cost of equity as a decimal")
	cmd.Flags().Float64Var(&req.CostOfDebt, "cost-of-debt", 0, "Cost of debt as a decimal")
	cmd.Flags().Float64Var(&req.TaxRate, "tax-rate", 0, "Tax rate as a decimal")

	return newCalcCmd(cmd, "WACC", func(cmd *cobra.Command, client *apiclient.Client) ([]row, error) {
		wacc, err := client.WACC(cmdutil.Context(cmd), req)
		return []row{{"wacc", wacc}}, err
	})
}

func newDCFCmd() *cobra.Command {
	var req api.DCFRequest
	cmd := &cobra.Command{Use: "dcf", Short: "Discounted cash flow valuation"}
	cmd.Flags().Float64Var(&req.FreeCashFlow, "fcf", 0, "Current free cash flow")
	cmd.Flags().Float64Var(&req.GrowthRate, "growth", 0, "Growth rate during projection as a decimal")
	cmd.Flags().Float64Var(&req.TerminalGrowth, "terminal-growth", 0, "Terminal growth rate as a decimal")
	cmd.Flags().Float64Var(&req.WACC, "wacc", 0, "Discount rate as a decimal")
	cmd.Flags().IntVar(&req.Years, "years", 5, "Projection years")

	return newCalcCmd(cmd, "Discounted cash flow", func(cmd *cobra.Command, client *apiclient.Client) ([]row, error) {
		res, err := client.DCF(cmdutil.Context(cmd), req)
		return []row{
			{"enterprise_value", res.EnterpriseValue},
			{"pv_projected_fcf", res.PVProjectedFCF},
			{"pv_terminal_value", res.PVTerminalValue},
			{"terminal_value", res.TerminalValue},
		}, err
	})
}
