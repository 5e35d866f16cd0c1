package finance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// assumedCostOfDebt is used for WACC when the report has no debt pricing.
const assumedCostOfDebt = 0.05

// DefaultProjectionYears is the DCF horizon when none is given.
const DefaultProjectionYears = 5

// NA is how an uncomputable metric is rendered.
const NA = "N/A"

// CompanyData is everything known about a company. Missing numbers are nil.
// Percent-valued inputs (risk-free rate, market risk premium, growth rates)
// are given in percent; TaxRate is a fraction.
type CompanyData struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"company_name,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Industry    string `json:"industry,omitempty"`

	MarketCap         *float64 `json:"market_cap"`
	CurrentPrice      *float64 `json:"current_price"`
	SharesOutstanding *float64 `json:"shares_outstanding"`

	TotalRevenue       *float64 `json:"total_revenue"`
	NetIncome          *float64 `json:"net_income"`
	TotalDebt          *float64 `json:"total_debt"`
	CashAndEquivalents *float64 `json:"cash_and_equivalents"`
	TotalAssets        *float64 `json:"total_assets"`
	TotalEquity        *float64 `json:"total_equity"`
	FreeCashFlow       *float64 `json:"free_cash_flow"`

	PERatio      *float64 `json:"pe_ratio"`
	PBRatio      *float64 `json:"pb_ratio"`
	DebtToEquity *float64 `json:"debt_to_equity"`
	ROE          *float64 `json:"roe"`
	ROA          *float64 `json:"roa"`
	ProfitMargin *float64 `json:"profit_margin"`

	Beta              *float64 `json:"beta"`
	RiskFreeRate      *float64 `json:"risk_free_rate"`
	MarketRiskPremium *float64 `json:"market_risk_premium"`
	TaxRate           *float64 `json:"tax_rate"`

	RevenueGrowthRate  *float64 `json:"revenue_growth_rate"`
	TerminalGrowthRate *float64 `json:"terminal_growth_rate"`
	ProjectionYears    int      `json:"projection_years"`
}

// Summary returns the identifying subset of the data used in analysis
// prompts.
func (c *CompanyData) Summary() string {
	return fmt.Sprintf("company_name: %s, sector: %s, industry: %s, market_cap: %s, current_price: %s",
		c.CompanyName, c.Sector, c.Industry, Num(c.MarketCap), Num(c.CurrentPrice))
}

// Value is a metric that may be unavailable. It marshals to a JSON number or
// to "N/A".
type Value struct {
	V  float64
	OK bool
}

// Some wraps a computed metric.
func Some(v float64) Value { return Value{V: v, OK: true} }

func (v Value) String() string {
	if !v.OK {
		return NA
	}
	return strconv.FormatFloat(v.V, 'f', -1, 64)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.OK {
		return json.Marshal(NA)
	}
	return json.Marshal(v.V)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*v = Value{}
		return nil
	}
	*v = Some(f)
	return nil
}

// Metrics is the computed company report.
type Metrics struct {
	ProfitMargin           Value  `json:"profit_margin"`
	ROE                    Value  `json:"roe"`
	ROA                    Value  `json:"roa"`
	DebtToEquity           Value  `json:"debt_to_equity"`
	CostOfEquity           Value  `json:"cost_of_equity"`
	WACC                   Value  `json:"wacc"`
	EnterpriseValue        Value  `json:"enterprise_value"`
	PVProjectedFCF         Value  `json:"pv_projected_fcf"`
	PVTerminalValue        Value  `json:"pv_terminal_value"`
	TerminalValue          Value  `json:"terminal_value"`
	EquityValue            Value  `json:"equity_value"`
	IntrinsicValuePerShare Value  `json:"intrinsic_value_per_share"`
	UpsideDownsidePercent  Value  `json:"upside_downside_percent"`
	DCFError               string `json:"dcf_error,omitempty"`
}

// MetricPair is one named metric.
type MetricPair struct {
	Key   string
	Value Value
}

// Pairs lists the reported metrics in display order.
func (m Metrics) Pairs() []MetricPair {
	return []MetricPair{
		{"profit_margin", m.ProfitMargin},
		{"roe", m.ROE},
		{"roa", m.ROA},
		{"debt_to_equity", m.DebtToEquity},
		{"cost_of_equity", m.CostOfEquity},
		{"wacc", m.WACC},
		{"enterprise_value", m.EnterpriseValue},
		{"pv_projected_fcf", m.PVProjectedFCF},
		{"pv_terminal_value", m.PVTerminalValue},
		{"equity_value", m.EquityValue},
		{"intrinsic_value_per_share", m.IntrinsicValuePerShare},
		{"upside_downside_percent", m.UpsideDownsidePercent},
	}
}

// String renders the metrics as "key: value" pairs for prompts.
func (m Metrics) String() string {
	pairs := m.Pairs()
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.Key + ": " + p.Value.String()
	}
	return strings.Join(parts, ", ")
}

// Report computes every metric the data allows. A zero input counts as
// missing.
func Report(d CompanyData) Metrics {
	var m Metrics

	if has(d.NetIncome) && has(d.TotalRevenue) {
		m.ProfitMargin = Some(Round(*d.NetIncome / *d.TotalRevenue * 100, 2))
	}
	if has(d.NetIncome) && has(d.TotalEquity) {
		m.ROE = Some(Round(*d.NetIncome / *d.TotalEquity * 100, 2))
	}
	if has(d.NetIncome) && has(d.TotalAssets) {
		m.ROA = Some(Round(*d.NetIncome / *d.TotalAssets * 100, 2))
	}
	if has(d.TotalDebt) && has(d.TotalEquity) {
		m.DebtToEquity = Some(Round(*d.TotalDebt / *d.TotalEquity, 2))
	}

	if has(d.RiskFreeRate) && has(d.Beta) && has(d.MarketRiskPremium) {
		coe := CostOfEquity(*d.RiskFreeRate/100, *d.Beta, *d.MarketRiskPremium/100)
		m.CostOfEquity = Some(Round(coe*100, 2))
	}

	if has(d.MarketCap) && has(d.TotalDebt) && m.CostOfEquity.OK && has(d.TaxRate) {
		if wacc, err := WACC(*d.MarketCap, *d.TotalDebt, m.CostOfEquity.V/100, assumedCostOfDebt, *d.TaxRate); err == nil {
			m.WACC = Some(wacc)
		}
	}

	if has(d.FreeCashFlow) && has(d.RevenueGrowthRate) && has(d.TerminalGrowthRate) && m.WACC.OK {
		years := d.ProjectionYears
		if years == 0 {
			years = DefaultProjectionYears
		}
		dcf, err := DCF(*d.FreeCashFlow, *d.RevenueGrowthRate/100, *d.TerminalGrowthRate/100, m.WACC.V/100, years)
		if err != nil {
			m.DCFError = err.Error()
		} else {
			m.EnterpriseValue = Some(dcf.EnterpriseValue)
			m.PVProjectedFCF = Some(dcf.PVProjectedFCF)
			m.PVTerminalValue = Some(dcf.PVTerminalValue)
			m.TerminalValue = Some(dcf.TerminalValue)
		}
	}

	if m.EnterpriseValue.OK && has(d.TotalDebt) && has(d.CashAndEquivalents) && has(d.SharesOutstanding) {
		equity := m.EnterpriseValue.V - *d.TotalDebt + *d.CashAndEquivalents
		perShare := equity / *d.SharesOutstanding
		m.EquityValue = Some(Round(equity, 0))
		m.IntrinsicValuePerShare = Some(Round(perShare, 2))
		if has(d.CurrentPrice) {
			m.UpsideDownsidePercent = Some(Round((perShare-*d.CurrentPrice) / *d.CurrentPrice * 100, 2))
		}
	}

	return m
}

// Num renders an optional number, "N/A" when missing.
func Num(p *float64) string {
	if p == nil {
		return NA
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func has(p *float64) bool {
	return p != nil && *p != 0
}
