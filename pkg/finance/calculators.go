// Package finance implements deterministic financial calculators and the
// company metrics report.
package finance

import (
	"errors"
	"math"
)

var (
	// ErrPriceBelowVariableCost is returned by BreakEven when no unit
	// contributes to fixed costs.
	ErrPriceBelowVariableCost = errors.New("price per unit must be greater than variable cost per unit")

	// ErrZeroCapital is returned by WACC when equity and debt sum to zero.
	ErrZeroCapital = errors.New("total capital is zero")

	// ErrInvalidDCF is returned by DCF for inputs it cannot value.
	ErrInvalidDCF = errors.New("invalid inputs for DCF calculation")
)

// CompoundResult is the outcome of CompoundInterest.
type CompoundResult struct {
	FinalAmount    float64 `json:"final_amount"`
	InterestEarned float64 `json:"interest_earned"`
	Principal      float64 `json:"principal"`
}

// NPVResult is the outcome of NPV.
type NPVResult struct {
	NPV               float64 `json:"npv"`
	InitialInvestment float64 `json:"initial_investment"`
	TotalCashFlows    float64 `json:"total_cash_flows"`
	DiscountRate      float64 `json:"discount_rate"`
}

// BreakEvenResult is the outcome of BreakEven.
type BreakEvenResult struct {
	Units              float64 `json:"break_even_units"`
	Revenue            float64 `json:"break_even_revenue"`
	ContributionMargin float64 `json:"contribution_margin"`
}

// DCFResult is the outcome of DCF. Values are rounded to whole units.
type DCFResult struct {
	EnterpriseValue float64 `json:"enterprise_value"`
	PVProjectedFCF  float64 `json:"pv_projected_fcf"`
	PVTerminalValue float64 `json:"pv_terminal_value"`
	TerminalValue   float64 `json:"terminal_value"`
}

// FutureValue computes pv * (1 + rate)^periods.
func FutureValue(pv, rate float64, periods int) float64 {
	return pv * math.Pow(1+rate, float64(periods))
}

// CompoundInterest computes P(1 + r/n)^(n*t). compoundsPerPeriod below 1
// compounds once per period.
func CompoundInterest(principal, rate float64, periods, compoundsPerPeriod int) CompoundResult {
	n := float64(max(compoundsPerPeriod, 1))
	amount := principal * math.Pow(1+rate/n, n*float64(periods))
	return CompoundResult{
		FinalAmount:    Round(amount, 2),
		InterestEarned: Round(amount-principal, 2),
		Principal:      principal,
	}
}

// NPV discounts cashFlows, the first received one period from now, and
// subtracts the initial investment.
func NPV(initial float64, cashFlows []float64, rate float64) NPVResult {
	npv := -initial
	total := 0.0
	for i, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(i+1))
		total += cf
	}
	return NPVResult{
		NPV:               Round(npv, 2),
		InitialInvestment: initial,
		TotalCashFlows:    total,
		DiscountRate:      rate,
	}
}

// BreakEven computes the units and revenue at which contribution covers
// fixed costs.
func BreakEven(fixedCosts, variableCostPerUnit, pricePerUnit float64) (BreakEvenResult, error) {
	if pricePerUnit <= variableCostPerUnit {
		return BreakEvenResult{}, ErrPriceBelowVariableCost
	}
	margin := pricePerUnit - variableCostPerUnit
	units := fixedCosts / margin
	return BreakEvenResult{
		Units:              Round(units, 2),
		Revenue:            Round(units*pricePerUnit, 2),
		ContributionMargin: Round(margin, 2),
	}, nil
}

// CostOfEquity applies CAPM: rf + beta * premium. Rates are fractions.
func CostOfEquity(riskFreeRate, beta, marketRiskPremium float64) float64 {
	return riskFreeRate + beta*marketRiskPremium
}

// WACC returns the weighted average cost of capital as a percentage rounded
// to two decimals. Costs and the tax rate are fractions.
func WACC(equity, debt, costOfEquity, costOfDebt, taxRate float64) (float64, error) {
	total := equity + debt
	if total == 0 {
		return 0, ErrZeroCapital
	}
	wacc := equity/total*costOfEquity + debt/total*costOfDebt*(1-taxRate)
	return Round(wacc*100, 2), nil
}

// DCF projects fcf for years at growth, adds a Gordon terminal value and
// discounts everything at wacc. Rates are fractions.
func DCF(fcf, growth, terminalGrowth, wacc float64, years int) (DCFResult, error) {
	if fcf == 0 || wacc <= 0 || years < 1 || wacc <= terminalGrowth {
		return DCFResult{}, ErrInvalidDCF
	}

	current := fcf
	pvFCF := 0.0
	for year := 1; year <= years; year++ {
		current *= 1 + growth
		pvFCF += current / math.Pow(1+wacc, float64(year))
	}

	terminalValue := current * (1 + terminalGrowth) / (wacc - terminalGrowth)
	pvTerminal := terminalValue / math.Pow(1+wacc, float64(years))

	return DCFResult{
		EnterpriseValue: Round(pvFCF+pvTerminal, 0),
		PVProjectedFCF:  Round(pvFCF, 0),
		PVTerminalValue: Round(pvTerminal, 0),
		TerminalValue:   Round(terminalValue, 0),
	}, nil
}

// Round rounds v to places decimals, halves away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
