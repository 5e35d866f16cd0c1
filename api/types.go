package api

import "github.com/papercomputeco/jigyasa/pkg/finance"

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NoteRequest adds a note.
type NoteRequest struct {
	Text string `json:"text"`
}

// NoteCountResponse acknowledges a stored note.
type NoteCountResponse struct {
	Status    string `json:"status"`
	NoteCount int    `json:"note_count"`
}

// NotesResponse lists every note in insertion order.
type NotesResponse struct {
	Notes []string `json:"notes"`
}

// QuestionRequest asks the synthesis agent a question.
type QuestionRequest struct {
	Question string `json:"question"`
}

// VerifyRequest checks a candidate note against the notebook, or against
// Notes when given.
type VerifyRequest struct {
	NewNote string   `json:"new_note"`
	Notes   []string `json:"notes,omitempty"`
}

// RawTextRequest carries unstructured text for extraction.
type RawTextRequest struct {
	Text string `json:"text"`
}

// InquiryRequest carries financial data for research guidance.
type InquiryRequest struct {
	FinancialData string `json:"financial_data"`
}

// URLRequest names an article to summarize.
type URLRequest struct {
	URL string `json:"url"`
}

// AnswerResponse is returned by /ask.
type AnswerResponse struct {
	Answer string `json:"answer"`
	Kind   string `json:"kind"`
}

// ResultResponse is returned by /check-contradictions, /verify and /xray.
type ResultResponse struct {
	Result string `json:"result"`
	Kind   string `json:"kind"`
}

// StructuredDataResponse is returned by /extract-data.
type StructuredDataResponse struct {
	StructuredData string `json:"structured_data"`
	Kind           string `json:"kind"`
}

// GuidanceResponse is returned by /guide-research.
type GuidanceResponse struct {
	Guidance string `json:"guidance"`
	Kind     string `json:"kind"`
}

// SummaryResponse is returned by /summarize-url.
type SummaryResponse struct {
	Summary string `json:"summary"`
	Kind    string `json:"kind"`
}

// FutureValueRequest is the input of /calculate-future-value.
type FutureValueRequest struct {
	PresentValue float64 `json:"present_value"`
	Rate         float64 `json:"rate"`
	Periods      int     `json:"periods"`
}

// FutureValueResponse is the output of /calculate-future-value.
type FutureValueResponse struct {
	FutureValue float64 `json:"future_value"`
}

// CompoundInterestRequest is the input of /calculate-compound-interest.
// CompoundsPerPeriod defaults to 1.
type CompoundInterestRequest struct {
	Principal          float64 `json:"principal"`
	Rate               float64 `json:"rate"`
	Periods            int     `json:"periods"`
	CompoundsPerPeriod int     `json:"compounds_per_period,omitempty"`
}

// NPVRequest is the input of /calculate-npv.
type NPVRequest struct {
	InitialInvestment float64   `json:"initial_investment"`
	CashFlows         []float64 `json:"cash_flows"`
	DiscountRate      float64   `json:"discount_rate"`
}

// BreakEvenRequest is the input of /calculate-break-even.
type BreakEvenRequest struct {
	FixedCosts          float64 `json:"fixed_costs"`
	VariableCostPerUnit float64 `json:"variable_cost_per_unit"`
	PricePerUnit        float64 `json:"price_per_unit"`
}

// WACCRequest is the input of /calculate-wacc. Rates are fractions.
type WACCRequest struct {
	MarketValueEquity float64 `json:"market_value_equity"`
	MarketValueDebt   float64 `json:"market_value_debt"`
	CostOfEquity      float64 `json:"cost_of_equity"`
	CostOfDebt        float64 `json:"cost_of_debt"`
	TaxRate           float64 `json:"tax_rate"`
}

// WACCResponse carries the WACC as a percentage.
type WACCResponse struct {
	WACC float64 `json:"wacc"`
}

// DCFRequest is the input of /calculate-dcf. Rates are fractions.
type DCFRequest struct {
	FreeCashFlow   float64 `json:"free_cash_flow"`
	GrowthRate     float64 `json:"growth_rate"`
	TerminalGrowth float64 `json:"terminal_growth"`
	WACC           float64 `json:"wacc"`
	Years          int     `json:"years"`
}

// CompanySymbolRequest names a ticker.
type CompanySymbolRequest struct {
	Symbol string `json:"symbol"`
}

// CompanyAnalysisRequest carries user-validated company data.
type CompanyAnalysisRequest struct {
	CompanyData finance.CompanyData `json:"company_data"`
}

// CompanyAnalysisResponse is the output of /analyze-company.
type CompanyAnalysisResponse struct {
	Metrics     finance.Metrics     `json:"metrics"`
	AISummary   string              `json:"ai_summary"`
	CompanyData finance.CompanyData `json:"company_data"`
	Kind        string              `json:"kind"`
}
