package market

import "github.com/papercomputeco/jigyasa/pkg/finance"

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// rawValue is Yahoo's {"raw": 1.0, "fmt": "1.00"} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (r *rawValue) get() *float64 {
	if r == nil {
		return nil
	}
	return r.Raw
}

type quoteResult struct {
	Price *struct {
		LongName           string    `json:"longName"`
		MarketCap          *rawValue `json:"marketCap"`
		RegularMarketPrice *rawValue `json:"regularMarketPrice"`
	} `json:"price"`

	SummaryProfile *struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"summaryProfile"`

	SummaryDetail *struct {
		TrailingPE *rawValue `json:"trailingPE"`
		Beta       *rawValue `json:"beta"`
	} `json:"summaryDetail"`

	DefaultKeyStatistics *struct {
		SharesOutstanding *rawValue `json:"sharesOutstanding"`
		PriceToBook       *rawValue `json:"priceToBook"`
	} `json:"defaultKeyStatistics"`

	FinancialData *struct {
		CurrentPrice   *rawValue `json:"currentPrice"`
		TotalRevenue   *rawValue `json:"totalRevenue"`
		TotalDebt      *rawValue `json:"totalDebt"`
		TotalCash      *rawValue `json:"totalCash"`
		FreeCashflow   *rawValue `json:"freeCashflow"`
		DebtToEquity   *rawValue `json:"debtToEquity"`
		ReturnOnEquity *rawValue `json:"returnOnEquity"`
		ReturnOnAssets *rawValue `json:"returnOnAssets"`
		ProfitMargins  *rawValue `json:"profitMargins"`
	} `json:"financialData"`

	IncomeStatementHistory *struct {
		Statements []struct {
			TotalRevenue *rawValue `json:"totalRevenue"`
			NetIncome    *rawValue `json:"netIncome"`
			IncomeTax    *rawValue `json:"incomeTaxExpense"`
			PreTaxIncome *rawValue `json:"incomeBeforeTax"`
		} `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`

	BalanceSheetHistory *struct {
		Statements []struct {
			Cash                   *rawValue `json:"cash"`
			TotalAssets            *rawValue `json:"totalAssets"`
			TotalStockholderEquity *rawValue `json:"totalStockholderEquity"`
		} `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`

	CashflowStatementHistory *struct {
		Statements []struct {
			OperatingCashflow   *rawValue `json:"totalCashFromOperatingActivities"`
			CapitalExpenditures *rawValue `json:"capitalExpenditures"`
		} `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
}

// companyData maps the latest reported figures onto CompanyData. User
// assumptions (risk-free rate, premium, growth) stay nil.
func (q quoteResult) companyData(symbol string) *finance.CompanyData {
	d := &finance.CompanyData{
		Symbol:          symbol,
		ProjectionYears: finance.DefaultProjectionYears,
	}

	if p := q.Price; p != nil {
		d.CompanyName = p.LongName
		d.MarketCap = p.MarketCap.get()
		d.CurrentPrice = p.RegularMarketPrice.get()
	}
	if p := q.SummaryProfile; p != nil {
		d.Sector = p.Sector
		d.Industry = p.Industry
	}
	if s := q.SummaryDetail; s != nil {
		d.PERatio = s.TrailingPE.get()
		d.Beta = s.Beta.get()
	}
	if k := q.DefaultKeyStatistics; k != nil {
		d.SharesOutstanding = k.SharesOutstanding.get()
		d.PBRatio = k.PriceToBook.get()
	}
	if f := q.FinancialData; f != nil {
		if price := f.CurrentPrice.get(); price != nil {
			d.CurrentPrice = price
		}
		d.TotalRevenue = f.TotalRevenue.get()
		d.TotalDebt = f.TotalDebt.get()
		d.CashAndEquivalents = f.TotalCash.get()
		d.FreeCashFlow = f.FreeCashflow.get()
		d.DebtToEquity = f.DebtToEquity.get()
		d.ROE = f.ReturnOnEquity.get()
		d.ROA = f.ReturnOnAssets.get()
		d.ProfitMargin = f.ProfitMargins.get()
	}
	if h := q.IncomeStatementHistory; h != nil && len(h.Statements) > 0 {
		latest := h.Statements[0]
		if rev := latest.TotalRevenue.get(); rev != nil {
			d.TotalRevenue = rev
		}
		d.NetIncome = latest.NetIncome.get()
		tax, pretax := latest.IncomeTax.get(), latest.PreTaxIncome.get()
		if tax != nil && pretax != nil && *pretax != 0 {
			rate := finance.Round(*tax / *pretax, 4)
			d.TaxRate = &rate
		}
	}
	if h := q.BalanceSheetHistory; h != nil && len(h.Statements) > 0 {
		latest := h.Statements[0]
		if d.CashAndEquivalents == nil {
			d.CashAndEquivalents = latest.Cash.get()
		}
		d.TotalAssets = latest.TotalAssets.get()
		d.TotalEquity = latest.TotalStockholderEquity.get()
	}
	if d.FreeCashFlow == nil {
		if h := q.CashflowStatementHistory; h != nil && len(h.Statements) > 0 {
			ocf, capex := h.Statements[0].OperatingCashflow.get(), h.Statements[0].CapitalExpenditures.get()
			if ocf != nil && capex != nil {
				fcf := *ocf + *capex
				d.FreeCashFlow = &fcf
			}
		}
	}

	return d
}
