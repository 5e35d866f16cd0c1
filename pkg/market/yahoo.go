package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/finance"
	"github.com/papercomputeco/jigyasa/pkg/utils"
)

const (
	// DefaultYahooURL is the public quoteSummary host.
	DefaultYahooURL = "https://query2.finance.yahoo.com"

	yahooModules = "price,summaryProfile,summaryDetail,defaultKeyStatistics,financialData," +
		"incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory"
)

// YahooConfig configures the Yahoo Finance provider.
type YahooConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Yahoo reads the quoteSummary endpoint.
type Yahoo struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ Provider = (*Yahoo)(nil)

// NewYahoo creates a Yahoo Finance provider.
func NewYahoo(cfg YahooConfig) *Yahoo {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultYahooURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Yahoo{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger,
	}
}

// Company fetches fundamentals for symbol.
func (y *Yahoo) Company(ctx context.Context, symbol string) (*finance.CompanyData, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrNotFound)
	}

	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		y.baseURL, url.PathEscape(symbol), url.QueryEscape(yahooModules))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", utils.UserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetch, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrFetch, resp.StatusCode, string(body))
	}

	var envelope quoteSummaryResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", ErrFetch, err)
	}
	if envelope.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrNotFound, symbol, envelope.QuoteSummary.Error.Description)
	}
	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}

	data := envelope.QuoteSummary.Result[0].companyData(symbol)
	y.logger.Debug("fetched company data",
		zap.String("symbol", symbol),
		zap.String("name", data.CompanyName),
	)
	return data, nil
}
