// Package apiclient calls a running jigyasa API server. The CLI client
// commands are thin wrappers around it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/papercomputeco/jigyasa/api"
	"github.com/papercomputeco/jigyasa/pkg/finance"
)

// DefaultTimeout covers agent calls, which wait on the model.
const DefaultTimeout = 5 * time.Minute

var (
	// ErrConnect is returned when the server cannot be reached.
	ErrConnect = errors.New("failed to connect to jigyasa API")

	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("jigyasa API request failed")
)

// Client talks to one API server.
type Client struct {
	target string
	base   *url.URL
	http   *http.Client
}

// New creates a client for the server at target (e.g. http://localhost:8000).
// httpClient may be nil.
func New(target string, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid API target URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid API target URL: %q", target)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{target: target, base: base, http: httpClient}, nil
}

// Ping checks that the server is up.
func (c *Client) Ping(ctx context.Context) error {
	var out string
	return c.do(ctx, http.MethodGet, "/ping", nil, "", &out)
}

// AddNote stores a note and returns the new note count. Manual notes carry
// the manual marker.
func (c *Client) AddNote(ctx context.Context, text string, manual bool) (int, error) {
	path := "/add-note"
	if manual {
		path = "/add-manual-note"
	}
	var out api.NoteCountResponse
	if err := c.postJSON(ctx, path, api.NoteRequest{Text: text}, &out); err != nil {
		return 0, err
	}
	return out.NoteCount, nil
}

// Notes lists every note.
func (c *Client) Notes(ctx context.Context) ([]string, error) {
	var out api.NotesResponse
	if err := c.do(ctx, http.MethodGet, "/notes", nil, "", &out); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

// Ask asks a question of the notebook.
func (c *Client) Ask(ctx context.Context, question string) (api.AnswerResponse, error) {
	var out api.AnswerResponse
	err := c.postJSON(ctx, "/ask", api.QuestionRequest{Question: question}, &out)
	return out, err
}

// CheckContradictions checks the latest note against the earlier ones.
func (c *Client) CheckContradictions(ctx context.Context) (api.ResultResponse, error) {
	var out api.ResultResponse
	err := c.postJSON(ctx, "/check-contradictions", struct{}{}, &out)
	return out, err
}

// Verify checks a candidate note against the notebook.
func (c *Client) Verify(ctx context.Context, note string) (api.ResultResponse, error) {
	var out api.ResultResponse
	err := c.postJSON(ctx, "/verify", api.VerifyRequest{NewNote: note}, &out)
	return out, err
}

// Extract turns raw text into a markdown table.
func (c *Client) Extract(ctx context.Context, text string) (api.StructuredDataResponse, error) {
	var out api.StructuredDataResponse
	err := c.postJSON(ctx, "/extract-data", api.RawTextRequest{Text: text}, &out)
	return out, err
}

// Guide asks for Socratic research questions.
func (c *Client) Guide(ctx context.Context, financialData string) (api.GuidanceResponse, error) {
	var out api.GuidanceResponse
	err := c.postJSON(ctx, "/guide-research", api.InquiryRequest{FinancialData: financialData}, &out)
	return out, err
}

// Summarize summarizes an article against the notebook.
func (c *Client) Summarize(ctx context.Context, articleURL string) (api.SummaryResponse, error) {
	var out api.SummaryResponse
	err := c.postJSON(ctx, "/summarize-url", api.URLRequest{URL: articleURL}, &out)
	return out, err
}

// XRay uploads a PDF for a summary.
func (c *Client) XRay(ctx context.Context, filename string, pdf io.Reader) (api.ResultResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return api.ResultResponse{}, fmt.Errorf("building upload: %w", err)
	}
	if _, err := io.Copy(part, pdf); err != nil {
		return api.ResultResponse{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return api.ResultResponse{}, fmt.Errorf("building upload: %w", err)
	}

	var out api.ResultResponse
	err = c.do(ctx, http.MethodPost, "/xray", &buf, w.FormDataContentType(), &out)
	return out, err
}

// FutureValue computes the future value of a present amount.
func (c *Client) FutureValue(ctx context.Context, req api.FutureValueRequest) (float64, error) {
	var out api.FutureValueResponse
	err := c.postJSON(ctx, "/calculate-future-value", req, &out)
	return out.FutureValue, err
}

// CompoundInterest computes compound growth.
func (c *Client) CompoundInterest(ctx context.Context, req api.CompoundInterestRequest) (finance.CompoundResult, error) {
	var out finance.CompoundResult
	err := c.postJSON(ctx, "/calculate-compound-interest", req, &out)
	return out, err
}

// NPV computes net present value.
func (c *Client) NPV(ctx context.Context, req api.NPVRequest) (finance.NPVResult, error) {
	var out finance.NPVResult
	err := c.postJSON(ctx, "/calculate-npv", req, &out)
	return out, err
}

// BreakEven computes the break-even point.
func (c *Client) BreakEven(ctx context.Context, req api.BreakEvenRequest) (finance.BreakEvenResult, error) {
	var out finance.BreakEvenResult
	err := c.postJSON(ctx, "/calculate-break-even", req, &out)
	return out, err
}

// WACC computes the weighted average cost of capital in percent.
func (c *Client) WACC(ctx context.Context, req api.WACCRequest) (float64, error) {
	var out api.WACCResponse
	err := c.postJSON(ctx, "/calculate-wacc", req, &out)
	return out.WACC, err
}

// DCF computes a discounted cash flow valuation.
func (c *Client) DCF(ctx context.Context, req api.DCFRequest) (finance.DCFResult, error) {
	var out finance.DCFResult
	err := c.postJSON(ctx, "/calculate-dcf", req, &out)
	return out, err
}

// Company fetches the initial company data for a ticker.
func (c *Client) Company(ctx context.Context, symbol string) (*finance.CompanyData, error) {
	var out finance.CompanyData
	if err := c.postJSON(ctx, "/get-company-data", api.CompanySymbolRequest{Symbol: symbol}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeCompany computes metrics and the model's analysis for data.
func (c *Client) AnalyzeCompany(ctx context.Context, data finance.CompanyData) (api.CompanyAnalysisResponse, error) {
	var out api.CompanyAnalysisResponse
	err := c.postJSON(ctx, "/analyze-company", api.CompanyAnalysisRequest{CompanyData: data}, &out)
	return out, err
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w at %s: %v", ErrConnect, c.target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%w (HTTP %d): %s", ErrStatus, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%w (HTTP %d): %s", ErrStatus, resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}
