package agent

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/papercomputeco/jigyasa/pkg/extract"
	"github.com/papercomputeco/jigyasa/pkg/finance"
	"github.com/papercomputeco/jigyasa/pkg/prompts"
)

// Extract asks the model to structure raw financial text.
func (a *Agents) Extract(ctx context.Context, rawText string) Result {
	start := time.Now()
	return a.done("extract", start, a.single(ctx, prompts.Extraction, map[string]string{
		"raw_text": rawText,
	}))
}

// Guide asks the model for Socratic valuation questions over all notes and
// the given financial data.
func (a *Agents) Guide(ctx context.Context, notes []string, financialData string) Result {
	start := time.Now()
	return a.done("guide", start, a.single(ctx, prompts.Inquiry, map[string]string{
		"notes_context":  strings.Join(notes, "\n"),
		"financial_data": financialData,
	}))
}

// XRay reads a PDF and asks the model for a structured breakdown of it.
func (a *Agents) XRay(ctx context.Context, r io.ReaderAt, size int64) Result {
	start := time.Now()
	text, err := extract.PDFText(ctx, r, size)
	if err != nil {
		return a.done("xray", start, failure(KindFetchFailed, "Error: Could not read the PDF file. Details: "+err.Error(), err))
	}
	return a.done("xray", start, a.single(ctx, prompts.XRay, map[string]string{
		"context": text,
	}))
}

// AnalyzeCompany computes the company report and asks the model for an
// investment analysis of it. The metrics are returned even when generation
// fails.
func (a *Agents) AnalyzeCompany(ctx context.Context, data finance.CompanyData) (finance.Metrics, Result) {
	start := time.Now()
	metrics := finance.Report(data)
	return metrics, a.done("analyze-company", start, a.single(ctx, prompts.CompanyAnalysis, map[string]string{
		"company_data": data.Summary(),
		"metrics":      metrics.String(),
	}))
}
