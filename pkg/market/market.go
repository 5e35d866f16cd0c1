// Package market fetches company fundamentals for the company report.
package market

import (
	"context"
	"errors"

	"github.com/papercomputeco/jigyasa/pkg/finance"
)

var (
	// ErrFetch wraps transport and decoding failures.
	ErrFetch = errors.New("failed to fetch company data")

	// ErrNotFound is returned when the provider knows no such symbol.
	ErrNotFound = errors.New("company not found")
)

// Provider looks up everything known about a ticker symbol. Missing data
// points are left nil rather than failing the lookup.
type Provider interface {
	Company(ctx context.Context, symbol string) (*finance.CompanyData, error)
}
