// Package utils provides bespoke, one off utils that don't make sense to be
// their own package
package utils

import "fmt"

// Build metadata, set through -ldflags at release time.
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)

// UserAgent identifies jigyasa to the market data hosts it queries.
func UserAgent() string {
	return fmt.Sprintf("Mozilla/5.0 (compatible; jigyasa/%s)", Version)
}
