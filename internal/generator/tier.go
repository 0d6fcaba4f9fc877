package generator

import (
	"fmt"
	"strings"
)

// Tier selects the row-count magnitude of a generated profile
type Tier string

const (
	// TierDemo produces a handful of rows per section, for quick demos
	TierDemo Tier = "demo"
	// TierLarge produces realistic volumes: a few months of daily transactions
	TierLarge Tier = "large"
)

// RowCounts is the number of rows generated for each tabular section
type RowCounts struct {
	Transactions int
	Investments  int
	Benefits     int
}

var tierRows = map[Tier]RowCounts{
	TierDemo:  {Transactions: 10, Investments: 4, Benefits: 5},
	TierLarge: {Transactions: 150, Investments: 30, Benefits: 20},
}

// Rows returns the row counts for the tier
func (t Tier) Rows() (RowCounts, bool) {
	rows, ok := tierRows[t]
	return rows, ok
}

// ParseTier converts a flag or config string into a Tier
func ParseTier(s string) (Tier, error) {
	tier := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierRows[tier]; !ok {
		return "", &InvalidArgumentError{
			Field:   "tier",
			Message: fmt.Sprintf("unknown tier %q (expected %q or %q)", s, TierDemo, TierLarge),
		}
	}
	return tier, nil
}
