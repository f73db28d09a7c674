package ledger

import (
	"strconv"
	"strings"

	"github.com/mheller/debtbook/internal/model"
)

// Filter returns the entries matching the free-text term. An empty term
// returns the input unchanged. A record matches when any of these holds:
// its name contains the term (case-insensitive), the stringified amount
// contains the term (case-sensitive), the date contains the term, or the
// product contains the term (case-insensitive). Purely derived; never
// mutates the ledger.
func Filter(entries []model.DebtEntry, term string) []model.DebtEntry {
	if term == "" {
		return entries
	}
	lower := strings.ToLower(term)
	var out []model.DebtEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.PersonName), lower) ||
			strings.Contains(formatAmount(e.Amount), term) ||
			strings.Contains(e.Date, term) ||
			strings.Contains(strings.ToLower(e.Product), lower) {
			out = append(out, e)
		}
	}
	return out
}

// formatAmount renders an amount the way it appears to users: shortest
// decimal form, no trailing zeros.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
