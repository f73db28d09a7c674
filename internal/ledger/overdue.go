package ledger

import "github.com/mheller/debtbook/internal/model"

// IsOverdue reports whether the entry is overdue as of today (YYYY-MM-DD).
// A missing due date is always overdue. Dates compare lexicographically,
// which is valid only because of the fixed ISO format.
func IsOverdue(e model.DebtEntry, today string) bool {
	return e.DueDate == "" || e.DueDate < today
}

// Overdue returns the subset of entries overdue as of today, in input order.
func Overdue(entries []model.DebtEntry, today string) []model.DebtEntry {
	var out []model.DebtEntry
	for _, e := range entries {
		if IsOverdue(e, today) {
			out = append(out, e)
		}
	}
	return out
}
