package ledger

import "github.com/mheller/debtbook/internal/model"

// Summary holds the session totals shown on the admin overview.
type Summary struct {
	TotalDebts      int     `json:"totalDebts"`
	TotalAmount     float64 `json:"totalAmount"`
	LogCount        int     `json:"logCount"`
	PendingRequests int     `json:"pendingRequests"`
}

// Summary computes totals over the live collections.
func (l *Ledger) Summary() Summary {
	s := Summary{
		TotalDebts: len(l.entries),
		LogCount:   len(l.logs),
	}
	for _, e := range l.entries {
		s.TotalAmount += e.Amount
	}
	for _, r := range l.requests {
		if r.Status == model.StatusPending {
			s.PendingRequests++
		}
	}
	return s
}
