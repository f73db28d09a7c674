package ledger

import (
	"testing"

	"github.com/mheller/debtbook/internal/model"
)

func TestIsOverdue(t *testing.T) {
	today := "2026-09-01"

	cases := []struct {
		name    string
		dueDate string
		want    bool
	}{
		{"no due date", "", true},
		{"past", "2026-08-31", true},
		{"today", "2026-09-01", false},
		{"future", "2026-09-02", false},
		{"previous year", "2025-12-31", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := model.DebtEntry{DueDate: tc.dueDate}
			if got := IsOverdue(e, today); got != tc.want {
				t.Errorf("IsOverdue(%q, %q) = %v, want %v", tc.dueDate, today, got, tc.want)
			}
		})
	}
}

func TestOverdueSubset(t *testing.T) {
	entries := []model.DebtEntry{
		{ID: "a", DueDate: ""},
		{ID: "b", DueDate: "2026-09-05"},
		{ID: "c", DueDate: "2026-08-01"},
	}

	got := Overdue(entries, "2026-09-01")
	if len(got) != 2 {
		t.Fatalf("expected 2 overdue, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("expected [a c] in input order, got %+v", got)
	}
}
