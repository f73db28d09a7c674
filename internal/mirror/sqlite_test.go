package mirror

import (
	"path/filepath"
	"testing"

	"github.com/mheller/debtbook/internal/model"
)

func newTestMirror(t *testing.T) *SQLiteMirror {
	t.Helper()
	dir := t.TempDir()
	m, err := NewSQLiteMirror(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create mirror: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestSaveAndLoad(t *testing.T) {
	m := newTestMirror(t)

	entries := []model.DebtEntry{
		{ID: "abc123", PersonName: "Anna", Product: "Fruit", Quantity: "2kg", Amount: 5, Date: "2026-09-01", Timestamp: 1000},
	}
	if err := m.Save(KeyDebtEntries, entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got []model.DebtEntry
	found, err := m.Load(KeyDebtEntries, &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected key to exist")
	}
	if len(got) != 1 || got[0] != entries[0] {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestLoadMissingKey(t *testing.T) {
	m := newTestMirror(t)

	var got []model.DebtEntry
	found, err := m.Load("nothing", &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Error("expected missing key")
	}
	if got != nil {
		t.Errorf("expected untouched target, got %+v", got)
	}
}

func TestSaveReplacesWholesale(t *testing.T) {
	m := newTestMirror(t)

	if err := m.Save(KeyRequests, []model.Request{{ID: "a"}, {ID: "b"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := m.Save(KeyRequests, []model.Request{{ID: "c"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got []model.Request
	if _, err := m.Load(KeyRequests, &got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("expected wholesale replace, got %+v", got)
	}
}

func TestScalarValue(t *testing.T) {
	m := newTestMirror(t)

	if err := m.Save(KeyAdmin, "IB0o"); err != nil {
		t.Fatalf("save: %v", err)
	}
	var got string
	found, err := m.Load(KeyAdmin, &got)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if got != "IB0o" {
		t.Errorf("expected IB0o, got %q", got)
	}
}
