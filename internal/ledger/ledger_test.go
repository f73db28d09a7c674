package ledger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mheller/debtbook/internal/ident"
	"github.com/mheller/debtbook/internal/mirror"
	"github.com/mheller/debtbook/internal/model"
)

var testTime = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestMirror(t *testing.T) *mirror.SQLiteMirror {
	t.Helper()
	dir := t.TempDir()
	m, err := mirror.NewSQLiteMirror(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create mirror: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return openTestLedger(t, newTestMirror(t))
}

func openTestLedger(t *testing.T, m mirror.Mirror) *Ledger {
	t.Helper()
	l, err := Open(m, Options{
		AdminSecret: "IB0o",
		Now:         func() time.Time { return testTime },
		IDs:         ident.NewSeeded(1),
	})
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	return l
}

func validInput() EntryInput {
	return EntryInput{
		PersonName: "Anna",
		Product:    "Fruit",
		Quantity:   "2kg",
		Amount:     5.00,
		Location:   "557",
	}
}

func TestCreate(t *testing.T) {
	l := newTestLedger(t)

	entry, err := l.Create(validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(entry.ID) != 6 {
		t.Errorf("expected 6-char id, got %q", entry.ID)
	}
	if entry.Date != "2026-09-01" {
		t.Errorf("expected default date 2026-09-01, got %q", entry.Date)
	}
	if entry.Timestamp != testTime.UnixMilli() {
		t.Errorf("expected timestamp %d, got %d", testTime.UnixMilli(), entry.Timestamp)
	}

	if got := l.Entries(); len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}

	logs := l.AuditLog()
	if len(logs) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(logs))
	}
	if logs[0].Action != model.ActionCreate {
		t.Errorf("expected create action, got %q", logs[0].Action)
	}
	if logs[0].OldState != nil {
		t.Error("expected nil old state on create")
	}
	if logs[0].NewState == nil || logs[0].NewState.ID != entry.ID {
		t.Errorf("expected new state snapshot of %s", entry.ID)
	}
	if logs[0].Details != "Created debt entry for Anna - €5.00" {
		t.Errorf("unexpected details: %q", logs[0].Details)
	}
}

func TestCreateValidation(t *testing.T) {
	l := newTestLedger(t)

	cases := []struct {
		name  string
		mod   func(*EntryInput)
		field string
	}{
		{"missing name", func(in *EntryInput) { in.PersonName = "  " }, "personName"},
		{"missing quantity", func(in *EntryInput) { in.Quantity = "" }, "quantity"},
		{"zero amount", func(in *EntryInput) { in.Amount = 0 }, "amount"},
		{"negative amount", func(in *EntryInput) { in.Amount = -3 }, "amount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mod(&in)
			_, err := l.Create(in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, ve.Field)
			}
		})
	}

	if len(l.Entries()) != 0 || len(l.AuditLog()) != 0 {
		t.Error("failed creates must not mutate state")
	}
}

func TestCreateProductSet(t *testing.T) {
	m := newTestMirror(t)
	l, err := Open(m, Options{
		Products: []string{"Fruit", "Vegetable"},
		Now:      func() time.Time { return testTime },
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	in := validInput()
	in.Product = "Electronics"
	_, err = l.Create(in)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "product" {
		t.Fatalf("expected product validation error, got %v", err)
	}
}

func TestMergeOnCreate(t *testing.T) {
	l := newTestLedger(t)

	first, err := l.Create(EntryInput{PersonName: "Anna", Product: "Otto", Quantity: "2kg", Amount: 5.00})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same name (case-insensitive) and product merges instead of inserting.
	merged, err := l.Create(EntryInput{PersonName: "anna", Product: "Otto", Quantity: "1kg", Amount: 3.00})
	if err != nil {
		t.Fatalf("merge create: %v", err)
	}

	if got := l.Entries(); len(got) != 1 {
		t.Fatalf("expected 1 entry after merge, got %d", len(got))
	}
	if merged.ID != first.ID {
		t.Errorf("merge must preserve id: %q vs %q", merged.ID, first.ID)
	}
	if merged.Amount != 8.00 {
		t.Errorf("expected amount 8.00, got %v", merged.Amount)
	}
	if merged.Quantity != "2kg + 1kg" {
		t.Errorf("expected quantity \"2kg + 1kg\", got %q", merged.Quantity)
	}
	if merged.Date != first.Date {
		t.Errorf("merge must preserve date")
	}

	logs := l.AuditLog()
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(logs))
	}
	last := logs[1]
	if last.Action != model.ActionUpdate {
		t.Errorf("expected update action for merge, got %q", last.Action)
	}
	if last.OldState == nil || last.OldState.Amount != 5.00 {
		t.Errorf("expected old state with amount 5.00, got %+v", last.OldState)
	}
	if last.NewState == nil || last.NewState.Amount != 8.00 {
		t.Errorf("expected new state with amount 8.00, got %+v", last.NewState)
	}
}

func TestMergeNotes(t *testing.T) {
	l := newTestLedger(t)

	cases := []struct {
		name string
		old  string
		new  string
		want string
	}{
		{"both", "first", "second", "first; second"},
		{"old only", "first", "", "first"},
		{"new only", "", "second", "second"},
		{"neither", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.PersonName = "note-" + tc.name
			in.Note = tc.old
			if _, err := l.Create(in); err != nil {
				t.Fatalf("create: %v", err)
			}
			in.Note = tc.new
			merged, err := l.Create(in)
			if err != nil {
				t.Fatalf("merge: %v", err)
			}
			if merged.Note != tc.want {
				t.Errorf("expected note %q, got %q", tc.want, merged.Note)
			}
		})
	}
}

func TestMergeRequiresSameProduct(t *testing.T) {
	l := newTestLedger(t)

	l.Create(EntryInput{PersonName: "Anna", Product: "Fruit", Quantity: "2kg", Amount: 5})
	l.Create(EntryInput{PersonName: "Anna", Product: "Vegetable", Quantity: "1kg", Amount: 3})

	if got := l.Entries(); len(got) != 2 {
		t.Fatalf("expected 2 entries for different products, got %d", len(got))
	}
}

func TestUpdate(t *testing.T) {
	l := newTestLedger(t)

	entry, _ := l.Create(validInput())

	in := validInput()
	in.Amount = 7.50
	in.Note = "paid partially"
	updated, err := l.Update(entry.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != entry.ID {
		t.Errorf("update must keep id")
	}
	if updated.Amount != 7.50 || updated.Note != "paid partially" {
		t.Errorf("unexpected updated entry: %+v", updated)
	}

	logs := l.AuditLog()
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(logs))
	}
	if logs[1].Action != model.ActionUpdate {
		t.Errorf("expected update action, got %q", logs[1].Action)
	}
	if logs[1].OldState == nil || logs[1].OldState.Amount != 5.00 {
		t.Errorf("expected old snapshot with amount 5.00")
	}
	if logs[1].NewState == nil || logs[1].NewState.Amount != 7.50 {
		t.Errorf("expected new snapshot with amount 7.50")
	}
}

func TestUpdateMissingID(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.Update("zzzzzz", validInput())
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(l.AuditLog()) != 0 {
		t.Error("failed update must not log")
	}
}

func TestDelete(t *testing.T) {
	l := newTestLedger(t)

	entry, _ := l.Create(validInput())

	if err := l.Delete(entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(l.Entries()) != 0 {
		t.Error("expected empty ledger after delete")
	}

	logs := l.AuditLog()
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(logs))
	}
	if logs[1].Action != model.ActionDelete {
		t.Errorf("expected delete action, got %q", logs[1].Action)
	}
	if logs[1].NewState != nil {
		t.Error("expected nil new state on delete")
	}
	if logs[1].OldState == nil || logs[1].OldState.ID != entry.ID {
		t.Error("expected old state snapshot on delete")
	}

	if _, err := l.FindByID(entry.ID); !IsNotFound(err) {
		t.Errorf("expected NotFoundError after delete, got %v", err)
	}

	if err := l.Delete(entry.ID); !IsNotFound(err) {
		t.Errorf("expected NotFoundError on second delete, got %v", err)
	}
}

func TestFindByID(t *testing.T) {
	l := newTestLedger(t)

	entry, _ := l.Create(validInput())

	got, err := l.FindByID(entry.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.PersonName != "Anna" {
		t.Errorf("expected Anna, got %q", got.PersonName)
	}

	// No partial matching.
	if _, err := l.FindByID(entry.ID[:3]); !IsNotFound(err) {
		t.Errorf("expected NotFoundError for partial id, got %v", err)
	}
}

func TestAuditSnapshotsAreCopies(t *testing.T) {
	l := newTestLedger(t)

	entry, _ := l.Create(validInput())

	in := validInput()
	in.Amount = 9
	l.Update(entry.ID, in)

	// Mutating a returned snapshot must not affect the stored log.
	logs := l.AuditLog()
	logs[1].NewState.Amount = 999

	again := l.AuditLog()
	if again[1].NewState.Amount != 9 {
		t.Errorf("audit snapshot shared with caller: %v", again[1].NewState.Amount)
	}
}

func TestPersistenceAcrossSessions(t *testing.T) {
	m := newTestMirror(t)

	l := openTestLedger(t, m)
	entry, err := l.Create(validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := l.Submit("need extension"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// A fresh session fully replaces its state from the mirror.
	reopened := openTestLedger(t, m)
	got, err := reopened.FindByID(entry.ID)
	if err != nil {
		t.Fatalf("find after reopen: %v", err)
	}
	if *got != *entry {
		t.Errorf("entry changed across sessions:\n%+v\n%+v", got, entry)
	}
	if len(reopened.AuditLog()) != 1 {
		t.Errorf("expected 1 audit entry after reopen, got %d", len(reopened.AuditLog()))
	}
	if len(reopened.Requests()) != 1 {
		t.Errorf("expected 1 request after reopen, got %d", len(reopened.Requests()))
	}
}

func TestLogin(t *testing.T) {
	m := newTestMirror(t)

	l := openTestLedger(t, m)
	if l.IsAdmin() {
		t.Fatal("fresh session must not be admin")
	}

	ok, err := l.Login("wrong")
	if err != nil || ok {
		t.Fatalf("expected rejected login, got ok=%v err=%v", ok, err)
	}

	ok, err = l.Login("IB0o")
	if err != nil || !ok {
		t.Fatalf("expected accepted login, got ok=%v err=%v", ok, err)
	}
	if !l.IsAdmin() {
		t.Error("expected admin after login")
	}

	// The admin flag persists for future sessions.
	if !openTestLedger(t, m).IsAdmin() {
		t.Error("expected admin flag to survive reopen")
	}
}

// flakyMirror starts healthy and can be switched to fail every Save.
type flakyMirror struct {
	fail bool
	err  error
}

func (m *flakyMirror) Load(key string, v any) (bool, error) { return false, nil }

func (m *flakyMirror) Save(key string, v any) error {
	if m.fail {
		return m.err
	}
	return nil
}

func (m *flakyMirror) Close() error { return nil }

func TestPersistFailurePropagates(t *testing.T) {
	saveErr := errors.New("disk full")
	m := &flakyMirror{err: saveErr}

	l, err := Open(m, Options{
		AdminSecret: "IB0o",
		Now:         func() time.Time { return testTime },
		IDs:         ident.NewSeeded(1),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	entry, err := l.Create(validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	req, err := l.Submit("need extension")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	m.fail = true

	assertPersistence := func(t *testing.T, err error) {
		t.Helper()
		var pe *PersistenceError
		if !errors.As(err, &pe) {
			t.Fatalf("expected PersistenceError, got %v", err)
		}
		if !errors.Is(err, saveErr) {
			t.Errorf("expected wrapped save error, got %v", pe.Err)
		}
	}

	t.Run("create", func(t *testing.T) {
		in := validInput()
		in.PersonName = "Ben"
		_, err := l.Create(in)
		assertPersistence(t, err)
	})
	t.Run("merge create", func(t *testing.T) {
		_, err := l.Create(validInput())
		assertPersistence(t, err)
	})
	t.Run("update", func(t *testing.T) {
		_, err := l.Update(entry.ID, validInput())
		assertPersistence(t, err)
	})
	t.Run("delete", func(t *testing.T) {
		assertPersistence(t, l.Delete(entry.ID))
	})
	t.Run("submit", func(t *testing.T) {
		_, err := l.Submit("another request")
		assertPersistence(t, err)
	})
	t.Run("resolve", func(t *testing.T) {
		_, err := l.Resolve(ResolveParams{ID: req.ID, Decision: model.StatusAccepted, Response: "ok"})
		assertPersistence(t, err)
	})
	t.Run("login", func(t *testing.T) {
		_, err := l.Login("IB0o")
		assertPersistence(t, err)
	})
}

func TestSummary(t *testing.T) {
	l := newTestLedger(t)

	l.Create(EntryInput{PersonName: "Anna", Product: "Fruit", Quantity: "2kg", Amount: 5})
	l.Create(EntryInput{PersonName: "Ben", Product: "Fruit", Quantity: "1kg", Amount: 2.5})
	l.Submit("ping")

	s := l.Summary()
	if s.TotalDebts != 2 {
		t.Errorf("expected 2 debts, got %d", s.TotalDebts)
	}
	if s.TotalAmount != 7.5 {
		t.Errorf("expected total 7.5, got %v", s.TotalAmount)
	}
	if s.LogCount != 2 {
		t.Errorf("expected 2 log entries, got %d", s.LogCount)
	}
	if s.PendingRequests != 1 {
		t.Errorf("expected 1 pending request, got %d", s.PendingRequests)
	}
}
