// Package ledger implements the debt ledger session: the live record
// collection, its append-only audit log and the request inbox, all backed by
// a durable mirror that is reloaded wholesale at open and flushed wholesale
// after every mutation.
package ledger

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mheller/debtbook/internal/ident"
	"github.com/mheller/debtbook/internal/mirror"
	"github.com/mheller/debtbook/internal/model"
	"github.com/mheller/debtbook/internal/notify"
)

// Options configures a ledger session.
type Options struct {
	// Currency is the symbol used in audit detail strings (default "€").
	Currency string

	// AdminSecret is the shared secret for Login. Empty disables admin
	// access entirely.
	AdminSecret string

	// Products restricts the product tag set when non-empty.
	Products []string

	// Now supplies the current time (default time.Now).
	Now func() time.Time

	// IDs generates record identifiers (default a time-seeded generator).
	IDs *ident.Generator

	// Notify receives a human-readable description of every mutation
	// (default discard).
	Notify notify.Sink
}

// Ledger is a single-session view of the debt ledger. It is not safe for
// concurrent use; every operation runs to completion before the next starts.
type Ledger struct {
	mirror   mirror.Mirror
	currency string
	secret   string
	products []string
	now      func() time.Time
	ids      *ident.Generator
	notify   notify.Sink
	entropy  *rand.Rand

	entries  []model.DebtEntry
	logs     []model.LogEntry
	requests []model.Request
	admin    bool
}

// EntryInput holds the caller-supplied fields for Create and Update.
type EntryInput struct {
	PersonName string
	Product    string
	Quantity   string
	Amount     float64
	Location   string
	Note       string
	DueDate    string
	Date       string
}

// Open loads a session from the mirror. Missing keys start empty.
func Open(m mirror.Mirror, opts Options) (*Ledger, error) {
	if opts.Currency == "" {
		opts.Currency = "€"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IDs == nil {
		opts.IDs = ident.New()
	}
	if opts.Notify == nil {
		opts.Notify = notify.Discard()
	}

	l := &Ledger{
		mirror:   m,
		currency: opts.Currency,
		secret:   opts.AdminSecret,
		products: opts.Products,
		now:      opts.Now,
		ids:      opts.IDs,
		notify:   opts.Notify,
		entropy:  rand.New(rand.NewSource(opts.Now().UnixNano())),
	}

	if _, err := m.Load(mirror.KeyDebtEntries, &l.entries); err != nil {
		return nil, fmt.Errorf("load debt entries: %w", err)
	}
	if _, err := m.Load(mirror.KeyLogs, &l.logs); err != nil {
		return nil, fmt.Errorf("load audit log: %w", err)
	}
	if _, err := m.Load(mirror.KeyRequests, &l.requests); err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}

	var stored string
	if _, err := m.Load(mirror.KeyAdmin, &stored); err != nil {
		return nil, fmt.Errorf("load admin key: %w", err)
	}
	l.admin = l.secret != "" && stored == l.secret

	return l, nil
}

// Create inserts a new debt entry, or merges into an existing one when a
// record with the same person (case-insensitive) and product already exists.
// On merge the amount is summed, quantity and note are concatenated, and the
// existing id and date are preserved.
func (l *Ledger) Create(in EntryInput) (*model.DebtEntry, error) {
	if err := l.validate(in); err != nil {
		return nil, err
	}
	now := l.now()

	for i := range l.entries {
		e := &l.entries[i]
		if strings.EqualFold(e.PersonName, in.PersonName) && e.Product == in.Product {
			old := *e
			e.Amount += in.Amount
			e.Quantity = old.Quantity + " + " + in.Quantity
			e.Note = joinNotes(old.Note, in.Note)
			e.Timestamp = now.UnixMilli()
			merged := *e

			details := l.details("Updated", merged)
			l.appendLog(model.ActionUpdate, e.ID, details, &old, &merged, now)
			if err := l.persist(); err != nil {
				return nil, err
			}
			l.notify.Event(string(model.ActionUpdate), details)
			return &merged, nil
		}
	}

	entry := model.DebtEntry{
		ID:         l.newID(),
		PersonName: in.PersonName,
		Product:    in.Product,
		Quantity:   in.Quantity,
		Amount:     in.Amount,
		Location:   in.Location,
		Note:       in.Note,
		DueDate:    in.DueDate,
		Date:       in.Date,
		Timestamp:  now.UnixMilli(),
	}
	if entry.Date == "" {
		entry.Date = now.Format("2006-01-02")
	}
	l.entries = append(l.entries, entry)

	details := l.details("Created", entry)
	l.appendLog(model.ActionCreate, entry.ID, details, nil, &entry, now)
	if err := l.persist(); err != nil {
		return nil, err
	}
	l.notify.Event(string(model.ActionCreate), details)
	return &entry, nil
}

// Update replaces the entry matching id in place, keeping the id and
// refreshing the timestamp. Returns a NotFoundError when the id is absent.
func (l *Ledger) Update(id string, in EntryInput) (*model.DebtEntry, error) {
	if err := l.validate(in); err != nil {
		return nil, err
	}
	idx := l.indexOf(id)
	if idx < 0 {
		return nil, &NotFoundError{Kind: "debt entry", ID: id}
	}
	now := l.now()
	old := l.entries[idx]

	entry := model.DebtEntry{
		ID:         old.ID,
		PersonName: in.PersonName,
		Product:    in.Product,
		Quantity:   in.Quantity,
		Amount:     in.Amount,
		Location:   in.Location,
		Note:       in.Note,
		DueDate:    in.DueDate,
		Date:       in.Date,
		Timestamp:  now.UnixMilli(),
	}
	if entry.Date == "" {
		entry.Date = old.Date
	}
	l.entries[idx] = entry

	details := l.details("Updated", entry)
	l.appendLog(model.ActionUpdate, entry.ID, details, &old, &entry, now)
	if err := l.persist(); err != nil {
		return nil, err
	}
	l.notify.Event(string(model.ActionUpdate), details)
	return &entry, nil
}

// Delete removes the entry matching id. Returns a NotFoundError when the id
// is absent.
func (l *Ledger) Delete(id string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return &NotFoundError{Kind: "debt entry", ID: id}
	}
	now := l.now()
	old := l.entries[idx]
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)

	details := l.details("Deleted", old)
	l.appendLog(model.ActionDelete, old.ID, details, &old, nil, now)
	if err := l.persist(); err != nil {
		return err
	}
	l.notify.Event(string(model.ActionDelete), details)
	return nil
}

// FindByID returns a copy of the entry with the given id, or a NotFoundError.
// No partial matching.
func (l *Ledger) FindByID(id string) (*model.DebtEntry, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return nil, &NotFoundError{Kind: "debt entry", ID: id}
	}
	e := l.entries[idx]
	return &e, nil
}

// Entries returns a copy of the live debt entries in insertion order.
func (l *Ledger) Entries() []model.DebtEntry {
	return append([]model.DebtEntry(nil), l.entries...)
}

// AuditLog returns a copy of the audit log in append order. Snapshots are
// copied too; callers never share state with the stored log.
func (l *Ledger) AuditLog() []model.LogEntry {
	out := make([]model.LogEntry, len(l.logs))
	for i, e := range l.logs {
		if e.OldState != nil {
			c := *e.OldState
			e.OldState = &c
		}
		if e.NewState != nil {
			c := *e.NewState
			e.NewState = &c
		}
		out[i] = e
	}
	return out
}

// Requests returns a copy of the request inbox in submission order.
func (l *Ledger) Requests() []model.Request {
	return append([]model.Request(nil), l.requests...)
}

// Login checks the password against the configured shared secret. Success
// persists the admin flag for future sessions.
func (l *Ledger) Login(password string) (bool, error) {
	if l.secret == "" || password != l.secret {
		return false, nil
	}
	if err := l.mirror.Save(mirror.KeyAdmin, l.secret); err != nil {
		return false, &PersistenceError{Op: "admin key", Err: err}
	}
	l.admin = true
	return true, nil
}

// IsAdmin reports whether this session has admin access.
func (l *Ledger) IsAdmin() bool {
	return l.admin
}

func (l *Ledger) validate(in EntryInput) error {
	if strings.TrimSpace(in.PersonName) == "" {
		return &ValidationError{Field: "personName"}
	}
	if strings.TrimSpace(in.Quantity) == "" {
		return &ValidationError{Field: "quantity"}
	}
	if in.Amount <= 0 {
		return &ValidationError{Field: "amount"}
	}
	if len(l.products) > 0 {
		ok := false
		for _, p := range l.products {
			if p == in.Product {
				ok = true
				break
			}
		}
		if !ok {
			return &ValidationError{Field: "product"}
		}
	}
	return nil
}

func (l *Ledger) indexOf(id string) int {
	for i := range l.entries {
		if l.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// newID retries until the generated id is absent from the live collection.
func (l *Ledger) newID() string {
	for {
		id := l.ids.NewID()
		if l.indexOf(id) < 0 {
			return id
		}
	}
}

func (l *Ledger) details(verb string, e model.DebtEntry) string {
	return fmt.Sprintf("%s debt entry for %s - %s%.2f", verb, e.PersonName, l.currency, e.Amount)
}

// appendLog records a mutation with own-copy before/after snapshots.
func (l *Ledger) appendLog(action model.Action, id, details string, oldState, newState *model.DebtEntry, at time.Time) {
	var o, n *model.DebtEntry
	if oldState != nil {
		c := *oldState
		o = &c
	}
	if newState != nil {
		c := *newState
		n = &c
	}
	l.logs = append(l.logs, model.LogEntry{
		Timestamp: at.UnixMilli(),
		Action:    action,
		EntryID:   id,
		Details:   details,
		OldState:  o,
		NewState:  n,
	})
}

// persist flushes the entry collection and audit log to the mirror. The two
// writes are one logical step with the in-memory mutation; a failure here
// propagates rather than being swallowed.
func (l *Ledger) persist() error {
	if err := l.mirror.Save(mirror.KeyDebtEntries, l.entries); err != nil {
		return &PersistenceError{Op: "debt entries", Err: err}
	}
	if err := l.mirror.Save(mirror.KeyLogs, l.logs); err != nil {
		return &PersistenceError{Op: "audit log", Err: err}
	}
	return nil
}

func (l *Ledger) persistRequests() error {
	if err := l.mirror.Save(mirror.KeyRequests, l.requests); err != nil {
		return &PersistenceError{Op: "requests", Err: err}
	}
	return nil
}

// joinNotes keeps whichever note is present, or joins both old-first.
func joinNotes(oldNote, newNote string) string {
	switch {
	case oldNote == "":
		return newNote
	case newNote == "":
		return oldNote
	default:
		return oldNote + "; " + newNote
	}
}
