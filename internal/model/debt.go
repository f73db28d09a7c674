// Package model defines the core debt ledger data types.
package model

// Action identifies the kind of ledger mutation an audit entry records.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// RequestStatus is the lifecycle state of a user-submitted request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusDeclined RequestStatus = "declined"
)

// DebtEntry is a single debt record. The id is a 6-character opaque string,
// immutable after creation. Timestamp is milliseconds since the Unix epoch;
// Date and DueDate are ISO dates (YYYY-MM-DD).
type DebtEntry struct {
	ID         string  `json:"id"`
	PersonName string  `json:"personName"`
	Product    string  `json:"product"`
	Quantity   string  `json:"quantity"`
	Amount     float64 `json:"amount"`
	Location   string  `json:"location"`
	Note       string  `json:"note,omitempty"`
	DueDate    string  `json:"dueDate,omitempty"`
	Date       string  `json:"date"`
	Timestamp  int64   `json:"timestamp"`
}

// LogEntry is an append-only audit record of one ledger mutation.
// OldState/NewState are full copies of the record, never references to the
// live ledger; a create carries OldState = null, a delete NewState = null.
type LogEntry struct {
	Timestamp int64      `json:"timestamp"`
	Action    Action     `json:"action"`
	EntryID   string     `json:"entryId"`
	Details   string     `json:"details"`
	OldState  *DebtEntry `json:"oldState"`
	NewState  *DebtEntry `json:"newState"`
}

// Request is a free-text message submitted by an anonymous user, resolved by
// the admin. Pending is the only non-terminal status.
type Request struct {
	ID         string        `json:"id"`
	Message    string        `json:"message"`
	Timestamp  int64         `json:"timestamp"`
	Status     RequestStatus `json:"status"`
	Response   string        `json:"response,omitempty"`
	AdminNotes string        `json:"adminNotes,omitempty"`
}

// DefaultProducts is the product tag set used when configuration supplies
// none.
var DefaultProducts = []string{"Fruit", "Vegetable"}

// ValidActions are the allowed audit actions.
var ValidActions = map[Action]bool{
	ActionCreate: true,
	ActionUpdate: true,
	ActionDelete: true,
}

// ValidStatuses are the allowed request statuses.
var ValidStatuses = map[RequestStatus]bool{
	StatusPending:  true,
	StatusAccepted: true,
	StatusDeclined: true,
}
