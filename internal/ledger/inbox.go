package ledger

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/mheller/debtbook/internal/model"
)

// ResolveParams holds the admin decision for a pending request.
type ResolveParams struct {
	ID         string
	Decision   model.RequestStatus // StatusAccepted or StatusDeclined
	Response   string
	AdminNotes string
}

// Submit appends a pending request to the inbox. Whitespace-only messages
// are silently not submitted: the return is (nil, nil) and nothing changes.
func (l *Ledger) Submit(message string) (*model.Request, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return nil, nil
	}
	now := l.now()
	req := model.Request{
		ID:        ulid.MustNew(ulid.Timestamp(now), l.entropy).String(),
		Message:   msg,
		Timestamp: now.UnixMilli(),
		Status:    model.StatusPending,
	}
	l.requests = append(l.requests, req)
	if err := l.persistRequests(); err != nil {
		return nil, err
	}
	l.notify.Event("request", fmt.Sprintf("New request %s submitted", req.ID))
	return &req, nil
}

// Resolve transitions the matching request to accepted or declined and
// records the response. There is deliberately no guard against resolving an
// already-resolved request: a second decision overwrites the first.
func (l *Ledger) Resolve(p ResolveParams) (*model.Request, error) {
	if p.Decision != model.StatusAccepted && p.Decision != model.StatusDeclined {
		return nil, &ValidationError{Field: "decision"}
	}
	for i := range l.requests {
		if l.requests[i].ID != p.ID {
			continue
		}
		l.requests[i].Status = p.Decision
		l.requests[i].Response = p.Response
		if p.AdminNotes != "" {
			l.requests[i].AdminNotes = p.AdminNotes
		}
		if err := l.persistRequests(); err != nil {
			return nil, err
		}
		req := l.requests[i]
		l.notify.Event("resolve", fmt.Sprintf("Request %s %s", req.ID, req.Status))
		return &req, nil
	}
	return nil, &NotFoundError{Kind: "request", ID: p.ID}
}
