// Package export renders a full ledger snapshot as a transferable document:
// machine-readable JSON or a self-contained styled HTML page. The package
// only produces bytes; delivery is the caller's concern.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/mheller/debtbook/internal/model"
)

// Snapshot is the full exportable state: every debt entry, the complete
// audit log and the request inbox, stamped with the export time.
type Snapshot struct {
	DebtEntries []model.DebtEntry `json:"debtEntries"`
	Logs        []model.LogEntry  `json:"logs"`
	Requests    []model.Request   `json:"requests"`
	ExportDate  string            `json:"exportDate"`
}

// NewSnapshot assembles a snapshot stamped at the given time.
func NewSnapshot(entries []model.DebtEntry, logs []model.LogEntry, requests []model.Request, at time.Time) Snapshot {
	return Snapshot{
		DebtEntries: entries,
		Logs:        logs,
		Requests:    requests,
		ExportDate:  at.Format(time.RFC3339),
	}
}

// JSON renders the snapshot as indented JSON.
func (s Snapshot) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// HTML renders the snapshot as a standalone styled page with collapsible
// sections. Due dates before the export day are flagged as overdue; the
// comparison is lexicographic over the fixed YYYY-MM-DD format.
func (s Snapshot) HTML(currency string) ([]byte, error) {
	exportDay := s.ExportDate
	if len(exportDay) >= 10 {
		exportDay = exportDay[:10]
	}

	funcs := template.FuncMap{
		"amount": func(a float64) string {
			return fmt.Sprintf("%s%.2f", currency, a)
		},
		"when": func(ms int64) string {
			return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
		},
		"overdue": func(dueDate string) bool {
			return dueDate == "" || dueDate < exportDay
		},
	}

	tmpl, err := template.New("snapshot").Funcs(funcs).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("render snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Debt Ledger Export</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; padding: 2rem;
         background: linear-gradient(135deg, #0f172a, #1e3a8a, #0f172a); color: #e2e8f0; }
  h1 { margin-top: 0; }
  .meta { color: #93c5fd; margin-bottom: 2rem; }
  details { background: rgba(30, 41, 59, 0.5); border: 1px solid #334155;
            border-radius: 8px; margin-bottom: 1rem; padding: 0.5rem 1rem; }
  summary { cursor: pointer; font-weight: 600; padding: 0.5rem 0; }
  table { width: 100%; border-collapse: collapse; margin: 0.5rem 0 1rem; }
  th, td { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid #334155; }
  th { color: #94a3b8; font-weight: 500; }
  .overdue { color: #f87171; font-weight: 600; }
  .badge { display: inline-block; padding: 0.1rem 0.5rem; border-radius: 9999px;
           background: #1d4ed8; font-size: 0.8rem; }
  .badge.pending { background: #b45309; }
  .badge.accepted { background: #15803d; }
  .badge.declined { background: #b91c1c; }
  .empty { color: #64748b; font-style: italic; }
</style>
</head>
<body>
<h1>Debt Ledger Export</h1>
<p class="meta">Exported {{.ExportDate}}</p>

<details open>
<summary>Debt Entries ({{len .DebtEntries}})</summary>
{{if .DebtEntries}}
<table>
<tr><th>ID</th><th>Name</th><th>Product</th><th>Quantity</th><th>Amount</th><th>Location</th><th>Date</th><th>Due</th><th>Note</th></tr>
{{range .DebtEntries}}
<tr>
  <td>{{.ID}}</td>
  <td>{{.PersonName}}</td>
  <td><span class="badge">{{.Product}}</span></td>
  <td>{{.Quantity}}</td>
  <td>{{amount .Amount}}</td>
  <td>{{.Location}}</td>
  <td>{{.Date}}</td>
  {{if overdue .DueDate}}<td class="overdue">{{if .DueDate}}{{.DueDate}}{{else}}no due date{{end}}</td>{{else}}<td>{{.DueDate}}</td>{{end}}
  <td>{{.Note}}</td>
</tr>
{{end}}
</table>
{{else}}<p class="empty">No debt entries.</p>{{end}}
</details>

<details>
<summary>Activity Log ({{len .Logs}})</summary>
{{if .Logs}}
<table>
<tr><th>When</th><th>Action</th><th>Entry</th><th>Details</th></tr>
{{range .Logs}}
<tr><td>{{when .Timestamp}}</td><td>{{.Action}}</td><td>{{.EntryID}}</td><td>{{.Details}}</td></tr>
{{end}}
</table>
{{else}}<p class="empty">No activity.</p>{{end}}
</details>

<details>
<summary>Requests ({{len .Requests}})</summary>
{{if .Requests}}
<table>
<tr><th>When</th><th>Message</th><th>Status</th><th>Response</th></tr>
{{range .Requests}}
<tr>
  <td>{{when .Timestamp}}</td>
  <td>{{.Message}}</td>
  <td><span class="badge {{.Status}}">{{.Status}}</span></td>
  <td>{{.Response}}</td>
</tr>
{{end}}
</table>
{{else}}<p class="empty">No requests.</p>{{end}}
</details>

</body>
</html>
`
