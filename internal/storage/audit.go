package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CallRecord describes one call to an external collaborator (embedding or
// generation), for troubleshooting provider behavior in a running session.
type CallRecord struct {
	CallID     string    `json:"call_id"`
	Operation  string    `json:"operation"`
	DocumentID string    `json:"document_id,omitempty"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	Status     string    `json:"status"`
	At         time.Time `json:"at"`
}

// AuditLog keeps the most recent collaborator calls in a bounded in-memory
// ring.
type AuditLog struct {
	mu    sync.Mutex
	limit int
	calls []CallRecord
}

func NewAuditLog(limit int) *AuditLog {
	if limit <= 0 {
		limit = 256
	}
	return &AuditLog{limit: limit}
}

// Record appends a call record, assigning a call id and timestamp when absent.
func (a *AuditLog) Record(r CallRecord) CallRecord {
	if r.CallID == "" {
		r.CallID = uuid.NewString()
	}
	if r.At.IsZero() {
		r.At = time.Now().UTC()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, r)
	if len(a.calls) > a.limit {
		a.calls = a.calls[len(a.calls)-a.limit:]
	}
	return r
}

// Recent returns up to n records, newest last.
func (a *AuditLog) Recent(n int) []CallRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n <= 0 || n > len(a.calls) {
		n = len(a.calls)
	}
	out := make([]CallRecord, n)
	copy(out, a.calls[len(a.calls)-n:])
	return out
}

func (a *AuditLog) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}
