package content

import "sync"

// DiagnosticEntry records one non-fatal failure: a blog that yielded
// nothing, a reference link that could not be resolved.
type DiagnosticEntry struct {
	Subject string `json:"subject"` // URL or site
	Message string `json:"message"`
}

// Diagnostics is the run-scoped sink for degraded-path records. It is
// append-only and safe for concurrent writers; the orchestrating caller
// reads it once the run is over.
type Diagnostics struct {
	mu      sync.Mutex
	entries []DiagnosticEntry
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) Record(subject, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, DiagnosticEntry{Subject: subject, Message: message})
}

// Entries returns a copy of everything recorded so far.
func (d *Diagnostics) Entries() []DiagnosticEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]DiagnosticEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
