package diag

import "sync"

// Warnings are collected as discrete events rather than printed inline, so
// the hosting layer decides where they go (zerolog on stderr in the CLI).

type Kind string

const (
    IssueSkipped Kind = "issue_skipped"
    IssueFailed  Kind = "issue_failed"
    FieldMissing Kind = "field_missing"
    SSLDisabled  Kind = "ssl_disabled"
)

type Event struct {
    Kind Kind
    Key  string
    Msg  string
}

type Recorder struct {
    mu     sync.Mutex
    events []Event
    once   map[string]bool
}

func NewRecorder() *Recorder {
    return &Recorder{once: map[string]bool{}}
}

func (r *Recorder) Record(e Event) {
    r.mu.Lock()
    r.events = append(r.events, e)
    r.mu.Unlock()
}

// RecordOnce appends the event only on the first occurrence of its
// kind+key pair and reports whether it was recorded. Used for run-level
// warnings (missing SoW field, disabled TLS verification) that must not
// repeat per record.
func (r *Recorder) RecordOnce(e Event) bool {
    k := string(e.Kind) + "\x00" + e.Key
    r.mu.Lock()
    defer r.mu.Unlock()
    if r.once[k] { return false }
    r.once[k] = true
    r.events = append(r.events, e)
    return true
}

func (r *Recorder) Events() []Event {
    r.mu.Lock()
    defer r.mu.Unlock()
    out := make([]Event, len(r.events))
    copy(out, r.events)
    return out
}
