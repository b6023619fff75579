package domain

import "fmt"

// Error taxonomy of a run. Components return these as values; only the
// top-level command maps them to exit codes.

type ConfigError struct {
    Reason string
}

func (e *ConfigError) Error() string { return "config: " + e.Reason }

type HTTPErrorKind int

const (
    HTTPTransient HTTPErrorKind = iota
    HTTPRateLimited
    HTTPRetriesExhausted
    HTTPFatal
)

func (k HTTPErrorKind) String() string {
    switch k {
    case HTTPTransient:
        return "transient"
    case HTTPRateLimited:
        return "rate_limited"
    case HTTPRetriesExhausted:
        return "retries_exhausted"
    case HTTPFatal:
        return "fatal"
    }
    return "unknown"
}

// HTTPError carries the last observed status and body so callers can log
// what the endpoint actually said. Transient and RateLimited never escape
// the retrying client; callers only see RetriesExhausted and Fatal.
type HTTPError struct {
    Kind   HTTPErrorKind
    Status int
    Body   string
    Err    error
}

func (e *HTTPError) Error() string {
    if e.Status > 0 {
        return fmt.Sprintf("http %s: status=%d body=%s", e.Kind, e.Status, e.Body)
    }
    return fmt.Sprintf("http %s: %v", e.Kind, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// DataError marks a record that could not be decoded; recoverable, the
// affected record is skipped and the run continues.
type DataError struct {
    Field string
    Key   string
}

func (e *DataError) Error() string {
    if e.Key != "" {
        return fmt.Sprintf("data: missing %s on %s", e.Field, e.Key)
    }
    return "data: missing " + e.Field
}

type ExportError struct {
    Path string
    Err  error
}

func (e *ExportError) Error() string { return fmt.Sprintf("export %s: %v", e.Path, e.Err) }
func (e *ExportError) Unwrap() error { return e.Err }
