package services

import (
    "fmt"
    "strings"
    "time"

    "github.com/HamedShams/worklog-pulse/internal/domain"
)

// monthBounds returns the first day of t's UTC month and the first day of
// the following month.
func monthBounds(t time.Time) (time.Time, time.Time) {
    u := t.UTC()
    start := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
    return start, start.AddDate(0, 1, 0)
}

func parseConfigDate(s string) (time.Time, bool) {
    t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
    if err != nil { return time.Time{}, false }
    return t.UTC(), true
}

// ResolveWindow turns optional YYYY-MM-DD overrides into the run's
// DateWindow. Defaults: start = first of the current UTC month, inclusive
// end = today. An explicit end not after the start collapses to a one-day
// window starting at start, which keeps Start < EndExclusive.
func ResolveWindow(startStr, endStr string, now time.Time) (domain.DateWindow, error) {
    now = now.UTC()

    var start time.Time
    if strings.TrimSpace(startStr) == "" {
        start, _ = monthBounds(now)
    } else {
        t, ok := parseConfigDate(startStr)
        if !ok {
            return domain.DateWindow{}, &domain.ConfigError{Reason: fmt.Sprintf("invalid start date %q, want YYYY-MM-DD", startStr)}
        }
        start = t
    }

    var end time.Time
    if strings.TrimSpace(endStr) == "" {
        today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
        end = today.AddDate(0, 0, 1)
    } else {
        t, ok := parseConfigDate(endStr)
        if !ok {
            return domain.DateWindow{}, &domain.ConfigError{Reason: fmt.Sprintf("invalid end date %q, want YYYY-MM-DD", endStr)}
        }
        end = t.AddDate(0, 0, 1)
    }

    if !start.Before(end) {
        end = start.AddDate(0, 0, 1)
    }
    return domain.DateWindow{Start: start, EndExclusive: end}, nil
}
