package domain

import (
    "testing"
    "time"
)

func TestDateWindowContains(t *testing.T) {
    w := DateWindow{
        Start:        time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
        EndExclusive: time.Date(2025, 10, 25, 0, 0, 0, 0, time.UTC),
    }
    for _, tc := range []struct {
        in   time.Time
        want bool
    }{
        {time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC), false},
        {time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), true},
        {time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC), true},
        {time.Date(2025, 10, 24, 23, 59, 59, 0, time.UTC), true},
        {time.Date(2025, 10, 25, 0, 0, 0, 0, time.UTC), false},
        // local timestamps compare on their UTC calendar date
        {time.Date(2025, 10, 25, 2, 0, 0, 0, time.FixedZone("IRST", 12600)), true},
        {time.Date(2025, 9, 30, 21, 0, 0, 0, time.FixedZone("BRT", -10800)), true},
    } {
        if got := w.Contains(tc.in); got != tc.want {
            t.Fatalf("Contains(%v) = %v, want %v", tc.in, got, tc.want)
        }
    }
}

func TestDateWindowEndInclusive(t *testing.T) {
    w := DateWindow{
        Start:        time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
        EndExclusive: time.Date(2025, 10, 25, 0, 0, 0, 0, time.UTC),
    }
    if got := w.EndInclusive(); !got.Equal(time.Date(2025, 10, 24, 0, 0, 0, 0, time.UTC)) {
        t.Fatalf("EndInclusive() = %v", got)
    }
}

func TestRowCellCoversAllColumns(t *testing.T) {
    r := Row{
        Project: "Operations", IssueType: "Task", Key: "OPS-1", Summary: "s",
        Priority: "High", SoW: "314", StartDate: "2025-10-03",
        Author: "Ana Lima", Hours: 1.5, Comment: "c",
    }
    for _, col := range FullColumns {
        if v := r.Cell(col); v == "" {
            t.Fatalf("Cell(%q) returned empty for a fully populated row", col)
        }
    }
    for _, col := range ShortColumns {
        if v := r.Cell(col); v == "" {
            t.Fatalf("short column %q not mapped", col)
        }
    }
    if v := r.Cell("Unknown Column"); v != "" {
        t.Fatalf("Cell on unknown column = %v", v)
    }
}
