package services

import (
    "errors"
    "testing"
    "time"

    "github.com/HamedShams/worklog-pulse/internal/domain"
    "github.com/stretchr/testify/require"
)

func utcDate(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveWindowDefaults(t *testing.T) {
    now := time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)
    w, err := ResolveWindow("", "", now)
    require.NoError(t, err)
    require.Equal(t, utcDate(2025, 10, 1), w.Start)
    require.Equal(t, utcDate(2025, 10, 16), w.EndExclusive)
}

func TestResolveWindowExplicitDates(t *testing.T) {
    now := time.Date(2025, 10, 24, 10, 0, 0, 0, time.UTC)
    w, err := ResolveWindow("2025-10-10", "2025-10-24", now)
    require.NoError(t, err)
    require.Equal(t, utcDate(2025, 10, 10), w.Start)
    require.Equal(t, utcDate(2025, 10, 25), w.EndExclusive)
    require.Equal(t, utcDate(2025, 10, 24), w.EndInclusive())
}

func TestResolveWindowEndBeforeStartCollapsesToOneDay(t *testing.T) {
    now := time.Date(2025, 10, 24, 10, 0, 0, 0, time.UTC)
    w, err := ResolveWindow("2025-10-10", "2025-10-09", now)
    require.NoError(t, err)
    require.Equal(t, utcDate(2025, 10, 10), w.Start)
    require.Equal(t, utcDate(2025, 10, 11), w.EndExclusive)
}

func TestResolveWindowInvalidDates(t *testing.T) {
    now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
    for _, tc := range []struct{ start, end string }{
        {"not-a-date", ""},
        {"", "2025-13-45"},
        {"2025/10/01", ""},
    } {
        _, err := ResolveWindow(tc.start, tc.end, now)
        require.Error(t, err, "start=%q end=%q", tc.start, tc.end)
        var ce *domain.ConfigError
        require.True(t, errors.As(err, &ce))
    }
}

func TestResolveWindowInvariant(t *testing.T) {
    now := time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)
    for _, tc := range []struct{ start, end string }{
        {"", ""},
        {"2025-02-01", ""},
        {"", "2025-02-28"},
        {"2025-02-10", "2025-02-10"},
        {"2025-02-20", "2025-02-01"},
    } {
        w, err := ResolveWindow(tc.start, tc.end, now)
        require.NoError(t, err)
        require.True(t, w.Start.Before(w.EndExclusive), "start=%q end=%q window=%+v", tc.start, tc.end, w)
        require.Equal(t, w.EndExclusive, w.EndInclusive().AddDate(0, 0, 1))
    }
}

func TestMonthBounds(t *testing.T) {
    start, end := monthBounds(time.Date(2025, 10, 24, 15, 30, 0, 0, time.UTC))
    require.Equal(t, utcDate(2025, 10, 1), start)
    require.Equal(t, utcDate(2025, 11, 1), end)

    // year rollover
    start, end = monthBounds(time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))
    require.Equal(t, utcDate(2025, 12, 1), start)
    require.Equal(t, utcDate(2026, 1, 1), end)
}
