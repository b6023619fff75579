package export

import (
    "errors"
    "path/filepath"
    "regexp"
    "testing"
    "time"

    "github.com/HamedShams/worklog-pulse/internal/domain"
    "github.com/stretchr/testify/require"
    "github.com/xuri/excelize/v2"
)

func sampleRows() []domain.Row {
    return []domain.Row{
        {
            Project: "Operations", IssueType: "Task", Key: "OPS-1",
            Summary: "rotate certs", Priority: "High", SoW: "314",
            StartDate: "2025-10-03", Author: "Ana Lima", Hours: 1.5, Comment: "done",
        },
        {
            Project: "Operations", IssueType: "Bug", Key: "OPS-2",
            Summary: "fix probe", Priority: "Low", SoW: "",
            StartDate: "2025-10-04", Author: "Bruno Reis", Hours: 0.5, Comment: "",
        },
    }
}

func readSheet(t *testing.T, path string) [][]string {
    t.Helper()
    f, err := excelize.OpenFile(path)
    require.NoError(t, err)
    defer f.Close()
    rows, err := f.GetRows(sheetName)
    require.NoError(t, err)
    return rows
}

func TestWriteReports(t *testing.T) {
    dir := t.TempDir()
    full, short, err := WriteReports(filepath.Join(dir, "report"), sampleRows())
    require.NoError(t, err)
    require.Equal(t, filepath.Join(dir, "report.xlsx"), full)
    require.Equal(t, filepath.Join(dir, "report_short.xlsx"), short)

    got := readSheet(t, full)
    require.Len(t, got, 3)
    require.Equal(t, domain.FullColumns, got[0])
    require.Equal(t, []string{
        "Operations", "Task", "OPS-1", "rotate certs", "High",
        "314", "2025-10-03", "Ana Lima", "1.5", "done",
    }, got[1])
    require.Equal(t, "OPS-2", got[2][2])

    gotShort := readSheet(t, short)
    require.Equal(t, domain.ShortColumns, gotShort[0])
    require.Equal(t, []string{"OPS-1", "314", "2025-10-03", "Ana Lima", "1.5", "done"}, gotShort[1])
}

func TestWriteReportsKeepsExtension(t *testing.T) {
    dir := t.TempDir()
    full, short, err := WriteReports(filepath.Join(dir, "monthly.xlsx"), nil)
    require.NoError(t, err)
    require.Equal(t, filepath.Join(dir, "monthly.xlsx"), full)
    require.Equal(t, filepath.Join(dir, "monthly_short.xlsx"), short)

    // header-only files for an empty extraction
    require.Len(t, readSheet(t, full), 1)
    require.Len(t, readSheet(t, short), 1)
}

func TestWriteReportsExportError(t *testing.T) {
    _, _, err := WriteReports(filepath.Join(t.TempDir(), "missing", "deep", "report.xlsx"), sampleRows())
    require.Error(t, err)
    var ee *domain.ExportError
    require.True(t, errors.As(err, &ee))
    require.Contains(t, ee.Path, "report.xlsx")
}

func TestDefaultOutName(t *testing.T) {
    name := DefaultOutName(time.Date(2025, 10, 24, 7, 5, 0, 0, time.UTC))
    require.Equal(t, "worklog-pulse-2025-10-24-0705.xlsx", name)
    require.Regexp(t, regexp.MustCompile(`^worklog-pulse-\d{4}-\d{2}-\d{2}-\d{4}\.xlsx$`), name)
}
