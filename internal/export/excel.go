package export

import (
    "strings"
    "time"

    "github.com/HamedShams/worklog-pulse/internal/domain"
    "github.com/xuri/excelize/v2"
)

const sheetName = "Relatório"

// DefaultOutName follows the historical report naming scheme.
func DefaultOutName(now time.Time) string {
    return "worklog-pulse-" + now.Format("2006-01-02-1504") + ".xlsx"
}

// WriteReports writes the full report and its short projection next to it
// (`_short` suffix). Returns both paths; a write failure surfaces as an
// ExportError while the rows stay untouched in the caller's hands.
func WriteReports(path string, rows []domain.Row) (string, string, error) {
    full := path
    if !strings.HasSuffix(strings.ToLower(full), ".xlsx") { full += ".xlsx" }
    short := strings.TrimSuffix(full, ".xlsx") + "_short.xlsx"

    if err := writeSheet(full, domain.FullColumns, rows); err != nil {
        return "", "", &domain.ExportError{Path: full, Err: err}
    }
    if err := writeSheet(short, domain.ShortColumns, rows); err != nil {
        return "", "", &domain.ExportError{Path: short, Err: err}
    }
    return full, short, nil
}

func writeSheet(path string, columns []string, rows []domain.Row) error {
    f := excelize.NewFile()
    defer f.Close()
    if err := f.SetSheetName("Sheet1", sheetName); err != nil { return err }

    for ci, col := range columns {
        cell, err := excelize.CoordinatesToCellName(ci+1, 1)
        if err != nil { return err }
        if err := f.SetCellValue(sheetName, cell, col); err != nil { return err }
    }
    for ri, r := range rows {
        for ci, col := range columns {
            cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
            if err != nil { return err }
            if err := f.SetCellValue(sheetName, cell, r.Cell(col)); err != nil { return err }
        }
    }
    return f.SaveAs(path)
}
