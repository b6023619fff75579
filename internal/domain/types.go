package domain

import "time"

// DateWindow is the extraction range in UTC: Start is inclusive midnight,
// EndExclusive is midnight one day past the inclusive end date.
// Immutable once computed; Start < EndExclusive always holds.
type DateWindow struct {
    Start        time.Time
    EndExclusive time.Time
}

// Contains reports whether a worklog started inside the window,
// comparing the UTC calendar date of t against [Start, EndExclusive).
func (w DateWindow) Contains(t time.Time) bool {
    u := t.UTC()
    day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
    return !day.Before(w.Start) && day.Before(w.EndExclusive)
}

// EndInclusive is the last calendar day covered by the window, used when
// the range has to be expressed with inclusive bounds (JQL).
func (w DateWindow) EndInclusive() time.Time {
    return w.EndExclusive.AddDate(0, 0, -1)
}

type Issue struct {
    Key        string
    Project    string
    Type       string
    Summary    string
    Priority   string
    SoW        string
    SoWPresent bool
}

type Worklog struct {
    IssueKey  string
    Author    string
    StartedAt time.Time
    Seconds   int
    Comment   string
}

// Row is one accepted worklog joined with its issue, flattened for export.
// Started is kept alongside the formatted date so the final sort stays
// deterministic for worklogs on the same day.
type Row struct {
    Project   string
    IssueType string
    Key       string
    Summary   string
    Priority  string
    SoW       string
    StartDate string
    Author    string
    Hours     float64
    Comment   string

    Started time.Time
}

// Column headers of the exported reports. The short report is a projection
// over the same rows, not a separate fetch.
var (
    FullColumns = []string{
        "Projeto", "Tipo de Problema", "Clave", "Resumo", "Prioridade",
        "SoW", "Data de Início", "Nome de Exibição", "Tempo Gasto (h)", "Descrição do Trabalho",
    }
    ShortColumns = []string{
        "Clave", "SoW", "Data de Início", "Nome de Exibição", "Tempo Gasto (h)", "Descrição do Trabalho",
    }
)

// Cell returns the value of one named column for this row.
func (r Row) Cell(column string) any {
    switch column {
    case "Projeto":
        return r.Project
    case "Tipo de Problema":
        return r.IssueType
    case "Clave":
        return r.Key
    case "Resumo":
        return r.Summary
    case "Prioridade":
        return r.Priority
    case "SoW":
        return r.SoW
    case "Data de Início":
        return r.StartDate
    case "Nome de Exibição":
        return r.Author
    case "Tempo Gasto (h)":
        return r.Hours
    case "Descrição do Trabalho":
        return r.Comment
    }
    return ""
}
