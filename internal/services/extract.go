/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "sort"
    "sync"

    "github.com/HamedShams/worklog-pulse/internal/diag"
    "github.com/HamedShams/worklog-pulse/internal/domain"
    "github.com/rs/zerolog"
    "golang.org/x/sync/semaphore"
)

type JiraGateway interface {
    EnsureSoWField(ctx context.Context) bool
    SearchWorklogIssues(ctx context.Context, window domain.DateWindow, withSoW bool) ([]domain.Issue, error)
    IssueWorklogs(ctx context.Context, key string, window domain.DateWindow) ([]domain.Worklog, error)
}

type Extractor struct {
    jira    JiraGateway
    workers int
    log     zerolog.Logger
    rec     *diag.Recorder
}

func NewExtractor(jira JiraGateway, workers int, log zerolog.Logger, rec *diag.Recorder) *Extractor {
    if workers < 1 { workers = 1 }
    return &Extractor{jira: jira, workers: workers, log: log, rec: rec}
}

// Run performs one extraction: sequential search, bounded fan-out over the
// issues, deterministic assembly. A search failure aborts before any
// worklog fetch starts; per-issue fetch failures only omit that issue.
func (e *Extractor) Run(ctx context.Context, window domain.DateWindow) ([]domain.Row, error) {
    withSoW := e.jira.EnsureSoWField(ctx)
    if !withSoW {
        e.log.Warn().Msg("SoW field not defined on this deployment, column will be empty")
    }
    issues, err := e.jira.SearchWorklogIssues(ctx, window, withSoW)
    if err != nil { return nil, err }
    e.log.Info().Int("issues", len(issues)).
        Str("from", window.Start.Format("2006-01-02")).
        Str("to", window.EndInclusive().Format("2006-01-02")).
        Msg("search done")

    worklogs := e.fetchAll(ctx, issues, window)
    // a canceled run must not masquerade as a complete extraction: the
    // fan-out drains on cancellation and would hand back a truncated set
    if err := ctx.Err(); err != nil { return nil, err }
    return AssembleRows(BuildRows(issues, worklogs)), nil
}

// fetchAll runs per-issue worklog fetches with at most e.workers in
// flight. The accumulator is the only shared state and sits behind mu.
func (e *Extractor) fetchAll(ctx context.Context, issues []domain.Issue, window domain.DateWindow) []domain.Worklog {
    sem := semaphore.NewWeighted(int64(e.workers))
    var wg sync.WaitGroup
    var mu sync.Mutex
    var out []domain.Worklog

    for _, is := range issues {
        if err := sem.Acquire(ctx, 1); err != nil { break }
        wg.Add(1)
        go func(is domain.Issue) {
            defer wg.Done()
            defer sem.Release(1)
            wls, err := e.jira.IssueWorklogs(ctx, is.Key, window)
            if err != nil {
                e.rec.Record(diag.Event{Kind: diag.IssueFailed, Key: is.Key, Msg: err.Error()})
                e.log.Warn().Err(err).Str("key", is.Key).Msg("worklog fetch failed, issue omitted")
                return
            }
            mu.Lock()
            out = append(out, wls...)
            mu.Unlock()
        }(is)
    }
    wg.Wait()
    return out
}

// BuildRows joins accepted worklogs with their issue's attributes. A
// worklog whose issue is unknown (skipped during decode) is dropped.
func BuildRows(issues []domain.Issue, worklogs []domain.Worklog) []domain.Row {
    byKey := make(map[string]domain.Issue, len(issues))
    for _, is := range issues { byKey[is.Key] = is }

    rows := make([]domain.Row, 0, len(worklogs))
    for _, w := range worklogs {
        is, ok := byKey[w.IssueKey]
        if !ok { continue }
        rows = append(rows, domain.Row{
            Project:   is.Project,
            IssueType: is.Type,
            Key:       is.Key,
            Summary:   is.Summary,
            Priority:  is.Priority,
            SoW:       is.SoW,
            StartDate: w.StartedAt.UTC().Format("2006-01-02"),
            Author:    w.Author,
            Hours:     float64(w.Seconds) / 3600.0,
            Comment:   w.Comment,
            Started:   w.StartedAt.UTC(),
        })
    }
    return rows
}

// AssembleRows is the ordering contract visible downstream: stable sort by
// issue key, then start time, then author. Completion order of the
// concurrent fetch never leaks past this point.
func AssembleRows(rows []domain.Row) []domain.Row {
    out := make([]domain.Row, len(rows))
    copy(out, rows)
    sort.SliceStable(out, func(i, j int) bool {
        if out[i].Key != out[j].Key { return out[i].Key < out[j].Key }
        if !out[i].Started.Equal(out[j].Started) { return out[i].Started.Before(out[j].Started) }
        return out[i].Author < out[j].Author
    })
    return out
}
