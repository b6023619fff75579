/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
    "context"
    "fmt"
    "net/http"
    "net/url"
    "strconv"
    "strings"

    "github.com/HamedShams/worklog-pulse/internal/diag"
    "github.com/HamedShams/worklog-pulse/internal/domain"
    "github.com/HamedShams/worklog-pulse/internal/httpx"
    "github.com/rs/zerolog"
)

const defaultPageSize = 100

type Client struct {
    baseURL  string
    http     *httpx.Client
    log      zerolog.Logger
    rec      *diag.Recorder
    sowField string
    pageSize int
}

func NewClient(baseURL string, hc *httpx.Client, sowFieldID string, log zerolog.Logger, rec *diag.Recorder) *Client {
    return &Client{
        baseURL:  strings.TrimRight(baseURL, "/"),
        http:     hc,
        log:      log,
        rec:      rec,
        sowField: sowFieldID,
        pageSize: defaultPageSize,
    }
}

func (c *Client) apiURL(path string, q url.Values) string {
    if !strings.HasPrefix(path, "/") { path = "/" + path }
    u := c.baseURL + path
    if len(q) > 0 { u = u + "?" + q.Encode() }
    return u
}

// JQLForRange renders the window with inclusive calendar bounds on both
// ends, converting the exclusive internal bound back to its last day.
func JQLForRange(w domain.DateWindow) string {
    return fmt.Sprintf("worklogDate >= %q AND worklogDate <= %q",
        w.Start.Format("2006-01-02"), w.EndInclusive().Format("2006-01-02"))
}

// EnsureSoWField checks the deployment's field list for the configured SoW
// field id. On an HTTP failure it warns and reports true: the run continues
// and the per-issue fallback handles an actually-missing field.
func (c *Client) EnsureSoWField(ctx context.Context) bool {
    resp, err := c.http.Do(ctx, http.MethodGet, c.apiURL("/rest/api/3/field", nil), nil)
    if err != nil {
        c.log.Warn().Err(err).Msg("field list unavailable, continuing with SoW field enabled")
        return true
    }
    var fields []map[string]any
    if err := resp.JSON(&fields); err != nil {
        c.log.Warn().Err(err).Msg("field list undecodable, continuing with SoW field enabled")
        return true
    }
    for _, f := range fields {
        if toStr(f["id"]) == c.sowField { return true }
    }
    return false
}

// SearchWorklogIssues walks POST /rest/api/3/search/jql pages via
// nextPageToken until the endpoint stops returning issues. A page with a
// token but no issues terminates the walk.
func (c *Client) SearchWorklogIssues(ctx context.Context, window domain.DateWindow, withSoW bool) ([]domain.Issue, error) {
    jql := JQLForRange(window)
    c.log.Debug().Str("jql", jql).Msg("search")

    fields := []string{"project", "issuetype", "summary", "priority"}
    if withSoW { fields = append(fields, c.sowField) }

    var out []domain.Issue
    token := ""
    for {
        body := map[string]any{"jql": jql, "maxResults": c.pageSize, "fields": fields}
        if token != "" { body["nextPageToken"] = token }
        resp, err := c.http.Do(ctx, http.MethodPost, c.apiURL("/rest/api/3/search/jql", nil), body)
        if err != nil { return nil, err }
        var page map[string]any
        if err := resp.JSON(&page); err != nil { return nil, err }
        arr, _ := page["issues"].([]any)
        if len(arr) == 0 { break }
        for _, it := range arr {
            im, _ := it.(map[string]any)
            if im == nil { continue }
            iss, ok := c.decodeIssue(im, withSoW)
            if !ok { continue }
            out = append(out, iss)
        }
        token = toStr(page["nextPageToken"])
        if token == "" { break }
    }
    return out, nil
}

// decodeIssue maps one search record. Only the key is structurally
// required (it joins worklogs back to the issue); a record without it is
// skipped with a warning instead of failing the run.
func (c *Client) decodeIssue(im map[string]any, withSoW bool) (domain.Issue, bool) {
    key := toStr(im["key"])
    if key == "" {
        derr := &domain.DataError{Field: "key"}
        c.rec.Record(diag.Event{Kind: diag.IssueSkipped, Msg: derr.Error()})
        c.log.Warn().Err(derr).Msg("skipping search record")
        return domain.Issue{}, false
    }
    fields, _ := im["fields"].(map[string]any)
    iss := domain.Issue{Key: key, Summary: toStr(fields["summary"])}
    if pj, ok := fields["project"].(map[string]any); ok { iss.Project = toStr(pj["name"]) }
    if tp, ok := fields["issuetype"].(map[string]any); ok { iss.Type = toStr(tp["name"]) }
    if pr, ok := fields["priority"].(map[string]any); ok { iss.Priority = toStr(pr["name"]) }
    if withSoW {
        if v, present := fields[c.sowField]; present {
            iss.SoW = numericOnly(stringifySoW(v))
            iss.SoWPresent = true
        } else if c.rec.RecordOnce(diag.Event{Kind: diag.FieldMissing, Key: c.sowField, Msg: "SoW field absent on at least one issue"}) {
            c.log.Warn().Str("field", c.sowField).Msg("SoW field absent on at least one issue")
        }
    }
    return iss, true
}

// IssueWorklogs pages one issue's worklog endpoint and keeps entries whose
// started date falls inside the window. Entries with an unparseable
// started timestamp are dropped.
func (c *Client) IssueWorklogs(ctx context.Context, key string, window domain.DateWindow) ([]domain.Worklog, error) {
    var out []domain.Worklog
    startAt := 0
    for {
        q := url.Values{}
        q.Set("startAt", strconv.Itoa(startAt))
        q.Set("maxResults", strconv.Itoa(c.pageSize))
        u := c.apiURL("/rest/api/3/issue/"+url.PathEscape(key)+"/worklog", q)
        resp, err := c.http.Do(ctx, http.MethodGet, u, nil)
        if err != nil { return nil, err }
        var page map[string]any
        if err := resp.JSON(&page); err != nil { return nil, err }
        warr, _ := page["worklogs"].([]any)
        if len(warr) == 0 { break }
        for _, w0 := range warr {
            wi, _ := w0.(map[string]any)
            if wi == nil { continue }
            started := parseTimeUTC(wi["started"])
            if started == nil {
                c.log.Warn().Err(&domain.DataError{Field: "started", Key: key}).Msg("skipping worklog entry")
                continue
            }
            if !window.Contains(*started) { continue }
            author := ""
            if a, ok := wi["author"].(map[string]any); ok { author = toStr(a["displayName"]) }
            secs := 0
            if v, ok := wi["timeSpentSeconds"].(float64); ok { secs = int(v) }
            out = append(out, domain.Worklog{
                IssueKey:  key,
                Author:    author,
                StartedAt: *started,
                Seconds:   secs,
                Comment:   adfToText(wi["comment"]),
            })
        }
        // advance by response metadata; servers may shrink maxResults or
        // omit it entirely, so the page length is the fallback step and a
        // non-advancing cursor terminates instead of re-requesting page 0
        total, _ := page["total"].(float64)
        startAtResp, _ := page["startAt"].(float64)
        maxResp, _ := page["maxResults"].(float64)
        if total == 0 { break }
        step := int(maxResp)
        if step <= 0 { step = len(warr) }
        next := int(startAtResp) + step
        if float64(next) >= total || next <= startAt { break }
        startAt = next
    }
    return out, nil
}
