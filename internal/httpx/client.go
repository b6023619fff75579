/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package httpx

import (
    "bytes"
    "context"
    "crypto/tls"
    "crypto/x509"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "os"
    "strconv"
    "strings"
    "sync"
    "time"

    "github.com/HamedShams/worklog-pulse/internal/diag"
    "github.com/HamedShams/worklog-pulse/internal/domain"
    "github.com/cenkalti/backoff/v4"
    "github.com/rs/zerolog"
)

type Options struct {
    Timeout    time.Duration
    MaxTries   int
    RetryBase  time.Duration // zero disables the exponential delay (test knob)
    VerifySSL  bool
    CABundle   string
    HTTPProxy  string
    HTTPSProxy string
    Trust      TrustSource
}

type Response struct {
    Status int
    Header http.Header
    Body   []byte
}

func (r *Response) JSON(v any) error { return json.Unmarshal(r.Body, v) }

// Client is a retrying JSON client with no knowledge of the domain above
// it. Transient network errors, timeouts, 429 and 5xx are absorbed up to
// MaxTries; other 4xx surface immediately as HTTPFatal.
type Client struct {
    email string
    token string
    http  *http.Client
    opts  Options
    log   zerolog.Logger
    rec   *diag.Recorder
    warn  sync.Once
}

func New(email, token string, opts Options, log zerolog.Logger, rec *diag.Recorder) (*Client, error) {
    if opts.Timeout <= 0 { opts.Timeout = 120 * time.Second }
    if opts.MaxTries <= 0 { opts.MaxTries = 5 }

    tlsCfg := &tls.Config{}
    if !opts.VerifySSL {
        tlsCfg.InsecureSkipVerify = true
    }
    if opts.CABundle != "" {
        pem, err := os.ReadFile(opts.CABundle)
        if err != nil { return nil, fmt.Errorf("httpx: read ca bundle: %w", err) }
        pool := x509.NewCertPool()
        if !pool.AppendCertsFromPEM(pem) { return nil, fmt.Errorf("httpx: ca bundle %s contains no certificates", opts.CABundle) }
        tlsCfg.RootCAs = pool
        // a custom bundle implies the operator opted back into verification
        tlsCfg.InsecureSkipVerify = false
    } else if opts.Trust != nil {
        if pool, err := opts.Trust.CertPool(); err == nil && pool != nil {
            tlsCfg.RootCAs = pool
        }
    }

    proxy, err := proxyFunc(opts.HTTPProxy, opts.HTTPSProxy)
    if err != nil { return nil, err }

    transport := &http.Transport{
        TLSClientConfig: tlsCfg,
        Proxy:           proxy,
    }
    return &Client{
        email: email,
        token: token,
        http:  &http.Client{Timeout: opts.Timeout, Transport: transport},
        opts:  opts,
        log:   log,
        rec:   rec,
    }, nil
}

// proxyFunc selects a proxy per scheme; with neither configured it keeps
// the standard environment behavior.
func proxyFunc(httpProxy, httpsProxy string) (func(*http.Request) (*url.URL, error), error) {
    if httpProxy == "" && httpsProxy == "" {
        return http.ProxyFromEnvironment, nil
    }
    var hu, hsu *url.URL
    var err error
    if httpProxy != "" {
        if hu, err = url.Parse(httpProxy); err != nil { return nil, fmt.Errorf("httpx: http_proxy: %w", err) }
    }
    if httpsProxy != "" {
        if hsu, err = url.Parse(httpsProxy); err != nil { return nil, fmt.Errorf("httpx: https_proxy: %w", err) }
    }
    return func(req *http.Request) (*url.URL, error) {
        if req.URL.Scheme == "https" && hsu != nil { return hsu, nil }
        if req.URL.Scheme == "http" && hu != nil { return hu, nil }
        return nil, nil
    }, nil
}

// Do issues one request with retries. body, when non-nil, is marshaled to
// JSON once and replayed on every attempt.
func (c *Client) Do(ctx context.Context, method, rawURL string, body any) (*Response, error) {
    c.warnInsecure()

    var payload []byte
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil { return nil, err }
        payload = b
    }

    // BackOff instances are stateful; fresh per call.
    bo := backoff.NewExponentialBackOff()
    bo.InitialInterval = c.opts.RetryBase
    bo.MaxElapsedTime = 0

    var last *Response
    var lastErr error
    for attempt := 0; attempt < c.opts.MaxTries; attempt++ {
        if attempt > 0 {
            delay := bo.NextBackOff()
            if last != nil {
                if ra, ok := retryAfter(last.Header.Get("Retry-After"), time.Now()); ok { delay = ra }
            }
            select {
            case <-ctx.Done():
                return nil, ctx.Err()
            case <-time.After(delay):
            }
        }

        var rd io.Reader
        if payload != nil { rd = bytes.NewReader(payload) }
        req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
        if err != nil { return nil, err }
        req.Header.Set("Accept", "application/json")
        if payload != nil { req.Header.Set("Content-Type", "application/json") }
        req.SetBasicAuth(c.email, c.token)

        resp, err := c.http.Do(req)
        if err != nil {
            if errors.Is(err, context.Canceled) || ctx.Err() != nil { return nil, err }
            // timeouts included: retryable like any network error
            last, lastErr = nil, err
            c.log.Debug().Err(err).Str("url", rawURL).Int("attempt", attempt+1).Msg("request failed, will retry")
            continue
        }
        b, _ := io.ReadAll(resp.Body)
        resp.Body.Close()
        r := &Response{Status: resp.StatusCode, Header: resp.Header, Body: b}

        switch {
        case resp.StatusCode < 300:
            return r, nil
        case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
            last, lastErr = r, nil
            c.log.Debug().Int("status", r.Status).Str("url", rawURL).Int("attempt", attempt+1).Msg("retryable status")
        default:
            return nil, &domain.HTTPError{Kind: domain.HTTPFatal, Status: r.Status, Body: trimBody(b)}
        }
    }

    he := &domain.HTTPError{Kind: domain.HTTPRetriesExhausted, Err: lastErr}
    if last != nil {
        he.Status = last.Status
        he.Body = trimBody(last.Body)
    }
    return nil, he
}

// warnInsecure emits the operator warning exactly once, before the first
// request, when verification is off and no custom bundle compensates.
func (c *Client) warnInsecure() {
    if c.opts.VerifySSL || c.opts.CABundle != "" { return }
    c.warn.Do(func() {
        c.log.Warn().Msg("SSL certificate verification is DISABLED")
        if c.rec != nil {
            c.rec.RecordOnce(diag.Event{Kind: diag.SSLDisabled, Msg: "TLS certificate verification disabled"})
        }
    })
}

// retryAfter parses the Retry-After header: delay-seconds or an HTTP-date.
// Garbage or past dates fall back to the exponential delay.
func retryAfter(v string, now time.Time) (time.Duration, bool) {
    v = strings.TrimSpace(v)
    if v == "" { return 0, false }
    if secs, err := strconv.Atoi(v); err == nil {
        if secs < 0 { return 0, false }
        return time.Duration(secs) * time.Second, true
    }
    if t, err := http.ParseTime(v); err == nil {
        if d := t.Sub(now); d > 0 { return d, true }
    }
    return 0, false
}

func trimBody(b []byte) string {
    s := strings.TrimSpace(string(b))
    if len(s) > 2048 { s = s[:2048] }
    return s
}
