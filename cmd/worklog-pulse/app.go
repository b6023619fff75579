/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "fmt"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/HamedShams/worklog-pulse/internal/adapters/jira"
    "github.com/HamedShams/worklog-pulse/internal/config"
    "github.com/HamedShams/worklog-pulse/internal/diag"
    "github.com/HamedShams/worklog-pulse/internal/domain"
    "github.com/HamedShams/worklog-pulse/internal/export"
    "github.com/HamedShams/worklog-pulse/internal/httpx"
    "github.com/HamedShams/worklog-pulse/internal/jobs"
    "github.com/HamedShams/worklog-pulse/internal/logger"
    "github.com/HamedShams/worklog-pulse/internal/services"
    "github.com/rs/zerolog"
    "github.com/spf13/cobra"
)

type appFlags struct {
    config     string
    out        string
    verbose    bool
    maxWorkers int
    timeout    int
    insecure   bool
    sowFieldID string
    start      string
    end        string
    retryBase  time.Duration
}

func newRootCmd() *cobra.Command {
    fl := &appFlags{}
    cmd := &cobra.Command{
        Use:           "worklog-pulse",
        Short:         "Extract Jira worklogs for a date window into spreadsheet reports",
        SilenceUsage:  true,
        SilenceErrors: true,
        RunE: func(cmd *cobra.Command, _ []string) error {
            a, err := newApp(fl)
            if err != nil { return err }
            ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
            defer stop()
            return a.RunOnce(ctx)
        },
    }
    f := cmd.PersistentFlags()
    f.StringVarP(&fl.config, "config", "c", "config.ini", "path to the INI configuration")
    f.StringVarP(&fl.out, "out", "o", "", "output .xlsx path (default worklog-pulse-<timestamp>.xlsx)")
    f.BoolVarP(&fl.verbose, "verbose", "v", false, "debug logging")
    f.IntVar(&fl.maxWorkers, "max-workers", 0, "concurrent issue fetches (default 8 or config max_workers)")
    f.IntVar(&fl.timeout, "timeout", 0, "per-request timeout in seconds (default 120)")
    f.BoolVar(&fl.insecure, "insecure", false, "disable TLS certificate verification")
    f.StringVar(&fl.sowFieldID, "sow-field-id", "", "custom field id of the SoW reference")
    f.StringVar(&fl.start, "start", "", "inclusive start date YYYY-MM-DD (default first of current month)")
    f.StringVar(&fl.end, "end", "", "inclusive end date YYYY-MM-DD (default today)")
    f.DurationVar(&fl.retryBase, "retry-base", 0, "base delay between retries (default 500ms)")
    cmd.AddCommand(newScheduleCmd(fl))
    return cmd
}

// loadConfig applies flag > config file > default precedence.
func loadConfig(fl *appFlags) (config.Config, error) {
    cfg, err := config.Load(fl.config)
    if err != nil { return cfg, err }
    if fl.maxWorkers > 0 { cfg.MaxWorkers = fl.maxWorkers }
    if fl.timeout > 0 { cfg.Timeout = time.Duration(fl.timeout) * time.Second }
    if fl.insecure { cfg.VerifySSL = false }
    if fl.sowFieldID != "" { cfg.SoWFieldID = fl.sowFieldID }
    if fl.start != "" { cfg.StartDate = fl.start }
    if fl.end != "" { cfg.EndDate = fl.end }
    if fl.retryBase > 0 { cfg.RetryBase = fl.retryBase }
    return cfg, nil
}

type app struct {
    cfg config.Config
    log zerolog.Logger
    rec *diag.Recorder
    ext *services.Extractor
    out string
}

func newApp(fl *appFlags) (*app, error) {
    cfg, err := loadConfig(fl)
    if err != nil { return nil, err }
    log := logger.New(fl.verbose)
    rec := diag.NewRecorder()

    hc, err := httpx.New(cfg.Email, cfg.APIToken, httpx.Options{
        Timeout:    cfg.Timeout,
        MaxTries:   cfg.MaxTries,
        RetryBase:  cfg.RetryBase,
        VerifySSL:  cfg.VerifySSL,
        CABundle:   cfg.CABundle,
        HTTPProxy:  cfg.HTTPProxy,
        HTTPSProxy: cfg.HTTPSProxy,
        Trust:      httpx.SystemTrust(),
    }, log, rec)
    if err != nil { return nil, err }

    jc := jira.NewClient(cfg.BaseURL, hc, cfg.SoWFieldID, log, rec)
    ext := services.NewExtractor(jc, cfg.MaxWorkers, log, rec)
    return &app{cfg: cfg, log: log, rec: rec, ext: ext, out: fl.out}, nil
}

// RunOnce performs one full extraction and writes both reports. Report
// paths go to stdout; everything else stays on the diagnostic stream.
func (a *app) RunOnce(ctx context.Context) error {
    window, err := services.ResolveWindow(a.cfg.StartDate, a.cfg.EndDate, time.Now())
    if err != nil { return err }
    a.log.Debug().
        Str("start", window.Start.Format("2006-01-02")).
        Str("end", window.EndInclusive().Format("2006-01-02")).
        Msg("effective interval (UTC)")

    rows, err := a.ext.Run(ctx, window)
    if err != nil { return err }

    out := a.out
    if out == "" { out = export.DefaultOutName(time.Now()) }
    full, short, err := export.WriteReports(out, rows)
    if err != nil { return err }

    fmt.Println(full)
    fmt.Println(short)
    a.log.Info().Int("rows", len(rows)).Int("warnings", len(a.rec.Events())).
        Str("report", full).Str("short", short).Msg("extraction done")
    return nil
}

func newScheduleCmd(fl *appFlags) *cobra.Command {
    var spec string
    var runTimeout time.Duration
    cmd := &cobra.Command{
        Use:           "schedule",
        Short:         "Run the extraction periodically on a cron schedule",
        SilenceUsage:  true,
        SilenceErrors: true,
        RunE: func(cmd *cobra.Command, _ []string) error {
            a, err := newApp(fl)
            if err != nil { return err }
            if runTimeout <= 0 {
                return &domain.ConfigError{Reason: fmt.Sprintf("run-timeout must be positive, got %v", runTimeout)}
            }
            cr, err := jobs.NewCron(spec, runTimeout, a.log, a)
            if err != nil { return &domain.ConfigError{Reason: fmt.Sprintf("invalid cron spec %q: %v", spec, err)} }
            cr.Start()
            defer cr.Stop()
            a.log.Info().Str("cron", spec).Msg("scheduler started")

            sigCh := make(chan os.Signal, 1)
            signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
            <-sigCh
            a.log.Info().Msg("shutting down...")
            return nil
        },
    }
    cmd.Flags().StringVar(&spec, "cron", "0 7 * * MON", "cron spec for scheduled extraction")
    cmd.Flags().DurationVar(&runTimeout, "run-timeout", 30*time.Minute, "upper bound for one scheduled extraction")
    return cmd
}
