package main

import (
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/HamedShams/worklog-pulse/internal/config"
    "github.com/HamedShams/worklog-pulse/internal/domain"
    "github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
    require.Equal(t, 2, exitCode(&domain.ConfigError{Reason: "bad date"}))
    require.Equal(t, 3, exitCode(&domain.HTTPError{Kind: domain.HTTPRetriesExhausted, Status: 500}))
    require.Equal(t, 3, exitCode(&domain.HTTPError{Kind: domain.HTTPFatal, Status: 404}))
    require.Equal(t, 4, exitCode(&domain.ExportError{Path: "x.xlsx", Err: errors.New("disk full")}))
    require.Equal(t, 1, exitCode(errors.New("something else")))

    // wrapped errors still map through errors.As
    require.Equal(t, 2, exitCode(fmt.Errorf("run: %w", &domain.ConfigError{Reason: "r"})))
    require.Equal(t, 3, exitCode(fmt.Errorf("run: %w", &domain.HTTPError{Kind: domain.HTTPFatal})))
}

func TestLoadConfigPrecedence(t *testing.T) {
    t.Setenv("JIRA_BASE_URL", "")
    t.Setenv("JIRA_EMAIL", "")
    t.Setenv("JIRA_API_TOKEN", "")

    path := filepath.Join(t.TempDir(), "config.ini")
    require.NoError(t, os.WriteFile(path, []byte(`
[jira]
base_url = https://example.atlassian.net
email = bot@example.com
api_token = tok
max_workers = 4
start_date = 2025-10-01
`), 0o600))

    // file value wins over the built-in default
    cfg, err := loadConfig(&appFlags{config: path})
    require.NoError(t, err)
    require.Equal(t, 4, cfg.MaxWorkers)
    require.Equal(t, "2025-10-01", cfg.StartDate)
    require.Equal(t, config.DefaultSoWFieldID, cfg.SoWFieldID)
    require.True(t, cfg.VerifySSL)

    // flag wins over the file
    cfg, err = loadConfig(&appFlags{
        config:     path,
        maxWorkers: 2,
        start:      "2025-10-10",
        end:        "2025-10-12",
        insecure:   true,
        sowFieldID: "customfield_7",
        timeout:    30,
        retryBase:  time.Second,
    })
    require.NoError(t, err)
    require.Equal(t, 2, cfg.MaxWorkers)
    require.Equal(t, "2025-10-10", cfg.StartDate)
    require.Equal(t, "2025-10-12", cfg.EndDate)
    require.False(t, cfg.VerifySSL)
    require.Equal(t, "customfield_7", cfg.SoWFieldID)
    require.Equal(t, 30*time.Second, cfg.Timeout)
    require.Equal(t, time.Second, cfg.RetryBase)
}

func TestScheduleRunTimeoutFlag(t *testing.T) {
    cmd := newScheduleCmd(&appFlags{})
    f := cmd.Flags().Lookup("run-timeout")
    require.NotNil(t, f)
    require.Equal(t, "30m0s", f.DefValue)

    require.NoError(t, cmd.Flags().Set("run-timeout", "2h"))
    require.Equal(t, "2h0m0s", f.Value.String())
}

func TestLoadConfigMissingCredentials(t *testing.T) {
    t.Setenv("JIRA_BASE_URL", "")
    t.Setenv("JIRA_EMAIL", "")
    t.Setenv("JIRA_API_TOKEN", "")

    _, err := loadConfig(&appFlags{config: filepath.Join(t.TempDir(), "absent.ini")})
    require.Error(t, err)
    require.Equal(t, 2, exitCode(err))
}
