/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
    "os"
    "strings"
    "time"

    "github.com/HamedShams/worklog-pulse/internal/domain"
    "github.com/spf13/viper"
)

const (
    DefaultMaxWorkers = 8
    DefaultTimeout    = 120 * time.Second
    DefaultRetryBase  = 500 * time.Millisecond
    DefaultMaxTries   = 5
    DefaultSoWFieldID = "customfield_11921"
)

type Config struct {
    BaseURL  string
    Email    string
    APIToken string

    VerifySSL  bool
    CABundle   string
    HTTPProxy  string
    HTTPSProxy string

    StartDate string
    EndDate   string

    MaxWorkers int
    Timeout    time.Duration
    RetryBase  time.Duration
    MaxTries   int

    SoWFieldID string
}

func getenv(key, def string) string {
    v := strings.TrimSpace(os.Getenv(key))
    if v == "" { return def }
    return v
}

// truthy accepts the INI spellings seen in the wild (true/yes/on/1).
func truthy(s string, def bool) bool {
    s = strings.ToLower(strings.TrimSpace(s))
    if s == "" { return def }
    switch s {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return def
}

// Load reads the [jira] section of an INI file, falling back to the
// JIRA_BASE_URL / JIRA_EMAIL / JIRA_API_TOKEN environment variables for
// empty credentials. A missing file is not fatal as long as the environment
// supplies the credentials; missing credentials are.
func Load(path string) (Config, error) {
    v := viper.New()
    v.SetConfigFile(path)
    v.SetConfigType("ini")
    _ = v.ReadInConfig() // absent file falls through to env

    cfg := Config{
        BaseURL:  strings.TrimSpace(v.GetString("jira.base_url")),
        Email:    strings.TrimSpace(v.GetString("jira.email")),
        APIToken: strings.TrimSpace(v.GetString("jira.api_token")),

        VerifySSL:  truthy(v.GetString("jira.verify_ssl"), true),
        CABundle:   strings.TrimSpace(v.GetString("jira.ca_bundle")),
        HTTPProxy:  strings.TrimSpace(v.GetString("jira.http_proxy")),
        HTTPSProxy: strings.TrimSpace(v.GetString("jira.https_proxy")),

        StartDate: strings.TrimSpace(v.GetString("jira.start_date")),
        EndDate:   strings.TrimSpace(v.GetString("jira.end_date")),

        MaxWorkers: v.GetInt("jira.max_workers"),
        Timeout:    DefaultTimeout,
        RetryBase:  DefaultRetryBase,
        MaxTries:   DefaultMaxTries,

        SoWFieldID: strings.TrimSpace(v.GetString("jira.sow_field_id")),
    }

    if cfg.BaseURL == "" { cfg.BaseURL = getenv("JIRA_BASE_URL", "") }
    if cfg.Email == "" { cfg.Email = getenv("JIRA_EMAIL", "") }
    if cfg.APIToken == "" { cfg.APIToken = getenv("JIRA_API_TOKEN", "") }

    if cfg.MaxWorkers <= 0 { cfg.MaxWorkers = DefaultMaxWorkers }
    if cfg.SoWFieldID == "" { cfg.SoWFieldID = DefaultSoWFieldID }
    cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

    if cfg.BaseURL == "" || cfg.Email == "" || cfg.APIToken == "" {
        return cfg, &domain.ConfigError{Reason: "base_url, email and api_token are required (config [jira] section or JIRA_* environment)"}
    }
    return cfg, nil
}
