/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "errors"
    "fmt"
    "os"

    "github.com/HamedShams/worklog-pulse/internal/domain"
)

// The single process boundary: components below return typed errors and
// never exit; only here do categories become exit codes.
const (
    exitConfig  = 2
    exitNetwork = 3
    exitExport  = 4
)

func main() {
    root := newRootCmd()
    if err := root.Execute(); err != nil {
        fmt.Fprintln(os.Stderr, "error:", err)
        os.Exit(exitCode(err))
    }
}

func exitCode(err error) int {
    var ce *domain.ConfigError
    if errors.As(err, &ce) { return exitConfig }
    var he *domain.HTTPError
    if errors.As(err, &he) { return exitNetwork }
    var ee *domain.ExportError
    if errors.As(err, &ee) { return exitExport }
    return 1
}
