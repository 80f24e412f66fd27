/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */

// Command releasectl queries the release manager from a terminal, either
// through a running API or directly against the database, and serves the
// same actions to MCP clients over stdio.
package main

import (
    "context"
    "os"

    "github.com/charmbracelet/fang"
)

// Version is set via -ldflags.
var Version = "dev"

func main() {
    if err := fang.Execute(
        context.Background(),
        newRootCmd(),
        fang.WithVersion(Version),
        fang.WithNotifySignal(os.Interrupt),
    ); err != nil {
        os.Exit(1)
    }
}
