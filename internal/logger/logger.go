/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package logger

import (
    "io"
    "os"
    "time"

    "github.com/HamedShams/release-manager/internal/config"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
)

func New(cfg config.Config) zerolog.Logger {
    return NewTo(cfg, os.Stdout)
}

// NewTo is New with an explicit sink. The MCP server needs stderr because
// stdout carries the protocol.
func NewTo(cfg config.Config, out io.Writer) zerolog.Logger {
    if cfg.AppEnv == "dev" {
        out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
    } else {
        zerolog.TimeFieldFormat = time.RFC3339
    }
    logger := zerolog.New(out).Level(level(cfg.LogLevel)).With().Timestamp().Str("svc", "release-manager").Logger()
    log.Logger = logger
    return logger
}

// level falls back to info on an empty or unknown LOG_LEVEL.
func level(s string) zerolog.Level {
    l, err := zerolog.ParseLevel(s)
    if err != nil || s == "" { return zerolog.InfoLevel }
    return l
}
