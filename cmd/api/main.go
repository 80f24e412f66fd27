/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/HamedShams/release-manager/internal/adapters/openai"
    "github.com/HamedShams/release-manager/internal/adapters/telegram"
    "github.com/HamedShams/release-manager/internal/config"
    apphttp "github.com/HamedShams/release-manager/internal/http"
    "github.com/HamedShams/release-manager/internal/jobs"
    "github.com/HamedShams/release-manager/internal/logger"
    "github.com/HamedShams/release-manager/internal/repo"
    "github.com/HamedShams/release-manager/internal/services"
)

func main() {
    cfg := config.Load()
    log := logger.New(cfg)
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    // DB
    store, err := repo.OpenStore(ctx, cfg, log)
    if err != nil { log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("db open failed") }
    defer store.Close()
    if cfg.DBMigrate {
        if err := store.Migrate(ctx); err != nil { log.Fatal().Err(err).Msg("db migrate failed") }
    }

    // Adapters
    var llm services.Narrator
    if oc := openai.NewClient(cfg, log); oc.Enabled() {
        llm = oc
    } else {
        log.Info().Msg("OPENAI_API_KEY not set; insight disabled")
    }
    var tg services.Notifier
    if cfg.TelegramToken != "" { tg = telegram.NewClient(cfg, log) }

    // Services
    svc := services.New(cfg, log, store, llm, tg)

    // HTTP server (Gin)
    router := apphttp.NewRouter(cfg, log, svc)
    srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

    // Cron
    cron, err := jobs.NewCron(cfg, log, svc, store)
    if err != nil { log.Fatal().Err(err).Msg("cron setup failed") }
    cron.Start()
    defer cron.Stop()

    // graceful shutdown
    errCh := make(chan error, 1)
    go func() { errCh <- srv.ListenAndServe() }()
    log.Info().Str("addr", cfg.HTTPAddr).Str("db", cfg.DBDriver).Int("manuals", svc.Catalog().Len()).Msg("release-manager listening")

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil && !errors.Is(err, http.ErrServerClosed) { log.Error().Err(err).Msg("http server error") }
    }

    shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second); defer stop()
    if err := srv.Shutdown(shutdownCtx); err != nil { log.Error().Err(err).Msg("http shutdown") }
}
