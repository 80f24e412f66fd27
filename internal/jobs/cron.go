/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package jobs

import (
    "context"
    "fmt"
    "time"

    "github.com/HamedShams/release-manager/internal/config"
    "github.com/robfig/cron/v3"
    "github.com/rs/zerolog"
)

const digestLockKey int64 = 424243

type service interface { RunReadinessDigest(ctx context.Context) error }

type locker interface {
    TryAdvisoryLock(ctx context.Context, key int64) (bool, error)
    AdvisoryUnlock(ctx context.Context, key int64) error
}

type Cron struct {
    cfg  config.Config
    log  zerolog.Logger
    svc  service
    lock locker
    c    *cron.Cron
}

// NewCron schedules the readiness digest on cfg.DigestCron. An empty
// schedule returns a Cron with nothing registered.
func NewCron(cfg config.Config, log zerolog.Logger, svc service, lock locker) (*Cron, error) {
    loc, err := time.LoadLocation(cfg.TZ)
    if err != nil { loc = time.UTC }
    c := cron.New(cron.WithLocation(loc), cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)))
    cr := &Cron{cfg: cfg, log: log, svc: svc, lock: lock, c: c}
    if cfg.DigestCron == "" {
        log.Info().Msg("cron: digest disabled")
        return cr, nil
    }
    if _, err := c.AddFunc(cfg.DigestCron, cr.digest); err != nil {
        return nil, fmt.Errorf("cron: bad DIGEST_CRON %q: %w", cfg.DigestCron, err)
    }
    return cr, nil
}

func (cr *Cron) Start() { cr.c.Start() }

// Stop waits for a running digest to finish.
func (cr *Cron) Stop() { <-cr.c.Stop().Done() }

func (cr *Cron) Entries() int { return len(cr.c.Entries()) }

func (cr *Cron) digest() {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute); defer cancel()
    ok, err := cr.lock.TryAdvisoryLock(ctx, digestLockKey)
    if err != nil { cr.log.Error().Err(err).Msg("cron: lock error"); return }
    if !ok { cr.log.Info().Msg("cron: digest already running elsewhere"); return }
    defer func() { _ = cr.lock.AdvisoryUnlock(context.Background(), digestLockKey) }()
    cr.log.Info().Msg("cron: readiness digest")
    if err := cr.svc.RunReadinessDigest(ctx); err != nil { cr.log.Error().Err(err).Msg("cron: digest failed") }
}
