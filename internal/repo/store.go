/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package repo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/HamedShams/release-manager/internal/config"
	"github.com/HamedShams/release-manager/internal/domain"
)

// Store is what both backends provide.
type Store interface {
	WorkItems(ctx context.Context, f WorkItemFilter) ([]domain.ContentWorkItem, error)
	Manuals(ctx context.Context, f ManualFilter) ([]domain.PublishedManualSnapshot, error)
	CountPublishedQuickstarts(ctx context.Context) (int, error)
	Lifecycle(ctx context.Context) (domain.ReleaseLifecycle, error)
	TryAdvisoryLock(ctx context.Context, key int64) (bool, error)
	AdvisoryUnlock(ctx context.Context, key int64) error
	Migrate(ctx context.Context) error
	Close()
}

var (
	_ Store = (*Repository)(nil)
	_ Store = (*SQLiteRepository)(nil)
)

// OpenStore picks the backend named by cfg.DBDriver.
func OpenStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		d, err := Open(ctx, cfg.DBDSN, log)
		if err != nil { return nil, err }
		return NewRepository(d, log), nil
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, log)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
