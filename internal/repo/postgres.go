/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package repo

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    sq "github.com/Masterminds/squirrel"
    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/rs/zerolog"

    "github.com/HamedShams/release-manager/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type DB struct {
    Pool *pgxpool.Pool
    log  zerolog.Logger
}

func Open(ctx context.Context, dsn string, log zerolog.Logger) (*DB, error) {
    pool, err := pgxpool.New(ctx, dsn)
    if err != nil { return nil, fmt.Errorf("db connect: %w", err) }
    ctx2, cancel := context.WithTimeout(ctx, 10*time.Second); defer cancel()
    if err := pool.Ping(ctx2); err != nil { pool.Close(); return nil, fmt.Errorf("db ping: %w", err) }
    return &DB{Pool: pool, log: log}, nil
}

func (d *DB) Close() { d.Pool.Close() }

type Repository struct {
    db  *DB
    log zerolog.Logger
}

func NewRepository(d *DB, log zerolog.Logger) *Repository { return &Repository{db: d, log: log} }

func (r *Repository) Close() { r.db.Close() }

func (r *Repository) Migrate(ctx context.Context) error {
    for _, stmt := range postgresSchema {
        if _, err := r.db.Pool.Exec(ctx, stmt); err != nil { return fmt.Errorf("migrate: %w", err) }
    }
    return nil
}

func (r *Repository) TryAdvisoryLock(ctx context.Context, key int64) (bool, error) {
    var ok bool
    err := r.db.Pool.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&ok)
    return ok, err
}

func (r *Repository) AdvisoryUnlock(ctx context.Context, key int64) error {
    var ok bool
    err := r.db.Pool.QueryRow(ctx, "SELECT pg_advisory_unlock($1)", key).Scan(&ok)
    if !ok && err == nil { return errors.New("advisory unlock returned false") }
    return err
}

func (r *Repository) WorkItems(ctx context.Context, f WorkItemFilter) ([]domain.ContentWorkItem, error) {
    q, args, err := workItemsQuery(psql, f)
    if err != nil { return nil, err }
    rows, err := r.db.Pool.Query(ctx, q, args...)
    if err != nil { return nil, fmt.Errorf("query content_status: %w", err) }
    defer rows.Close()
    out := []domain.ContentWorkItem{}
    for rows.Next() {
        var it domain.ContentWorkItem
        var stage, prio, doc string
        if err := rows.Scan(&it.ModuleCode, &it.FeatureCode, &stage, &prio, &doc, &it.UpdatedAt); err != nil { return nil, err }
        it.WorkflowStatus = domain.WorkflowStage(stage)
        it.Priority = domain.Priority(prio)
        it.DocumentationStatus = domain.DocumentationStatus(doc)
        it.UpdatedAt = it.UpdatedAt.UTC()
        out = append(out, it)
    }
    return out, rows.Err()
}

func (r *Repository) Manuals(ctx context.Context, f ManualFilter) ([]domain.PublishedManualSnapshot, error) {
    q, args, err := manualsQuery(psql, "COALESCE(changelog, '{}')", f)
    if err != nil { return nil, err }
    rows, err := r.db.Pool.Query(ctx, q, args...)
    if err != nil { return nil, fmt.Errorf("query published_manuals: %w", err) }
    defer rows.Close()
    out := []domain.PublishedManualSnapshot{}
    for rows.Next() {
        var m domain.PublishedManualSnapshot
        if err := rows.Scan(&m.ManualID, &m.ManualName, &m.PublishedVersion, &m.SourceVersion,
            &m.SectionsPublished, &m.Changelog, &m.PublishedAt, &m.Status); err != nil { return nil, err }
        m.PublishedAt = m.PublishedAt.UTC()
        out = append(out, m)
    }
    return out, rows.Err()
}

func (r *Repository) CountPublishedQuickstarts(ctx context.Context) (int, error) {
    q, args, err := quickstartCountQuery(psql)
    if err != nil { return 0, err }
    var n int
    if err := r.db.Pool.QueryRow(ctx, q, args...).Scan(&n); err != nil { return 0, fmt.Errorf("count quickstart_guides: %w", err) }
    return n, nil
}

func (r *Repository) Lifecycle(ctx context.Context) (domain.ReleaseLifecycle, error) {
    q, args, err := lifecycleQuery(psql, "COALESCE(milestones::text, '[]')")
    if err != nil { return domain.ReleaseLifecycle{}, err }
    var lc domain.ReleaseLifecycle
    var status, milestones string
    err = r.db.Pool.QueryRow(ctx, q, args...).Scan(&lc.BaseVersion, &lc.VersionFreezeEnabled, &status,
        &milestones, &lc.TargetGADate, &lc.LastReadinessScore)
    if errors.Is(err, pgx.ErrNoRows) { return domain.ReleaseLifecycle{}, ErrNotFound }
    if err != nil { return domain.ReleaseLifecycle{}, fmt.Errorf("query release_lifecycle: %w", err) }
    lc.ReleaseStatus = domain.ReleaseStatus(status)
    if err := json.Unmarshal([]byte(milestones), &lc.Milestones); err != nil {
        return domain.ReleaseLifecycle{}, fmt.Errorf("decode milestones: %w", err)
    }
    return lc, nil
}
