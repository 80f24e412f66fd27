/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/HamedShams/release-manager/internal/domain"
)

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var openDB = sql.Open

// SQLiteRepository is the embedded backend used by the CLI and local dev.
type SQLiteRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func OpenSQLite(path string, log zerolog.Logger) (*SQLiteRepository, error) {
	db, err := openDB("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite %q: %w", p, err)
		}
	}
	return &SQLiteRepository{db: db, log: log}, nil
}

// sqliteDSN makes the driver write time.Time values in its sqlite layout.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_time_format=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_time_format=sqlite"
}

func (r *SQLiteRepository) Close() { r.db.Close() }

func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// TryAdvisoryLock always succeeds: a SQLite file has one writer process.
func (r *SQLiteRepository) TryAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	return true, nil
}

func (r *SQLiteRepository) AdvisoryUnlock(ctx context.Context, key int64) error { return nil }

func (r *SQLiteRepository) WorkItems(ctx context.Context, f WorkItemFilter) ([]domain.ContentWorkItem, error) {
	// updated_at is text and other writers may use other layouts, so the
	// oldest-first order and its limit are applied after parsing
	query := f
	if f.OldestFirst {
		query.Limit = 0
	}
	q, args, err := workItemsQuery(sqlite, query)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query content_status: %w", err)
	}
	defer rows.Close()
	out := []domain.ContentWorkItem{}
	for rows.Next() {
		var it domain.ContentWorkItem
		var stage, prio, doc, updated string
		if err := rows.Scan(&it.ModuleCode, &it.FeatureCode, &stage, &prio, &doc, &updated); err != nil {
			return nil, err
		}
		it.WorkflowStatus = domain.WorkflowStage(stage)
		it.Priority = domain.Priority(prio)
		it.DocumentationStatus = domain.DocumentationStatus(doc)
		ts, ok := parseTime(updated)
		if !ok {
			return nil, fmt.Errorf("content_status %s/%s: bad updated_at %q", it.ModuleCode, it.FeatureCode, updated)
		}
		it.UpdatedAt = ts
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if f.OldestFirst {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
			if a.ModuleCode != b.ModuleCode {
				return a.ModuleCode < b.ModuleCode
			}
			return a.FeatureCode < b.FeatureCode
		})
		if f.Limit > 0 && uint64(len(out)) > f.Limit {
			out = out[:f.Limit]
		}
	}
	return out, nil
}

func (r *SQLiteRepository) Manuals(ctx context.Context, f ManualFilter) ([]domain.PublishedManualSnapshot, error) {
	q, args, err := manualsQuery(sqlite, "COALESCE(changelog, '[]')", f)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query published_manuals: %w", err)
	}
	defer rows.Close()
	out := []domain.PublishedManualSnapshot{}
	for rows.Next() {
		var m domain.PublishedManualSnapshot
		var changelog string
		var published sql.NullString
		if err := rows.Scan(&m.ManualID, &m.ManualName, &m.PublishedVersion, &m.SourceVersion,
			&m.SectionsPublished, &changelog, &published, &m.Status); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(changelog), &m.Changelog); err != nil {
			return nil, fmt.Errorf("manual %s: decode changelog: %w", m.ManualID, err)
		}
		if m.Changelog == nil {
			m.Changelog = []string{}
		}
		if published.Valid && strings.TrimSpace(published.String) != "" {
			ts, ok := parseTime(published.String)
			if !ok {
				return nil, fmt.Errorf("manual %s: bad published_at %q", m.ManualID, published.String)
			}
			m.PublishedAt = ts
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// newest snapshot first per manual, by parsed time rather than text
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ManualID != out[j].ManualID {
			return out[i].ManualID < out[j].ManualID
		}
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out, nil
}

func (r *SQLiteRepository) CountPublishedQuickstarts(ctx context.Context) (int, error) {
	q, args, err := quickstartCountQuery(sqlite)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count quickstart_guides: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Lifecycle(ctx context.Context) (domain.ReleaseLifecycle, error) {
	q, args, err := lifecycleQuery(sqlite, "COALESCE(milestones, '[]')")
	if err != nil {
		return domain.ReleaseLifecycle{}, err
	}
	var lc domain.ReleaseLifecycle
	var status, milestones string
	var target sql.NullString
	var score sql.NullFloat64
	err = r.db.QueryRowContext(ctx, q, args...).Scan(&lc.BaseVersion, &lc.VersionFreezeEnabled, &status, &milestones, &target, &score)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ReleaseLifecycle{}, ErrNotFound
	}
	if err != nil {
		return domain.ReleaseLifecycle{}, fmt.Errorf("query release_lifecycle: %w", err)
	}
	lc.ReleaseStatus = domain.ReleaseStatus(status)
	if err := json.Unmarshal([]byte(milestones), &lc.Milestones); err != nil {
		return domain.ReleaseLifecycle{}, fmt.Errorf("decode milestones: %w", err)
	}
	if target.Valid {
		if t, ok := parseTime(target.String); ok {
			lc.TargetGADate = &t
		}
	}
	if score.Valid {
		v := score.Float64
		lc.LastReadinessScore = &v
	}
	return lc, nil
}
