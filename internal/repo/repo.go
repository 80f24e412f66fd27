/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */

// Package repo reads the content-status, published-manual, quick-start and
// release-lifecycle tables. It never writes outside Migrate. Result sets are
// unbounded unless a filter sets a Limit: the content catalog is small and
// the callers aggregate over every row.
package repo

import (
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/HamedShams/release-manager/internal/domain"
)

var ErrNotFound = errors.New("repo: not found")

type WorkItemFilter struct {
	ExcludeStages       []domain.WorkflowStage
	ModuleCode          string
	DocumentationStatus domain.DocumentationStatus
	OldestFirst         bool
	Limit               uint64
}

type ManualFilter struct {
	Status string
	IDs    []string
}

// CurrentManuals selects the snapshots every report works from.
func CurrentManuals() ManualFilter { return ManualFilter{Status: domain.ManualStatusCurrent} }

// OpenWork is the suggest_priorities query: unfinished items, oldest 20.
func OpenWork() WorkItemFilter {
	return WorkItemFilter{
		ExcludeStages: []domain.WorkflowStage{domain.StagePublished, domain.StageMaintenance},
		OldestFirst:   true,
		Limit:         20,
	}
}

const quickstartPublished = "published"

func workItemsQuery(b sq.StatementBuilderType, f WorkItemFilter) (string, []any, error) {
	q := b.Select(
		"module_code",
		"feature_code",
		"workflow_status",
		"COALESCE(priority, '')",
		"COALESCE(documentation_status, '')",
		"updated_at",
	).From("content_status")
	if len(f.ExcludeStages) > 0 {
		stages := make([]string, 0, len(f.ExcludeStages))
		for _, s := range f.ExcludeStages {
			stages = append(stages, string(s))
		}
		q = q.Where(sq.NotEq{"workflow_status": stages})
	}
	if f.ModuleCode != "" {
		q = q.Where(sq.Eq{"module_code": f.ModuleCode})
	}
	if f.DocumentationStatus != "" {
		q = q.Where(sq.Eq{"documentation_status": string(f.DocumentationStatus)})
	}
	if f.OldestFirst {
		q = q.OrderBy("updated_at ASC", "module_code ASC", "feature_code ASC")
	} else {
		q = q.OrderBy("module_code ASC", "feature_code ASC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	return q.ToSql()
}

func manualsQuery(b sq.StatementBuilderType, changelogExpr string, f ManualFilter) (string, []any, error) {
	q := b.Select(
		"manual_id",
		"COALESCE(manual_name, '')",
		"COALESCE(published_version, '')",
		"COALESCE(source_version, '')",
		"COALESCE(sections_published, 0)",
		changelogExpr,
		"published_at",
		"status",
	).From("published_manuals").OrderBy("manual_id ASC", "published_at DESC")
	if f.Status != "" {
		q = q.Where(sq.Eq{"status": f.Status})
	}
	if len(f.IDs) > 0 {
		q = q.Where(sq.Eq{"manual_id": f.IDs})
	}
	return q.ToSql()
}

func quickstartCountQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("COUNT(*)").From("quickstart_guides").Where(sq.Eq{"status": quickstartPublished}).ToSql()
}

func lifecycleQuery(b sq.StatementBuilderType, milestonesExpr string) (string, []any, error) {
	return b.Select(
		"base_version",
		"version_freeze_enabled",
		"release_status",
		milestonesExpr,
		"target_ga_date",
		"last_readiness_score",
	).From("release_lifecycle").OrderBy("id ASC").Limit(1).ToSql()
}

// timeLayouts covers what writers put into SQLite text columns: RFC 3339,
// the driver's sqlite format, and Go's time.String (the driver default for
// time.Time parameters).
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	// time.String appends the monotonic reading
	if i := strings.Index(s, " m="); i > 0 {
		s = s[:i]
	}
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
