package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/HamedShams/release-manager/internal/domain"
)

func openTestSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	r, err := OpenSQLite(filepath.Join(t.TempDir(), "release.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(r.Close)
	if err := r.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return r
}

func seedSQLite(t *testing.T, r *SQLiteRepository, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			t.Fatalf("seed %q: %v", s, err)
		}
	}
}

func TestSQLite_WorkItemsFilters(t *testing.T) {
	r := openTestSQLite(t)
	seedSQLite(t, r,
		`INSERT INTO content_status(module_code, feature_code, workflow_status, priority, documentation_status, updated_at) VALUES
			('HR', 'onboarding', 'development_backlog', 'critical', 'not_started', '2025-01-01T09:00:00Z'),
			('HR', 'offboarding', 'published', 'low', 'complete', '2025-01-02T09:00:00Z'),
			('PAY', 'payslips', 'documentation', 'high', 'complete', '2024-12-01T09:00:00Z'),
			('PAY', 'tax', 'maintenance', 'medium', 'complete', '2024-11-01T09:00:00Z')`,
	)
	ctx := context.Background()

	all, err := r.WorkItems(ctx, WorkItemFilter{})
	if err != nil {
		t.Fatalf("WorkItems: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d items, want 4", len(all))
	}
	if all[0].ModuleCode != "HR" || all[0].FeatureCode != "offboarding" {
		t.Errorf("default order should be module/feature, got %s/%s first", all[0].ModuleCode, all[0].FeatureCode)
	}

	open, err := r.WorkItems(ctx, OpenWork())
	if err != nil {
		t.Fatalf("WorkItems(OpenWork): %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("open work = %d items, want 2", len(open))
	}
	if open[0].FeatureCode != "payslips" {
		t.Errorf("oldest first: got %s", open[0].FeatureCode)
	}
	if want := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC); !open[0].UpdatedAt.Equal(want) {
		t.Errorf("UpdatedAt = %v, want %v", open[0].UpdatedAt, want)
	}
	if open[1].Priority != domain.PriorityCritical || open[1].WorkflowStatus != domain.StageDevelopmentBacklog {
		t.Errorf("typed fields not mapped: %+v", open[1])
	}

	done, err := r.WorkItems(ctx, WorkItemFilter{ModuleCode: "PAY", DocumentationStatus: domain.DocComplete, Limit: 1})
	if err != nil {
		t.Fatalf("WorkItems(PAY): %v", err)
	}
	if len(done) != 1 || done[0].ModuleCode != "PAY" {
		t.Errorf("filtered = %+v", done)
	}
}

func TestSQLite_ManualsAndQuickstarts(t *testing.T) {
	r := openTestSQLite(t)
	seedSQLite(t, r,
		`INSERT INTO published_manuals(manual_id, manual_name, published_version, source_version, sections_published, changelog, published_at, status) VALUES
			('hr', 'HR Manual', '1.2.0', '1.1.0', 24, '["Added onboarding","Fixed typos"]', '2025-02-01T10:00:00Z', 'current'),
			('hr', 'HR Manual', '1.1.0', '1.0.0', 20, NULL, '2025-01-01T10:00:00Z', 'superseded'),
			('payroll', 'Payroll Manual', '1.0.0', '1.0.0', 12, NULL, '2025-01-15T10:00:00Z', 'current')`,
		`INSERT INTO quickstart_guides(module_code, status) VALUES ('HR', 'published'), ('PAY', 'published'), ('LMS', 'draft')`,
	)
	ctx := context.Background()

	cur, err := r.Manuals(ctx, CurrentManuals())
	if err != nil {
		t.Fatalf("Manuals: %v", err)
	}
	if len(cur) != 2 {
		t.Fatalf("current manuals = %d, want 2", len(cur))
	}
	if got := cur[0].Changelog; len(got) != 2 || got[0] != "Added onboarding" {
		t.Errorf("changelog = %v", got)
	}
	if cur[1].Changelog == nil || len(cur[1].Changelog) != 0 {
		t.Errorf("NULL changelog should decode to empty slice, got %#v", cur[1].Changelog)
	}

	only, err := r.Manuals(ctx, ManualFilter{IDs: []string{"hr"}})
	if err != nil {
		t.Fatalf("Manuals(ids): %v", err)
	}
	if len(only) != 2 || only[0].PublishedVersion != "1.2.0" {
		t.Errorf("id filter should return both hr rows newest first, got %+v", only)
	}

	n, err := r.CountPublishedQuickstarts(ctx)
	if err != nil {
		t.Fatalf("CountPublishedQuickstarts: %v", err)
	}
	if n != 2 {
		t.Errorf("quickstarts = %d, want 2", n)
	}
}

func TestSQLite_Lifecycle(t *testing.T) {
	r := openTestSQLite(t)
	ctx := context.Background()
	if _, err := r.Lifecycle(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty table: err = %v, want ErrNotFound", err)
	}

	seedSQLite(t, r,
		`INSERT INTO release_lifecycle(id, base_version, version_freeze_enabled, release_status, milestones, target_ga_date, last_readiness_score) VALUES
			(1, '2.3.0-rc.1', 1, 'pre-release', '[{"name":"Docs freeze","completed":true},{"name":"GA","completed":false}]', '2025-06-30', 71.5)`,
	)
	lc, err := r.Lifecycle(ctx)
	if err != nil {
		t.Fatalf("Lifecycle: %v", err)
	}
	if lc.BaseVersion != "2.3.0-rc.1" || !lc.VersionFreezeEnabled || lc.ReleaseStatus != domain.ReleasePreRelease {
		t.Errorf("lifecycle = %+v", lc)
	}
	if len(lc.Milestones) != 2 || !lc.Milestones[0].Completed || lc.Milestones[1].Name != "GA" {
		t.Errorf("milestones = %+v", lc.Milestones)
	}
	if lc.TargetGADate == nil || lc.TargetGADate.Format("2006-01-02") != "2025-06-30" {
		t.Errorf("target = %v", lc.TargetGADate)
	}
	if lc.LastReadinessScore == nil || *lc.LastReadinessScore != 71.5 {
		t.Errorf("score = %v", lc.LastReadinessScore)
	}
}

func TestSQLite_AdvisoryLockIsNoop(t *testing.T) {
	r := openTestSQLite(t)
	ok, err := r.TryAdvisoryLock(context.Background(), 42)
	if err != nil || !ok {
		t.Fatalf("TryAdvisoryLock = %v, %v", ok, err)
	}
	if err := r.AdvisoryUnlock(context.Background(), 42); err != nil {
		t.Fatalf("AdvisoryUnlock: %v", err)
	}
}

// Another writer using the driver defaults stores time.Time with time.String.
func TestSQLite_TimestampsFromOtherWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "release.db")
	r, err := OpenSQLite(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(r.Close)
	ctx := context.Background()
	if err := r.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	other, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	defer other.Close()
	ins := `INSERT INTO content_status(module_code, feature_code, workflow_status, priority, documentation_status, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := other.Exec(ins, "HR", "later", "documentation", "high", "not_started", time.Date(2025, 1, 2, 11, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("insert time.Time: %v", err)
	}
	if _, err := other.Exec(ins, "HR", "earlier", "documentation", "high", "not_started", "2025-01-02T10:00:00Z"); err != nil {
		t.Fatalf("insert text: %v", err)
	}
	items, err := r.WorkItems(ctx, WorkItemFilter{})
	if err != nil {
		t.Fatalf("WorkItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	// as text the time.String row sorts first; by time it is the newer one
	oldest, err := r.WorkItems(ctx, WorkItemFilter{OldestFirst: true, Limit: 1})
	if err != nil {
		t.Fatalf("WorkItems(oldest): %v", err)
	}
	if len(oldest) != 1 || oldest[0].FeatureCode != "earlier" {
		t.Errorf("oldest = %+v, want earlier", oldest)
	}
	if want := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC); !oldest[0].UpdatedAt.Equal(want) {
		t.Errorf("UpdatedAt = %v, want %v", oldest[0].UpdatedAt, want)
	}

	pub := `INSERT INTO published_manuals(manual_id, manual_name, published_version, source_version, sections_published, changelog, published_at, status) VALUES (?, ?, ?, ?, ?, NULL, ?, 'current')`
	if _, err := other.Exec(pub, "hr", "HR Manual", "1.2.0", "1.0.0", 20, time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("insert manual: %v", err)
	}
	if _, err := other.Exec(pub, "hr", "HR Manual", "1.1.0", "1.0.0", 18, "2025-01-15T10:00:00Z"); err != nil {
		t.Fatalf("insert manual: %v", err)
	}
	manuals, err := r.Manuals(ctx, CurrentManuals())
	if err != nil {
		t.Fatalf("Manuals: %v", err)
	}
	if len(manuals) != 2 || manuals[0].PublishedVersion != "1.2.0" || manuals[0].PublishedAt.IsZero() {
		t.Errorf("newest snapshot should come first with its time parsed, got %+v", manuals)
	}
}

func TestSQLite_BadPublishedAtIsAnError(t *testing.T) {
	r := openTestSQLite(t)
	seedSQLite(t, r,
		`INSERT INTO published_manuals(manual_id, manual_name, published_version, source_version, sections_published, changelog, published_at, status) VALUES
			('hr', 'HR Manual', '1.2.0', '1.0.0', 20, NULL, 'last tuesday', 'current')`,
	)
	if _, err := r.Manuals(context.Background(), CurrentManuals()); err == nil || !strings.Contains(err.Error(), "bad published_at") {
		t.Fatalf("err = %v, want bad published_at", err)
	}
}
