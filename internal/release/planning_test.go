package release

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/HamedShams/release-manager/internal/catalog"
	"github.com/HamedShams/release-manager/internal/domain"
)

func TestAdviseVersion(t *testing.T) {
	features := []domain.ContentWorkItem{item("PAY", "a", domain.StageReadyForEnablement), item("PAY", "b", domain.StageMaintenance)}
	fixes := []domain.ContentWorkItem{item("PAY", "b", domain.StageMaintenance)}
	cases := []struct {
		name    string
		current string
		lc      domain.ReleaseLifecycle
		items   []domain.ContentWorkItem
		want    string
		bump    Bump
	}{
		{"freeze pins", "", domain.ReleaseLifecycle{BaseVersion: "2.3.1", VersionFreezeEnabled: true}, features, "2.3.1", BumpNone},
		{"features bump minor", "", domain.ReleaseLifecycle{BaseVersion: "2.3.1"}, features, "2.4.0", BumpMinor},
		{"maintenance bumps patch", "", domain.ReleaseLifecycle{BaseVersion: "2.3.1"}, fixes, "2.3.2", BumpPatch},
		{"nothing pending", "", domain.ReleaseLifecycle{BaseVersion: "2.3.1"}, nil, "2.3.1", BumpNone},
		{"request overrides base", "3.0.0", domain.ReleaseLifecycle{BaseVersion: "2.3.1"}, features, "3.1.0", BumpMinor},
		{"pre-release suffix dropped", "1.0.0-beta.2", domain.ReleaseLifecycle{BaseVersion: "0.9.0"}, features, "1.1.0", BumpMinor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := AdviseVersion(tc.current, tc.lc, tc.items)
			if err != nil {
				t.Fatalf("AdviseVersion: %v", err)
			}
			if a.RecommendedVersion != tc.want || a.Bump != tc.bump {
				t.Errorf("got %s (%s), want %s (%s)", a.RecommendedVersion, a.Bump, tc.want, tc.bump)
			}
		})
	}
}

func TestAdviseVersion_InvalidVersion(t *testing.T) {
	if _, err := AdviseVersion("not-a-version", domain.ReleaseLifecycle{}, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAdviseVersion_MarkdownNotesPreRelease(t *testing.T) {
	a, err := AdviseVersion("", domain.ReleaseLifecycle{BaseVersion: "1.0.0", ReleaseStatus: domain.ReleasePreRelease}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(a.Markdown(), "pre-release") {
		t.Errorf("markdown should note pre-release:\n%s", a.Markdown())
	}
}

func TestParseTargetDate(t *testing.T) {
	if _, err := ParseTargetDate("", time.UTC); !errors.Is(err, ErrNoTargetDate) {
		t.Errorf("empty: got %v", err)
	}
	if _, err := ParseTargetDate("next friday", time.UTC); !errors.Is(err, ErrNoTargetDate) {
		t.Errorf("garbage: got %v", err)
	}
	d, err := ParseTargetDate("2025-09-30", time.UTC)
	if err != nil || d.Format(dateLayout) != "2025-09-30" {
		t.Errorf("plain date: %v %v", d, err)
	}
	d, err = ParseTargetDate("2025-09-30T18:00:00Z", time.UTC)
	if err != nil || d.Format(dateLayout) != "2025-09-30" {
		t.Errorf("rfc3339: %v %v", d, err)
	}
}

func TestPlanMilestones(t *testing.T) {
	now := time.Date(2025, 9, 1, 15, 0, 0, 0, time.UTC)
	target := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	lc := domain.ReleaseLifecycle{Milestones: []domain.Milestone{
		{Name: "Content freeze", Completed: true},
		{Name: "Beta docs"},
		{Name: "Translation review"},
		{Name: "GA docs"},
	}}
	p := PlanMilestones(lc, target, now)
	if p.DaysRemaining != 30 || p.Overdue {
		t.Fatalf("DaysRemaining=%d Overdue=%v", p.DaysRemaining, p.Overdue)
	}
	want := []string{"2025-09-11", "2025-09-21", "2025-10-01"}
	if len(p.Planned) != len(want) {
		t.Fatalf("planned = %+v", p.Planned)
	}
	for i, w := range want {
		if p.Planned[i].SuggestedDate != w {
			t.Errorf("milestone %d date = %s, want %s", i, p.Planned[i].SuggestedDate, w)
		}
	}
	if len(p.Completed) != 1 || p.Completed[0] != "Content freeze" {
		t.Errorf("Completed = %v", p.Completed)
	}
}

func TestPlanMilestones_PastTarget(t *testing.T) {
	now := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	target := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	p := PlanMilestones(domain.ReleaseLifecycle{Milestones: []domain.Milestone{{Name: "GA docs"}}}, target, now)
	if !p.Overdue || p.DaysRemaining != -9 {
		t.Fatalf("expected overdue plan, got %+v", p)
	}
	if p.Planned[0].SuggestedDate != "2025-09-01" {
		t.Errorf("overdue milestone should sit on the target date, got %s", p.Planned[0].SuggestedDate)
	}
	if !strings.Contains(p.Markdown(), "Warning") {
		t.Errorf("markdown should warn:\n%s", p.Markdown())
	}
}

func TestPlanMilestones_ClockAheadOfUTC(t *testing.T) {
	loc := time.FixedZone("NZST", 12*60*60)
	// 08:00 local is still the previous day in UTC
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, loc)
	target, err := ParseTargetDate("2025-06-20", loc)
	if err != nil {
		t.Fatalf("ParseTargetDate: %v", err)
	}
	p := PlanMilestones(domain.ReleaseLifecycle{Milestones: []domain.Milestone{{Name: "Beta docs"}, {Name: "GA docs"}}}, target, now)
	if p.Today != "2025-06-10" || p.DaysRemaining != 10 {
		t.Fatalf("today=%s daysRemaining=%d, want 2025-06-10 and 10", p.Today, p.DaysRemaining)
	}
	if p.Planned[0].SuggestedDate != "2025-06-15" || p.Planned[1].SuggestedDate != "2025-06-20" {
		t.Errorf("planned = %+v", p.Planned)
	}
}

func TestPlanMilestones_ClockBehindUTC(t *testing.T) {
	loc := time.FixedZone("PDT", -7*60*60)
	// 20:00 local is already the next day in UTC
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, loc)
	target, err := ParseTargetDate("2025-06-20", loc)
	if err != nil {
		t.Fatalf("ParseTargetDate: %v", err)
	}
	if p := PlanMilestones(domain.ReleaseLifecycle{}, target, now); p.Today != "2025-06-10" || p.DaysRemaining != 10 {
		t.Errorf("today=%s daysRemaining=%d, want 2025-06-10 and 10", p.Today, p.DaysRemaining)
	}
}

func TestSummarizeStatus(t *testing.T) {
	score := 71.6
	ga := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	lc := domain.ReleaseLifecycle{
		BaseVersion: "1.4.0", ReleaseStatus: domain.ReleaseGA, VersionFreezeEnabled: true,
		Milestones:         []domain.Milestone{{Name: "a", Completed: true}, {Name: "b"}},
		TargetGADate:       &ga,
		LastReadinessScore: &score,
	}
	cat := catalog.Default()
	items := []domain.ContentWorkItem{item("PAY", "a", domain.StagePublished), item("PAY", "b", domain.StageDocumentation)}
	s := SummarizeStatus(lc, cat, items, []domain.PublishedManualSnapshot{current("payroll-manual", "2.0.0")})
	if s.MilestonesCompleted != 1 || s.MilestonesTotal != 2 {
		t.Errorf("milestones %d/%d", s.MilestonesCompleted, s.MilestonesTotal)
	}
	if s.Published != 1 || s.NotPublished != 9 || s.NeedsSync != 1 {
		t.Errorf("publishing counts %d/%d/%d", s.Published, s.NotPublished, s.NeedsSync)
	}
	if s.Workflow.CompletionRate != 50 {
		t.Errorf("CompletionRate = %d", s.Workflow.CompletionRate)
	}
	md := s.Markdown()
	if !strings.Contains(md, "2025-12-01") || !strings.Contains(md, "Last stored readiness score:** 72") {
		t.Errorf("unexpected markdown:\n%s", md)
	}
}

func TestChat_OrderedSubstringMatch(t *testing.T) {
	cases := map[string]string{
		"What VERSION are we on?":                  "version",
		"is the version ready for release":         "version",
		"are we ready?":                            "readiness",
		"show the changelog":                       "changelog",
		"plan milestones please":                   "milestones",
		"what should I publish":                    "publishing",
		"any bottleneck?":                          "bottlenecks",
		"how should we prioritize":                 "priorities",
		"hello":                                    "help",
		"":                                         "help",
	}
	for msg, topic := range cases {
		if got := Chat(msg); got.Topic != topic {
			t.Errorf("Chat(%q) topic = %s, want %s", msg, got.Topic, topic)
		}
	}
	if !strings.Contains(Chat("version?").Markdown(), "Version Freeze") {
		t.Error("version reply should explain the version freeze")
	}
}
