/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/HamedShams/release-manager/internal/domain"
)

// Report is any engine result that can describe itself in markdown.
type Report interface {
	Markdown() string
}

var stageLabels = map[domain.WorkflowStage]string{
	domain.StageDevelopmentBacklog: "Development Backlog",
	domain.StageInDevelopment:      "In Development",
	domain.StageTestingReview:      "Testing & Review",
	domain.StageDocumentation:      "Documentation",
	domain.StageReadyForEnablement: "Ready for Enablement",
	domain.StagePublished:          "Published",
	domain.StageMaintenance:        "Maintenance",
}

func stageLabel(s domain.WorkflowStage) string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

func bullets(b *strings.Builder, items []string) {
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

func (r Readiness) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Release Readiness Assessment\n\n")
	fmt.Fprintf(b, "**Overall score:** %d/100 (grade %s)\n\n", r.OverallScore, r.Grade)
	b.WriteString("## Coverage\n\n")
	fmt.Fprintf(b, "- Manuals published: %d (average score %d)\n", len(r.Manuals), int(math.Round(r.ManualScore)))
	fmt.Fprintf(b, "- Quick-start guides: %d/%d modules (%d%%)\n\n", r.QuickstartPublished, r.TotalModules, r.QuickstartCoverage)
	if len(r.Manuals) > 0 {
		b.WriteString("| Manual | Version | Sections | Changelog | Score |\n")
		b.WriteString("|--------|---------|----------|-----------|-------|\n")
		for _, m := range r.Manuals {
			cl := "no"
			if m.HasChangelog {
				cl = "yes"
			}
			fmt.Fprintf(b, "| %s | %s | %d | %s | %d |\n", manualLabel(m), m.Version, m.SectionsPublished, cl, m.Score)
		}
		b.WriteString("\n")
	}
	if len(r.Blockers) > 0 {
		b.WriteString("## Blockers\n\n")
		bullets(b, r.Blockers)
		b.WriteString("\n")
	}
	if len(r.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		bullets(b, r.Warnings)
		b.WriteString("\n")
	}
	if r.ReadyForRelease {
		b.WriteString("**READY FOR RELEASE**: score is at least 80 and there are no blockers.\n")
	} else {
		b.WriteString("**NOT READY FOR RELEASE**: resolve the blockers and raise the score to 80 or more.\n")
	}
	return b.String()
}

func (w WorkflowSummary) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Content Workflow Status\n\n")
	b.WriteString("| Stage | Items |\n")
	b.WriteString("|-------|-------|\n")
	for _, s := range w.Stages {
		fmt.Fprintf(b, "| %s | %d |\n", stageLabel(s.Stage), s.Count)
	}
	b.WriteString("\n## Summary\n\n")
	fmt.Fprintf(b, "- **Total items:** %d\n", w.Total)
	fmt.Fprintf(b, "- **In progress:** %d\n", w.InProgress)
	fmt.Fprintf(b, "- **Blocked (backlog):** %d\n", w.Blocked)
	fmt.Fprintf(b, "- **Completed:** %d\n", w.Completed)
	fmt.Fprintf(b, "- **Completion rate:** %d%%\n", w.CompletionRate)
	if w.Unrecognized > 0 {
		fmt.Fprintf(b, "- **Unrecognized stage:** %d (not counted in any stage)\n", w.Unrecognized)
	}
	return b.String()
}

func (p Priorities) priorityLines(b *strings.Builder, bucket PriorityBucket) {
	if bucket.Count == 0 {
		b.WriteString("_None._\n\n")
		return
	}
	for _, it := range bucket.Examples {
		fmt.Fprintf(b, "- %s / %s (%s, %s), updated %s\n",
			it.ModuleCode, it.FeatureCode, stageLabel(it.WorkflowStatus), it.Priority,
			humanize.RelTime(it.UpdatedAt, p.AsOf, "ago", "from now"))
	}
	if bucket.Count > len(bucket.Examples) {
		fmt.Fprintf(b, "- ...and %d more\n", bucket.Count-len(bucket.Examples))
	}
	b.WriteString("\n")
}

func (p Priorities) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Suggested Priorities\n\n")
	fmt.Fprintf(b, "Reviewed the %d oldest open items.\n\n", p.Considered)
	fmt.Fprintf(b, "## Critical (%d)\n\n", p.Critical.Count)
	p.priorityLines(b, p.Critical)
	fmt.Fprintf(b, "## Blocked in backlog (%d)\n\n", p.Blocked.Count)
	p.priorityLines(b, p.Blocked)
	fmt.Fprintf(b, "## Stale, no update in over %d days (%d)\n\n", StaleAfterDays, p.Stale.Count)
	p.priorityLines(b, p.Stale)
	b.WriteString("## Recommendation\n\n")
	b.WriteString("Focus on critical items and items blocked in the backlog first, then refresh stale items.\n")
	return b.String()
}

func (bn Bottlenecks) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Bottleneck Analysis\n\n")
	if bn.Bottleneck == nil {
		b.WriteString("No pending items. Nothing is stuck.\n")
		return b.String()
	}
	fmt.Fprintf(b, "**Bottleneck stage:** %s (%d of %d pending items)\n\n", stageLabel(bn.Bottleneck.Stage), bn.Bottleneck.Count, bn.Pending)
	b.WriteString("## Pending by stage\n\n")
	for _, s := range bn.Stages {
		fmt.Fprintf(b, "- %s: %d\n", stageLabel(s.Stage), s.Count)
	}
	b.WriteString("\n## Modules with most pending items\n\n")
	for i, m := range bn.TopModules {
		fmt.Fprintf(b, "%d. %s: %d\n", i+1, m.ModuleCode, m.Count)
	}
	if len(bn.Recommendations) > 0 {
		b.WriteString("\n## Recommendations\n\n")
		bullets(b, bn.Recommendations)
	}
	return b.String()
}

func (ps PublishingStatus) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Publishing Status\n\n")
	fmt.Fprintf(b, "- **Published:** %d of %d\n", len(ps.Published), ps.CatalogSize)
	fmt.Fprintf(b, "- **Not published:** %d\n", len(ps.NotPublished))
	fmt.Fprintf(b, "- **Needs sync:** %d\n\n", len(ps.NeedsSync))
	if len(ps.NotPublished) > 0 {
		b.WriteString("## Not published\n\n")
		for _, m := range ps.NotPublished {
			fmt.Fprintf(b, "- %s (%s)\n", m.Name, m.ModuleCode)
		}
		b.WriteString("\n")
	}
	if len(ps.NeedsSync) > 0 {
		b.WriteString("## Needs sync\n\n")
		for _, m := range ps.NeedsSync {
			fmt.Fprintf(b, "- %s: published %s from source %s\n", m.Name, m.PublishedVersion, m.SourceVersion)
		}
		b.WriteString("\n")
	}
	if len(ps.Uncataloged) > 0 {
		b.WriteString("## Not in catalog\n\n")
		bullets(b, ps.Uncataloged)
	}
	return b.String()
}

func (bp BulkPublish) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Bulk Publish Recommendation\n\n")
	fmt.Fprintf(b, "- **Not published:** %d\n", len(bp.NotPublished))
	fmt.Fprintf(b, "- **Ready to publish:** %d\n\n", len(bp.ReadyToPublish))
	if len(bp.ReadyToPublish) > 0 {
		b.WriteString("## Ready to publish\n\n")
		for _, m := range bp.ReadyToPublish {
			fmt.Fprintf(b, "- %s (%s)\n", m.Name, m.ModuleCode)
		}
		b.WriteString("\n")
	}
	if len(bp.Waiting) > 0 {
		b.WriteString("## Waiting on documentation\n\n")
		for _, m := range bp.Waiting {
			fmt.Fprintf(b, "- %s (%s)\n", m.Name, m.ModuleCode)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "**Recommendation:** %s\n", bp.Recommendation)
	return b.String()
}

func (cl Changelog) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Documentation Changelog\n\n")
	if len(cl.Manuals) == 0 {
		b.WriteString("No changelog entries found in the published manuals.\n")
	}
	for _, m := range cl.Manuals {
		fmt.Fprintf(b, "## %s v%s", m.Name, strings.TrimPrefix(m.Version, "v"))
		if m.PublishedAt != "" {
			fmt.Fprintf(b, " (%s)", m.PublishedAt)
		}
		b.WriteString("\n\n")
		bullets(b, m.Entries)
		b.WriteString("\n")
	}
	if len(cl.WithoutNotes) > 0 {
		fmt.Fprintf(b, "_No changelog for: %s._\n", strings.Join(cl.WithoutNotes, ", "))
	}
	return b.String()
}

func (a VersionAdvice) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Version Recommendation\n\n")
	fmt.Fprintf(b, "- **Current version:** %s\n", a.CurrentVersion)
	fmt.Fprintf(b, "- **Recommended version:** %s (%s)\n", a.RecommendedVersion, a.Bump)
	fmt.Fprintf(b, "- **Features ready for enablement:** %d\n", a.NewFeatures)
	fmt.Fprintf(b, "- **Maintenance items:** %d\n\n", a.MaintenanceItems)
	fmt.Fprintf(b, "%s\n", a.Reason)
	if a.ReleaseStatus == domain.ReleasePreRelease {
		b.WriteString("\nThe product is still pre-release: GA has not shipped yet.\n")
	}
	return b.String()
}

func (g Gaps) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Documentation Gaps\n\n")
	fmt.Fprintf(b, "**Total gaps:** %d\n\n", g.TotalGaps)
	if len(g.UnpublishedManuals) > 0 {
		b.WriteString("## Manuals not published\n\n")
		for _, m := range g.UnpublishedManuals {
			fmt.Fprintf(b, "- %s (%s)\n", m.Name, m.ModuleCode)
		}
		b.WriteString("\n")
	}
	if len(g.UndocumentedModules) > 0 {
		b.WriteString("## Modules with incomplete documentation\n\n")
		for _, m := range g.UndocumentedModules {
			fmt.Fprintf(b, "- %s: %d item(s)\n", m.ModuleCode, m.Count)
		}
		b.WriteString("\n")
	}
	if len(g.ModulesWithoutWork) > 0 {
		b.WriteString("## Catalog modules with no tracked content\n\n")
		bullets(b, g.ModulesWithoutWork)
		b.WriteString("\n")
	}
	if g.TotalGaps == 0 {
		b.WriteString("No gaps found.\n")
	}
	return b.String()
}

func (p MilestonePlan) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Milestone Plan\n\n")
	fmt.Fprintf(b, "- **Target date:** %s\n", p.TargetDate)
	fmt.Fprintf(b, "- **Days remaining:** %d\n\n", p.DaysRemaining)
	if p.Overdue {
		b.WriteString("**Warning:** the target date is in the past. Every open milestone is due now; pick a new target date.\n\n")
	}
	if len(p.Planned) > 0 {
		b.WriteString("| Milestone | Suggested date |\n")
		b.WriteString("|-----------|----------------|\n")
		for _, m := range p.Planned {
			fmt.Fprintf(b, "| %s | %s |\n", m.Name, m.SuggestedDate)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("All milestones are complete.\n\n")
	}
	if len(p.Completed) > 0 {
		b.WriteString("## Completed\n\n")
		bullets(b, p.Completed)
	}
	return b.String()
}

func (s StatusSummary) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("# Release Status Summary\n\n")
	fmt.Fprintf(b, "- **Version:** %s (%s)\n", s.BaseVersion, s.ReleaseStatus)
	freeze := "off"
	if s.FreezeEnabled {
		freeze = "on"
	}
	fmt.Fprintf(b, "- **Version freeze:** %s\n", freeze)
	if s.TargetGADate != "" {
		fmt.Fprintf(b, "- **Target GA:** %s\n", s.TargetGADate)
	}
	fmt.Fprintf(b, "- **Milestones:** %d/%d complete\n", s.MilestonesCompleted, s.MilestonesTotal)
	if s.CachedReadinessScore != nil {
		fmt.Fprintf(b, "- **Last stored readiness score:** %d (run assess_readiness for a fresh one)\n", int(math.Round(*s.CachedReadinessScore)))
	}
	b.WriteString("\n## Content\n\n")
	fmt.Fprintf(b, "- %d items, %d in progress, %d blocked, %d completed (%d%%)\n",
		s.Workflow.Total, s.Workflow.InProgress, s.Workflow.Blocked, s.Workflow.Completed, s.Workflow.CompletionRate)
	b.WriteString("\n## Manuals\n\n")
	fmt.Fprintf(b, "- %d published, %d not published, %d need sync\n", s.Published, s.NotPublished, s.NeedsSync)
	return b.String()
}

func (c ChatReply) Markdown() string { return c.Response }
