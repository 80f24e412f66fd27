/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import (
	"github.com/HamedShams/release-manager/internal/catalog"
	"github.com/HamedShams/release-manager/internal/domain"
)

type StatusSummary struct {
	BaseVersion         string               `json:"baseVersion"`
	ReleaseStatus       domain.ReleaseStatus `json:"releaseStatus"`
	FreezeEnabled       bool                 `json:"freezeEnabled"`
	TargetGADate        string               `json:"targetGaDate,omitempty"`
	MilestonesCompleted int                  `json:"milestonesCompleted"`
	MilestonesTotal     int                  `json:"milestonesTotal"`
	// CachedReadinessScore is the stored last_readiness_score, not a fresh assessment.
	CachedReadinessScore *float64        `json:"cachedReadinessScore,omitempty"`
	Workflow             WorkflowSummary `json:"workflow"`
	Published            int             `json:"published"`
	NotPublished         int             `json:"notPublished"`
	NeedsSync            int             `json:"needsSync"`
}

func SummarizeStatus(lc domain.ReleaseLifecycle, cat catalog.Catalog, items []domain.ContentWorkItem, snapshots []domain.PublishedManualSnapshot) StatusSummary {
	s := StatusSummary{
		BaseVersion:          lc.BaseVersion,
		ReleaseStatus:        lc.ReleaseStatus,
		FreezeEnabled:        lc.VersionFreezeEnabled,
		MilestonesTotal:      len(lc.Milestones),
		CachedReadinessScore: lc.LastReadinessScore,
		Workflow:             ClassifyWorkflow(items),
	}
	if lc.TargetGADate != nil {
		s.TargetGADate = lc.TargetGADate.UTC().Format(dateLayout)
	}
	for _, m := range lc.Milestones {
		if m.Completed {
			s.MilestonesCompleted++
		}
	}
	ps := ReportPublishing(cat, snapshots)
	s.Published = len(ps.Published)
	s.NotPublished = len(ps.NotPublished)
	s.NeedsSync = len(ps.NeedsSync)
	return s
}
