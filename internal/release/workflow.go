/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import (
	"math"

	"github.com/HamedShams/release-manager/internal/domain"
)

type StageCount struct {
	Stage domain.WorkflowStage `json:"stage"`
	Count int                  `json:"count"`
}

type WorkflowSummary struct {
	Stages         []StageCount `json:"stages"`
	Total          int          `json:"total"`
	Unrecognized   int          `json:"unrecognized"`
	InProgress     int          `json:"inProgress"`
	Blocked        int          `json:"blocked"`
	Completed      int          `json:"completed"`
	CompletionRate int          `json:"completionRate"`
}

// Count returns the bucket for stage, zero for unknown stages.
func (w WorkflowSummary) Count(stage domain.WorkflowStage) int {
	for _, s := range w.Stages {
		if s.Stage == stage {
			return s.Count
		}
	}
	return 0
}

// ClassifyWorkflow buckets items by workflow stage in funnel order.
// Items with an unknown stage count towards Total but land in no bucket.
func ClassifyWorkflow(items []domain.ContentWorkItem) WorkflowSummary {
	counts := make(map[domain.WorkflowStage]int, len(domain.WorkflowStages))
	w := WorkflowSummary{Total: len(items)}
	for _, it := range items {
		if !it.WorkflowStatus.Known() {
			w.Unrecognized++
			continue
		}
		counts[it.WorkflowStatus]++
	}

	w.Stages = make([]StageCount, 0, len(domain.WorkflowStages))
	for _, st := range domain.WorkflowStages {
		w.Stages = append(w.Stages, StageCount{Stage: st, Count: counts[st]})
	}

	w.InProgress = counts[domain.StageInDevelopment] + counts[domain.StageTestingReview] + counts[domain.StageDocumentation]
	w.Blocked = counts[domain.StageDevelopmentBacklog]
	w.Completed = counts[domain.StagePublished] + counts[domain.StageMaintenance]
	if w.Total > 0 {
		w.CompletionRate = int(math.Round(float64(w.Completed) / float64(w.Total) * 100))
	}
	return w
}
