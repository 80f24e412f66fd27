/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import (
	"fmt"
	"sort"

	"github.com/HamedShams/release-manager/internal/domain"
)

const (
	bottleneckAlertAbove = 50
	topModules           = 5
)

type ModuleCount struct {
	ModuleCode string `json:"moduleCode"`
	Count      int    `json:"count"`
}

type Bottlenecks struct {
	Pending         int           `json:"pending"`
	Stages          []StageCount  `json:"stages"`
	Bottleneck      *StageCount   `json:"bottleneck,omitempty"`
	TopModules      []ModuleCount `json:"topModules"`
	Recommendations []string      `json:"recommendations"`
}

// AnalyzeBottlenecks ranks stages and modules by pending (not published,
// not maintenance) items. Ties break alphabetically so output is stable.
func AnalyzeBottlenecks(items []domain.ContentWorkItem) Bottlenecks {
	byStage := map[domain.WorkflowStage]int{}
	byModule := map[string]int{}
	b := Bottlenecks{Stages: []StageCount{}, TopModules: []ModuleCount{}, Recommendations: []string{}}
	for _, it := range items {
		if it.WorkflowStatus.Completed() {
			continue
		}
		b.Pending++
		byStage[it.WorkflowStatus]++
		byModule[it.ModuleCode]++
	}

	for st, n := range byStage {
		b.Stages = append(b.Stages, StageCount{Stage: st, Count: n})
	}
	sort.Slice(b.Stages, func(i, j int) bool {
		if b.Stages[i].Count == b.Stages[j].Count {
			return b.Stages[i].Stage < b.Stages[j].Stage
		}
		return b.Stages[i].Count > b.Stages[j].Count
	})

	modules := make([]ModuleCount, 0, len(byModule))
	for m, n := range byModule {
		modules = append(modules, ModuleCount{ModuleCode: m, Count: n})
	}
	sortModuleCounts(modules)
	if len(modules) > topModules {
		modules = modules[:topModules]
	}
	b.TopModules = modules

	if len(b.Stages) > 0 {
		top := b.Stages[0]
		b.Bottleneck = &top
		if top.Count > bottleneckAlertAbove {
			b.Recommendations = append(b.Recommendations,
				fmt.Sprintf("Stage %s holds %d items; add reviewers or split the work to drain it.", stageLabel(top.Stage), top.Count))
		}
	}
	if len(b.TopModules) > 0 {
		m := b.TopModules[0]
		b.Recommendations = append(b.Recommendations,
			fmt.Sprintf("Review module %s first: it has the most pending items (%d).", m.ModuleCode, m.Count))
	}
	return b
}

func sortModuleCounts(m []ModuleCount) {
	sort.Slice(m, func(i, j int) bool {
		if m[i].Count == m[j].Count {
			return m[i].ModuleCode < m[j].ModuleCode
		}
		return m[i].Count > m[j].Count
	})
}
