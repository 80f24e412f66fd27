/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import (
	"github.com/HamedShams/release-manager/internal/catalog"
	"github.com/HamedShams/release-manager/internal/domain"
)

type Gaps struct {
	UnpublishedManuals  []catalog.Manual `json:"unpublishedManuals"`
	UndocumentedModules []ModuleCount    `json:"undocumentedModules"`
	ModulesWithoutWork  []string         `json:"modulesWithoutWork"`
	TotalGaps           int              `json:"totalGaps"`
}

// FindGaps lists three kinds of documentation gaps: catalog manuals with no
// current snapshot, modules with items whose documentation is not complete,
// and catalog modules nobody has logged work for.
func FindGaps(cat catalog.Catalog, snapshots []domain.PublishedManualSnapshot, items []domain.ContentWorkItem) Gaps {
	g := Gaps{
		UnpublishedManuals:  ReportPublishing(cat, snapshots).NotPublished,
		UndocumentedModules: []ModuleCount{},
		ModulesWithoutWork:  []string{},
	}

	undocumented := map[string]int{}
	hasWork := map[string]bool{}
	for _, it := range items {
		hasWork[it.ModuleCode] = true
		if it.DocumentationStatus != domain.DocComplete {
			undocumented[it.ModuleCode]++
		}
	}
	for m, n := range undocumented {
		g.UndocumentedModules = append(g.UndocumentedModules, ModuleCount{ModuleCode: m, Count: n})
	}
	sortModuleCounts(g.UndocumentedModules)

	for _, m := range cat.Modules() {
		if !hasWork[m] {
			g.ModulesWithoutWork = append(g.ModulesWithoutWork, m)
		}
	}

	g.TotalGaps = len(g.UnpublishedManuals) + len(g.UndocumentedModules) + len(g.ModulesWithoutWork)
	return g
}
