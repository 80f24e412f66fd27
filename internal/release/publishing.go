/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import (
	"fmt"

	"github.com/HamedShams/release-manager/internal/catalog"
	"github.com/HamedShams/release-manager/internal/domain"
)

// SyncBaselineVersion is the source version a published manual is assumed
// to be built from. Anything else is flagged as needing a sync; this is a
// placeholder comparison, not a version diff.
const SyncBaselineVersion = "1.0.0"

type PublishedManual struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	PublishedVersion string `json:"publishedVersion"`
	SourceVersion    string `json:"sourceVersion"`
}

type PublishingStatus struct {
	CatalogSize       int               `json:"catalogSize"`
	PublishedCount    int               `json:"published"`
	NotPublishedCount int               `json:"notPublished"`
	NeedsSyncCount    int               `json:"needsSync"`
	Published         []PublishedManual `json:"publishedManuals"`
	NotPublished      []catalog.Manual  `json:"missingManuals"`
	NeedsSync         []PublishedManual `json:"needsSyncManuals"`
	Uncataloged       []string          `json:"uncataloged"`
}

// ReportPublishing compares current snapshots with the catalog. Snapshots
// for ids the catalog does not know go to Uncataloged; a repeated id is
// counted once.
func ReportPublishing(cat catalog.Catalog, snapshots []domain.PublishedManualSnapshot) PublishingStatus {
	ps := PublishingStatus{
		CatalogSize:  cat.Len(),
		Published:    []PublishedManual{},
		NotPublished: []catalog.Manual{},
		NeedsSync:    []PublishedManual{},
		Uncataloged:  []string{},
	}
	seen := map[string]bool{}
	for _, s := range snapshots {
		if seen[s.ManualID] {
			continue
		}
		seen[s.ManualID] = true
		entry, ok := cat.Lookup(s.ManualID)
		if !ok {
			ps.Uncataloged = append(ps.Uncataloged, s.ManualID)
			continue
		}
		name := s.ManualName
		if name == "" {
			name = entry.Name
		}
		pm := PublishedManual{ID: s.ManualID, Name: name, PublishedVersion: s.PublishedVersion, SourceVersion: s.SourceVersion}
		ps.Published = append(ps.Published, pm)
		if s.SourceVersion != SyncBaselineVersion {
			ps.NeedsSync = append(ps.NeedsSync, pm)
		}
	}
	for _, m := range cat.Manuals {
		if !seen[m.ID] {
			ps.NotPublished = append(ps.NotPublished, m)
		}
	}
	ps.PublishedCount = len(ps.Published)
	ps.NotPublishedCount = len(ps.NotPublished)
	ps.NeedsSyncCount = len(ps.NeedsSync)
	return ps
}

type BulkPublish struct {
	NotPublished   []catalog.Manual `json:"notPublished"`
	ReadyToPublish []catalog.Manual `json:"readyToPublish"`
	Waiting        []catalog.Manual `json:"waiting"`
	Next           *catalog.Manual  `json:"next,omitempty"`
	Recommendation string           `json:"recommendation"`
}

// RecommendBulkPublish marks an unpublished manual ready when its module has
// at least one work item with complete documentation.
func RecommendBulkPublish(cat catalog.Catalog, snapshots []domain.PublishedManualSnapshot, items []domain.ContentWorkItem) BulkPublish {
	documented := map[string]bool{}
	for _, it := range items {
		if it.DocumentationStatus == domain.DocComplete {
			documented[it.ModuleCode] = true
		}
	}
	ps := ReportPublishing(cat, snapshots)
	bp := BulkPublish{
		NotPublished:   ps.NotPublished,
		ReadyToPublish: []catalog.Manual{},
		Waiting:        []catalog.Manual{},
	}
	for _, m := range ps.NotPublished {
		if documented[m.ModuleCode] {
			bp.ReadyToPublish = append(bp.ReadyToPublish, m)
		} else {
			bp.Waiting = append(bp.Waiting, m)
		}
	}
	switch {
	case len(bp.ReadyToPublish) > 0:
		next := bp.ReadyToPublish[0]
		bp.Next = &next
		bp.Recommendation = fmt.Sprintf("Publish %s next: module %s has completed documentation.", next.Name, next.ModuleCode)
	case len(bp.NotPublished) == 0:
		bp.Recommendation = "Every catalog manual is published. Nothing to bulk publish."
	default:
		bp.Recommendation = "No unpublished manual has completed documentation yet. Finish documentation for the waiting modules before publishing."
	}
	return bp
}
