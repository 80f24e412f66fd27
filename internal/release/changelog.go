/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import (
	"sort"
	"strings"

	"github.com/HamedShams/release-manager/internal/domain"
)

type ManualChangelog struct {
	ManualID    string   `json:"manualId"`
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	PublishedAt string   `json:"publishedAt"`
	Entries     []string `json:"entries"`
}

type Changelog struct {
	Manuals       []ManualChangelog `json:"manuals"`
	WithoutNotes  []string          `json:"withoutNotes"`
	TotalEntries  int               `json:"totalEntries"`
	RequestedOnly bool              `json:"requestedOnly"`
}

// BuildChangelog collects changelog entries from current snapshots, newest
// publication first. A non-empty only list restricts output to those ids.
func BuildChangelog(snapshots []domain.PublishedManualSnapshot, only []string) Changelog {
	filter := map[string]bool{}
	for _, id := range only {
		if id = strings.TrimSpace(id); id != "" {
			filter[id] = true
		}
	}
	cl := Changelog{Manuals: []ManualChangelog{}, WithoutNotes: []string{}, RequestedOnly: len(filter) > 0}

	sorted := make([]domain.PublishedManualSnapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if len(filter) > 0 && !filter[s.ManualID] {
			continue
		}
		sorted = append(sorted, s)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PublishedAt.After(sorted[j].PublishedAt) })

	for _, s := range sorted {
		entries := make([]string, 0, len(s.Changelog))
		for _, e := range s.Changelog {
			if e = strings.TrimSpace(e); e != "" {
				entries = append(entries, e)
			}
		}
		name := s.ManualName
		if name == "" {
			name = s.ManualID
		}
		if len(entries) == 0 {
			cl.WithoutNotes = append(cl.WithoutNotes, name)
			continue
		}
		published := ""
		if !s.PublishedAt.IsZero() {
			published = s.PublishedAt.UTC().Format("2006-01-02")
		}
		cl.Manuals = append(cl.Manuals, ManualChangelog{
			ManualID:    s.ManualID,
			Name:        name,
			Version:     s.PublishedVersion,
			PublishedAt: published,
			Entries:     entries,
		})
		cl.TotalEntries += len(entries)
	}
	return cl
}
