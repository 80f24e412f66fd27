/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import (
	"time"

	"github.com/HamedShams/release-manager/internal/domain"
)

const (
	StaleAfterDays = 7
	maxExamples    = 5
)

type PriorityItem struct {
	domain.ContentWorkItem
	DaysSinceUpdate int `json:"daysSinceUpdate"`
}

type PriorityBucket struct {
	Count    int            `json:"count"`
	Examples []PriorityItem `json:"examples"`
	Items    []PriorityItem `json:"-"`
}

func (b *PriorityBucket) add(it PriorityItem) {
	b.Items = append(b.Items, it)
	b.Count++
	if len(b.Examples) < maxExamples {
		b.Examples = append(b.Examples, it)
	}
}

// Contains reports whether the bucket holds the module/feature pair.
func (b PriorityBucket) Contains(moduleCode, featureCode string) bool {
	for _, it := range b.Items {
		if it.ModuleCode == moduleCode && it.FeatureCode == featureCode {
			return true
		}
	}
	return false
}

// Priorities buckets the same items three ways. The buckets overlap on purpose:
// a stale critical backlog item shows up in all three.
type Priorities struct {
	Considered int            `json:"considered"`
	Stale      PriorityBucket `json:"stale"`
	Critical   PriorityBucket `json:"critical"`
	Blocked    PriorityBucket `json:"blocked"`
	AsOf       time.Time      `json:"asOf"`
}

// DaysSince counts whole days elapsed, rounding down.
func DaysSince(t, now time.Time) int {
	if t.IsZero() || now.Before(t) {
		return 0
	}
	return int(now.Sub(t) / (24 * time.Hour))
}

// RankPriorities expects items already limited to unfinished work, oldest first.
func RankPriorities(items []domain.ContentWorkItem, now time.Time) Priorities {
	p := Priorities{
		Considered: len(items),
		AsOf:       now,
		Stale:      PriorityBucket{Examples: []PriorityItem{}},
		Critical:   PriorityBucket{Examples: []PriorityItem{}},
		Blocked:    PriorityBucket{Examples: []PriorityItem{}},
	}
	for _, it := range items {
		pi := PriorityItem{ContentWorkItem: it, DaysSinceUpdate: DaysSince(it.UpdatedAt, now)}
		if pi.DaysSinceUpdate > StaleAfterDays {
			p.Stale.add(pi)
		}
		if it.Priority == domain.PriorityCritical {
			p.Critical.add(pi)
		}
		if it.WorkflowStatus == domain.StageDevelopmentBacklog {
			p.Blocked.add(pi)
		}
	}
	return p
}
