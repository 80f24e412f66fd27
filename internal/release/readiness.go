/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */

// Package release turns content-status and published-manual rows into
// readiness scores, workflow funnels and prioritized action lists.
// Everything here is a pure function of its inputs; fetching rows and
// reading the clock is the caller's job.
package release

import (
	"fmt"
	"math"

	"github.com/HamedShams/release-manager/internal/domain"
)

const (
	baseManualScore = 50
	maxManualScore  = 100

	// otherContentScore stands in for content nobody measures yet.
	// TODO: replace with a real measurement once API reference and release notes have their own tables.
	otherContentScore = 80

	blockerBelow = 60
	warningBelow = 80

	coverageBlockerBelow = 50
	coverageWarningBelow = 80

	releaseScoreThreshold = 80
)

type ManualScore struct {
	ManualID          string `json:"manualId"`
	Name              string `json:"name"`
	Version           string `json:"version,omitempty"`
	SectionsPublished int    `json:"sectionsPublished"`
	HasChangelog      bool   `json:"hasChangelog"`
	Score             int    `json:"score"`
}

type Readiness struct {
	Manuals             []ManualScore `json:"manuals"`
	ManualScore         float64       `json:"manualScore"`
	QuickstartPublished int           `json:"quickstartPublished"`
	TotalModules        int           `json:"totalModules"`
	QuickstartCoverage  int           `json:"quickstartCoverage"`
	OverallScore        int           `json:"overallScore"`
	Grade               string        `json:"grade"`
	Blockers            []string      `json:"blockers"`
	Warnings            []string      `json:"warnings"`
	ReadyForRelease     bool          `json:"readyForRelease"`
}

// ScoreManual rates one published manual: 50 base, +20 with a changelog,
// +15 above 20 sections, +10 more above 40, capped at 100.
func ScoreManual(m domain.PublishedManualSnapshot) int {
	score := baseManualScore
	if len(m.Changelog) > 0 {
		score += 20
	}
	if m.SectionsPublished > 20 {
		score += 15
	}
	if m.SectionsPublished > 40 {
		score += 10
	}
	if score > maxManualScore {
		score = maxManualScore
	}
	return score
}

func QuickstartCoverage(published, totalModules int) int {
	if totalModules <= 0 {
		return 0
	}
	return int(math.Round(float64(published) / float64(totalModules) * 100))
}

func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// ScoreReadiness scores every manual and combines them with quick-start coverage.
func ScoreReadiness(manuals []domain.PublishedManualSnapshot, quickstartPublished, totalModules int) Readiness {
	scores := make([]ManualScore, 0, len(manuals))
	for _, m := range manuals {
		scores = append(scores, ManualScore{
			ManualID:          m.ManualID,
			Name:              m.ManualName,
			Version:           m.PublishedVersion,
			SectionsPublished: m.SectionsPublished,
			HasChangelog:      len(m.Changelog) > 0,
			Score:             ScoreManual(m),
		})
	}
	r := Assess(scores, QuickstartCoverage(quickstartPublished, totalModules))
	r.QuickstartPublished = quickstartPublished
	r.TotalModules = totalModules
	return r
}

// Assess derives the overall score, grade and blocker/warning lists from
// already scored manuals and a quick-start coverage percentage.
func Assess(scores []ManualScore, coverage int) Readiness {
	r := Readiness{
		Manuals:            scores,
		QuickstartCoverage: coverage,
		Blockers:           []string{},
		Warnings:           []string{},
	}
	if r.Manuals == nil {
		r.Manuals = []ManualScore{}
	}

	if len(scores) > 0 {
		sum := 0
		for _, s := range scores {
			sum += s.Score
		}
		r.ManualScore = float64(sum) / float64(len(scores))
	}

	r.OverallScore = int(math.Round(r.ManualScore*0.5 + float64(coverage)*0.3 + otherContentScore*0.2))
	r.Grade = Grade(r.OverallScore)

	for _, s := range scores {
		switch {
		case s.Score < blockerBelow:
			r.Blockers = append(r.Blockers, fmt.Sprintf("%s scores %d (below %d)", manualLabel(s), s.Score, blockerBelow))
		case s.Score < warningBelow:
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s scores %d (below %d)", manualLabel(s), s.Score, warningBelow))
		}
	}
	switch {
	case coverage < coverageBlockerBelow:
		r.Blockers = append(r.Blockers, fmt.Sprintf("Quick-start guide coverage is %d%% (below %d%%)", coverage, coverageBlockerBelow))
	case coverage < coverageWarningBelow:
		r.Warnings = append(r.Warnings, fmt.Sprintf("Quick-start guide coverage is %d%% (below %d%%)", coverage, coverageWarningBelow))
	}

	r.ReadyForRelease = r.OverallScore >= releaseScoreThreshold && len(r.Blockers) == 0
	return r
}

func manualLabel(s ManualScore) string {
	if s.Name != "" {
		return s.Name
	}
	return s.ManualID
}
