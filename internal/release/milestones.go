/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/HamedShams/release-manager/internal/domain"
)

const dateLayout = "2006-01-02"

// ErrNoTargetDate means plan_milestones was called without a usable date.
var ErrNoTargetDate = errors.New("target date missing or invalid")

type PlannedMilestone struct {
	Name          string `json:"name"`
	SuggestedDate string `json:"suggestedDate"`
}

type MilestonePlan struct {
	TargetDate    string             `json:"targetDate"`
	Today         string             `json:"today"`
	DaysRemaining int                `json:"daysRemaining"`
	Overdue       bool               `json:"overdue"`
	Planned       []PlannedMilestone `json:"planned"`
	Completed     []string           `json:"completed"`
}

// ParseTargetDate accepts YYYY-MM-DD or a full RFC 3339 timestamp. A plain
// date is midnight in loc; a timestamp keeps its own calendar date.
func ParseTargetDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrNoTargetDate
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return calendarDay(t, loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrNoTargetDate, s)
}

// PlanMilestones spreads the open milestones evenly between today and the
// target; the last one lands on the target date. A target in the past puts
// every open milestone on the target and marks the plan overdue. Days are
// counted in now's location.
func PlanMilestones(lc domain.ReleaseLifecycle, target, now time.Time) MilestonePlan {
	today := calendarDay(now, now.Location())
	target = calendarDay(target, now.Location())
	p := MilestonePlan{
		TargetDate:    target.Format(dateLayout),
		Today:         today.Format(dateLayout),
		DaysRemaining: int(math.Round(target.Sub(today).Hours() / 24)),
		Planned:       []PlannedMilestone{},
		Completed:     []string{},
	}
	p.Overdue = p.DaysRemaining < 0

	var open []domain.Milestone
	for _, m := range lc.Milestones {
		if m.Completed {
			p.Completed = append(p.Completed, m.Name)
			continue
		}
		open = append(open, m)
	}
	for i, m := range open {
		due := target
		if p.DaysRemaining > 0 {
			offset := int(math.Round(float64(p.DaysRemaining) * float64(i+1) / float64(len(open))))
			due = today.AddDate(0, 0, offset)
		}
		p.Planned = append(p.Planned, PlannedMilestone{Name: m.Name, SuggestedDate: due.Format(dateLayout)})
	}
	return p
}

// calendarDay is midnight in loc of the date t shows on its own clock.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
