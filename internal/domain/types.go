/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package domain

import "time"

type WorkflowStage string

const (
	StageDevelopmentBacklog WorkflowStage = "development_backlog"
	StageInDevelopment      WorkflowStage = "in_development"
	StageTestingReview      WorkflowStage = "testing_review"
	StageDocumentation      WorkflowStage = "documentation"
	StageReadyForEnablement WorkflowStage = "ready_for_enablement"
	StagePublished          WorkflowStage = "published"
	StageMaintenance        WorkflowStage = "maintenance"
)

// WorkflowStages lists the known stages in funnel order.
var WorkflowStages = []WorkflowStage{
	StageDevelopmentBacklog,
	StageInDevelopment,
	StageTestingReview,
	StageDocumentation,
	StageReadyForEnablement,
	StagePublished,
	StageMaintenance,
}

func (s WorkflowStage) Known() bool {
	for _, k := range WorkflowStages {
		if s == k {
			return true
		}
	}
	return false
}

// Completed reports whether the stage counts as shipped content.
func (s WorkflowStage) Completed() bool { return s == StagePublished || s == StageMaintenance }

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type DocumentationStatus string

const (
	DocNotStarted DocumentationStatus = "not_started"
	DocDraft      DocumentationStatus = "draft"
	DocInReview   DocumentationStatus = "in_review"
	DocComplete   DocumentationStatus = "complete"
)

// ContentWorkItem is one row of the content-status table.
type ContentWorkItem struct {
	ModuleCode          string              `json:"module_code"`
	FeatureCode         string              `json:"feature_code"`
	WorkflowStatus      WorkflowStage       `json:"workflow_status"`
	Priority            Priority            `json:"priority"`
	DocumentationStatus DocumentationStatus `json:"documentation_status"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

const ManualStatusCurrent = "current"

// PublishedManualSnapshot is a published version of a manual.
type PublishedManualSnapshot struct {
	ManualID          string    `json:"manual_id"`
	ManualName        string    `json:"manual_name"`
	PublishedVersion  string    `json:"published_version"`
	SourceVersion     string    `json:"source_version"`
	SectionsPublished int       `json:"sections_published"`
	Changelog         []string  `json:"changelog"`
	PublishedAt       time.Time `json:"published_at"`
	Status            string    `json:"status"`
}

type ReleaseStatus string

const (
	ReleasePreRelease ReleaseStatus = "pre-release"
	ReleaseGA         ReleaseStatus = "ga-released"
)

type Milestone struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"due_date,omitempty"`
}

// ReleaseLifecycle is the single release configuration row.
// LastReadinessScore is whatever an earlier run stored; nothing here refreshes it.
type ReleaseLifecycle struct {
	BaseVersion          string        `json:"base_version"`
	VersionFreezeEnabled bool          `json:"version_freeze_enabled"`
	ReleaseStatus        ReleaseStatus `json:"release_status"`
	Milestones           []Milestone   `json:"milestones"`
	TargetGADate         *time.Time    `json:"target_ga_date,omitempty"`
	LastReadinessScore   *float64      `json:"last_readiness_score,omitempty"`
}
