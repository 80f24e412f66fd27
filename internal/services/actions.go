/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import "strings"

type Action string

const (
    ActionAssessReadiness      Action = "assess_readiness"
    ActionGenerateChangelog    Action = "generate_changelog"
    ActionRecommendVersion     Action = "recommend_version"
    ActionIdentifyGaps         Action = "identify_gaps"
    ActionPlanMilestones       Action = "plan_milestones"
    ActionSummarizeStatus      Action = "summarize_status"
    ActionWorkflowStatus       Action = "workflow_status"
    ActionSuggestPriorities    Action = "suggest_priorities"
    ActionBottleneckAnalysis   Action = "bottleneck_analysis"
    ActionPublishingStatus     Action = "publishing_status"
    ActionBulkPublishRecommend Action = "bulk_publish_recommendation"
    ActionChat                 Action = "chat"
)

// Actions lists every tag the dispatcher routes, chat last.
var Actions = []Action{
    ActionAssessReadiness,
    ActionGenerateChangelog,
    ActionRecommendVersion,
    ActionIdentifyGaps,
    ActionPlanMilestones,
    ActionSummarizeStatus,
    ActionWorkflowStatus,
    ActionSuggestPriorities,
    ActionBottleneckAnalysis,
    ActionPublishingStatus,
    ActionBulkPublishRecommend,
    ActionChat,
}

var actionDescriptions = map[Action]string{
    ActionAssessReadiness:      "Release readiness score, grade, blockers and warnings",
    ActionGenerateChangelog:    "Changelog collected from the current published manuals",
    ActionRecommendVersion:     "Next version based on pending work and the version freeze",
    ActionIdentifyGaps:         "Unpublished manuals and undocumented modules",
    ActionPlanMilestones:       "Spread open milestones up to a target date",
    ActionSummarizeStatus:      "Overall release status",
    ActionWorkflowStatus:       "Content counts per workflow stage",
    ActionSuggestPriorities:    "Stale, critical and backlog-blocked work items",
    ActionBottleneckAnalysis:   "Workflow stage and modules holding the most pending work",
    ActionPublishingStatus:     "Published manuals compared with the catalog",
    ActionBulkPublishRecommend: "Unpublished manuals that are ready to publish",
    ActionChat:                 "Free-text help",
}

func (a Action) Description() string { return actionDescriptions[a] }

// ParseAction maps a request tag to an Action. Anything unknown, including
// the empty tag, is chat.
func ParseAction(tag string) Action {
    tag = strings.TrimSpace(tag)
    for _, a := range Actions {
        if string(a) == tag { return a }
    }
    return ActionChat
}
