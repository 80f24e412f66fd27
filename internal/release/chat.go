/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import "strings"

type ChatReply struct {
	Topic    string `json:"topic"`
	Response string `json:"-"`
}

type chatRule struct {
	topic    string
	keywords []string
	text     string
}

// Order matters: the first rule with a matching keyword answers.
var chatRules = []chatRule{
	{
		topic:    "version",
		keywords: []string{"version"},
		text: "## Version Freeze\n\n" +
			"While the version freeze is enabled the product version stays pinned at the base version. " +
			"Documentation, quick-start guides and manuals can still be published, but no version bump is recommended until the freeze is lifted.\n\n" +
			"Use `recommend_version` to see what the next version would be once the freeze ends.",
	},
	{
		topic:    "readiness",
		keywords: []string{"readiness", "ready"},
		text: "## Release Readiness\n\n" +
			"Readiness combines manual quality (50%), quick-start guide coverage (30%) and other content (20%). " +
			"A release is ready at a score of 80 or more with no blockers.\n\n" +
			"Use `assess_readiness` for the full report.",
	},
	{
		topic:    "changelog",
		keywords: []string{"changelog"},
		text: "## Changelog\n\n" +
			"Changelogs are collected from the current published manuals. Use `generate_changelog`, optionally restricted to specific manuals.",
	},
	{
		topic:    "milestones",
		keywords: []string{"milestone"},
		text: "## Milestones\n\n" +
			"Use `plan_milestones` with a target date (YYYY-MM-DD) to spread the open milestones up to that date.",
	},
	{
		topic:    "publishing",
		keywords: []string{"publish"},
		text: "## Publishing\n\n" +
			"Use `publishing_status` to compare published manuals with the catalog, and `bulk_publish_recommendation` to find manuals ready to publish.",
	},
	{
		topic:    "bottlenecks",
		keywords: []string{"bottleneck"},
		text: "## Bottlenecks\n\n" +
			"Use `bottleneck_analysis` to find the workflow stage and modules holding the most pending work.",
	},
	{
		topic:    "priorities",
		keywords: []string{"priorit"},
		text: "## Priorities\n\n" +
			"Use `suggest_priorities` to list stale, critical and backlog-blocked items.",
	},
}

const chatHelp = "## Release Manager\n\n" +
	"I can help with:\n" +
	"- `assess_readiness`: readiness score, grade, blockers and warnings\n" +
	"- `generate_changelog`: changelog from published manuals\n" +
	"- `recommend_version`: next version based on pending work\n" +
	"- `identify_gaps`: missing manuals and documentation\n" +
	"- `plan_milestones`: milestone dates up to a target date\n" +
	"- `summarize_status`: overall release status\n" +
	"- `workflow_status`: content counts per workflow stage\n" +
	"- `suggest_priorities`: stale, critical and blocked items\n" +
	"- `bottleneck_analysis`: where work is piling up\n" +
	"- `publishing_status`: published vs. expected manuals\n" +
	"- `bulk_publish_recommendation`: manuals ready to publish\n"

// Chat answers free text with canned help chosen by substring match.
func Chat(message string) ChatReply {
	msg := strings.ToLower(message)
	for _, r := range chatRules {
		for _, k := range r.keywords {
			if strings.Contains(msg, k) {
				return ChatReply{Topic: r.topic, Response: r.text}
			}
		}
	}
	return ChatReply{Topic: "help", Response: chatHelp}
}
