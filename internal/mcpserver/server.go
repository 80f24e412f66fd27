/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */

// Package mcpserver exposes every release-manager action as an MCP tool so
// an assistant can query release status over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/HamedShams/release-manager/internal/services"
)

const instructions = "Release manager for the HR and payroll documentation pipeline. " +
	"Start with summarize_status, then drill into assess_readiness, workflow_status or publishing_status. " +
	"Every tool returns a markdown report."

type dispatcher interface {
	Dispatch(ctx context.Context, req services.Request) (services.Reply, error)
}

// ActionTool wraps one dispatcher action.
type ActionTool struct {
	action services.Action
	svc    dispatcher
}

func NewActionTool(action services.Action, svc dispatcher) *ActionTool {
	return &ActionTool{action: action, svc: svc}
}

// Tools returns one tool per action, in dispatcher order.
func Tools(svc dispatcher) []*ActionTool {
	out := make([]*ActionTool, 0, len(services.Actions))
	for _, a := range services.Actions {
		out = append(out, NewActionTool(a, svc))
	}
	return out
}

func New(svc dispatcher, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"release-manager",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	for _, t := range Tools(svc) {
		s.AddTool(t.Definition(), t.Handle)
	}
	return s
}

func (t *ActionTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.action.Description())}
	switch t.action {
	case services.ActionGenerateChangelog:
		opts = append(opts, mcp.WithString("manuals",
			mcp.Description("Comma-separated manual ids to restrict the changelog to (default: all)"),
		))
	case services.ActionRecommendVersion:
		opts = append(opts, mcp.WithString("current_version",
			mcp.Description("Semantic version to start from (default: the lifecycle base version)"),
		))
	case services.ActionPlanMilestones:
		opts = append(opts, mcp.WithString("target_date",
			mcp.Required(),
			mcp.Description("Target GA date, YYYY-MM-DD"),
		))
	case services.ActionChat:
		opts = append(opts, mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Free-text question"),
		))
	}
	if t.action != services.ActionChat {
		opts = append(opts, mcp.WithBoolean("insight",
			mcp.Description("Append an AI insight when a narrator is configured (default: false)"),
		))
	}
	return mcp.NewTool(string(t.action), opts...)
}

func (t *ActionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := services.Request{
		Action:  string(t.action),
		Message: req.GetString("message", ""),
		Context: services.RequestContext{
			Manuals:        splitList(req.GetString("manuals", "")),
			TargetDate:     req.GetString("target_date", ""),
			CurrentVersion: req.GetString("current_version", ""),
			Insight:        boolArg(req, "insight"),
		},
	}
	reply, err := t.svc.Dispatch(ctx, r)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", t.action, err)), nil
	}
	return mcp.NewToolResultText(reply.Response), nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolArg(req mcp.CallToolRequest, key string) bool {
	v, ok := req.GetArguments()[key].(bool)
	return ok && v
}
