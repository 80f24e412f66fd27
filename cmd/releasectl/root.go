/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "fmt"
    "io"
    "strings"

    "github.com/charmbracelet/glamour"
    "github.com/rs/zerolog"
    "github.com/spf13/cobra"

    "github.com/HamedShams/release-manager/internal/adapters/openai"
    "github.com/HamedShams/release-manager/internal/config"
    "github.com/HamedShams/release-manager/internal/repo"
    "github.com/HamedShams/release-manager/internal/services"
)

func newRootCmd() *cobra.Command {
    root := &cobra.Command{
        Use:   "releasectl",
        Short: "Release readiness and documentation workflow reports",
        Long: `releasectl answers the release manager's questions from a terminal.

  releasectl ask assess_readiness            query a running API
  releasectl run workflow_status             query the database directly
  releasectl run plan_milestones --target-date 2025-06-30
  releasectl mcp                             serve every action over MCP stdio`,
        SilenceUsage: true,
    }
    root.AddCommand(newAskCmd(), newRunCmd(), newMCPCmd(), newCatalogCmd(), newMigrateCmd(), newActionsCmd())
    return root
}

// requestFlags are shared by ask and run.
type requestFlags struct {
    message        string
    manuals        []string
    targetDate     string
    currentVersion string
    insight        bool
    raw            bool
    width          int
}

func (f *requestFlags) bind(cmd *cobra.Command) {
    fl := cmd.Flags()
    fl.StringVarP(&f.message, "message", "m", "", "free-text question (implies chat when no action is given)")
    fl.StringSliceVar(&f.manuals, "manuals", nil, "manual ids for generate_changelog")
    fl.StringVar(&f.targetDate, "target-date", "", "target GA date for plan_milestones (YYYY-MM-DD)")
    fl.StringVar(&f.currentVersion, "current-version", "", "starting version for recommend_version")
    fl.BoolVar(&f.insight, "insight", false, "append an AI insight")
    fl.BoolVar(&f.raw, "raw", false, "print markdown without terminal styling")
    fl.IntVar(&f.width, "width", 100, "word wrap width")
}

// request builds the dispatcher request from the optional action argument.
func (f *requestFlags) request(args []string) services.Request {
    action := string(services.ActionSummarizeStatus)
    switch {
    case len(args) > 0:
        action = args[0]
    case strings.TrimSpace(f.message) != "":
        action = string(services.ActionChat)
    }
    return services.Request{
        Action:  action,
        Message: f.message,
        Context: services.RequestContext{
            Manuals:        f.manuals,
            TargetDate:     f.targetDate,
            CurrentVersion: f.currentVersion,
            Insight:        f.insight,
        },
    }
}

func render(w io.Writer, markdown string, raw bool, width int) error {
    if raw {
        _, err := fmt.Fprintln(w, markdown)
        return err
    }
    r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
    if err != nil { return err }
    out, err := r.Render(markdown)
    if err != nil { return err }
    _, err = fmt.Fprint(w, out)
    return err
}

// openService wires a local dispatcher the same way the API does.
func openService(ctx context.Context, cfg config.Config, log zerolog.Logger) (*services.Service, func(), error) {
    store, err := repo.OpenStore(ctx, cfg, log)
    if err != nil { return nil, nil, err }
    var llm services.Narrator
    if oc := openai.NewClient(cfg, log); oc.Enabled() { llm = oc }
    return services.New(cfg, log, store, llm, nil), store.Close, nil
}
