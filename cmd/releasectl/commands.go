/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "os"
    "strings"
    "time"

    "github.com/mark3labs/mcp-go/server"
    "github.com/spf13/cobra"

    "github.com/HamedShams/release-manager/internal/catalog"
    "github.com/HamedShams/release-manager/internal/config"
    "github.com/HamedShams/release-manager/internal/logger"
    "github.com/HamedShams/release-manager/internal/mcpserver"
    "github.com/HamedShams/release-manager/internal/repo"
    "github.com/HamedShams/release-manager/internal/services"
)

func newAskCmd() *cobra.Command {
    var f requestFlags
    var serverURL string
    cmd := &cobra.Command{
        Use:   "ask [action]",
        Short: "Ask a running release-manager API",
        Args:  cobra.MaximumNArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            md, err := ask(cmd.Context(), resolveServerURL(serverURL, config.Load()), f.request(args))
            if err != nil { return err }
            return render(cmd.OutOrStdout(), md, f.raw, f.width)
        },
    }
    f.bind(cmd)
    cmd.Flags().StringVar(&serverURL, "server", "", "dispatcher URL (default: RELEASE_MANAGER_URL)")
    return cmd
}

func resolveServerURL(flag string, cfg config.Config) string {
    if flag != "" { return flag }
    return cfg.ReleaseManagerURL
}

// ask posts one request and returns the markdown response. A non-200 answer
// is turned into an error carrying the envelope's details.
func ask(ctx context.Context, url string, req services.Request) (string, error) {
    body, err := json.Marshal(req)
    if err != nil { return "", err }
    httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
    if err != nil { return "", err }
    httpReq.Header.Set("Content-Type", "application/json")
    resp, err := (&http.Client{Timeout: 60 * time.Second}).Do(httpReq)
    if err != nil { return "", err }
    defer resp.Body.Close()
    raw, err := io.ReadAll(resp.Body)
    if err != nil { return "", err }

    var out struct {
        Response string `json:"response"`
        Error    string `json:"error"`
        Details  string `json:"details"`
    }
    if err := json.Unmarshal(raw, &out); err != nil {
        return "", fmt.Errorf("release-manager status=%d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
    }
    if resp.StatusCode != http.StatusOK {
        return "", fmt.Errorf("release-manager status=%d: %s: %s", resp.StatusCode, out.Error, out.Details)
    }
    return out.Response, nil
}

func newRunCmd() *cobra.Command {
    var f requestFlags
    cmd := &cobra.Command{
        Use:   "run [action]",
        Short: "Run an action directly against the configured database",
        Args:  cobra.MaximumNArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            cfg := config.Load()
            log := logger.NewTo(cfg, cmd.ErrOrStderr())
            svc, closeFn, err := openService(cmd.Context(), cfg, log)
            if err != nil { return err }
            defer closeFn()
            reply, err := svc.Dispatch(cmd.Context(), f.request(args))
            if err != nil { return err }
            return render(cmd.OutOrStdout(), reply.Response, f.raw, f.width)
        },
    }
    f.bind(cmd)
    return cmd
}

func newMCPCmd() *cobra.Command {
    return &cobra.Command{
        Use:   "mcp",
        Short: "Serve every action as an MCP tool over stdio",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, _ []string) error {
            cfg := config.Load()
            // stdout carries the protocol
            log := logger.NewTo(cfg, os.Stderr)
            svc, closeFn, err := openService(cmd.Context(), cfg, log)
            if err != nil { return err }
            defer closeFn()
            log.Info().Str("db", cfg.DBDriver).Msg("mcp: serving on stdio")
            return server.ServeStdio(mcpserver.New(svc, Version))
        },
    }
}

func newMigrateCmd() *cobra.Command {
    return &cobra.Command{
        Use:   "migrate",
        Short: "Create the release-manager tables if they do not exist",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, _ []string) error {
            cfg := config.Load()
            log := logger.NewTo(cfg, cmd.ErrOrStderr())
            store, err := repo.OpenStore(cmd.Context(), cfg, log)
            if err != nil { return err }
            defer store.Close()
            if err := store.Migrate(cmd.Context()); err != nil { return err }
            fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", cfg.DBDriver)
            return nil
        },
    }
}

func newCatalogCmd() *cobra.Command {
    var raw bool
    cmd := &cobra.Command{
        Use:   "catalog",
        Short: "Show the effective manual catalog",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, _ []string) error {
            return render(cmd.OutOrStdout(), catalogMarkdown(config.Load().Catalog), raw, 100)
        },
    }
    cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
    return cmd
}

func catalogMarkdown(c catalog.Catalog) string {
    var b strings.Builder
    fmt.Fprintf(&b, "# Manual Catalog\n\n%d manuals, %d modules expected to ship a quick-start.\n\n", c.Len(), c.TotalModules)
    b.WriteString("| ID | Name | Module | Sections |\n|---|---|---|---|\n")
    for _, m := range c.Manuals {
        fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", m.ID, m.Name, m.ModuleCode, m.SectionsCount)
    }
    return b.String()
}

func newActionsCmd() *cobra.Command {
    return &cobra.Command{
        Use:   "actions",
        Short: "List the actions the dispatcher understands",
        Args:  cobra.NoArgs,
        Run: func(cmd *cobra.Command, _ []string) {
            for _, a := range services.Actions {
                fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", a, a.Description())
            }
        },
    }
}
