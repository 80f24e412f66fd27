/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/HamedShams/release-manager/internal/catalog"
    "github.com/HamedShams/release-manager/internal/config"
    "github.com/HamedShams/release-manager/internal/domain"
    "github.com/HamedShams/release-manager/internal/release"
    "github.com/HamedShams/release-manager/internal/repo"
    "github.com/rs/zerolog"
)

// ErrMalformedRequest wraps any body that is not a JSON object.
var ErrMalformedRequest = errors.New("malformed request")

type Store interface {
    WorkItems(ctx context.Context, f repo.WorkItemFilter) ([]domain.ContentWorkItem, error)
    Manuals(ctx context.Context, f repo.ManualFilter) ([]domain.PublishedManualSnapshot, error)
    CountPublishedQuickstarts(ctx context.Context) (int, error)
    Lifecycle(ctx context.Context) (domain.ReleaseLifecycle, error)
}

// Narrator turns a rendered report into a short AI insight.
type Narrator interface {
    Narrate(ctx context.Context, action string, report string) (string, error)
}

type Notifier interface {
    SendMessagePlain(ctx context.Context, chatID int64, text string) error
}

type RequestContext struct {
    Manuals        []string `json:"manuals,omitempty"`
    TargetDate     string   `json:"targetDate,omitempty"`
    CurrentVersion string   `json:"currentVersion,omitempty"`
    Insight        bool     `json:"insight,omitempty"`
}

type Request struct {
    Action  string         `json:"action"`
    Message string         `json:"message,omitempty"`
    Context RequestContext `json:"context"`
}

// DecodeRequest parses a request body. Only a JSON object is accepted.
func DecodeRequest(body []byte) (Request, error) {
    var req Request
    trimmed := bytes.TrimSpace(body)
    if len(trimmed) == 0 || trimmed[0] != '{' {
        return req, fmt.Errorf("%w: body must be a JSON object", ErrMalformedRequest)
    }
    if err := json.Unmarshal(trimmed, &req); err != nil {
        return req, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
    }
    return req, nil
}

// Reply is a report plus its markdown. It marshals flat: the report's own
// fields next to "response" (and "insight" when one was asked for).
type Reply struct {
    Action   Action
    Data     release.Report
    Response string
    Insight  string
}

func (r Reply) MarshalJSON() ([]byte, error) {
    out := map[string]any{}
    if r.Data != nil {
        raw, err := json.Marshal(r.Data)
        if err != nil { return nil, err }
        if err := json.Unmarshal(raw, &out); err != nil { return nil, fmt.Errorf("flatten %s reply: %w", r.Action, err) }
    }
    out["response"] = r.Response
    if r.Insight != "" { out["insight"] = r.Insight }
    return json.Marshal(out)
}

// prompt is a 200 answer asking the caller for missing input.
type prompt struct {
    Needs string `json:"needs"`
    Text  string `json:"-"`
}

func (p prompt) Markdown() string { return p.Text }

type handler func(s *Service, ctx context.Context, req Request) (release.Report, error)

var handlers = map[Action]handler{
    ActionAssessReadiness:      (*Service).assessReadiness,
    ActionGenerateChangelog:    (*Service).generateChangelog,
    ActionRecommendVersion:     (*Service).recommendVersion,
    ActionIdentifyGaps:         (*Service).identifyGaps,
    ActionPlanMilestones:       (*Service).planMilestones,
    ActionSummarizeStatus:      (*Service).summarizeStatus,
    ActionWorkflowStatus:       (*Service).workflowStatus,
    ActionSuggestPriorities:    (*Service).suggestPriorities,
    ActionBottleneckAnalysis:   (*Service).bottleneckAnalysis,
    ActionPublishingStatus:     (*Service).publishingStatus,
    ActionBulkPublishRecommend: (*Service).bulkPublish,
    ActionChat:                 (*Service).chat,
}

type Service struct {
    cfg      config.Config
    log      zerolog.Logger
    store    Store
    catalog  catalog.Catalog
    llm      Narrator
    tg       Notifier
    now      func() time.Time
}

// New wires the dispatcher. llm and tg may be nil.
func New(cfg config.Config, log zerolog.Logger, store Store, llm Narrator, tg Notifier) *Service {
    cat := cfg.Catalog
    if cat.Len() == 0 { cat = catalog.Default() }
    return &Service{cfg: cfg, log: log, store: store, catalog: cat, llm: llm, tg: tg, now: time.Now}
}

func (s *Service) Catalog() catalog.Catalog { return s.catalog }

// Dispatch runs one action. Either the whole reply comes back or an error;
// nothing is retried.
func (s *Service) Dispatch(ctx context.Context, req Request) (Reply, error) {
    if s.cfg.RequestTimeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
        defer cancel()
    }
    action := ParseAction(req.Action)
    start := s.now()
    report, err := handlers[action](s, ctx, req)
    if err != nil { return Reply{}, fmt.Errorf("%s: %w", action, err) }

    reply := Reply{Action: action, Data: report, Response: report.Markdown()}
    // a prompt asks for missing input; there is nothing to narrate yet
    _, missingInput := report.(prompt)
    if req.Context.Insight && s.llm != nil && !missingInput {
        text, err := s.llm.Narrate(ctx, string(action), reply.Response)
        if err != nil { return Reply{}, fmt.Errorf("%s: insight: %w", action, err) }
        reply.Insight = strings.TrimSpace(text)
        reply.Response += "\n\n## AI Insight\n\n" + reply.Insight + "\n"
    }
    s.log.Debug().Str("action", string(action)).Dur("took", s.now().Sub(start)).Msg("dispatch")
    return reply, nil
}

func (s *Service) allItems(ctx context.Context) ([]domain.ContentWorkItem, error) {
    return s.store.WorkItems(ctx, repo.WorkItemFilter{})
}

func (s *Service) currentManuals(ctx context.Context) ([]domain.PublishedManualSnapshot, error) {
    return s.store.Manuals(ctx, repo.CurrentManuals())
}

func (s *Service) assessReadiness(ctx context.Context, _ Request) (release.Report, error) {
    manuals, err := s.currentManuals(ctx)
    if err != nil { return nil, err }
    qs, err := s.store.CountPublishedQuickstarts(ctx)
    if err != nil { return nil, err }
    return release.ScoreReadiness(manuals, qs, s.catalog.TotalModules), nil
}

func (s *Service) generateChangelog(ctx context.Context, req Request) (release.Report, error) {
    f := repo.CurrentManuals()
    f.IDs = req.Context.Manuals
    manuals, err := s.store.Manuals(ctx, f)
    if err != nil { return nil, err }
    return release.BuildChangelog(manuals, req.Context.Manuals), nil
}

func (s *Service) recommendVersion(ctx context.Context, req Request) (release.Report, error) {
    lc, err := s.store.Lifecycle(ctx)
    if err != nil { return nil, err }
    items, err := s.allItems(ctx)
    if err != nil { return nil, err }
    advice, err := release.AdviseVersion(req.Context.CurrentVersion, lc, items)
    if err != nil {
        s.log.Info().Err(err).Msg("recommend_version: asking for a valid version")
        return prompt{
            Needs: "currentVersion",
            Text:  "I couldn't read the current version as a semantic version. Provide `context.currentVersion` such as `2.4.0` or `3.0.0-rc.1`.",
        }, nil
    }
    return advice, nil
}

func (s *Service) identifyGaps(ctx context.Context, _ Request) (release.Report, error) {
    manuals, err := s.currentManuals(ctx)
    if err != nil { return nil, err }
    items, err := s.allItems(ctx)
    if err != nil { return nil, err }
    return release.FindGaps(s.catalog, manuals, items), nil
}

func (s *Service) planMilestones(ctx context.Context, req Request) (release.Report, error) {
    target, err := release.ParseTargetDate(req.Context.TargetDate, s.now().Location())
    if err != nil {
        return prompt{
            Needs: "targetDate",
            Text:  "Please provide a target GA date in `context.targetDate` (YYYY-MM-DD) so I can plan the milestones.",
        }, nil
    }
    lc, err := s.store.Lifecycle(ctx)
    if err != nil { return nil, err }
    return release.PlanMilestones(lc, target, s.now()), nil
}

func (s *Service) summarizeStatus(ctx context.Context, _ Request) (release.Report, error) {
    lc, err := s.store.Lifecycle(ctx)
    if err != nil { return nil, err }
    items, err := s.allItems(ctx)
    if err != nil { return nil, err }
    manuals, err := s.currentManuals(ctx)
    if err != nil { return nil, err }
    return release.SummarizeStatus(lc, s.catalog, items, manuals), nil
}

func (s *Service) workflowStatus(ctx context.Context, _ Request) (release.Report, error) {
    items, err := s.allItems(ctx)
    if err != nil { return nil, err }
    return release.ClassifyWorkflow(items), nil
}

func (s *Service) suggestPriorities(ctx context.Context, _ Request) (release.Report, error) {
    items, err := s.store.WorkItems(ctx, repo.OpenWork())
    if err != nil { return nil, err }
    return release.RankPriorities(items, s.now()), nil
}

func (s *Service) bottleneckAnalysis(ctx context.Context, _ Request) (release.Report, error) {
    items, err := s.allItems(ctx)
    if err != nil { return nil, err }
    return release.AnalyzeBottlenecks(items), nil
}

func (s *Service) publishingStatus(ctx context.Context, _ Request) (release.Report, error) {
    manuals, err := s.currentManuals(ctx)
    if err != nil { return nil, err }
    return release.ReportPublishing(s.catalog, manuals), nil
}

func (s *Service) bulkPublish(ctx context.Context, _ Request) (release.Report, error) {
    manuals, err := s.currentManuals(ctx)
    if err != nil { return nil, err }
    items, err := s.allItems(ctx)
    if err != nil { return nil, err }
    return release.RecommendBulkPublish(s.catalog, manuals, items), nil
}

func (s *Service) chat(_ context.Context, req Request) (release.Report, error) {
    return release.Chat(req.Message), nil
}
