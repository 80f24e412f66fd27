/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "context"
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"

    "github.com/HamedShams/release-manager/internal/config"
    "github.com/HamedShams/release-manager/internal/services"
)

type service interface {
    Dispatch(ctx context.Context, req services.Request) (services.Reply, error)
}

type Handlers struct {
    cfg config.Config
    log zerolog.Logger
    svc service
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc service) *Handlers {
    return &Handlers{cfg: cfg, log: log, svc: svc}
}

func (h *Handlers) Healthz(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) Actions(c *gin.Context) {
    out := make([]gin.H, 0, len(services.Actions))
    for _, a := range services.Actions {
        out = append(out, gin.H{"action": a, "description": a.Description()})
    }
    c.JSON(http.StatusOK, gin.H{"actions": out})
}

// Dispatch is the single action endpoint. Any failure, including a body
// that is not a JSON object, becomes the generic 500 envelope.
func (h *Handlers) Dispatch(c *gin.Context) {
    body, err := c.GetRawData()
    if err != nil { h.fail(c, "", err); return }
    req, err := services.DecodeRequest(body)
    if err != nil { h.fail(c, "", err); return }
    reply, err := h.svc.Dispatch(c.Request.Context(), req)
    if err != nil { h.fail(c, req.Action, err); return }
    c.JSON(http.StatusOK, reply)
}

func (h *Handlers) fail(c *gin.Context, action string, err error) {
    h.log.Error().Err(err).Str("action", action).Str("rid", c.GetString("request_id")).Msg("release-manager request failed")
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request", "details": err.Error()})
}
