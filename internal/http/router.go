/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
    "github.com/rs/zerolog"

    "github.com/HamedShams/release-manager/internal/config"
)

const (
    requestIDHeader = "X-Request-ID"
    corsHeaders     = "authorization, x-client-info, apikey, content-type"
)

func NewRouter(cfg config.Config, log zerolog.Logger, svc service) *gin.Engine {
    if cfg.AppEnv != "dev" { gin.SetMode(gin.ReleaseMode) }
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(requestID())
    r.Use(accessLog(log))
    r.Use(cors(cfg.CORSAllowOrigin))

    h := NewHandlers(cfg, log, svc)

    r.GET("/healthz", h.Healthz)
    r.GET("/actions", h.Actions)
    // every POST path is the dispatcher; callers only vary the body
    r.POST("/*path", h.Dispatch)

    return r
}

func requestID() gin.HandlerFunc {
    return func(c *gin.Context) {
        id := c.GetHeader(requestIDHeader)
        if id == "" { id = uuid.NewString() }
        c.Set("request_id", id)
        c.Header(requestIDHeader, id)
        c.Next()
    }
}

func accessLog(log zerolog.Logger) gin.HandlerFunc {
    return func(c *gin.Context) {
        start := time.Now()
        c.Next()
        log.Info().
            Str("m", c.Request.Method).
            Str("p", c.Request.URL.Path).
            Int("s", c.Writer.Status()).
            Dur("took", time.Since(start)).
            Str("rid", c.GetString("request_id")).
            Msg("http")
    }
}

// cors answers every preflight with an empty 200, whatever the path.
func cors(origin string) gin.HandlerFunc {
    if origin == "" { origin = "*" }
    return func(c *gin.Context) {
        c.Header("Access-Control-Allow-Origin", origin)
        c.Header("Access-Control-Allow-Headers", corsHeaders)
        c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
        if c.Request.Method == http.MethodOptions {
            c.AbortWithStatus(http.StatusOK)
            return
        }
        c.Next()
    }
}
