/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package openai

import (
    "context"
    "errors"
    "fmt"
    "strings"

    openai "github.com/openai/openai-go/v2"
    "github.com/openai/openai-go/v2/option"
    "github.com/openai/openai-go/v2/shared"
    "github.com/rs/zerolog"

    "github.com/HamedShams/release-manager/internal/config"
)

const narratorPrompt = "You are a release manager for an HR and payroll product. " +
    "Given a markdown report from the documentation release pipeline, write at most four short sentences " +
    "pointing out the single most important risk and the next concrete step. Do not repeat the numbers verbatim."

type Client struct {
    key   string
    model string
    cli   openai.Client
    log   zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger, opts ...option.RequestOption) *Client {
    model := cfg.OpenAIModel
    if strings.TrimSpace(model) == "" { model = "gpt-4.1-mini" }
    opts = append([]option.RequestOption{option.WithAPIKey(cfg.OpenAIKey), option.WithRequestTimeout(cfg.OpenAITimeout)}, opts...)
    return &Client{key: cfg.OpenAIKey, model: model, cli: openai.NewClient(opts...), log: log}
}

// Enabled reports whether a key is configured.
func (c *Client) Enabled() bool { return strings.TrimSpace(c.key) != "" }

func (c *Client) Narrate(ctx context.Context, action string, report string) (string, error) {
    if !c.Enabled() { return "", errors.New("openai: missing key") }
    c.log.Info().Str("model", c.model).Str("action", action).Msg("openai Narrate call")
    params := openai.ChatCompletionNewParams{
        Model: shared.ChatModel(c.model),
        Messages: []openai.ChatCompletionMessageParamUnion{
            openai.SystemMessage(narratorPrompt),
            openai.UserMessage(fmt.Sprintf("Action: %s\n\n%s", action, report)),
        },
    }
    resp, err := c.cli.Chat.Completions.New(ctx, params)
    if err != nil { return "", fmt.Errorf("openai: %w", err) }
    if len(resp.Choices) == 0 { return "", errors.New("openai: no choices") }
    return resp.Choices[0].Message.Content, nil
}
