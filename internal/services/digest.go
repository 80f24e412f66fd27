/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "fmt"
    "strings"
)

const telegramChunk = 3800

// RunReadinessDigest posts the readiness and workflow reports to every
// configured Telegram chat. It reads only; the cached readiness score on the
// lifecycle row is left as it is.
func (s *Service) RunReadinessDigest(ctx context.Context) error {
    if s.tg == nil || len(s.cfg.TelegramChatIDs) == 0 {
        s.log.Info().Msg("ReadinessDigest: no telegram chats configured, skipping")
        return nil
    }
    s.log.Info().Msg("ReadinessDigest: start")
    var parts []string
    for _, a := range []Action{ActionAssessReadiness, ActionWorkflowStatus} {
        reply, err := s.Dispatch(ctx, Request{Action: string(a)})
        if err != nil { return fmt.Errorf("digest: %w", err) }
        parts = append(parts, reply.Response)
    }
    digest := strings.Join(parts, "\n\n")
    var sendErr error
    for _, chat := range s.cfg.TelegramChatIDs {
        for _, p := range chunkText(digest, telegramChunk) {
            if err := s.tg.SendMessagePlain(ctx, chat, p); err != nil {
                s.log.Error().Err(err).Int64("chat", chat).Msg("telegram send failed")
                sendErr = err
                break
            }
        }
    }
    s.log.Info().Int("chats", len(s.cfg.TelegramChatIDs)).Msg("ReadinessDigest: done")
    return sendErr
}

// chunkText splits text into chunks of up to max runes, breaking on lines
// where it can.
func chunkText(s string, max int) []string {
    if max <= 0 { return []string{s} }
    var chunks []string
    cur := ""
    curlen := 0
    for _, ln := range strings.Split(s, "\n") {
        rl := len([]rune(ln))
        if rl > max {
            if curlen > 0 { chunks = append(chunks, cur); cur = ""; curlen = 0 }
            r := []rune(ln)
            for i := 0; i < rl; i += max {
                j := i + max
                if j > rl { j = rl }
                chunks = append(chunks, string(r[i:j]))
            }
            continue
        }
        extra := rl
        if curlen > 0 { extra++ }
        switch {
        case curlen+extra > max:
            chunks = append(chunks, cur)
            cur, curlen = ln, rl
        case curlen == 0:
            cur, curlen = ln, rl
        default:
            cur += "\n" + ln
            curlen += extra
        }
    }
    if curlen > 0 { chunks = append(chunks, cur) }
    if len(chunks) == 0 { chunks = []string{""} }
    return chunks
}
