package logger

import (
    "bytes"
    "encoding/json"
    "testing"

    "github.com/HamedShams/release-manager/internal/config"
    "github.com/rs/zerolog"
)

func TestNewTo_JSONWithLevel(t *testing.T) {
    var buf bytes.Buffer
    log := NewTo(config.Config{AppEnv: "prod", LogLevel: "warn"}, &buf)
    log.Info().Msg("dropped")
    log.Warn().Str("action", "workflow_status").Msg("kept")

    var line map[string]any
    if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil { t.Fatalf("want one JSON line, got %q: %v", buf.String(), err) }
    if line["message"] != "kept" || line["svc"] != "release-manager" || line["action"] != "workflow_status" { t.Errorf("line = %v", line) }
}

func TestLevel(t *testing.T) {
    cases := map[string]zerolog.Level{"": zerolog.InfoLevel, "debug": zerolog.DebugLevel, "error": zerolog.ErrorLevel, "loud": zerolog.InfoLevel}
    for in, want := range cases {
        if got := level(in); got != want { t.Errorf("level(%q) = %v, want %v", in, got, want) }
    }
}
