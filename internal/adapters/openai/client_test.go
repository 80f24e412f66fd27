package openai

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/openai/openai-go/v2/option"
    "github.com/rs/zerolog"

    "github.com/HamedShams/release-manager/internal/config"
)

func TestNarrate(t *testing.T) {
    var gotBody map[string]any
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.HasSuffix(r.URL.Path, "/chat/completions") { t.Errorf("path = %s", r.URL.Path) }
        if r.Header.Get("Authorization") != "Bearer sk-test" { t.Errorf("auth = %q", r.Header.Get("Authorization")) }
        _ = json.NewDecoder(r.Body).Decode(&gotBody)
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4.1-mini",
            "choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Publish the payroll manual first."}}]}`))
    }))
    defer srv.Close()

    cfg := config.Config{OpenAIKey: "sk-test", OpenAIModel: "gpt-4.1-mini", OpenAITimeout: 5 * time.Second}
    c := NewClient(cfg, zerolog.Nop(), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
    got, err := c.Narrate(context.Background(), "assess_readiness", "# Release Readiness Assessment")
    if err != nil { t.Fatalf("Narrate: %v", err) }
    if got != "Publish the payroll manual first." { t.Errorf("got %q", got) }
    if gotBody["model"] != "gpt-4.1-mini" { t.Errorf("model = %v", gotBody["model"]) }
    msgs, _ := gotBody["messages"].([]any)
    if len(msgs) != 2 { t.Fatalf("messages = %v", gotBody["messages"]) }
    if user := msgs[1].(map[string]any); !strings.Contains(user["content"].(string), "assess_readiness") {
        t.Errorf("user message = %v", user["content"])
    }
}

func TestNarrate_MissingKey(t *testing.T) {
    c := NewClient(config.Config{}, zerolog.Nop())
    if c.Enabled() { t.Fatalf("client without key should be disabled") }
    if _, err := c.Narrate(context.Background(), "x", "y"); err == nil { t.Fatalf("expected error without key") }
}

func TestNarrate_ServerError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
    }))
    defer srv.Close()
    c := NewClient(config.Config{OpenAIKey: "k", OpenAITimeout: time.Second}, zerolog.Nop(), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
    if _, err := c.Narrate(context.Background(), "x", "y"); err == nil { t.Fatalf("expected error on 500") }
}
