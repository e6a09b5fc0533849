package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestComplete(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "modify_style"}}]}`))
	}))
	defer srv.Close()

	c := New("test-key", "test-model", srv.URL)
	got, err := c.Complete(context.Background(), "system prompt", "user message")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if got != "modify_style" {
		t.Errorf("Complete() = %q, want modify_style", got)
	}

	if gotPath != "/v1/chat/completions" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPayload["model"] != "test-model" {
		t.Errorf("model = %v", gotPayload["model"])
	}
	msgs, ok := gotPayload["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("messages = %v", gotPayload["messages"])
	}
	first := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "system prompt" {
		t.Errorf("first message = %v", first)
	}
}

func TestCompleteContentParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"message": {"content": [{"type": "text", "text": "hello "}, {"type": "text", "text": "world"}]}}]}`))
	}))
	defer srv.Close()

	c := New("k", "m", srv.URL)
	got, err := c.Complete(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("Complete() = %q, want %q", got, "hello world")
	}
}

func TestCompleteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New("k", "m", srv.URL)
	_, err := c.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("Complete() expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v, want status code mentioned", err)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := New("k", "m", srv.URL)
	if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("Complete() expected error for empty choices")
	}
}

func TestNewDefaults(t *testing.T) {
	c := New("k", "", "")
	if c.model != "gpt-4-turbo-preview" {
		t.Errorf("model = %q", c.model)
	}
	if c.baseURL != "https://api.openai.com" {
		t.Errorf("baseURL = %q", c.baseURL)
	}

	c = New("k", "m", "http://example.com/")
	if c.baseURL != "http://example.com" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
}
