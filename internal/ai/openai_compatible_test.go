package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(srv *httptest.Server) *OpenAICompatibleClient {
	return &OpenAICompatibleClient{httpClient: srv.Client()}
}

func TestComplete(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"  Revenue grew 18%.  "}}]}`))
	}))
	defer srv.Close()

	chat := NewChat(newTestClient(srv), ChatConfig{BaseURL: srv.URL + "/v1/", APIKey: "sk-test", Model: "gpt-test"})
	answer, err := chat.Complete(context.Background(), CompletionRequest{
		System:      "You analyze earnings calls.",
		Prompt:      "What was revenue growth?",
		Temperature: 0.2,
		MaxTokens:   800,
		TopP:        0.9,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if answer != "Revenue grew 18%." {
		t.Errorf("answer = %q", answer)
	}

	if got["model"] != "gpt-test" || got["max_tokens"] != float64(800) || got["top_p"] != 0.9 {
		t.Errorf("request body = %v", got)
	}
	messages, _ := got["messages"].([]interface{})
	if len(messages) != 2 {
		t.Fatalf("expected system and user messages, got %v", got["messages"])
	}
	if first, _ := messages[0].(map[string]interface{}); first["role"] != "system" {
		t.Errorf("first message = %v", messages[0])
	}
}

func TestComplete_OmitsUnsetSampling(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	if _, err := c.Complete(context.Background(), ChatConfig{BaseURL: srv.URL}, CompletionRequest{Prompt: "hi"}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	for _, key := range []string{"temperature", "max_tokens", "top_p"} {
		if _, ok := got[key]; ok {
			t.Errorf("unexpected %s in request", key)
		}
	}
	if messages, _ := got["messages"].([]interface{}); len(messages) != 1 {
		t.Errorf("expected only the user message, got %v", got["messages"])
	}
}

func TestComplete_StatusErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		rateLimited bool
		quota       bool
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"type":"requests","message":"slow down"}}`, true, false},
		{"quota", http.StatusTooManyRequests, `{"error":{"type":"insufficient_quota"}}`, false, true},
		{"billing", http.StatusForbidden, `{"error":{"message":"check your billing details"}}`, false, true},
		{"server error", http.StatusInternalServerError, `oops`, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv).Complete(context.Background(), ChatConfig{BaseURL: srv.URL}, CompletionRequest{Prompt: "hi"})
			var se *StatusError
			if !errors.As(err, &se) || se.StatusCode != tt.status {
				t.Fatalf("err = %v, want StatusError %d", err, tt.status)
			}
			if IsRateLimited(err) != tt.rateLimited {
				t.Errorf("IsRateLimited = %v, want %v", IsRateLimited(err), tt.rateLimited)
			}
			if IsQuotaExceeded(err) != tt.quota {
				t.Errorf("IsQuotaExceeded = %v, want %v", IsQuotaExceeded(err), tt.quota)
			}
		})
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).Complete(context.Background(), ChatConfig{BaseURL: srv.URL}, CompletionRequest{Prompt: "hi"}); err == nil {
		t.Error("expected error for empty choices")
	}
}
