package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/core"
)

func newFakeEndpoint(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func completionBody(content string) []byte {
	body, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	})
	return body
}

func TestCompleteSuccess(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := newFakeEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionBody(`{"matches": [], "summary": "clean"}`))
	})

	client := NewClient(srv.URL, "", "local-model", 512, 0.1, 10*time.Second, zap.NewNop())
	defer client.Close()

	reply, err := client.Complete(context.Background(), "system text", "user text", nil)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != `{"matches": [], "summary": "clean"}` {
		t.Errorf("reply = %q", reply)
	}

	if gotReq.Model != "local-model" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != "system text" {
		t.Errorf("system message = %+v", gotReq.Messages[0])
	}
	if gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != "user text" {
		t.Errorf("user message = %+v", gotReq.Messages[1])
	}
}

func TestCompleteOptionOverrides(t *testing.T) {
	var gotModel string
	srv := newFakeEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionBody("ok"))
	})

	client := NewClient(srv.URL, "", "default-model", 512, 0.1, 10*time.Second, zap.NewNop())
	defer client.Close()

	temp := float32(0.7)
	_, err := client.Complete(context.Background(), "s", "u", &core.CompletionOptions{
		Model:       "override-model",
		Temperature: &temp,
		MaxTokens:   128,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if gotModel != "override-model" {
		t.Errorf("model = %q, want override-model", gotModel)
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error": {"message": "rate limit exceeded", "type": "requests"}}`, 429},
		{"server error", http.StatusInternalServerError, `{"error": {"message": "internal", "type": "server_error"}}`, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			client := NewClient(srv.URL, "", "m", 512, 0.1, 10*time.Second, zap.NewNop())
			defer client.Close()

			_, err := client.Complete(context.Background(), "s", "u", nil)
			if err == nil {
				t.Fatal("Complete() should have failed")
			}
			var ue *core.UpstreamError
			if !errors.As(err, &ue) {
				t.Fatalf("error type = %T, want *UpstreamError", err)
			}
			if ue.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", ue.StatusCode, tt.wantStatus)
			}
			if !ue.Retryable() {
				t.Errorf("status %d should be retryable", tt.wantStatus)
			}
		})
	}
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, "", "m", 512, 0.1, time.Second, zap.NewNop())
	defer client.Close()

	_, err := client.Complete(context.Background(), "s", "u", nil)
	if err == nil {
		t.Fatal("Complete() should have failed")
	}
	var te *core.TransportError
	if !errors.As(err, &te) {
		t.Errorf("error type = %T, want *TransportError", err)
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := newFakeEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	client := NewClient(srv.URL, "", "m", 512, 0.1, 10*time.Second, zap.NewNop())
	defer client.Close()

	_, err := client.Complete(context.Background(), "s", "u", &core.CompletionOptions{Timeout: 50 * time.Millisecond})
	if err == nil {
		t.Fatal("Complete() should have timed out")
	}
	var te *core.TransportError
	if !errors.As(err, &te) {
		t.Errorf("error type = %T, want *TransportError", err)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := newFakeEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "x", "object": "chat.completion", "choices": []}`))
	})

	client := NewClient(srv.URL, "", "m", 512, 0.1, 10*time.Second, zap.NewNop())
	defer client.Close()

	_, err := client.Complete(context.Background(), "s", "u", nil)
	var ue *core.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
}
