package judge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/veridex/internal/model"
)

func TestOllamaJudge_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("Expected path /api/chat, got %s", r.URL.Path)
		}

		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Stream {
			t.Error("Expected stream=false")
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}

		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   req.Model,
			Message: ollamaChatMessage{Role: "assistant", Content: "Verdict: True\n\nConfidence: 90"},
			Done:    true,
		})
	}))
	defer server.Close()

	j, err := NewOllamaJudge(model.ProviderConfig{Model: "phi3", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create judge: %v", err)
	}

	text, err := j.Complete(context.Background(), SystemPrompt, "user prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "Verdict: True\n\nConfidence: 90" {
		t.Errorf("Unexpected reply: %q", text)
	}
}

func TestOllamaJudge_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "model exploded"}`))
	}))
	defer server.Close()

	j, err := NewOllamaJudge(model.ProviderConfig{Model: "phi3", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create judge: %v", err)
	}

	_, err = j.Complete(context.Background(), SystemPrompt, "prompt")
	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("Expected ResponseError, got %v", err)
	}
	if respErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", respErr.StatusCode)
	}
	if respErr.Body == "" {
		t.Error("Expected response body in error detail")
	}
}

func TestOllamaJudge_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaChatMessage{Role: "assistant", Content: "   \n\t "},
			Done:    true,
		})
	}))
	defer server.Close()

	j, err := NewOllamaJudge(model.ProviderConfig{Model: "phi3", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create judge: %v", err)
	}

	if _, err := j.Complete(context.Background(), SystemPrompt, "prompt"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestOllamaJudge_ConnectionFailure(t *testing.T) {
	// Port 1 is never listening
	j, err := NewOllamaJudge(model.ProviderConfig{Model: "phi3", BaseURL: "http://127.0.0.1:1", Timeout: 1})
	if err != nil {
		t.Fatalf("Failed to create judge: %v", err)
	}

	if _, err := j.Complete(context.Background(), SystemPrompt, "prompt"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestNewJudge_UnknownProvider(t *testing.T) {
	if _, err := NewJudge(model.ProviderConfig{Provider: "bard"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
