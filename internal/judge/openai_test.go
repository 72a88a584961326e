package judge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/veridex/internal/model"
)

func TestOpenAIJudge_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header: %s", r.Header.Get("Authorization"))
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-1",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: "Verdict: False\n\nConfidence: 85\n\nExplanation: Paper 1 contradicts the claim.",
					},
					FinishReason: "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	j, err := NewOpenAIJudge(model.ProviderConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create judge: %v", err)
	}

	text, err := j.Complete(context.Background(), SystemPrompt, "prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text == "" || text[:14] != "Verdict: False" {
		t.Errorf("Unexpected reply: %q", text)
	}
}

func TestOpenAIJudge_APIErrorBecomesResponseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit exceeded", "type": "requests"}}`))
	}))
	defer server.Close()

	j, err := NewOpenAIJudge(model.ProviderConfig{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create judge: %v", err)
	}

	_, err = j.Complete(context.Background(), SystemPrompt, "prompt")
	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("Expected ResponseError, got %v", err)
	}
	if respErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", respErr.StatusCode)
	}
}

func TestOpenAIJudge_RequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAIJudge(model.ProviderConfig{}); err == nil {
		t.Error("Expected error when API key is missing")
	}
}
