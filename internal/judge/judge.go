package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/veridex/internal/model"
)

// Judge defines the interface for the opaque text-generation backend that
// produces the free-text verdict. None of these methods retry; retry policy
// belongs to the caller.
type Judge interface {
	// Name returns the provider name
	Name() string

	// Complete sends the prompts and returns the raw judge output
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// ErrUnavailable marks connection-level failures reaching the judge. The
// server maps it to 503.
var ErrUnavailable = errors.New("judge unavailable")

// ErrEmptyResponse marks a judge reply with no usable text
var ErrEmptyResponse = errors.New("empty response from judge")

// ResponseError carries a non-success judge response, body included for
// operator diagnosis.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("judge error (%d): %s", e.StatusCode, e.Body)
}

// NewJudge creates a judge provider from configuration
func NewJudge(cfg model.ProviderConfig) (Judge, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIJudge(cfg)
	case "ollama":
		return NewOllamaJudge(cfg)
	default:
		return nil, fmt.Errorf("unknown judge provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}
