package embed

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/veridex/internal/model"
)

// Provider defines the interface for embedding backends. Implementations must
// be deterministic and dimension-stable within a process lifetime, and safe
// for concurrent use; one instance is constructed at startup and shared by
// every request.
type Provider interface {
	// Name returns the provider name
	Name() string

	// EmbedBatch embeds a batch of texts, one vector per text
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedOne embeds a single text
	EmbedOne(ctx context.Context, text string) ([]float32, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// NewProvider creates an embedding provider from configuration
func NewProvider(cfg model.ProviderConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "ollama":
		return NewOllamaProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}
