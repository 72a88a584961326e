package model

import "time"

// Config holds the complete Veridex configuration
type Config struct {
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Sources   SourcesConfig   `yaml:"sources" mapstructure:"sources"`
	Ranking   RankingConfig   `yaml:"ranking" mapstructure:"ranking"`
	Embedding ProviderConfig  `yaml:"embedding" mapstructure:"embedding"`
	Judge     ProviderConfig  `yaml:"judge" mapstructure:"judge"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls the shared client used for literature API calls
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"` // Per-host
	Burst             int           `yaml:"burst" mapstructure:"burst"`
}

// SourcesConfig controls the literature source adapters
type SourcesConfig struct {
	MaxPerSource int `yaml:"max_per_source" mapstructure:"max_per_source"`
}

// RankingConfig controls semantic reranking of candidates
type RankingConfig struct {
	TopK         int `yaml:"top_k" mapstructure:"top_k"`
	SnippetChars int `yaml:"snippet_chars" mapstructure:"snippet_chars"`
}

// ProviderConfig configures an external model backend (embedding or judge).
// Provider is "openai" or "ollama"; BaseURL allows OpenAI-compatible local
// endpoints.
type ProviderConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens,omitempty" mapstructure:"max_tokens"`
}

// CacheConfig controls in-memory caching of search responses and embeddings
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ServerConfig controls the HTTP service
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	JSON    bool `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:           10 * time.Second,
			UserAgent:         "Veridex/0.1 (+https://github.com/ppiankov/veridex)",
			MaxBodyBytes:      4_000_000,
			RespectRobots:     true,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Sources: SourcesConfig{
			MaxPerSource: 30,
		},
		Ranking: RankingConfig{
			TopK:         5,
			SnippetChars: 600,
		},
		Embedding: ProviderConfig{
			Provider: "ollama",
			Model:    "nomic-embed-text",
			Timeout:  30,
		},
		Judge: ProviderConfig{
			Provider:  "ollama",
			Model:     "phi3",
			Timeout:   180,
			MaxTokens: 1000,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Output: OutputConfig{},
	}
}
