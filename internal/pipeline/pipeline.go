package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/veridex/internal/cache"
	"github.com/ppiankov/veridex/internal/embed"
	"github.com/ppiankov/veridex/internal/judge"
	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/rank"
	"github.com/ppiankov/veridex/internal/source"
	"github.com/ppiankov/veridex/internal/verdict"
)

// ErrEmptyClaim rejects blank input before any pipeline work begins
var ErrEmptyClaim = errors.New("claim must not be empty")

// Retriever collects candidates from the literature sources
type Retriever interface {
	FetchAll(ctx context.Context, query string, limit int) []model.Candidate
}

// Pipeline orchestrates one fact-checking cycle: retrieve, dedupe, rank,
// judge, parse. Source failures are absorbed upstream; embedding and judge
// failures propagate to the caller.
type Pipeline struct {
	retriever Retriever
	ranker    *rank.Ranker
	judge     judge.Judge
	config    *model.Config
}

// New wires a complete pipeline from configuration
func New(cfg *model.Config) (*Pipeline, error) {
	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	client := source.NewClient(cfg.HTTP, store, cfg.Cache.TTL)
	registry := source.NewRegistry(client, cfg.Output.Verbose)

	embedder, err := embed.NewProvider(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}
	if store != nil {
		embedder = embed.NewCachedProvider(embedder, store, cfg.Cache.TTL)
	}

	j, err := judge.NewJudge(cfg.Judge)
	if err != nil {
		return nil, fmt.Errorf("judge provider: %w", err)
	}

	return NewWithComponents(registry, rank.NewRanker(embedder, cfg.Ranking), j, cfg), nil
}

// NewWithComponents assembles a pipeline from prebuilt parts
func NewWithComponents(retriever Retriever, ranker *rank.Ranker, j judge.Judge, cfg *model.Config) *Pipeline {
	return &Pipeline{
		retriever: retriever,
		ranker:    ranker,
		judge:     j,
		config:    cfg,
	}
}

// Judge exposes the configured judge for availability checks at startup
func (p *Pipeline) Judge() judge.Judge {
	return p.judge
}

// Analyze runs the full cycle for one claim. Zero candidates after dedup is
// not an error: ranking is skipped and the judge is asked to rule on an
// explicit no-evidence context.
func (p *Pipeline) Analyze(ctx context.Context, claim string) (*model.Analysis, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, ErrEmptyClaim
	}

	// 1. Retrieve candidates from all sources
	candidates := p.retriever.FetchAll(ctx, claim, p.config.Sources.MaxPerSource)

	// 2. Deduplicate across sources
	unique := source.Dedupe(candidates)

	// 3. Rank by semantic similarity, keep top-k
	evidence := []model.EvidenceItem{}
	if len(unique) > 0 {
		top, err := p.ranker.Rank(ctx, claim, unique, p.config.Ranking.TopK)
		if err != nil {
			return nil, fmt.Errorf("rank candidates: %w", err)
		}
		evidence = p.ranker.Evidence(top)
	}

	// 4. Ask the judge, with or without evidence
	prompt := judge.BuildPrompt(claim, evidence)
	text, err := p.judge.Complete(ctx, judge.SystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	// 5. Parse the free-text verdict
	result := verdict.Parse(text)

	return &model.Analysis{
		Claim:      claim,
		Verdict:    result.Explanation,
		Label:      result.Label,
		Confidence: result.Confidence,
		TruthScore: result.Confidence,
		Papers:     evidence,
	}, nil
}
