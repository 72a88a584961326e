package embed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/veridex/internal/cache"
)

// CachedProvider wraps a Provider with a byte cache so identical texts are
// embedded once per TTL. Candidate abstracts repeat heavily when the same
// claim is analyzed twice, and embedding is the slowest retrieval stage.
type CachedProvider struct {
	inner Provider
	store cache.Cache
	ttl   time.Duration
}

// NewCachedProvider wraps the provider with the given cache
func NewCachedProvider(inner Provider, store cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, store: store, ttl: ttl}
}

// Name returns the underlying provider name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable checks the underlying provider
func (p *CachedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// EmbedBatch returns cached vectors where present and embeds only the misses,
// in one underlying batch call. Output order matches input order.
func (p *CachedProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missTexts []string
	var missIdx []int

	for i, text := range texts {
		if vec, ok := p.lookup(text); ok {
			vectors[i] = vec
			continue
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	fresh, err := p.inner.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}

	for j, vec := range fresh {
		vectors[missIdx[j]] = vec
		p.save(missTexts[j], vec)
	}

	return vectors, nil
}

// EmbedOne embeds a single text through the cache
func (p *CachedProvider) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := p.lookup(text); ok {
		return vec, nil
	}

	vec, err := p.inner.EmbedOne(ctx, text)
	if err != nil {
		return nil, err
	}
	p.save(text, vec)
	return vec, nil
}

func (p *CachedProvider) key(text string) string {
	return cache.Key("embed:"+p.inner.Name(), text)
}

func (p *CachedProvider) lookup(text string) ([]float32, bool) {
	raw, found := p.store.Get(p.key(text))
	if !found {
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil, false
	}
	return vec, true
}

func (p *CachedProvider) save(text string, vec []float32) {
	raw, err := json.Marshal(vec)
	if err != nil {
		return
	}
	_ = p.store.Set(p.key(text), raw, p.ttl)
}
