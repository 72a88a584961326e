package embed

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/veridex/internal/cache"
)

type countingProvider struct {
	batchCalls int
	oneCalls   int
}

func (p *countingProvider) Name() string                         { return "counting" }
func (p *countingProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *countingProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	p.batchCalls++
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text)), 1}
	}
	return vectors, nil
}

func (p *countingProvider) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	p.oneCalls++
	return []float32{float32(len(text)), 1}, nil
}

func TestCachedProvider_BatchHitsSkipInner(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	first, err := cached.EmbedBatch(context.Background(), []string{"aa", "bbb"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if inner.batchCalls != 1 {
		t.Fatalf("Expected 1 inner call, got %d", inner.batchCalls)
	}

	// Second call with one known and one new text embeds only the miss
	second, err := cached.EmbedBatch(context.Background(), []string{"aa", "cccc"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if inner.batchCalls != 2 {
		t.Errorf("Expected 2 inner calls, got %d", inner.batchCalls)
	}

	if first[0][0] != second[0][0] {
		t.Errorf("Cached vector differs: %v vs %v", first[0], second[0])
	}
	if second[1][0] != 4 {
		t.Errorf("Unexpected vector for miss: %v", second[1])
	}
}

func TestCachedProvider_FullHitNoInnerCall(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	if _, err := cached.EmbedBatch(context.Background(), []string{"x", "y"}); err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if _, err := cached.EmbedBatch(context.Background(), []string{"y", "x"}); err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}

	if inner.batchCalls != 1 {
		t.Errorf("Expected fully cached second batch, inner calls: %d", inner.batchCalls)
	}
}

func TestCachedProvider_EmbedOne(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	if _, err := cached.EmbedOne(context.Background(), "claim"); err != nil {
		t.Fatalf("EmbedOne failed: %v", err)
	}
	if _, err := cached.EmbedOne(context.Background(), "claim"); err != nil {
		t.Fatalf("EmbedOne failed: %v", err)
	}

	if inner.oneCalls != 1 {
		t.Errorf("Expected 1 inner call, got %d", inner.oneCalls)
	}
}
