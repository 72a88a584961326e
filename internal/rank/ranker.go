package rank

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ppiankov/veridex/internal/embed"
	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/textutil"
)

// DimensionMismatchError indicates the claim and candidate embeddings came
// from incompatible models. This is a configuration fault, never recovered
// per-request; vectors are not padded or truncated to force a match.
type DimensionMismatchError struct {
	ClaimDim     int
	CandidateDim int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: claim %d vs candidate %d", e.ClaimDim, e.CandidateDim)
}

// Ranker orders candidates by semantic relevance to a claim. Cosine
// similarity on a shared embedding space gives source-agnostic scoring across
// four structurally different APIs without per-source heuristics.
type Ranker struct {
	provider     embed.Provider
	snippetChars int
}

// NewRanker creates a ranker on top of the given embedding provider
func NewRanker(provider embed.Provider, cfg model.RankingConfig) *Ranker {
	return &Ranker{
		provider:     provider,
		snippetChars: cfg.SnippetChars,
	}
}

// Rank returns the k candidates most similar to the claim, most relevant
// first. Ties keep the original candidate order. The result length is
// min(k, len(candidates)); an empty candidate list short-circuits without
// touching the embedding provider.
func (r *Ranker) Rank(ctx context.Context, claim string, candidates []model.Candidate, k int) ([]model.Candidate, error) {
	if len(candidates) == 0 {
		return []model.Candidate{}, nil
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Title + "\n\n" + c.Abstract
	}

	docVecs, err := r.provider.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed candidates: %w", err)
	}

	claimVec, err := r.provider.EmbedOne(ctx, claim)
	if err != nil {
		return nil, fmt.Errorf("embed claim: %w", err)
	}

	for _, vec := range docVecs {
		if len(vec) != len(claimVec) {
			return nil, &DimensionMismatchError{ClaimDim: len(claimVec), CandidateDim: len(vec)}
		}
	}

	// Unit-length vectors make the inner product a cosine similarity
	normalize(claimVec)
	scores := make([]float64, len(docVecs))
	for i, vec := range docVecs {
		normalize(vec)
		scores[i] = dot(claimVec, vec)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	// Stable sort: equal scores keep the original fetch order
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	top := make([]model.Candidate, 0, k)
	for _, idx := range order[:k] {
		top = append(top, candidates[idx])
	}

	return top, nil
}

// Evidence converts ranked candidates into presentation form, truncating
// abstracts to the configured snippet length.
func (r *Ranker) Evidence(candidates []model.Candidate) []model.EvidenceItem {
	items := make([]model.EvidenceItem, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, model.EvidenceItem{
			Title:    c.Title,
			Abstract: textutil.Snippet(c.Abstract, r.snippetChars),
			URL:      c.URL,
			Source:   c.Source,
		})
	}
	return items
}

// normalize scales vec to unit length in place. Zero vectors are left alone
// and score zero against everything.
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
