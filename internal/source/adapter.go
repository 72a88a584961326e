package source

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ppiankov/veridex/internal/model"
)

// Adapter defines the interface for literature source adapters. Each adapter
// owns its request construction and raw schema; all of them return cleaned
// Candidates with at least one of title/abstract non-empty.
type Adapter interface {
	// Name returns the source name recorded on every candidate
	Name() string

	// Search queries the source and returns at most limit candidates
	Search(ctx context.Context, query string, limit int) ([]model.Candidate, error)
}

// Registry holds the configured adapters in merge order. The order is part of
// the contract: deduplication keeps the first occurrence and the ranker
// breaks similarity ties by original index, so candidates are always merged
// EuropePMC, arXiv, Crossref, OpenAlex regardless of which fetch finishes
// first.
type Registry struct {
	adapters []Adapter
	verbose  bool
}

// NewRegistry creates a registry with the four built-in literature adapters
func NewRegistry(client *Client, verbose bool) *Registry {
	return &Registry{
		adapters: []Adapter{
			NewEuropePMC(client),
			NewArxiv(client),
			NewCrossref(client),
			NewOpenAlex(client),
		},
		verbose: verbose,
	}
}

// Register appends an adapter to the merge order
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// Adapters returns the registered adapters in merge order
func (r *Registry) Adapters() []Adapter {
	return r.adapters
}

// FetchAll queries every adapter concurrently and merges the results in
// registry order. Adapter failures are logged and contribute zero candidates;
// they never fail the fetch as a whole.
func (r *Registry) FetchAll(ctx context.Context, query string, limit int) []model.Candidate {
	slots := make([][]model.Candidate, len(r.adapters))
	var wg sync.WaitGroup

	for i, adapter := range r.adapters {
		wg.Add(1)
		go func(idx int, a Adapter) {
			defer wg.Done()

			candidates, err := a.Search(ctx, query, limit)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s search failed: %v\n", a.Name(), err)
				return
			}
			if r.verbose {
				fmt.Fprintf(os.Stderr, "%s: %d candidates\n", a.Name(), len(candidates))
			}
			slots[idx] = candidates
		}(i, adapter)
	}

	wg.Wait()

	var merged []model.Candidate
	for _, candidates := range slots {
		for _, c := range candidates {
			if c.Empty() {
				continue
			}
			merged = append(merged, c)
		}
	}
	return merged
}
