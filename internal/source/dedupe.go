package source

import (
	"strings"

	"github.com/ppiankov/veridex/internal/model"
)

// identityKey identifies a candidate across sources. Two candidates with the
// same lowercased title and URL are duplicates even when different adapters
// produced them.
type identityKey struct {
	title string
	url   string
}

func keyOf(c model.Candidate) identityKey {
	return identityKey{
		title: strings.ToLower(c.Title),
		url:   strings.ToLower(c.URL),
	}
}

// Dedupe removes duplicate candidates, preserving order. The first occurrence
// wins, so the registry merge order decides which source a shared paper is
// attributed to. Running Dedupe on its own output is a no-op.
func Dedupe(candidates []model.Candidate) []model.Candidate {
	unique := make([]model.Candidate, 0, len(candidates))
	seen := make(map[identityKey]struct{}, len(candidates))

	for _, c := range candidates {
		if c.Empty() {
			continue
		}
		key := keyOf(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}

	return unique
}
