package source

import (
	"testing"

	"github.com/ppiankov/veridex/internal/model"
)

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	candidates := []model.Candidate{
		{Title: "Vitamin D and Immunity", URL: "https://doi.org/10.1/x", Source: "EuropePMC"},
		{Title: "Caffeine and Sleep", URL: "https://doi.org/10.2/y", Source: "arXiv"},
		{Title: "Vitamin D and Immunity", URL: "https://doi.org/10.1/x", Source: "Crossref"},
	}

	unique := Dedupe(candidates)

	if len(unique) != 2 {
		t.Fatalf("Expected 2 unique candidates, got %d", len(unique))
	}
	if unique[0].Source != "EuropePMC" {
		t.Errorf("Expected first-seen candidate to survive, got source %s", unique[0].Source)
	}
	if unique[1].Title != "Caffeine and Sleep" {
		t.Errorf("Expected order preserved, got %q second", unique[1].Title)
	}
}

func TestDedupe_CaseInsensitiveKey(t *testing.T) {
	candidates := []model.Candidate{
		{Title: "The HIGGS Boson", URL: "HTTPS://EXAMPLE.COM/A", Source: "arXiv"},
		{Title: "the higgs boson", URL: "https://example.com/a", Source: "OpenAlex"},
	}

	unique := Dedupe(candidates)
	if len(unique) != 1 {
		t.Fatalf("Expected case-insensitive dedup to 1 candidate, got %d", len(unique))
	}
	if unique[0].Source != "arXiv" {
		t.Errorf("Expected arXiv candidate to survive, got %s", unique[0].Source)
	}
}

func TestDedupe_SameTitleDifferentURL(t *testing.T) {
	candidates := []model.Candidate{
		{Title: "Same Title", URL: "https://example.com/a", Source: "arXiv"},
		{Title: "Same Title", URL: "https://example.com/b", Source: "arXiv"},
		{Title: "Same Title", Source: "Crossref"}, // empty URL is its own key
	}

	unique := Dedupe(candidates)
	if len(unique) != 3 {
		t.Errorf("Expected 3 candidates with distinct identity keys, got %d", len(unique))
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	candidates := []model.Candidate{
		{Title: "A", URL: "https://example.com/a", Source: "arXiv"},
		{Title: "B", Source: "Crossref"},
		{Title: "A", URL: "https://example.com/a", Source: "OpenAlex"},
	}

	once := Dedupe(candidates)
	twice := Dedupe(once)

	if len(once) != len(twice) {
		t.Fatalf("Dedupe not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("Element %d changed on second pass: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestDedupe_Empty(t *testing.T) {
	if got := Dedupe(nil); len(got) != 0 {
		t.Errorf("Expected empty result for nil input, got %d", len(got))
	}
	// Candidates with no text at all never survive
	got := Dedupe([]model.Candidate{{Source: "arXiv"}})
	if len(got) != 0 {
		t.Errorf("Expected empty-text candidate to be dropped, got %d", len(got))
	}
}
