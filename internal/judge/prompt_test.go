package judge

import (
	"strings"
	"testing"

	"github.com/ppiankov/veridex/internal/model"
)

func TestBuildPrompt_WithEvidence(t *testing.T) {
	evidence := []model.EvidenceItem{
		{Title: "Paper A", Abstract: "Findings A", URL: "https://doi.org/10.1/a", Source: "EuropePMC"},
		{Title: "Paper B", Abstract: "Findings B", Source: "arXiv"},
	}

	prompt := BuildPrompt(`Coffee reduces "all" mortality`, evidence)

	if !strings.Contains(prompt, `"""Coffee reduces "all" mortality"""`) {
		t.Error("Expected claim verbatim inside triple quotes")
	}
	if !strings.Contains(prompt, "[Paper 1] Source: EuropePMC") {
		t.Error("Expected 1-indexed evidence block")
	}
	if !strings.Contains(prompt, "[Paper 2] Source: arXiv") {
		t.Error("Expected second paper entry")
	}
	if !strings.Contains(prompt, "URL: https://doi.org/10.1/a") {
		t.Error("Expected paper URL in evidence block")
	}
	if !strings.Contains(prompt, "URL: N/A") {
		t.Error("Expected N/A placeholder for missing URL")
	}
	if !strings.Contains(prompt, "Do NOT use any outside knowledge") {
		t.Error("Expected evidence-only instruction")
	}
	if !strings.Contains(prompt, "Verdict: <True/False/Mixed/Uncertain>") {
		t.Error("Expected structured output instructions")
	}
}

func TestBuildPrompt_NoEvidence(t *testing.T) {
	prompt := BuildPrompt("Water boils at 50°C at sea level", nil)

	if !strings.Contains(prompt, "No relevant papers were found") {
		t.Error("Expected explicit no-evidence context")
	}
	if strings.Contains(prompt, "[Paper 1]") {
		t.Error("Did not expect an evidence entry")
	}
	if !strings.Contains(prompt, "Confidence: <0-100>") {
		t.Error("Expected confidence instruction even without evidence")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	evidence := []model.EvidenceItem{{Title: "T", Abstract: "A", Source: "Crossref"}}
	if BuildPrompt("claim", evidence) != BuildPrompt("claim", evidence) {
		t.Error("Expected identical prompts for identical input")
	}
}
