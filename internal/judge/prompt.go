package judge

import (
	"fmt"
	"strings"

	"github.com/ppiankov/veridex/internal/model"
)

// SystemPrompt is the fixed system message for every judgment request
const SystemPrompt = "You are a rigorous scientific fact-checking assistant."

// BuildPrompt constructs the deterministic fact-checking prompt: the claim
// verbatim, an enumerated evidence block and fixed instructions that restrict
// the judge to the supplied evidence. With no evidence the block is replaced
// by an explicit statement; the judge is still asked for a verdict.
func BuildPrompt(claim string, evidence []model.EvidenceItem) string {
	var context string
	if len(evidence) == 0 {
		context = "No relevant papers were found in the scientific APIs."
	} else {
		parts := make([]string, 0, len(evidence))
		for i, item := range evidence {
			url := item.URL
			if url == "" {
				url = "N/A"
			}
			parts = append(parts, fmt.Sprintf(
				"[Paper %d] Source: %s\nTitle: %s\nAbstract/snippet: %s\nURL: %s",
				i+1, sourceOrUnknown(item.Source), item.Title, item.Abstract, url))
		}
		context = strings.Join(parts, "\n\n")
	}

	return fmt.Sprintf(`You are a scientific fact-checking assistant.

Task:
Evaluate the factual claim below using ONLY the evidence provided from scientific papers.
Do NOT use any outside knowledge that is not in the evidence.

Claim:
"""%s"""


Evidence from retrieved papers:
%s


Instructions:
1. Decide if the claim is:
   - True
   - False
   - Mixed/Partially True
   - Uncertain (insufficient or conflicting evidence)

2. Write your answer in this structured format:

Verdict: <True/False/Mixed/Uncertain>

Confidence: <0-100>  (how confident you are in the verdict)

Explanation:
<2-5 sentences explaining your reasoning, directly citing the evidence above by paper number when possible.>
`, claim, context)
}

func sourceOrUnknown(source string) string {
	if source == "" {
		return "unknown"
	}
	return source
}
