// Package verdict extracts a structured result from the judge's free-text
// output. Judge output format is not contractually guaranteed, so parsing is
// best-effort and total: malformed input yields label "unknown" and a nil
// confidence instead of an error.
package verdict

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/veridex/internal/model"
)

var (
	verdictRe    = regexp.MustCompile(`(?i)Verdict:\s*(.+)`)
	confidenceRe = regexp.MustCompile(`(?i)Confidence:\s*([0-9]{1,3})`)
)

// fallbackChars bounds the label-determining fragment when no Verdict: line
// is present.
const fallbackChars = 50

// Parse extracts label, confidence and explanation from raw judge text.
// Confidence is deliberately not clamped to [0,100]; a judge answering 150 is
// reported as 150. The explanation is always the entire input, trimmed.
func Parse(text string) model.VerdictResult {
	fragment := text
	if m := verdictRe.FindStringSubmatch(text); m != nil {
		fragment = strings.TrimSpace(m[1])
	} else if len(fragment) > fallbackChars {
		fragment = fragment[:fallbackChars]
	}

	return model.VerdictResult{
		Label:       classify(fragment),
		Confidence:  parseConfidence(text),
		Explanation: strings.TrimSpace(text),
	}
}

// classify maps the verdict fragment to a label by keyword containment.
// "true" only counts when "false" is absent, so a fragment mentioning both
// reads as false. That asymmetry is long-standing observed behavior and is
// kept on purpose.
func classify(fragment string) model.Label {
	norm := strings.ToLower(fragment)

	switch {
	case strings.Contains(norm, "true") && !strings.Contains(norm, "false"):
		return model.LabelTrue
	case strings.Contains(norm, "false"):
		return model.LabelFalse
	case strings.Contains(norm, "mixed") || strings.Contains(norm, "partially"):
		return model.LabelMixed
	case strings.Contains(norm, "uncertain") || strings.Contains(norm, "insufficient"):
		return model.LabelUncertain
	default:
		return model.LabelUnknown
	}
}

func parseConfidence(text string) *int {
	m := confidenceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &value
}
