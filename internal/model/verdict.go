package model

// Label categorizes the judge's verdict on a claim
type Label string

const (
	LabelTrue      Label = "true"      // Evidence supports the claim
	LabelFalse     Label = "false"     // Evidence contradicts the claim
	LabelMixed     Label = "mixed"     // Partially true / mixed evidence
	LabelUncertain Label = "uncertain" // Insufficient or conflicting evidence
	LabelUnknown   Label = "unknown"   // No recognizable verdict in the judge output
)

// VerdictResult is the structured form extracted from the judge's free text.
// Confidence is nil when no parseable confidence pattern was found; the value
// is deliberately not clamped to [0,100] (see internal/verdict).
type VerdictResult struct {
	Label       Label  `json:"label"`
	Explanation string `json:"explanation"`          // Full judge text, trimmed
	Confidence  *int   `json:"confidence,omitempty"` // 1-3 digit integer, unclamped
}

// Analysis is the complete result of one fact-checking run for a claim.
// TruthScore mirrors Confidence; the original frontend used it to drive a
// progress bar.
type Analysis struct {
	Claim      string         `json:"claim"`
	Verdict    string         `json:"verdict"` // Full judge explanation text
	Label      Label          `json:"label"`
	Confidence *int           `json:"confidence,omitempty"`
	TruthScore *int           `json:"truth_score,omitempty"`
	Papers     []EvidenceItem `json:"papers"`
}
