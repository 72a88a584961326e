package model

// Candidate represents one piece of evidence fetched from a literature source,
// before ranking. At least one of Title/Abstract is non-empty; adapters drop
// records where both are blank after cleaning.
type Candidate struct {
	Title    string `json:"title"`               // Cleaned title (may be empty)
	Abstract string `json:"abstract"`            // Cleaned abstract (may be empty)
	URL      string `json:"url,omitempty"`       // Link to the paper, if one could be built
	Source   string `json:"source"`              // Name of the adapter that produced it
}

// Empty reports whether the candidate carries no usable text.
func (c Candidate) Empty() bool {
	return c.Title == "" && c.Abstract == ""
}

// EvidenceItem is a ranked candidate prepared for presentation and judgment,
// with its abstract truncated to the configured snippet length.
type EvidenceItem struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	URL      string `json:"url,omitempty"`
	Source   string `json:"source"`
}
