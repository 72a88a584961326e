package textutil

import (
	"strings"

	"golang.org/x/net/html"
)

// Clean strips markup tags from s, collapses runs of whitespace to single
// spaces and trims the ends. Crossref abstracts arrive as JATS fragments and
// Europe PMC titles occasionally carry inline HTML, so every title/abstract
// field passes through here before it becomes a Candidate.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		s = stripMarkup(s)
	}
	return Collapse(s)
}

// Collapse normalizes whitespace: consecutive spaces, tabs and newlines
// become a single space, leading/trailing whitespace is removed.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Snippet truncates s to at most n runes, appending "..." when it was cut.
func Snippet(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// stripMarkup walks the tokenized fragment and keeps only text content.
// The tokenizer also decodes entities, which regex-based stripping would miss.
func stripMarkup(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var buf strings.Builder
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			buf.Write(z.Text())
			buf.WriteByte(' ')
		}
	}
	return buf.String()
}
