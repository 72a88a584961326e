package textutil

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Water boils at 100C", "Water boils at 100C"},
		{"html tags", "<p>Effects of <i>caffeine</i> on sleep</p>", "Effects of caffeine on sleep"},
		{"jats abstract", `<jats:p>Background: vitamin D <jats:italic>levels</jats:italic> vary.</jats:p>`, "Background: vitamin D levels vary."},
		{"whitespace runs", "too   many\n\nspaces\t here ", "too many spaces here"},
		{"entities", "fish &amp; chips", "fish & chips"},
		{"only tags", "<br/><hr/>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("short", 10); got != "short" {
		t.Errorf("Expected untruncated text, got %q", got)
	}
	if got := Snippet("abcdefghij", 10); got != "abcdefghij" {
		t.Errorf("Expected exact-length text untouched, got %q", got)
	}
	if got := Snippet("abcdefghijk", 10); got != "abcdefghij..." {
		t.Errorf("Expected truncation marker, got %q", got)
	}
	// Rune-safe truncation
	if got := Snippet("ααααα", 3); got != "ααα..." {
		t.Errorf("Expected rune-aware truncation, got %q", got)
	}
}
