package text

import "testing"

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty string", text: "", want: 0},
		{name: "ascii text", text: "hello", want: 5},
		{name: "japanese text", text: "こんにちは", want: 5},
		{name: "mixed text", text: "hello世界", want: 7},
		{name: "text with emoji", text: "Hello👋", want: 6},
		{name: "whitespace counts", text: "a b", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountRunes(tt.text); got != tt.want {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty string", text: "", want: 0},
		{name: "single word", text: "hello", want: 1},
		{name: "multiple words", text: "the quick brown fox", want: 4},
		{name: "irregular spacing", text: "  the \n quick\tbrown  ", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.text); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty string", text: "", want: ""},
		{name: "already normalized", text: "a b c", want: "a b c"},
		{name: "collapses runs", text: "a   b\t\tc", want: "a b c"},
		{name: "newlines become spaces", text: "first line\nsecond line\n\nthird", want: "first line second line third"},
		{name: "trims edges", text: "  padded  ", want: "padded"},
		{name: "whitespace only", text: " \n\t ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSpace(tt.text); got != tt.want {
				t.Errorf("NormalizeSpace(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeSpace_Idempotent(t *testing.T) {
	input := "  The quick\nbrown fox.   It jumped. \t"

	once := NormalizeSpace(input)
	twice := NormalizeSpace(once)
	if once != twice {
		t.Errorf("NormalizeSpace not idempotent: %q != %q", once, twice)
	}
}
