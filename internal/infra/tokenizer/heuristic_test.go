package tokenizer

import (
	"strings"
	"testing"
)

func TestHeuristic_EstimateTokens(t *testing.T) {
	est := NewHeuristic(4)

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "empty input",
			input: "",
			want:  0,
		},
		{
			name:  "exact multiple",
			input: strings.Repeat("a", 400),
			want:  100,
		},
		{
			name:  "rounds up",
			input: strings.Repeat("a", 401),
			want:  101,
		},
		{
			name:  "single rune",
			input: "a",
			want:  1,
		},
		{
			name:  "multibyte counted as runes not bytes",
			input: strings.Repeat("日", 8),
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := est.EstimateTokens(tt.input); got != tt.want {
				t.Errorf("EstimateTokens() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHeuristic_RunesForTokens(t *testing.T) {
	est := NewHeuristic(4)

	if got := est.RunesForTokens(1024); got != 4096 {
		t.Errorf("RunesForTokens(1024) = %d, want 4096", got)
	}
	if got := est.RunesForTokens(0); got != 0 {
		t.Errorf("RunesForTokens(0) = %d, want 0", got)
	}
	if got := est.RunesForTokens(-5); got != 0 {
		t.Errorf("RunesForTokens(-5) = %d, want 0", got)
	}
}

func TestHeuristic_RoundTripNeverOverflows(t *testing.T) {
	// Text sized by RunesForTokens must estimate back within budget.
	est := NewHeuristic(4)
	for _, tokens := range []int{1, 7, 128, 1024} {
		runes := est.RunesForTokens(tokens)
		text := strings.Repeat("x", runes)
		if got := est.EstimateTokens(text); got > tokens {
			t.Errorf("EstimateTokens(%d runes) = %d tokens, exceeds budget %d", runes, got, tokens)
		}
	}
}

func TestHeuristic_DefaultRatio(t *testing.T) {
	est := NewHeuristic(0)
	if got := est.RunesForTokens(10); got != 10*DefaultRunesPerToken {
		t.Errorf("RunesForTokens(10) = %d, want %d", got, 10*DefaultRunesPerToken)
	}
}
