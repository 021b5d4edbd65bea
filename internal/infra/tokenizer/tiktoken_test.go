package tokenizer

import (
	"strings"
	"testing"
)

func TestTiktoken_EstimateTokens(t *testing.T) {
	est, err := NewTiktoken("")
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}

	if got := est.EstimateTokens(""); got != 0 {
		t.Errorf("EstimateTokens(\"\") = %d, want 0", got)
	}

	// Exact counts vary by vocabulary version, so assert the shape:
	// non-empty text yields at least one token and longer text yields
	// more tokens than shorter text.
	short := est.EstimateTokens("Hello world")
	if short < 1 {
		t.Errorf("EstimateTokens(short) = %d, want >= 1", short)
	}

	long := est.EstimateTokens(strings.Repeat("Hello world. ", 50))
	if long <= short {
		t.Errorf("EstimateTokens(long) = %d, want > %d", long, short)
	}
}

func TestTiktoken_RunesForTokens(t *testing.T) {
	est, err := NewTiktoken("")
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}

	if got := est.RunesForTokens(100); got != 100*tiktokenRunesPerToken {
		t.Errorf("RunesForTokens(100) = %d, want %d", got, 100*tiktokenRunesPerToken)
	}
	if got := est.RunesForTokens(0); got != 0 {
		t.Errorf("RunesForTokens(0) = %d, want 0", got)
	}
}

func TestTiktoken_ConservativeBudget(t *testing.T) {
	est, err := NewTiktoken("")
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}

	// English prose sized to the rune budget must tokenize within the
	// token budget it was derived from.
	tokens := 200
	runes := est.RunesForTokens(tokens)
	sample := strings.Repeat("the quick brown fox jumps over the lazy dog ", 100)
	text := string([]rune(sample)[:runes])

	if got := est.EstimateTokens(text); got > tokens {
		t.Errorf("EstimateTokens(budgeted text) = %d, exceeds %d", got, tokens)
	}
}

func TestNewTiktoken_UnknownEncoding(t *testing.T) {
	if _, err := NewTiktoken("no-such-encoding"); err == nil {
		t.Error("NewTiktoken() expected error for unknown encoding")
	}
}
