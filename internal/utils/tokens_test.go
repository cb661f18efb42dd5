package utils

import "testing"

func TestCountTokensHeuristic(t *testing.T) {
	if got := CountTokens(""); got != 0 {
		t.Fatalf("empty text should be 0 tokens, got %d", got)
	}
	if got := CountTokens("ab"); got != 1 {
		t.Fatalf("non-empty text should be at least 1 token, got %d", got)
	}
	if got := CountTokens("abcdefgh"); got != 2 {
		t.Fatalf("8 chars should be ~2 tokens, got %d", got)
	}
}

func TestTruncateToTokenLimit(t *testing.T) {
	text := "abcdefghij"
	if got := TruncateToTokenLimit(text, 0); got != "" {
		t.Fatalf("limit 0 should truncate to empty, got %q", got)
	}
	if got := TruncateToTokenLimit(text, 1); got != "abcd" {
		t.Fatalf("limit 1 should keep 4 chars, got %q", got)
	}
	if got := TruncateToTokenLimit(text, 100); got != text {
		t.Fatalf("large limit should keep text intact, got %q", got)
	}
}
