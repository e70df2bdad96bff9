package textnorm

import (
	"strings"
	"testing"
)

func TestNormalizeQuotesAndNumbers(t *testing.T) {
	got := Normalize("“Hello” 21 tests")
	want := "\"hello\" twenty one tests"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World! 2026",
		"it's \"quoted\" — text with 007 digits",
		"  multiple   spaces  ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
		if strings.Contains(twice, "  ") {
			t.Errorf("Normalize(%q) has a run of two spaces: %q", in, twice)
		}
		for _, r := range twice {
			if r >= '0' && r <= '9' {
				t.Errorf("Normalize(%q) contains digit: %q", in, twice)
			}
			if r < 0x20 {
				t.Errorf("Normalize(%q) contains control char: %q", in, twice)
			}
		}
	}
}

func TestNormalizeStripsEmoji(t *testing.T) {
	got := Normalize("hello \U0001F600 world")
	want := "hello world"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeCollapsesPunctuation(t *testing.T) {
	got := Normalize("one, two; three!")
	want := "one two three"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizePreservesAccentedAndCJKText(t *testing.T) {
	got := Normalize("Café naïve café, 北京欢迎你!")
	want := "café naïve café 北京欢迎你"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestCardinalWords(t *testing.T) {
	cases := map[string]string{
		"0":    "zero",
		"7":    "seven",
		"21":   "twenty one",
		"100":  "one hundred",
		"1000": "one thousand",
		"1999": "one thousand nine hundred ninety nine",
	}
	for digits, want := range cases {
		if got := cardinalWords(digits); got != want {
			t.Errorf("cardinalWords(%q) = %q, want %q", digits, got, want)
		}
	}
}
