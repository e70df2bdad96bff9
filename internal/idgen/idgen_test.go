package idgen

import (
	"strings"
	"testing"
)

func TestGenerateSpeakerIDFormat(t *testing.T) {
	id := GenerateSpeakerID("Test User")
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("GenerateSpeakerID parts = %v, want 3 parts", parts)
	}
	if parts[0] != "test" || parts[1] != "user" {
		t.Fatalf("GenerateSpeakerID = %q, want prefix test-user-*", id)
	}
	if len(parts[2]) != suffixLength {
		t.Fatalf("suffix length = %d, want %d", len(parts[2]), suffixLength)
	}
	for _, r := range parts[2] {
		if !strings.ContainsRune(suffixAlphabet, r) {
			t.Fatalf("suffix %q contains non-alnum rune %q", parts[2], r)
		}
	}
}

func TestGenerateSpeakerIDUnique(t *testing.T) {
	a := GenerateSpeakerID("Jane Doe")
	b := GenerateSpeakerID("Jane Doe")
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
}
