// Package idgen generates the speaker_id format: the given name's words
// lowercased and hyphen-joined, followed by a random 5-character
// alphanumeric suffix.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

const suffixLength = 5

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSpeakerID derives a speaker_id from a display name, e.g.
// "Test User" -> "test-user-a1b2c".
func GenerateSpeakerID(name string) string {
	words := strings.Fields(strings.ToLower(name))
	slug := strings.Join(words, "-")
	if slug == "" {
		slug = "speaker"
	}
	return slug + "-" + randomSuffix()
}

// randomSuffix derives a 5-character alphanumeric suffix from a fresh
// UUID's random bits, avoiding a direct math/rand dependency since
// google/uuid already pulls a CSPRNG-backed generator into the module.
func randomSuffix() string {
	id := uuid.New()
	raw := id[:]

	b := make([]byte, suffixLength)
	for i := range b {
		b[i] = suffixAlphabet[int(raw[i])%len(suffixAlphabet)]
	}
	return string(b)
}
