// Package textnorm turns arbitrary spoken-script or live-transcript text
// into the canonical token stream the chunk producer and similarity engine
// compare against.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// digitRun matches one maximal run of ASCII digits.
var digitRun = regexp.MustCompile(`\d+`)

// nonWordChar matches anything that is not a letter, digit, whitespace,
// apostrophe, or quote mark. Go's RE2 \w is ASCII-only, so this is spelled
// with the Unicode letter/number classes to keep accented and non-Latin
// text intact, unlike the source's Python \w which is Unicode-aware by
// default.
var nonWordChar = regexp.MustCompile(`[^\p{L}\p{N}\s'"` + "`" + `]`)

// whitespaceRun collapses runs of whitespace to a single space.
var whitespaceRun = regexp.MustCompile(`\s+`)

// mojibake maps smart quotation marks, and their common UTF-8-decoded-as-
// Latin-1 mojibake forms, to ASCII ' and ". Ported from the source's
// str.maketrans table. Longer (mojibake) patterns are listed before the
// two-byte prefix they share, since Replacer resolves ties in argument
// order, not by longest match. Keys are in lowercase form because the
// text is lowercased before this step.
var mojibake = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "‛", "'",
	"“", "\"", "”", "\"", "‟", "\"",
	"â€˜", "'", "â€™", "'",
	"â€š", "'", "â€›", "'",
	"â€œ", "\"", "â€ÿ", "\"",
	"â€", "\"",
)

// Normalize is the Text Normalizer. Deterministic and idempotent: applying
// it twice yields the same result as applying it once, and the output
// never contains digits, control characters, or a run of two spaces.
func Normalize(input string) string {
	text := norm.NFC.String(strings.ToLower(input))
	text = stripPictographic(text)
	text = mojibake.Replace(text)
	text = digitRun.ReplaceAllStringFunc(text, func(m string) string {
		return cardinalWords(m)
	})
	text = nonWordChar.ReplaceAllString(text, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// pictographicRanges covers the emoji, dingbat, symbol, enclosed-
// alphanumeric, and regional-indicator blocks. Letters of any script,
// CJK included, fall outside every range and are kept. The ranges are in
// ascending order, which unicode.Is requires.
var pictographicRanges = &unicode.RangeTable{
	R32: []unicode.Range32{
		{Lo: 0x24C2, Hi: 0x24FF, Stride: 1},   // enclosed alphanumerics
		{Lo: 0x2702, Hi: 0x27B0, Stride: 1},   // dingbats
		{Lo: 0x1F100, Hi: 0x1F1DF, Stride: 1}, // enclosed alphanumeric supplement
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1}, // regional indicators
		{Lo: 0x1F200, Hi: 0x1F251, Stride: 1}, // enclosed ideographic supplement
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // symbols & pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport & map
	},
}

func stripPictographic(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(pictographicRanges, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
