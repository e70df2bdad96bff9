// Package phonetic implements the phonetic similarity metric: Double
// Metaphone encoding followed by a Levenshtein-derived ratio, with both
// stages memoized since the same chunk strings recur many times per
// second during live navigation.
package phonetic

import (
	"strings"

	"github.com/antzucaro/matchr"
	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize is the bound spec.md §4.3 mandates ("LRU, bounded
// capacity, e.g., 10k entries").
const defaultCacheSize = 10000

// Matcher computes phonetic similarity between a query string and a set
// of candidate strings. Safe for concurrent use.
type Matcher struct {
	codeCache  *lru.Cache[string, string]
	ratioCache *lru.Cache[[2]string, float64]
}

// New returns a Matcher with the spec-mandated LRU bound. Panics only if
// golang-lru itself rejects the (positive, fixed) size, which it never
// does for this constant.
func New() *Matcher {
	codeCache, err := lru.New[string, string](defaultCacheSize)
	if err != nil {
		panic(err)
	}
	ratioCache, err := lru.New[[2]string, float64](defaultCacheSize)
	if err != nil {
		panic(err)
	}
	return &Matcher{codeCache: codeCache, ratioCache: ratioCache}
}

// Code returns the Double Metaphone code for text with its primary and
// secondary codes concatenated and intra-code spaces stripped, memoized
// by input string.
func (m *Matcher) Code(text string) string {
	if cached, ok := m.codeCache.Get(text); ok {
		return cached
	}
	primary, secondary := matchr.DoubleMetaphone(text)
	code := strings.ReplaceAll(primary+secondary, " ", "")
	m.codeCache.Add(text, code)
	return code
}

// Ratio returns the Levenshtein-derived similarity ratio between two
// already-encoded phonetic codes, on [0,100], memoized by the code pair.
func (m *Matcher) Ratio(a, b string) float64 {
	key := [2]string{a, b}
	if cached, ok := m.ratioCache.Get(key); ok {
		return cached
	}
	ratio := fuzzRatio(a, b)
	m.ratioCache.Add(key, ratio)
	return ratio
}

// Score returns the phonetic similarity between query and candidate on
// [0,1]: Code both strings, then Ratio the codes, scaled down from
// [0,100].
func (m *Matcher) Score(query, candidate string) float64 {
	return m.Ratio(m.Code(query), m.Code(candidate)) / 100
}

// fuzzRatio is a Levenshtein-derived similarity ratio: 100 * (1 -
// distance / totalLength), on a scale of 0-100, where distance is
// matchr's unit-cost Levenshtein distance. A substitution counts as one
// edit, so for strings that differ by substitutions the ratio is higher
// than thefuzz's fuzz.ratio, which counts a substitution as two edits.
func fuzzRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	distance := matchr.Levenshtein(a, b)
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return float64(total-distance) / float64(total) * 100
}
