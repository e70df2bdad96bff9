// Package section holds the presentation's segmented script (Section),
// the sliding-window text model derived from it (Chunk), and the pure
// windowing operations the similarity engine and controller consume.
package section

import (
	"sort"
	"strings"

	"moves/pkg/textnorm"
)

// Section is one slide's worth of spoken script. Immutable once produced
// by the Section Producer; indices are 0-based, contiguous, and strictly
// increasing in list order.
type Section struct {
	Content      string
	SectionIndex int
}

// Chunk is a W-word sliding window over the concatenated section
// contents. Immutable; derived in memory at session start and never
// mutated thereafter.
type Chunk struct {
	PartialContent string
	SourceSections []Section
}

// SimilarityResult pairs a Chunk with its fused similarity score.
type SimilarityResult struct {
	Chunk Chunk
	Score float64
}

type wordSource struct {
	word    string
	section Section
}

// GenerateChunks flattens all sections into a (word, owning section)
// sequence and slides a window of exactly W words one step at a time. If
// the total word count is less than W, it returns an empty slice.
func GenerateChunks(sections []Section, windowSize int) []Chunk {
	var words []wordSource
	for _, s := range sections {
		for _, w := range strings.Fields(s.Content) {
			words = append(words, wordSource{word: w, section: s})
		}
	}

	if len(words) < windowSize {
		return nil
	}

	chunks := make([]Chunk, 0, len(words)-windowSize+1)
	for i := 0; i+windowSize <= len(words); i++ {
		window := words[i : i+windowSize]
		chunks = append(chunks, buildChunk(window))
	}
	return chunks
}

func buildChunk(window []wordSource) Chunk {
	tokens := make([]string, len(window))
	seen := make(map[int]Section)
	for i, w := range window {
		tokens[i] = w.word
		seen[w.section.SectionIndex] = w.section
	}

	sections := make([]Section, 0, len(seen))
	for _, s := range seen {
		sections = append(sections, s)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].SectionIndex < sections[j].SectionIndex
	})

	return Chunk{
		PartialContent: textnorm.Normalize(strings.Join(tokens, " ")),
		SourceSections: sections,
	}
}

// CandidateChunks returns the subset of allChunks admissible for
// comparison against the current section: every section a chunk touches
// must fall within the inclusive window [i-2, i+2], and chunks wholly
// contained in a single boundary section (index exactly i-2 or i+2) are
// rejected as weak edge evidence.
func CandidateChunks(current Section, allChunks []Chunk) []Chunk {
	lo := current.SectionIndex - 2
	hi := current.SectionIndex + 2

	var candidates []Chunk
	for _, c := range allChunks {
		if !withinWindow(c, lo, hi) {
			continue
		}
		if isBoundarySingleton(c, lo, hi) {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

func withinWindow(c Chunk, lo, hi int) bool {
	for _, s := range c.SourceSections {
		if s.SectionIndex < lo || s.SectionIndex > hi {
			return false
		}
	}
	return true
}

func isBoundarySingleton(c Chunk, lo, hi int) bool {
	if len(c.SourceSections) != 1 {
		return false
	}
	idx := c.SourceSections[0].SectionIndex
	return idx == lo || idx == hi
}

// Record is the persisted shape of a Section in sections.json.
type Record struct {
	Content      string `json:"content"`
	SectionIndex int    `json:"section_index"`
}

// ConvertToList converts Sections into their persisted representation.
func ConvertToList(sections []Section) []Record {
	out := make([]Record, len(sections))
	for i, s := range sections {
		out[i] = Record{Content: s.Content, SectionIndex: s.SectionIndex}
	}
	return out
}

// ConvertToObjects is the inverse of ConvertToList.
func ConvertToObjects(list []Record) []Section {
	out := make([]Section, len(list))
	for i, l := range list {
		out[i] = Section{Content: l.Content, SectionIndex: l.SectionIndex}
	}
	return out
}
