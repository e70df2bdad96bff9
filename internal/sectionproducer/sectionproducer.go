// Package sectionproducer implements the offline Section Producer: given
// a slide-deck PDF and a transcript PDF, it extracts their text, asks an
// LLM to align the transcript to slides, and persists the resulting
// Section sequence as JSON.
package sectionproducer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"moves/internal/llm"
	"moves/pkg/section"
)

// SourceKind records whether a generate_sections input file came from a
// freshly supplied source path or was reused from the speaker's local
// cache (original_source/src/core/speaker_manager.py's process()).
type SourceKind string

const (
	SourceFromSource SourceKind = "SOURCE"
	SourceFromLocal  SourceKind = "LOCAL"
)

// ProcessResult is returned by a successful Section Producer run.
type ProcessResult struct {
	SectionCount     int
	TranscriptFrom   SourceKind
	PresentationFrom SourceKind
}

// systemPrompt instructs the LLM to emit exactly one JSON array of
// per-slide spoken-script strings, ordered to match the slide deck.
const systemPrompt = `You align a spoken transcript to a slide deck.
You will be given the slide deck's extracted text (each slide marked
"# Slide Page <k>") and the full transcript text. Respond with ONLY a
JSON array of strings, one per slide, in slide order. Each string is the
portion of the transcript spoken while that slide was on screen. The
array's length MUST equal the number of slides.`

// Producer generates Section sequences from a presentation/transcript
// PDF pair via an LLM.
type Producer struct {
	llmProvider llm.Provider
	model       string
}

// New returns a Producer that calls the given LLM provider and model for
// its single completion request.
func New(llmProvider llm.Provider, model string) *Producer {
	return &Producer{llmProvider: llmProvider, model: model}
}

// GenerateSections extracts text from both PDFs, calls the LLM for the
// ordered per-slide section list, and wraps each returned string into a
// Section with SectionIndex equal to its position.
func (p *Producer) GenerateSections(ctx context.Context, presentationPDF, transcriptPDF string) ([]section.Section, error) {
	presentationText, slideCount, err := extractPresentationText(presentationPDF)
	if err != nil {
		return nil, fmt.Errorf("section producer: extract presentation: %w", err)
	}

	transcriptText, err := extractPlainText(transcriptPDF)
	if err != nil {
		return nil, fmt.Errorf("section producer: extract transcript: %w", err)
	}

	resp, err := p.llmProvider.Complete(ctx, llm.CompletionRequest{
		Model: p.model,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "SLIDE DECK:\n" + presentationText + "\n\nTRANSCRIPT:\n" + transcriptText},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("section producer: llm call: %w", err)
	}

	var sectionStrings []string
	if err := json.Unmarshal([]byte(extractJSONArray(resp.Content)), &sectionStrings); err != nil {
		return nil, fmt.Errorf("section producer: decode llm response: %w", err)
	}
	if len(sectionStrings) != slideCount {
		return nil, fmt.Errorf("section producer: llm returned %d sections, want %d (one per slide)", len(sectionStrings), slideCount)
	}

	sections := make([]section.Section, len(sectionStrings))
	for i, s := range sectionStrings {
		sections[i] = section.Section{Content: s, SectionIndex: i}
	}
	return sections, nil
}

// extractJSONArray trims any prose an LLM might wrap around the JSON
// array (some models answer with "Here is the array:\n[...]" despite
// instructions) by slicing from the first '[' to the last ']'.
func extractJSONArray(s string) string {
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}

// extractPresentationText extracts a slide deck's text page by page,
// prefixing each page with "# Slide Page <k>\n" (0-indexed), and also
// returns the slide count the LLM's output length must match.
func extractPresentationText(path string) (string, int, error) {
	reader, closer, err := openPDF(path)
	if err != nil {
		return "", 0, err
	}
	defer closer.Close()

	var b strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("page %d: %w", i, err)
		}
		fmt.Fprintf(&b, "# Slide Page %d\n%s\n", i-1, text)
	}
	return b.String(), numPages, nil
}

// extractPlainText extracts a PDF's text page by page with no prefix.
func extractPlainText(path string) (string, error) {
	reader, closer, err := openPDF(path)
	if err != nil {
		return "", err
	}
	defer closer.Close()

	var b strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func openPDF(path string) (*pdf.Reader, *os.File, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return reader, f, nil
}
