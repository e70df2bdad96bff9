// Package speaker owns Speaker CRUD and the offline "process" step that
// turns a speaker's presentation/transcript PDF pair into a persisted
// Section sequence via the Section Producer. Grounded on the Python
// original's SpeakerManager, ported onto datahandler's filesystem
// gateway.
package speaker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"moves/internal/datahandler"
	"moves/internal/idgen"
	"moves/internal/sectionproducer"
	"moves/pkg/section"
)

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

const speakersDir = "speakers"

// Speaker is one registered presenter's profile: a name, a generated
// speaker_id, and the absolute paths to the source PDFs supplied at
// add/edit time.
type Speaker struct {
	Name               string `json:"name"`
	SpeakerID          string `json:"speaker_id"`
	SourcePresentation string `json:"source_presentation"`
	SourceTranscript   string `json:"source_transcript"`
}

func speakerPath(id string) string {
	return filepath.Join(speakersDir, id)
}

// Add registers a new speaker. It rejects a name that collides with an
// existing speaker_id, matching the original's validation rule.
func Add(name, sourcePresentation, sourceTranscript string) (Speaker, error) {
	existing, err := List()
	if err != nil {
		return Speaker{}, err
	}
	for _, s := range existing {
		if s.SpeakerID == name {
			return Speaker{}, fmt.Errorf("speaker: name %q collides with an existing speaker_id", name)
		}
	}

	absPresentation, err := filepath.Abs(sourcePresentation)
	if err != nil {
		return Speaker{}, fmt.Errorf("speaker: resolve presentation path %q: %w", sourcePresentation, err)
	}
	absTranscript, err := filepath.Abs(sourceTranscript)
	if err != nil {
		return Speaker{}, fmt.Errorf("speaker: resolve transcript path %q: %w", sourceTranscript, err)
	}

	sp := Speaker{
		Name:               name,
		SpeakerID:          idgen.GenerateSpeakerID(name),
		SourcePresentation: absPresentation,
		SourceTranscript:   absTranscript,
	}
	if err := persist(sp); err != nil {
		return Speaker{}, err
	}
	return sp, nil
}

// Edit updates a speaker's source file paths in place. Empty strings
// leave the corresponding field unchanged.
func Edit(sp Speaker, sourcePresentation, sourceTranscript string) (Speaker, error) {
	if sourcePresentation != "" {
		abs, err := filepath.Abs(sourcePresentation)
		if err != nil {
			return Speaker{}, fmt.Errorf("speaker: resolve presentation path %q: %w", sourcePresentation, err)
		}
		sp.SourcePresentation = abs
	}
	if sourceTranscript != "" {
		abs, err := filepath.Abs(sourceTranscript)
		if err != nil {
			return Speaker{}, fmt.Errorf("speaker: resolve transcript path %q: %w", sourceTranscript, err)
		}
		sp.SourceTranscript = abs
	}
	if err := persist(sp); err != nil {
		return Speaker{}, err
	}
	return sp, nil
}

func persist(sp Speaker) error {
	data, err := json.MarshalIndent(sp, "", "    ")
	if err != nil {
		return fmt.Errorf("speaker: marshal %s: %w", sp.SpeakerID, err)
	}
	if err := datahandler.Write(filepath.Join(speakerPath(sp.SpeakerID), "speaker.json"), data); err != nil {
		return fmt.Errorf("speaker: persist %s: %w", sp.SpeakerID, err)
	}
	return nil
}

// List returns every registered speaker, in directory-listing order.
func List() ([]Speaker, error) {
	entries, err := datahandler.List(speakersDir)
	if err != nil {
		return nil, fmt.Errorf("speaker: list: %w", err)
	}

	var speakers []Speaker
	for _, e := range entries {
		if e[len(e)-1] != '/' {
			continue
		}
		id := e[:len(e)-1]
		data, err := datahandler.Read(filepath.Join(speakerPath(id), "speaker.json"))
		if err != nil {
			continue
		}
		var sp Speaker
		if err := json.Unmarshal(data, &sp); err != nil {
			continue
		}
		speakers = append(speakers, sp)
	}
	return speakers, nil
}

// ResolveKind tags a Resolve result as not-found, a unique match, or an
// ambiguous match across several speakers sharing a display name.
type ResolveKind int

const (
	ResolveNotFound ResolveKind = iota
	ResolveUnique
	ResolveAmbiguous
)

// ResolveResult is the tagged-union result of Resolve.
type ResolveResult struct {
	Kind    ResolveKind
	Speaker Speaker
	Matches []Speaker
}

// Resolve looks up a speaker by exact speaker_id first, then by display
// name. A name shared by several speakers (distinct IDs) yields
// ResolveAmbiguous with every match.
func Resolve(pattern string) (ResolveResult, error) {
	speakers, err := List()
	if err != nil {
		return ResolveResult{}, err
	}

	for _, sp := range speakers {
		if sp.SpeakerID == pattern {
			return ResolveResult{Kind: ResolveUnique, Speaker: sp}, nil
		}
	}

	var matches []Speaker
	for _, sp := range speakers {
		if strings.EqualFold(sp.Name, pattern) {
			matches = append(matches, sp)
		}
	}
	switch len(matches) {
	case 0:
		return ResolveResult{Kind: ResolveNotFound}, nil
	case 1:
		return ResolveResult{Kind: ResolveUnique, Speaker: matches[0]}, nil
	default:
		return ResolveResult{Kind: ResolveAmbiguous, Matches: matches}, nil
	}
}

// Delete removes a speaker's entire directory, including any cached PDFs
// and sections.json.
func Delete(sp Speaker) error {
	if err := datahandler.Delete(speakerPath(sp.SpeakerID)); err != nil {
		return fmt.Errorf("speaker: delete %s: %w", sp.SpeakerID, err)
	}
	return nil
}

// SectionsPath returns sp's sections.json path relative to the data
// root.
func SectionsPath(sp Speaker) string {
	return filepath.Join(speakerPath(sp.SpeakerID), "sections.json")
}

// LoadSections reads and decodes sp's processed Section sequence. It
// returns an actionable error if process has not yet been run.
func LoadSections(sp Speaker) ([]section.Section, error) {
	data, err := datahandler.Read(SectionsPath(sp))
	if err != nil {
		return nil, fmt.Errorf("speaker: %s has not been processed yet (run `speaker process %s` first): %w", sp.Name, sp.SpeakerID, err)
	}
	var records []section.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("speaker: decode sections for %s: %w", sp.SpeakerID, err)
	}
	return section.ConvertToObjects(records), nil
}

// Process runs the Section Producer for sp: it prefers sp's source PDFs
// if they still exist, copying and caching them as presentation.pdf /
// transcript.pdf, and otherwise falls back to any previously cached
// copies. The resulting Section sequence is persisted as sections.json.
func Process(ctx context.Context, producer *sectionproducer.Producer, sp Speaker) (sectionproducer.ProcessResult, error) {
	presentationPath, presentationFrom, err := resolveInput(sp.SourcePresentation, sp.SpeakerID, "presentation.pdf")
	if err != nil {
		return sectionproducer.ProcessResult{}, fmt.Errorf("speaker: %s: %w", sp.Name, err)
	}
	transcriptPath, transcriptFrom, err := resolveInput(sp.SourceTranscript, sp.SpeakerID, "transcript.pdf")
	if err != nil {
		return sectionproducer.ProcessResult{}, fmt.Errorf("speaker: %s: %w", sp.Name, err)
	}

	sections, err := producer.GenerateSections(ctx, presentationPath, transcriptPath)
	if err != nil {
		return sectionproducer.ProcessResult{}, fmt.Errorf("speaker: process %s: %w", sp.Name, err)
	}

	records := section.ConvertToList(sections)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return sectionproducer.ProcessResult{}, fmt.Errorf("speaker: marshal sections for %s: %w", sp.Name, err)
	}
	if err := datahandler.Write(SectionsPath(sp), data); err != nil {
		return sectionproducer.ProcessResult{}, fmt.Errorf("speaker: write sections for %s: %w", sp.Name, err)
	}

	return sectionproducer.ProcessResult{
		SectionCount:     len(sections),
		TranscriptFrom:   transcriptFrom,
		PresentationFrom: presentationFrom,
	}, nil
}

// resolveInput picks sourcePath if it exists (copying it into the
// speaker's cache under cacheName), falling back to an already-cached
// copy. sourcePath, when set, is expected to already be absolute (Add and
// Edit resolve it before persisting), since it may live anywhere on disk,
// not just under the data root. resolveInput itself returns an absolute
// filesystem path, not one relative to the data root, since sectionproducer
// opens files directly.
func resolveInput(sourcePath, speakerID, cacheName string) (string, sectionproducer.SourceKind, error) {
	if sourcePath != "" && fileExists(sourcePath) {
		relDir := speakerPath(speakerID)
		base := filepath.Base(sourcePath)
		if err := datahandler.CopyFrom(sourcePath, relDir); err != nil {
			return "", "", fmt.Errorf("cache source file: %w", err)
		}
		if base != cacheName {
			cachedRel := filepath.Join(relDir, cacheName)
			if cachedAbs, err := absDataPath(cachedRel); err == nil && fileExists(cachedAbs) {
				if err := datahandler.Delete(cachedRel); err != nil {
					return "", "", fmt.Errorf("replace cached file: %w", err)
				}
			}
			if _, err := datahandler.Rename(filepath.Join(relDir, base), cacheName); err != nil {
				return "", "", fmt.Errorf("rename cached file: %w", err)
			}
		}
		abs, err := absDataPath(filepath.Join(relDir, cacheName))
		if err != nil {
			return "", "", err
		}
		return abs, sectionproducer.SourceFromSource, nil
	}

	cachedRel := filepath.Join(speakerPath(speakerID), cacheName)
	abs, err := absDataPath(cachedRel)
	if err != nil {
		return "", "", err
	}
	if !fileExists(abs) {
		return "", "", fmt.Errorf("missing %s (no source path and no cached copy)", cacheName)
	}
	return abs, sectionproducer.SourceFromLocal, nil
}

func absDataPath(rel string) (string, error) {
	root, err := datahandler.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}
