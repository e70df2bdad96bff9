package controller

import (
	"testing"

	"moves/internal/keyemit"
	"moves/pkg/embeddings/mock"
	"moves/pkg/section"
	"moves/pkg/semantic"
	"moves/pkg/similarity"
)

type recordingEmitter struct {
	presses []keyemit.Key
}

func (r *recordingEmitter) Press(key keyemit.Key) error {
	r.presses = append(r.presses, key)
	return nil
}

func testSections() []section.Section {
	return []section.Section{
		{Content: "the quick brown fox jumps over the lazy dog every single morning", SectionIndex: 0},
		{Content: "meanwhile the cat sleeps soundly on the warm windowsill all afternoon long", SectionIndex: 1},
		{Content: "finally the sun sets behind the hills and the stars begin to shine", SectionIndex: 2},
	}
}

func newTestEngine() *similarity.Engine {
	return similarity.New(semantic.New(mock.New(16)))
}

func TestNewGeneratesChunks(t *testing.T) {
	sections := testSections()
	c := New(sections, sections[0], newTestEngine(), &recordingEmitter{}, 6)
	if len(c.chunks) == 0 {
		t.Fatal("expected non-empty chunk list")
	}
	if c.State() != StateInitializing {
		t.Fatalf("State() = %v, want Initializing", c.State())
	}
}

func TestAdvanceBoundedAndEmitsKeystroke(t *testing.T) {
	sections := testSections()
	emitter := &recordingEmitter{}
	c := New(sections, sections[0], newTestEngine(), emitter, 6)

	if err := c.Advance(false); err != nil {
		t.Fatalf("Advance(false) at first section: %v", err)
	}
	if c.CurrentSection().SectionIndex != 0 {
		t.Fatalf("section regressed below 0: %v", c.CurrentSection())
	}
	if len(emitter.presses) != 0 {
		t.Fatalf("expected no keystroke for a no-op Advance, got %v", emitter.presses)
	}

	if err := c.Advance(true); err != nil {
		t.Fatalf("Advance(true): %v", err)
	}
	if c.CurrentSection().SectionIndex != 1 {
		t.Fatalf("CurrentSection() = %v, want index 1", c.CurrentSection())
	}
	if len(emitter.presses) != 1 || emitter.presses[0] != keyemit.KeyRight {
		t.Fatalf("presses = %v, want one KeyRight", emitter.presses)
	}

	c.Advance(true)
	if err := c.Advance(true); err != nil {
		t.Fatalf("Advance(true) at last section: %v", err)
	}
	if c.CurrentSection().SectionIndex != len(sections)-1 {
		t.Fatalf("section advanced past last: %v", c.CurrentSection())
	}
}

func TestTogglePause(t *testing.T) {
	c := New(testSections(), testSections()[0], newTestEngine(), &recordingEmitter{}, 6)
	if c.paused.Load() {
		t.Fatal("expected not paused initially")
	}
	c.TogglePause()
	if !c.paused.Load() {
		t.Fatal("expected paused after first toggle")
	}
	c.TogglePause()
	if c.paused.Load() {
		t.Fatal("expected resumed after second toggle")
	}
}

func TestNavigationStepNoCandidatesSkipsCleanly(t *testing.T) {
	sections := []section.Section{{Content: "short text here", SectionIndex: 0}}
	c := New(sections, sections[0], newTestEngine(), &recordingEmitter{}, 12)
	if err := c.navigationStep(sections[0], []string{"short", "text", "here"}); err != nil {
		t.Fatalf("navigationStep with no candidates: %v", err)
	}
	if c.navigatorWorking {
		t.Fatal("navigatorWorking left set after step")
	}
}

func TestEqualWords(t *testing.T) {
	if !equalWords([]string{"a", "b"}, []string{"a", "b"}) {
		t.Fatal("expected equal slices to compare equal")
	}
	if equalWords([]string{"a", "b"}, []string{"a", "c"}) {
		t.Fatal("expected differing slices to compare unequal")
	}
	if equalWords([]string{"a"}, []string{"a", "b"}) {
		t.Fatal("expected differing lengths to compare unequal")
	}
}

func TestLastWords(t *testing.T) {
	got := lastWords([]string{"one", "two", "three", "four"}, 2)
	if got != "three four" {
		t.Fatalf("lastWords = %q, want %q", got, "three four")
	}
	got = lastWords([]string{"one"}, 7)
	if got != "one" {
		t.Fatalf("lastWords = %q, want %q", got, "one")
	}
}
