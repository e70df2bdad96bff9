// Package controller implements the Presentation Controller: the
// runtime orchestrator binding the ASR stream, the bounded audio ring
// buffer, the similarity engine, and the keystroke emitter into the
// three-thread capture/decode/navigate loop.
package controller

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"moves/internal/asr"
	"moves/internal/keyemit"
	"moves/internal/micaudio"
	"moves/pkg/section"
	"moves/pkg/similarity"
	"moves/pkg/textnorm"
)

// WindowSize is the default recent-words window length W.
const WindowSize = 12

const pollInterval = time.Millisecond
const joinTimeout = time.Second
const interKeyDelay = 10 * time.Millisecond

// State is one of the controller's three coarse runtime states plus the
// terminal Stopped state.
type State int

const (
	StateInitializing State = iota
	StateListening
	StateNavigating
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateListening:
		return "listening"
	case StateNavigating:
		return "navigating"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Controller owns every piece of shared mutable state the three worker
// threads touch and the collaborators (ASR stream, audio capture, the
// similarity engine, the keystroke emitter) they drive.
type Controller struct {
	windowSize int
	engine     *similarity.Engine
	chunks     []section.Chunk
	sections   []section.Section
	keys       keyemit.Emitter

	capture *micaudio.Capture
	stream  *asr.Stream

	shutdown chan struct{}
	once     sync.Once

	// stateMu guards current_section, previous_recent_words, and
	// navigator_working; the navigator thread holds it for the entire
	// navigation step, and the supervised-override writers take it too,
	// per spec.md's single-writer-plus-mutex discipline.
	stateMu            sync.Mutex
	currentSection     section.Section
	previousRecentWords []string
	navigatorWorking   bool

	paused atomic.Bool
	state  atomic.Int32

	// recentWords is the decode thread's single-writer bounded deque,
	// read by the navigator thread under its own mutex.
	recentMu    sync.Mutex
	recentWords []string
}

// New constructs a Controller ready to run Control. sections must be
// non-empty and startSection must be present in sections.
func New(sections []section.Section, startSection section.Section, engine *similarity.Engine, keys keyemit.Emitter, windowSize int) *Controller {
	if windowSize == 0 {
		windowSize = WindowSize
	}
	c := &Controller{
		windowSize:     windowSize,
		engine:         engine,
		sections:       sections,
		chunks:         section.GenerateChunks(sections, windowSize),
		keys:           keys,
		shutdown:       make(chan struct{}),
		currentSection: startSection,
	}
	c.state.Store(int32(StateInitializing))
	return c
}

// State reports the controller's current coarse state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// CurrentSection returns a snapshot of the section currently believed
// to be under discussion.
func (c *Controller) CurrentSection() section.Section {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.currentSection
}

// Control starts the capture, decode, and navigate threads, blocks until
// ctx is cancelled, and then tears everything down in the order spec.md
// §4.5 requires: threads joined (1s timeout each), audio device released
// last.
func (c *Controller) Control(ctx context.Context, asrStream *asr.Stream) error {
	c.stream = asrStream

	capture, err := micaudio.Start()
	if err != nil {
		c.state.Store(int32(StateStopped))
		return fmt.Errorf("controller: audio capture failed: %w", err)
	}
	c.capture = capture

	c.state.Store(int32(StateListening))
	log.Printf("[Controller] listening, window=%d", c.windowSize)

	errCh := make(chan error, 3)

	decodeDone := make(chan struct{})
	go func() {
		defer close(decodeDone)
		if err := c.decodeLoop(); err != nil {
			errCh <- err
			c.triggerShutdown()
		}
	}()

	navigateDone := make(chan struct{})
	go func() {
		defer close(navigateDone)
		if err := c.navigateLoop(); err != nil {
			errCh <- err
			c.triggerShutdown()
		}
	}()

	select {
	case <-ctx.Done():
		c.triggerShutdown()
	case <-c.shutdown:
	}

	for _, done := range []chan struct{}{decodeDone, navigateDone} {
		select {
		case <-done:
		case <-time.After(joinTimeout):
			log.Printf("[Controller] worker join timed out")
		}
	}

	c.capture.Stop()
	c.state.Store(int32(StateStopped))

	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// triggerShutdown closes the shutdown channel exactly once.
func (c *Controller) triggerShutdown() {
	c.once.Do(func() { close(c.shutdown) })
}

// Shutdown requests a clean stop from outside the run loop.
func (c *Controller) Shutdown() {
	c.triggerShutdown()
}

// decodeLoop pops frames from the capture ring buffer, feeds the ASR
// stream, and publishes the last W words of any changed partial
// transcript to recentWords. Sole writer to recentWords.
func (c *Controller) decodeLoop() error {
	for {
		select {
		case <-c.shutdown:
			return nil
		default:
		}

		frame, ok := c.capture.Pop()
		if !ok {
			select {
			case <-c.shutdown:
				return nil
			case <-time.After(pollInterval):
			}
			continue
		}

		text, changed, err := c.stream.AcceptWaveform(frame)
		if err != nil {
			return fmt.Errorf("controller: audio decode error: %w", err)
		}
		if !changed || text == "" {
			continue
		}

		normalized := textnorm.Normalize(text)
		words := strings.Fields(normalized)
		if len(words) > c.windowSize {
			words = words[len(words)-c.windowSize:]
		}
		if len(words) == 0 {
			continue
		}

		c.recentMu.Lock()
		if !equalWords(words, c.recentWords) {
			c.recentWords = append([]string(nil), words...)
		}
		c.recentMu.Unlock()
	}
}

// navigateLoop polls recentWords and runs the navigation step whenever
// it qualifies: full window, changed since the last processed snapshot,
// and no navigation already in progress. Sole writer to currentSection,
// previousRecentWords, navigatorWorking (together with any supervised
// override writer, serialized through stateMu).
func (c *Controller) navigateLoop() error {
	for {
		select {
		case <-c.shutdown:
			return nil
		default:
		}

		c.recentMu.Lock()
		words := append([]string(nil), c.recentWords...)
		c.recentMu.Unlock()

		if len(words) < c.windowSize || c.paused.Load() {
			if !c.wait() {
				return nil
			}
			continue
		}

		c.stateMu.Lock()
		shouldRun := !equalWords(words, c.previousRecentWords) && !c.navigatorWorking
		if shouldRun {
			c.navigatorWorking = true
		}
		current := c.currentSection
		c.stateMu.Unlock()

		if shouldRun {
			c.state.Store(int32(StateNavigating))
			if err := c.navigationStep(current, words); err != nil {
				return err
			}
			c.state.Store(int32(StateListening))
		}

		if !c.wait() {
			return nil
		}
	}
}

// wait sleeps for pollInterval, returning false if shutdown fires first.
func (c *Controller) wait() bool {
	select {
	case <-c.shutdown:
		return false
	case <-time.After(pollInterval):
		return true
	}
}

// navigationStep runs the eight-step decision documented in spec.md
// §4.5: candidate filtering, similarity comparison, keystroke emission,
// and the currentSection/previousRecentWords update. Always clears
// navigatorWorking on return, including on the "no candidates" soft
// skip.
func (c *Controller) navigationStep(current section.Section, words []string) (retErr error) {
	c.stateMu.Lock()
	defer func() {
		c.navigatorWorking = false
		c.stateMu.Unlock()
	}()
	// Re-read under the lock: a supervised override may have moved the
	// section since the step was claimed.
	current = c.currentSection

	candidates := section.CandidateChunks(current, c.chunks)
	if len(candidates) == 0 {
		return nil
	}

	query := strings.Join(words, " ")
	results, err := c.engine.Compare(context.Background(), query, candidates)
	if err != nil {
		return fmt.Errorf("controller: navigation execution error: %w", err)
	}
	if len(results) == 0 {
		return nil
	}

	best := results[0]
	target := best.Chunk.SourceSections[len(best.Chunk.SourceSections)-1]
	delta := target.SectionIndex - current.SectionIndex

	if delta != 0 {
		key := keyemit.KeyRight
		if delta < 0 {
			key = keyemit.KeyLeft
		}
		absDelta := delta
		if absDelta < 0 {
			absDelta = -absDelta
		}
		for i := 0; i < absDelta; i++ {
			if err := c.keys.Press(key); err != nil {
				return fmt.Errorf("controller: keystroke emission error: %w", err)
			}
			if i < absDelta-1 {
				time.Sleep(interKeyDelay)
			}
		}
	}

	log.Printf("[Controller] [%d/%d] speech -> %s", target.SectionIndex+1, len(c.sections), lastWords(words, 7))
	log.Printf("[Controller] match -> %s", lastWords(strings.Fields(best.Chunk.PartialContent), 7))

	c.currentSection = target
	c.previousRecentWords = append([]string(nil), words...)

	return nil
}

// Advance implements the supervised-override Right/Left keys: it moves
// currentSection by one, bounded, and emits the matching keystroke. It
// serializes with the navigator through stateMu, same as spec.md's
// "current_section writes must be serialized with the navigator via a
// single mutex" rule.
func (c *Controller) Advance(forward bool) error {
	c.stateMu.Lock()
	idx := c.currentSection.SectionIndex
	var next int
	if forward {
		next = idx + 1
		if next > len(c.sections)-1 {
			c.stateMu.Unlock()
			return nil
		}
	} else {
		next = idx - 1
		if next < 0 {
			c.stateMu.Unlock()
			return nil
		}
	}
	c.currentSection = c.sections[next]
	c.stateMu.Unlock()

	key := keyemit.KeyRight
	if !forward {
		key = keyemit.KeyLeft
	}
	if err := c.keys.Press(key); err != nil {
		return fmt.Errorf("controller: keystroke emission error: %w", err)
	}
	log.Printf("[Controller] override -> %d/%d", next+1, len(c.sections))
	return nil
}

// TogglePause flips the paused flag; the navigator thread skips its step
// while paused but capture and decode continue uninterrupted.
func (c *Controller) TogglePause() {
	paused := !c.paused.Load()
	c.paused.Store(paused)
	if paused {
		log.Printf("[Controller] paused")
	} else {
		log.Printf("[Controller] resumed")
	}
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lastWords(words []string, n int) string {
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}
