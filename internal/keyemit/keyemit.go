// Package keyemit synthesizes the Right/Left arrow keystrokes the
// Presentation Controller uses to navigate the slide deck, targeted at
// whichever window currently has focus.
package keyemit

// Key identifies one of the two keys the controller ever emits.
type Key int

const (
	KeyRight Key = iota
	KeyLeft
)

// Emitter synthesizes a single key press+release event at the OS level.
// Per spec.md §4.5's failure semantics, a failing Press is always fatal
// to the session — a desynchronized slide state is worse than stopping.
type Emitter interface {
	Press(key Key) error
}
