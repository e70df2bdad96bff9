//go:build !linux

package keyemit

import "log"

// StubEmitter is the fallback backend on platforms with no corpus-
// grounded keystroke library (see DESIGN.md): it records the intended
// keystroke without emitting it.
type StubEmitter struct{}

var _ Emitter = (*StubEmitter)(nil)

// NewX11Emitter has no X11 backend outside Linux: it returns a
// StubEmitter, which logs keystrokes instead of emitting them.
func NewX11Emitter() (*StubEmitter, error) {
	return &StubEmitter{}, nil
}

// Press logs the keystroke that would have been emitted.
func (e *StubEmitter) Press(key Key) error {
	log.Printf("[KeyEmit] stub: would press %v", key)
	return nil
}

// Close is a no-op for the stub backend.
func (e *StubEmitter) Close() {}
