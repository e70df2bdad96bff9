//go:build linux

package keyemit

/*
#cgo LDFLAGS: -lX11 -lXtst
#include <X11/Xlib.h>
#include <X11/extensions/XTest.h>
#include <X11/keysym.h>
*/
import "C"

import "fmt"

// X11Emitter emits keystrokes via the XTEST extension, grounded on the
// teacher's OS-specific-backend-behind-a-build-tag idiom (the same
// structural pattern as its coreaudio_darwin.go / coreaudio_other.go
// split).
type X11Emitter struct {
	display *C.Display
}

var _ Emitter = (*X11Emitter)(nil)

// NewX11Emitter opens a connection to the default X display.
func NewX11Emitter() (*X11Emitter, error) {
	display := C.XOpenDisplay(nil)
	if display == nil {
		return nil, fmt.Errorf("keyemit: unable to open X display")
	}
	return &X11Emitter{display: display}, nil
}

// Press synthesizes a key press immediately followed by a release.
func (e *X11Emitter) Press(key Key) error {
	var keysym C.KeySym
	switch key {
	case KeyRight:
		keysym = C.XK_Right
	case KeyLeft:
		keysym = C.XK_Left
	default:
		return fmt.Errorf("keyemit: unknown key %v", key)
	}

	keycode := C.XKeysymToKeycode(e.display, keysym)
	if keycode == 0 {
		return fmt.Errorf("keyemit: no keycode for key %v", key)
	}

	if C.XTestFakeKeyEvent(e.display, C.uint(keycode), C.True, 0) == 0 {
		return fmt.Errorf("keyemit: press failed for key %v", key)
	}
	C.XFlush(e.display)
	if C.XTestFakeKeyEvent(e.display, C.uint(keycode), C.False, 0) == 0 {
		return fmt.Errorf("keyemit: release failed for key %v", key)
	}
	C.XFlush(e.display)
	return nil
}

// Close releases the X display connection.
func (e *X11Emitter) Close() {
	if e.display != nil {
		C.XCloseDisplay(e.display)
		e.display = nil
	}
}
