package termbridge

import (
	"io"
	"sync"
)

// RawEventType classifies an event in the vocabulary of the underlying
// terminal input source, before abstraction.
type RawEventType uint8

const (
	// RawKey is a symbolic key press (Esc, arrows, Home, ...). Enter and
	// Tab arrive as RawChar '\n' and '\t', the way terminals report them.
	RawKey RawEventType = iota + 1
	// RawChar is a plain character press
	RawChar
	// RawCtrl is a character pressed with Ctrl held
	RawCtrl
	// RawAlt is a character pressed with Alt held
	RawAlt
	// RawFn is a function key press carrying its 1-based index
	RawFn
	// RawMousePress carries the button identity and 1-based coordinates
	RawMousePress
	// RawMouseRelease carries coordinates only; the wire protocol does
	// not say which button was let go
	RawMouseRelease
	// RawMouseHold is motion with a button held; coordinates only
	RawMouseHold
	// RawWheelUp and RawWheelDown are scroll wheel actions
	RawWheelUp
	RawWheelDown
	// RawUnsupported is a byte sequence the source could not decode
	RawUnsupported
)

// RawEvent is a single event as produced by a Source. Coordinates are
// 1-based on both axes, matching the terminal wire protocol.
type RawEvent struct {
	Type   RawEventType
	Key    Key         // RawKey
	Ch     rune        // RawChar, RawCtrl, RawAlt
	Fn     int         // RawFn
	Button MouseButton // RawMousePress
	X      int         // mouse variants, 1-based
	Y      int         // mouse variants, 1-based
	Bytes  []byte      // RawUnsupported
}

// Source is the raw terminal input this package bridges. ReadEvent is
// the only read primitive available: it blocks until the terminal has
// an event, with no timeout and no cancellation.
type Source interface {
	// ReadEvent blocks until the next raw event is available. Once it
	// returns an error the source is unusable and must not be read again.
	ReadEvent() (RawEvent, error)

	// Size returns the current terminal dimensions, or (0, 0) if the
	// source has no notion of size.
	Size() (int, int)

	// Close releases the source. It must cause a concurrent ReadEvent
	// to return an error rather than block forever.
	Close() error
}

// ScriptSource is a Source fed by hand. It exists so that the reader,
// parser and backend can be driven deterministically in tests, and so
// that consumers can simulate terminal input without a TTY.
type ScriptSource struct {
	events    chan RawEvent
	width     int
	height    int
	closeOnce sync.Once
}

// NewScriptSource creates a ScriptSource reporting the given size.
func NewScriptSource(width, height int) *ScriptSource {
	return &ScriptSource{
		events: make(chan RawEvent),
		width:  width,
		height: height,
	}
}

// Feed hands one raw event to the next ReadEvent call. It blocks until
// a reader is actually asking, which mirrors a real terminal: events do
// not exist until somebody reads them. Feed must not be called after
// Close.
func (s *ScriptSource) Feed(ev RawEvent) {
	s.events <- ev
}

func (s *ScriptSource) ReadEvent() (RawEvent, error) {
	ev, ok := <-s.events
	if !ok {
		return RawEvent{}, io.EOF
	}
	return ev, nil
}

func (s *ScriptSource) Size() (int, int) {
	return s.width, s.height
}

// Close makes all pending and future ReadEvent calls fail with io.EOF.
func (s *ScriptSource) Close() error {
	s.closeOnce.Do(func() {
		close(s.events)
	})
	return nil
}
