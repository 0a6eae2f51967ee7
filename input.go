package termbridge

import (
	"time"

	pdebug "github.com/lestrrat-go/pdebug"
)

// DefaultPeekTimeout is the bounded wait used by Peek when no timeout
// was configured.
const DefaultPeekTimeout = 10 * time.Millisecond

// InputParser turns the reader's one-blocking-read-per-request protocol
// into peek/next semantics, and maps raw events into the abstract event
// vocabulary. All of its state is owned by the single goroutine that
// calls Peek and Next; no locking is required or performed.
type InputParser struct {
	// eventDue is true between issuing a request token and receiving
	// its result. It is the single source of truth for "a request is
	// outstanding": Peek leaving it true after a timeout is what keeps
	// the in-flight request valid for the next call.
	eventDue bool

	// closed is set once the result channel is observed closed. After
	// that the reader is gone and no further token may be sent: every
	// subsequent Peek or Next short-circuits to EventExit.
	closed bool

	// lastButton remembers the most recently pressed mouse button, so
	// that release and hold events (which arrive without a button on
	// the wire) can be attributed. Only a press mutates it.
	lastButton MouseButton
	hasButton  bool

	requests    chan<- struct{}
	results     <-chan RawEvent
	peekTimeout time.Duration
}

// NewInputParser creates a parser over the reader's channels. Both must
// be unbuffered.
func NewInputParser(requests chan<- struct{}, results <-chan RawEvent) *InputParser {
	return &InputParser{
		requests:    requests,
		results:     results,
		peekTimeout: DefaultPeekTimeout,
	}
}

// SetPeekTimeout overrides the bounded wait used by Peek. Values <= 0
// are ignored.
func (p *InputParser) SetPeekTimeout(d time.Duration) {
	if d > 0 {
		p.peekTimeout = d
	}
}

// request pledges that we want one more raw event. If a request is
// already outstanding this is a no-op, so calling it repeatedly within
// one waiting window never issues duplicate tokens.
func (p *InputParser) request() {
	if p.eventDue || p.closed {
		return
	}
	p.requests <- struct{}{}
	p.eventDue = true
}

// Peek waits at most the peek timeout for the next event. It returns
// nil if nothing arrived in time; the request issued on its behalf
// stays valid, and a later Peek or Next will consume its result.
func (p *InputParser) Peek() *Event {
	if p.closed {
		return &Event{Type: EventExit}
	}
	p.request()

	timer := time.NewTimer(p.peekTimeout)
	defer timer.Stop()

	select {
	case raw, ok := <-p.results:
		p.eventDue = false
		if !ok {
			p.closed = true
			return &Event{Type: EventExit}
		}
		ev := p.mapEvent(raw)
		return &ev
	case <-timer.C:
		return nil
	}
}

// Next waits indefinitely for the next event. It never returns "no
// event": when the result channel is closed (source failure or
// shutdown) it yields EventExit so a blocked consumer unwinds cleanly,
// and every later call keeps yielding EventExit without touching the
// dead reader.
func (p *InputParser) Next() Event {
	if p.closed {
		return Event{Type: EventExit}
	}
	p.request()

	raw, ok := <-p.results
	p.eventDue = false
	if !ok {
		p.closed = true
		return Event{Type: EventExit}
	}
	return p.mapEvent(raw)
}

// mapEvent is the total mapping from the raw vocabulary to the abstract
// one. It is deterministic for every input; the only state it touches
// is the latched mouse button.
func (p *InputParser) mapEvent(raw RawEvent) Event {
	if pdebug.Enabled {
		g := pdebug.Marker("InputParser.mapEvent %#v", raw)
		defer g.End()
	}

	switch raw.Type {
	case RawKey:
		return Event{Type: EventKeyPress, Key: raw.Key}
	case RawFn:
		if raw.Fn >= 1 && raw.Fn <= MaxFnKey {
			return Event{Type: EventKeyPress, Key: KeyF(raw.Fn)}
		}
		// Indices from F12 up have no symbolic key. The boundary is
		// kept exactly where it was observed.
		return Event{Type: EventUnknown, Bytes: []byte{byte(raw.Fn)}}
	case RawChar:
		switch raw.Ch {
		case '\n':
			return Event{Type: EventKeyPress, Key: KeyEnter}
		case '\t':
			return Event{Type: EventKeyPress, Key: KeyTab}
		}
		return Event{Type: EventChar, Ch: raw.Ch}
	case RawCtrl:
		if raw.Ch == 'c' {
			return Event{Type: EventExit}
		}
		return Event{Type: EventCtrlChar, Ch: raw.Ch}
	case RawAlt:
		return Event{Type: EventAltChar, Ch: raw.Ch}
	case RawMousePress:
		p.lastButton = raw.Button
		p.hasButton = true
		return p.mouseEvent(MousePress, raw.Button, raw)
	case RawMouseRelease:
		if !p.hasButton {
			// No press was ever seen. Guessing a button would be
			// worse than admitting we don't know.
			return Event{Type: EventUnknown, Bytes: []byte{}}
		}
		return p.mouseEvent(MouseRelease, p.lastButton, raw)
	case RawMouseHold:
		if !p.hasButton {
			return Event{Type: EventUnknown, Bytes: []byte{}}
		}
		return p.mouseEvent(MouseHold, p.lastButton, raw)
	case RawWheelUp:
		return p.mouseEvent(MouseWheelUp, 0, raw)
	case RawWheelDown:
		return p.mouseEvent(MouseWheelDown, 0, raw)
	case RawUnsupported:
		return Event{Type: EventUnknown, Bytes: raw.Bytes}
	}
	return Event{Type: EventUnknown, Bytes: raw.Bytes}
}

// mouseEvent normalizes the source's 1-based coordinates to 0-based.
func (p *InputParser) mouseEvent(action MouseAction, button MouseButton, raw RawEvent) Event {
	return Event{
		Type: EventMouse,
		Mouse: MouseData{
			Action: action,
			Button: button,
			Pos:    Pos{X: raw.X - 1, Y: raw.Y - 1},
		},
	}
}
