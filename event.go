package termbridge

import "fmt"

// EventType classifies the type of abstract event emitted by the bridge.
type EventType uint8

const (
	// EventKeyPress is a press of a symbolic (non-printable) key
	EventKeyPress EventType = iota
	// EventChar is a printable character
	EventChar
	// EventCtrlChar is a character pressed together with Ctrl
	EventCtrlChar
	// EventAltChar is a character pressed together with Alt
	EventAltChar
	// EventMouse is a mouse press/release/hold/wheel action
	EventMouse
	// EventUnknown carries a byte sequence the bridge does not interpret
	EventUnknown
	// EventResize is a synthetic terminal resize notification
	EventResize
	// EventExit is the dedicated quit signal (Ctrl+C)
	EventExit
)

// Key identifies a symbolic key. Printable characters are carried as
// runes in EventChar events, not as Keys.
type Key uint8

const (
	KeyEsc Key = iota + 1
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyEnter
	KeyTab
	keyF1 // function keys occupy a contiguous range starting here
)

// MaxFnKey is the largest function key index with a symbolic Key of its
// own. Larger indices are reported as EventUnknown carrying the index.
const MaxFnKey = 11

// KeyF returns the symbolic key for function key i (1 <= i <= MaxFnKey).
func KeyF(i int) Key {
	return keyF1 + Key(i-1)
}

// MouseAction classifies what the mouse did.
type MouseAction uint8

const (
	MousePress MouseAction = iota + 1
	MouseRelease
	MouseHold
	MouseWheelUp
	MouseWheelDown
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota + 1
	MouseMiddle
	MouseRight
)

// Pos is a 0-based screen position.
type Pos struct {
	X int
	Y int
}

// MouseData is the payload of an EventMouse event. Position is 0-based.
// Offset is always zero at this layer; a higher layer that composes
// panels may rebase it.
type MouseData struct {
	Action MouseAction
	Button MouseButton
	Pos    Pos
	Offset int
}

// Event is the bridge's output type, decoupling consumers from the
// underlying terminal library's event vocabulary. Which fields are
// meaningful depends on Type.
type Event struct {
	Type   EventType
	Key    Key       // EventKeyPress
	Ch     rune      // EventChar, EventCtrlChar, EventAltChar
	Bytes  []byte    // EventUnknown
	Mouse  MouseData // EventMouse
	Width  int       // EventResize
	Height int       // EventResize
}

var keyNames = map[Key]string{
	KeyEsc:       "Esc",
	KeyBackspace: "Backspace",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= keyF1 && k <= KeyF(MaxFnKey) {
		return fmt.Sprintf("F%d", int(k-keyF1)+1)
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "Press"
	case MouseRelease:
		return "Release"
	case MouseHold:
		return "Hold"
	case MouseWheelUp:
		return "WheelUp"
	case MouseWheelDown:
		return "WheelDown"
	}
	return fmt.Sprintf("MouseAction(%d)", uint8(a))
}

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseMiddle:
		return "Middle"
	case MouseRight:
		return "Right"
	}
	return fmt.Sprintf("MouseButton(%d)", uint8(b))
}

// String renders the event for logs and the demo binary.
func (e Event) String() string {
	switch e.Type {
	case EventKeyPress:
		return fmt.Sprintf("Key(%s)", e.Key)
	case EventChar:
		return fmt.Sprintf("Char(%q)", e.Ch)
	case EventCtrlChar:
		return fmt.Sprintf("Ctrl(%q)", e.Ch)
	case EventAltChar:
		return fmt.Sprintf("Alt(%q)", e.Ch)
	case EventMouse:
		return fmt.Sprintf("Mouse(%s %s at %d,%d)", e.Mouse.Action, e.Mouse.Button, e.Mouse.Pos.X, e.Mouse.Pos.Y)
	case EventUnknown:
		return fmt.Sprintf("Unknown(%v)", e.Bytes)
	case EventResize:
		return fmt.Sprintf("Resize(%dx%d)", e.Width, e.Height)
	case EventExit:
		return "Exit"
	}
	return fmt.Sprintf("Event(%d)", uint8(e.Type))
}
