package termbridge

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// TcellSource adapts a tcell.Screen to the raw event vocabulary. tcell
// reports mouse coordinates 0-based; the raw vocabulary is 1-based like
// the wire protocol, so the adapter shifts them up and the parser
// shifts them back down. tcell reports a full button mask per mouse
// event; the adapter diffs it against the previous mask to classify
// press, release and hold, and leaves the button out of release/hold
// events the way the wire protocol does.
type TcellSource struct {
	screen      tcell.Screen
	lastButtons tcell.ButtonMask
	closeOnce   sync.Once
}

// NewTcellSource allocates a terminal screen and puts it into input
// mode. The caller owns the lifecycle via Close.
func NewTcellSource(enableMouse bool) (*TcellSource, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate tcell screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize tcell screen")
	}
	if enableMouse {
		screen.EnableMouse()
	}
	return &TcellSource{screen: screen}, nil
}

// NewTcellSourceFromScreen wraps an already-initialized screen. Used
// with tcell's SimulationScreen in tests.
func NewTcellSourceFromScreen(screen tcell.Screen) *TcellSource {
	return &TcellSource{screen: screen}
}

func (s *TcellSource) ReadEvent() (RawEvent, error) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return RawEvent{}, errors.New("terminal input closed")
		}

		switch tev := ev.(type) {
		case *tcell.EventKey:
			return s.convertKey(tev), nil
		case *tcell.EventMouse:
			raw, ok := s.convertMouse(tev)
			if !ok {
				// Bare motion has no raw vocabulary; drop it.
				continue
			}
			return raw, nil
		case *tcell.EventError:
			return RawEvent{}, errors.Wrap(tev, "terminal input error")
		default:
			// Resize arrives through the SIGWINCH watcher instead;
			// everything else tcell may post is not input.
			continue
		}
	}
}

func (s *TcellSource) Size() (int, int) {
	return s.screen.Size()
}

func (s *TcellSource) Close() error {
	s.closeOnce.Do(func() {
		s.screen.Fini()
	})
	return nil
}

var tcellToKey = map[tcell.Key]Key{
	tcell.KeyEsc:        KeyEsc,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyInsert:     KeyInsert,
}

func (s *TcellSource) convertKey(ev *tcell.EventKey) RawEvent {
	key := ev.Key()

	if key == tcell.KeyRune {
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return RawEvent{Type: RawAlt, Ch: ev.Rune()}
		}
		return RawEvent{Type: RawChar, Ch: ev.Rune()}
	}

	if k, ok := tcellToKey[key]; ok {
		return RawEvent{Type: RawKey, Key: k}
	}

	switch key {
	case tcell.KeyEnter:
		return RawEvent{Type: RawChar, Ch: '\n'}
	case tcell.KeyTab:
		return RawEvent{Type: RawChar, Ch: '\t'}
	}

	if key >= tcell.KeyF1 && key <= tcell.KeyF64 {
		return RawEvent{Type: RawFn, Fn: int(key-tcell.KeyF1) + 1}
	}

	// Control characters below 0x20 that are not named above.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return RawEvent{Type: RawCtrl, Ch: 'a' + rune(key-tcell.KeyCtrlA)}
	}

	return RawEvent{Type: RawUnsupported, Bytes: []byte{byte(key)}}
}

func (s *TcellSource) convertMouse(ev *tcell.EventMouse) (RawEvent, bool) {
	x, y := ev.Position()
	wx, wy := x+1, y+1 // wire coordinates are 1-based
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		return RawEvent{Type: RawWheelUp, X: wx, Y: wy}, true
	case buttons&tcell.WheelDown != 0:
		return RawEvent{Type: RawWheelDown, X: wx, Y: wy}, true
	}

	prev := s.lastButtons
	s.lastButtons = buttons

	pressed := buttons &^ prev
	switch {
	case pressed&tcell.Button1 != 0:
		return RawEvent{Type: RawMousePress, Button: MouseLeft, X: wx, Y: wy}, true
	case pressed&tcell.Button3 != 0:
		// tcell calls the middle button Button3
		return RawEvent{Type: RawMousePress, Button: MouseMiddle, X: wx, Y: wy}, true
	case pressed&tcell.Button2 != 0:
		return RawEvent{Type: RawMousePress, Button: MouseRight, X: wx, Y: wy}, true
	case prev != 0 && buttons == 0:
		return RawEvent{Type: RawMouseRelease, X: wx, Y: wy}, true
	case buttons != 0:
		return RawEvent{Type: RawMouseHold, X: wx, Y: wy}, true
	}

	return RawEvent{}, false
}
