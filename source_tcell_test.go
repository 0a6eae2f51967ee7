package termbridge

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func newSimSource(t *testing.T) (*TcellSource, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	src := NewTcellSourceFromScreen(screen)
	t.Cleanup(func() { src.Close() })
	return src, screen
}

// readEvent pulls the next raw event with a bounded wait so a mapping
// bug cannot hang the test suite.
func readEvent(t *testing.T, src *TcellSource) RawEvent {
	t.Helper()
	type result struct {
		ev  RawEvent
		err error
	}
	ch := make(chan result, 1)
	go func() {
		ev, err := src.ReadEvent()
		ch <- result{ev, err}
	}()
	select {
	case r := <-ch:
		require.NoError(t, r.err)
		return r.ev
	case <-time.After(2 * time.Second):
		t.Fatal("ReadEvent did not return")
		return RawEvent{}
	}
}

func TestTcellSourceChars(t *testing.T) {
	src, screen := newSimSource(t)

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	ev := readEvent(t, src)
	require.Equal(t, RawChar, ev.Type)
	require.Equal(t, 'a', ev.Ch)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModAlt)
	ev = readEvent(t, src)
	require.Equal(t, RawAlt, ev.Type)
	require.Equal(t, 'q', ev.Ch)
}

func TestTcellSourceSymbolicKeys(t *testing.T) {
	src, screen := newSimSource(t)

	tests := []struct {
		key  tcell.Key
		want Key
	}{
		{tcell.KeyEsc, KeyEsc},
		{tcell.KeyUp, KeyUp},
		{tcell.KeyHome, KeyHome},
		{tcell.KeyPgDn, KeyPageDown},
		{tcell.KeyDelete, KeyDelete},
	}

	for _, tc := range tests {
		screen.InjectKey(tc.key, 0, tcell.ModNone)
		ev := readEvent(t, src)
		require.Equal(t, RawKey, ev.Type)
		require.Equal(t, tc.want, ev.Key)
	}

	// Enter and Tab come through as their wire characters.
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	ev := readEvent(t, src)
	require.Equal(t, RawChar, ev.Type)
	require.Equal(t, '\n', ev.Ch)

	screen.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
	ev = readEvent(t, src)
	require.Equal(t, RawChar, ev.Type)
	require.Equal(t, '\t', ev.Ch)
}

func TestTcellSourceFunctionKeys(t *testing.T) {
	src, screen := newSimSource(t)

	screen.InjectKey(tcell.KeyF1, 0, tcell.ModNone)
	ev := readEvent(t, src)
	require.Equal(t, RawFn, ev.Type)
	require.Equal(t, 1, ev.Fn)

	screen.InjectKey(tcell.KeyF12, 0, tcell.ModNone)
	ev = readEvent(t, src)
	require.Equal(t, RawFn, ev.Type)
	require.Equal(t, 12, ev.Fn)
}

func TestTcellSourceCtrlKeys(t *testing.T) {
	src, screen := newSimSource(t)

	screen.InjectKey(tcell.KeyCtrlA, 0, tcell.ModCtrl)
	ev := readEvent(t, src)
	require.Equal(t, RawCtrl, ev.Type)
	require.Equal(t, 'a', ev.Ch)

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	ev = readEvent(t, src)
	require.Equal(t, RawCtrl, ev.Type)
	require.Equal(t, 'c', ev.Ch)
}

func TestTcellSourceMouse(t *testing.T) {
	src, screen := newSimSource(t)

	// tcell positions are 0-based; the raw vocabulary is 1-based.
	screen.InjectMouse(4, 9, tcell.Button1, tcell.ModNone)
	ev := readEvent(t, src)
	require.Equal(t, RawMousePress, ev.Type)
	require.Equal(t, MouseLeft, ev.Button)
	require.Equal(t, 5, ev.X)
	require.Equal(t, 10, ev.Y)

	// Motion with the button still down is a hold.
	screen.InjectMouse(5, 9, tcell.Button1, tcell.ModNone)
	ev = readEvent(t, src)
	require.Equal(t, RawMouseHold, ev.Type)
	require.Equal(t, 6, ev.X)

	// Letting go carries no button on the wire.
	screen.InjectMouse(5, 9, tcell.ButtonNone, tcell.ModNone)
	ev = readEvent(t, src)
	require.Equal(t, RawMouseRelease, ev.Type)
	require.Equal(t, MouseButton(0), ev.Button)

	screen.InjectMouse(2, 2, tcell.WheelUp, tcell.ModNone)
	ev = readEvent(t, src)
	require.Equal(t, RawWheelUp, ev.Type)
	require.Equal(t, 3, ev.X)
}

func TestTcellSourceSize(t *testing.T) {
	src, _ := newSimSource(t)
	w, h := src.Size()
	require.Equal(t, 80, w)
	require.Equal(t, 24, h)
}
