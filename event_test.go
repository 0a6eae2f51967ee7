package termbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Esc", KeyEsc.String())
	assert.Equal(t, "Enter", KeyEnter.String())
	assert.Equal(t, "F1", KeyF(1).String())
	assert.Equal(t, "F11", KeyF(11).String())
}

func TestKeyFDistinct(t *testing.T) {
	seen := map[Key]bool{}
	for i := 1; i <= MaxFnKey; i++ {
		k := KeyF(i)
		assert.False(t, seen[k], "KeyF(%d) collides", i)
		seen[k] = true
	}
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "Key(Esc)", Event{Type: EventKeyPress, Key: KeyEsc}.String())
	assert.Equal(t, `Char('a')`, Event{Type: EventChar, Ch: 'a'}.String())
	assert.Equal(t, `Ctrl('x')`, Event{Type: EventCtrlChar, Ch: 'x'}.String())
	assert.Equal(t, "Exit", Event{Type: EventExit}.String())
	assert.Equal(t, "Resize(80x24)", Event{Type: EventResize, Width: 80, Height: 24}.String())

	ev := Event{Type: EventMouse, Mouse: MouseData{Action: MousePress, Button: MouseLeft, Pos: Pos{X: 3, Y: 4}}}
	assert.Equal(t, "Mouse(Press Left at 3,4)", ev.String())
}
