package termbridge

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

// Screen is the output half of the bridge: a fire-and-forget sink for
// cursor, clear and styled-print escape sequences. It interprets
// nothing and reads nothing back.
type Screen interface {
	MoveTo(x, y int)
	HideCursor()
	ShowCursor()
	Clear()
	Print(x, y int, msg string, style Style) int
	SetStyle(style Style) Style
	Finish()
	Flush() error
}

type flusher interface {
	Flush() error
}

// AnsiScreen writes raw escape sequences to an io.Writer. Writes are
// best-effort; errors only surface through Flush. The mutex makes
// concurrent prints safe, though the usual arrangement is a single
// drawing goroutine.
type AnsiScreen struct {
	mutex   sync.Mutex
	out     io.Writer
	current Style
	styled  bool
}

// NewAnsiScreen creates a screen over out. It does not touch the
// terminal until the first call.
func NewAnsiScreen(out io.Writer) *AnsiScreen {
	return &AnsiScreen{out: out}
}

// MoveTo places the cursor at the 0-based position (x, y). The wire
// sequence is 1-based.
func (s *AnsiScreen) MoveTo(x, y int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	fmt.Fprintf(s.out, "\x1b[%d;%dH", y+1, x+1)
}

func (s *AnsiScreen) HideCursor() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	io.WriteString(s.out, "\x1b[?25l")
}

func (s *AnsiScreen) ShowCursor() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	io.WriteString(s.out, "\x1b[?25h")
}

// Clear wipes the whole screen in the current style.
func (s *AnsiScreen) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	io.WriteString(s.out, "\x1b[2J")
}

// SetStyle makes style current and returns the previous one. Writing
// is skipped when the style is already in effect.
func (s *AnsiScreen) SetStyle(style Style) Style {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	prev := s.current
	if !s.styled || s.current != style {
		io.WriteString(s.out, style.sgr())
		s.current = style
		s.styled = true
	}
	return prev
}

// Print writes msg at the 0-based position (x, y) in the given style
// and returns the number of terminal cells written. Tabs are drawn as
// spaces up to the next 4-cell stop; wide runes advance by their
// display width.
func (s *AnsiScreen) Print(x, y int, msg string, style Style) int {
	s.SetStyle(style)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	fmt.Fprintf(s.out, "\x1b[%d;%dH", y+1, x+1)

	var written int
	for len(msg) > 0 {
		c, w := utf8.DecodeRuneInString(msg)
		if c == utf8.RuneError && w == 1 {
			// Invalid byte. A literal U+FFFD in the input decodes with
			// w == 3 and is printed as-is.
			c = '?'
		}
		msg = msg[w:]

		if c == '\t' {
			n := 4 - (x+written)%4
			for i := 0; i < n; i++ {
				io.WriteString(s.out, " ")
			}
			written += n
			continue
		}

		fmt.Fprintf(s.out, "%c", c)
		written += runewidth.RuneWidth(c)
	}
	return written
}

// Finish restores the terminal for the shell: default rendition,
// visible cursor at the top-left, clear screen.
func (s *AnsiScreen) Finish() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	io.WriteString(s.out, "\x1b[0m\x1b[?25h\x1b[1;1H\x1b[2J")
	s.current = Style{}
	s.styled = false
}

// Flush pushes buffered output through, when the underlying writer
// buffers at all.
func (s *AnsiScreen) Flush() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if f, ok := s.out.(flusher); ok {
		return errors.Wrap(f.Flush(), "failed to flush screen")
	}
	return nil
}
