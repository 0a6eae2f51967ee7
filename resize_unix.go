//go:build unix

package termbridge

import (
	"context"
	"os"
	"syscall"

	pdebug "github.com/lestrrat-go/pdebug"
	"golang.org/x/sys/unix"

	"github.com/termbridge/termbridge/internal/sighandler"
)

// ResizeWatcher is an independent producer feeding the backend's
// response channel: one synthetic EventResize per SIGWINCH. It never
// blocks the signal loop; if the consumer is not draining, the
// notification is dropped (the consumer only ever cares about the
// latest size, which it re-queries anyway).
type ResizeWatcher struct {
	src     Source
	sink    chan<- *Event
	handler *sighandler.Handler
	cancel  context.CancelFunc
	done    chan struct{}
}

func newResizeWatcher(src Source, sink chan<- *Event) *ResizeWatcher {
	w := &ResizeWatcher{
		src:  src,
		sink: sink,
		done: make(chan struct{}),
	}

	h := sighandler.New(syscall.SIGWINCH)
	h.SignalReceivedFunc = func(_ os.Signal) bool {
		w.post()
		return true
	}
	h.EndFunc = func() {
		close(w.done)
	}
	w.handler = h
	return w
}

// Start spawns the signal loop.
func (w *ResizeWatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.handler.Loop(ctx)
}

// Stop cancels the signal loop and waits for it to unregister.
func (w *ResizeWatcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

func (w *ResizeWatcher) post() {
	width, height := w.src.Size()
	if width <= 0 || height <= 0 {
		width, height = ttySize(int(os.Stdout.Fd()))
	}
	if width <= 0 || height <= 0 {
		return
	}

	if pdebug.Enabled {
		pdebug.Printf("ResizeWatcher: posting %dx%d", width, height)
	}

	select {
	case w.sink <- &Event{Type: EventResize, Width: width, Height: height}:
	default:
	}
}

// ttySize queries the kernel directly, for sources that do not track
// their own size.
func ttySize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0
	}
	return int(ws.Col), int(ws.Row)
}
