package sighandler

import (
	"context"
	"os"
	"os/signal"
)

// Handler runs a callback loop over OS signal delivery. It exists so
// that signal plumbing stays out of the components that only care about
// "a signal happened".
type Handler struct {
	EndFunc            func()               // Called once when Loop() exits
	SignalReceivedFunc func(os.Signal) bool // Called per signal; return false to stop the loop
	sigCh              chan os.Signal
}

// New registers for the given signals and returns a Handler ready for
// Loop.
func New(signals ...os.Signal) *Handler {
	sigCh := make(chan os.Signal, len(signals))
	signal.Notify(sigCh, signals...)
	return &Handler{sigCh: sigCh}
}

func (s *Handler) runEndFunc() {
	if f := s.EndFunc; f != nil {
		f()
	}
}

func (s *Handler) runSignalReceivedFunc(sig os.Signal) bool {
	if f := s.SignalReceivedFunc; f != nil {
		return f(sig)
	}
	return false
}

// Loop dispatches signals to SignalReceivedFunc until the context is
// canceled or the callback returns false. Signal registration is
// released on the way out.
func (s *Handler) Loop(ctx context.Context) {
	defer s.runEndFunc()
	defer signal.Stop(s.sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-s.sigCh:
			if !s.runSignalReceivedFunc(sig) {
				return
			}
		}
	}
}
