//go:build !unix

package termbridge

// ResizeWatcher is a no-op on platforms without SIGWINCH.
type ResizeWatcher struct{}

func newResizeWatcher(_ Source, _ chan<- *Event) *ResizeWatcher {
	return &ResizeWatcher{}
}

func (w *ResizeWatcher) Start() {}

func (w *ResizeWatcher) Stop() {}
