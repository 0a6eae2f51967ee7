//go:build unix

package termbridge

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResizeWatcherPostsEvent(t *testing.T) {
	src := NewScriptSource(100, 40)
	sink := make(chan *Event, 1)

	w := newResizeWatcher(src, sink)
	w.Start()
	defer w.Stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGWINCH))

	select {
	case ev := <-sink:
		require.NotNil(t, ev)
		require.Equal(t, EventResize, ev.Type)
		require.Equal(t, 100, ev.Width)
		require.Equal(t, 40, ev.Height)
	case <-time.After(2 * time.Second):
		t.Fatal("no resize event arrived after SIGWINCH")
	}
}

func TestResizeWatcherStops(t *testing.T) {
	src := NewScriptSource(100, 40)
	sink := make(chan *Event, 1)

	w := newResizeWatcher(src, sink)
	w.Start()

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("resize watcher did not stop")
	}
}

func TestBackendForwardsResize(t *testing.T) {
	src := NewScriptSource(100, 40)

	var cfg Config
	require.NoError(t, cfg.Init())

	b := NewBackend(src, &cfg)
	b.Start()
	defer b.Close()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGWINCH))

	select {
	case ev := <-b.EventCh():
		require.NotNil(t, ev)
		require.Equal(t, EventResize, ev.Type)
		require.Equal(t, 100, ev.Width)
		require.Equal(t, 40, ev.Height)
	case <-time.After(2 * time.Second):
		t.Fatal("backend did not forward the resize event")
	}
}
