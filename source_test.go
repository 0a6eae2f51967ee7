package termbridge

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScriptSourceFeedAndRead(t *testing.T) {
	src := NewScriptSource(80, 24)

	go src.Feed(RawEvent{Type: RawChar, Ch: 'k'})

	ev, err := src.ReadEvent()
	require.NoError(t, err)
	require.Equal(t, RawChar, ev.Type)
	require.Equal(t, 'k', ev.Ch)

	w, h := src.Size()
	require.Equal(t, 80, w)
	require.Equal(t, 24, h)
}

func TestScriptSourceClose(t *testing.T) {
	src := NewScriptSource(80, 24)
	require.NoError(t, src.Close())

	_, err := src.ReadEvent()
	require.ErrorIs(t, err, io.EOF)

	// Close is idempotent.
	require.NoError(t, src.Close())
}

func TestScriptSourceCloseUnblocksRead(t *testing.T) {
	src := NewScriptSource(80, 24)

	errCh := make(chan error, 1)
	go func() {
		_, err := src.ReadEvent()
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, src.Close())

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, io.EOF)
	case <-time.After(time.Second):
		t.Fatal("ReadEvent did not unblock on Close")
	}
}
