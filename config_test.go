package termbridge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Init())

	assert.Equal(t, 10*time.Millisecond, cfg.PeekTimeout())
	assert.True(t, cfg.EnableMouse)
	assert.True(t, cfg.WatchResize)
	assert.Empty(t, cfg.TTY)
}

func TestConfigReadFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
peek_timeout_millis: 25
enable_mouse: false
tty: /dev/tty
style:
  highlight: ["yellow", "bold"]
`), 0o644))

	var cfg Config
	require.NoError(t, cfg.Init())
	require.NoError(t, cfg.ReadFilename(path))

	assert.Equal(t, 25*time.Millisecond, cfg.PeekTimeout())
	assert.False(t, cfg.EnableMouse)
	assert.Equal(t, "/dev/tty", cfg.TTY)
	assert.Equal(t, DarkColor(Yellow), cfg.Style.Highlight.Foreground)
	assert.True(t, cfg.Style.Highlight.Effects.Has(EffectBold))

	// Untouched settings keep their defaults.
	assert.True(t, cfg.WatchResize)
}

func TestConfigReadFilenameMissing(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Init())
	require.Error(t, cfg.ReadFilename(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestConfigReadFilenameInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("peek_timeout_millis: -5\n"), 0o644))

	var cfg Config
	require.NoError(t, cfg.Init())
	require.Error(t, cfg.ReadFilename(path))
}
