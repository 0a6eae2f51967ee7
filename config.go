package termbridge

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Config contains the values read in from the settings file.
type Config struct {
	// PeekTimeoutMillis bounds how long a Peek request may wait.
	PeekTimeoutMillis int `yaml:"peek_timeout_millis"`
	// EnableMouse turns on mouse event reporting.
	EnableMouse bool `yaml:"enable_mouse"`
	// WatchResize forwards terminal resize signals as events.
	WatchResize bool `yaml:"watch_resize"`
	// TTY optionally names the terminal device to use.
	TTY   string   `yaml:"tty"`
	Style StyleSet `yaml:"style"`
}

// Init populates the defaults.
func (c *Config) Init() error {
	c.PeekTimeoutMillis = 10
	c.EnableMouse = true
	c.WatchResize = true
	c.TTY = ""
	c.Style.Init()
	return nil
}

// ReadFilename reads the config from the given file, and does the
// appropriate processing, if any.
func (c *Config) ReadFilename(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open file %s", filename)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return errors.Wrap(err, "failed to decode YAML")
	}

	if c.PeekTimeoutMillis < 0 {
		return errors.Errorf("invalid peek_timeout_millis: %d", c.PeekTimeoutMillis)
	}

	return nil
}

// PeekTimeout returns the configured bounded wait for Peek requests.
func (c *Config) PeekTimeout() time.Duration {
	return time.Duration(c.PeekTimeoutMillis) * time.Millisecond
}
