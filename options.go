package termbridge

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// CLIOptions are the command line options for the demo binary.
type CLIOptions struct {
	OptHelp        bool   `short:"h" long:"help" description:"show this help message and exit"`
	OptTTY         string `long:"tty" description:"path to the TTY (usually, the value of $TTY)"`
	OptRcfile      string `long:"rcfile" description:"path to the settings file"`
	OptNoMouse     bool   `long:"no-mouse" description:"disable mouse event reporting"`
	OptPeekTimeout int    `long:"peek-timeout" description:"bounded wait for event polling, in milliseconds" default:"10"`
	OptPoll        bool   `long:"poll" description:"poll with bounded waits instead of blocking"`
	OptVersion     bool   `long:"version" description:"print the version and exit"`
}

// Parse parses the command line and validates the result. Remaining
// positional arguments are returned.
func (options *CLIOptions) Parse(s []string) ([]string, error) {
	p := flags.NewParser(options, flags.PrintErrors)
	args, err := p.ParseArgs(s)
	if err != nil {
		os.Stderr.Write(options.Help())
		return nil, errors.Wrap(err, "invalid command line options")
	}

	if err := options.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid command line arguments")
	}

	return args, nil
}

// Validate checks option values for consistency.
func (options CLIOptions) Validate() error {
	if options.OptPeekTimeout < 0 {
		return errors.Errorf("invalid --peek-timeout: %d", options.OptPeekTimeout)
	}
	return nil
}

// Help renders the usage text.
func (options CLIOptions) Help() []byte {
	buf := bytes.Buffer{}

	fmt.Fprint(&buf, `
Usage: termbridge [options]

Options:
  -h, --help            show this help message and exit
  --tty=TTY             path to the TTY (usually, the value of $TTY)
  --rcfile=RCFILE       path to the settings file
  --no-mouse            disable mouse event reporting
  --peek-timeout=MS     bounded wait for event polling, in milliseconds
  --poll                poll with bounded waits instead of blocking
  --version             print the version and exit
`)

	return buf.Bytes()
}

// ApplyTo folds command line options into a Config.
func (options CLIOptions) ApplyTo(cfg *Config) {
	if options.OptPeekTimeout > 0 {
		cfg.PeekTimeoutMillis = options.OptPeekTimeout
	}
	if options.OptNoMouse {
		cfg.EnableMouse = false
	}
	if options.OptTTY != "" {
		cfg.TTY = options.OptTTY
	}
}
