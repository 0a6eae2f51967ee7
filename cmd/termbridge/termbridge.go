package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/termbridge/termbridge"
)

var version = "v0.1.0"

func main() {
	os.Exit(_main())
}

func _main() int {
	opts := &termbridge.CLIOptions{}
	if _, err := opts.Parse(os.Args[1:]); err != nil {
		return 1
	}

	if opts.OptHelp {
		os.Stdout.Write(opts.Help())
		return 0
	}

	if opts.OptVersion {
		fmt.Fprintf(os.Stderr, "termbridge: %s\n", version)
		return 0
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "termbridge: stdin is not a terminal")
		return 1
	}

	var cfg termbridge.Config
	cfg.Init()
	if opts.OptRcfile != "" {
		if err := cfg.ReadFilename(opts.OptRcfile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	opts.ApplyTo(&cfg)

	src, err := termbridge.NewTcellSource(cfg.EnableMouse)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	backend := termbridge.NewBackend(src, &cfg)
	backend.Start()
	defer backend.Close()

	screen := termbridge.NewAnsiScreen(os.Stdout)
	screen.HideCursor()
	screen.Clear()
	defer screen.Finish()

	width, height := backend.Size()
	banner := fmt.Sprintf("termbridge %s (%dx%d). Press keys or click; Ctrl+C quits.", version, width, height)
	screen.Print(0, 0, banner, cfg.Style.Highlight)

	row := 2
	for {
		var ev *termbridge.Event
		if opts.OptPoll {
			if ev = backend.PollEvent(); ev == nil {
				continue
			}
		} else {
			ev = backend.WaitEvent()
		}

		style := cfg.Style.Basic
		switch ev.Type {
		case termbridge.EventExit:
			return 0
		case termbridge.EventUnknown:
			style = cfg.Style.Error
		case termbridge.EventMouse, termbridge.EventResize:
			style = cfg.Style.Highlight
		}

		screen.Print(0, row, ev.String(), style)
		screen.Flush()

		row++
		if _, height = backend.Size(); row >= height {
			screen.Clear()
			screen.Print(0, 0, banner, cfg.Style.Highlight)
			row = 2
		}
	}
}
