package main

import (
	"log"
	"os"
	"time"

	"github.com/hexaflex/gob8/console"
	"github.com/hexaflex/gob8/keypad"
)

// Terminal shortcut keys. Keypad keys are forwarded as taps.
const (
	termToggleRun = ' '
	termStep      = '.'
)

// Terminal runs a program in the current terminal.
type Terminal struct {
	config  *Config
	console *console.Console
	ctl     *Controller
	devices Devices
	tracer  tracer
}

// NewTerminal creates a terminal frontend using the given configuration.
func NewTerminal(config *Config, image []byte) *Terminal {
	var t Terminal
	t.config = config
	t.tracer = tracer{config: config, out: os.Stderr}
	t.console = console.New(os.Stdin, os.Stdout)
	t.ctl = NewController(image, config.Speed, machineOptions(config, &t.tracer)...)
	t.devices = Devices{t.ctl, t.console}
	return &t
}

// Run runs the program until it faults or the user presses Escape or Ctrl-C.
// Terminal input has no key release events, so each key press is
// delivered as a tap.
func (t *Terminal) Run() (err error) {
	if t.config.PrintTrace {
		log.Println("trace output is sent to stderr")
	}

	if t.config.Debug {
		log.Println("execution paused: space starts/stops, '.' steps")
	}

	if err := t.devices.Startup(); err != nil {
		return err
	}

	defer func() {
		if serr := t.devices.Shutdown(); serr != nil && err == nil {
			err = serr
		}
	}()

	if !t.config.Debug {
		t.ctl.Start()
	}

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		select {
		case b := <-t.console.Keys():
			quit, err := t.handleKey(b)
			if quit || err != nil {
				return err
			}

		case <-ticker.C:
			if err := t.ctl.Tick(); err != nil {
				return err
			}

			if err := t.console.Draw(t.ctl.Machine().Front()); err != nil {
				return err
			}
		}
	}
}

// handleKey processes one input byte. Returns true if the session should end.
func (t *Terminal) handleKey(b byte) (bool, error) {
	switch b {
	case console.KeyEscape, console.KeyCtrlC:
		return true, nil
	case termToggleRun:
		t.ctl.ToggleRun()
	case termStep:
		if !t.ctl.Running() {
			return false, t.ctl.Step()
		}
	default:
		if symbol, ok := keypad.FromByte(b); ok {
			return false, t.ctl.Keypad().Tap(symbol)
		}
	}
	return false, nil
}
