package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/gob8/display"
	"github.com/hexaflex/gob8/version"
)

// AppName is shown in the window title and version output.
const AppName = "gob8"

// Config defines program configuration.
type Config struct {
	Input       string // Path to the image file to load.
	ScaleFactor int    // Amount by which each cell is scaled in the window.
	Speed       int    // Instructions executed per frame.
	Fullscreen  bool   // Run in fullscreen?
	Terminal    bool   // Render to the terminal instead of a window?
	LegacyDraw  bool   // Use the legacy sprite addressing mode?
	Debug       bool   // Load debug symbols and start paused.
	PrintTrace  bool   // Print instruction trace data?
	Background  uint32 // Color of unset cells.
	Foreground  uint32 // Color of set cells.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Input = "./game.bin"
	c.ScaleFactor = 10
	c.Speed = 1

	flag.Usage = func() {
		fmt.Printf("%s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Input, "input", c.Input, "Binary image to run.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.IntVar(&c.Speed, "speed", c.Speed, "Number of instructions executed per frame.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.BoolVar(&c.Terminal, "term", c.Terminal, "Render to the terminal instead of opening a window.")
	flag.BoolVar(&c.LegacyDraw, "legacy-draw", c.LegacyDraw, "Use the legacy sprite addressing mode.")
	flag.BoolVar(&c.Debug, "debug", c.Debug, "Load <input>.dbg if present and start with execution paused.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	bg := flag.String("bg", fmt.Sprintf("#%06x", display.DefaultBackground), "Background color.")
	fg := flag.String("fg", fmt.Sprintf("#%06x", display.DefaultForeground), "Foreground color.")
	showVersion := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String(AppName))
		os.Exit(0)
	}

	if flag.NArg() > 0 || c.ScaleFactor < 1 || c.Speed < 1 {
		flag.Usage()
		os.Exit(1)
	}

	var err error
	if c.Background, err = display.ParseColor(*bg); err == nil {
		c.Foreground, err = display.ParseColor(*fg)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return &c
}
