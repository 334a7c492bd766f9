package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/gob8/version"
)

// AppName is the name reported in logs and version output.
const AppName = "gob8-asm"

// Config defines program configuration.
type Config struct {
	Input      string // Input source file to build.
	Output     string // Path to store the binary image in.
	DebugBuild bool   // Write debug symbols to <Output>.dbg?
	DumpDebug  bool   // Print a human-readable dump of the debug symbols.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Input = "./game.asm"
	c.Output = "./game.bin"

	flag.Usage = func() {
		fmt.Printf("%s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Input, "input", c.Input, "Source file to assemble.")
	flag.StringVar(&c.Output, "output", c.Output, "Output file for the binary image.")
	flag.BoolVar(&c.DebugBuild, "debug", c.DebugBuild, "Write debug symbols to an extra <output>.dbg file.")
	flag.BoolVar(&c.DumpDebug, "dump-debug", c.DumpDebug, "Print a human-readable version of the debug symbols to stdout.")
	showVersion := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String(AppName))
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	return &c
}
