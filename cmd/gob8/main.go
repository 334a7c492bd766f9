package main

import (
	"log"
	"os"
	"runtime"

	"github.com/pkg/errors"

	"github.com/hexaflex/gob8/asm/dbg"
)

func init() {
	runtime.LockOSThread()
}

// frontend runs a loaded program until the user quits.
type frontend interface {
	Run() error
}

func main() {
	config := parseArgs()

	image, err := os.ReadFile(config.Input)
	if err != nil {
		log.Fatal(errors.Wrapf(err, "failed to load program"))
	}

	var app frontend
	if config.Terminal {
		t := NewTerminal(config, image)
		t.tracer.debug = debugSymbols(config)
		app = t
	} else {
		a := NewApp(config, image)
		a.tracer.debug = debugSymbols(config)
		app = a
	}

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}

// debugSymbols loads the symbols stored next to the input file
// when debug mode is enabled.
func debugSymbols(config *Config) *dbg.Debug {
	if !config.Debug {
		return nil
	}

	d, err := loadDebug(config.Input + ".dbg")
	if err != nil {
		log.Println(err)
		return nil
	}

	if d != nil {
		log.Printf("loaded %d debug symbols", len(d.Symbols))
	}
	return d
}
