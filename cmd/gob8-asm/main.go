package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hexaflex/gob8/arch"
	"github.com/hexaflex/gob8/asm"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(AppName + ": ")

	os.Exit(run(parseArgs()))
}

// run builds the configured program and returns the process exit code.
func run(c *Config) int {
	fd, err := os.Open(c.Input)
	if err != nil {
		log.Println(errors.Wrapf(err, "failed to open input"))
		return 1
	}

	a, err := asm.Build(fd, c.Input)
	fd.Close()

	if a == nil {
		log.Println(err)
		return 1
	}

	code := 0
	if err != nil {
		fmt.Fprint(os.Stderr, asm.FormatError(a.Lines(), err))
		code = 1
	}

	image := a.Bytes()
	if len(image) > arch.MemorySize {
		log.Printf("warning: image is %d bytes; the emulator will refuse to load images over %d bytes", len(image), arch.MemorySize)
	}

	if err := writeFile(c.Output, func(w io.Writer) error {
		_, err := w.Write(image)
		return err
	}); err != nil {
		log.Println(err)
		return 1
	}

	if code == 0 && c.DebugBuild {
		if err := writeFile(c.Output+".dbg", a.Debug().Save); err != nil {
			log.Println(err)
			return 1
		}
	}

	if code == 0 && c.DumpDebug {
		fmt.Print(a.Debug())
	}

	return code
}

// writeFile creates the file at path, including missing directories,
// and passes it to write.
func writeFile(path string, write func(io.Writer) error) error {
	if dir, _ := filepath.Split(path); dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	fd, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create output")
	}

	if err := write(fd); err != nil {
		fd.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}

	return errors.Wrapf(fd.Close(), "failed to write %s", path)
}
