// Package console presents the front framebuffer in a terminal and
// reads raw key presses from it. It is the headless alternative to
// the OpenGL display.
package console

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/hexaflex/gob8/arch"
)

// Control sequences.
const (
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
)

// Input bytes which end the session.
const (
	KeyEscape = 0x1b
	KeyCtrlC  = 0x03
)

// Console draws frames to out and reads key presses from in.
type Console struct {
	in       *os.File
	out      io.Writer
	keys     chan byte
	stopCh   chan struct{}
	stopped  sync.Once
	fd       int
	oldState *term.State
}

// New creates a console for the given terminal.
func New(in *os.File, out io.Writer) *Console {
	return &Console{
		in:     in,
		out:    out,
		keys:   make(chan byte, 16),
		stopCh: make(chan struct{}),
	}
}

// Keys yields raw input bytes. Bytes arriving while the buffer is full
// are dropped.
func (c *Console) Keys() <-chan byte {
	return c.keys
}

// Startup puts the terminal in raw mode and starts reading input.
func (c *Console) Startup() error {
	c.fd = int(c.in.Fd())
	if !term.IsTerminal(c.fd) {
		return errors.New("console: input is not a terminal")
	}

	if w, h, err := term.GetSize(c.fd); err == nil && (w < arch.DisplayWidth || h < arch.DisplayHeight/2) {
		log.Printf("console: terminal is %dx%d, the display needs %dx%d", w, h, arch.DisplayWidth, arch.DisplayHeight/2)
	}

	state, err := term.MakeRaw(c.fd)
	if err != nil {
		return errors.Wrapf(err, "console: failed to set raw mode")
	}

	c.oldState = state
	log.Println("console startup")

	io.WriteString(c.out, hideCursor+clearScreen)
	go c.read()
	return nil
}

// Shutdown stops input handling and restores the terminal.
func (c *Console) Shutdown() error {
	c.stopped.Do(func() {
		close(c.stopCh)
	})

	// Unblocks read where the input supports deadlines. A plain terminal
	// does not, and read then returns with the next byte it receives.
	c.in.SetReadDeadline(time.Now())

	if c.oldState == nil {
		return nil
	}

	io.WriteString(c.out, showCursor+clearScreen+cursorHome)
	err := term.Restore(c.fd, c.oldState)
	c.oldState = nil

	log.Println("console shutdown")
	return errors.Wrapf(err, "console: failed to restore terminal")
}

// Draw writes the given front buffer to the terminal.
func (c *Console) Draw(front []byte) error {
	_, err := io.WriteString(c.out, cursorHome+Render(front))
	return err
}

// read forwards input bytes until the input closes or Shutdown is called.
func (c *Console) read() {
	buf := make([]byte, 16)

	for {
		n, err := c.in.Read(buf)
		for _, b := range buf[:n] {
			select {
			case <-c.stopCh:
				return
			case c.keys <- b:
			default:
			}
		}

		if err != nil {
			return
		}
	}
}

// Render returns the framebuffer as text. Every character cell holds two
// vertically adjacent pixels, using half block characters. Lines end
// with "\r\n", as required in raw mode.
func Render(fb []byte) string {
	const w = arch.DisplayWidth

	var sb strings.Builder
	sb.Grow(arch.DisplaySize * 2)

	for y := 0; y < arch.DisplayHeight; y += 2 {
		top := fb[y*w : y*w+w]
		bottom := fb[(y+1)*w : (y+1)*w+w]

		for x := 0; x < w; x++ {
			switch {
			case top[x] != 0 && bottom[x] != 0:
				sb.WriteRune('█')
			case top[x] != 0:
				sb.WriteRune('▀')
			case bottom[x] != 0:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}

		sb.WriteString("\r\n")
	}

	return sb.String()
}
