package console

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/gob8/arch"
)

func TestRender(t *testing.T) {
	fb := make([]byte, arch.DisplaySize)
	fb[0] = 1                   // (0, 0)
	fb[arch.DisplayWidth+1] = 1 // (1, 1)
	fb[2] = 1                   // (2, 0)
	fb[arch.DisplayWidth+2] = 1 // (2, 1)
	fb[arch.DisplaySize-1] = 1  // (63, 31)

	lines := strings.Split(Render(fb), "\r\n")
	require.Len(t, lines, arch.DisplayHeight/2+1)
	assert.Equal(t, "", lines[len(lines)-1])

	first := []rune(lines[0])
	require.Len(t, first, arch.DisplayWidth)
	assert.Equal(t, "▀▄█", string(first[:3]))
	assert.Equal(t, strings.Repeat(" ", arch.DisplayWidth-3), string(first[3:]))

	last := []rune(lines[arch.DisplayHeight/2-1])
	assert.Equal(t, '▄', last[arch.DisplayWidth-1])
}

func TestStartupRequiresTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var out bytes.Buffer
	c := New(r, &out)
	assert.Error(t, c.Startup())
	assert.NoError(t, c.Shutdown())
	assert.Empty(t, out.String())
}

func TestDraw(t *testing.T) {
	var out bytes.Buffer
	c := New(os.Stdin, &out)

	require.NoError(t, c.Draw(make([]byte, arch.DisplaySize)))
	assert.True(t, strings.HasPrefix(out.String(), cursorHome))
}

func TestShutdownStopsReader(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	c := New(r, &bytes.Buffer{})

	done := make(chan struct{})
	go func() {
		c.read()
		close(done)
	}()

	_, err = w.Write([]byte("q"))
	require.NoError(t, err)
	assert.Equal(t, byte('q'), <-c.Keys())

	require.NoError(t, c.Shutdown())
	assert.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
