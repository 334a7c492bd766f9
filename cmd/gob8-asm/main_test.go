package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/gob8/asm/dbg"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.asm")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestRun(t *testing.T) {
	in := writeSource(t, "start:\n  mov v0, 5 ; five\n  jmp start\n")
	out := filepath.Join(t.TempDir(), "build", "game.bin")

	code := run(&Config{Input: in, Output: out, DebugBuild: true})
	require.Equal(t, 0, code)

	image, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x05, 0x10, 0x00}, image)

	fd, err := os.Open(out + ".dbg")
	require.NoError(t, err)
	defer fd.Close()

	var d dbg.Debug
	require.NoError(t, d.Load(fd))
	assert.Equal(t, in, d.File)
	assert.Len(t, d.Symbols, 2)
	assert.Equal(t, []dbg.Label{{Name: "start", Address: 0}}, d.Labels)
}

func TestRunAssemblyError(t *testing.T) {
	in := writeSource(t, "mov v0, 1\nmov v0 2\n")
	out := filepath.Join(t.TempDir(), "game.bin")

	assert.Equal(t, 1, run(&Config{Input: in, Output: out, DebugBuild: true}))

	image, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x01}, image)

	_, err = os.Stat(out + ".dbg")
	assert.True(t, os.IsNotExist(err))
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	code := run(&Config{
		Input:  filepath.Join(dir, "missing.asm"),
		Output: filepath.Join(dir, "game.bin"),
	})
	assert.Equal(t, 1, code)
}

func TestRunOversizedImage(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	in := writeSource(t, "times 4096 dw 0\n")
	out := filepath.Join(t.TempDir(), "game.bin")

	require.Equal(t, 0, run(&Config{Input: in, Output: out}))
	assert.Contains(t, buf.String(), "image is 8192 bytes; the emulator will refuse to load images over 4096 bytes")

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.EqualValues(t, 8192, info.Size())
}
