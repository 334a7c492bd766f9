package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/gob8/arch"
	"github.com/hexaflex/gob8/asm/dbg"
	"github.com/hexaflex/gob8/vm"
)

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	config := &Config{PrintTrace: true}

	d := dbg.New("game.asm")
	d.Symbols = []dbg.Symbol{{Address: 0, Line: 2, Col: 4}}
	d.SetLabels(map[string]int{"start": 0})

	tr := tracer{config: config, debug: d, out: &buf}

	i := &vm.Instruction{PC: 0, Opcode: arch.Opcode(0x6005)}
	tr.trace(i)
	assert.Equal(t, fmt.Sprintf("%-32s game.asm:3:5 (start)\n", i.String()), buf.String())

	buf.Reset()
	tr.trace(&vm.Instruction{PC: 2, Opcode: arch.HALT})
	assert.Equal(t, "002: 00e1 hlt\n", buf.String())

	buf.Reset()
	config.PrintTrace = false
	tr.trace(i)
	assert.Empty(t, buf.String())
}

func TestTraceMachine(t *testing.T) {
	var buf bytes.Buffer
	tr := tracer{config: &Config{PrintTrace: true}, out: &buf}

	c := NewController([]byte{0x00, 0xe1}, 1, machineOptions(&Config{}, &tr)...)
	require.NoError(t, c.Startup())
	require.NoError(t, c.Step())
	assert.Equal(t, "000: 00e1 hlt\n", buf.String())
}

func TestLoadDebug(t *testing.T) {
	dir := t.TempDir()

	d, err := loadDebug(filepath.Join(dir, "missing.dbg"))
	require.NoError(t, err)
	assert.Nil(t, d)

	want := dbg.New("game.asm")
	want.Symbols = []dbg.Symbol{{Address: 0, Line: 1, Col: 2}}
	want.SetLabels(map[string]int{"loop": 0})

	path := filepath.Join(dir, "game.bin.dbg")
	fd, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, want.Save(fd))
	require.NoError(t, fd.Close())

	got, err := loadDebug(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))
	_, err = loadDebug(path)
	assert.Error(t, err)
}
