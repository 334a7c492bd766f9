package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/gob8/vm"
)

func startController(t *testing.T, speed int, image ...byte) *Controller {
	c := NewController(image, speed)
	require.NoError(t, c.Startup())
	c.Start()
	return c
}

func TestControllerHalts(t *testing.T) {
	c := startController(t, 10, 0x60, 0x05, 0x00, 0xe1)

	require.NoError(t, c.Tick())
	assert.False(t, c.Running())
	assert.True(t, c.Machine().Halted())
	assert.EqualValues(t, 5, c.Machine().Register(0))
}

func TestControllerSpeed(t *testing.T) {
	// add v0, 1; jmp 0
	c := startController(t, 4, 0x70, 0x01, 0x10, 0x00)

	require.NoError(t, c.Tick())
	assert.True(t, c.Running())
	assert.EqualValues(t, 2, c.Machine().Register(0))

	require.NoError(t, c.Tick())
	assert.EqualValues(t, 4, c.Machine().Register(0))
}

func TestControllerPaused(t *testing.T) {
	c := NewController([]byte{0x70, 0x01}, 1)
	require.NoError(t, c.Startup())

	require.NoError(t, c.Tick())
	assert.Equal(t, 0, c.Machine().PC())

	require.NoError(t, c.Step())
	assert.Equal(t, 2, c.Machine().PC())
	assert.False(t, c.Running())
}

func TestControllerAwaitingInput(t *testing.T) {
	// key v3; hlt
	c := startController(t, 10, 0xf3, 0x0a, 0x00, 0xe1)

	require.NoError(t, c.Tick())
	assert.True(t, c.Machine().AwaitingInput())
	assert.Equal(t, 2, c.Machine().PC())

	require.NoError(t, c.Tick())
	assert.Equal(t, 2, c.Machine().PC())

	require.NoError(t, c.Keypad().Tap(7))
	assert.False(t, c.Machine().AwaitingInput())
	assert.EqualValues(t, 7, c.Machine().Register(3))

	require.NoError(t, c.Tick())
	assert.True(t, c.Machine().Halted())
}

func TestControllerFault(t *testing.T) {
	c := startController(t, 10, 0x00, 0xee)

	err := c.Tick()
	require.Error(t, err)
	assert.ErrorIs(t, err, vm.ErrStackUnderflow)
	assert.False(t, c.Running())
}

func TestControllerReset(t *testing.T) {
	c := startController(t, 1, 0x60, 0x05, 0x00, 0xe1)

	require.NoError(t, c.Tick())
	assert.EqualValues(t, 5, c.Machine().Register(0))

	require.NoError(t, c.Reset())
	assert.EqualValues(t, 0, c.Machine().Register(0))
	assert.Equal(t, 0, c.Machine().PC())
}

func TestControllerImageTooLarge(t *testing.T) {
	c := NewController(make([]byte, 5000), 1)
	assert.Error(t, c.Startup())
}
