package keypad

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/gob8/vm"
)

func TestLayout(t *testing.T) {
	assert := assert.New(t)

	seen := make(map[int]bool)
	for _, m := range layout {
		assert.False(seen[m.symbol], "duplicate symbol %x", m.symbol)
		seen[m.symbol] = true
	}
	assert.Len(seen, 16)

	tests := map[byte]int{
		'1': 0x1, '4': 0xc, 'q': 0x4, 'R': 0xd,
		'a': 0x7, 'f': 0xe, 'x': 0x0, 'V': 0xf,
	}
	for c, want := range tests {
		have, ok := FromByte(c)
		assert.True(ok, "%c", c)
		assert.Equal(want, have, "%c", c)
	}

	_, ok := FromByte('5')
	assert.False(ok)

	symbol, ok := FromGLFW(glfw.KeyC)
	assert.True(ok)
	assert.Equal(0xb, symbol)

	_, ok = FromGLFW(glfw.KeyEscape)
	assert.False(ok)
}

func TestPressDeliversInput(t *testing.T) {
	m := vm.New()
	require.NoError(t, m.Load([]byte{0xf3, 0x0a})) // key v3
	require.NoError(t, m.Step())
	require.True(t, m.AwaitingInput())

	k := New(m)
	require.NoError(t, k.Press(0x7))
	assert.False(t, m.AwaitingInput())
	assert.Equal(t, byte(0x7), m.Register(3))

	assert.Error(t, k.Press(16))
}

type fakeMachine struct {
	keys    [16]bool
	waiting bool
	input   []byte
}

func (f *fakeMachine) SetKey(key int, pressed bool) error {
	if key < 0 || key > 15 {
		return vm.ErrInvalidKey
	}
	f.keys[key] = pressed
	return nil
}

func (f *fakeMachine) AwaitingInput() bool { return f.waiting }

func (f *fakeMachine) ReceiveInput(key byte) bool {
	f.input = append(f.input, key)
	f.waiting = false
	return true
}

func TestTap(t *testing.T) {
	f := &fakeMachine{}
	k := New(f)

	require.NoError(t, k.Tap(0xa))
	assert.True(t, f.keys[0xa])
	assert.Empty(t, f.input)

	for i := 0; i < HoldFrames-1; i++ {
		require.NoError(t, k.Tick())
		assert.True(t, f.keys[0xa])
	}

	require.NoError(t, k.Tick())
	assert.False(t, f.keys[0xa])

	f.waiting = true
	require.NoError(t, k.Tap(0x3))
	assert.Equal(t, []byte{0x3}, f.input)

	require.NoError(t, k.Release(0x3))
	assert.False(t, f.keys[0x3])
}
