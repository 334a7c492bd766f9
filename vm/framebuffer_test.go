package vm

import (
	"strings"
	"testing"

	"github.com/hexaflex/gob8/arch"
	"github.com/hexaflex/gob8/asm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lit returns the indices of all set cells in fb.
func lit(fb []byte) []int {
	var out []int
	for i, v := range fb {
		if v != 0 {
			out = append(out, i)
		}
	}
	return out
}

func cell(x, y int) int {
	return y*arch.DisplayWidth + x
}

func TestSwap(t *testing.T) {
	//   mem 0x100
	//   draw v0, v0, 1
	//   swap
	//   draw v0, v0, 1
	//   clear
	//   hlt

	ct := newCodeTest()
	ct.emit(0xa100, 0xd000, arch.SWAP, 0xd000, arch.CLEAR, arch.HALT)

	m := ct.load(t)
	require.NoError(t, m.Memory().SetU8(0x100, 0x80))

	require.NoError(t, m.Step())
	require.NoError(t, m.Step())
	assert.Equal(t, []int{0}, lit(m.Work()))
	assert.Empty(t, lit(m.Front()))

	require.NoError(t, m.Step())
	assert.Equal(t, []int{0}, lit(m.Front()))
	assert.Empty(t, lit(m.Work()))

	require.NoError(t, m.Step())
	assert.Equal(t, []int{0}, lit(m.Work()))
	assert.Equal(t, []int{0}, lit(m.Front()))

	require.NoError(t, m.Step())
	assert.Empty(t, lit(m.Work()))
	assert.Equal(t, []int{0}, lit(m.Front()))
}

func TestFrameBuffersDistinct(t *testing.T) {
	var fb FrameBuffers
	fb.Work()[5] = 1
	assert.Equal(t, byte(0), fb.Front()[5])

	fb.Swap()
	assert.Equal(t, byte(1), fb.Front()[5])
	assert.Equal(t, byte(0), fb.Work()[5])

	fb.Swap()
	fb.Clear()
	assert.Empty(t, lit(fb.Work()))
	assert.Empty(t, lit(fb.Front()))
}

func drawTest(t *testing.T, x, y byte, sprite []byte, mode DrawMode) *Machine {
	t.Helper()

	//   mov v1, x
	//   mov v2, y
	//   mem 0x200
	//   draw v1, v2, len(sprite)
	//   hlt

	ct := newCodeTest()
	ct.emit(
		arch.EncodeByte(arch.Load, 1, int(x)),
		arch.EncodeByte(arch.Load, 2, int(y)),
		0xa200,
		arch.EncodeNibbles(arch.Draw, 1, 2, len(sprite)-1),
		arch.HALT,
	)

	m := ct.load(t, WithDrawMode(mode))
	require.NoError(t, m.Memory().Write(0x200, sprite))
	run(t, m)
	return m
}

func TestDrawConventional(t *testing.T) {
	m := drawTest(t, 2, 3, []byte{0xa0, 0xff}, DrawConventional)
	assert.Equal(t, []int{
		cell(2, 3), cell(4, 3),
		cell(2, 4), cell(3, 4), cell(4, 4), cell(5, 4),
		cell(6, 4), cell(7, 4), cell(8, 4), cell(9, 4),
	}, lit(m.Work()))
}

func TestDrawWraps(t *testing.T) {
	m := drawTest(t, 62, 31, []byte{0xc1, 0x80}, DrawConventional)
	assert.Equal(t, []int{
		cell(62, 0),
		cell(5, 31), cell(62, 31), cell(63, 31),
	}, lit(m.Work()))
}

func TestDrawXor(t *testing.T) {
	//   mem 0x100
	//   draw v0, v0, 1
	//   draw v0, v0, 1
	//   hlt

	ct := newCodeTest()
	ct.emit(0xa100, 0xd000, 0xd000, arch.HALT)

	m := ct.load(t)
	require.NoError(t, m.Memory().SetU8(0x100, 0xff))
	require.NoError(t, m.Step())
	require.NoError(t, m.Step())
	assert.Len(t, lit(m.Work()), 8)

	run(t, m)
	assert.Empty(t, lit(m.Work()))
}

func TestDrawLegacy(t *testing.T) {
	m := drawTest(t, 0, 0, []byte{0x01, 0x80}, DrawLegacy)
	assert.Equal(t, []int{8, 64 + 1}, lit(m.Work()))

	m = drawTest(t, 0, 31, []byte{0x00, 0x01}, DrawLegacy)
	assert.Equal(t, []int{8}, lit(m.Work()))
}

func TestDrawOutOfBounds(t *testing.T) {
	//   mem 0xfff
	//   draw v0, v0, 2

	ct := newCodeTest()
	ct.emit(0xafff, 0xd001)

	m := ct.load(t)
	require.NoError(t, m.Memory().SetU8(0xfff, 0xff))
	require.NoError(t, m.Step())

	err := m.Step()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, 2, m.PC())
	assert.Empty(t, lit(m.Work()))
}

func TestAssembledProgram(t *testing.T) {
	a, err := asm.Build(strings.NewReader(
		"mov v1, 0x06\nmov v2, 0x06\nmem 0x0ff\ndraw v1, v2, 4\nhlt"), "")
	require.NoError(t, err)
	require.Len(t, a.Bytes(), 10)

	m := New()
	require.NoError(t, m.Load(a.Bytes()))
	require.NoError(t, m.Memory().Write(0x0ff, []byte{0xf0, 0x90, 0x90, 0xf0}))
	run(t, m)

	assert.True(t, m.Halted())
	assert.Equal(t, arch.MemorySize, m.PC())
	assert.Equal(t, 0x0ff, m.Pointer())
	assert.Empty(t, lit(m.Front()))
	assert.Equal(t, []int{
		cell(6, 6), cell(7, 6), cell(8, 6), cell(9, 6),
		cell(6, 7), cell(9, 7),
		cell(6, 8), cell(9, 8),
		cell(6, 9), cell(7, 9), cell(8, 9), cell(9, 9),
	}, lit(m.Work()))
}
