package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := map[string]uint32{
		"#33ff66":  0x33ff66,
		"33FF66":   0x33ff66,
		"0x000000": 0,
		" #ffffff": 0xffffff,
	}

	for in, want := range tests {
		have, err := ParseColor(in)
		if assert.NoError(t, err, in) {
			assert.Equal(t, want, have, in)
		}
	}

	for _, in := range []string{"", "#fff", "#gggggg", "0x1234567"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestN2F(t *testing.T) {
	var p [4]float32
	n2f(0xff0033, p[:])
	assert.Equal(t, [4]float32{1, 0, 0.2, 1}, p)
}

func TestExpand(t *testing.T) {
	dst := make([]byte, 4)

	assert.True(t, expand(dst, []byte{0, 1, 0, 3}))
	assert.Equal(t, []byte{0, 1, 0, 1}, dst)
	assert.False(t, expand(dst, []byte{0, 2, 0, 1}))

	d := New(DefaultBackground, DefaultForeground)
	d.Update([]byte{1})
	assert.True(t, d.pixelsDirty)
	assert.Equal(t, byte(1), d.pixels[0])
}
