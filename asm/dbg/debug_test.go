package dbg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	d := New("path/to/game.asm")
	d.Symbols = append(d.Symbols,
		Symbol{Address: 0, Line: 3, Col: 4},
		Symbol{Address: 2, Line: 70000, Col: 0})
	d.SetLabels(map[string]int{"loop": 2, "start": 0, "again": 2})

	var buf bytes.Buffer
	require.NoError(t, d.Save(&buf))

	var have Debug
	require.NoError(t, have.Load(&buf))
	assert.Equal(t, d, &have)
}

func TestLoadInvalid(t *testing.T) {
	var d Debug
	assert.Error(t, d.Load(bytes.NewBufferString("not gzip")))
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	d := New("")
	d.Symbols = []Symbol{{Address: 0, Line: 1}, {Address: 2, Line: 2}, {Address: 6, Line: 5}}
	d.SetLabels(map[string]int{"loop": 2, "again": 2})

	if assert.NotNil(d.Find(6)) {
		assert.Equal(5, d.Find(6).Line)
	}
	assert.Nil(d.Find(4))
	assert.Nil(d.Find(8))

	name, ok := d.LabelAt(2)
	assert.True(ok)
	assert.Equal("again", name)

	_, ok = d.LabelAt(0)
	assert.False(ok)
}

func TestSaveLoadLarge(t *testing.T) {
	d := New("big.asm")
	for i := 0; i < 70000; i++ {
		d.Symbols = append(d.Symbols, Symbol{Address: i * 2, Line: i})
	}
	d.SetLabels(map[string]int{"end": 0x12344})

	var buf bytes.Buffer
	require.NoError(t, d.Save(&buf))

	var have Debug
	require.NoError(t, have.Load(&buf))
	require.Len(t, have.Symbols, 70000)
	assert.Equal(t, Symbol{Address: 139998, Line: 69999}, have.Symbols[69999])
	assert.Equal(t, []Label{{Name: "end", Address: 0x12344}}, have.Labels)
}
