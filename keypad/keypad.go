// Package keypad maps physical keys onto the machine's 16 input symbols
// and forwards presses to it.
//
// The physical layout is the left-hand 4x4 block of a QWERTY keyboard:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
package keypad

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/gob8/arch"
)

// HoldFrames is the number of Tick calls a tapped key remains pressed.
// Terminals report key presses only, never releases.
const HoldFrames = 6

type mapping struct {
	key    glfw.Key
	char   byte
	symbol int
}

var layout = [arch.KeyCount]mapping{
	{glfw.Key1, '1', 0x1}, {glfw.Key2, '2', 0x2}, {glfw.Key3, '3', 0x3}, {glfw.Key4, '4', 0xc},
	{glfw.KeyQ, 'q', 0x4}, {glfw.KeyW, 'w', 0x5}, {glfw.KeyE, 'e', 0x6}, {glfw.KeyR, 'r', 0xd},
	{glfw.KeyA, 'a', 0x7}, {glfw.KeyS, 's', 0x8}, {glfw.KeyD, 'd', 0x9}, {glfw.KeyF, 'f', 0xe},
	{glfw.KeyZ, 'z', 0xa}, {glfw.KeyX, 'x', 0x0}, {glfw.KeyC, 'c', 0xb}, {glfw.KeyV, 'v', 0xf},
}

// FromGLFW returns the symbol for the given window system key.
// Returns false if the key is not mapped.
func FromGLFW(key glfw.Key) (int, bool) {
	for _, m := range layout {
		if m.key == key {
			return m.symbol, true
		}
	}
	return 0, false
}

// FromByte returns the symbol for the given terminal input byte.
// Letters are case-insensitive. Returns false if the byte is not mapped.
func FromByte(c byte) (int, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}

	for _, m := range layout {
		if m.char == c {
			return m.symbol, true
		}
	}
	return 0, false
}

// Machine is the part of the virtual machine the keypad talks to.
type Machine interface {
	SetKey(key int, pressed bool) error
	AwaitingInput() bool
	ReceiveInput(key byte) bool
}

// Keypad tracks key state and forwards it to a machine.
type Keypad struct {
	m    Machine
	hold [arch.KeyCount]int
}

// New creates a keypad feeding the given machine.
func New(m Machine) *Keypad {
	return &Keypad{m: m}
}

// Press marks the symbol as pressed. If the machine is waiting for input,
// the symbol is delivered to it.
func (k *Keypad) Press(symbol int) error {
	if err := k.m.SetKey(symbol, true); err != nil {
		return err
	}

	if k.m.AwaitingInput() {
		k.m.ReceiveInput(byte(symbol))
	}

	return nil
}

// Release marks the symbol as released.
func (k *Keypad) Release(symbol int) error {
	if err := k.m.SetKey(symbol, false); err != nil {
		return err
	}

	k.hold[symbol] = 0
	return nil
}

// Tap presses the symbol and releases it after HoldFrames calls to Tick.
func (k *Keypad) Tap(symbol int) error {
	if err := k.Press(symbol); err != nil {
		return err
	}

	k.hold[symbol] = HoldFrames
	return nil
}

// Tick releases tapped keys whose hold time ran out.
func (k *Keypad) Tick() error {
	for symbol, n := range k.hold {
		if n == 0 {
			continue
		}

		k.hold[symbol]--
		if k.hold[symbol] == 0 {
			if err := k.m.SetKey(symbol, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// KeyCallback returns a glfw key handler which forwards mapped keys.
// Unmapped keys are passed to next, which may be nil.
func (k *Keypad) KeyCallback(next glfw.KeyCallback) glfw.KeyCallback {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		symbol, ok := FromGLFW(key)
		if !ok {
			if next != nil {
				next(w, key, scancode, action, mods)
			}
			return
		}

		switch action {
		case glfw.Press:
			k.Press(symbol)
		case glfw.Release:
			k.Release(symbol)
		}
	}
}
