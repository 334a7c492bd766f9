// Package vm implements the virtual machine which executes programs
// built by the assembler.
package vm

import (
	"io"
	"math/bits"
	"math/rand"
	"time"

	"github.com/hexaflex/gob8/arch"
	"github.com/pkg/errors"
)

// DrawMode selects how sprite bits map to framebuffer cells.
type DrawMode int

// Known draw modes.
const (
	// DrawConventional puts bit 7 of a sprite row in the left-most cell.
	// Coordinates wrap around the display edges.
	DrawConventional DrawMode = iota

	// DrawLegacy toggles cell x + (y+row)*64 + (8-bit) for each bit,
	// modulo the framebuffer size.
	DrawLegacy
)

// Option configures a Machine.
type Option func(*Machine)

// WithTrace sets the handler called with every decoded instruction.
func WithTrace(trace TraceFunc) Option {
	return func(m *Machine) {
		if trace != nil {
			m.trace = trace
		}
	}
}

// WithDrawMode selects the sprite addressing mode.
func WithDrawMode(mode DrawMode) Option {
	return func(m *Machine) {
		m.drawMode = mode
	}
}

// WithSeed makes the random number generator deterministic.
func WithSeed(seed int64) Option {
	return func(m *Machine) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// Machine implements the virtual CPU along with its memory,
// framebuffers and key state.
type Machine struct {
	trace    TraceFunc                // Handler for debug trace output.
	rng      *rand.Rand               // Random number generator.
	drawMode DrawMode                 // Sprite addressing mode.
	mem      Memory                   // Program memory, including the stack.
	fb       FrameBuffers             // Work and front framebuffers.
	v        [arch.RegisterCount]byte // General purpose registers; vf holds the flags.
	keys     [arch.KeyCount]bool      // Key state table.
	state    RunState                 // Running or awaiting input.
	instr    Instruction              // Last decoded instruction.
	i        uint16                   // Pointer register.
	pc       int                      // Program counter.
	sp       int                      // Stack pointer.
}

// New creates a new, zeroed machine.
func New(opts ...Option) *Machine {
	m := &Machine{
		trace: func(*Instruction) { /* nop */ },
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		mem:   NewMemory(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.Reset()
	return m
}

// Reset restores the machine to its initial state. Memory is zeroed.
func (m *Machine) Reset() {
	m.mem.clear()
	m.fb.reset()
	m.v = [arch.RegisterCount]byte{}
	m.keys = [arch.KeyCount]bool{}
	m.state = Running{}
	m.instr = Instruction{}
	m.i = 0
	m.pc = 0
	m.sp = arch.StackTop
}

// Load resets the machine and copies the given program image to address 0.
func (m *Machine) Load(image []byte) error {
	if len(image) > len(m.mem) {
		return errors.Errorf("vm: program of %d bytes exceeds memory size of %d bytes", len(image), len(m.mem))
	}

	m.Reset()
	return m.mem.Write(0, image)
}

// Memory returns the machine's memory bank.
func (m *Machine) Memory() Memory {
	return m.mem
}

// Front returns the framebuffer eligible for presentation.
func (m *Machine) Front() []byte {
	return m.fb.Front()
}

// Work returns the framebuffer currently being drawn into.
func (m *Machine) Work() []byte {
	return m.fb.Work()
}

// Register returns the value of register n. Returns 0 for unknown registers.
func (m *Machine) Register(n int) byte {
	if n < 0 || n >= arch.RegisterCount {
		return 0
	}
	return m.v[n]
}

// Pointer returns the pointer register.
func (m *Machine) Pointer() int {
	return int(m.i)
}

// PC returns the program counter.
func (m *Machine) PC() int {
	return m.pc
}

// State returns the current run state.
func (m *Machine) State() RunState {
	return m.state
}

// AwaitingInput returns true if the machine is blocked on a key press.
func (m *Machine) AwaitingInput() bool {
	_, ok := m.state.(AwaitingInput)
	return ok
}

// Halted returns true if the program counter has moved past the end of memory.
func (m *Machine) Halted() bool {
	return m.pc >= len(m.mem)
}

// SetKey sets the pressed state of the given key.
func (m *Machine) SetKey(key int, pressed bool) error {
	if key < 0 || key >= arch.KeyCount {
		return errors.Wrapf(ErrInvalidKey, "key %d", key)
	}
	m.keys[key] = pressed
	return nil
}

// ReceiveInput delivers a key press to a machine awaiting input.
// It stores key in the waiting register and resumes execution.
// Returns false if the machine was not waiting.
func (m *Machine) ReceiveInput(key byte) bool {
	w, ok := m.state.(AwaitingInput)
	if !ok {
		return false
	}

	m.v[w.Register] = key
	m.state = Running{}
	return true
}

// Step performs a single execution step.
//
// Returns io.EOF if the program has halted. While the machine awaits input,
// Step does nothing and returns nil. A failing instruction yields a *Fault
// and leaves the machine state untouched.
func (m *Machine) Step() error {
	if m.Halted() {
		return io.EOF
	}

	if m.AwaitingInput() {
		return nil
	}

	word, err := m.mem.U16(m.pc)
	if err != nil {
		return &Fault{PC: m.pc, Err: err}
	}

	m.instr = Instruction{PC: m.pc, Opcode: arch.Opcode(word)}
	m.trace(&m.instr)

	if m.instr.Opcode == arch.HALT {
		m.pc = len(m.mem)
		return io.EOF
	}

	next, err := m.execute(m.instr.Opcode)
	if err != nil {
		return &Fault{PC: m.pc, Opcode: m.instr.Opcode, Err: err}
	}

	m.pc = next
	return nil
}

// execute runs op and returns the address of the next instruction.
func (m *Machine) execute(op arch.Opcode) (int, error) {
	next := m.pc + 2
	x, y := op.X(), op.Y()

	switch op.Family() {
	case arch.Control:
		switch op {
		case arch.CLEAR:
			m.fb.Clear()
		case arch.SWAP:
			m.fb.Swap()
		case arch.RET:
			pc, err := m.pop()
			if err != nil {
				return 0, err
			}
			next = pc + 2
		}

	case arch.Jump:
		next = op.NNN()

	case arch.Call:
		if err := m.push(m.pc); err != nil {
			return 0, err
		}
		next = op.NNN()

	case arch.SkipEqual:
		if m.v[x] == op.KK() {
			next += 2
		}

	case arch.SkipNotEqual:
		if m.v[x] != op.KK() {
			next += 2
		}

	case arch.SkipRegEqual:
		if op.N() == 0 && m.v[x] == m.v[y] {
			next += 2
		}

	case arch.Load:
		m.v[x] = op.KK()

	case arch.AddImmediate:
		m.v[x] += op.KK()

	case arch.ALU:
		m.alu(op)

	case arch.SetPointer:
		m.i = uint16(op.NNN())

	case arch.JumpIndexed:
		next = int(m.v[0]) + op.NNN()

	case arch.Random:
		m.v[x] = byte(m.rng.Intn(256)) & op.KK()

	case arch.Draw:
		if err := m.draw(op); err != nil {
			return 0, err
		}

	case arch.KeySkip:
		switch op.KK() {
		case arch.KeyPressed, arch.KeyNotPressed:
			key := int(m.v[x])
			if key >= arch.KeyCount {
				return 0, errors.Wrapf(ErrInvalidKey, "key %d", key)
			}

			if m.keys[key] == (op.KK() == arch.KeyPressed) {
				next += 2
			}
		}

	case arch.Special:
		switch op.KK() {
		case arch.PointerAdd:
			m.i = (m.i + uint16(m.v[x])) & arch.AddressMask
		case arch.AwaitKey:
			m.state = AwaitingInput{Register: x}
		}
	}

	return next, nil
}

// alu executes the register-register operations of family 8.
func (m *Machine) alu(op arch.Opcode) {
	x, y := op.X(), op.Y()
	vx, vy := uint16(m.v[x]), uint16(m.v[y])

	switch op.N() {
	case arch.AluMove:
		m.v[x] = m.v[y]
	case arch.AluOr:
		m.v[x] |= m.v[y]
	case arch.AluAnd:
		m.v[x] &= m.v[y]
	case arch.AluXor:
		m.v[x] ^= m.v[y]
	case arch.AluAdd:
		m.setResult(x, vx+vy)
	case arch.AluSub:
		m.setResult(x, vx-vy)
	case arch.AluSubRev:
		m.setResult(x, vy-vx)
	case arch.AluRotR:
		m.v[x] = bits.RotateLeft8(m.v[x], -int(m.v[y]%8))
	case arch.AluRotL:
		m.v[x] = bits.RotateLeft8(m.v[x], int(m.v[y]%8))
	}
}

// setResult stores the low byte of res in register x, then updates
// the flags register from the full 16-bit result.
func (m *Machine) setResult(x int, res uint16) {
	m.v[x] = byte(res)

	flags := m.v[arch.FlagRegister]
	flags = setFlag(flags, arch.FlagCarry, res > 0xff)
	flags = setFlag(flags, arch.FlagSign, res > 127)
	flags = setFlag(flags, arch.FlagZero, res&0xff == 0)
	m.v[arch.FlagRegister] = flags
}

func setFlag(flags, flag byte, v bool) byte {
	if v {
		return flags | flag
	}
	return flags &^ flag
}

// draw XORs a sprite from memory at the pointer register into the
// work framebuffer. The whole sprite is read before any cell changes.
func (m *Machine) draw(op arch.Opcode) error {
	var sprite [arch.MaxSpriteRows]byte

	rows := sprite[:op.N()+1]
	if err := m.mem.Read(int(m.i), rows); err != nil {
		return err
	}

	x, y := int(m.v[op.X()]), int(m.v[op.Y()])
	work := m.fb.Work()

	for row, line := range rows {
		for bit := 0; bit < arch.SpriteWidth; bit++ {
			var cell int
			var pixel byte

			if m.drawMode == DrawLegacy {
				cell = (x + (y+row)*arch.DisplayWidth + arch.SpriteWidth - bit) % arch.DisplaySize
				pixel = (line >> uint(bit)) & 1
			} else {
				cx := (x + bit) % arch.DisplayWidth
				cy := (y + row) % arch.DisplayHeight
				cell = cy*arch.DisplayWidth + cx
				pixel = (line >> uint(arch.SpriteWidth-1-bit)) & 1
			}

			work[cell] ^= pixel
		}
	}

	return nil
}
