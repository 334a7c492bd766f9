package arch

// Memory layout.
const (
	MemorySize    = 0x1000         // Program memory size in bytes.
	AddressMask   = MemorySize - 1 // Mask for 12-bit addresses.
	StackTop      = MemorySize - 1 // Initial stack pointer.
	StackEntry    = 2              // Bytes occupied by a single stack entry.
	RegisterCount = 16             // Number of 8-bit registers.
	KeyCount      = 16             // Number of input symbols.
)

// Display layout.
const (
	DisplayWidth  = 64                           // Framebuffer width in cells.
	DisplayHeight = 32                           // Framebuffer height in cells.
	DisplaySize   = DisplayWidth * DisplayHeight // Cells in a single framebuffer.
	SpriteWidth   = 8                            // A sprite row is one byte wide.
	MaxSpriteRows = 16                           // Largest height a draw can encode.
)
