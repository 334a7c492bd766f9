// Package display renders a machine framebuffer through OpenGL.
package display

import (
	"log"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/gob8/arch"
)

// Display presents the 64x32 framebuffer as a texture covering the whole
// viewport. It must be used from the thread owning the GL context.
type Display struct {
	palette      [2 * 4]float32
	pixels       [arch.DisplaySize]byte
	shader       uint32
	vao          uint32
	vbo          uint32
	screenTex    uint32
	paletteDirty bool
	pixelsDirty  bool
	initialized  bool
}

// New creates a new display with the given background and foreground colors.
func New(background, foreground uint32) *Display {
	var d Display
	d.SetPalette(background, foreground)
	return &d
}

// SetPalette sets the colors for unset and set cells.
func (d *Display) SetPalette(background, foreground uint32) {
	n2f(background, d.palette[0:4])
	n2f(foreground, d.palette[4:8])
	d.paletteDirty = true
}

// Update copies the given front buffer into the display.
func (d *Display) Update(front []byte) {
	if expand(d.pixels[:], front) {
		d.pixelsDirty = true
	}
}

// Draw renders the display contents.
func (d *Display) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)

	if d.paletteDirty {
		palette := gl.GetUniformLocation(d.shader, glStr("palette"))
		gl.Uniform4fv(palette, 2, &d.palette[0])
		d.paletteDirty = false
	}

	if d.pixelsDirty {
		uploadTexture(d.screenTex, arch.DisplayWidth, arch.DisplayHeight, d.pixels[:])
		d.pixelsDirty = false
	}

	gl.BindVertexArray(d.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.screenTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// Startup initializes GL resources. Requires a current GL context.
func (d *Display) Startup() error {
	var err error

	log.Println("display startup")

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.screenTex = makeTexture()

	d.paletteDirty = true
	d.pixelsDirty = true
	d.initialized = true
	return nil
}

// Shutdown clears up GL resources.
func (d *Display) Shutdown() error {
	if !d.initialized {
		return nil
	}

	log.Println("display shutdown")

	d.initialized = false
	gl.DeleteTextures(1, &d.screenTex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}
