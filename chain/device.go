// This file is part of Videochain.
//
// Videochain is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Videochain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Videochain.  If not, see <https://www.gnu.org/licenses/>.

package chain

import "fmt"

// PixelFormat of the raw frames given to the chain. It is fixed for the
// lifetime of the chain.
type PixelFormat int

// List of valid PixelFormat values.
const (
	// 0RRRRRGGGGGBBBBB packed into two bytes, little endian
	RGB15 PixelFormat = iota

	// XRGB8888 packed into four bytes, little endian. ie. the bytes are in
	// the order B, G, R, X
	ARGB
)

// Size returns the number of bytes used by a single pixel.
func (f PixelFormat) Size() int {
	if f == RGB15 {
		return 2
	}
	return 4
}

func (f PixelFormat) String() string {
	switch f {
	case RGB15:
		return "RGB15"
	case ARGB:
		return "ARGB"
	}
	return fmt.Sprintf("unknown pixel format (%d)", int(f))
}

// Conventions of the device that affect how geometry is built.
type Conventions struct {
	// vertices are offset by half a pixel so that texels and pixels align
	HalfPixelOffset bool

	// the origin of a render target texture is the lower left corner. the
	// projection is flipped vertically when rendering into a texture so that
	// row zero of every texture is the top of the image
	LowerLeftTargets bool
}

// Releaser is implemented by every resource created by a Device or a
// Compiler.
type Releaser interface {
	Release()
}

// Texture is an image held by the device.
type Texture interface {
	Releaser

	// Size returns the allocated size of the texture
	Size() (int, int)
	Format() PixelFormat

	// Lock gives access to the texture data. The returned pitch is the
	// number of bytes between the start of each row, which may be more than
	// the width of the texture multiplied by the pixel size. Unlock() must
	// be called when access is finished.
	Lock() ([]byte, int, error)
	Unlock() error
}

// VertexBuffer holds the four vertices of a single quad.
type VertexBuffer interface {
	Releaser
	Update(q Quad) error
}

// Device is the graphics device used by the chain.
type Device interface {
	Conventions() Conventions

	// NewTexture creates a texture cleared to zero. Render targets are
	// created with the target flag.
	NewTexture(w, h int, format PixelFormat, target bool) (Texture, error)
	NewVertexBuffer() (VertexBuffer, error)

	// Copy the contents of src to dst. Textures are the same size and format.
	Copy(dst Texture, src Texture) error

	// SetRenderTarget changes where Draw() and Clear() output to. A nil
	// texture indicates the back buffer.
	SetRenderTarget(tex Texture) error
	SetViewport(vp Rect)

	// Clear the current viewport of the render target to black.
	Clear() error

	// BindTexture and UnbindTexture attach a texture to a sampler unit.
	// Unit zero is the input texture of the pass being drawn. A nil texture
	// is valid and samples as black.
	BindTexture(unit int, tex Texture, filter Filter)
	UnbindTexture(unit int)

	// Draw the quad in the vertex buffer with the program as a triangle strip.
	Draw(prog Program, vb VertexBuffer) error

	// ReadPixels reads the back buffer inside the rectangle. Pixels are
	// returned in the ARGB format with the top row first.
	ReadPixels(r Rect) ([]byte, error)
}

// Uniform is a value declared by a shader stage.
type Uniform interface {
	Set(v ...float32)
	SetInt(v int32)
	SetMatrix(m Matrix)
}

// Attribute is a vertex stream declared by a shader stage. The texture
// coordinates of the vertex buffer are streamed to it.
type Attribute interface {
	Bind(vb VertexBuffer)
	Unbind()
}

// Stage is one half of a compiled shader program. The second return value of
// Uniform() and Attribute() is false if the stage does not declare the name.
type Stage interface {
	Uniform(name string) (Uniform, bool)
	Attribute(name string) (Attribute, bool)
}

// Program is a linked pair of shader stages.
type Program interface {
	Releaser
	Vertex() Stage
	Fragment() Stage
}

// Entry point names used when compiling shader source.
const (
	VertexEntry   = "main_vertex"
	FragmentEntry = "main_fragment"
)

// Compiler creates programs from shader source.
type Compiler interface {
	// Compile both stages of the source using the entry points VertexEntry
	// and FragmentEntry. The name is used for error messages.
	Compile(name string, source string) (Program, error)

	// Stock returns the source of a passthrough shader, used by passes that
	// do not specify a shader.
	Stock() string
}
