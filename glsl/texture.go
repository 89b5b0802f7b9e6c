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

package glsl

import (
	"unsafe"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/curated"
)

// formats returns the internal format, pixel format and pixel type used for
// a chain.PixelFormat.
//
// The top bit of an RGB15 pixel is unused. The internal format has no alpha
// channel so that the texture samples as opaque.
func formats(f chain.PixelFormat) (int32, uint32, uint32) {
	if f == chain.RGB15 {
		return gl.RGB5, gl.BGRA, gl.UNSIGNED_SHORT_1_5_5_5_REV
	}
	return gl.RGBA8, gl.BGRA, gl.UNSIGNED_INT_8_8_8_8_REV
}

// Texture implements the chain.Texture interface.
type Texture struct {
	dev    *Device
	id     uint32
	width  int
	height int
	format chain.PixelFormat
	target bool

	// copy of the texture data in main memory. textures that are render
	// targets do not have a shadow
	shadow []byte
	locked bool
}

// ID returns the OpenGL texture name.
func (tex *Texture) ID() uint32 {
	return tex.id
}

// Size implements the chain.Texture interface.
func (tex *Texture) Size() (int, int) {
	return tex.width, tex.height
}

// Format implements the chain.Texture interface.
func (tex *Texture) Format() chain.PixelFormat {
	return tex.format
}

func (tex *Texture) pixFormat() uint32 {
	_, f, _ := formats(tex.format)
	return f
}

func (tex *Texture) pixType() uint32 {
	_, _, t := formats(tex.format)
	return t
}

// Lock implements the chain.Texture interface.
func (tex *Texture) Lock() ([]byte, int, error) {
	if tex.id == 0 {
		return nil, 0, curated.Errorf(DeviceError, "lock: texture has been released")
	}
	if tex.shadow == nil {
		return nil, 0, curated.Errorf(DeviceError, "lock: render targets cannot be locked")
	}
	if tex.locked {
		return nil, 0, curated.Errorf(DeviceError, "lock: texture is already locked")
	}
	tex.locked = true
	return tex.shadow, tex.width * tex.format.Size(), nil
}

// Unlock implements the chain.Texture interface. The texture data is uploaded
// to the device.
func (tex *Texture) Unlock() error {
	if !tex.locked {
		return curated.Errorf(DeviceError, "unlock: texture is not locked")
	}
	tex.locked = false
	tex.upload()
	return tex.dev.check("unlock")
}

func (tex *Texture) upload() {
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(tex.width), int32(tex.height),
		tex.pixFormat(), tex.pixType(), gl.Ptr(tex.shadow))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Release implements the chain.Releaser interface.
func (tex *Texture) Release() {
	if tex.id == 0 {
		return
	}
	if tex.dev.target == tex {
		tex.dev.SetRenderTarget(nil)
	}
	gl.DeleteTextures(1, &tex.id)
	tex.id = 0
	tex.shadow = nil
	tex.dev.live--
}

// VertexBuffer implements the chain.VertexBuffer interface.
type VertexBuffer struct {
	dev *Device
	id  uint32
}

// Update implements the chain.VertexBuffer interface.
func (vb *VertexBuffer) Update(q chain.Quad) error {
	if vb.id == 0 {
		return curated.Errorf(DeviceError, "update: vertex buffer has been released")
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, quadSize, unsafe.Pointer(&q[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vb.dev.check("update")
}

// Release implements the chain.Releaser interface.
func (vb *VertexBuffer) Release() {
	if vb.id == 0 {
		return
	}
	gl.DeleteBuffers(1, &vb.id)
	vb.id = 0
	vb.dev.live--
}
