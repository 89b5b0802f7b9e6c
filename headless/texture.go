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

package headless

import (
	"fmt"

	"github.com/videochain/videochain/chain"
)

// Texture implements the chain.Texture interface.
type Texture struct {
	dev     *Device
	w, h    int
	format  chain.PixelFormat
	target  bool
	pitch   int
	pix     []byte
	locked  bool
	release bool
}

// Size implements the chain.Texture interface.
func (tex *Texture) Size() (int, int) {
	return tex.w, tex.h
}

// Format implements the chain.Texture interface.
func (tex *Texture) Format() chain.PixelFormat {
	return tex.format
}

// Pitch returns the number of bytes between the start of each row.
func (tex *Texture) Pitch() int {
	return tex.pitch
}

// Pixels returns the texture data. The slice should not be modified.
func (tex *Texture) Pixels() []byte {
	return tex.pix
}

// Lock implements the chain.Texture interface.
func (tex *Texture) Lock() ([]byte, int, error) {
	if tex.release {
		return nil, 0, fmt.Errorf("headless: lock: texture has been released")
	}
	if tex.locked {
		return nil, 0, fmt.Errorf("headless: lock: texture is already locked")
	}
	if tex.dev.Faults.Lock {
		return nil, 0, fmt.Errorf("headless: lock: fault")
	}
	tex.locked = true
	return tex.pix, tex.pitch, nil
}

// Unlock implements the chain.Texture interface.
func (tex *Texture) Unlock() error {
	if !tex.locked {
		return fmt.Errorf("headless: unlock: texture is not locked")
	}
	tex.locked = false
	return nil
}

// Release implements the chain.Releaser interface.
func (tex *Texture) Release() {
	tex.dev.released(&tex.release)
	tex.pix = nil
}

// argb returns the texel at x, y in the ARGB format. Coordinates outside the
// texture return black.
func (tex *Texture) argb(x, y int) [4]byte {
	if tex == nil || tex.pix == nil || x < 0 || y < 0 || x >= tex.w || y >= tex.h {
		return [4]byte{0, 0, 0, 0xff}
	}

	o := y*tex.pitch + x*tex.format.Size()
	if tex.format == chain.RGB15 {
		v := uint16(tex.pix[o]) | uint16(tex.pix[o+1])<<8
		r := byte(v>>10) & 0x1f
		g := byte(v>>5) & 0x1f
		b := byte(v) & 0x1f
		return [4]byte{b<<3 | b>>2, g<<3 | g>>2, r<<3 | r>>2, 0xff}
	}

	return [4]byte{tex.pix[o], tex.pix[o+1], tex.pix[o+2], 0xff}
}

// alpha returns the alpha of the texel at x, y. Only ARGB textures have an
// alpha channel.
func (tex *Texture) alpha(x, y int) byte {
	if tex == nil || tex.pix == nil || tex.format != chain.ARGB || x < 0 || y < 0 || x >= tex.w || y >= tex.h {
		return 0xff
	}
	return tex.pix[y*tex.pitch+x*4+3]
}

func (tex *Texture) setARGB(x, y int, c [4]byte) {
	o := y*tex.pitch + x*4
	copy(tex.pix[o:o+4], c[:])
}

// VertexBuffer implements the chain.VertexBuffer interface.
type VertexBuffer struct {
	dev     *Device
	quad    chain.Quad
	updates int
	release bool
}

// Update implements the chain.VertexBuffer interface.
func (vb *VertexBuffer) Update(q chain.Quad) error {
	if vb.release {
		return fmt.Errorf("headless: update: vertex buffer has been released")
	}
	vb.quad = q
	vb.updates++
	return nil
}

// Quad returns the most recent quad given to Update().
func (vb *VertexBuffer) Quad() chain.Quad {
	return vb.quad
}

// Updates returns the number of calls to Update().
func (vb *VertexBuffer) Updates() int {
	return vb.updates
}

// Release implements the chain.Releaser interface.
func (vb *VertexBuffer) Release() {
	vb.dev.released(&vb.release)
}
