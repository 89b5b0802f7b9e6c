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
	"maps"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/logger"
)

// Faults causes the corresponding device operations to fail.
type Faults struct {
	Texture      bool
	VertexBuffer bool
	Lock         bool
	Draw         bool
}

// Draw is the record of a single call to Device.Draw().
type Draw struct {
	// the render target. nil for the back buffer
	Target   *Texture
	Viewport chain.Rect
	Quad     chain.Quad
	Program  *Program

	// values of the program's uniforms at the time of the draw
	Uniforms map[string][]float32

	// textures bound to each sampler unit and vertex buffers bound to each
	// attribute at the time of the draw
	Units      map[int]*Texture
	Attributes map[string]*VertexBuffer
}

// Uniform returns the value of the named uniform at the time of the draw.
func (d Draw) Uniform(name string) ([]float32, bool) {
	v, ok := d.Uniforms[name]
	return v, ok
}

// Device implements the chain.Device interface.
type Device struct {
	Faults Faults

	// additional bytes at the end of each row of a texture
	Padding int

	back     *Texture
	target   *Texture
	viewport chain.Rect
	blend    bool

	units map[int]*Texture
	attrs map[*attribute]*VertexBuffer

	live     int
	doubles  int
	draws    []Draw
	maxDraws int
}

// NewDevice is the preferred method of initialisation for the Device type. The
// width and height are the size of the back buffer.
func NewDevice(width, height int) *Device {
	dev := &Device{
		units:    make(map[int]*Texture),
		attrs:    make(map[*attribute]*VertexBuffer),
		maxDraws: 1024,
	}
	dev.Resize(width, height)
	logger.Logf(logger.Allow, "headless", "device with %dx%d back buffer", width, height)
	return dev
}

// Resize the back buffer. The contents of the back buffer are lost.
func (dev *Device) Resize(width, height int) {
	dev.back = &Texture{
		dev:    dev,
		w:      width,
		h:      height,
		format: chain.ARGB,
		target: true,
		pitch:  width * 4,
		pix:    make([]byte, width*height*4),
	}
	if dev.target == nil {
		dev.viewport = chain.Rect{Width: width, Height: height}
	}
}

// SetBlend enables blending of subsequent draws. The headless device only
// supports an alpha test: texels with an alpha of zero are not drawn and all
// other texels are drawn opaque.
func (dev *Device) SetBlend(enable bool) {
	dev.blend = enable
}

// BackBufferSize returns the size of the back buffer.
func (dev *Device) BackBufferSize() (int, int) {
	return dev.back.w, dev.back.h
}

// Live returns the number of resources that have been created and not yet
// released.
func (dev *Device) Live() int {
	return dev.live
}

// DoubleReleases returns the number of times a resource has been released
// more than once.
func (dev *Device) DoubleReleases() int {
	return dev.doubles
}

// Bound returns the number of sampler units and attributes that currently
// have a resource attached.
func (dev *Device) Bound() int {
	return len(dev.units) + len(dev.attrs)
}

// Draws returns the record of draw calls since the most recent call to
// ClearDraws(). Only the most recent draws are kept.
func (dev *Device) Draws() []Draw {
	return dev.draws
}

// ClearDraws forgets all recorded draws.
func (dev *Device) ClearDraws() {
	dev.draws = dev.draws[:0]
}

func (dev *Device) created() {
	dev.live++
}

func (dev *Device) released(flag *bool) {
	if *flag {
		dev.doubles++
		return
	}
	*flag = true
	dev.live--
}

// Conventions implements the chain.Device interface.
func (dev *Device) Conventions() chain.Conventions {
	return chain.Conventions{HalfPixelOffset: true}
}

// NewTexture implements the chain.Device interface.
func (dev *Device) NewTexture(w, h int, format chain.PixelFormat, target bool) (chain.Texture, error) {
	if dev.Faults.Texture {
		return nil, fmt.Errorf("headless: new texture: fault")
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("headless: new texture: invalid size %dx%d", w, h)
	}
	if target && format != chain.ARGB {
		return nil, fmt.Errorf("headless: new texture: render targets must be %s", chain.ARGB)
	}

	pitch := w*format.Size() + dev.Padding
	tex := &Texture{
		dev:    dev,
		w:      w,
		h:      h,
		format: format,
		target: target,
		pitch:  pitch,
		pix:    make([]byte, pitch*h),
	}
	dev.created()
	return tex, nil
}

// NewVertexBuffer implements the chain.Device interface.
func (dev *Device) NewVertexBuffer() (chain.VertexBuffer, error) {
	if dev.Faults.VertexBuffer {
		return nil, fmt.Errorf("headless: new vertex buffer: fault")
	}
	dev.created()
	return &VertexBuffer{dev: dev}, nil
}

func (dev *Device) texture(t chain.Texture) *Texture {
	if t == nil {
		return nil
	}
	return t.(*Texture)
}

// Copy implements the chain.Device interface.
func (dev *Device) Copy(dst chain.Texture, src chain.Texture) error {
	d := dev.texture(dst)
	s := dev.texture(src)
	if d == nil || s == nil || d.release || s.release {
		return fmt.Errorf("headless: copy: invalid texture")
	}
	if d.w != s.w || d.h != s.h || d.format != s.format {
		return fmt.Errorf("headless: copy: textures are not compatible")
	}
	row := s.w * s.format.Size()
	for y := range s.h {
		copy(d.pix[y*d.pitch:y*d.pitch+row], s.pix[y*s.pitch:y*s.pitch+row])
	}
	return nil
}

// SetRenderTarget implements the chain.Device interface.
func (dev *Device) SetRenderTarget(t chain.Texture) error {
	tex := dev.texture(t)
	if tex != nil && (!tex.target || tex.release) {
		return fmt.Errorf("headless: set render target: texture is not a render target")
	}
	dev.target = tex
	return nil
}

func (dev *Device) currentTarget() *Texture {
	if dev.target == nil {
		return dev.back
	}
	return dev.target
}

// SetViewport implements the chain.Device interface.
func (dev *Device) SetViewport(vp chain.Rect) {
	dev.viewport = vp
}

// clip the viewport to the current render target.
func (dev *Device) clipped() (x0, y0, x1, y1 int) {
	tgt := dev.currentTarget()
	x0 = max(dev.viewport.X, 0)
	y0 = max(dev.viewport.Y, 0)
	x1 = min(dev.viewport.X+dev.viewport.Width, tgt.w)
	y1 = min(dev.viewport.Y+dev.viewport.Height, tgt.h)
	return x0, y0, x1, y1
}

// Clear implements the chain.Device interface.
func (dev *Device) Clear() error {
	tgt := dev.currentTarget()
	x0, y0, x1, y1 := dev.clipped()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			tgt.setARGB(x, y, [4]byte{0, 0, 0, 0xff})
		}
	}
	return nil
}

// BindTexture implements the chain.Device interface.
func (dev *Device) BindTexture(unit int, t chain.Texture, _ chain.Filter) {
	dev.units[unit] = dev.texture(t)
}

// UnbindTexture implements the chain.Device interface.
func (dev *Device) UnbindTexture(unit int) {
	delete(dev.units, unit)
}

// Draw implements the chain.Device interface.
func (dev *Device) Draw(p chain.Program, v chain.VertexBuffer) error {
	if dev.Faults.Draw {
		return fmt.Errorf("headless: draw: fault")
	}

	prog, ok := p.(*Program)
	if !ok || prog.release {
		return fmt.Errorf("headless: draw: invalid program")
	}
	vb, ok := v.(*VertexBuffer)
	if !ok || vb.release {
		return fmt.Errorf("headless: draw: invalid vertex buffer")
	}

	d := Draw{
		Target:     dev.target,
		Viewport:   dev.viewport,
		Quad:       vb.quad,
		Program:    prog,
		Uniforms:   make(map[string][]float32, len(prog.values)),
		Units:      maps.Clone(dev.units),
		Attributes: make(map[string]*VertexBuffer),
	}
	for k, v := range prog.values {
		d.Uniforms[k] = append([]float32(nil), v...)
	}
	for a, vb := range dev.attrs {
		if a.prog == prog {
			d.Attributes[a.name] = vb
		}
	}

	if len(dev.draws) >= dev.maxDraws {
		dev.draws = dev.draws[1:]
	}
	dev.draws = append(dev.draws, d)

	dev.rasterise(vb.quad, dev.units[0])

	return nil
}

// ReadPixels implements the chain.Device interface.
func (dev *Device) ReadPixels(r chain.Rect) ([]byte, error) {
	if r.X < 0 || r.Y < 0 || r.Width < 0 || r.Height < 0 ||
		r.X+r.Width > dev.back.w || r.Y+r.Height > dev.back.h {
		return nil, fmt.Errorf("headless: read pixels: %s is outside the back buffer", r)
	}

	row := r.Width * 4
	data := make([]byte, row*r.Height)
	for y := range r.Height {
		o := (r.Y+y)*dev.back.pitch + r.X*4
		copy(data[y*row:(y+1)*row], dev.back.pix[o:o+row])
	}
	return data, nil
}
