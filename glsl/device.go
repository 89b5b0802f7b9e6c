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
	"github.com/videochain/videochain/logger"
)

// Error patterns used by the glsl package.
const (
	DeviceError  = "glsl: %v"
	CompileError = "glsl: %s: %v"
)

// fixed attribute locations of the vertex stream
const (
	positionLocation = 0
	texCoordLocation = 1
)

// layout of chain.Vertex
var (
	vertexStride = int32(unsafe.Sizeof(chain.Vertex{}))
	uvOffset     = unsafe.Offsetof(chain.Vertex{}.U)
	quadSize     = int(unsafe.Sizeof(chain.Quad{}))
)

// Device implements the chain.Device interface.
type Device struct {
	vao uint32
	fbo uint32

	// size of the default framebuffer
	backW, backH int

	target   *Texture
	viewport chain.Rect
	program  uint32

	live int
}

// NewDevice initialises OpenGL for the current context. The size of the
// window's framebuffer is required to convert between the top-left origin
// used by the chain and the bottom-left origin of OpenGL.
func NewDevice(backW, backH int) (*Device, error) {
	err := gl.Init()
	if err != nil {
		return nil, curated.Errorf(DeviceError, err)
	}

	logger.Logf(logger.Allow, "glsl", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "glsl", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "glsl", "version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	dev := &Device{
		backW: backW,
		backH: backH,
	}

	gl.GenVertexArrays(1, &dev.vao)
	gl.BindVertexArray(dev.vao)
	gl.GenFramebuffers(1, &dev.fbo)

	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)

	return dev, nil
}

// Destroy the resources owned by the device. Resources created by the device
// should be released before calling Destroy().
func (dev *Device) Destroy() {
	if dev.live > 0 {
		logger.Logf(logger.Allow, "glsl", "%d resources not released", dev.live)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.DeleteFramebuffers(1, &dev.fbo)
	gl.DeleteVertexArrays(1, &dev.vao)
	dev.fbo = 0
	dev.vao = 0
}

// Resize notifies the device that the window's framebuffer has changed size.
func (dev *Device) Resize(backW, backH int) {
	dev.backW = backW
	dev.backH = backH
}

// Live returns the number of resources that have not been released.
func (dev *Device) Live() int {
	return dev.live
}

// Conventions implements the chain.Device interface.
func (dev *Device) Conventions() chain.Conventions {
	return chain.Conventions{
		LowerLeftTargets: true,
	}
}

func (dev *Device) check(op string) error {
	if e := gl.GetError(); e != gl.NO_ERROR {
		return curated.Errorf(DeviceError, curated.Errorf("%s: error %#04x", op, e))
	}
	return nil
}

// NewTexture implements the chain.Device interface.
func (dev *Device) NewTexture(w, h int, format chain.PixelFormat, target bool) (chain.Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, curated.Errorf(DeviceError, curated.Errorf("texture size %dx%d", w, h))
	}
	if target && format != chain.ARGB {
		return nil, curated.Errorf(DeviceError, curated.Errorf("render targets must be %s", chain.ARGB))
	}

	tex := &Texture{
		dev:    dev,
		width:  w,
		height: h,
		format: format,
		target: target,
		shadow: make([]byte, w*h*format.Size()),
	}

	gl.GenTextures(1, &tex.id)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	internal, pixFormat, pixType := formats(format)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(w), int32(h), 0, pixFormat, pixType, gl.Ptr(tex.shadow))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := dev.check("new texture"); err != nil {
		gl.DeleteTextures(1, &tex.id)
		return nil, err
	}

	// render targets are only ever written by the device
	if target {
		tex.shadow = nil
	}

	dev.live++
	return tex, nil
}

// NewVertexBuffer implements the chain.Device interface.
func (dev *Device) NewVertexBuffer() (chain.VertexBuffer, error) {
	vb := &VertexBuffer{dev: dev}
	gl.GenBuffers(1, &vb.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferData(gl.ARRAY_BUFFER, quadSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if err := dev.check("new vertex buffer"); err != nil {
		gl.DeleteBuffers(1, &vb.id)
		return nil, err
	}
	dev.live++
	return vb, nil
}

// Copy implements the chain.Device interface.
func (dev *Device) Copy(dst chain.Texture, src chain.Texture) error {
	d, s := dst.(*Texture), src.(*Texture)
	if d.width != s.width || d.height != s.height || d.format != s.format {
		return curated.Errorf(DeviceError, "copy: textures differ")
	}

	// textures with a copy of their data in main memory are copied by
	// uploading that data
	if s.shadow != nil && d.shadow != nil {
		copy(d.shadow, s.shadow)
		d.upload()
		return dev.check("copy")
	}

	var fbos [2]uint32
	gl.GenFramebuffers(2, &fbos[0])
	defer gl.DeleteFramebuffers(2, &fbos[0])

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbos[0])
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, s.id, 0)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fbos[1])
	gl.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, d.id, 0)
	gl.BlitFramebuffer(0, 0, int32(s.width), int32(s.height),
		0, 0, int32(d.width), int32(d.height),
		gl.COLOR_BUFFER_BIT, gl.NEAREST)

	// copying into a texture with a shadow invalidates the shadow
	if d.shadow != nil {
		gl.ReadPixels(0, 0, int32(s.width), int32(s.height), d.pixFormat(), d.pixType(), gl.Ptr(d.shadow))
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	dev.restoreTarget()

	return dev.check("copy")
}

// SetRenderTarget implements the chain.Device interface.
func (dev *Device) SetRenderTarget(tex chain.Texture) error {
	if tex == nil {
		dev.target = nil
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return nil
	}

	t := tex.(*Texture)
	if !t.target {
		return curated.Errorf(DeviceError, "texture is not a render target")
	}
	dev.target = t
	gl.BindFramebuffer(gl.FRAMEBUFFER, dev.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.id, 0)

	if s := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); s != gl.FRAMEBUFFER_COMPLETE {
		return curated.Errorf(DeviceError, curated.Errorf("framebuffer incomplete: %#04x", s))
	}
	return nil
}

func (dev *Device) restoreTarget() {
	if dev.target == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, dev.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, dev.target.id, 0)
}

// SetViewport implements the chain.Device interface.
func (dev *Device) SetViewport(vp chain.Rect) {
	dev.viewport = vp
	x, y, w, h := dev.glRect(vp)
	gl.Viewport(x, y, w, h)
}

// glRect converts the rectangle to the origin of the current render target.
// render targets are flipped by the projection used by the chain so only the
// back buffer is converted.
func (dev *Device) glRect(r chain.Rect) (int32, int32, int32, int32) {
	y := r.Y
	if dev.target == nil {
		y = dev.backH - r.Y - r.Height
	}
	return int32(r.X), int32(y), int32(r.Width), int32(r.Height)
}

// Clear implements the chain.Device interface.
func (dev *Device) Clear() error {
	x, y, w, h := dev.glRect(dev.viewport)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, y, w, h)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)
	return dev.check("clear")
}

// BindTexture implements the chain.Device interface.
func (dev *Device) BindTexture(unit int, tex chain.Texture, filter chain.Filter) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	if tex == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}

	gl.BindTexture(gl.TEXTURE_2D, tex.(*Texture).id)
	f := int32(gl.NEAREST)
	if filter == chain.Linear {
		f = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, f)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, f)
}

// UnbindTexture implements the chain.Device interface.
func (dev *Device) UnbindTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// SetBlend enables alpha blending of subsequent draws.
func (dev *Device) SetBlend(enable bool) {
	if enable {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

func (dev *Device) use(program uint32) {
	if dev.program != program {
		gl.UseProgram(program)
		dev.program = program
	}
}

// Draw implements the chain.Device interface.
func (dev *Device) Draw(prog chain.Program, vb chain.VertexBuffer) error {
	p := prog.(*Program)
	if p.handle == 0 {
		return curated.Errorf(DeviceError, "draw: program has been released")
	}
	dev.use(p.handle)

	gl.BindBuffer(gl.ARRAY_BUFFER, vb.(*VertexBuffer).id)
	gl.VertexAttribPointerWithOffset(positionLocation, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(positionLocation)
	gl.VertexAttribPointerWithOffset(texCoordLocation, 2, gl.FLOAT, false, vertexStride, uvOffset)
	gl.EnableVertexAttribArray(texCoordLocation)

	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	gl.DisableVertexAttribArray(positionLocation)
	gl.DisableVertexAttribArray(texCoordLocation)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return dev.check("draw")
}

// ReadPixels implements the chain.Device interface.
func (dev *Device) ReadPixels(r chain.Rect) ([]byte, error) {
	if r.X < 0 || r.Y < 0 || r.Width <= 0 || r.Height <= 0 || r.X+r.Width > dev.backW || r.Y+r.Height > dev.backH {
		return nil, curated.Errorf(DeviceError, curated.Errorf("read pixels: %s outside of %dx%d", r, dev.backW, dev.backH))
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)

	pitch := r.Width * 4
	px := make([]byte, pitch*r.Height)
	y := dev.backH - r.Y - r.Height
	gl.ReadPixels(int32(r.X), int32(y), int32(r.Width), int32(r.Height), gl.BGRA, gl.UNSIGNED_BYTE, gl.Ptr(px))

	if err := dev.check("read pixels"); err != nil {
		return nil, err
	}

	// bottom row first to top row first
	row := make([]byte, pitch)
	for top, bot := 0, r.Height-1; top < bot; top, bot = top+1, bot-1 {
		a := px[top*pitch : (top+1)*pitch]
		b := px[bot*pitch : (bot+1)*pitch]
		copy(row, a)
		copy(a, b)
		copy(b, row)
	}

	return px, nil
}
