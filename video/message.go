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

package video

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/curated"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// size of the texture that messages are drawn into. messages longer than the
// width of the texture are truncated
const (
	messageWidth  = 512
	messageHeight = 16
)

// blender is implemented by devices that can blend draws with the contents
// of the render target.
type blender interface {
	SetBlend(enable bool)
}

// fontDrawer draws on-screen messages over the picture.
type fontDrawer struct {
	dev  chain.Device
	prog chain.Program
	tex  chain.Texture
	vb   chain.VertexBuffer

	img  *image.RGBA
	face font.Face

	// the message and colour currently in the texture
	msg    string
	colour uint32
}

func newFontDrawer(dev chain.Device, compiler chain.Compiler) (*fontDrawer, error) {
	fd := &fontDrawer{
		dev:  dev,
		img:  image.NewRGBA(image.Rect(0, 0, messageWidth, messageHeight)),
		face: basicfont.Face7x13,
	}

	var err error

	fd.prog, err = compiler.Compile("message", compiler.Stock())
	if err != nil {
		return nil, curated.Errorf("message: %v", err)
	}

	fd.tex, err = dev.NewTexture(messageWidth, messageHeight, chain.ARGB, false)
	if err != nil {
		fd.Release()
		return nil, curated.Errorf("message: %v", err)
	}

	fd.vb, err = dev.NewVertexBuffer()
	if err != nil {
		fd.Release()
		return nil, curated.Errorf("message: %v", err)
	}

	// the quad covers the viewport
	err = fd.vb.Update(chain.Quad{
		{X: -1, Y: 1, U: 0, V: 0},
		{X: 1, Y: 1, U: 1, V: 0},
		{X: -1, Y: -1, U: 0, V: 1},
		{X: 1, Y: -1, U: 1, V: 1},
	})
	if err != nil {
		fd.Release()
		return nil, curated.Errorf("message: %v", err)
	}

	return fd, nil
}

// Release all device resources.
func (fd *fontDrawer) Release() {
	if fd.prog != nil {
		fd.prog.Release()
		fd.prog = nil
	}
	if fd.tex != nil {
		fd.tex.Release()
		fd.tex = nil
	}
	if fd.vb != nil {
		fd.vb.Release()
		fd.vb = nil
	}
}

// render the message into the texture.
func (fd *fontDrawer) render(msg string, colour uint32) error {
	if msg == fd.msg && colour == fd.colour {
		return nil
	}

	draw.Draw(fd.img, fd.img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst: fd.img,
		Src: image.NewUniform(color.RGBA{
			R: uint8(colour >> 16),
			G: uint8(colour >> 8),
			B: uint8(colour),
			A: 0xff,
		}),
		Face: fd.face,
		Dot:  fixed.P(1, fd.face.Metrics().Ascent.Ceil()+1),
	}
	d.DrawString(msg)

	px, pitch, err := fd.tex.Lock()
	if err != nil {
		return err
	}
	for y := range messageHeight {
		src := fd.img.Pix[y*fd.img.Stride:]
		dst := px[y*pitch:]
		for x := range messageWidth {
			s := src[x*4 : x*4+4]
			dst[x*4] = s[2]
			dst[x*4+1] = s[1]
			dst[x*4+2] = s[0]
			dst[x*4+3] = s[3]
		}
	}
	err = fd.tex.Unlock()
	if err != nil {
		return err
	}

	fd.msg = msg
	fd.colour = colour

	return nil
}

// uniform returns the named uniform of the program from whichever stage
// declares it.
func uniform(prog chain.Program, name string) (chain.Uniform, bool) {
	if u, ok := prog.Vertex().Uniform(name); ok {
		return u, true
	}
	return prog.Fragment().Uniform(name)
}

// Draw the message into the back buffer. The text is scaled by a whole number
// so that it fills the height of the rectangle and is aligned with the top
// left corner of the rectangle.
func (fd *fontDrawer) Draw(msg string, r chain.Rect, colour uint32) error {
	if msg == "" || r.Width < 1 || r.Height < 1 {
		return nil
	}

	err := fd.render(msg, colour)
	if err != nil {
		return curated.Errorf("message: %v", err)
	}

	scale := max(1, r.Height/messageHeight)

	err = fd.dev.SetRenderTarget(nil)
	if err != nil {
		return curated.Errorf("message: %v", err)
	}
	fd.dev.SetViewport(chain.Rect{
		X:      r.X,
		Y:      r.Y,
		Width:  messageWidth * scale,
		Height: messageHeight * scale,
	})

	if u, ok := uniform(fd.prog, "modelViewProj"); ok {
		u.SetMatrix(chain.Matrix{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		})
	}
	if u, ok := uniform(fd.prog, "decal"); ok {
		u.SetInt(0)
	}

	fd.dev.BindTexture(0, fd.tex, chain.Nearest)
	defer fd.dev.UnbindTexture(0)

	if b, ok := fd.dev.(blender); ok {
		b.SetBlend(true)
		defer b.SetBlend(false)
	}

	err = fd.dev.Draw(fd.prog, fd.vb)
	if err != nil {
		return curated.Errorf("message: %v", err)
	}

	return nil
}
