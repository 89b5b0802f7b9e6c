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

import (
	"slices"
	"sort"
)

// the values that the geometry of a pass depends on.
type geometryKey struct {
	usedW, usedH int
	outW, outH   int
	vpW, vpH     int
	rot          Rotation
	offscreen    bool
}

// Pass is a single stage of the chain. It owns its input texture, the program
// that samples the texture and the vertex buffer of the quad that is drawn.
type Pass struct {
	info LinkInfo
	prog Program
	tex  Texture
	vb   VertexBuffer

	// the size of the image expected in the input texture when the chain was
	// built
	nominalW, nominalH int

	// the used rectangle of the input texture for the most recent frame
	usedW, usedH int

	// memoised geometry
	geom     geometryKey
	quad     Quad
	mvp      Matrix
	rebuilds int

	binder *binder
}

// Info returns the configuration of the pass.
func (p *Pass) Info() LinkInfo {
	return p.info
}

// UsedSize returns the size of the valid image in the pass's input texture.
func (p *Pass) UsedSize() (int, int) {
	return p.usedW, p.usedH
}

// Texture returns the input texture of the pass.
func (p *Pass) Texture() Texture {
	return p.tex
}

// Quad returns the most recent geometry of the pass.
func (p *Pass) Quad() Quad {
	return p.quad
}

// Rebuilds returns the number of times the pass's geometry has been rebuilt.
func (p *Pass) Rebuilds() int {
	return p.rebuilds
}

// Parameters returns the sorted list of names that the pass's program
// declares and that are given values by the chain.
func (p *Pass) Parameters() []string {
	if p.binder == nil {
		return nil
	}
	d := slices.Clone(p.binder.declared)
	sort.Strings(d)
	return d
}

func (p *Pass) input() input {
	return input{
		tex:    p.tex,
		vb:     p.vb,
		usedW:  p.usedW,
		usedH:  p.usedH,
		texW:   p.info.TexW,
		texH:   p.info.TexH,
		filter: p.info.Filter,
	}
}

// ensureGeometry rebuilds the quad and the projection if any of the values
// they depend on have changed since the previous call.
func (p *Pass) ensureGeometry(conv Conventions, k geometryKey) error {
	if p.rebuilds > 0 && k == p.geom {
		return nil
	}

	p.quad = buildQuad(k.usedW, k.usedH, p.info.TexW, p.info.TexH, k.outW, k.outH, k.rot, conv)
	p.mvp = orthographic(k.vpW, k.vpH, k.offscreen && conv.LowerLeftTargets)
	if err := p.vb.Update(p.quad); err != nil {
		return err
	}

	p.geom = k
	p.rebuilds++
	return nil
}

// bindAndDraw clears the current render target, binds the pass's input
// texture and parameters and draws the quad. Everything bound for the draw is
// unbound afterwards.
func (p *Pass) bindAndDraw(dev Device, fs *frameState) error {
	if err := dev.Clear(); err != nil {
		return err
	}

	dev.BindTexture(0, p.tex, p.info.Filter)
	bnd := p.binder.bind(dev, fs)

	err := dev.Draw(p.prog, p.vb)

	p.binder.unbind(dev, bnd)
	dev.UnbindTexture(0)

	return err
}
