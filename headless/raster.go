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
	"math"

	"github.com/videochain/videochain/chain"
)

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// rasterise fills the viewport of the current render target by sampling the
// source texture through the texture coordinates of the quad. The quad is
// assumed to cover the viewport exactly, which is always true for quads built
// by the chain.
func (dev *Device) rasterise(q chain.Quad, src *Texture) {
	tgt := dev.currentTarget()
	vp := dev.viewport
	if vp.Width < 1 || vp.Height < 1 {
		return
	}

	var sw, sh float32
	if src != nil {
		sw, sh = float32(src.w), float32(src.h)
	}

	x0, y0, x1, y1 := dev.clipped()
	for y := y0; y < y1; y++ {
		t := (float32(y-vp.Y) + 0.5) / float32(vp.Height)
		for x := x0; x < x1; x++ {
			s := (float32(x-vp.X) + 0.5) / float32(vp.Width)
			u := lerp(lerp(q[0].U, q[1].U, s), lerp(q[2].U, q[3].U, s), t)
			v := lerp(lerp(q[0].V, q[1].V, s), lerp(q[2].V, q[3].V, s), t)
			tx := int(math.Floor(float64(u * sw)))
			ty := int(math.Floor(float64(v * sh)))
			if dev.blend && src.alpha(tx, ty) == 0 {
				continue
			}
			tgt.setARGB(x, y, src.argb(tx, ty))
		}
	}
}
