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

// Vertex of a quad. X, Y and Z are in viewport pixels and U and V are
// normalised texture coordinates.
type Vertex struct {
	X, Y, Z float32
	U, V    float32
}

// Quad is drawn as a triangle strip. The order of vertices is top-left,
// top-right, bottom-left, bottom-right.
type Quad [4]Vertex

// Matrix is a 4x4 matrix stored in row-major order, for use with column
// vectors. ie. the translation is in the fourth column.
type Matrix [16]float32

// Apply the matrix to the point.
func (m Matrix) Apply(x, y, z float32) (float32, float32, float32, float32) {
	return m[0]*x + m[1]*y + m[2]*z + m[3],
		m[4]*x + m[5]*y + m[6]*z + m[7],
		m[8]*x + m[9]*y + m[10]*z + m[11],
		m[12]*x + m[13]*y + m[14]*z + m[15]
}

// Rotation of the final image in quarter turns anti-clockwise. Only the values
// zero to three are meaningful.
type Rotation int

// Normalise the rotation to the range zero to three.
func (r Rotation) Normalise() Rotation {
	return ((r % 4) + 4) % 4
}

// buildQuad creates the quad for a pass. The output covers outW by outH
// pixels and samples the used rectangle (usedW, usedH) of a texture of size
// texW by texH.
func buildQuad(usedW, usedH, texW, texH, outW, outH int, rot Rotation, conv Conventions) Quad {
	u := float32(usedW) / float32(texW)
	v := float32(usedH) / float32(texH)
	right := float32(outW) - 1.0
	top := float32(outH) - 1.0

	q := Quad{
		{X: 0, Y: top, Z: 0.5, U: 0, V: 0},
		{X: right, Y: top, Z: 0.5, U: u, V: 0},
		{X: 0, Y: 0, Z: 0.5, U: 0, V: v},
		{X: right, Y: 0, Z: 0.5, U: u, V: v},
	}

	// rotating the texture coordinates around the corners of the quad. the
	// order of corners going clockwise from top-left
	if rot = rot.Normalise(); rot != 0 {
		ring := [4]int{0, 1, 3, 2}
		var r Quad
		copy(r[:], q[:])
		for i, c := range ring {
			s := ring[(i+int(rot))%4]
			r[c].U = q[s].U
			r[c].V = q[s].V
		}
		q = r
	}

	if conv.HalfPixelOffset {
		for i := range q {
			q[i].X -= 0.5
			q[i].Y += 0.5
		}
	}

	return q
}

// orthographic returns the left-handed off-center orthographic projection
// for a viewport of the given size, with a depth range of zero to one.
func orthographic(vpW, vpH int, flip bool) Matrix {
	l, r := float32(0), float32(vpW)-1
	b, t := float32(0), float32(vpH)-1
	if flip {
		b, t = t, b
	}

	// avoid division by zero for single pixel viewports
	if r == l {
		r = l + 1
	}
	if t == b {
		t = b + 1
	}

	return Matrix{
		2 / (r - l), 0, 0, (l + r) / (l - r),
		0, 2 / (t - b), 0, (t + b) / (b - t),
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}
