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

package main

import (
	"github.com/videochain/videochain/chain"
)

// colour bars of the test card, as red, green, blue
var bars = [...][3]uint8{
	{0xc0, 0xc0, 0xc0},
	{0xc0, 0xc0, 0x00},
	{0x00, 0xc0, 0xc0},
	{0x00, 0xc0, 0x00},
	{0xc0, 0x00, 0xc0},
	{0xc0, 0x00, 0x00},
	{0x00, 0x00, 0xc0},
	{0x00, 0x00, 0x00},
}

// testCard produces frames of colour bars with a line that moves down the
// frame, one row every frame.
type testCard struct {
	width  int
	height int
	pitch  int
	format chain.PixelFormat

	data  []byte
	frame int
}

func newTestCard(width, height int, format chain.PixelFormat) *testCard {
	pitch := width * format.Size()
	return &testCard{
		width:  width,
		height: height,
		pitch:  pitch,
		format: format,
		data:   make([]byte, pitch*height),
	}
}

func (tc *testCard) set(x, y int, c [3]uint8) {
	o := y*tc.pitch + x*tc.format.Size()
	if tc.format == chain.RGB15 {
		v := uint16(c[0]>>3)<<10 | uint16(c[1]>>3)<<5 | uint16(c[2]>>3)
		tc.data[o] = uint8(v)
		tc.data[o+1] = uint8(v >> 8)
		return
	}
	tc.data[o] = c[2]
	tc.data[o+1] = c[1]
	tc.data[o+2] = c[0]
	tc.data[o+3] = 0xff
}

// next returns the next frame. The returned slice is reused by the following
// call to next().
func (tc *testCard) next() []byte {
	line := tc.frame % tc.height
	for y := range tc.height {
		for x := range tc.width {
			if y == line {
				tc.set(x, y, [3]uint8{0xff, 0xff, 0xff})
			} else {
				tc.set(x, y, bars[x*len(bars)/tc.width])
			}
		}
	}
	tc.frame++
	return tc.data
}
