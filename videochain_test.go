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
	"strings"
	"testing"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/test"
	"github.com/videochain/videochain/video"
)

func TestTestCard(t *testing.T) {
	tc := newTestCard(16, 4, chain.ARGB)
	test.ExpectEquality(t, tc.pitch, 64)

	data := tc.next()

	// the line is on the first row of the first frame
	test.ExpectEquality(t, data[0], uint8(0xff))
	test.ExpectEquality(t, data[1], uint8(0xff))
	test.ExpectEquality(t, data[2], uint8(0xff))

	// first bar is grey and the last bar is black
	o := tc.pitch
	test.ExpectEquality(t, data[o], uint8(0xc0))
	test.ExpectEquality(t, data[o+3], uint8(0xff))
	o = tc.pitch + 15*4
	test.ExpectEquality(t, data[o], uint8(0x00))
	test.ExpectEquality(t, data[o+1], uint8(0x00))
	test.ExpectEquality(t, data[o+2], uint8(0x00))

	// the line moves down one row every frame
	data = tc.next()
	o = tc.pitch + 15*4
	test.ExpectEquality(t, data[o], uint8(0xff))
	test.ExpectEquality(t, data[15*4], uint8(0x00))
}

func TestTestCardRGB15(t *testing.T) {
	tc := newTestCard(8, 2, chain.RGB15)
	test.ExpectEquality(t, tc.pitch, 16)

	data := tc.next()

	// white line
	test.ExpectEquality(t, data[0], uint8(0xff))
	test.ExpectEquality(t, data[1], uint8(0x7f))

	// second bar is yellow. red and green only
	o := tc.pitch + 2
	v := uint16(data[o]) | uint16(data[o+1])<<8
	test.ExpectEquality(t, v, uint16(0x18<<10|0x18<<5))
}

func TestParseFormat(t *testing.T) {
	f, err := parseFormat("rgb15")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, f, chain.RGB15)

	f, err = parseFormat("ARGB")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, f, chain.ARGB)

	_, err = parseFormat("YUV")
	test.ExpectFailure(t, err)
}

func TestBenchmark(t *testing.T) {
	cfg := video.Config{
		Title:       "test",
		Width:       640,
		Height:      480,
		ForceAspect: true,
		AspectRatio: 4.0 / 3.0,
		InputScale:  1,
		Format:      chain.ARGB,
	}

	var out test.Writer
	drv, err := benchmark(cfg, 0, 5, &out)
	test.DemandSuccess(t, err)
	defer drv.Close()

	test.ExpectSuccess(t, strings.Contains(out.String(), "1 passes"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "5 frames"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "0 dropped"))
	test.ExpectEquality(t, drv.Chain().FrameCount(), uint(5))

	// the picture is in the viewport
	img, err := drv.Screenshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), 640)
	test.ExpectEquality(t, img.Bounds().Dy(), 480)
}
