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

package chain_test

import (
	"bytes"
	"testing"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/headless"
	"github.com/videochain/videochain/test"
)

func expectUniform(t *testing.T, d headless.Draw, name string, expected ...float32) {
	t.Helper()
	v, ok := d.Uniform(name)
	if !ok {
		t.Errorf("%s: not bound", name)
		return
	}
	if len(v) != len(expected) {
		t.Errorf("%s: expected %d values but got %d", name, len(expected), len(v))
		return
	}
	for i := range v {
		test.ExpectEquality(t, v[i], expected[i], name, i)
	}
}

func expectNoUniform(t *testing.T, d headless.Draw, name string) {
	t.Helper()
	if _, ok := d.Uniform(name); ok {
		t.Errorf("%s: unexpectedly bound", name)
	}
}

// returns the texture bound to the sampler unit named by the uniform.
func sampled(t *testing.T, d headless.Draw, name string) *headless.Texture {
	t.Helper()
	v, ok := d.Uniform(name)
	if !ok || len(v) != 1 {
		t.Errorf("%s: sampler not bound", name)
		return nil
	}
	tex, ok := d.Units[int(v[0])]
	if !ok {
		t.Errorf("%s: unit %d has no texture", name, int(v[0]))
	}
	return tex
}

func TestParameters(t *testing.T) {
	dev := headless.NewDevice(1024, 768)
	cmp := headless.NewCompiler(dev)
	tr := &fakeTracker{}

	full := shader(
		"IN.video_size", "IN.texture_size", "IN.output_size",
		"IN.frame_count", "IN.frame_direction", "modelViewProj",
		"ORIG.texture", "ORIG.video_size", "ORIG.texture_size", "ORIG.tex_coord",
		"PREV.texture", "PREV.video_size", "PREV.tex_coord",
		"PREV6.video_size",
		"PASS1.texture", "PASS1.video_size", "PASS1.texture_size", "PASS1.tex_coord",
		"PASS2.video_size",
		"lut", "phase",
	)

	passes := []chain.LinkInfo{
		withSource(relative(2, 2), shader("IN.video_size", "ORIG.video_size", "PASS1.video_size")),
		withSource(absolute(300, 200), shader("IN.output_size")),
		withSource(viewport(1, 1), full),
	}

	c, err := chain.Build(dev, cmp, passes, chain.Config{
		Format:     chain.RGB15,
		InputScale: 1,
		Viewport:   chain.Rect{X: 12, Y: 0, Width: 1000, Height: 768},
		LUTs: []chain.LUT{{
			ID: "lut", Filter: chain.Linear, Width: 2, Height: 1,
			Pixels: []byte{1, 2, 3, 4, 5, 6, 7, 8},
		}},
		Tracker: tr,
	})
	test.DemandSuccess(t, err)
	defer c.Teardown()

	// names declared by each pass. PASSn names are available to later passes only
	test.ExpectEquality(t, len(c.Passes()[0].Parameters()), 1)
	test.ExpectEquality(t, c.Passes()[1].Parameters()[0], "IN.output_size")
	test.ExpectEquality(t, len(c.Passes()[2].Parameters()), 19)

	frame := make([]byte, 160*2*144)
	test.DemandSuccess(t, c.Render(frame, 160, 144, 320, 0))

	draws := dev.Draws()
	test.DemandEquality(t, len(draws), 3)

	// first pass
	expectUniform(t, draws[0], "IN.video_size", 160, 144)
	expectNoUniform(t, draws[0], "ORIG.video_size")
	expectNoUniform(t, draws[0], "PASS1.video_size")

	// second pass
	expectUniform(t, draws[1], "IN.output_size", 300, 200)
	expectNoUniform(t, draws[1], "IN.video_size")

	// final pass
	d := draws[2]
	expectUniform(t, d, "IN.video_size", 300, 200)
	expectUniform(t, d, "IN.texture_size", 512, 256)
	expectUniform(t, d, "IN.output_size", 1000, 768)
	expectUniform(t, d, "IN.frame_count", 0)
	expectUniform(t, d, "IN.frame_direction", 1)
	expectUniform(t, d, "ORIG.video_size", 160, 144)
	expectUniform(t, d, "ORIG.texture_size", 256, 256)
	expectUniform(t, d, "PASS1.video_size", 320, 288)
	expectUniform(t, d, "PASS1.texture_size", 512, 512)
	expectUniform(t, d, "phase", 0)
	expectNoUniform(t, d, "undeclared")

	// PASS2 is the input of the final pass and is not bound
	expectNoUniform(t, d, "PASS2.video_size")

	// there is no history on the first frame
	expectUniform(t, d, "PREV.video_size", 0, 0)
	expectUniform(t, d, "PREV6.video_size", 0, 0)
	test.ExpectEquality(t, sampled(t, d, "PREV.texture"), (*headless.Texture)(nil))
	_, ok := d.Attributes["PREV.tex_coord"]
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, chain.Texture(sampled(t, d, "ORIG.texture")), c.Passes()[0].Texture())
	test.ExpectEquality(t, chain.Texture(sampled(t, d, "PASS1.texture")), c.Passes()[1].Texture())
	test.ExpectEquality(t, chain.Texture(d.Units[0]), c.Passes()[2].Texture())

	lut := sampled(t, d, "lut")
	test.DemandInequality(t, lut, nil)
	test.ExpectSuccess(t, bytes.Equal(lut.Pixels()[:8], []byte{1, 2, 3, 4, 5, 6, 7, 8}))

	test.ExpectEquality(t, len(d.Attributes), 2)
	test.ExpectInequality(t, d.Attributes["ORIG.tex_coord"], nil)
	test.ExpectInequality(t, d.Attributes["PASS1.tex_coord"], nil)

	// everything is released after the draw
	test.ExpectEquality(t, dev.Bound(), 0)

	// second frame. history is available
	dev.ClearDraws()
	for i := range frame {
		frame[i] = 0x55
	}
	test.DemandSuccess(t, c.Render(frame, 160, 140, 320, 0))
	draws = dev.Draws()
	test.DemandEquality(t, len(draws), 3)
	d = draws[2]

	expectUniform(t, d, "IN.frame_count", 1)
	expectUniform(t, d, "phase", 2)
	expectUniform(t, d, "ORIG.video_size", 160, 140)
	expectUniform(t, d, "PREV.video_size", 160, 144)
	expectUniform(t, d, "PREV.texture_size", 256, 256)
	expectUniform(t, d, "PREV6.video_size", 0, 0)

	// the previous frame is a copy of the first frame and not the texture of
	// the first pass
	prev := sampled(t, d, "PREV.texture")
	test.DemandInequality(t, prev, nil)
	test.ExpectInequality(t, chain.Texture(prev), c.Passes()[0].Texture())
	test.ExpectEquality(t, prev.Pixels()[0], byte(0))
	test.ExpectEquality(t, c.Passes()[0].Texture().(*headless.Texture).Pixels()[0], byte(0x55))
	test.ExpectInequality(t, d.Attributes["PREV.tex_coord"], nil)

	test.ExpectEquality(t, dev.Bound(), 0)
}

func TestParametersStock(t *testing.T) {
	dev := headless.NewDevice(640, 480)
	cmp := headless.NewCompiler(dev)

	c, err := chain.Build(dev, cmp, []chain.LinkInfo{relative(1, 1), viewport(1, 1)}, chain.Config{
		Format:     chain.ARGB,
		InputScale: 1,
		Viewport:   chain.Rect{Width: 640, Height: 480},
	})
	test.DemandSuccess(t, err)
	defer c.Teardown()

	// the stock shader only declares the projection
	for _, p := range c.Passes() {
		params := p.Parameters()
		test.DemandEquality(t, len(params), 1)
		test.ExpectEquality(t, params[0], "modelViewProj")
	}
}
