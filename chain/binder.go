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
	"fmt"
	"sort"
)

// frameState is the information available to the binder when a pass is drawn.
type frameState struct {
	chain *RenderChain

	usedW, usedH int
	texW, texH   int
	outW, outH   int
	mvp          Matrix
	frame        uint

	tracked []TrackerUniform
}

// input is an image that can be given to a shader stage under a prefix, such
// as ORIG or PREV.
type input struct {
	tex          Texture
	vb           VertexBuffer
	usedW, usedH int
	texW, texH   int
	filter       Filter
}

type sampler struct {
	unit     int
	uniforms []Uniform
	src      func(fs *frameState) (Texture, Filter)
}

type attribute struct {
	attr Attribute
	src  func(fs *frameState) VertexBuffer
}

// bound records the resources that have been attached for a single draw.
type bound struct {
	units []int
	attrs []Attribute
}

// binder supplies values to the uniforms and attributes declared by a
// program. The set of declared names is discovered when the binder is created
// and is not probed again, with the exception of tracker values which are
// probed the first time a name is seen.
type binder struct {
	stages   [2]Stage
	values   []func(fs *frameState)
	samplers []sampler
	attrs    []attribute
	tracked  map[string][]Uniform
	declared []string

	// sampler unit zero is the input texture of the pass
	nextUnit int
}

func newBinder(c *RenderChain, prog Program, passIdx int) *binder {
	b := &binder{
		stages:   [2]Stage{prog.Vertex(), prog.Fragment()},
		tracked:  make(map[string][]Uniform),
		nextUnit: 1,
	}

	b.vec2("IN.video_size", func(fs *frameState) (int, int) { return fs.usedW, fs.usedH })
	b.vec2("IN.texture_size", func(fs *frameState) (int, int) { return fs.texW, fs.texH })
	b.vec2("IN.output_size", func(fs *frameState) (int, int) { return fs.outW, fs.outH })
	b.scalar("IN.frame_count", func(fs *frameState) float32 { return float32(fs.frame) })
	b.scalar("IN.frame_direction", func(fs *frameState) float32 { return 1.0 })

	if us := b.lookup("modelViewProj"); len(us) > 0 {
		b.values = append(b.values, func(fs *frameState) {
			for _, u := range us {
				u.SetMatrix(fs.mvp)
			}
		})
	}

	// the original image is not useful to the first pass because it is
	// the same as the pass's input
	if passIdx > 0 {
		b.source("ORIG", func(fs *frameState) input {
			return fs.chain.passInput(0)
		})
	}

	b.source("PREV", func(fs *frameState) input {
		return fs.chain.historyInput(1)
	})
	for k := 1; k < HistoryCapacity-1; k++ {
		b.source(fmt.Sprintf("PREV%d", k), func(fs *frameState) input {
			return fs.chain.historyInput(k + 1)
		})
	}

	// the output of earlier passes. the output of the immediately preceding
	// pass is the pass's own input and is not included
	for k := 1; k < passIdx; k++ {
		b.source(fmt.Sprintf("PASS%d", k), func(fs *frameState) input {
			return fs.chain.passInput(k)
		})
	}

	for _, l := range c.luts {
		us := b.lookup(l.id)
		if len(us) == 0 {
			continue
		}
		b.samplers = append(b.samplers, sampler{
			unit:     b.allocUnit(),
			uniforms: us,
			src: func(_ *frameState) (Texture, Filter) {
				return l.tex, l.filter
			},
		})
	}

	sort.Strings(b.declared)

	return b
}

func (b *binder) allocUnit() int {
	u := b.nextUnit
	b.nextUnit++
	return u
}

// lookup returns the uniforms with the name from both stages. The name is
// added to the list of declared names if either stage declares it.
func (b *binder) lookup(name string) []Uniform {
	var us []Uniform
	for _, st := range b.stages {
		if u, ok := st.Uniform(name); ok {
			us = append(us, u)
		}
	}
	if len(us) > 0 {
		b.declared = append(b.declared, name)
	}
	return us
}

func (b *binder) vec2(name string, f func(fs *frameState) (int, int)) {
	us := b.lookup(name)
	if len(us) == 0 {
		return
	}
	b.values = append(b.values, func(fs *frameState) {
		x, y := f(fs)
		for _, u := range us {
			u.Set(float32(x), float32(y))
		}
	})
}

func (b *binder) scalar(name string, f func(fs *frameState) float32) {
	us := b.lookup(name)
	if len(us) == 0 {
		return
	}
	b.values = append(b.values, func(fs *frameState) {
		v := f(fs)
		for _, u := range us {
			u.Set(v)
		}
	})
}

// source registers the four names associated with an input image.
func (b *binder) source(prefix string, f func(fs *frameState) input) {
	b.vec2(prefix+".video_size", func(fs *frameState) (int, int) {
		in := f(fs)
		return in.usedW, in.usedH
	})
	b.vec2(prefix+".texture_size", func(fs *frameState) (int, int) {
		in := f(fs)
		return in.texW, in.texH
	})

	if us := b.lookup(prefix + ".texture"); len(us) > 0 {
		b.samplers = append(b.samplers, sampler{
			unit:     b.allocUnit(),
			uniforms: us,
			src: func(fs *frameState) (Texture, Filter) {
				in := f(fs)
				return in.tex, in.filter
			},
		})
	}

	// texture coordinates are only meaningful to the vertex stage
	name := prefix + ".tex_coord"
	if a, ok := b.stages[0].Attribute(name); ok {
		b.declared = append(b.declared, name)
		b.attrs = append(b.attrs, attribute{
			attr: a,
			src: func(fs *frameState) VertexBuffer {
				return f(fs).vb
			},
		})
	}
}

// bind supplies values for every declared name. The returned value must be
// passed to unbind() once the pass has been drawn.
func (b *binder) bind(dev Device, fs *frameState) bound {
	var bnd bound

	for _, v := range b.values {
		v(fs)
	}

	for _, s := range b.samplers {
		tex, filter := s.src(fs)
		dev.BindTexture(s.unit, tex, filter)
		for _, u := range s.uniforms {
			u.SetInt(int32(s.unit))
		}
		bnd.units = append(bnd.units, s.unit)
	}

	for _, a := range b.attrs {
		vb := a.src(fs)
		if vb == nil {
			continue
		}
		a.attr.Bind(vb)
		bnd.attrs = append(bnd.attrs, a.attr)
	}

	for _, t := range fs.tracked {
		us, ok := b.tracked[t.Name]
		if !ok {
			us = b.lookup(t.Name)
			b.tracked[t.Name] = us
		}
		for _, u := range us {
			u.Set(t.Value)
		}
	}

	return bnd
}

// unbind releases everything attached by bind().
func (b *binder) unbind(dev Device, bnd bound) {
	for _, u := range bnd.units {
		dev.UnbindTexture(u)
	}
	for _, a := range bnd.attrs {
		a.Unbind()
	}
}
