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
	"os"

	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/logger"
)

// BaseSize is the size of the first pass's texture for an input scale of
// one. It is large enough for the frames of most emulated consoles.
const BaseSize = 256

// LUT is a lookup table texture. Pixels are in the ARGB format and tightly
// packed. The ID is the name of the sampler that the texture is bound to.
type LUT struct {
	ID     string
	Filter Filter
	Width  int
	Height int
	Pixels []byte
}

type lutTexture struct {
	id     string
	tex    Texture
	filter Filter
}

// Config for a new RenderChain.
type Config struct {
	Format     PixelFormat
	InputScale int
	Viewport   Rect
	LUTs       []LUT

	// the chain takes ownership of the tracker. it can be nil
	Tracker Tracker
}

// RenderChain is an ordered list of passes.
type RenderChain struct {
	dev      Device
	compiler Compiler
	conv     Conventions

	format  PixelFormat
	final   Rect
	tracker Tracker

	passes  []*Pass
	luts    []lutTexture
	history History

	frameCount uint

	ar   arena
	torn bool

	// the error from the most recent call to Render(). limits the number of
	// log entries for failed frames
	err      error
	errLimit logger.Limiter
}

// New creates a chain containing a single pass. The first pass's texture is
// sized by the input scale and the TexW and TexH fields of the LinkInfo are
// ignored.
//
// If New fails then all resources, including the tracker, have been released.
func New(dev Device, compiler Compiler, first LinkInfo, cfg Config) (*RenderChain, error) {
	c := &RenderChain{
		dev:      dev,
		compiler: compiler,
		conv:     dev.Conventions(),
		format:   cfg.Format,
		final:    cfg.Viewport,
		tracker:  cfg.Tracker,
		errLimit: logger.Limiter{Allowance: 10},
	}
	if c.tracker == nil {
		c.tracker = NullTracker{}
	}

	if cfg.InputScale < 1 || cfg.InputScale > MaxSize/BaseSize {
		c.Teardown()
		return nil, curated.Errorf(BuildError, fmt.Sprintf("input scale must be between 1 and %d (%d)", MaxSize/BaseSize, cfg.InputScale))
	}

	first.TexW = BaseSize * cfg.InputScale
	first.TexH = BaseSize * cfg.InputScale

	if err := c.createLUTs(cfg.LUTs); err != nil {
		c.Teardown()
		return nil, curated.Errorf(BuildError, err)
	}

	if err := c.history.allocate(dev, first.TexW, first.TexH, c.format, &c.ar); err != nil {
		c.Teardown()
		return nil, curated.Errorf(BuildError, err)
	}

	if err := c.createPass(first, first.TexW, first.TexH, false); err != nil {
		c.Teardown()
		return nil, curated.Errorf(BuildError, err)
	}

	return c, nil
}

// Build creates a chain with one pass for each LinkInfo. Construction is all
// or nothing. If any pass cannot be created then every resource is released
// and a single error is returned.
func Build(dev Device, compiler Compiler, passes []LinkInfo, cfg Config) (*RenderChain, error) {
	if len(passes) == 0 {
		if cfg.Tracker != nil {
			cfg.Tracker.Destroy()
		}
		return nil, curated.Errorf(BuildError, "no passes")
	}

	c, err := New(dev, compiler, passes[0], cfg)
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(passes); i++ {
		if err := c.AddPass(passes[i]); err != nil {
			c.Teardown()
			return nil, err
		}
	}

	return c, nil
}

// AddPass adds a pass to the end of the chain. The size of the pass's input
// texture is decided by resolving the previous pass's scaling policy against
// the image expected in the previous pass's texture. The texture is then
// rounded up to a power of two.
//
// A failure leaves the chain unchanged.
func (c *RenderChain) AddPass(info LinkInfo) error {
	if c.torn {
		return curated.Errorf(BuildError, "chain has been torn down")
	}

	prev := c.passes[len(c.passes)-1]
	w, h := Resolve(prev.info, prev.nominalW, prev.nominalH, c.final)
	if w < 1 || h < 1 || w > MaxSize || h > MaxSize {
		return curated.Errorf(BuildError, fmt.Sprintf("pass %d: texture size out of range (%dx%d)", len(c.passes), w, h))
	}
	info.TexW = NextPow2(w)
	info.TexH = NextPow2(h)

	if err := c.createPass(info, w, h, true); err != nil {
		return curated.Errorf(BuildError, err)
	}

	return nil
}

func (c *RenderChain) createPass(info LinkInfo, nominalW, nominalH int, target bool) error {
	if !info.ScaleX.Valid() || !info.ScaleY.Valid() {
		return fmt.Errorf("pass %d: invalid scale (x %s: y %s)", len(c.passes), info.ScaleX, info.ScaleY)
	}

	mark := c.ar.mark()

	p := &Pass{
		info:     info,
		nominalW: nominalW,
		nominalH: nominalH,
	}

	err := c.createPassResources(p, target)
	if err != nil {
		c.ar.rollback(mark)
		return err
	}

	p.binder = newBinder(c, p.prog, len(c.passes))
	c.passes = append(c.passes, p)

	logger.Logf(logger.Allow, "chain", "pass %d: %s: %s", len(c.passes)-1, info.shaderName(), info)

	return nil
}

func (c *RenderChain) createPassResources(p *Pass, target bool) error {
	var err error

	p.prog, err = c.compile(p.info)
	if err != nil {
		return err
	}
	c.ar.add(p.prog)

	p.vb, err = c.dev.NewVertexBuffer()
	if err != nil {
		return err
	}
	c.ar.add(p.vb)

	// the first pass's texture holds the raw frame. all other textures are
	// render targets
	format := ARGB
	if !target {
		format = c.format
	}
	p.tex, err = c.dev.NewTexture(p.info.TexW, p.info.TexH, format, target)
	if err != nil {
		return err
	}
	c.ar.add(p.tex)

	return nil
}

func (c *RenderChain) compile(info LinkInfo) (Program, error) {
	src := info.Source
	if src == "" {
		if info.Path == "" {
			logger.Log(logger.Allow, "chain", "compiling stock shader")
			src = c.compiler.Stock()
		} else {
			logger.Logf(logger.Allow, "chain", "compiling shader: %s", info.Path)
			b, err := os.ReadFile(info.Path)
			if err != nil {
				return nil, curated.Errorf(CompileError, info.Path, err)
			}
			src = string(b)
		}
	}

	prog, err := c.compiler.Compile(info.shaderName(), src)
	if err != nil {
		return nil, curated.Errorf(CompileError, info.shaderName(), err)
	}
	return prog, nil
}

func (c *RenderChain) createLUTs(luts []LUT) error {
	for _, l := range luts {
		tex, err := c.dev.NewTexture(l.Width, l.Height, ARGB, false)
		if err != nil {
			return fmt.Errorf("lut %s: %w", l.ID, err)
		}
		c.ar.add(tex)

		if err := upload(tex, l.Pixels, l.Width, l.Height, l.Width*ARGB.Size(), ARGB.Size(), false); err != nil {
			return fmt.Errorf("lut %s: %w", l.ID, err)
		}

		c.luts = append(c.luts, lutTexture{id: l.ID, tex: tex, filter: l.Filter})
	}
	return nil
}

// Teardown releases all resources owned by the chain. It is safe to call more
// than once.
func (c *RenderChain) Teardown() {
	if c.torn {
		return
	}
	c.torn = true

	c.ar.release()
	c.passes = nil
	c.luts = nil
	c.history = History{}

	if c.tracker != nil {
		c.tracker.Destroy()
		c.tracker = nil
	}
}

// Passes returns the passes in the chain.
func (c *RenderChain) Passes() []*Pass {
	return c.passes
}

// History returns the chain's history ring.
func (c *RenderChain) History() *History {
	return &c.history
}

// FrameCount returns the number of frames that have been rendered
// successfully.
func (c *RenderChain) FrameCount() uint {
	return c.frameCount
}

// Err returns the reason for the most recent call to Render() returning false.
func (c *RenderChain) Err() error {
	return c.err
}

// FinalViewport returns the area of the back buffer that the final pass
// renders into.
func (c *RenderChain) FinalViewport() Rect {
	return c.final
}

// SetFinalViewport changes the area of the back buffer that the final pass
// renders into. Returns false if the chain's intermediate textures are too
// small for the new viewport, in which case the chain should be rebuilt.
func (c *RenderChain) SetFinalViewport(vp Rect) bool {
	c.final = vp

	if len(c.passes) == 0 {
		return false
	}

	w, h := c.passes[0].nominalW, c.passes[0].nominalH
	for i := 1; i < len(c.passes); i++ {
		w, h = Resolve(c.passes[i-1].info, w, h, vp)
		if w > c.passes[i].info.TexW || h > c.passes[i].info.TexH {
			return false
		}
	}

	return true
}

func (c *RenderChain) passInput(i int) input {
	if i >= len(c.passes) {
		return input{}
	}
	return c.passes[i].input()
}

func (c *RenderChain) historyInput(k int) input {
	s := c.history.Get(k)
	in := input{
		tex:   s.Texture,
		vb:    s.Vertices,
		usedW: s.UsedW,
		usedH: s.UsedH,
	}

	// the zero snapshot has no vertices and is not given a texture size
	if s.UsedW == 0 && s.UsedH == 0 {
		in.vb = nil
		return in
	}

	if s.Texture != nil {
		in.texW, in.texH = s.Texture.Size()
	}
	if len(c.passes) > 0 {
		in.filter = c.passes[0].info.Filter
	}

	return in
}

// Render passes the frame through the chain. The frame is w by h pixels and
// each row of the frame starts pitch bytes after the previous row. The
// rotation is applied to the final pass only.
//
// Returns false if the frame could not be rendered. The reason is available
// from Err().
func (c *RenderChain) Render(frame []byte, w, h, pitch int, rot Rotation) bool {
	err := c.render(frame, w, h, pitch, rot)
	if err != nil {
		c.err = curated.Errorf(FrameError, err)
		logger.Log(&c.errLimit, "chain", c.err)
		return false
	}
	c.err = nil
	c.errLimit.Reset()
	return true
}

func (c *RenderChain) render(frame []byte, w, h, pitch int, rot Rotation) error {
	if c.torn || len(c.passes) == 0 {
		return fmt.Errorf("chain is not built")
	}

	if err := c.blit(frame, w, h, pitch); err != nil {
		return err
	}

	fs := frameState{
		chain:   c,
		frame:   c.frameCount,
		tracked: c.tracker.Uniforms(c.frameCount),
	}

	curW, curH := w, h

	// passes that render into the input texture of the following pass
	for i := 0; i < len(c.passes)-1; i++ {
		from := c.passes[i]
		to := c.passes[i+1]

		outW, outH := Resolve(from.info, curW, curH, c.final)
		if outW > to.info.TexW || outH > to.info.TexH {
			return fmt.Errorf("pass %d: output %dx%d is larger than texture %dx%d", i, outW, outH, to.info.TexW, to.info.TexH)
		}

		if err := c.dev.SetRenderTarget(to.tex); err != nil {
			return fmt.Errorf("pass %d: %w", i, err)
		}
		c.dev.SetViewport(Rect{Width: outW, Height: outH})

		err := from.ensureGeometry(c.conv, geometryKey{
			usedW: curW, usedH: curH,
			outW: outW, outH: outH,
			vpW: outW, vpH: outH,
			offscreen: true,
		})
		if err != nil {
			return fmt.Errorf("pass %d: %w", i, err)
		}

		if err := c.draw(from, &fs, curW, curH, outW, outH); err != nil {
			return fmt.Errorf("pass %d: %w", i, err)
		}

		to.usedW, to.usedH = outW, outH
		curW, curH = outW, outH
	}

	// the final pass always fills the final viewport
	last := c.passes[len(c.passes)-1]
	final := LinkInfo{ScaleX: ViewportScale, ScaleY: ViewportScale}
	outW, outH := Resolve(final, curW, curH, c.final)

	if err := c.dev.SetRenderTarget(nil); err != nil {
		return fmt.Errorf("final pass: %w", err)
	}
	c.dev.SetViewport(c.final)

	err := last.ensureGeometry(c.conv, geometryKey{
		usedW: curW, usedH: curH,
		outW: outW, outH: outH,
		vpW: c.final.Width, vpH: c.final.Height,
		rot: rot.Normalise(),
	})
	if err != nil {
		return fmt.Errorf("final pass: %w", err)
	}

	if err := c.draw(last, &fs, curW, curH, c.final.Width, c.final.Height); err != nil {
		return fmt.Errorf("final pass: %w", err)
	}

	// all passes have finished with the first pass's input
	first := c.passes[0]
	if err := c.history.Advance(c.dev, first.usedW, first.usedH, first.tex, first.quad); err != nil {
		return fmt.Errorf("history: %w", err)
	}

	c.frameCount++

	return nil
}

func (c *RenderChain) draw(p *Pass, fs *frameState, usedW, usedH, outW, outH int) error {
	fs.usedW, fs.usedH = usedW, usedH
	fs.texW, fs.texH = p.info.TexW, p.info.TexH
	fs.outW, fs.outH = outW, outH
	fs.mvp = p.mvp
	return p.bindAndDraw(c.dev, fs)
}
