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
	"fmt"
	"image"
	"time"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/logger"
	"github.com/videochain/videochain/lut"
	"github.com/videochain/videochain/preset"
	"github.com/videochain/videochain/tracker"
)

// DriverError is the pattern for all errors returned by the driver.
const DriverError = "video: %v"

// Driver presents frames in a window through a render chain.
type Driver struct {
	cfg     Config
	win     Window
	backend Backend

	// the title of the window without the frame rate
	title string

	dev      chain.Device
	compiler chain.Compiler
	chain    *chain.RenderChain
	message  MessageDrawer
	watch    *watcher

	// size of the back buffer and the area of it that the picture is drawn
	// into
	width    int
	height   int
	viewport chain.Rect
	rotation chain.Rotation

	focus bool
	quit  bool

	// the device must be recreated before the next frame
	needsRestore bool

	fps fpsCounter
}

// New is the preferred method of initialisation for the Driver type.
func New(cfg Config, win Window, backend Backend) (*Driver, error) {
	if cfg.InputScale < 1 {
		return nil, curated.Errorf(DriverError, fmt.Sprintf("input scale must be at least one (%d)", cfg.InputScale))
	}
	if cfg.Format != chain.RGB15 && cfg.Format != chain.ARGB {
		return nil, curated.Errorf(DriverError, fmt.Sprintf("unsupported pixel format (%s)", cfg.Format))
	}
	if cfg.ForceAspect && cfg.AspectRatio <= 0 {
		return nil, curated.Errorf(DriverError, fmt.Sprintf("aspect ratio must be positive (%.3f)", cfg.AspectRatio))
	}

	drv := &Driver{
		cfg:     cfg,
		win:     win,
		backend: backend,
		title:   fmt.Sprintf("%s || %s", cfg.Title, backend.Name()),
		focus:   true,
		fps:     newFPSCounter(time.Now),
	}

	win.SetTitle(drv.title)

	err := win.SetSwapInterval(cfg.VSync)
	if err != nil {
		logger.Logf(logger.Allow, "video", "vsync: %v", err)
	}

	err = drv.init()
	if err != nil {
		return nil, err
	}

	return drv, nil
}

// init creates the device and everything that depends on it.
func (drv *Driver) init() error {
	drv.width, drv.height = drv.win.Size()

	var err error
	drv.dev, drv.compiler, err = drv.backend.Open(drv.width, drv.height)
	if err != nil {
		drv.dev = nil
		drv.compiler = nil
		return curated.Errorf(DriverError, err)
	}

	drv.calculateViewport()
	logger.Logf(logger.Allow, "video", "back buffer %dx%d, viewport %s", drv.width, drv.height, drv.viewport)

	c, files, err := drv.buildChain()
	if err != nil {
		drv.deinit()
		return curated.Errorf(DriverError, err)
	}
	drv.chain = c

	fd, err := newFontDrawer(drv.dev, drv.compiler)
	if err != nil {
		drv.deinit()
		return curated.Errorf(DriverError, err)
	}
	drv.message = fd

	if drv.cfg.WatchShaders && drv.watch == nil {
		drv.watchFiles(files)
	}

	return nil
}

// deinit releases the device and everything that depends on it. it is safe to
// call deinit more than once.
func (drv *Driver) deinit() {
	if drv.message != nil {
		drv.message.Release()
		drv.message = nil
	}
	if drv.chain != nil {
		drv.chain.Teardown()
		drv.chain = nil
	}
	if drv.dev != nil {
		drv.backend.Close()
		drv.dev = nil
		drv.compiler = nil
	}
}

// restore the device after it has been lost.
func (drv *Driver) restore() error {
	logger.Log(logger.Allow, "video", "restoring device")
	drv.deinit()
	return drv.init()
}

// buildChain creates a render chain for the configured shader. it also returns
// the list of files that the chain was built from.
func (drv *Driver) buildChain() (*chain.RenderChain, []string, error) {
	p, err := preset.Open(drv.cfg.Shader, drv.cfg.Smooth)
	if err != nil {
		return nil, nil, err
	}

	luts, err := lut.Load(p.LUTs)
	if err != nil {
		return nil, nil, err
	}

	trk, err := tracker.FromPreset(p.Tracker)
	if err != nil {
		return nil, nil, err
	}

	c, err := chain.Build(drv.dev, drv.compiler, p.Passes, chain.Config{
		Format:     drv.cfg.Format,
		InputScale: drv.cfg.InputScale,
		Viewport:   drv.viewport,
		LUTs:       luts,
		Tracker:    trk,
	})
	if err != nil {
		return nil, nil, err
	}

	return c, presetFiles(p), nil
}

// presetFiles returns every file that the preset refers to, without
// duplicates.
func presetFiles(p *preset.Preset) []string {
	var files []string
	seen := make(map[string]bool)
	add := func(f string) {
		if f != "" && !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}

	add(p.Path)
	for _, info := range p.Passes {
		add(info.Path)
	}
	for _, l := range p.LUTs {
		add(l.Path)
	}
	if p.Tracker != nil {
		add(p.Tracker.Script)
	}
	return files
}

// watchFiles replaces the current watcher with one for the list of files.
func (drv *Driver) watchFiles(files []string) {
	if drv.watch != nil {
		drv.watch.close()
		drv.watch = nil
	}
	if len(files) == 0 {
		return
	}

	var err error
	drv.watch, err = newWatcher(files)
	if err != nil {
		logger.Logf(logger.Allow, "video", "shader watch: %v", err)
	}
}

// rebuild the render chain with the configured shader. the current chain is
// kept if the new chain cannot be built.
func (drv *Driver) rebuild() error {
	c, files, err := drv.buildChain()
	if err != nil {
		return err
	}

	drv.chain.Teardown()
	drv.chain = c

	if drv.cfg.WatchShaders {
		drv.watchFiles(files)
	}

	return nil
}

// SetShader changes the shader or shader preset. An empty path means the
// stock shader. The previous shader remains in use if the new shader cannot
// be loaded.
func (drv *Driver) SetShader(path string) error {
	prev := drv.cfg.Shader
	drv.cfg.Shader = path

	if drv.chain == nil {
		return nil
	}

	err := drv.rebuild()
	if err != nil {
		drv.cfg.Shader = prev
		return curated.Errorf(DriverError, err)
	}

	logger.Logf(logger.Allow, "video", "shader: %s", path)
	return nil
}

// Shader returns the path of the current shader or shader preset.
func (drv *Driver) Shader() string {
	return drv.cfg.Shader
}

// calculateViewport updates the viewport for the size of the back buffer and
// the current rotation.
func (drv *Driver) calculateViewport() {
	aspect := rotatedAspect(drv.cfg.AspectRatio, drv.rotation)
	drv.viewport = CalculateRect(drv.width, drv.height, drv.cfg.ForceAspect, aspect)
}

// applyViewport tells the chain about a change to the viewport. the chain is
// rebuilt if it cannot accommodate the new viewport and the device is restored
// if the rebuild fails.
func (drv *Driver) applyViewport() {
	if drv.chain == nil {
		return
	}
	if drv.chain.SetFinalViewport(drv.viewport) {
		return
	}
	err := drv.rebuild()
	if err != nil {
		logger.Logf(logger.Allow, "video", "viewport: %v", err)
		drv.needsRestore = true
	}
}

// Frame renders the frame and presents it. The frame is width by height
// pixels in the configured format, with rows pitch bytes apart. The message is
// drawn over the picture if it is not empty.
func (drv *Driver) Frame(frame []byte, width, height, pitch int, msg string) Status {
	if drv.needsRestore {
		err := drv.restore()
		if err != nil {
			logger.Logf(logger.Allow, "video", "restore: %v", err)
			return Failed
		}
		drv.needsRestore = false
	}

	if drv.watch != nil && drv.watch.changed() {
		err := drv.rebuild()
		if err != nil {
			logger.Logf(logger.Allow, "video", "shader reload: %v", err)
		} else {
			logger.Log(logger.Allow, "video", "shader reloaded")
		}
	}

	drv.clear()

	if !drv.chain.Render(frame, width, height, pitch, drv.rotation) {
		logger.Logf(logger.Allow, "video", "frame dropped: %v", drv.chain.Err())
		return Dropped
	}

	if msg != "" {
		err := drv.message.Draw(msg, messageRect(drv.viewport), drv.cfg.MessageColour)
		if err != nil {
			logger.Logf(logger.Allow, "video", "%v", err)
		}
	}

	err := drv.win.Swap()
	if err != nil {
		logger.Logf(logger.Allow, "video", "present: %v", err)
		err = drv.restore()
		if err != nil {
			drv.needsRestore = true
			logger.Logf(logger.Allow, "video", "restore: %v", err)
			return Failed
		}
		return Presented
	}

	if fps, ok := drv.fps.tick(); ok {
		drv.win.SetTitle(fpsTitle(drv.title, fps))
	}

	return Presented
}

// clear the entire back buffer so that the area outside the viewport is black.
func (drv *Driver) clear() {
	err := drv.dev.SetRenderTarget(nil)
	if err == nil {
		drv.dev.SetViewport(chain.Rect{Width: drv.width, Height: drv.height})
		err = drv.dev.Clear()
	}
	if err != nil {
		logger.Logf(logger.Allow, "video", "clear: %v", err)
	}
}

// Alive processes window events and returns false if the user wants to quit.
func (drv *Driver) Alive() bool {
	ev := drv.win.Poll()
	drv.focus = ev.Focus
	if ev.Quit {
		drv.quit = true
	}
	if ev.Resized && !drv.quit {
		drv.resize()
	}
	return !drv.quit
}

// resize the back buffer to the size of the window.
func (drv *Driver) resize() {
	w, h := drv.win.Size()
	if w == drv.width && h == drv.height {
		return
	}
	drv.width = w
	drv.height = h

	if drv.dev == nil {
		drv.needsRestore = true
		return
	}

	r, ok := drv.dev.(resizer)
	if !ok {
		drv.needsRestore = true
		return
	}
	r.Resize(w, h)

	drv.calculateViewport()
	drv.applyViewport()
	logger.Logf(logger.Allow, "video", "resized to %dx%d, viewport %s", w, h, drv.viewport)
}

// Focus returns true if the window has input focus.
func (drv *Driver) Focus() bool {
	return drv.focus
}

// SetNonblockState turns vsync off when nonblocking is true.
func (drv *Driver) SetNonblockState(nonblock bool) {
	drv.cfg.VSync = !nonblock
	err := drv.win.SetSwapInterval(drv.cfg.VSync)
	if err != nil {
		logger.Logf(logger.Allow, "video", "vsync: %v", err)
	}
}

// SetRotation sets the rotation of the picture in quarter turns
// anti-clockwise.
func (drv *Driver) SetRotation(rot int) {
	r := chain.Rotation(rot).Normalise()
	if r == drv.rotation {
		return
	}
	drv.rotation = r
	drv.calculateViewport()
	drv.applyViewport()
}

// Viewport returns the area of the back buffer that the picture is drawn into.
func (drv *Driver) Viewport() chain.Rect {
	return drv.viewport
}

// ViewportSize returns the size of the viewport.
func (drv *Driver) ViewportSize() (int, int) {
	return drv.viewport.Width, drv.viewport.Height
}

// Chain returns the current render chain. It is nil if the device could not
// be restored.
func (drv *Driver) Chain() *chain.RenderChain {
	return drv.chain
}

func (drv *Driver) readViewport() ([]byte, error) {
	if drv.dev == nil {
		return nil, curated.Errorf(DriverError, "no device")
	}
	px, err := drv.dev.ReadPixels(drv.viewport)
	if err != nil {
		return nil, curated.Errorf(DriverError, err)
	}
	return px, nil
}

// ReadViewport copies the viewport into buf. Pixels are three bytes in the
// order blue, green, red with no padding between rows. The bottom row is
// first. The buffer must be at least width * height * 3 bytes long.
func (drv *Driver) ReadViewport(buf []byte) error {
	w, h := drv.viewport.Width, drv.viewport.Height
	if len(buf) < w*h*3 {
		return curated.Errorf(DriverError, fmt.Sprintf("read viewport: buffer too small (%d < %d)", len(buf), w*h*3))
	}

	px, err := drv.readViewport()
	if err != nil {
		return err
	}

	for y := range h {
		src := px[(h-1-y)*w*4:]
		dst := buf[y*w*3:]
		for x := range w {
			dst[x*3] = src[x*4]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}

	return nil
}

// Screenshot returns the contents of the viewport as an image.
func (drv *Driver) Screenshot() (*image.RGBA, error) {
	px, err := drv.readViewport()
	if err != nil {
		return nil, err
	}

	w, h := drv.viewport.Width, drv.viewport.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range w * h {
		img.Pix[i*4] = px[i*4+2]
		img.Pix[i*4+1] = px[i*4+1]
		img.Pix[i*4+2] = px[i*4]
		img.Pix[i*4+3] = 0xff
	}

	return img, nil
}

// Close releases the device and stops watching shader files.
func (drv *Driver) Close() {
	if drv.watch != nil {
		drv.watch.close()
		drv.watch = nil
	}
	drv.deinit()
}
