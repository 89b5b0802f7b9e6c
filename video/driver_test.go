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

package video_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/headless"
	"github.com/videochain/videochain/test"
	"github.com/videochain/videochain/video"
)

// source accepted by the headless compiler
const passthrough = "uniform sampler2D decal;\nvoid main_vertex() {}\nvoid main_fragment() {}\n"

func config() video.Config {
	return video.Config{
		Title:         "test",
		Width:         800,
		Height:        480,
		VSync:         true,
		ForceAspect:   true,
		AspectRatio:   4.0 / 3.0,
		InputScale:    1,
		Format:        chain.ARGB,
		MessageColour: 0xffffff,
	}
}

// frame returns an ARGB frame filled with a single colour.
func frame(w, h int, b, g, r byte) []byte {
	data := make([]byte, w*h*4)
	for i := 0; i < len(data); i += 4 {
		data[i] = b
		data[i+1] = g
		data[i+2] = r
		data[i+3] = 0xff
	}
	return data
}

func open(t *testing.T, cfg video.Config) (*video.Driver, *headless.Window, *headless.Backend) {
	t.Helper()
	win := headless.NewWindow(cfg.Width, cfg.Height)
	backend := headless.NewBackend()
	drv, err := video.New(cfg, win, backend)
	test.DemandSuccess(t, err)
	return drv, win, backend
}

func TestNew(t *testing.T) {
	drv, win, backend := open(t, config())

	test.ExpectEquality(t, win.Title(), "test || headless")
	test.ExpectSuccess(t, win.VSync())
	test.ExpectEquality(t, backend.Opened(), 1)
	test.ExpectEquality(t, drv.Viewport(), chain.Rect{X: 80, Width: 640, Height: 480})

	w, h := drv.ViewportSize()
	test.ExpectEquality(t, w, 640)
	test.ExpectEquality(t, h, 480)

	test.DemandInequality(t, drv.Chain(), nil)
	test.ExpectEquality(t, len(drv.Chain().Passes()), 1)
	test.ExpectSuccess(t, drv.Focus())

	drv.Close()
	test.ExpectEquality(t, backend.Device(), nil)
	test.ExpectEquality(t, backend.Leaks(), 0)

	// closing twice is safe
	drv.Close()
}

func TestNewErrors(t *testing.T) {
	cfg := config()
	cfg.InputScale = 0
	_, err := video.New(cfg, headless.NewWindow(640, 480), headless.NewBackend())
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, video.DriverError))

	cfg = config()
	cfg.Format = chain.PixelFormat(99)
	_, err = video.New(cfg, headless.NewWindow(640, 480), headless.NewBackend())
	test.ExpectFailure(t, err)

	cfg = config()
	cfg.AspectRatio = 0
	_, err = video.New(cfg, headless.NewWindow(640, 480), headless.NewBackend())
	test.ExpectFailure(t, err)

	// aspect ratio is ignored if it is not kept
	cfg.ForceAspect = false
	drv, err := video.New(cfg, headless.NewWindow(640, 480), headless.NewBackend())
	test.ExpectSuccess(t, err)
	drv.Close()

	backend := headless.NewBackend()
	backend.OpenFaults = 1
	_, err = video.New(config(), headless.NewWindow(640, 480), backend)
	test.ExpectFailure(t, err)

	// the device is closed if the chain cannot be built
	cfg = config()
	cfg.Shader = filepath.Join(t.TempDir(), "missing.glsl")
	backend = headless.NewBackend()
	_, err = video.New(cfg, headless.NewWindow(640, 480), backend)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, backend.Opened(), 1)
	test.ExpectEquality(t, backend.Device(), nil)
	test.ExpectEquality(t, backend.Leaks(), 0)
}

func TestFrame(t *testing.T) {
	drv, win, _ := open(t, config())
	defer drv.Close()

	st := drv.Frame(frame(256, 224, 0x10, 0x20, 0x30), 256, 224, 256*4, "")
	test.ExpectEquality(t, st, video.Presented)
	test.ExpectEquality(t, win.Swaps(), 1)
	test.ExpectEquality(t, drv.Chain().FrameCount(), uint(1))

	// the viewport is filled with the frame
	buf := make([]byte, 640*480*3)
	test.DemandSuccess(t, drv.ReadViewport(buf))
	for _, o := range []int{0, len(buf) / 2, len(buf) - 3} {
		test.ExpectEquality(t, buf[o], byte(0x10))
		test.ExpectEquality(t, buf[o+1], byte(0x20))
		test.ExpectEquality(t, buf[o+2], byte(0x30))
	}

	img, err := drv.Screenshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), 640)
	test.ExpectEquality(t, img.Pix[0], byte(0x30))
	test.ExpectEquality(t, img.Pix[1], byte(0x20))
	test.ExpectEquality(t, img.Pix[2], byte(0x10))
	test.ExpectEquality(t, img.Pix[3], byte(0xff))

	// frames that are too large for the chain are dropped
	st = drv.Frame(frame(300, 224, 0, 0, 0), 300, 224, 300*4, "")
	test.ExpectEquality(t, st, video.Dropped)
	test.ExpectEquality(t, win.Swaps(), 1)

	// and the chain recovers with the next good frame
	st = drv.Frame(frame(256, 224, 0, 0, 0), 256, 224, 256*4, "")
	test.ExpectEquality(t, st, video.Presented)
	test.ExpectEquality(t, win.Swaps(), 2)
}

func TestReadViewportOrder(t *testing.T) {
	cfg := config()
	cfg.Width = 640
	drv, _, _ := open(t, cfg)
	defer drv.Close()

	// the top half of the frame is red and the bottom half is blue
	data := frame(4, 4, 0, 0, 0xff)
	copy(data[32:], frame(4, 2, 0xff, 0, 0))

	test.ExpectEquality(t, drv.Frame(data, 4, 4, 16, ""), video.Presented)

	buf := make([]byte, 640*480*3)
	test.DemandSuccess(t, drv.ReadViewport(buf))

	// the bottom row is first
	test.ExpectEquality(t, buf[0], byte(0xff))
	test.ExpectEquality(t, buf[2], byte(0x00))

	// the top row is last
	o := len(buf) - 3
	test.ExpectEquality(t, buf[o], byte(0x00))
	test.ExpectEquality(t, buf[o+2], byte(0xff))

	test.ExpectFailure(t, drv.ReadViewport(make([]byte, 100)))
}

func TestLetterbox(t *testing.T) {
	drv, _, backend := open(t, config())
	defer drv.Close()

	test.ExpectEquality(t, drv.Frame(frame(256, 224, 0xff, 0xff, 0xff), 256, 224, 256*4, ""), video.Presented)

	px, err := backend.Device().ReadPixels(chain.Rect{Width: 800, Height: 1})
	test.DemandSuccess(t, err)

	// outside of the viewport is black
	test.ExpectEquality(t, px[0], byte(0x00))
	test.ExpectEquality(t, px[79*4], byte(0x00))
	test.ExpectEquality(t, px[720*4], byte(0x00))

	// inside is the picture
	test.ExpectEquality(t, px[80*4], byte(0xff))
	test.ExpectEquality(t, px[719*4], byte(0xff))
}

func TestRestoreOnPresentFailure(t *testing.T) {
	drv, win, backend := open(t, config())
	defer drv.Close()

	win.SwapFaults = 1
	st := drv.Frame(frame(256, 224, 0, 0, 0), 256, 224, 256*4, "")
	test.ExpectEquality(t, st, video.Presented)
	test.ExpectEquality(t, win.Swaps(), 0)

	// the device has been recreated and nothing leaked
	test.ExpectEquality(t, backend.Opened(), 2)
	test.ExpectEquality(t, backend.Leaks(), 0)
	test.ExpectEquality(t, drv.Chain().FrameCount(), uint(0))

	st = drv.Frame(frame(256, 224, 0, 0, 0), 256, 224, 256*4, "")
	test.ExpectEquality(t, st, video.Presented)
	test.ExpectEquality(t, win.Swaps(), 1)
}

func TestRestoreFailure(t *testing.T) {
	drv, win, backend := open(t, config())
	defer drv.Close()

	win.SwapFaults = 1
	backend.OpenFaults = 1
	st := drv.Frame(frame(256, 224, 0, 0, 0), 256, 224, 256*4, "")
	test.ExpectEquality(t, st, video.Failed)
	test.ExpectEquality(t, drv.Chain(), nil)
	test.ExpectFailure(t, drv.ReadViewport(make([]byte, 640*480*3)))

	// restore is attempted again on the next frame
	st = drv.Frame(frame(256, 224, 0, 0, 0), 256, 224, 256*4, "")
	test.ExpectEquality(t, st, video.Presented)
	test.ExpectEquality(t, backend.Opened(), 2)
	test.ExpectEquality(t, backend.Leaks(), 0)
}

func TestFPSInTitle(t *testing.T) {
	drv, win, _ := open(t, config())
	defer drv.Close()

	data := frame(16, 16, 0, 0, 0)
	for range 179 {
		drv.Frame(data, 16, 16, 64, "")
	}
	test.ExpectEquality(t, win.Title(), "test || headless")

	time.Sleep(time.Millisecond)
	drv.Frame(data, 16, 16, 64, "")
	test.ExpectSuccess(t, strings.HasPrefix(win.Title(), "test || headless || FPS: "))
	test.ExpectEquality(t, win.Titles(), 2)
}

func TestEvents(t *testing.T) {
	drv, win, _ := open(t, config())
	defer drv.Close()

	test.ExpectSuccess(t, drv.Alive())
	test.ExpectSuccess(t, drv.Focus())

	win.SetFocus(false)
	test.ExpectSuccess(t, drv.Alive())
	test.ExpectFailure(t, drv.Focus())

	win.SetFocus(true)
	test.ExpectSuccess(t, drv.Alive())
	test.ExpectSuccess(t, drv.Focus())

	win.Quit()
	test.ExpectFailure(t, drv.Alive())

	// once quit has been requested it is not forgotten
	test.ExpectFailure(t, drv.Alive())
}

func TestResize(t *testing.T) {
	drv, win, backend := open(t, config())
	defer drv.Close()

	test.ExpectEquality(t, drv.Frame(frame(16, 16, 0, 0, 0), 16, 16, 64, ""), video.Presented)

	win.Resize(1000, 500)
	test.ExpectSuccess(t, drv.Alive())
	test.ExpectEquality(t, drv.Viewport(), chain.Rect{X: 166, Width: 666, Height: 500})

	w, h := backend.Device().BackBufferSize()
	test.ExpectEquality(t, w, 1000)
	test.ExpectEquality(t, h, 500)

	// the chain accommodates the new viewport without restoring the device
	test.ExpectEquality(t, drv.Frame(frame(16, 16, 0, 0, 0), 16, 16, 64, ""), video.Presented)
	test.ExpectEquality(t, backend.Opened(), 1)
	test.ExpectEquality(t, drv.Chain().FinalViewport(), drv.Viewport())
}

func TestRotation(t *testing.T) {
	cfg := config()
	cfg.Width = 640
	drv, _, _ := open(t, cfg)
	defer drv.Close()

	test.ExpectEquality(t, drv.Viewport(), chain.Rect{Width: 640, Height: 480})

	drv.SetRotation(1)
	test.ExpectEquality(t, drv.Viewport(), chain.Rect{X: 140, Width: 360, Height: 480})
	test.ExpectEquality(t, drv.Frame(frame(16, 16, 0, 0, 0), 16, 16, 64, ""), video.Presented)

	// rotation is normalised
	drv.SetRotation(5)
	test.ExpectEquality(t, drv.Viewport(), chain.Rect{X: 140, Width: 360, Height: 480})

	drv.SetRotation(-2)
	test.ExpectEquality(t, drv.Viewport(), chain.Rect{Width: 640, Height: 480})
}

func TestNonblockState(t *testing.T) {
	drv, win, _ := open(t, config())
	defer drv.Close()

	test.ExpectSuccess(t, win.VSync())
	drv.SetNonblockState(true)
	test.ExpectFailure(t, win.VSync())
	drv.SetNonblockState(false)
	test.ExpectSuccess(t, win.VSync())
}

func TestMessage(t *testing.T) {
	cfg := config()
	cfg.Width = 640
	drv, _, backend := open(t, cfg)
	defer drv.Close()

	st := drv.Frame(frame(16, 16, 0, 0, 0), 16, 16, 64, "hello")
	test.ExpectEquality(t, st, video.Presented)

	draws := backend.Device().Draws()
	test.DemandInequality(t, len(draws), 0)
	last := draws[len(draws)-1]
	test.ExpectEquality(t, last.Program.Name(), "message")
	test.ExpectEquality(t, last.Viewport.X, 32)
	test.ExpectEquality(t, last.Viewport.Y, 432)

	// the text is drawn in the message colour over the black picture
	px, err := backend.Device().ReadPixels(chain.Rect{X: 32, Y: 432, Width: 608, Height: 48})
	test.DemandSuccess(t, err)

	var lit int
	for i := 0; i < len(px); i += 4 {
		if px[i] == 0xff && px[i+1] == 0xff && px[i+2] == 0xff {
			lit++
		}
	}
	test.ExpectSuccess(t, lit > 0)

	// the picture above the message area is untouched
	px, err = backend.Device().ReadPixels(chain.Rect{Width: 640, Height: 432})
	test.DemandSuccess(t, err)
	for i := 0; i < len(px); i += 4 {
		if px[i] != 0x00 {
			t.Fatalf("unexpected pixel above message area")
		}
	}
}

func TestSetShader(t *testing.T) {
	drv, _, backend := open(t, config())
	defer drv.Close()

	pth := filepath.Join(t.TempDir(), "pass.glsl")
	test.DemandSuccess(t, os.WriteFile(pth, []byte(passthrough), 0o600))

	test.DemandSuccess(t, drv.SetShader(pth))
	test.ExpectEquality(t, drv.Shader(), pth)
	test.ExpectEquality(t, drv.Chain().Passes()[0].Info().Path, pth)

	// the previous shader is kept if the new shader is not usable
	c := drv.Chain()
	test.ExpectFailure(t, drv.SetShader(filepath.Join(t.TempDir(), "missing.glsl")))
	test.ExpectEquality(t, drv.Shader(), pth)
	test.ExpectEquality(t, drv.Chain(), c)

	test.ExpectEquality(t, drv.Frame(frame(16, 16, 0, 0, 0), 16, 16, 64, ""), video.Presented)

	// back to the stock shader
	test.DemandSuccess(t, drv.SetShader(""))
	test.ExpectEquality(t, drv.Chain().Passes()[0].Info().Path, "")

	// everything from the previous chains has been released
	drv.Close()
	test.ExpectEquality(t, backend.Leaks(), 0)
}

func TestWatchShaders(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "pass.glsl")
	test.DemandSuccess(t, os.WriteFile(pth, []byte(passthrough), 0o600))

	cfg := config()
	cfg.Shader = pth
	cfg.WatchShaders = true
	drv, _, _ := open(t, cfg)
	defer drv.Close()

	c := drv.Chain()
	test.DemandSuccess(t, os.WriteFile(pth, []byte(passthrough+"\n"), 0o600))

	// the chain is rebuilt on a frame after the change is noticed
	deadline := time.Now().Add(5 * time.Second)
	for drv.Chain() == c && time.Now().Before(deadline) {
		drv.Frame(frame(16, 16, 0, 0, 0), 16, 16, 64, "")
		time.Sleep(10 * time.Millisecond)
	}
	test.ExpectInequality(t, drv.Chain(), c)
}
