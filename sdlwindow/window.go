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

package sdlwindow

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/logger"
	"github.com/videochain/videochain/video"
)

// WindowError is the pattern for all errors returned by the package.
const WindowError = "sdl: %v"

// values expected by sdl.GLSetSwapInterval()
const (
	syncImmediateUpdate     = 0
	syncWithVerticalRetrace = 1
)

// Window implements the video.Window interface.
type Window struct {
	window  *sdl.Window
	context sdl.GLContext
	mode    sdl.DisplayMode

	focus bool
}

// New creates a window with an OpenGL context. A fullscreen window with a
// size of zero is the size of the desktop.
func New(title string, width, height int, fullscreen bool) (*Window, error) {
	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, curated.Errorf(WindowError, err)
	}

	for _, a := range []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 3},
		{sdl.GL_CONTEXT_MINOR_VERSION, 2},
		{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
	} {
		err = sdl.GLSetAttribute(a.attr, a.value)
		if err != nil {
			sdl.Quit()
			return nil, curated.Errorf(WindowError, err)
		}
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdl", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	win := &Window{
		focus: true,
	}

	win.mode, err = sdl.GetCurrentDisplayMode(0)
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf(WindowError, err)
	}
	logger.Logf(logger.Allow, "sdl", "desktop: %dx%d at %dHz", win.mode.W, win.mode.H, win.mode.RefreshRate)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_ALLOW_HIGHDPI | sdl.WINDOW_RESIZABLE)
	if fullscreen {
		if width == 0 || height == 0 {
			width = int(win.mode.W)
			height = int(win.mode.H)
		}
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if width <= 0 || height <= 0 {
		sdl.Quit()
		return nil, curated.Errorf(WindowError, fmt.Sprintf("invalid window size (%dx%d)", width, height))
	}

	win.window, err = sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height), flags)
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf(WindowError, err)
	}

	win.context, err = win.window.GLCreateContext()
	if err != nil {
		win.Destroy()
		return nil, curated.Errorf(WindowError, err)
	}
	err = win.window.GLMakeCurrent(win.context)
	if err != nil {
		win.Destroy()
		return nil, curated.Errorf(WindowError, err)
	}

	major, _ := sdl.GLGetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION)
	minor, _ := sdl.GLGetAttribute(sdl.GL_CONTEXT_MINOR_VERSION)
	logger.Logf(logger.Allow, "sdl", "using GL version %d.%d core", major, minor)

	return win, nil
}

// Destroy the window and shut down SDL.
func (win *Window) Destroy() {
	if win.context != nil {
		sdl.GLDeleteContext(win.context)
		win.context = nil
	}
	if win.window != nil {
		err := win.window.Destroy()
		if err != nil {
			logger.Logf(logger.Allow, "sdl", "%v", err)
		}
		win.window = nil
	}
	sdl.Quit()
}

// Size implements the video.Window interface. The size is in pixels, which
// may differ from the size in screen coordinates on high DPI displays.
func (win *Window) Size() (int, int) {
	w, h := win.window.GLGetDrawableSize()
	return int(w), int(h)
}

// Poll implements the video.Window interface.
func (win *Window) Poll() video.Events {
	ev := video.Events{}

	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch e := e.(type) {
		case *sdl.QuitEvent:
			ev.Quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_CLOSE:
				ev.Quit = true
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				win.focus = true
			case sdl.WINDOWEVENT_FOCUS_LOST:
				win.focus = false
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				ev.Resized = true
			}
		}
	}

	ev.Focus = win.focus
	return ev
}

// SetTitle implements the video.Window interface.
func (win *Window) SetTitle(title string) {
	win.window.SetTitle(title)
}

// SetSwapInterval implements the video.Window interface.
func (win *Window) SetSwapInterval(vsync bool) error {
	i := syncImmediateUpdate
	if vsync {
		i = syncWithVerticalRetrace
	}
	err := sdl.GLSetSwapInterval(i)
	if err != nil {
		return curated.Errorf(WindowError, fmt.Errorf("swap interval %d: %w", i, err))
	}
	return nil
}

// Swap implements the video.Window interface.
func (win *Window) Swap() error {
	sdl.ClearError()
	win.window.GLSwap()
	if err := sdl.GetError(); err != nil {
		return curated.Errorf(WindowError, err)
	}
	return nil
}
