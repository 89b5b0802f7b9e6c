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
	"github.com/videochain/videochain/chain"
)

// Config for the video driver.
type Config struct {
	// title of the window. the name of the backend and the frame rate are
	// appended to the title
	Title string

	// size of the window. in fullscreen mode a size of zero means the size
	// of the desktop
	Width      int
	Height     int
	Fullscreen bool

	VSync bool

	// use a linear filter for passes that do not specify a filter
	Smooth bool

	// keep the aspect ratio of the picture, letterboxing as required
	ForceAspect bool
	AspectRatio float64

	// the largest frame will be no larger than chain.BaseSize multiplied by
	// the input scale
	InputScale int
	Format     chain.PixelFormat

	// path to a shader or a shader preset. an empty string means the stock
	// shader
	Shader string

	// rebuild the render chain if any of the files used by the shader
	// change
	WatchShaders bool

	// colour of on-screen messages. ARGB format with the alpha ignored
	MessageColour uint32
}

// Events from the window.
type Events struct {
	// the user wants to quit
	Quit bool

	// the window has input focus
	Focus bool

	// the window has changed size since the previous call to Poll()
	Resized bool
}

// Window is the window the picture is presented in.
type Window interface {
	// Size returns the size of the drawable area of the window in pixels
	Size() (int, int)

	// Poll processes pending window events
	Poll() Events

	SetTitle(title string)
	SetSwapInterval(vsync bool) error

	// Swap presents the back buffer
	Swap() error
}

// Backend creates the graphics device for a window.
type Backend interface {
	// Name is a human readable identification of the backend
	Name() string

	// Open creates the device for a back buffer of the given size. Only one
	// device is open at once.
	Open(w, h int) (chain.Device, chain.Compiler, error)

	// Close the device created by Open()
	Close()
}

// MessageDrawer draws on-screen messages over the picture in the back buffer.
type MessageDrawer interface {
	Draw(msg string, r chain.Rect, colour uint32) error
	Release()
}

// resizer is implemented by devices that need to know when the back buffer
// changes size.
type resizer interface {
	Resize(w, h int)
}

// Status of a call to Frame().
type Status int

// List of valid Status values.
const (
	// the frame was presented or presentation failed and the device will
	// be restored before the next frame
	Presented Status = iota

	// the frame could not be rendered
	Dropped

	// the device could not be restored
	Failed
)

func (s Status) String() string {
	switch s {
	case Presented:
		return "presented"
	case Dropped:
		return "dropped"
	case Failed:
		return "failed"
	}
	return "unknown status"
}
