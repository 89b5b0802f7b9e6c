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

package headless

import (
	"fmt"

	"github.com/videochain/videochain/video"
)

// Window implements the video.Window interface.
type Window struct {
	width  int
	height int

	pending []video.Events
	focus   bool

	titles []string
	vsync  bool
	swaps  int

	// the number of calls to Swap() that will fail before presentation
	// succeeds again
	SwapFaults int
}

// NewWindow is the preferred method of initialisation for the Window type.
func NewWindow(width, height int) *Window {
	return &Window{
		width:  width,
		height: height,
		focus:  true,
	}
}

// Size implements the video.Window interface.
func (win *Window) Size() (int, int) {
	return win.width, win.height
}

// Poll implements the video.Window interface. Queued events are returned one
// at a time.
func (win *Window) Poll() video.Events {
	if len(win.pending) == 0 {
		return video.Events{Focus: win.focus}
	}
	ev := win.pending[0]
	win.pending = win.pending[1:]
	win.focus = ev.Focus
	return ev
}

// Resize the window and queue a resize event.
func (win *Window) Resize(width, height int) {
	win.width = width
	win.height = height
	win.pending = append(win.pending, video.Events{Focus: win.focus, Resized: true})
}

// SetFocus queues a change of focus.
func (win *Window) SetFocus(focus bool) {
	win.pending = append(win.pending, video.Events{Focus: focus})
}

// Quit queues a quit event.
func (win *Window) Quit() {
	win.pending = append(win.pending, video.Events{Focus: win.focus, Quit: true})
}

// SetTitle implements the video.Window interface.
func (win *Window) SetTitle(title string) {
	win.titles = append(win.titles, title)
}

// Title returns the most recent title.
func (win *Window) Title() string {
	if len(win.titles) == 0 {
		return ""
	}
	return win.titles[len(win.titles)-1]
}

// Titles returns the number of times the title has been set.
func (win *Window) Titles() int {
	return len(win.titles)
}

// SetSwapInterval implements the video.Window interface.
func (win *Window) SetSwapInterval(vsync bool) error {
	win.vsync = vsync
	return nil
}

// VSync returns the most recent swap interval setting.
func (win *Window) VSync() bool {
	return win.vsync
}

// Swap implements the video.Window interface.
func (win *Window) Swap() error {
	if win.SwapFaults > 0 {
		win.SwapFaults--
		return fmt.Errorf("headless: swap: fault")
	}
	win.swaps++
	return nil
}

// Swaps returns the number of successful calls to Swap().
func (win *Window) Swaps() int {
	return win.swaps
}
