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

// Package video is the video driver. It owns the window, the graphics device
// and the render chain, and turns the frames produced by an emulator into
// the picture shown in the window.
//
// The window and the graphics device are collaborators given to New(). The
// Window interface is implemented by the sdlwindow package and the Backend
// interface by the glsl package. The headless package implements both for
// testing and benchmarking.
//
// The driver is used from a single thread. A typical loop looks like:
//
//	for drv.Alive() {
//		in.Poll()
//		...
//		drv.Frame(frame, w, h, pitch, msg)
//	}
//
// Presentation failures are treated as a lost device. The driver tears down
// the render chain and the device and recreates them before the next frame.
package video
