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

// Package sdlwindow implements the video.Window interface with an SDL window
// and an OpenGL 3.2 core context.
//
// SDL and OpenGL calls must all be made from the same thread. New() locks the
// calling goroutine to its OS thread and the window should only be used from
// that goroutine.
package sdlwindow
