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

// Package tracker implements the chain.Tracker interface. A tracker supplies
// extra values to the shaders every frame, derived from the state of the
// program producing the frames.
//
// The Lua tracker runs a script that defines a class. The class is either a
// table or a function that returns a table. Each value requested by a preset
// is a method of the table that is called with the frame count and which
// returns a number:
//
//	Game = {}
//	function Game:phase(frame)
//		return frame % 60
//	end
//
// Values that cannot be retrieved are zero. Errors are logged but a single
// failing method does not stop the other values from being retrieved.
package tracker
