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

// Package headless is a software implementation of the chain.Device and
// chain.Compiler interfaces. It requires no graphics hardware and is used for
// benchmarking and for testing.
//
// Textures are byte slices and drawing is a nearest neighbour copy of the
// input texture through the texture coordinates of the quad. The output of
// shaders is not simulated. The Compiler accepts any source text that contains
// both entry points and does not contain an #error directive, and a program
// is considered to declare a parameter if the name of the parameter appears in
// the source as a whole word.
//
// The Device records every draw call and counts every live resource, which
// makes it possible for tests to check what the chain bound for a draw and
// that the chain released everything it created.
//
// Window and Backend complete the set of collaborators required by the video
// driver. Window events are queued by the caller and presentation failures
// can be injected.
package headless
