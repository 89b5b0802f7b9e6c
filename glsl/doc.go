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

// Package glsl implements the chain.Device and chain.Compiler interfaces with
// OpenGL 3.2 core.
//
// A shader source contains both stages. The stage being compiled is selected
// with the VERTEX and FRAGMENT preprocessor definitions and the entry point of
// the stage is renamed to main:
//
//	#if defined(VERTEX)
//	in vec4 position;
//	in vec2 tex_coord;
//	out vec2 uv;
//	uniform mat4 modelViewProj;
//	void main_vertex() {
//		gl_Position = modelViewProj * position;
//		uv = tex_coord;
//	}
//	#elif defined(FRAGMENT)
//	...
//	#endif
//
// Uniforms with dotted names, such as IN.video_size, are members of uniform
// structs. Vertex attributes cannot be structs so the dot in the name of an
// attribute is replaced with an underscore, ie. ORIG.tex_coord is declared as
// ORIG_tex_coord.
//
// All functions must be called from the thread that owns the GL context.
package glsl
