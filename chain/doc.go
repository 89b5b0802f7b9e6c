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

// Package chain implements a multi-pass shader render chain.
//
// A RenderChain takes raw frames from an emulator core and passes them
// through an ordered list of shader passes. Each pass samples the image
// produced by the previous pass and renders into the input texture of the
// next pass. The final pass renders into the back buffer of the device.
//
// The size of each intermediate image is decided by the pass's scaling policy
// (see Scale and Resolve). Intermediate textures are allocated once, when the
// chain is built, and only a sub-rectangle of each texture (the used
// rectangle) holds valid image data for any given frame.
//
// Shader stages discover their inputs by name. The following names are
// recognised:
//
//	IN.video_size, IN.texture_size, IN.output_size
//	IN.frame_count, IN.frame_direction
//	modelViewProj
//	ORIG.texture, ORIG.video_size, ORIG.texture_size, ORIG.tex_coord
//	PREV.*, PREV1.* ... PREV6.*
//	PASS1.* ... PASSn.*
//
// In addition, the ID of every lookup table texture is bound as a sampler and
// values supplied by a Tracker are bound as plain numeric uniforms. A stage
// that does not declare a name is not given a value for it.
//
// The package does not talk to any graphics API directly. A Device and a
// Compiler must be provided. The headless and glsl packages provide
// implementations of both.
//
// A RenderChain is not safe for concurrent use.
package chain
