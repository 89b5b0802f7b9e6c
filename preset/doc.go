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

// Package preset reads shader presets. A preset describes a chain of shader
// passes, the lookup textures used by the passes and an optional tracker
// script.
//
// Presets are TOML documents of top level keys:
//
//	#include "common.toml"
//
//	shaders = 2
//
//	shader0 = "scanline.glsl"
//	filter_linear0 = false
//	scale_type0 = "source"
//	scale0 = 2.0
//
//	shader1 = "crt.glsl"
//	scale_type_x1 = "viewport"
//	scale_type_y1 = "absolute"
//	scale_x1 = 1.0
//	scale_y1 = 480
//
//	textures = "mask"
//	mask = "mask.png"
//	mask_linear = true
//
//	imports = "phase"
//	import_script = "phase.lua"
//	import_script_class = "Phase"
//
// An #include line names another preset file. Values in the included file are
// used only if the including file does not have a value for the key. Includes
// are read in order and the first included file to have a value for a key
// wins. As far as the TOML parser is concerned an #include line is a comment.
//
// Paths are relative to the directory of the file they are found in.
package preset
