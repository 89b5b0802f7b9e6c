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

// Package lut loads the lookup textures named by a preset and converts them
// into the pixel layout expected by the chain package.
//
// Images in the PNG, JPEG, GIF, BMP, TIFF and WebP formats are supported.
// Images larger than MaxSize in either dimension are scaled down so that they
// fit, preserving the aspect ratio.
package lut
