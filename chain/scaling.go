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

package chain

import (
	"fmt"
	"math"
)

// ScaleType indicates how the size of a pass's output is derived.
type ScaleType int

// List of valid ScaleType values.
const (
	// output is a multiple of the size of the pass's input
	Relative ScaleType = iota

	// output is a fixed number of pixels
	Absolute

	// output is a multiple of the size of the final viewport
	Viewport
)

func (t ScaleType) String() string {
	switch t {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	case Viewport:
		return "viewport"
	}
	return fmt.Sprintf("unknown scale type (%d)", int(t))
}

// Scale is the scaling policy for one axis of a pass. Factor is used by the
// Relative and Viewport scale types and Abs is used by the Absolute type.
type Scale struct {
	Type   ScaleType
	Factor float64
	Abs    int
}

func (s Scale) String() string {
	if s.Type == Absolute {
		return fmt.Sprintf("%s @ %dpx", s.Type, s.Abs)
	}
	return fmt.Sprintf("%s @ %.2fx", s.Type, s.Factor)
}

// MaxSize is the largest width or height of any texture in the chain.
const MaxSize = 16384

// Valid returns false if the factor or absolute value is not greater than zero
// or is larger than MaxSize.
func (s Scale) Valid() bool {
	switch s.Type {
	case Relative, Viewport:
		return s.Factor > 0 && s.Factor <= MaxSize
	case Absolute:
		return s.Abs > 0 && s.Abs <= MaxSize
	}
	return false
}

func (s Scale) resolve(upstream int, final int) int {
	switch s.Type {
	case Relative:
		return roundSize(s.Factor * float64(upstream))
	case Absolute:
		return s.Abs
	case Viewport:
		return roundSize(s.Factor * float64(final))
	}
	return upstream
}

// values outside the range of an int32 are clamped before conversion. the
// result is still larger than MaxSize and is rejected by the chain.
func roundSize(v float64) int {
	v = math.Round(v)
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

// ViewportScale fills the final viewport exactly. The final pass of a chain
// always uses this policy on both axes.
var ViewportScale = Scale{Type: Viewport, Factor: 1.0}

// Filter is the sampling filter used when a texture is read by a shader.
type Filter int

// List of valid Filter values.
const (
	Nearest Filter = iota
	Linear
)

func (f Filter) String() string {
	if f == Linear {
		return "linear"
	}
	return "nearest"
}

// LinkInfo is the immutable configuration of a single pass.
type LinkInfo struct {
	// path to the shader source file. if both Path and Source are empty then
	// the compiler's stock shader is used
	Path string

	// shader source text. takes priority over Path
	Source string

	Filter Filter
	ScaleX Scale
	ScaleY Scale

	// size of the pass's input texture. set by the chain when the pass is
	// added, except for the first pass where it is derived from the input
	// scale
	TexW int
	TexH int
}

// the name of the shader for log and error messages.
func (info LinkInfo) shaderName() string {
	if info.Source != "" {
		if info.Path != "" {
			return info.Path
		}
		return "inline"
	}
	if info.Path == "" {
		return "stock"
	}
	return info.Path
}

func (info LinkInfo) String() string {
	return fmt.Sprintf("texture %dx%d: x %s: y %s: %s",
		info.TexW, info.TexH, info.ScaleX, info.ScaleY, info.Filter)
}

// Rect is a rectangle in pixels. It is used for the final viewport, which may
// be offset inside the back buffer.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Resolve returns the output size of a pass given the size of its input (w
// and h) and the final viewport. The function is deterministic.
func Resolve(info LinkInfo, w, h int, final Rect) (int, int) {
	return info.ScaleX.resolve(w, final.Width), info.ScaleY.resolve(h, final.Height)
}

// the largest power of two that fits in an int
const maxPow2 = math.MaxInt/2 + 1

// NextPow2 returns the smallest power of two greater than or equal to n. The
// return value is 1 for n less than or equal to one. Values of n larger than
// the largest power of two that fits in an int are clamped to that power of
// two.
func NextPow2(n int) int {
	if n >= maxPow2 {
		return maxPow2
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
