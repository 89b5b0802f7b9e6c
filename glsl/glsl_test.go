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

package glsl

import (
	"strings"
	"testing"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/test"
)

func TestPrepare(t *testing.T) {
	src := "// comment\n#version 330\nvoid main_vertex() {}\n"
	out := prepare(src, "VERTEX", "main_vertex")
	lines := strings.Split(out, "\n")

	test.DemandEquality(t, len(lines) > 5, true)
	test.ExpectEquality(t, lines[0], "#version 330")
	test.ExpectEquality(t, lines[1], "#define VERTEX")
	test.ExpectEquality(t, lines[2], "#define main_vertex main")
	test.ExpectEquality(t, lines[3], "#line 1")

	// the version line is blanked so that line numbers are unchanged
	test.ExpectEquality(t, lines[4], "// comment")
	test.ExpectEquality(t, lines[5], "")
	test.ExpectEquality(t, lines[6], "void main_vertex() {}")
}

func TestPrepareDefaultVersion(t *testing.T) {
	out := prepare("void main_fragment() {}", "FRAGMENT", "main_fragment")
	test.ExpectEquality(t, strings.HasPrefix(out, defaultVersion+"\n#define FRAGMENT\n"), true)
	test.ExpectEquality(t, strings.HasSuffix(out, "#line 1\nvoid main_fragment() {}"), true)

	// a version directive after other code is left alone
	out = prepare("uniform float x;\n#version 330", "VERTEX", "main_vertex")
	test.ExpectEquality(t, strings.HasPrefix(out, defaultVersion), true)
	test.ExpectEquality(t, strings.Contains(out, "\n#version 330"), true)
}

func TestStock(t *testing.T) {
	test.ExpectEquality(t, strings.HasPrefix(StockShader, "#version"), true)
	test.ExpectEquality(t, strings.Contains(StockShader, "void main_vertex()"), true)
	test.ExpectEquality(t, strings.Contains(StockShader, "void main_fragment()"), true)
}

func TestAttributeName(t *testing.T) {
	test.ExpectEquality(t, attributeName("ORIG.tex_coord"), "ORIG_tex_coord")
	test.ExpectEquality(t, attributeName("tex_coord"), "tex_coord")
}

func TestLayout(t *testing.T) {
	test.ExpectEquality(t, vertexStride, int32(20))
	test.ExpectEquality(t, uvOffset, uintptr(12))
	test.ExpectEquality(t, quadSize, 80)
}

func TestFormats(t *testing.T) {
	internal, pixFormat, pixType := formats(chain.RGB15)
	test.ExpectEquality(t, internal, int32(gl.RGB5))
	test.ExpectEquality(t, pixFormat, uint32(gl.BGRA))
	test.ExpectEquality(t, pixType, uint32(gl.UNSIGNED_SHORT_1_5_5_5_REV))

	internal, pixFormat, pixType = formats(chain.ARGB)
	test.ExpectEquality(t, internal, int32(gl.RGBA8))
	test.ExpectEquality(t, pixFormat, uint32(gl.BGRA))
	test.ExpectEquality(t, pixType, uint32(gl.UNSIGNED_INT_8_8_8_8_REV))
}
