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

package headless

import (
	"fmt"
	"strings"

	"github.com/videochain/videochain/chain"
)

// StockShader is the source returned by Compiler.Stock().
const StockShader = `// passthrough
uniform mat4 modelViewProj;
uniform sampler2D decal;

void main_vertex(in vec4 position, in vec2 tex_coord) {
	gl_Position = modelViewProj * position;
}

void main_fragment() {
	sample(decal, tex_coord);
}
`

// Compiler implements the chain.Compiler interface.
type Compiler struct {
	dev      *Device
	compiled int
}

// NewCompiler is the preferred method of initialisation for the Compiler type.
// Programs created by the compiler are counted as live resources of the
// device.
func NewCompiler(dev *Device) *Compiler {
	return &Compiler{dev: dev}
}

// Compiled returns the number of programs successfully compiled.
func (cmp *Compiler) Compiled() int {
	return cmp.compiled
}

// Stock implements the chain.Compiler interface.
func (cmp *Compiler) Stock() string {
	return StockShader
}

// Compile implements the chain.Compiler interface.
func (cmp *Compiler) Compile(name string, source string) (chain.Program, error) {
	for n, l := range strings.Split(source, "\n") {
		if l, ok := strings.CutPrefix(strings.TrimSpace(l), "#error"); ok {
			return nil, fmt.Errorf("%s:%d: %s", name, n+1, strings.TrimSpace(l))
		}
	}

	for _, entry := range []string{chain.VertexEntry, chain.FragmentEntry} {
		if !declares(source, entry) {
			return nil, fmt.Errorf("%s: no entry point named %s", name, entry)
		}
	}

	prog := &Program{
		dev:    cmp.dev,
		name:   name,
		source: source,
		values: make(map[string][]float32),
	}
	cmp.dev.created()
	cmp.compiled++

	return prog, nil
}

func isIdent(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// declares returns true if name appears in the source as a whole word. Dots
// are allowed inside the name.
func declares(source string, name string) bool {
	if name == "" {
		return false
	}
	for i := 0; ; {
		j := strings.Index(source[i:], name)
		if j < 0 {
			return false
		}
		j += i
		end := j + len(name)
		if (j == 0 || !isIdent(source[j-1])) && (end == len(source) || !isIdent(source[end])) {
			return true
		}
		i = j + 1
	}
}

// Program implements the chain.Program interface.
type Program struct {
	dev     *Device
	name    string
	source  string
	values  map[string][]float32
	release bool
}

// Name returns the name given to the compiler.
func (prog *Program) Name() string {
	return prog.name
}

// Vertex implements the chain.Program interface.
func (prog *Program) Vertex() chain.Stage {
	return stage{prog: prog}
}

// Fragment implements the chain.Program interface.
func (prog *Program) Fragment() chain.Stage {
	return stage{prog: prog}
}

// Release implements the chain.Releaser interface.
func (prog *Program) Release() {
	prog.dev.released(&prog.release)
}

type stage struct {
	prog *Program
}

func (st stage) Uniform(name string) (chain.Uniform, bool) {
	if !declares(st.prog.source, name) {
		return nil, false
	}
	return uniform{prog: st.prog, name: name}, true
}

func (st stage) Attribute(name string) (chain.Attribute, bool) {
	if !declares(st.prog.source, name) {
		return nil, false
	}
	return &attribute{prog: st.prog, name: name}, true
}

type uniform struct {
	prog *Program
	name string
}

func (u uniform) Set(v ...float32) {
	u.prog.values[u.name] = append([]float32(nil), v...)
}

func (u uniform) SetInt(v int32) {
	u.prog.values[u.name] = []float32{float32(v)}
}

func (u uniform) SetMatrix(m chain.Matrix) {
	u.prog.values[u.name] = append([]float32(nil), m[:]...)
}

type attribute struct {
	prog *Program
	name string
}

func (a *attribute) Bind(v chain.VertexBuffer) {
	a.prog.dev.attrs[a] = v.(*VertexBuffer)
}

func (a *attribute) Unbind() {
	delete(a.prog.dev.attrs, a)
}
