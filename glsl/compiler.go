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
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/logger"
)

// StockShader is the source returned by Compiler.Stock().
const StockShader = `#version 150

#if defined(VERTEX)
in vec4 position;
in vec2 tex_coord;
out vec2 uv;
uniform mat4 modelViewProj;

void main_vertex() {
	gl_Position = modelViewProj * position;
	uv = tex_coord;
}

#elif defined(FRAGMENT)
in vec2 uv;
out vec4 colour;
uniform sampler2D decal;

void main_fragment() {
	colour = texture(decal, uv);
}
#endif
`

// version used by sources that do not specify one
const defaultVersion = "#version 150"

// Compiler implements the chain.Compiler interface.
type Compiler struct {
	dev *Device
}

// NewCompiler is the preferred method of initialisation for the Compiler type.
func NewCompiler(dev *Device) *Compiler {
	return &Compiler{dev: dev}
}

// Stock implements the chain.Compiler interface.
func (cmp *Compiler) Stock() string {
	return StockShader
}

// prepare the source for the stage. the version directive must be the first
// line of a GLSL source so it is moved in front of the stage definitions.
func prepare(source string, stage string, entry string) string {
	version := defaultVersion
	var b strings.Builder

	lines := strings.Split(source, "\n")
	for i, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" || strings.HasPrefix(t, "//") {
			continue
		}
		if strings.HasPrefix(t, "#version") {
			version = t
			lines[i] = ""
		}
		break
	}

	b.WriteString(version)
	b.WriteString("\n")
	fmt.Fprintf(&b, "#define %s\n", stage)
	fmt.Fprintf(&b, "#define %s main\n", entry)

	// line numbers in error messages match the original source
	b.WriteString("#line 1\n")
	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}

// Compile implements the chain.Compiler interface.
func (cmp *Compiler) Compile(name string, source string) (chain.Program, error) {
	vert, err := compileStage(gl.VERTEX_SHADER, prepare(source, "VERTEX", chain.VertexEntry))
	if err != nil {
		return nil, curated.Errorf(CompileError, name, curated.Errorf("vertex: %v", err))
	}
	defer gl.DeleteShader(vert)

	frag, err := compileStage(gl.FRAGMENT_SHADER, prepare(source, "FRAGMENT", chain.FragmentEntry))
	if err != nil {
		return nil, curated.Errorf(CompileError, name, curated.Errorf("fragment: %v", err))
	}
	defer gl.DeleteShader(frag)

	handle := gl.CreateProgram()
	gl.AttachShader(handle, vert)
	gl.AttachShader(handle, frag)

	// the vertex stream is always at the same locations
	gl.BindAttribLocation(handle, positionLocation, gl.Str("position\x00"))
	gl.BindAttribLocation(handle, texCoordLocation, gl.Str("tex_coord\x00"))

	gl.LinkProgram(handle)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &length)
		log := infoLog(length, func(l *int32, s *uint8) { gl.GetProgramInfoLog(handle, length, l, s) })
		gl.DeleteProgram(handle)
		return nil, curated.Errorf(CompileError, name, curated.Errorf("link: %s", log))
	}

	gl.DetachShader(handle, vert)
	gl.DetachShader(handle, frag)

	prog := &Program{
		dev:    cmp.dev,
		name:   name,
		handle: handle,
	}
	cmp.dev.live++

	logger.Logf(logger.Allow, "glsl", "compiled %s", name)

	return prog, nil
}

func compileStage(stage uint32, source string) (uint32, error) {
	handle := gl.CreateShader(stage)

	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csource, nil)
	free()

	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &length)
		log := infoLog(length, func(l *int32, s *uint8) { gl.GetShaderInfoLog(handle, length, l, s) })
		gl.DeleteShader(handle)
		return 0, curated.Errorf("%s", log)
	}

	return handle, nil
}

// infoLog retrieves an information log of the given length.
func infoLog(length int32, get func(*int32, *uint8)) string {
	if length <= 0 {
		return "unknown error"
	}
	log := strings.Repeat("\x00", int(length+1))
	get(&length, gl.Str(log))
	return strings.TrimRight(strings.TrimSpace(log[:length]), "\x00")
}

// Program implements the chain.Program interface.
type Program struct {
	dev    *Device
	name   string
	handle uint32
}

// Name returns the name given to the compiler.
func (prog *Program) Name() string {
	return prog.name
}

// Vertex implements the chain.Program interface.
//
// Uniforms are shared by both stages of a program and are reported by the
// vertex stage.
func (prog *Program) Vertex() chain.Stage {
	return stage{prog: prog, vertex: true}
}

// Fragment implements the chain.Program interface.
func (prog *Program) Fragment() chain.Stage {
	return stage{prog: prog}
}

// Release implements the chain.Releaser interface.
func (prog *Program) Release() {
	if prog.handle == 0 {
		return
	}
	if prog.dev.program == prog.handle {
		prog.dev.use(0)
	}
	gl.DeleteProgram(prog.handle)
	prog.handle = 0
	prog.dev.live--
}

type stage struct {
	prog   *Program
	vertex bool
}

func (st stage) Uniform(name string) (chain.Uniform, bool) {
	if !st.vertex || st.prog.handle == 0 {
		return nil, false
	}
	loc := gl.GetUniformLocation(st.prog.handle, gl.Str(name+"\x00"))
	if loc == -1 {
		return nil, false
	}
	return uniform{prog: st.prog, loc: loc}, true
}

// attributeName converts a dotted name to the name of a vertex attribute.
func attributeName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

func (st stage) Attribute(name string) (chain.Attribute, bool) {
	if !st.vertex || st.prog.handle == 0 {
		return nil, false
	}
	loc := gl.GetAttribLocation(st.prog.handle, gl.Str(attributeName(name)+"\x00"))
	if loc == -1 {
		return nil, false
	}
	return attribute{loc: uint32(loc)}, true
}

type uniform struct {
	prog *Program
	loc  int32
}

func (u uniform) Set(v ...float32) {
	u.prog.dev.use(u.prog.handle)
	switch len(v) {
	case 1:
		gl.Uniform1f(u.loc, v[0])
	case 2:
		gl.Uniform2f(u.loc, v[0], v[1])
	case 3:
		gl.Uniform3f(u.loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4f(u.loc, v[0], v[1], v[2], v[3])
	}
}

func (u uniform) SetInt(v int32) {
	u.prog.dev.use(u.prog.handle)
	gl.Uniform1i(u.loc, v)
}

// SetMatrix transposes the matrix because OpenGL expects column-major order.
func (u uniform) SetMatrix(m chain.Matrix) {
	u.prog.dev.use(u.prog.handle)
	gl.UniformMatrix4fv(u.loc, 1, true, &m[0])
}

type attribute struct {
	loc uint32
}

func (a attribute) Bind(vb chain.VertexBuffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.(*VertexBuffer).id)
	gl.VertexAttribPointerWithOffset(a.loc, 2, gl.FLOAT, false, vertexStride, uvOffset)
	gl.EnableVertexAttribArray(a.loc)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (a attribute) Unbind() {
	gl.DisableVertexAttribArray(a.loc)
}
