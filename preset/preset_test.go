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

package preset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/preset"
	"github.com/videochain/videochain/test"
)

func write(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	test.DemandSuccess(t, err)
	err = os.WriteFile(path, []byte(content), 0o644)
	test.DemandSuccess(t, err)
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "crt.toml", `
shaders = 3

shader0 = "shaders/blur.glsl"
filter_linear0 = false
scale_type0 = "source"
scale0 = 2.0

shader1 = "shaders/scanline.glsl"
scale_type_x1 = "absolute"
scale_x1 = 640
scale_type_y1 = "viewport"
scale_y1 = 0.5

shader2 = "/abs/final.glsl"
filter_linear2 = true
`)

	p, err := preset.Load(path, false)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(p.Passes), 3)

	test.ExpectEquality(t, p.Passes[0].Path, filepath.Join(dir, "shaders/blur.glsl"))
	test.ExpectEquality(t, p.Passes[0].Filter, chain.Nearest)
	test.ExpectEquality(t, p.Passes[0].ScaleX, chain.Scale{Type: chain.Relative, Factor: 2.0})
	test.ExpectEquality(t, p.Passes[0].ScaleY, chain.Scale{Type: chain.Relative, Factor: 2.0})

	test.ExpectEquality(t, p.Passes[1].ScaleX, chain.Scale{Type: chain.Absolute, Abs: 640})
	test.ExpectEquality(t, p.Passes[1].ScaleY, chain.Scale{Type: chain.Viewport, Factor: 0.5})

	// the final pass fills the viewport unless told otherwise
	test.ExpectEquality(t, p.Passes[2].Path, "/abs/final.glsl")
	test.ExpectEquality(t, p.Passes[2].Filter, chain.Linear)
	test.ExpectEquality(t, p.Passes[2].ScaleX, chain.ViewportScale)
	test.ExpectEquality(t, p.Passes[2].ScaleY, chain.ViewportScale)

	test.ExpectEquality(t, len(p.LUTs), 0)
	test.ExpectEquality(t, p.Tracker == nil, true)
}

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "two.cgp", `
shaders = "2"
shader0 = "a.glsl"
shader1 = "b.glsl"
`)

	p, err := preset.Load(path, true)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(p.Passes), 2)

	test.ExpectEquality(t, p.Passes[0].Filter, chain.Linear)
	test.ExpectEquality(t, p.Passes[0].ScaleX, chain.Scale{Type: chain.Relative, Factor: 1.0})
	test.ExpectEquality(t, p.Passes[1].ScaleX, chain.ViewportScale)
}

func TestTexturesAndTracker(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "lut.toml", `
shaders = 1
shader0 = "a.glsl"

textures = "bg;mask"
bg = "img/bg.png"
mask = "img/mask.png"
mask_linear = false

imports = "phase; flash"
import_script = "track.lua"
import_script_class = "game"
`)

	p, err := preset.Load(path, false)
	test.DemandSuccess(t, err)

	test.DemandEquality(t, len(p.LUTs), 2)
	test.ExpectEquality(t, p.LUTs[0], preset.LUT{ID: "bg", Path: filepath.Join(dir, "img/bg.png"), Filter: chain.Linear})
	test.ExpectEquality(t, p.LUTs[1], preset.LUT{ID: "mask", Path: filepath.Join(dir, "img/mask.png"), Filter: chain.Nearest})

	test.DemandInequality(t, p.Tracker, nil)
	test.ExpectEquality(t, p.Tracker.Script, filepath.Join(dir, "track.lua"))
	test.ExpectEquality(t, p.Tracker.Class, "game")
	test.DemandEquality(t, len(p.Tracker.Uniforms), 2)
	test.ExpectEquality(t, p.Tracker.Uniforms[0], "phase")
	test.ExpectEquality(t, p.Tracker.Uniforms[1], "flash")
}

func TestInclude(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "base/base.toml", `
shaders = 1
shader0 = "base.glsl"
scale_type0 = "source"
scale0 = 3
`)
	path := write(t, dir, "top.toml", `
#include "base/base.toml"
scale0 = 2
`)

	p, err := preset.Load(path, false)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(p.Passes), 1)

	// paths are relative to the file that defined them and values in the
	// including file take priority
	test.ExpectEquality(t, p.Passes[0].Path, filepath.Join(dir, "base/base.glsl"))
	test.ExpectEquality(t, p.Passes[0].ScaleX, chain.Scale{Type: chain.Relative, Factor: 2.0})
}

func TestIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.toml", `#include "b.toml"`)
	path := write(t, dir, "b.toml", `#include "a.toml"`)

	_, err := preset.Load(path, false)
	test.ExpectFailure(t, err)

	path = write(t, dir, "c.toml", `#include c.toml`)
	_, err = preset.Load(path, false)
	test.ExpectFailure(t, err)
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()

	for i, content := range []string{
		`shader0 = "a.glsl"`,
		`shaders = 0`,
		`shaders = 2
shader0 = "a.glsl"`,
		`shaders = 1
shader0 = "a.glsl"
scale_type0 = "stretched"`,
		`shaders = 1
shader0 = "a.glsl"
scale_type0 = "absolute"`,
		`shaders = 1
shader0 = "a.glsl"
scale_type0 = "source"
scale0 = -1.0`,
		`shaders = 1
shader0 = "a.glsl"
textures = "bg"`,
		`shaders = 1
shader0 = "a.glsl"
imports = "phase"`,
		`shaders = 1
shader0 = "a.glsl"
import_script = "a.lua"`,
		`shaders = [1`,
	} {
		path := write(t, dir, "bad.toml", content)
		_, err := preset.Load(path, false)
		test.ExpectFailure(t, err, i)
	}

	_, err := preset.Load(filepath.Join(dir, "missing.toml"), false)
	test.ExpectFailure(t, err)
}

func TestOpen(t *testing.T) {
	p, err := preset.Open("", true)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(p.Passes), 1)
	test.ExpectEquality(t, p.Passes[0].Path, "")
	test.ExpectEquality(t, p.Passes[0].Filter, chain.Linear)
	test.ExpectEquality(t, p.Passes[0].ScaleX, chain.ViewportScale)

	p, err = preset.Open("crt.glsl", false)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(p.Passes), 1)
	test.ExpectEquality(t, p.Passes[0].Path, "crt.glsl")
	test.ExpectEquality(t, p.Passes[0].Filter, chain.Nearest)

	dir := t.TempDir()
	path := write(t, dir, "one.PRESET", `
shaders = 1
shader0 = "a.glsl"
`)
	p, err = preset.Open(path, false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Passes[0].Path, filepath.Join(dir, "a.glsl"))
}
