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

package preset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/logger"
)

// Error patterns used by the preset package.
const (
	LoadError = "preset: %s: %v"
)

// Extensions of files that are treated as presets by Open(). Any other file is
// treated as a single shader.
var Extensions = []string{".toml", ".cgp", ".preset"}

// LUT is the declaration of a lookup texture.
type LUT struct {
	ID     string
	Path   string
	Filter chain.Filter
}

// Tracker is the declaration of a tracker script.
type Tracker struct {
	Script   string
	Class    string
	Uniforms []string
}

// Preset is the description of a shader chain.
type Preset struct {
	Path    string
	Passes  []chain.LinkInfo
	LUTs    []LUT
	Tracker *Tracker
}

// Open returns the Preset for path. An empty path results in a single pass
// that uses the stock shader. A path with one of the preset Extensions is read
// with Load() and any other path is treated as a single shader.
//
// The smooth argument is the default filter for passes that do not specify a
// filter.
func Open(path string, smooth bool) (*Preset, error) {
	if path == "" {
		logger.Log(logger.Allow, "preset", "no shader. using stock shader")
		return Single("", smooth), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return Load(path, smooth)
		}
	}

	logger.Logf(logger.Allow, "preset", "single shader: %s", path)
	return Single(path, smooth), nil
}

// Single returns a Preset with a single pass that fills the viewport.
func Single(shader string, smooth bool) *Preset {
	return &Preset{
		Path: shader,
		Passes: []chain.LinkInfo{{
			Path:   shader,
			Filter: filter(smooth),
			ScaleX: chain.ViewportScale,
			ScaleY: chain.ViewportScale,
		}},
	}
}

func filter(linear bool) chain.Filter {
	if linear {
		return chain.Linear
	}
	return chain.Nearest
}

// Load reads the preset file at path.
func Load(path string, smooth bool) (*Preset, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, curated.Errorf(LoadError, path, err)
	}

	p, err := FromConfig(cfg, smooth)
	if err != nil {
		return nil, curated.Errorf(LoadError, path, err)
	}

	logger.Logf(logger.Allow, "preset", "%s: %d passes", path, len(p.Passes))
	return p, nil
}

// FromConfig creates a Preset from a Config.
func FromConfig(cfg *Config, smooth bool) (*Preset, error) {
	p := &Preset{Path: cfg.Path()}

	n, ok, err := cfg.Int("shaders")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("shaders not defined")
	}
	if n < 1 {
		return nil, fmt.Errorf("number of shaders must be one or more (%d)", n)
	}

	for i := range n {
		info, err := passInfo(cfg, i, i == n-1, smooth)
		if err != nil {
			return nil, err
		}
		p.Passes = append(p.Passes, info)
	}

	ids, err := cfg.List("textures")
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		l := LUT{ID: id}
		if l.Path, ok, err = cfg.PathValue(id); err != nil {
			return nil, err
		} else if !ok {
			return nil, fmt.Errorf("texture %s has no path", id)
		}

		linear, ok, err := cfg.Bool(id + "_linear")
		if err != nil {
			return nil, err
		}
		if !ok {
			linear = true
		}
		l.Filter = filter(linear)

		p.LUTs = append(p.LUTs, l)
	}

	p.Tracker, err = trackerInfo(cfg)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func passInfo(cfg *Config, i int, last bool, smooth bool) (chain.LinkInfo, error) {
	var info chain.LinkInfo
	var ok bool
	var err error

	info.Path, ok, err = cfg.PathValue(fmt.Sprintf("shader%d", i))
	if err != nil {
		return info, err
	}
	if !ok {
		return info, fmt.Errorf("shader%d not defined", i)
	}

	linear, ok, err := cfg.Bool(fmt.Sprintf("filter_linear%d", i))
	if err != nil {
		return info, err
	}
	if !ok {
		linear = smooth
	}
	info.Filter = filter(linear)

	// passes without a scale type are the same size as their input, except
	// for the final pass which fills the viewport
	def := chain.Scale{Type: chain.Relative, Factor: 1.0}
	if last {
		def = chain.ViewportScale
	}

	info.ScaleX, err = axisScale(cfg, i, "x", def)
	if err != nil {
		return info, err
	}
	info.ScaleY, err = axisScale(cfg, i, "y", def)
	if err != nil {
		return info, err
	}

	return info, nil
}

// axisScale reads the scaling policy for one axis. The axis specific keys
// take priority over the keys shared by both axes.
func axisScale(cfg *Config, i int, axis string, def chain.Scale) (chain.Scale, error) {
	first := func(keys ...string) string {
		for _, k := range keys {
			if cfg.Has(k) {
				return k
			}
		}
		return ""
	}

	typeKey := first(fmt.Sprintf("scale_type_%s%d", axis, i), fmt.Sprintf("scale_type%d", i))
	if typeKey == "" {
		return def, nil
	}

	t, _, err := cfg.String(typeKey)
	if err != nil {
		return def, err
	}

	var s chain.Scale
	switch strings.ToLower(t) {
	case "source":
		s.Type = chain.Relative
	case "viewport":
		s.Type = chain.Viewport
	case "absolute":
		s.Type = chain.Absolute
	default:
		return def, fmt.Errorf("%s: unknown scale type: %s", typeKey, t)
	}

	scaleKey := first(fmt.Sprintf("scale_%s%d", axis, i), fmt.Sprintf("scale%d", i))

	if s.Type == chain.Absolute {
		if scaleKey == "" {
			return def, fmt.Errorf("pass %d: absolute scale requires a size", i)
		}
		s.Abs, _, err = cfg.Int(scaleKey)
		if err != nil {
			return def, err
		}
	} else {
		s.Factor = 1.0
		if scaleKey != "" {
			s.Factor, _, err = cfg.Float(scaleKey)
			if err != nil {
				return def, err
			}
		}
	}

	if !s.Valid() {
		return def, fmt.Errorf("%s: scale must be greater than zero", scaleKey)
	}

	return s, nil
}

func trackerInfo(cfg *Config) (*Tracker, error) {
	uniforms, err := cfg.List("imports")
	if err != nil {
		return nil, err
	}

	script, ok, err := cfg.PathValue("import_script")
	if err != nil {
		return nil, err
	}
	if !ok {
		if len(uniforms) > 0 {
			return nil, fmt.Errorf("imports declared without an import_script")
		}
		return nil, nil
	}

	class, _, err := cfg.String("import_script_class")
	if err != nil {
		return nil, err
	}
	if class == "" {
		return nil, fmt.Errorf("import_script_class not defined")
	}

	return &Tracker{
		Script:   script,
		Class:    class,
		Uniforms: uniforms,
	}, nil
}
