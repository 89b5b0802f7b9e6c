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

package video

import (
	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/paths"
	"github.com/videochain/videochain/prefs"
)

// DefaultPrefsFile is the name of the preferences file in the resource
// directory.
const DefaultPrefsFile = "preferences"

// default values of the video preferences
const (
	defaultWidth       = 640
	defaultHeight      = 480
	defaultAspectRatio = 4.0 / 3.0
	defaultInputScale  = 2
	defaultThreshold   = 0.5
)

// pref is the method set required by prefs.Disk.Add()
type pref interface {
	String() string
	Set(prefs.Value) error
	Get() prefs.Value
	Reset() error
}

// Preferences for the video driver and the input state that is configured
// alongside it.
type Preferences struct {
	dsk *prefs.Disk

	Width        prefs.Int
	Height       prefs.Int
	Fullscreen   prefs.Bool
	VSync        prefs.Bool
	Smooth       prefs.Bool
	ForceAspect  prefs.Bool
	AspectRatio  prefs.Float
	InputScale   prefs.Int
	Shader       prefs.String
	WatchShaders prefs.Bool

	AxisThreshold prefs.Float
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. An empty path means the default preferences file in the resource
// directory. Values are loaded from the file if it exists.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error
	if path == "" {
		path, err = paths.ResourcePath("", DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	for key, v := range map[string]pref{
		"video.width":         &p.Width,
		"video.height":        &p.Height,
		"video.fullscreen":    &p.Fullscreen,
		"video.vsync":         &p.VSync,
		"video.smooth":        &p.Smooth,
		"video.forceAspect":   &p.ForceAspect,
		"video.aspectRatio":   &p.AspectRatio,
		"video.inputScale":    &p.InputScale,
		"video.shader":        &p.Shader,
		"video.watchShaders":  &p.WatchShaders,
		"input.axisThreshold": &p.AxisThreshold,
	} {
		err = p.dsk.Add(key, v)
		if err != nil {
			return nil, err
		}
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.Width.Set(defaultWidth)
	_ = p.Height.Set(defaultHeight)
	_ = p.Fullscreen.Set(false)
	_ = p.VSync.Set(true)
	_ = p.Smooth.Set(false)
	_ = p.ForceAspect.Set(true)
	_ = p.AspectRatio.Set(defaultAspectRatio)
	_ = p.InputScale.Set(defaultInputScale)
	_ = p.Shader.Set("")
	_ = p.WatchShaders.Set(false)
	_ = p.AxisThreshold.Set(defaultThreshold)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Config returns a driver Config from the current preference values.
func (p *Preferences) Config(title string, format chain.PixelFormat) Config {
	return Config{
		Title:         title,
		Width:         p.Width.Get().(int),
		Height:        p.Height.Get().(int),
		Fullscreen:    p.Fullscreen.Get().(bool),
		VSync:         p.VSync.Get().(bool),
		Smooth:        p.Smooth.Get().(bool),
		ForceAspect:   p.ForceAspect.Get().(bool),
		AspectRatio:   p.AspectRatio.Get().(float64),
		InputScale:    p.InputScale.Get().(int),
		Format:        format,
		Shader:        p.Shader.Get().(string),
		WatchShaders:  p.WatchShaders.Get().(bool),
		MessageColour: 0xffffff,
	}
}
