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

package video_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/prefs"
	"github.com/videochain/videochain/test"
	"github.com/videochain/videochain/video"
)

func TestPreferences(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	p, err := video.NewPreferences(pth)
	test.DemandSuccess(t, err)

	cfg := p.Config("test", chain.RGB15)
	test.ExpectEquality(t, cfg.Title, "test")
	test.ExpectEquality(t, cfg.Format, chain.RGB15)
	test.ExpectEquality(t, cfg.Width, 640)
	test.ExpectEquality(t, cfg.Height, 480)
	test.ExpectEquality(t, cfg.VSync, true)
	test.ExpectEquality(t, cfg.ForceAspect, true)
	test.ExpectApproximate(t, cfg.AspectRatio, 4.0/3.0, 0.001)
	test.ExpectEquality(t, cfg.InputScale, 2)
	test.ExpectEquality(t, cfg.Shader, "")
	test.ExpectEquality(t, cfg.WatchShaders, false)
	test.ExpectApproximate(t, p.AxisThreshold.Get().(float64), 0.5, 0.001)

	test.DemandSuccess(t, p.Smooth.Set(true))
	test.DemandSuccess(t, p.Shader.Set("/shaders/crt.toml"))
	test.DemandSuccess(t, p.InputScale.Set(4))
	test.DemandSuccess(t, p.AxisThreshold.Set(0.25))
	test.DemandSuccess(t, p.Save())

	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "video.shader :: /shaders/crt.toml"))
	test.ExpectSuccess(t, strings.HasPrefix(string(data), prefs.WarningBoilerPlate))

	q, err := video.NewPreferences(pth)
	test.DemandSuccess(t, err)
	cfg = q.Config("test", chain.ARGB)
	test.ExpectEquality(t, cfg.Smooth, true)
	test.ExpectEquality(t, cfg.Shader, "/shaders/crt.toml")
	test.ExpectEquality(t, cfg.InputScale, 4)
	test.ExpectApproximate(t, q.AxisThreshold.Get().(float64), 0.25, 0.001)

	// reverting to defaults does not change the file until saved
	q.SetDefaults()
	test.ExpectEquality(t, q.Config("test", chain.ARGB).Smooth, false)
	test.DemandSuccess(t, q.Load())
	test.ExpectEquality(t, q.Config("test", chain.ARGB).Smooth, true)
}

func TestPreferencesCommandLine(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	prefs.PushCommandLineStack("video.vsync::false; video.width::1024")
	p, err := video.NewPreferences(pth)
	prefs.PopCommandLineStack()
	test.DemandSuccess(t, err)

	cfg := p.Config("test", chain.ARGB)
	test.ExpectEquality(t, cfg.VSync, false)
	test.ExpectEquality(t, cfg.Width, 1024)
	test.ExpectEquality(t, cfg.Height, 480)
}
