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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/videochain/videochain/preset"
	"github.com/videochain/videochain/test"
)

// waitChanged polls the watcher until it reports a change or the timeout
// expires.
func waitChanged(wt *watcher, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if wt.changed() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	shader := filepath.Join(dir, "crt.glsl")
	other := filepath.Join(dir, "notes.txt")

	test.DemandSuccess(t, os.WriteFile(shader, []byte("a"), 0o600))
	test.DemandSuccess(t, os.WriteFile(other, []byte("a"), 0o600))

	wt, err := newWatcher([]string{shader, ""})
	test.DemandSuccess(t, err)
	defer wt.close()

	test.ExpectFailure(t, wt.changed())

	// files that are not watched do not cause a change
	test.DemandSuccess(t, os.WriteFile(other, []byte("b"), 0o600))
	test.ExpectFailure(t, waitChanged(wt, 200*time.Millisecond))

	test.DemandSuccess(t, os.WriteFile(shader, []byte("b"), 0o600))
	test.ExpectSuccess(t, waitChanged(wt, 5*time.Second))

	// the change has been consumed
	test.ExpectFailure(t, wt.changed())
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := newWatcher([]string{filepath.Join(t.TempDir(), "missing", "crt.glsl")})
	test.ExpectFailure(t, err)
}

func TestPresetFiles(t *testing.T) {
	p := preset.Single("", false)
	test.ExpectEquality(t, len(presetFiles(p)), 0)

	p = preset.Single("/shaders/crt.glsl", false)
	files := presetFiles(p)
	test.DemandEquality(t, len(files), 1)
	test.ExpectEquality(t, files[0], "/shaders/crt.glsl")

	p = &preset.Preset{
		Path:    "/shaders/crt.toml",
		Passes:  preset.Single("/shaders/crt.glsl", false).Passes,
		LUTs:    []preset.LUT{{ID: "mask", Path: "/shaders/mask.png"}},
		Tracker: &preset.Tracker{Script: "/shaders/track.lua", Class: "t"},
	}
	files = presetFiles(p)
	test.DemandEquality(t, len(files), 4)
	test.ExpectEquality(t, files[0], "/shaders/crt.toml")
	test.ExpectEquality(t, files[1], "/shaders/crt.glsl")
	test.ExpectEquality(t, files[2], "/shaders/mask.png")
	test.ExpectEquality(t, files[3], "/shaders/track.lua")
}
