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
	"fmt"
	"time"
)

// the number of frames between updates of the frame rate in the title
const fpsFrames = 180

// fpsCounter measures the frame rate over a fixed number of frames.
type fpsCounter struct {
	now    func() time.Time
	last   time.Time
	frames int
}

func newFPSCounter(now func() time.Time) fpsCounter {
	return fpsCounter{
		now:  now,
		last: now(),
	}
}

// tick is called once per presented frame. it returns true and the frame rate
// every fpsFrames frames.
func (f *fpsCounter) tick() (uint, bool) {
	f.frames++
	if f.frames < fpsFrames {
		return 0, false
	}

	current := f.now()
	secs := current.Sub(f.last).Seconds()
	f.last = current
	f.frames = 0

	if secs <= 0 {
		return 0, false
	}
	return uint(fpsFrames/secs + 0.5), true
}

func fpsTitle(title string, fps uint) string {
	return fmt.Sprintf("%s || FPS: %d", title, fps)
}
