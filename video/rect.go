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
	"math"

	"github.com/videochain/videochain/chain"
)

// aspect ratios closer than this are treated as equal
const aspectTolerance = 0.001

// CalculateRect returns the area of a screen of the given size that the
// picture is drawn into. If keep is true the area has the desired aspect ratio
// and is centred in the screen.
func CalculateRect(width, height int, keep bool, desired float64) chain.Rect {
	full := chain.Rect{Width: width, Height: height}
	if !keep || width <= 0 || height <= 0 || desired <= 0 {
		return full
	}

	device := float64(width) / float64(height)
	if math.Abs(device-desired) < aspectTolerance {
		return full
	}

	if device > desired {
		delta := (desired/device-1.0)/2.0 + 0.5
		return chain.Rect{
			X:      int(float64(width) * (0.5 - delta)),
			Width:  int(2.0 * float64(width) * delta),
			Height: height,
		}
	}

	delta := (device/desired-1.0)/2.0 + 0.5
	return chain.Rect{
		Y:      int(float64(height) * (0.5 - delta)),
		Width:  width,
		Height: int(2.0 * float64(height) * delta),
	}
}

// rotatedAspect returns the aspect ratio of the picture after rotation.
func rotatedAspect(aspect float64, rot chain.Rotation) float64 {
	if rot.Normalise()%2 == 1 && aspect > 0 {
		return 1.0 / aspect
	}
	return aspect
}

// messageRect returns the area of the viewport that messages are drawn in.
// messages are in the bottom tenth of the viewport, slightly indented from
// the left edge.
func messageRect(vp chain.Rect) chain.Rect {
	left := vp.X + int(float64(vp.Width)*0.05)
	top := vp.Y + int(float64(vp.Height)*0.90)
	return chain.Rect{
		X:      left,
		Y:      top,
		Width:  vp.X + vp.Width - left,
		Height: vp.Y + vp.Height - top,
	}
}
