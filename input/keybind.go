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

package input

import "fmt"

// Hat direction masks. A joykey with any of these bits set tests a hat
// direction rather than a button.
const (
	HatUp    uint16 = 1 << 15
	HatDown  uint16 = 1 << 14
	HatLeft  uint16 = 1 << 13
	HatRight uint16 = 1 << 12
	HatMask         = HatUp | HatDown | HatLeft | HatRight
)

// NoButton is the joykey value of a bind that doesn't use a button.
const NoButton uint16 = 0xffff

// NoAxis is the joyaxis value of a bind that doesn't use an axis.
const NoAxis uint32 = 0xffffffff

// the half of a joyaxis value that is not used
const noAxisDir = 0xffff

// HatMap returns the joykey for the direction of the hat.
func HatMap(hat int, dir uint16) uint16 {
	return uint16(hat)&(HatRight-1) | dir
}

// HatDir returns the hat direction tested by the joykey. Zero if the joykey is
// a button.
func HatDir(joykey uint16) uint16 {
	return joykey & HatMask
}

// Hat returns the hat number tested by the joykey. Only meaningful if
// HatDir() is not zero.
func Hat(joykey uint16) int {
	return int(joykey &^ HatMask)
}

// AxisNeg returns the joyaxis value that tests the negative direction of the
// axis.
func AxisNeg(axis int) uint32 {
	return uint32(axis&0xffff)<<16 | noAxisDir
}

// AxisPos returns the joyaxis value that tests the positive direction of the
// axis.
func AxisPos(axis int) uint32 {
	return noAxisDir<<16 | uint32(axis&0xffff)
}

// AxisNegGet returns the axis tested in the negative direction. 0xffff if the
// joyaxis does not test a negative direction.
func AxisNegGet(joyaxis uint32) uint16 {
	return uint16(joyaxis >> 16)
}

// AxisPosGet returns the axis tested in the positive direction. 0xffff if the
// joyaxis does not test a positive direction.
func AxisPosGet(joyaxis uint32) uint16 {
	return uint16(joyaxis)
}

// Keybind describes the inputs that activate a single control.
type Keybind struct {
	// SDL scancode. zero means no key
	Key uint16

	// joypad button or hat direction. NoButton means no button
	JoyKey uint16

	// joypad axis. NoAxis means no axis
	JoyAxis uint32
}

// Unbound returns a Keybind that is never active.
func Unbound() Keybind {
	return Keybind{JoyKey: NoButton, JoyAxis: NoAxis}
}

func (b Keybind) String() string {
	s := fmt.Sprintf("key %d", b.Key)
	if b.JoyKey != NoButton {
		if d := HatDir(b.JoyKey); d != 0 {
			s = fmt.Sprintf("%s, hat %d %s", s, Hat(b.JoyKey), hatName(d))
		} else {
			s = fmt.Sprintf("%s, button %d", s, b.JoyKey)
		}
	}
	if b.JoyAxis != NoAxis {
		if a := AxisNegGet(b.JoyAxis); a != noAxisDir {
			s = fmt.Sprintf("%s, axis -%d", s, a)
		}
		if a := AxisPosGet(b.JoyAxis); a != noAxisDir {
			s = fmt.Sprintf("%s, axis +%d", s, a)
		}
	}
	return s
}

func hatName(d uint16) string {
	switch d {
	case HatUp:
		return "up"
	case HatDown:
		return "down"
	case HatLeft:
		return "left"
	case HatRight:
		return "right"
	}
	return fmt.Sprintf("%#04x", d)
}
