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

import (
	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/logger"
)

// Limits of the input system.
const (
	MaxPlayers = 8
	NumKeys    = 512
	MaxButtons = 128
	MaxHats    = 4
	MaxAxes    = 6
)

// Range of joypad axis values.
const (
	AxisMin = -32768
	AxisMax = 32767
)

// Hat bits as stored in Pad.Hats.
const (
	HatBitUp    = 0x01
	HatBitRight = 0x02
	HatBitDown  = 0x04
	HatBitLeft  = 0x08
)

// Pad is the sampled state of a single joypad.
type Pad struct {
	Attached bool
	Buttons  [MaxButtons]bool
	Hats     [MaxHats]uint8
	Axes     [MaxAxes]int16
}

// Snapshot is the sampled state of every input device.
type Snapshot struct {
	Keys [NumKeys]bool
	Pads [MaxPlayers]Pad
}

// Poller samples input devices.
type Poller interface {
	// Poll fills in the snapshot. The snapshot has been cleared before the
	// call.
	Poll(snap *Snapshot)
	Close()
}

// Error patterns used by the input package.
const (
	InputError = "input: %v"
)

// Input is the input backend. It answers queries about keybinds from the
// most recent sample of the input devices.
type Input struct {
	poller    Poller
	threshold float64
	joypads   [MaxPlayers]int
	snap      Snapshot
}

// New is the preferred method of initialisation for the Input type.
//
// The joypads array gives the joypad index for each player. A negative value
// means that the player has no joypad. The threshold is the minimum
// displacement of an axis, in the range zero to one, for the axis to be
// considered active.
func New(poller Poller, joypads [MaxPlayers]int, threshold float64) (*Input, error) {
	if threshold < 0 || threshold > 1 {
		return nil, curated.Errorf(InputError, curated.Errorf("axis threshold must be between zero and one (%.2f)", threshold))
	}

	in := &Input{
		poller:    poller,
		threshold: threshold,
		joypads:   joypads,
	}

	logger.Logf(logger.Allow, "input", "axis threshold %.2f", threshold)

	return in, nil
}

// DefaultJoypads assigns joypad n to player n+1.
func DefaultJoypads() [MaxPlayers]int {
	var j [MaxPlayers]int
	for i := range j {
		j[i] = i
	}
	return j
}

// Poll samples the input devices. Should be called once per frame.
func (in *Input) Poll() {
	clear(in.snap.Keys[:])
	in.snap.Pads = [MaxPlayers]Pad{}
	if in.poller != nil {
		in.poller.Poll(&in.snap)
	}
}

// Snapshot returns the most recent sample.
func (in *Input) Snapshot() *Snapshot {
	return &in.snap
}

// Close the input backend and the poller.
func (in *Input) Close() {
	if in.poller != nil {
		in.poller.Close()
		in.poller = nil
	}
}

// pad returns the joypad for the player or nil if there isn't one.
func (in *Input) pad(player int) *Pad {
	if player < 1 || player > MaxPlayers {
		return nil
	}
	idx := in.joypads[player-1]
	if idx < 0 || idx >= MaxPlayers || !in.snap.Pads[idx].Attached {
		return nil
	}
	return &in.snap.Pads[idx]
}

// State returns true if the keybind is active for the player.
func (in *Input) State(bind Keybind, player int) bool {
	if bind.Key != 0 && int(bind.Key) < NumKeys && in.snap.Keys[bind.Key] {
		return true
	}

	pad := in.pad(player)
	if pad == nil {
		return false
	}

	if bind.JoyKey != NoButton {
		if dir := HatDir(bind.JoyKey); dir == 0 {
			if int(bind.JoyKey) < MaxButtons && pad.Buttons[bind.JoyKey] {
				return true
			}
		} else if h := Hat(bind.JoyKey); h < MaxHats {
			if hatActive(pad.Hats[h], dir) {
				return true
			}
		}
	}

	if bind.JoyAxis != NoAxis {
		lo := int(AxisMin * in.threshold)
		hi := int(AxisMax * in.threshold)

		// an axis at rest is never active, even with a threshold of zero
		if a := AxisNegGet(bind.JoyAxis); a < MaxAxes {
			v := int(pad.Axes[a])
			return v < 0 && v <= lo
		}
		if a := AxisPosGet(bind.JoyAxis); a < MaxAxes {
			v := int(pad.Axes[a])
			return v > 0 && v >= hi
		}
	}

	return false
}

func hatActive(hat uint8, dir uint16) bool {
	switch dir {
	case HatUp:
		return hat&HatBitUp != 0
	case HatDown:
		return hat&HatBitDown != 0
	case HatLeft:
		return hat&HatBitLeft != 0
	case HatRight:
		return hat&HatBitRight != 0
	}
	return false
}

// Analog returns the value of the axis for the player, only in the direction
// described by the joyaxis. For example, if the joyaxis tests the negative
// direction of an axis and the axis is displaced in the positive direction,
// the value returned is zero.
func (in *Input) Analog(joyaxis uint32, player int) int16 {
	pad := in.pad(player)
	if pad == nil || joyaxis == NoAxis {
		return 0
	}
	if a := AxisNegGet(joyaxis); a < MaxAxes {
		return min(pad.Axes[a], 0)
	}
	if a := AxisPosGet(joyaxis); a < MaxAxes {
		return max(pad.Axes[a], 0)
	}
	return 0
}
