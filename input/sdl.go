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
	"github.com/veandco/go-sdl2/sdl"
	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/logger"
)

// SDLPoller samples the keyboard and joysticks with SDL. The keyboard state is
// updated by the event pump of the window so the window must be polled for
// events for the keyboard state to change.
//
// MUST only be used from the main thread.
type SDLPoller struct {
	joysticks []*sdl.Joystick
}

// NewSDLPoller opens up to MaxPlayers joysticks.
func NewSDLPoller() (*SDLPoller, error) {
	err := sdl.InitSubSystem(sdl.INIT_JOYSTICK)
	if err != nil {
		return nil, curated.Errorf(InputError, err)
	}

	p := &SDLPoller{}

	for i := range min(sdl.NumJoysticks(), MaxPlayers) {
		joy := sdl.JoystickOpen(i)
		if joy == nil || !joy.Attached() {
			logger.Logf(logger.Allow, "input", "joystick %d: cannot open", i)
			p.joysticks = append(p.joysticks, nil)
			continue
		}
		logger.Logf(logger.Allow, "input", "joystick %d: %s (%d axes, %d buttons, %d hats)",
			i, joy.Name(), joy.NumAxes(), joy.NumButtons(), joy.NumHats())
		p.joysticks = append(p.joysticks, joy)
	}

	if len(p.joysticks) == 0 {
		logger.Log(logger.Allow, "input", "no joysticks found")
	}

	return p, nil
}

// Poll implements the Poller interface.
func (p *SDLPoller) Poll(snap *Snapshot) {
	for i, k := range sdl.GetKeyboardState() {
		if i >= NumKeys {
			break
		}
		snap.Keys[i] = k != 0
	}

	sdl.JoystickUpdate()

	for i, joy := range p.joysticks {
		if joy == nil || !joy.Attached() {
			continue
		}
		pad := &snap.Pads[i]
		pad.Attached = true
		for b := range min(joy.NumButtons(), MaxButtons) {
			pad.Buttons[b] = joy.Button(b) != 0
		}
		for h := range min(joy.NumHats(), MaxHats) {
			pad.Hats[h] = joy.Hat(h)
		}
		for a := range min(joy.NumAxes(), MaxAxes) {
			pad.Axes[a] = joy.Axis(a)
		}
	}
}

// Close implements the Poller interface.
func (p *SDLPoller) Close() {
	for _, joy := range p.joysticks {
		if joy != nil {
			joy.Close()
		}
	}
	p.joysticks = nil
	sdl.QuitSubSystem(sdl.INIT_JOYSTICK)
}
