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

package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/videochain/videochain/input"
	"github.com/videochain/videochain/logger"
	"github.com/videochain/videochain/video"
)

// the number of frames a message is shown for
const messageFrames = 180

type action int

const (
	actQuit action = iota
	actScreenshot
	actRotate
	actFastForward
	actReload
	numActions
)

// controls maps input to driver operations for the first player.
type controls struct {
	binds [numActions]input.Keybind
	held  [numActions]bool

	rotation    int
	fastForward bool

	msg      string
	msgTimer int
}

func keyBind(scancode sdl.Scancode, joykey uint16) input.Keybind {
	return input.Keybind{
		Key:     uint16(scancode),
		JoyKey:  joykey,
		JoyAxis: input.NoAxis,
	}
}

func newControls(rotation int) *controls {
	ctrl := &controls{
		rotation: rotation,
	}
	ctrl.binds[actQuit] = keyBind(sdl.SCANCODE_ESCAPE, input.NoButton)
	ctrl.binds[actScreenshot] = keyBind(sdl.SCANCODE_F12, 0)
	ctrl.binds[actRotate] = keyBind(sdl.SCANCODE_F10, input.NoButton)
	ctrl.binds[actFastForward] = keyBind(sdl.SCANCODE_TAB, 1)
	ctrl.binds[actReload] = keyBind(sdl.SCANCODE_F5, input.NoButton)
	return ctrl
}

func (ctrl *controls) setMessage(msg string) {
	ctrl.msg = msg
	ctrl.msgTimer = messageFrames
}

// message returns the message to show in the current frame.
func (ctrl *controls) message() string {
	if ctrl.msgTimer == 0 {
		return ""
	}
	ctrl.msgTimer--
	return ctrl.msg
}

// pressed returns true on the first frame the action's bind is active.
func (ctrl *controls) pressed(in *input.Input, act action) bool {
	active := in.State(ctrl.binds[act], 0)
	edge := active && !ctrl.held[act]
	ctrl.held[act] = active
	return edge
}

// service the controls. returns false if the user wants to quit.
func (ctrl *controls) service(drv *video.Driver, in *input.Input) bool {
	if !drv.Focus() {
		return true
	}

	if ctrl.pressed(in, actQuit) {
		return false
	}

	if ctrl.pressed(in, actScreenshot) {
		pth, err := screenshot(drv)
		if err != nil {
			logger.Logf(logger.Allow, "videochain", "screenshot: %v", err)
			ctrl.setMessage("screenshot failed")
		} else {
			ctrl.setMessage(fmt.Sprintf("saved %s", pth))
		}
	}

	if ctrl.pressed(in, actRotate) {
		ctrl.rotation = (ctrl.rotation + 1) % 4
		drv.SetRotation(ctrl.rotation)
		ctrl.setMessage(fmt.Sprintf("rotation %d", ctrl.rotation*90))
	}

	if ctrl.pressed(in, actReload) {
		err := drv.SetShader(drv.Shader())
		if err != nil {
			logger.Logf(logger.Allow, "videochain", "%v", err)
			ctrl.setMessage("shader reload failed")
		} else {
			ctrl.setMessage("shader reloaded")
		}
	}

	// fast forward while held
	prev := ctrl.held[actFastForward]
	ctrl.pressed(in, actFastForward)
	if ctrl.held[actFastForward] != prev {
		ctrl.fastForward = ctrl.held[actFastForward]
		drv.SetNonblockState(ctrl.fastForward)
	}

	return true
}
