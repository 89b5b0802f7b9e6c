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

package input_test

import (
	"testing"

	"github.com/videochain/videochain/input"
	"github.com/videochain/videochain/test"
)

// scripted is a Poller that copies a prepared snapshot.
type scripted struct {
	snap   input.Snapshot
	polls  int
	closed bool
}

func (s *scripted) Poll(snap *input.Snapshot) {
	*snap = s.snap
	s.polls++
}

func (s *scripted) Close() {
	s.closed = true
}

func TestEncoding(t *testing.T) {
	test.ExpectEquality(t, input.HatMask, uint16(0xf000))
	test.ExpectEquality(t, input.HatMap(2, input.HatLeft), uint16(0x2002))
	test.ExpectEquality(t, input.HatDir(0x2002), input.HatLeft)
	test.ExpectEquality(t, input.Hat(0x2002), 2)
	test.ExpectEquality(t, input.HatDir(5), uint16(0))

	test.ExpectEquality(t, input.AxisNeg(3), uint32(0x0003ffff))
	test.ExpectEquality(t, input.AxisPos(3), uint32(0xffff0003))
	test.ExpectEquality(t, input.AxisNegGet(input.AxisNeg(3)), uint16(3))
	test.ExpectEquality(t, input.AxisPosGet(input.AxisNeg(3)), uint16(0xffff))
	test.ExpectEquality(t, input.AxisPosGet(input.AxisPos(5)), uint16(5))
	test.ExpectEquality(t, input.AxisNegGet(input.NoAxis), uint16(0xffff))
}

func TestKeybindString(t *testing.T) {
	b := input.Keybind{Key: 4, JoyKey: input.HatMap(0, input.HatUp), JoyAxis: input.AxisNeg(1)}
	test.ExpectEquality(t, b.String(), "key 4, hat 0 up, axis -1")
	test.ExpectEquality(t, input.Unbound().String(), "key 0")
	b = input.Keybind{Key: 7, JoyKey: 3, JoyAxis: input.NoAxis}
	test.ExpectEquality(t, b.String(), "key 7, button 3")
}

func newInput(t *testing.T, threshold float64) (*input.Input, *scripted) {
	t.Helper()
	s := &scripted{}
	in, err := input.New(s, input.DefaultJoypads(), threshold)
	test.DemandSuccess(t, err)
	return in, s
}

func TestKeyboard(t *testing.T) {
	in, s := newInput(t, 0.5)

	b := input.Keybind{Key: 40, JoyKey: input.NoButton, JoyAxis: input.NoAxis}
	in.Poll()
	test.ExpectFailure(t, in.State(b, 1))

	s.snap.Keys[40] = true
	in.Poll()
	test.ExpectSuccess(t, in.State(b, 1))

	// the keyboard is shared by all players, even those without a joypad
	test.ExpectSuccess(t, in.State(b, 8))

	// key zero is never active
	s.snap.Keys[0] = true
	in.Poll()
	test.ExpectFailure(t, in.State(input.Unbound(), 1))
}

func TestButtonsAndHats(t *testing.T) {
	in, s := newInput(t, 0.5)
	s.snap.Pads[1].Attached = true
	s.snap.Pads[1].Buttons[6] = true
	s.snap.Pads[1].Hats[1] = input.HatBitUp | input.HatBitRight
	in.Poll()

	button := input.Keybind{JoyKey: 6, JoyAxis: input.NoAxis}
	test.ExpectFailure(t, in.State(button, 1))
	test.ExpectSuccess(t, in.State(button, 2))

	up := input.Keybind{JoyKey: input.HatMap(1, input.HatUp), JoyAxis: input.NoAxis}
	right := input.Keybind{JoyKey: input.HatMap(1, input.HatRight), JoyAxis: input.NoAxis}
	down := input.Keybind{JoyKey: input.HatMap(1, input.HatDown), JoyAxis: input.NoAxis}
	other := input.Keybind{JoyKey: input.HatMap(0, input.HatUp), JoyAxis: input.NoAxis}
	test.ExpectSuccess(t, in.State(up, 2))
	test.ExpectSuccess(t, in.State(right, 2))
	test.ExpectFailure(t, in.State(down, 2))
	test.ExpectFailure(t, in.State(other, 2))

	// out of range players
	test.ExpectFailure(t, in.State(button, 0))
	test.ExpectFailure(t, in.State(button, 9))
}

func TestAxes(t *testing.T) {
	in, s := newInput(t, 0.5)
	s.snap.Pads[0].Attached = true
	s.snap.Pads[0].Axes[0] = -20000
	s.snap.Pads[0].Axes[1] = 10000
	s.snap.Pads[0].Axes[2] = 16384
	in.Poll()

	neg := func(a int) input.Keybind { return input.Keybind{JoyKey: input.NoButton, JoyAxis: input.AxisNeg(a)} }
	pos := func(a int) input.Keybind { return input.Keybind{JoyKey: input.NoButton, JoyAxis: input.AxisPos(a)} }

	test.ExpectSuccess(t, in.State(neg(0), 1))
	test.ExpectFailure(t, in.State(pos(0), 1))
	test.ExpectFailure(t, in.State(pos(1), 1))
	test.ExpectSuccess(t, in.State(pos(2), 1))
	test.ExpectFailure(t, in.State(neg(2), 1))
	test.ExpectFailure(t, in.State(pos(input.MaxAxes+1), 1))

	test.ExpectEquality(t, in.Analog(input.AxisNeg(0), 1), int16(-20000))
	test.ExpectEquality(t, in.Analog(input.AxisPos(0), 1), int16(0))
	test.ExpectEquality(t, in.Analog(input.AxisPos(1), 1), int16(10000))
	test.ExpectEquality(t, in.Analog(input.AxisNeg(1), 1), int16(0))
	test.ExpectEquality(t, in.Analog(input.NoAxis, 1), int16(0))
	test.ExpectEquality(t, in.Analog(input.AxisPos(1), 2), int16(0))
}

func TestZeroThreshold(t *testing.T) {
	in, s := newInput(t, 0.0)
	s.snap.Pads[0].Attached = true
	s.snap.Pads[0].Axes[1] = 1
	in.Poll()

	// any displacement registers but an axis at rest does not
	test.ExpectSuccess(t, in.State(input.Keybind{JoyKey: input.NoButton, JoyAxis: input.AxisPos(1)}, 1))
	test.ExpectFailure(t, in.State(input.Keybind{JoyKey: input.NoButton, JoyAxis: input.AxisPos(0)}, 1))
	test.ExpectFailure(t, in.State(input.Keybind{JoyKey: input.NoButton, JoyAxis: input.AxisNeg(0)}, 1))
}

func TestJoypadAssignment(t *testing.T) {
	s := &scripted{}
	joypads := input.DefaultJoypads()
	joypads[0] = 3
	joypads[1] = -1
	in, err := input.New(s, joypads, 0.5)
	test.DemandSuccess(t, err)

	s.snap.Pads[3].Attached = true
	s.snap.Pads[3].Buttons[0] = true
	s.snap.Pads[1].Attached = true
	s.snap.Pads[1].Buttons[0] = true
	in.Poll()

	b := input.Keybind{JoyKey: 0, JoyAxis: input.NoAxis}
	test.ExpectSuccess(t, in.State(b, 1))
	test.ExpectFailure(t, in.State(b, 2))
	test.ExpectSuccess(t, in.State(b, 4))

	// detached joypads are never active
	s.snap.Pads[3].Attached = false
	in.Poll()
	test.ExpectFailure(t, in.State(b, 1))
}

func TestPollAndClose(t *testing.T) {
	in, s := newInput(t, 0.5)
	in.Poll()
	in.Poll()
	test.ExpectEquality(t, s.polls, 2)

	in.Close()
	test.ExpectSuccess(t, s.closed)

	// polling after close clears the snapshot
	in.Poll()
	test.ExpectEquality(t, s.polls, 2)
	test.ExpectFailure(t, in.Snapshot().Pads[0].Attached)
}

func TestThreshold(t *testing.T) {
	_, err := input.New(nil, input.DefaultJoypads(), 1.5)
	test.ExpectFailure(t, err)
	_, err = input.New(nil, input.DefaultJoypads(), -0.1)
	test.ExpectFailure(t, err)
}
