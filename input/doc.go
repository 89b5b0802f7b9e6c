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

// Package input is the keyboard and joystick input backend.
//
// A Keybind describes the key, joypad button (or hat direction) and joypad
// axis that trigger a single input. Any one of them being active is enough
// for the bind to be active.
//
// Devices are sampled by a Poller once per frame, with a call to Poll(). The
// sample is kept in a Snapshot and all queries with State() and Analog()
// until the next Poll() are answered from that Snapshot. This means that
// evaluation of keybinds is independent of the source of the device state.
//
// Joypads are assigned to players with a list of joypad indices. Players are
// numbered from one.
package input
