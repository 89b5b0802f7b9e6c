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

package chain

// TrackerUniform is a named value produced by a Tracker.
type TrackerUniform struct {
	Name  string
	Value float32
}

// Tracker supplies named values that change over time. Values are bound to any
// shader stage that declares a uniform with the same name.
type Tracker interface {
	// Uniforms returns the values for the frame
	Uniforms(frame uint) []TrackerUniform

	// Destroy is called once when the chain is torn down
	Destroy()
}

// NullTracker is a Tracker that supplies no values. It is used by the chain
// when Config.Tracker is nil and by the tracker package when a preset does not
// declare a tracker script.
type NullTracker struct{}

// Uniforms implements the Tracker interface.
func (NullTracker) Uniforms(_ uint) []TrackerUniform {
	return nil
}

// Destroy implements the Tracker interface.
func (NullTracker) Destroy() {}
