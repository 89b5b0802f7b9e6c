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

// HistoryCapacity is the number of slots in the History ring. It must be a
// power of two.
const HistoryCapacity = 8

const historyMask = HistoryCapacity - 1

// Snapshot of the input to the first pass of a previous frame.
type Snapshot struct {
	Texture  Texture
	Vertices VertexBuffer
	Quad     Quad
	UsedW    int
	UsedH    int
}

// History is a ring of Snapshots of the first pass's input. The zero value is
// usable but will only record references to the Texture given to Advance().
// A History prepared with allocate() owns a texture and a vertex buffer for
// each slot and will copy the image into them.
type History struct {
	slots  [HistoryCapacity]Snapshot
	owned  bool
	ptr    int
	frames int
}

// allocate a texture and vertex buffer for every slot. Resources are added
// to the arena, which is responsible for releasing them.
func (h *History) allocate(dev Device, w, hgt int, format PixelFormat, ar *arena) error {
	for i := range h.slots {
		tex, err := dev.NewTexture(w, hgt, format, false)
		if err != nil {
			return err
		}
		ar.add(tex)

		vb, err := dev.NewVertexBuffer()
		if err != nil {
			return err
		}
		ar.add(vb)

		h.slots[i] = Snapshot{Texture: tex, Vertices: vb}
	}
	h.owned = true
	return nil
}

// Advance writes the snapshot into the slot at the write pointer and then
// advances the write pointer. The device is only used if the History owns its
// slot resources.
func (h *History) Advance(dev Device, usedW, usedH int, tex Texture, q Quad) error {
	slot := &h.slots[h.ptr]

	if h.owned {
		if err := dev.Copy(slot.Texture, tex); err != nil {
			return err
		}
		if err := slot.Vertices.Update(q); err != nil {
			return err
		}
	} else {
		slot.Texture = tex
	}

	slot.Quad = q
	slot.UsedW = usedW
	slot.UsedH = usedH

	// the slot is complete before the pointer moves on
	h.ptr = (h.ptr + 1) & historyMask
	h.frames++

	return nil
}

// Get returns the snapshot from k frames ago. The value of k must be between 1
// and HistoryCapacity-1. The zero Snapshot is returned for any other value of
// k or if fewer than k frames have been recorded.
func (h *History) Get(k int) Snapshot {
	if k < 1 || k >= HistoryCapacity || k > h.frames {
		return Snapshot{}
	}
	return h.slots[(h.ptr-k)&historyMask]
}

// Frames returns the number of calls to Advance().
func (h *History) Frames() int {
	return h.frames
}
