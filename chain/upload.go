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

import "fmt"

// upload copies the rows of the image into the texture. Each row of the image
// is w*size bytes long and starts pitch bytes after the previous row. If
// clearFirst is true the entire texture is zeroed before the copy.
func upload(tex Texture, data []byte, w, h, pitch, size int, clearFirst bool) error {
	tw, th := tex.Size()
	if w < 1 || h < 1 || w > tw || h > th {
		return fmt.Errorf("image %dx%d does not fit texture %dx%d", w, h, tw, th)
	}

	row := w * size
	if pitch < row {
		return fmt.Errorf("pitch of %d is too small for a width of %d", pitch, w)
	}
	if len(data) < (h-1)*pitch+row {
		return fmt.Errorf("image data is too short (%d bytes) for %dx%d with a pitch of %d", len(data), w, h, pitch)
	}

	pix, dpitch, err := tex.Lock()
	if err != nil {
		return err
	}

	if clearFirst {
		clear(pix)
	}

	for y := range h {
		copy(pix[y*dpitch:y*dpitch+row], data[y*pitch:y*pitch+row])
	}

	return tex.Unlock()
}

// blit uploads the raw frame into the input texture of the first pass. The
// texture is cleared if the size of the frame has changed so that old data
// does not bleed into the edges of filtered output.
func (c *RenderChain) blit(frame []byte, w, h, pitch int) error {
	first := c.passes[0]
	resized := w != first.usedW || h != first.usedH

	err := upload(first.tex, frame, w, h, pitch, c.format.Size(), resized)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	first.usedW, first.usedH = w, h
	return nil
}
