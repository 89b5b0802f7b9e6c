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

package glsl

import (
	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/curated"
)

// Backend implements the video.Backend interface. The OpenGL context must be
// current on the calling thread before Open() is called.
type Backend struct {
	dev *Device
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend() *Backend {
	return &Backend{}
}

// Name implements the video.Backend interface.
func (b *Backend) Name() string {
	return "OpenGL 3.2"
}

// Open implements the video.Backend interface.
func (b *Backend) Open(width, height int) (chain.Device, chain.Compiler, error) {
	if b.dev != nil {
		return nil, nil, curated.Errorf(DeviceError, "device is already open")
	}

	dev, err := NewDevice(width, height)
	if err != nil {
		return nil, nil, err
	}
	b.dev = dev

	return dev, NewCompiler(dev), nil
}

// Close implements the video.Backend interface.
func (b *Backend) Close() {
	if b.dev == nil {
		return
	}
	b.dev.Destroy()
	b.dev = nil
}
