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

package headless

import (
	"fmt"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/logger"
)

// Backend implements the video.Backend interface.
type Backend struct {
	// faults applied to every new device
	Faults Faults

	// the number of calls to Open() that will fail
	OpenFaults int

	dev    *Device
	opened int
	leaks  int
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend() *Backend {
	return &Backend{}
}

// Name implements the video.Backend interface.
func (b *Backend) Name() string {
	return "headless"
}

// Open implements the video.Backend interface.
func (b *Backend) Open(width, height int) (chain.Device, chain.Compiler, error) {
	if b.dev != nil {
		return nil, nil, fmt.Errorf("headless: open: device is already open")
	}
	if b.OpenFaults > 0 {
		b.OpenFaults--
		return nil, nil, fmt.Errorf("headless: open: fault")
	}

	b.dev = NewDevice(width, height)
	b.dev.Faults = b.Faults
	b.opened++

	return b.dev, NewCompiler(b.dev), nil
}

// Close implements the video.Backend interface.
func (b *Backend) Close() {
	if b.dev == nil {
		return
	}
	if n := b.dev.Live(); n != 0 {
		logger.Logf(logger.Allow, "headless", "device closed with %d live resources", n)
		b.leaks += n
	}
	b.dev = nil
}

// Device returns the open device. It is nil if no device is open.
func (b *Backend) Device() *Device {
	return b.dev
}

// Opened returns the number of devices that have been opened.
func (b *Backend) Opened() int {
	return b.opened
}

// Leaks returns the number of resources that were live when their device was
// closed.
func (b *Backend) Leaks() int {
	return b.leaks
}
