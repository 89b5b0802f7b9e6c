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

// Package limiter caps the rate of a loop.
//
// A new Limiter is created with the target rate. The Wait() function then
// stalls until the next tick is due:
//
//	lim := limiter.NewLimiter(60)
//	defer lim.Stop()
//	for {
//		lim.Wait()
//		renderFrame()
//	}
//
// A rate of zero or less disables the limiter and Wait() returns immediately.
package limiter

import (
	"sync"
	"time"
)

// Limiter waits for the next tick of a fixed rate.
type Limiter struct {
	crit   sync.Mutex
	rate   int
	ticker *time.Ticker
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
func NewLimiter(rate int) *Limiter {
	lim := &Limiter{}
	lim.SetLimit(rate)
	return lim
}

// SetLimit changes the rate. A rate of zero or less disables the limiter.
func (lim *Limiter) SetLimit(rate int) {
	lim.crit.Lock()
	defer lim.crit.Unlock()

	lim.rate = rate
	if rate <= 0 {
		if lim.ticker != nil {
			lim.ticker.Stop()
			lim.ticker = nil
		}
		return
	}

	d := time.Second / time.Duration(rate)
	if lim.ticker == nil {
		lim.ticker = time.NewTicker(d)
	} else {
		lim.ticker.Reset(d)
	}
}

// Limit returns the current rate.
func (lim *Limiter) Limit() int {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	return lim.rate
}

// Wait blocks until the next tick. Ticks missed while the caller was busy are
// not accumulated.
func (lim *Limiter) Wait() {
	lim.crit.Lock()
	t := lim.ticker
	lim.crit.Unlock()

	if t == nil {
		return
	}
	<-t.C
}

// HasWaited returns true if a tick is due, without blocking.
func (lim *Limiter) HasWaited() bool {
	lim.crit.Lock()
	t := lim.ticker
	lim.crit.Unlock()

	if t == nil {
		return true
	}

	select {
	case <-t.C:
		return true
	default:
		return false
	}
}

// Stop releases the limiter. Wait() returns immediately afterwards.
func (lim *Limiter) Stop() {
	lim.SetLimit(0)
}
