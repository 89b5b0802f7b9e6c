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

package chain_test

import (
	"testing"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/test"
)

func TestHistoryEmpty(t *testing.T) {
	var h chain.History
	test.ExpectEquality(t, h.Frames(), 0)
	for k := range chain.HistoryCapacity + 1 {
		test.ExpectEquality(t, h.Get(k), chain.Snapshot{}, k)
	}
}

func TestHistoryOldest(t *testing.T) {
	for k := 1; k < chain.HistoryCapacity; k++ {
		var h chain.History

		// the used width identifies the frame
		for f := 1; f <= k; f++ {
			test.DemandSuccess(t, h.Advance(nil, f, f, nil, chain.Quad{}))
		}

		test.ExpectEquality(t, h.Frames(), k)
		test.ExpectEquality(t, h.Get(k).UsedW, 1, k)
		for j := k + 1; j <= chain.HistoryCapacity; j++ {
			test.ExpectEquality(t, h.Get(j), chain.Snapshot{}, k, j)
		}
	}
}

func TestHistoryWraparound(t *testing.T) {
	var h chain.History

	for f := 1; f <= chain.HistoryCapacity*3+3; f++ {
		test.DemandSuccess(t, h.Advance(nil, f, f*2, nil, chain.Quad{}))

		// the most recent frame is always one frame ago
		test.ExpectEquality(t, h.Get(1).UsedW, f, f)
		test.ExpectEquality(t, h.Get(1).UsedH, f*2, f)

		for k := 2; k < chain.HistoryCapacity; k++ {
			if k <= f {
				test.ExpectEquality(t, h.Get(k).UsedW, f-k+1, f, k)
			} else {
				test.ExpectEquality(t, h.Get(k), chain.Snapshot{}, f, k)
			}
		}

		// out of range
		test.ExpectEquality(t, h.Get(0), chain.Snapshot{}, f)
		test.ExpectEquality(t, h.Get(chain.HistoryCapacity), chain.Snapshot{}, f)
	}
}
