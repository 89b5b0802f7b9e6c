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

// arena owns every resource created for a chain. Resources are released in
// the reverse order to which they were added.
type arena struct {
	res []Releaser
}

func (ar *arena) add(r Releaser) {
	ar.res = append(ar.res, r)
}

// mark returns a value suitable for rollback().
func (ar *arena) mark() int {
	return len(ar.res)
}

// rollback releases all resources added since the mark.
func (ar *arena) rollback(mark int) {
	for i := len(ar.res) - 1; i >= mark; i-- {
		ar.res[i].Release()
		ar.res[i] = nil
	}
	ar.res = ar.res[:mark]
}

func (ar *arena) release() {
	ar.rollback(0)
}
