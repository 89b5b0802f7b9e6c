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

package logger

// Permission implementations indicate whether the environment making a log
// request is allowed to create new log entries. Good for controlling when or if
// log entries are to be made.
//
// The render chain uses this to stop per-frame failures flooding the log. See
// the Limiter type.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (_ allow) AllowLogging() bool {
	return true
}

// Allow indicates that the logging request should be allowed. A good default to
// use if a log entry should always be made.
var Allow Permission = allow{}

// Limiter is a Permission that allows only the first N requests. Reset() makes
// the full allowance available again.
type Limiter struct {
	Allowance int
	used      int
}

// AllowLogging implements the Permission interface.
func (l *Limiter) AllowLogging() bool {
	if l.used >= l.Allowance {
		return false
	}
	l.used++
	return true
}

// Reset the number of requests made.
func (l *Limiter) Reset() {
	l.used = 0
}
