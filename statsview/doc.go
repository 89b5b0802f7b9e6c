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

// Package statsview runs a local HTTP server with runtime statistics of the
// videochain process. It is only built with the statsview build tag, for
// example:
//
//	go build -tags statsview .
//
// Statistics are viewable at localhost:12600/debug/statsview and the standard
// pprof pages at localhost:12600/debug/pprof/. Without the build tag,
// Available() returns false and Launch() does nothing.
package statsview
