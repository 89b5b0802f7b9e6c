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

// Package performance contains helpers for measuring the performance of the
// render chain.
//
// RunProfiler() runs a function while collecting any combination of CPU
// profile, heap profile and execution trace. CalcFPS() turns a count of
// frames over a period into a frame rate and compares it with a target rate.
//
// The limiter sub-package caps the rate of a loop.
package performance
