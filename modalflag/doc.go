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

// Package modalflag handles command lines that select a mode of operation
// before any mode specific flags. It wraps flag.FlagSet from the standard
// library with a new flag set for every mode.
//
// The videochain command has a RUN mode and a HEADLESS mode, with RUN being
// the default:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "HEADLESS")
//	_, _ = md.Parse()
//
//	switch md.Mode() {
//	case "HEADLESS":
//		md.NewMode()
//		frames := md.AddInt("frames", 600, "number of frames to render")
//		p, err := md.Parse()
//		...
//	}
//
// Arguments that are neither flags nor a listed mode are available with
// RemainingArgs() and GetArg() after a call to Parse(). Mode names are
// compared case insensitively.
//
// Help is printed automatically to the Output writer when requested with
// -help, listing the flags and the available sub-modes of the current mode.
package modalflag
