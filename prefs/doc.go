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

// Package prefs facilitates the storage and loading of user preferences.
//
// Preference values are typed (Bool, String, Int, Float) and are registered
// with a Disk instance under a key. A Disk is saved to and loaded from a
// plain text file with one entry per line, in the form:
//
//	key :: value
//
// The first line of the file is the WarningBoilerPlate string. Entries in the
// file that are not registered with a Disk instance are preserved when the
// Disk is saved, meaning that more than one Disk can share the same file.
//
// Values can be overridden from the command line with PushCommandLineStack().
// A command line value takes precedence over the value on disk and is applied
// when the Disk is loaded.
package prefs
