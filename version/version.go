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

// Package version reports the name and version of the application.
//
// The version number is set at link time. For example:
//
//	go build -ldflags "-X github.com/videochain/videochain/version.number=v1.0.0"
//
// Without a version number the revision information embedded by the Go
// toolchain is used to describe the build.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Videochain"

// set by the linker
var number string

var (
	version  string
	revision string
)

// Version returns the version string, the revision string and whether this is
// a numbered release.
//
// The version string is "unreleased" if there is revision information but no
// version number, and "local" if there is neither.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// Title returns the application name suitable for a window title. The version
// is only included for numbered releases.
func Title() string {
	if v, _, release := Version(); release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return ApplicationName
}

func init() {
	version, revision = fromBuildInfo(number, readBuildSettings())
}

func readBuildSettings() map[string]string {
	settings := make(map[string]string)
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			settings[s.Key] = s.Value
		}
	}
	return settings
}

func fromBuildInfo(number string, settings map[string]string) (string, string) {
	rev := settings["vcs.revision"]
	if rev == "" {
		rev = "no revision information"
	} else if settings["vcs.modified"] == "true" {
		rev = fmt.Sprintf("%s+dirty", rev)
	}

	if number != "" {
		return number, rev
	}
	if _, ok := settings["vcs"]; ok {
		return "unreleased", rev
	}
	return "local", rev
}
