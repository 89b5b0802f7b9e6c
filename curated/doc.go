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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. The Has() function checks whether the pattern occurs
// somewhere in the error chain:
//
//	e := curated.Errorf(chain.CompileError, "pass 1", "syntax error")
//	f := curated.Errorf(chain.BuildError, e)
//
//	curated.Has(f, chain.CompileError) // true
//	curated.Is(f, chain.CompileError)  // false
//
// Patterns are stored as exported string constants by the package that creates
// the error. For example, the chain package exports BuildError, CompileError
// and FrameError.
//
// The Error() function ensures that the error chain is normalised.
// Specifically, that the chain does not contain duplicate adjacent parts. For
// example, if a build error wraps a build error the message will not read
//
//	chain: build: chain: build: no passes
//
// but rather
//
//	chain: build: no passes
//
// Curated errors also implement Unwrap() so the errors.Is() and errors.As()
// functions in the standard library can look inside the wrapped values.
package curated
