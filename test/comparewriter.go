// This file is part of PolyDbg.
//
// PolyDbg is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// PolyDbg is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with PolyDbg.  If not, see <https://www.gnu.org/licenses/>.

package test

import "strings"

// CompareWriter is an implementation of the io.Writer interface. Writes are
// accumulated and can be compared against an expected string.
type CompareWriter struct {
	buffer strings.Builder
}

// Write implements the io.Writer interface.
func (cw *CompareWriter) Write(p []byte) (n int, err error) {
	return cw.buffer.WriteString(string(p))
}

// Compare the accumulated writes with the expected string.
func (cw *CompareWriter) Compare(s string) bool {
	return cw.buffer.String() == s
}

// Contains checks whether the accumulated writes contain the string.
func (cw *CompareWriter) Contains(s string) bool {
	return strings.Contains(cw.buffer.String(), s)
}

// Reset the accumulated writes.
func (cw *CompareWriter) Reset() {
	cw.buffer.Reset()
}

// String implements the Stringer interface.
func (cw *CompareWriter) String() string {
	return cw.buffer.String()
}
