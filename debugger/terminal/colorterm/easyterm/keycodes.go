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

package easyterm

// keycode constants for the rune reader used by terminal implementations.
const (
	KeyInterrupt      = 3
	KeyTab            = 9
	KeyCarriageReturn = 13
	KeySuspend        = 26
	KeyEsc            = 27
	KeyBackspace      = 127
)

// escape sequence constants. the rune following KeyEsc.
const (
	EscCursor = '['
)

// cursor sequence constants. the rune following EscCursor.
const (
	CursorUp       = 'A'
	CursorDown     = 'B'
	CursorForward  = 'C'
	CursorBackward = 'D'
)
