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

// Package ansi defines ANSI control codes for styles and colours.
package ansi

import "fmt"

// ansi color.
const (
	colBlack   = 0
	colRed     = 1
	colGreen   = 2
	colYellow  = 3
	colBlue    = 4
	colMagenta = 5
	colCyan    = 6
	colWhite   = 7
)

// Pens is the table of bright colors to be used for text.
var Pens map[string]string

// DimPens is the table of pastel colors to be used for text.
var DimPens map[string]string

// PenStyles is the table of styles to be used for text.
var PenStyles map[string]string

// NormalPen is the CSI sequence for regular text.
const NormalPen = "\033[0m"

// ClearLine is the CSI sequence to clear the entire of the current line.
const ClearLine = "\033[2K"

// CursorStore and CursorRestore save and retrieve the current cursor
// position.
const (
	CursorStore   = "\033[s"
	CursorRestore = "\033[u"
)

// CursorMove is the CSI sequence to move the cursor n characters to the
// right (negative n for left).
func CursorMove(n int) string {
	if n < 0 {
		return fmt.Sprintf("\033[%dD", -n)
	} else if n > 0 {
		return fmt.Sprintf("\033[%dC", n)
	}
	return ""
}

func init() {
	Pens = make(map[string]string)
	DimPens = make(map[string]string)
	PenStyles = make(map[string]string)

	for c, n := range map[string]int{
		"black":   colBlack,
		"red":     colRed,
		"green":   colGreen,
		"yellow":  colYellow,
		"blue":    colBlue,
		"magenta": colMagenta,
		"cyan":    colCyan,
		"white":   colWhite,
	} {
		Pens[c] = fmt.Sprintf("\033[3%d;1m", n)
		DimPens[c] = fmt.Sprintf("\033[3%dm", n)
	}

	PenStyles["bold"] = "\033[1m"
	PenStyles["underline"] = "\033[4m"
}
