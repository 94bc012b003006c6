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

package debugger

// this file holds the functions/structures to be used when outputting to the
// terminal. The TermPrintLine function of the Terminal interface should not
// be used directly.

import (
	"fmt"
	"strings"

	"github.com/polydbg/polydbg/debugger/terminal"
)

// all print operations from the debugger should be made with this
// printLine() function. output will be normalised and sent to the attached
// terminal as required.
func (dbg *Debugger) printLine(sty terminal.Style, s string, a ...interface{}) {
	if dbg.term == nil {
		return
	}

	// resolve string placeholders for styles other than the help style. the
	// help text contains literal percent characters.
	if sty != terminal.StyleHelp {
		s = fmt.Sprintf(s, a...)
	}

	// remove all trailing newlines, and return if the resulting string is
	// empty
	s = strings.TrimRight(s, "\n")
	if len(s) == 0 {
		return
	}

	dbg.term.TermPrintLine(sty, s)
}

// styleWriter implements the io.Writer interface. it is useful for when an
// io.Writer is required and you want to direct the output to the terminal.
// allows the application of a single style.
type styleWriter struct {
	dbg   *Debugger
	style terminal.Style
}

func (dbg *Debugger) printStyle(sty terminal.Style) *styleWriter {
	return &styleWriter{
		dbg:   dbg,
		style: sty,
	}
}

func (wrt styleWriter) Write(p []byte) (n int, err error) {
	wrt.dbg.printLine(wrt.style, string(p))
	return len(p), nil
}
