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

package colorterm

import (
	"github.com/polydbg/polydbg/debugger/terminal"
	"github.com/polydbg/polydbg/debugger/terminal/colorterm/easyterm/ansi"
)

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.silenced && style != terminal.StyleError {
		return
	}

	// we don't need to output echoed input for this type of terminal. the
	// line editor has already shown it.
	if style == terminal.StyleEcho {
		return
	}

	ct.TermPrint("\r")

	switch style {
	case terminal.StyleHelp:
		ct.TermPrint(ansi.DimPens["white"])
	case terminal.StyleFeedback:
		ct.TermPrint(ansi.DimPens["white"])
	case terminal.StyleInstruction:
		ct.TermPrint(ansi.Pens["yellow"])
	case terminal.StyleLog:
		ct.TermPrint(ansi.Pens["cyan"])
	case terminal.StyleError:
		ct.TermPrint(ansi.Pens["red"])
		ct.TermPrint("* ")
	}

	ct.TermPrint(s)
	ct.TermPrint(ansi.NormalPen)

	// add a newline if print style is anything other than a prompt
	if !style.IsPrompt() {
		ct.TermPrint("\n")
	}
}
