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

package terminal

// Style is used to identify the category of text being sent to the
// TermPrintLine() function.
type Style int

// List of terminal styles.
const (
	// input from the user being echoed back to the user. some terminal
	// implementations have no need to do this.
	StyleEcho Style = iota

	// terse and quick results of a command
	StyleFeedback

	// disassembly output, rendered instructions from the history walk
	StyleInstruction

	// help information
	StyleHelp

	// information from the log
	StyleLog

	// errors should be shown even when the terminal is silenced
	StyleError
)

// IsPrompt returns true if the style is to be printed as part of a prompt.
// No terminal style currently qualifies but the check keeps output
// implementations honest about trailing newlines.
func (sty Style) IsPrompt() bool {
	return false
}
