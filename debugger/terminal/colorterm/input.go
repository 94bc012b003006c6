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
	"unicode"
	"unicode/utf8"

	"github.com/polydbg/polydbg/curated"
	"github.com/polydbg/polydbg/debugger/terminal"
	"github.com/polydbg/polydbg/debugger/terminal/colorterm/easyterm"
	"github.com/polydbg/polydbg/debugger/terminal/colorterm/easyterm/ansi"
)

const maxInputLength = 255

// TermRead implements the terminal.Input interface. The line editor runs
// with the terminal in raw mode, restored to canonical mode on return.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt, events *terminal.ReadEvents) (string, error) {
	if ct.silenced {
		return "", nil
	}

	ct.RawMode()
	defer ct.CanonicalMode()

	input := make([]byte, maxInputLength)
	er := make([]byte, 4)

	n := 0
	cursor := 0
	history := len(ct.commandHistory)

	// buffInput is used to store the latest input when we scroll through
	// history - we don't want to lose what we've typed in case the user
	// wants to resume where we left off
	buffInput := make([]byte, maxInputLength)
	buffN := 0

	// the method for cursor placement is as follows:
	//	1. for each iteration in the loop
	//		2. store current cursor position
	//		3. clear the current line
	//		4. output the prompt
	//		5. output the input buffer
	//		6. restore the cursor position
	//
	// for this to work we need to place the cursor in its initial position
	ct.TermPrint("\r")
	ct.TermPrint(ansi.CursorMove(len(prompt.String())))

	for {
		ct.TermPrint(ansi.CursorStore)
		ct.TermPrint(ansi.ClearLine)
		ct.TermPrint("\r")
		ct.TermPrint(prompt.String())
		ct.TermPrint(string(input[:n]))
		ct.TermPrint(ansi.CursorRestore)

		// check for interrupt signals received while we were drawing
		if events != nil {
			select {
			case sig := <-events.Signal:
				ct.TermPrint("\n")
				if err := events.SignalHandler(sig); err != nil {
					return "", err
				}
			default:
			}
		}

		r, _, err := ct.reader.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case easyterm.KeyTab:
			if ct.tabCompletion != nil {
				s := ct.tabCompletion.Complete(string(input[:cursor]))

				// the difference in the length of the new input and the old
				d := len(s) - cursor

				// append everything after the cursor to the new string and
				// copy into input array
				s += string(input[cursor:n])
				copy(input, []byte(s))

				ct.TermPrint(ansi.CursorMove(d))
				cursor += d
				n += d
			}

		case easyterm.KeyInterrupt:
			ct.TermPrint("\n")
			return "", curated.Errorf(terminal.UserInterrupt)

		case easyterm.KeyCarriageReturn:
			if ct.tabCompletion != nil {
				ct.tabCompletion.Reset()
			}

			// only add a new history entry if input differs from the last
			newEntry := n > 0
			if newEntry && len(ct.commandHistory) > 0 {
				last := ct.commandHistory[len(ct.commandHistory)-1].input
				if len(last) == n && string(last) == string(input[:n]) {
					newEntry = false
				}
			}
			if newEntry {
				nh := make([]byte, n)
				copy(nh, input[:n])
				ct.commandHistory = append(ct.commandHistory, command{input: nh})
			}

			ct.TermPrint("\n")
			return string(input[:n]), nil

		case easyterm.KeyEsc:
			r, _, err := ct.reader.ReadRune()
			if err != nil {
				return "", err
			}
			if r != easyterm.EscCursor {
				break
			}

			r, _, err = ct.reader.ReadRune()
			if err != nil {
				return "", err
			}

			switch r {
			case easyterm.CursorUp:
				if history > 0 {
					if history == len(ct.commandHistory) {
						copy(buffInput, input[:n])
						buffN = n
					}
					history--
					copy(input, ct.commandHistory[history].input)
					n = len(ct.commandHistory[history].input)
					ct.TermPrint(ansi.CursorMove(n - cursor))
					cursor = n
				}

			case easyterm.CursorDown:
				if history < len(ct.commandHistory) {
					history++
					if history == len(ct.commandHistory) {
						copy(input, buffInput[:buffN])
						n = buffN
					} else {
						copy(input, ct.commandHistory[history].input)
						n = len(ct.commandHistory[history].input)
					}
					ct.TermPrint(ansi.CursorMove(n - cursor))
					cursor = n
				}

			case easyterm.CursorBackward:
				if cursor > 0 {
					ct.TermPrint(ansi.CursorMove(-1))
					cursor--
				}

			case easyterm.CursorForward:
				if cursor < n {
					ct.TermPrint(ansi.CursorMove(1))
					cursor++
				}
			}

		case easyterm.KeyBackspace:
			if cursor > 0 {
				copy(input[cursor-1:], input[cursor:n])
				n--
				cursor--
				ct.TermPrint(ansi.CursorMove(-1))
				history = len(ct.commandHistory)
			}

		default:
			if unicode.IsPrint(r) && n < maxInputLength-utf8.RuneLen(r) {
				l := utf8.EncodeRune(er, r)

				// insert at cursor position
				copy(input[cursor+l:], input[cursor:n])
				copy(input[cursor:], er[:l])
				n += l
				cursor += l
				ct.TermPrint(ansi.CursorMove(1))

				// editing the input resets history scrolling
				history = len(ct.commandHistory)
			}
		}
	}
}
