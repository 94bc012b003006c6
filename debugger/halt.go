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

import "fmt"

// Outcome is the halt decision returned up through the execution-step call
// chain. The zero value means continue.
type Outcome struct {
	reason string
	halt   bool
}

// Continue is the no-halt outcome.
var Continue = Outcome{}

// HaltRequested builds a halting outcome with the given reason.
func HaltRequested(reason string) Outcome {
	return Outcome{reason: reason, halt: true}
}

// Halt returns true if the outcome requests a stop.
func (o Outcome) Halt() bool {
	return o.halt
}

// Reason for the halt. Empty for Continue.
func (o Outcome) Reason() string {
	return o.reason
}

// halt stops the machine. in abrupt mode the current instruction step is
// aborted and machine state may be mid-instruction; in cooperative mode the
// running flag is cleared and the current instruction finishes.
func (dbg *Debugger) halt(reason string) {
	dbg.outcome = HaltRequested(reason)

	if dbg.sched == nil {
		return
	}
	if dbg.abruptHalt {
		dbg.sched.Abort()
	} else {
		dbg.sched.Stop()
	}
}

// Outcome returns the pending halt decision and resets it to Continue. The
// scheduler collaborator consumes this at its next decision point.
func (dbg *Debugger) Outcome() Outcome {
	o := dbg.outcome
	dbg.outcome = Continue
	return o
}

// SetAbruptHalt selects the halt mode: an abrupt abort of the current
// instruction step, or a cooperative stop that lets it finish.
func (dbg *Debugger) SetAbruptHalt(abrupt bool) {
	dbg.abruptHalt = abrupt
}

// PostMessage offers a diagnostic message bitmask to the message-based break
// condition. Any overlap with the armed mask stops the machine.
func (dbg *Debugger) PostMessage(mask int64) {
	if dbg.messageMask != 0 && mask&dbg.messageMask != 0 {
		dbg.halt(fmt.Sprintf("message break (mask %#x)", mask&dbg.messageMask))
	}
}
