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

package debugger_test

import (
	"strings"
	"testing"

	"github.com/polydbg/polydbg/curated"
	"github.com/polydbg/polydbg/debugger"
	"github.com/polydbg/polydbg/test"
)

func TestBreakpointRoundTrip(t *testing.T) {
	dbg, mem, _ := newTestDebugger(t, 32)

	test.Equate(t, mem.TrapCount(0x1000), 0)

	test.ExpectedSuccess(t, dbg.Exec("br 1000"))
	test.Equate(t, mem.TrapCount(0x1000), 1)

	// clearing restores the bus to its pre-breakpoint trap state
	test.ExpectedSuccess(t, dbg.Exec("bc 0"))
	test.Equate(t, mem.TrapCount(0x1000), 0)

	// clearing an already-cleared index reports an invalid break index
	err := dbg.Exec("bc 0")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, debugger.InvalidBreakpoint))
}

func TestBreakpointDuplicate(t *testing.T) {
	dbg, _, _ := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("br 1000"))
	err := dbg.Exec("br 1000")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, debugger.InvalidBreakpoint))

	// a write breakpoint on the same address is a different breakpoint
	test.ExpectedSuccess(t, dbg.Exec("bw 1000"))
}

func TestBreakpointDisableEnable(t *testing.T) {
	dbg, mem, mt := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("br 1000"))
	test.ExpectedSuccess(t, dbg.Exec("br 2000"))
	test.Equate(t, mem.TrapCount(0x1000), 1)
	test.Equate(t, mem.TrapCount(0x2000), 1)

	// disabling removes the trap but keeps the index
	test.ExpectedSuccess(t, dbg.Exec("bd 0"))
	test.Equate(t, mem.TrapCount(0x1000), 0)

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("bl"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "0: br"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "(disabled)"))

	// re-enabling restores the original address without index churn
	test.ExpectedSuccess(t, dbg.Exec("be 0"))
	test.Equate(t, mem.TrapCount(0x1000), 1)

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("bl"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "(enabled)"))

	// disabling twice is a reported no-op
	test.ExpectedSuccess(t, dbg.Exec("bd 0"))
	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("bd 0"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "already disabled"))
}

func TestBreakpointWildcard(t *testing.T) {
	dbg, mem, _ := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("br 1000"))
	test.ExpectedSuccess(t, dbg.Exec("bw 2000"))
	test.ExpectedSuccess(t, dbg.Exec("bi 3"))

	test.ExpectedSuccess(t, dbg.Exec("bc *"))
	test.Equate(t, mem.TrapCount(0x1000), 0)
	test.Equate(t, mem.TrapCount(0x2000), 0)
}

func TestBreakpointHistorySideEffect(t *testing.T) {
	dbg, _, _ := newTestDebugger(t, 32)

	test.ExpectedFailure(t, dbg.History().Enabled())

	// the first breakpoint enables instruction history
	test.ExpectedSuccess(t, dbg.Exec("br 1000"))
	test.ExpectedSuccess(t, dbg.History().Enabled())

	// clearing the last breakpoint disables it again
	test.ExpectedSuccess(t, dbg.Exec("bc 0"))
	test.ExpectedFailure(t, dbg.History().Enabled())

	// forced history survives the clearing of the last breakpoint
	test.ExpectedSuccess(t, dbg.Exec("sh"))
	test.ExpectedSuccess(t, dbg.Exec("br 1000"))
	test.ExpectedSuccess(t, dbg.Exec("bc 0"))
	test.ExpectedSuccess(t, dbg.History().Enabled())
	test.ExpectedSuccess(t, dbg.Exec("sh"))
	test.ExpectedFailure(t, dbg.History().Enabled())
}

func TestBreakpointHit(t *testing.T) {
	dbg, mem, _ := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("br 1000"))

	test.ExpectedFailure(t, dbg.Outcome().Halt())

	mem.Read(0x1000)
	o := dbg.Outcome()
	test.ExpectedSuccess(t, o.Halt())
	test.ExpectedSuccess(t, strings.Contains(o.Reason(), "read"))

	// consuming the outcome resets it
	test.ExpectedFailure(t, dbg.Outcome().Halt())
}

func TestBreakpointIndexReuse(t *testing.T) {
	dbg, mem, mt := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("br 1000"))
	test.ExpectedSuccess(t, dbg.Exec("br 2000"))
	test.ExpectedSuccess(t, dbg.Exec("br 3000"))

	// clearing the middle breakpoint leaves the other indexes alone
	test.ExpectedSuccess(t, dbg.Exec("bc 1"))

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("bl"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "0: br"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "2: br"))

	// the freed index is reused by the next set
	test.ExpectedSuccess(t, dbg.Exec("bw 4000"))
	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("bl"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "1: bw"))

	test.Equate(t, mem.TrapCount(0x4000), 1)
}
