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

func TestSaveRestoreState(t *testing.T) {
	dbg, _, mt := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("br 1000"))
	test.ExpectedSuccess(t, dbg.Exec("bw 2000"))
	test.ExpectedSuccess(t, dbg.Exec("bd 1"))
	test.ExpectedSuccess(t, dbg.Exec("bm 6"))

	blob, err := dbg.SaveState()
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, strings.Contains(blob, "test-device"))
	test.ExpectedSuccess(t, strings.Contains(blob, "br 0x1000"))
	test.ExpectedSuccess(t, strings.Contains(blob, "bd 1"))

	// restore into a fresh session
	dbg2, mem2, mt2 := newTestDebugger(t, 32)
	test.ExpectedSuccess(t, dbg2.RestoreState(blob))

	test.Equate(t, mem2.TrapCount(0x1000), 1)
	// the disabled breakpoint is reconstructed without a live trap
	test.Equate(t, mem2.TrapCount(0x2000), 0)

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("bl"))
	mt2.reset()
	test.ExpectedSuccess(t, dbg2.Exec("bl"))
	test.Equate(t, mt2.output(), mt.output())

	// the message mask travels with the blob
	blob2, err := dbg2.SaveState()
	test.ExpectedSuccess(t, err)
	test.Equate(t, blob2, blob)
}

func TestSaveRestoreStateIndexHole(t *testing.T) {
	dbg, _, _ := newTestDebugger(t, 32)

	// three breakpoints at indexes 0, 1, 2. clearing the middle one leaves a
	// hole; replay on restore allocates densely, so the saved disable command
	// must refer to the replayed position of 0x3000, not its live index
	test.ExpectedSuccess(t, dbg.Exec("br 1000"))
	test.ExpectedSuccess(t, dbg.Exec("br 2000"))
	test.ExpectedSuccess(t, dbg.Exec("br 3000"))
	test.ExpectedSuccess(t, dbg.Exec("bc 1"))
	test.ExpectedSuccess(t, dbg.Exec("bd 2"))

	blob, err := dbg.SaveState()
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, strings.Contains(blob, "br 0x1000;br 0x3000;bd 1"))

	dbg2, mem2, _ := newTestDebugger(t, 32)
	test.ExpectedSuccess(t, dbg2.RestoreState(blob))

	test.Equate(t, mem2.TrapCount(0x1000), 1)
	// 0x3000 comes back disabled, with no live trap
	test.Equate(t, mem2.TrapCount(0x3000), 0)
}

func TestRestoreStateIdentity(t *testing.T) {
	dbg, _, _ := newTestDebugger(t, 32)

	err := dbg.RestoreState(`["other-device","",0]`)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, debugger.StateError))

	test.ExpectedFailure(t, dbg.RestoreState("not json"))
	test.ExpectedFailure(t, dbg.RestoreState(`["test-device",""]`))

	// a well-formed empty state restores cleanly
	test.ExpectedSuccess(t, dbg.RestoreState(`["test-device","",0]`))
}
