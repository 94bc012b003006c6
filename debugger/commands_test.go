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
	"github.com/polydbg/polydbg/expression"
	"github.com/polydbg/polydbg/logger"
	"github.com/polydbg/polydbg/test"
)

// the end-to-end session property: word width 16, default radix 16.
func TestPrintCommand(t *testing.T) {
	dbg, _, mt := newTestDebugger(t, 16)

	// EDX is not a register, symbol or variable
	err := dbg.Exec("p EDX+4")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Has(err, expression.UndefinedReference))

	// once EDX exists as a variable the same command evaluates, rendered in
	// the current radix
	dbg.Variables().Set("EDX", 10, "")

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("p EDX+4"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "EDX+4 = e"))
}

func TestSetVariableCommand(t *testing.T) {
	dbg, _, mt := newTestDebugger(t, 32)

	// radix 16: "ff" is 255
	test.ExpectedSuccess(t, dbg.Exec("sy TOTAL ff+1"))
	v, ok := dbg.Variables().Get("TOTAL")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 256)

	// an expression with an unresolved name is stored as a fixup
	test.ExpectedSuccess(t, dbg.Exec("sy ENTRY START+10"))
	fix, ok := dbg.Variables().Fixup("ENTRY")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, fix, "START+10")

	// the fixup resolves once START exists
	test.ExpectedSuccess(t, dbg.Exec("sy START 2000"))
	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("p ENTRY"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "ENTRY = 2010"))

	// deletion
	test.ExpectedSuccess(t, dbg.Exec("sd ENTRY"))
	_, ok = dbg.Variables().Get("ENTRY")
	test.ExpectedFailure(t, ok)
}

func TestRegisterCommand(t *testing.T) {
	dbg, _, mt := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("rpc 1000"))

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("rpc"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "PC = 1000"))

	// registers shadow variables during evaluation
	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("p PC+1"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "PC+1 = 1001"))

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("rxyzzy"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "no such register"))
}

func TestEditAndDumpCommands(t *testing.T) {
	dbg, mem, mt := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("e 100 41 42 43"))
	v, ok := mem.Read(0x100)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 0x41)

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("db 100 3"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "41 42 43"))

	// debugger-initiated reads must not trigger breakpoints
	test.ExpectedSuccess(t, dbg.Exec("br 100"))
	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("db 100 1"))
	test.ExpectedFailure(t, dbg.Outcome().Halt())

	// nor must they land in the instruction history, which the first
	// breakpoint switched on
	test.ExpectedSuccess(t, dbg.History().Enabled())
	test.ExpectedSuccess(t, dbg.Exec("db 200 4"))
	test.Equate(t, len(dbg.History().Recent(10)), 0)

	// a machine-initiated read still records
	mem.Read(0x200)
	test.Equate(t, len(dbg.History().Recent(10)), 1)
}

func TestUnrecognizedCommand(t *testing.T) {
	dbg, _, mt := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("wibble"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "unrecognized command"))

	// unknown sub-letter shows the family help
	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("bz"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "breakpoint commands"))

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("dz"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "dump commands"))

	// a longer word that happens to begin with a single-letter command is
	// not that command
	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("help"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "unrecognized command"))
	test.ExpectedFailure(t, dbg.Outcome().Halt())

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("go"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "unrecognized command"))
}

func TestDumpLogCommand(t *testing.T) {
	dbg, _, mt := newTestDebugger(t, 32)

	logger.Clear()
	logger.Logf("test", "first entry")

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("dl"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "first entry"))

	// dl with a count shows only the tail of the log
	logger.Logf("test", "second entry")
	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("dl 1"))
	test.ExpectedFailure(t, strings.Contains(mt.output(), "first entry"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "second entry"))
}

func TestBaseCommand(t *testing.T) {
	dbg, _, mt := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("sb 10"))
	test.Equate(t, dbg.Evaluator().Base(), 16)

	// "10" in radix 16 is sixteen; a decimal radix needs the decimal
	// override
	test.ExpectedSuccess(t, dbg.Exec("sb ^D 10"))
	test.Equate(t, dbg.Evaluator().Base(), 10)

	mt.reset()
	test.ExpectedSuccess(t, dbg.Exec("p 100"))
	test.ExpectedSuccess(t, strings.Contains(mt.output(), "100 = 100"))
}

func TestMessageBreak(t *testing.T) {
	dbg, _, _ := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("bm 6"))

	// no overlap: no halt
	dbg.PostMessage(1)
	test.ExpectedFailure(t, dbg.Outcome().Halt())

	// overlap: halt
	dbg.PostMessage(4)
	o := dbg.Outcome()
	test.ExpectedSuccess(t, o.Halt())
	test.ExpectedSuccess(t, strings.Contains(o.Reason(), "message"))
}

func TestInstructionCountBreak(t *testing.T) {
	dbg, mem, _ := newTestDebugger(t, 32)

	test.ExpectedSuccess(t, dbg.Exec("bn 3"))

	mem.Read(0x10)
	mem.Read(0x11)
	test.ExpectedFailure(t, dbg.Outcome().Halt())

	mem.Read(0x12)
	o := dbg.Outcome()
	test.ExpectedSuccess(t, o.Halt())
	test.ExpectedSuccess(t, strings.Contains(o.Reason(), "instruction count"))

	// the condition disarms after firing
	mem.Read(0x13)
	test.ExpectedFailure(t, dbg.Outcome().Halt())
}
