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

	"github.com/polydbg/polydbg/arch"
	"github.com/polydbg/polydbg/bus"
	"github.com/polydbg/polydbg/debugger"
	"github.com/polydbg/polydbg/debugger/terminal"
	"github.com/polydbg/polydbg/numeric"
	"github.com/polydbg/polydbg/test"
)

// mockTerm records every line printed by the debugger.
type mockTerm struct {
	lines []string
}

func (mt *mockTerm) Initialise() error                          { return nil }
func (mt *mockTerm) CleanUp()                                   {}
func (mt *mockTerm) RegisterTabCompletion(terminal.TabCompletion) {}
func (mt *mockTerm) Silence(bool)                               {}
func (mt *mockTerm) IsInteractive() bool                        { return false }

func (mt *mockTerm) TermPrintLine(style terminal.Style, s string) {
	if style == terminal.StyleEcho {
		return
	}
	mt.lines = append(mt.lines, s)
}

func (mt *mockTerm) TermRead(_ terminal.Prompt, _ *terminal.ReadEvents) (string, error) {
	return "", nil
}

func (mt *mockTerm) output() string {
	return strings.Join(mt.lines, "\n")
}

func (mt *mockTerm) reset() {
	mt.lines = mt.lines[:0]
}

func newTestDebugger(t *testing.T, width uint) (*debugger.Debugger, *bus.Memory, *mockTerm) {
	t.Helper()

	mem := bus.NewMemory()
	test.ExpectedSuccess(t, mem.AddBlock("ram", 0, 0x10000))

	dbg := debugger.New(mem, arch.NewStub(), "test-device", numeric.NewEngine(width))

	mt := &mockTerm{}
	dbg.AttachTerminal(mt)

	return dbg, mem, mt
}
