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

// Package debugger ties the debugging core together: the breakpoint manager,
// the console command dispatch, the halt machinery and the persisted restart
// state.
//
// The Debugger type composes the bus, CPU and scheduler collaborators with
// the expression evaluator, symbol table, variable store and instruction
// history. All operations run synchronously on the goroutine that drives
// emulated execution; the only guard needed is the re-entrancy counter that
// suppresses trap handling while the debugger itself touches the bus.
//
// Every console command produces a line (or block) of text through the
// attached terminal. Failures are reported, never fatal.
package debugger
