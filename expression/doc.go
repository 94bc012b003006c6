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

// Package expression tokenises and evaluates the arithmetic expressions
// accepted by the debugger console. Evaluation is by precedence climbing
// over an explicit value stack and operator stack.
//
// A value token resolves in strict order: architecture register name, then
// symbol name, then variable name, then numeric literal in the current
// default radix. Variables may carry deferred fixup expressions which are
// resolved recursively; when a fixup-collection sink is supplied, unresolved
// names are recorded in the sink and replaced with zero instead of failing
// the evaluation.
//
// Two operator precedence tables are available. The default table follows
// the usual C ordering. The legacy table serves an older assembler dialect:
// it binds the bitwise operators more tightly than the relational operators
// and adds the ",," operator which combines a high half-word and a low
// half-word into a single value.
//
// Grouped sub-expressions are delimited by a configurable bracket pair
// (default "{ }"). A radix override token (^X ^D ^O ^B) switches the default
// radix for the remainder of the current group only; the caller's radix is
// restored on exit from the group.
//
// All intermediate and final values pass through the numeric engine's
// truncation at the default word width.
package expression
