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

// Package symbols maintains the table of symbols for the attached machine.
// The table is kept in two orderings at once: lexicographically by name, for
// name-to-address resolution during expression evaluation; and numerically
// by address offset, for address-to-name resolution during disassembly and
// memory dumps.
//
// Symbols are loaded in bulk from flat triples at load time and the table
// then lives for the lifetime of the debugger. Insertion is idempotent: a
// symbol whose name or address offset is already present leaves the table
// unchanged.
package symbols
