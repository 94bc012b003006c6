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

// Package history records the addresses fetched near the program counter in
// a fixed-capacity ring. The ring makes two things possible that a plain
// program counter cannot: stepping backward through recently executed
// instructions (rendered through the architecture's disassembler) and
// counting instructions for the instruction-count break condition.
//
// The recorder hooks the bus structurally, observing every read on every
// readable block. It is enabled automatically while any breakpoint exists
// and can be forced on or off from the console.
package history
