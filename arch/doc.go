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

// Package arch defines the capability interfaces an emulated architecture
// provides to the debugging core: register access, opcode lengths and
// disassembly rendering. Architecture-specific behaviour is injected
// through these interfaces rather than resolved through inheritance-style
// overriding.
//
// The Stub type is the default implementation for machines without a real
// CPU attached. Its disassembler renders an "unsupported" stub.
package arch
