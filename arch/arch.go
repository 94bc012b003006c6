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

package arch

import (
	"github.com/polydbg/polydbg/address"
)

// Disassembler is the capability an architecture provides for rendering
// instructions. The debugging core delegates every opcode-length and
// disassembly decision to it.
type Disassembler interface {
	// OpcodeLength returns the length in bytes of the instruction at the
	// address. Implementations return at least 1.
	OpcodeLength(addr address.Address) int

	// Disassemble renders the instruction at the address.
	Disassemble(addr address.Address) string
}

// CPU is the view of the emulated processor the debugging core requires.
type CPU interface {
	Disassembler

	// register lookup/update by architecture register name
	Register(name string) (int64, bool)
	SetRegister(name string, value int64) bool
	RegisterNames() []string

	// the address of the most recent instruction fetch
	LastFetch() address.Address
}
