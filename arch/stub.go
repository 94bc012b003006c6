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
	"sort"
	"strings"

	"github.com/polydbg/polydbg/address"
)

// Registers is the shared register view handed to the debugger by a CPU's
// ConnectDebugger() capability. The debugger holds it as a non-owning
// back-reference; the CPU remains the owner.
type Registers struct {
	values map[string]int64
}

// NewRegisters is the preferred method of initialisation for the Registers
// type.
func NewRegisters(names ...string) *Registers {
	r := &Registers{
		values: make(map[string]int64),
	}
	for _, n := range names {
		r.values[strings.ToUpper(n)] = 0
	}
	return r
}

// Get the value of a named register.
func (r *Registers) Get(name string) (int64, bool) {
	v, ok := r.values[strings.ToUpper(name)]
	return v, ok
}

// Set the value of a named register. Returns false if the register does not
// exist: the register file is fixed at creation.
func (r *Registers) Set(name string, value int64) bool {
	name = strings.ToUpper(name)
	if _, ok := r.values[name]; !ok {
		return false
	}
	r.values[name] = value
	return true
}

// Names returns the register names in sorted order.
func (r *Registers) Names() []string {
	names := make([]string, 0, len(r.values))
	for n := range r.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Stub is the default CPU implementation. It carries a small register file
// and walks its program counter through memory one byte at a time. Its
// disassembler renders the unsupported stub; a real architecture replaces
// it.
type Stub struct {
	regs *Registers
	pc   string
}

// NewStub is the preferred method of initialisation for the Stub type. The
// first register named is used as the program counter.
func NewStub(names ...string) *Stub {
	if len(names) == 0 {
		names = []string{"PC"}
	}
	return &Stub{
		regs: NewRegisters(names...),
		pc:   strings.ToUpper(names[0]),
	}
}

// ConnectDebugger returns the shared register view.
func (c *Stub) ConnectDebugger() *Registers {
	return c.regs
}

// Register implements the CPU interface.
func (c *Stub) Register(name string) (int64, bool) {
	return c.regs.Get(name)
}

// SetRegister implements the CPU interface.
func (c *Stub) SetRegister(name string, value int64) bool {
	return c.regs.Set(name, value)
}

// RegisterNames implements the CPU interface.
func (c *Stub) RegisterNames() []string {
	return c.regs.Names()
}

// LastFetch implements the CPU interface.
func (c *Stub) LastFetch() address.Address {
	v, _ := c.regs.Get(c.pc)
	return address.New(uint64(v))
}

// Step advances the program counter by the length of the current
// instruction and returns the fetch address.
func (c *Stub) Step() address.Address {
	addr := c.LastFetch()
	v, _ := c.regs.Get(c.pc)
	c.regs.Set(c.pc, v+int64(c.OpcodeLength(addr)))
	return addr
}

// OpcodeLength implements the Disassembler interface.
func (c *Stub) OpcodeLength(addr address.Address) int {
	return 1
}

// Disassemble implements the Disassembler interface.
func (c *Stub) Disassemble(addr address.Address) string {
	return "[disassembly unsupported]"
}
