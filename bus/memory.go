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

package bus

import (
	"github.com/polydbg/polydbg/curated"
)

// error patterns returned by the Memory type.
const (
	UnknownTrap  = "unknown trap (%d)"
	BlockOverlap = "block %s overlaps an existing block"
)

type memBlock struct {
	name string
	base uint64
	data []byte
}

// Name implements the Block interface.
func (b *memBlock) Name() string {
	return b.name
}

// Base implements the Block interface.
func (b *memBlock) Base() uint64 {
	return b.base
}

// Size implements the Block interface.
func (b *memBlock) Size() uint64 {
	return uint64(len(b.data))
}

type trapEntry struct {
	id TrapID
	f  TrapFunc
}

type trapTable map[uint64][]trapEntry

func (tbl trapTable) install(offset uint64, f TrapFunc, id TrapID) {
	tbl[offset] = append(tbl[offset], trapEntry{id: id, f: f})
}

func (tbl trapTable) remove(offset uint64, id TrapID) error {
	entries := tbl[offset]
	for i := range entries {
		if entries[i].id == id {
			entries = append(entries[:i], entries[i+1:]...)
			if len(entries) == 0 {
				delete(tbl, offset)
			} else {
				tbl[offset] = entries
			}
			return nil
		}
	}
	return curated.Errorf(UnknownTrap, id)
}

func (tbl trapTable) fire(offset uint64, block Block, value int64) {
	for _, e := range tbl[offset] {
		e.f(block, offset, value)
	}
}

// Memory is the reference Bus implementation: a list of named byte blocks
// and a port space, with trap tables over both.
type Memory struct {
	blocks []*memBlock
	ports  map[uint64]int64

	readTraps   trapTable
	writeTraps  trapTable
	inputTraps  trapTable
	outputTraps trapTable
	readAll     []trapEntry

	nextID TrapID
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{
		ports:       make(map[uint64]int64),
		readTraps:   make(trapTable),
		writeTraps:  make(trapTable),
		inputTraps:  make(trapTable),
		outputTraps: make(trapTable),
	}
}

// AddBlock adds a named storage block to the bus.
func (m *Memory) AddBlock(name string, base uint64, size uint64) error {
	for _, b := range m.blocks {
		if base < b.base+uint64(len(b.data)) && b.base < base+size {
			return curated.Errorf(BlockOverlap, name)
		}
	}
	m.blocks = append(m.blocks, &memBlock{
		name: name,
		base: base,
		data: make([]byte, size),
	})
	return nil
}

func (m *Memory) findBlock(offset uint64) *memBlock {
	for _, b := range m.blocks {
		if offset >= b.base && offset < b.base+uint64(len(b.data)) {
			return b
		}
	}
	return nil
}

func (m *Memory) allocateID() TrapID {
	m.nextID++
	return m.nextID
}

// TrapRead implements the Bus interface.
func (m *Memory) TrapRead(offset uint64, f TrapFunc) (TrapID, error) {
	id := m.allocateID()
	m.readTraps.install(offset, f, id)
	return id, nil
}

// UntrapRead implements the Bus interface.
func (m *Memory) UntrapRead(offset uint64, id TrapID) error {
	return m.readTraps.remove(offset, id)
}

// TrapWrite implements the Bus interface.
func (m *Memory) TrapWrite(offset uint64, f TrapFunc) (TrapID, error) {
	id := m.allocateID()
	m.writeTraps.install(offset, f, id)
	return id, nil
}

// UntrapWrite implements the Bus interface.
func (m *Memory) UntrapWrite(offset uint64, id TrapID) error {
	return m.writeTraps.remove(offset, id)
}

// TrapInput implements the Bus interface.
func (m *Memory) TrapInput(port uint64, f TrapFunc) (TrapID, error) {
	id := m.allocateID()
	m.inputTraps.install(port, f, id)
	return id, nil
}

// UntrapInput implements the Bus interface.
func (m *Memory) UntrapInput(port uint64, id TrapID) error {
	return m.inputTraps.remove(port, id)
}

// TrapOutput implements the Bus interface.
func (m *Memory) TrapOutput(port uint64, f TrapFunc) (TrapID, error) {
	id := m.allocateID()
	m.outputTraps.install(port, f, id)
	return id, nil
}

// UntrapOutput implements the Bus interface.
func (m *Memory) UntrapOutput(port uint64, id TrapID) error {
	return m.outputTraps.remove(port, id)
}

// TrapReadAll implements the Bus interface.
func (m *Memory) TrapReadAll(f TrapFunc) (TrapID, error) {
	id := m.allocateID()
	m.readAll = append(m.readAll, trapEntry{id: id, f: f})
	return id, nil
}

// UntrapReadAll implements the Bus interface.
func (m *Memory) UntrapReadAll(id TrapID) error {
	for i := range m.readAll {
		if m.readAll[i].id == id {
			m.readAll = append(m.readAll[:i], m.readAll[i+1:]...)
			return nil
		}
	}
	return curated.Errorf(UnknownTrap, id)
}

// Read implements the Bus interface.
func (m *Memory) Read(offset uint64) (int64, bool) {
	b := m.findBlock(offset)

	var blk Block
	var v int64
	if b != nil {
		blk = b
		v = int64(b.data[offset-b.base])
	}

	for _, e := range m.readAll {
		e.f(blk, offset, v)
	}
	m.readTraps.fire(offset, blk, v)

	return v, b != nil
}

// Write implements the Bus interface.
func (m *Memory) Write(offset uint64, value int64) bool {
	b := m.findBlock(offset)

	var blk Block
	if b != nil {
		blk = b
		b.data[offset-b.base] = byte(value)
	}

	m.writeTraps.fire(offset, blk, value)

	return b != nil
}

// In implements the Bus interface.
func (m *Memory) In(port uint64) (int64, bool) {
	v := m.ports[port]
	m.inputTraps.fire(port, nil, v)
	return v, true
}

// Out implements the Bus interface.
func (m *Memory) Out(port uint64, value int64) bool {
	m.ports[port] = value
	m.outputTraps.fire(port, nil, value)
	return true
}

// TrapCount returns the number of discrete traps installed on an offset,
// across the read and write tables. Used by tests to verify trap round
// trips.
func (m *Memory) TrapCount(offset uint64) int {
	return len(m.readTraps[offset]) + len(m.writeTraps[offset])
}
