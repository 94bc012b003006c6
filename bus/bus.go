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

// Block describes one region of storage behind the bus.
type Block interface {
	Name() string
	Base() uint64
	Size() uint64
}

// TrapFunc is called synchronously by the bus on every matching access. A
// nil block signals an access outside any known block.
type TrapFunc func(block Block, offset uint64, value int64)

// TrapID identifies an installed trap for later removal.
type TrapID int

// Bus is the trap and access surface the debugging core requires of the
// machine's memory/IO bus.
type Bus interface {
	// discrete trap hooks on a single address/port
	TrapRead(offset uint64, f TrapFunc) (TrapID, error)
	UntrapRead(offset uint64, id TrapID) error
	TrapWrite(offset uint64, f TrapFunc) (TrapID, error)
	UntrapWrite(offset uint64, id TrapID) error
	TrapInput(port uint64, f TrapFunc) (TrapID, error)
	UntrapInput(port uint64, id TrapID) error
	TrapOutput(port uint64, f TrapFunc) (TrapID, error)
	UntrapOutput(port uint64, id TrapID) error

	// structural hook observing every read on every readable block. used
	// for instruction history, not for discrete breakpoints.
	TrapReadAll(f TrapFunc) (TrapID, error)
	UntrapReadAll(id TrapID) error

	// accesses. the boolean return is false for an offset outside any
	// known block.
	Read(offset uint64) (int64, bool)
	Write(offset uint64, value int64) bool
	In(port uint64) (int64, bool)
	Out(port uint64, value int64) bool
}
