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

package address

import (
	"fmt"
)

// Space describes how the offset part of an Address is to be interpreted.
type Space int

// List of valid Space values.
const (
	Physical Space = iota
	Linear
)

// Mode describes the addressing mode the Address was formed in.
type Mode int

// List of valid Mode values.
const (
	Real Mode = iota
	Protected
)

// SegmentUnused is the Segment field value for addresses with no segment
// part.
const SegmentUnused = -1

// Address identifies a location in a bus's space.
type Address struct {
	Offset  uint64
	Segment int
	Space   Space
	Mode    Mode
}

// New creates an Address from a bare physical offset.
func New(offset uint64) Address {
	return Address{
		Offset:  offset,
		Segment: SegmentUnused,
		Space:   Physical,
		Mode:    Real,
	}
}

// NewSegmented creates an Address from a segment:offset pair.
func NewSegmented(segment int, offset uint64, mode Mode) Address {
	return Address{
		Offset:  offset,
		Segment: segment,
		Space:   Linear,
		Mode:    mode,
	}
}

// String implements the Stringer interface. Renders "seg:off" for segmented
// addresses and a bare hex offset otherwise.
func (a Address) String() string {
	if a.Segment != SegmentUnused {
		return fmt.Sprintf("%04x:%04x", a.Segment, a.Offset)
	}
	return fmt.Sprintf("%#08x", a.Offset)
}

// Advance the address offset by n. This is the only way an Address is ever
// mutated in place.
func (a *Address) Advance(n uint64) {
	a.Offset += n
}

// Plus returns a copy of the address with the offset advanced by n.
func (a Address) Plus(n uint64) Address {
	a.Offset += n
	return a
}

// Compare two addresses by offset. Returns a negative number if a is lower
// than b, a positive number if higher and zero if the offsets are equal.
func Compare(a, b Address) int {
	switch {
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}
