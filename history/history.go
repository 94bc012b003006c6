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

package history

import (
	"fmt"

	"github.com/polydbg/polydbg/address"
	"github.com/polydbg/polydbg/arch"
	"github.com/polydbg/polydbg/bus"
)

// Capacity is the number of fetched addresses the ring holds.
const Capacity = 100000

// an invalid entry marks a gap in the ring. the backward walk stops at a
// gap.
type entry struct {
	offset uint64
	valid  bool
}

// Recorder is the ring buffer of fetched addresses. While enabled, a
// structural read trap on the bus feeds every fetch into the ring.
type Recorder struct {
	bus  bus.Bus
	dasm arch.Disassembler

	// when the guard predicate returns true the structural trap drops the
	// fetch. used to keep debugger-initiated reads out of the ring
	guard func() bool

	capacity int
	ring     []entry
	cursor   int
	trapID   bus.TrapID
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type.
func NewRecorder(b bus.Bus, dasm arch.Disassembler) *Recorder {
	return &Recorder{
		bus:      b,
		dasm:     dasm,
		capacity: Capacity,
	}
}

// SetCapacity changes the ring capacity. Takes effect at the next Enable().
func (r *Recorder) SetCapacity(n int) {
	if n > 0 {
		r.capacity = n
	}
}

// SetGuard attaches a predicate consulted by the structural trap before
// recording. A true return drops the fetch.
func (r *Recorder) SetGuard(guard func() bool) {
	r.guard = guard
}

// Enabled returns true if the ring is allocated and recording.
func (r *Recorder) Enabled() bool {
	return r.ring != nil
}

// Enable recording. Enabling allocates the ring and installs the structural
// read trap; disabling removes the trap and discards the ring.
func (r *Recorder) Enable(on bool) error {
	if on == r.Enabled() {
		return nil
	}

	if on {
		id, err := r.bus.TrapReadAll(func(blk bus.Block, offset uint64, value int64) {
			if r.guard != nil && r.guard() {
				return
			}
			r.Record(address.New(offset))
		})
		if err != nil {
			return err
		}
		r.trapID = id
		r.ring = make([]entry, r.capacity)
		r.cursor = 0
		return nil
	}

	err := r.bus.UntrapReadAll(r.trapID)
	r.ring = nil
	return err
}

// Record a fetched address, advancing and wrapping the write cursor.
func (r *Recorder) Record(addr address.Address) {
	if r.ring == nil {
		return
	}
	r.ring[r.cursor] = entry{offset: addr.Offset, valid: true}
	r.cursor = (r.cursor + 1) % len(r.ring)
}

// Clear marks every entry as a gap without discarding the ring.
func (r *Recorder) Clear() {
	for i := range r.ring {
		r.ring[i] = entry{}
	}
	r.cursor = 0
}

// recent returns the most recent valid offsets in chronological order. the
// walk backward from the cursor stops at a gap or after one full wrap.
func (r *Recorder) recent() []uint64 {
	if r.ring == nil {
		return nil
	}

	offsets := make([]uint64, 0, len(r.ring))
	for i := 0; i < len(r.ring); i++ {
		pos := (r.cursor - 1 - i + len(r.ring)) % len(r.ring)
		if !r.ring[pos].valid {
			break
		}
		offsets = append(offsets, r.ring[pos].offset)
	}

	// reverse into chronological order
	for i, j := 0, len(offsets)-1; i < j; i, j = i+1, j-1 {
		offsets[i], offsets[j] = offsets[j], offsets[i]
	}

	return offsets
}

// Recent returns up to n of the most recent recorded offsets in
// chronological order.
func (r *Recorder) Recent(n int) []uint64 {
	offsets := r.recent()
	if len(offsets) > n {
		offsets = offsets[len(offsets)-n:]
	}
	return offsets
}

// QueryBackward walks the ring backward from the write cursor, grouping
// consecutive offsets into instructions using the disassembler's opcode
// lengths, and renders the instructions leading up to the cursor. The walk
// starts `back` instructions before the cursor and yields at most `limit`
// lines.
func (r *Recorder) QueryBackward(back int, limit int) []string {
	offsets := r.recent()
	if len(offsets) == 0 {
		return nil
	}

	// group from the oldest end. an instruction claims its start offset and
	// any immediately consecutive offsets up to its opcode length.
	starts := make([]uint64, 0, len(offsets))
	i := 0
	for i < len(offsets) {
		starts = append(starts, offsets[i])

		n := r.dasm.OpcodeLength(address.New(offsets[i]))
		if n < 1 {
			n = 1
		}

		j := 1
		for j < n && i+j < len(offsets) && offsets[i+j] == offsets[i]+uint64(j) {
			j++
		}
		i += j
	}

	begin := len(starts) - back
	if begin < 0 {
		begin = 0
	}

	lines := make([]string, 0, limit)
	for k := begin; k < len(starts) && len(lines) < limit; k++ {
		addr := address.New(starts[k])
		lines = append(lines, fmt.Sprintf("%s  %s", addr, r.dasm.Disassemble(addr)))
	}

	return lines
}
