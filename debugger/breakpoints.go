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

package debugger

import (
	"fmt"
	"strings"

	"github.com/polydbg/polydbg/address"
	"github.com/polydbg/polydbg/bus"
	"github.com/polydbg/polydbg/curated"
	"github.com/polydbg/polydbg/debugger/terminal"
)

// error pattern for breakpoint operations.
const InvalidBreakpoint = "invalid breakpoint: %v"

// Wildcard is the break index that fans an operation out over every
// currently defined breakpoint.
const Wildcard = -2

// BreakType is the kind of bus access a breakpoint watches.
type BreakType int

// List of break types.
const (
	BreakRead BreakType = iota
	BreakWrite
	BreakInput
	BreakOutput
)

func (t BreakType) String() string {
	switch t {
	case BreakRead:
		return "read"
	case BreakWrite:
		return "write"
	case BreakInput:
		return "input"
	case BreakOutput:
		return "output"
	}
	return "unknown"
}

// command returns the console command letter pair that sets this type of
// breakpoint.
func (t BreakType) command() string {
	switch t {
	case BreakRead:
		return "br"
	case BreakWrite:
		return "bw"
	case BreakInput:
		return "bi"
	case BreakOutput:
		return "bo"
	}
	return "b?"
}

// one per registered breakpoint. the enabled field is explicit state; an
// enabled entry has a live bus trap, a disabled one does not.
type breakEntry struct {
	offset  uint64
	enabled bool
	trap    bus.TrapID
}

// breakRef maps a stable user-facing break index to the entry's storage.
type breakRef struct {
	typ  BreakType
	slot int
}

// breakpoints is the breakpoint manager. entries are stored per-type in
// sparse slices; a cleared slot is nilled and the slice emptied when every
// slot is nil. the global index slice allocates the stable break indexes.
type breakpoints struct {
	dbg     *Debugger
	entries [4][]*breakEntry
	index   []*breakRef
}

// newBreakpoints is the preferred method of initialisation for the
// breakpoints type.
func newBreakpoints(dbg *Debugger) *breakpoints {
	return &breakpoints{dbg: dbg}
}

// count returns the number of currently defined breakpoints, enabled or
// disabled.
func (bk *breakpoints) count() int {
	n := 0
	for _, ref := range bk.index {
		if ref != nil {
			n++
		}
	}
	return n
}

func (bk *breakpoints) entry(idx int) *breakEntry {
	if idx < 0 || idx >= len(bk.index) || bk.index[idx] == nil {
		return nil
	}
	ref := bk.index[idx]
	return bk.entries[ref.typ][ref.slot]
}

// install the bus trap for a breakpoint.
func (bk *breakpoints) install(typ BreakType, offset uint64) (bus.TrapID, error) {
	f := func(block bus.Block, offset uint64, value int64) {
		bk.dbg.trapHit(typ, block, offset, value)
	}

	switch typ {
	case BreakRead:
		return bk.dbg.bus.TrapRead(offset, f)
	case BreakWrite:
		return bk.dbg.bus.TrapWrite(offset, f)
	case BreakInput:
		return bk.dbg.bus.TrapInput(offset, f)
	case BreakOutput:
		return bk.dbg.bus.TrapOutput(offset, f)
	}
	return 0, curated.Errorf(InvalidBreakpoint, fmt.Sprintf("unknown break type (%d)", typ))
}

// remove the bus trap for a breakpoint.
func (bk *breakpoints) remove(typ BreakType, offset uint64, id bus.TrapID) error {
	switch typ {
	case BreakRead:
		return bk.dbg.bus.UntrapRead(offset, id)
	case BreakWrite:
		return bk.dbg.bus.UntrapWrite(offset, id)
	case BreakInput:
		return bk.dbg.bus.UntrapInput(offset, id)
	case BreakOutput:
		return bk.dbg.bus.UntrapOutput(offset, id)
	}
	return curated.Errorf(InvalidBreakpoint, fmt.Sprintf("unknown break type (%d)", typ))
}

// set a breakpoint. fails if the address is already present for the type,
// enabled or disabled. the first breakpoint in existence enables instruction
// history as a side effect.
func (bk *breakpoints) set(typ BreakType, offset uint64) (int, error) {
	for _, e := range bk.entries[typ] {
		if e != nil && e.offset == offset {
			return -1, curated.Errorf(InvalidBreakpoint,
				fmt.Sprintf("%s breakpoint already exists at %s", typ, address.New(offset)))
		}
	}

	id, err := bk.install(typ, offset)
	if err != nil {
		return -1, curated.Errorf(InvalidBreakpoint, err)
	}

	e := &breakEntry{offset: offset, enabled: true, trap: id}

	// reuse a free slot in the type's storage before growing it
	slot := -1
	for i, s := range bk.entries[typ] {
		if s == nil {
			slot = i
			break
		}
	}
	if slot == -1 {
		slot = len(bk.entries[typ])
		bk.entries[typ] = append(bk.entries[typ], nil)
	}
	bk.entries[typ][slot] = e

	// allocate a free global index the same way
	idx := -1
	for i, ref := range bk.index {
		if ref == nil {
			idx = i
			break
		}
	}
	if idx == -1 {
		idx = len(bk.index)
		bk.index = append(bk.index, nil)
	}
	bk.index[idx] = &breakRef{typ: typ, slot: slot}

	if bk.count() == 1 && !bk.dbg.hist.Enabled() {
		if err := bk.dbg.hist.Enable(true); err != nil {
			bk.dbg.printLine(terminal.StyleError, "%v", err)
		}
	}

	return idx, nil
}

// clear a breakpoint by index. the bus is returned to its pre-breakpoint
// trap state. clearing the last breakpoint disables instruction history
// unless forced history mode is active.
func (bk *breakpoints) clear(idx int) error {
	if idx == Wildcard {
		for i := range bk.index {
			if bk.index[i] != nil {
				if err := bk.clear(i); err != nil {
					return err
				}
			}
		}
		return nil
	}

	e := bk.entry(idx)
	if e == nil {
		return curated.Errorf(InvalidBreakpoint, fmt.Sprintf("invalid break index (%d)", idx))
	}
	ref := bk.index[idx]

	if e.enabled {
		if err := bk.remove(ref.typ, e.offset, e.trap); err != nil {
			return curated.Errorf(InvalidBreakpoint, err)
		}
	}

	bk.entries[ref.typ][ref.slot] = nil

	// compact: empty the type's storage when every slot is nil
	empty := true
	for _, s := range bk.entries[ref.typ] {
		if s != nil {
			empty = false
			break
		}
	}
	if empty {
		bk.entries[ref.typ] = bk.entries[ref.typ][:0]
	}

	bk.index[idx] = nil

	if bk.count() == 0 && !bk.dbg.forcedHistory {
		if err := bk.dbg.hist.Enable(false); err != nil {
			bk.dbg.printLine(terminal.StyleError, "%v", err)
		}
	}

	return nil
}

// enable or disable a breakpoint by index. the bus trap is re-added or
// removed; the stable index is untouched. a no-op when the breakpoint is
// already in the target state (reported, not fatal).
func (bk *breakpoints) enable(idx int, on bool) error {
	if idx == Wildcard {
		for i := range bk.index {
			if bk.index[i] != nil {
				if err := bk.enable(i, on); err != nil {
					return err
				}
			}
		}
		return nil
	}

	e := bk.entry(idx)
	if e == nil {
		return curated.Errorf(InvalidBreakpoint, fmt.Sprintf("invalid break index (%d)", idx))
	}
	ref := bk.index[idx]

	if e.enabled == on {
		bk.dbg.printLine(terminal.StyleFeedback, "breakpoint %d already %s", idx, enableWord(on))
		return nil
	}

	if on {
		id, err := bk.install(ref.typ, e.offset)
		if err != nil {
			return curated.Errorf(InvalidBreakpoint, err)
		}
		e.trap = id
	} else {
		if err := bk.remove(ref.typ, e.offset, e.trap); err != nil {
			return curated.Errorf(InvalidBreakpoint, err)
		}
	}
	e.enabled = on

	return nil
}

func enableWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

// list renders one line per breakpoint for the bl command.
func (bk *breakpoints) list() []string {
	lines := make([]string, 0, len(bk.index))
	for i, ref := range bk.index {
		if ref == nil {
			continue
		}
		e := bk.entries[ref.typ][ref.slot]
		lines = append(lines, fmt.Sprintf("%2d: %s %s (%s)",
			i, ref.typ.command(), address.New(e.offset), enableWord(e.enabled)))
	}
	return lines
}

// commandString returns the semicolon-joined command list that reconstructs
// every breakpoint, including ";bd <index>" per disabled entry. used by the
// persisted restart state.
func (bk *breakpoints) commandString() string {
	// replaying the set commands allocates indexes densely in emission
	// order, so the disable commands must reference positions in the
	// emitted list rather than the live (possibly holed) index table.
	cmds := make([]string, 0, len(bk.index))
	disable := make([]string, 0, len(bk.index))
	for _, ref := range bk.index {
		if ref == nil {
			continue
		}
		e := bk.entries[ref.typ][ref.slot]
		if !e.enabled {
			disable = append(disable, fmt.Sprintf("bd %d", len(cmds)))
		}
		cmds = append(cmds, fmt.Sprintf("%s 0x%x", ref.typ.command(), e.offset))
	}
	cmds = append(cmds, disable...)

	return strings.Join(cmds, ";")
}

// trapHit is the bus-trap callback for discrete breakpoints. a nil block
// signals an access outside any known block and always stops the machine.
// the re-entrancy guard suppresses breaks triggered by the debugger's own
// bus accesses.
func (dbg *Debugger) trapHit(typ BreakType, block bus.Block, offset uint64, value int64) {
	if dbg.guard > 0 {
		return
	}

	if block == nil {
		dbg.halt(fmt.Sprintf("break on unknown access at %s", address.New(offset)))
		return
	}

	dbg.halt(fmt.Sprintf("break on %s at %s (value %#x)", typ, address.New(offset), value))
}

// armInstructionCount arms (n > 0) or disarms (n <= 0) the
// instruction-count break condition. orthogonal to discrete breakpoints: a
// structural read trap decrements the counter on every fetch and stops the
// machine at zero.
func (dbg *Debugger) armInstructionCount(n int) error {
	if dbg.countTrapOn {
		if err := dbg.bus.UntrapReadAll(dbg.countTrap); err != nil {
			return err
		}
		dbg.countTrapOn = false
	}

	dbg.instructionCount = 0
	if n <= 0 {
		return nil
	}

	id, err := dbg.bus.TrapReadAll(func(block bus.Block, offset uint64, value int64) {
		if dbg.guard > 0 || dbg.instructionCount == 0 {
			return
		}
		dbg.instructionCount--
		if dbg.instructionCount == 0 {
			dbg.halt("break on instruction count")
		}
	})
	if err != nil {
		return err
	}

	dbg.countTrap = id
	dbg.countTrapOn = true
	dbg.instructionCount = n

	return nil
}
