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
	"strconv"
	"strings"

	"github.com/polydbg/polydbg/address"
	"github.com/polydbg/polydbg/curated"
	"github.com/polydbg/polydbg/debugger/script"
	"github.com/polydbg/polydbg/debugger/terminal"
	"github.com/polydbg/polydbg/expression"
	"github.com/polydbg/polydbg/logger"
)

// help listings per command family, shown when the sub-letter is not
// recognised.
var familyHelp = map[byte]string{
	'b': `breakpoint commands:
  br <addr>   break on read        bw <addr>   break on write
  bi <port>   break on input       bo <port>   break on output
  bc <idx|*>  clear breakpoint     bl          list breakpoints
  bd <idx|*>  disable breakpoint   be <idx|*>  enable breakpoint
  bn [count]  break after count    bm [mask]   break on message mask`,
	'd': `dump commands:
  db <addr> [n]  dump bytes        dw <addr> [n]  dump words
  dd <addr> [n]  dump dwords       dy             dump variables
  dh [n]         dump history      ds             dump symbols
  dl [n]         dump log`,
	's': `set commands:
  sh             toggle instruction history
  sb <base>      set default radix (2, 8, 10, 16)
  sy <name> [expr]  set (or show) a variable
  sd <name>      delete a variable
  sv [file]      write structure graph (graphviz)
  script <file>  run a lua script against the console`,
}

// dispatch maps one whitespace-tokenised console command onto the debugging
// core. every command produces a line (or block) of text; failures are
// reported, never fatal.
func (dbg *Debugger) dispatch(input string) error {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]

	if cmd == "quit" {
		dbg.Quit()
		return nil
	}
	if cmd == "script" {
		return dbg.cmdScript(args)
	}

	// single-letter commands match only when the token is exactly one
	// letter. a longer token never matches on its first letter alone
	if len(cmd) == 1 {
		switch cmd[0] {
		case 'e':
			return dbg.cmdEdit(args)
		case 'g':
			return dbg.cmdGo(args)
		case 'h':
			dbg.halt("halted by user")
			dbg.printLine(terminal.StyleFeedback, "machine halted")
			return nil
		case 'p':
			return dbg.cmdPrint(args)
		case 't':
			return dbg.cmdStep(args)
		case 'u':
			return dbg.cmdUnassemble(args)
		}
	}

	switch cmd[0] {
	case 'b':
		return dbg.cmdBreak(cmd, args)
	case 'd':
		return dbg.cmdDump(cmd, args)
	case 'r':
		return dbg.cmdRegister(cmd, args)
	case 's':
		return dbg.cmdSet(cmd, args)
	}

	dbg.printLine(terminal.StyleFeedback, "unrecognized command (%s)", tokens[0])
	return nil
}

// evalExpr evaluates the joined tokens as one expression.
func (dbg *Debugger) evalExpr(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, curated.Errorf(expressionMissing)
	}
	return dbg.eval.Evaluate(strings.Join(args, " "))
}

const expressionMissing = "expression required"

// parseIndex interprets a break index argument: a decimal integer or the
// wildcard "*".
func parseIndex(tok string) (int, error) {
	if tok == "*" {
		return Wildcard, nil
	}
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, curated.Errorf(InvalidBreakpoint, fmt.Sprintf("invalid break index (%s)", tok))
	}
	return idx, nil
}

func (dbg *Debugger) cmdBreak(cmd string, args []string) error {
	if len(cmd) != 2 {
		dbg.printLine(terminal.StyleHelp, familyHelp['b'])
		return nil
	}

	// the set commands
	var typ BreakType
	set := true
	switch cmd[1] {
	case 'r':
		typ = BreakRead
	case 'w':
		typ = BreakWrite
	case 'i':
		typ = BreakInput
	case 'o':
		typ = BreakOutput
	default:
		set = false
	}
	if set {
		v, err := dbg.evalExpr(args)
		if err != nil {
			return err
		}
		idx, err := dbg.brk.set(typ, uint64(v))
		if err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "breakpoint %d set on %s at %s",
			idx, typ, address.New(uint64(v)))
		return nil
	}

	switch cmd[1] {
	case 'l':
		lines := dbg.brk.list()
		if len(lines) == 0 {
			dbg.printLine(terminal.StyleFeedback, "no breakpoints")
			return nil
		}
		for _, l := range lines {
			dbg.printLine(terminal.StyleFeedback, l)
		}
		return nil

	case 'c', 'd', 'e':
		if len(args) != 1 {
			dbg.printLine(terminal.StyleHelp, familyHelp['b'])
			return nil
		}
		idx, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		switch cmd[1] {
		case 'c':
			if err := dbg.brk.clear(idx); err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "breakpoint cleared")
		case 'd':
			if err := dbg.brk.enable(idx, false); err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "breakpoint disabled")
		case 'e':
			if err := dbg.brk.enable(idx, true); err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "breakpoint enabled")
		}
		return nil

	case 'n':
		if len(args) == 0 {
			dbg.printLine(terminal.StyleFeedback, "instruction count: %d", dbg.instructionCount)
			return nil
		}
		v, err := dbg.evalExpr(args)
		if err != nil {
			return err
		}
		if err := dbg.armInstructionCount(int(v)); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "break after %d instructions", v)
		return nil

	case 'm':
		if len(args) == 0 {
			dbg.printLine(terminal.StyleFeedback, "message mask: %#x", dbg.messageMask)
			return nil
		}
		v, err := dbg.evalExpr(args)
		if err != nil {
			return err
		}
		dbg.messageMask = v
		dbg.printLine(terminal.StyleFeedback, "message mask: %#x", dbg.messageMask)
		return nil
	}

	dbg.printLine(terminal.StyleHelp, familyHelp['b'])
	return nil
}

func (dbg *Debugger) cmdDump(cmd string, args []string) error {
	if len(cmd) != 2 {
		dbg.printLine(terminal.StyleHelp, familyHelp['d'])
		return nil
	}

	switch cmd[1] {
	case 'b', 'w', 'd':
		width := map[byte]uint64{'b': 1, 'w': 2, 'd': 4}[cmd[1]]
		if len(args) == 0 {
			dbg.printLine(terminal.StyleHelp, familyHelp['d'])
			return nil
		}
		v, err := dbg.evalExpr(args[:1])
		if err != nil {
			return err
		}
		count := int64(16)
		if len(args) > 1 {
			if count, err = dbg.evalExpr(args[1:]); err != nil {
				return err
			}
		}
		dbg.dumpMemory(uint64(v), width, count)
		return nil

	case 'y':
		names := dbg.vars.List()
		if len(names) == 0 {
			dbg.printLine(terminal.StyleFeedback, "no variables")
			return nil
		}
		for _, n := range names {
			v, _ := dbg.vars.Get(n)
			if fix, ok := dbg.vars.Fixup(n); ok {
				dbg.printLine(terminal.StyleFeedback, "%s = %s (fixup: %s)", n, dbg.formatValue(v), fix)
			} else {
				dbg.printLine(terminal.StyleFeedback, "%s = %s", n, dbg.formatValue(v))
			}
		}
		return nil

	case 'h':
		back := 10
		if len(args) > 0 {
			v, err := dbg.evalExpr(args)
			if err != nil {
				return err
			}
			back = int(v)
		}
		if !dbg.hist.Enabled() {
			dbg.printLine(terminal.StyleFeedback, "instruction history is not enabled")
			return nil
		}
		var lines []string
		dbg.guarded(func() {
			lines = dbg.hist.QueryBackward(back, back)
		})
		for _, l := range lines {
			dbg.printLine(terminal.StyleInstruction, l)
		}
		return nil

	case 's':
		if dbg.sym.Len() == 0 {
			dbg.printLine(terminal.StyleFeedback, "no symbols")
			return nil
		}
		dbg.printLine(terminal.StyleFeedback, dbg.sym.String())
		return nil

	case 'l':
		if len(args) > 0 {
			v, err := dbg.evalExpr(args)
			if err != nil {
				return err
			}
			logger.Tail(dbg.printStyle(terminal.StyleLog), int(v))
			return nil
		}
		logger.Write(dbg.printStyle(terminal.StyleLog))
		return nil
	}

	dbg.printLine(terminal.StyleHelp, familyHelp['d'])
	return nil
}

// dumpMemory renders count units of the given byte width, eight units per
// line, with the re-entrancy guard raised.
func (dbg *Debugger) dumpMemory(offset uint64, width uint64, count int64) {
	dbg.guarded(func() {
		var line strings.Builder
		for i := int64(0); i < count; i++ {
			if i%8 == 0 {
				if line.Len() > 0 {
					dbg.printLine(terminal.StyleFeedback, line.String())
					line.Reset()
				}
				line.WriteString(fmt.Sprintf("%s  ", address.New(offset)))
			}

			var v uint64
			ok := true
			for b := uint64(0); b < width; b++ {
				u, valid := dbg.bus.Read(offset + b)
				if !valid {
					ok = false
					break
				}
				v |= (uint64(u) & 0xff) << (8 * b)
			}
			if !ok {
				line.WriteString(strings.Repeat("?", int(width*2)) + " ")
			} else {
				line.WriteString(fmt.Sprintf("%0*x ", int(width*2), v))
			}
			offset += width
		}
		if line.Len() > 0 {
			dbg.printLine(terminal.StyleFeedback, line.String())
		}
	})
}

func (dbg *Debugger) cmdEdit(args []string) error {
	if len(args) < 2 {
		dbg.printLine(terminal.StyleFeedback, "usage: e <addr> <bytes...>")
		return nil
	}

	v, err := dbg.evalExpr(args[:1])
	if err != nil {
		return err
	}
	offset := uint64(v)

	values := make([]int64, 0, len(args)-1)
	for _, a := range args[1:] {
		b, err := dbg.eval.Evaluate(a)
		if err != nil {
			return err
		}
		values = append(values, b)
	}

	dbg.guarded(func() {
		for i, b := range values {
			if !dbg.bus.Write(offset+uint64(i), b) {
				dbg.printLine(terminal.StyleError, "no memory at %s", address.New(offset+uint64(i)))
				return
			}
		}
	})

	dbg.printLine(terminal.StyleFeedback, "%d byte(s) written at %s", len(values), address.New(offset))
	return nil
}

func (dbg *Debugger) cmdGo(args []string) error {
	if len(args) > 0 {
		v, err := dbg.evalExpr(args)
		if err != nil {
			return err
		}
		dbg.setPC(uint64(v))
	}

	if dbg.sched == nil {
		dbg.printLine(terminal.StyleError, "no scheduler attached")
		return nil
	}
	dbg.sched.Run()
	if o := dbg.Outcome(); o.Halt() {
		dbg.printLine(terminal.StyleFeedback, o.Reason())
	}
	return nil
}

// setPC writes the program counter. the PC register is assumed to be named
// "PC" or, failing that, to be the first register the CPU names.
func (dbg *Debugger) setPC(offset uint64) {
	if dbg.cpu.SetRegister("PC", int64(offset)) {
		return
	}
	names := dbg.cpu.RegisterNames()
	if len(names) > 0 {
		dbg.cpu.SetRegister(names[0], int64(offset))
	}
}

func (dbg *Debugger) cmdPrint(args []string) error {
	if len(args) == 0 {
		dbg.printLine(terminal.StyleFeedback, "usage: p <expr>")
		return nil
	}

	expr := strings.Join(args, " ")
	v, err := dbg.eval.Evaluate(expr)
	if err != nil {
		return err
	}

	dbg.printLine(terminal.StyleFeedback, "%s = %s", expr, dbg.formatValue(v))
	return nil
}

// formatValue renders a value in the evaluator's current default radix.
func (dbg *Debugger) formatValue(v int64) string {
	return strconv.FormatInt(v, dbg.eval.Base())
}

func (dbg *Debugger) cmdRegister(cmd string, args []string) error {
	if cmd == "r" {
		for _, n := range dbg.cpu.RegisterNames() {
			v, _ := dbg.cpu.Register(n)
			dbg.printLine(terminal.StyleFeedback, "%s = %s", n, dbg.formatValue(v))
		}
		return nil
	}

	name := strings.ToUpper(cmd[1:])
	if len(args) == 0 {
		v, ok := dbg.cpu.Register(name)
		if !ok {
			dbg.printLine(terminal.StyleFeedback, "no such register (%s)", name)
			return nil
		}
		dbg.printLine(terminal.StyleFeedback, "%s = %s", name, dbg.formatValue(v))
		return nil
	}

	v, err := dbg.evalExpr(args)
	if err != nil {
		return err
	}
	if !dbg.cpu.SetRegister(name, v) {
		dbg.printLine(terminal.StyleFeedback, "no such register (%s)", name)
		return nil
	}
	dbg.printLine(terminal.StyleFeedback, "%s = %s", name, dbg.formatValue(v))
	return nil
}

func (dbg *Debugger) cmdSet(cmd string, args []string) error {
	if len(cmd) != 2 {
		dbg.printLine(terminal.StyleHelp, familyHelp['s'])
		return nil
	}

	switch cmd[1] {
	case 'h':
		return dbg.toggleHistory()

	case 'b':
		v, err := dbg.evalExpr(args)
		if err != nil {
			return err
		}
		switch v {
		case 2, 8, 10, 16:
			dbg.eval.SetBase(int(v))
			dbg.printLine(terminal.StyleFeedback, "default radix is now %d", v)
		default:
			dbg.printLine(terminal.StyleFeedback, "unsupported radix (%d)", v)
		}
		return nil

	case 'y':
		return dbg.setVariable(args)

	case 'd':
		if len(args) != 1 {
			dbg.printLine(terminal.StyleHelp, familyHelp['s'])
			return nil
		}
		name := strings.ToUpper(args[0])
		if !dbg.vars.Delete(name) {
			dbg.printLine(terminal.StyleFeedback, "no such variable (%s)", name)
			return nil
		}
		dbg.printLine(terminal.StyleFeedback, "variable %s deleted", name)
		return nil

	case 'v':
		file := "polydbg_structures.dot"
		if len(args) > 0 {
			file = args[0]
		}
		return dbg.dumpStructures(file)
	}

	dbg.printLine(terminal.StyleHelp, familyHelp['s'])
	return nil
}

// setVariable implements the sy command. an expression that references
// names not yet resolvable is stored as a fixup, evaluated lazily when the
// variable is next read.
func (dbg *Debugger) setVariable(args []string) error {
	if len(args) == 0 {
		dbg.printLine(terminal.StyleHelp, familyHelp['s'])
		return nil
	}

	name := strings.ToUpper(args[0])

	if len(args) == 1 {
		v, ok := dbg.vars.Get(name)
		if !ok {
			dbg.printLine(terminal.StyleFeedback, "no such variable (%s)", name)
			return nil
		}
		dbg.printLine(terminal.StyleFeedback, "%s = %s", name, dbg.formatValue(v))
		return nil
	}

	expr := strings.Join(args[1:], " ")

	var fixups expression.Fixups
	v, err := dbg.eval.EvaluateCollect(expr, &fixups)
	if err != nil {
		return err
	}

	if fixups.Empty() {
		dbg.vars.Set(name, v, "")
	} else {
		dbg.vars.Set(name, v, expr)
	}

	dbg.printLine(terminal.StyleFeedback, "%s = %s", name, dbg.formatValue(v))
	return nil
}

// toggleHistory implements the sh command. forced history survives the
// clearing of the last breakpoint.
func (dbg *Debugger) toggleHistory() error {
	if dbg.forcedHistory {
		dbg.forcedHistory = false
		if dbg.brk.count() == 0 {
			if err := dbg.hist.Enable(false); err != nil {
				return err
			}
		}
		dbg.printLine(terminal.StyleFeedback, "instruction history off")
		return nil
	}

	dbg.forcedHistory = true
	if !dbg.hist.Enabled() {
		if err := dbg.hist.Enable(true); err != nil {
			return err
		}
	}
	dbg.printLine(terminal.StyleFeedback, "instruction history on")
	return nil
}

func (dbg *Debugger) cmdScript(args []string) error {
	if len(args) != 1 {
		dbg.printLine(terminal.StyleFeedback, "usage: script <file.lua>")
		return nil
	}

	logger.Logf("script", "running %s", args[0])
	return script.Run(dbg, args[0])
}

func (dbg *Debugger) cmdStep(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := dbg.evalExpr(args)
		if err != nil {
			return err
		}
		n = int(v)
	}

	if dbg.sched == nil {
		dbg.printLine(terminal.StyleError, "no scheduler attached")
		return nil
	}

	dbg.sched.Step(n)
	if o := dbg.Outcome(); o.Halt() {
		dbg.printLine(terminal.StyleFeedback, o.Reason())
	}

	// show where we ended up
	addr := dbg.cpu.LastFetch()
	dbg.printLine(terminal.StyleInstruction, "%s  %s", addr, dbg.cpu.Disassemble(addr))
	return nil
}

func (dbg *Debugger) cmdUnassemble(args []string) error {
	addr := dbg.cpu.LastFetch()
	n := 8

	if len(args) > 0 {
		v, err := dbg.evalExpr(args[:1])
		if err != nil {
			return err
		}
		addr = address.New(uint64(v))
	}
	if len(args) > 1 {
		v, err := dbg.evalExpr(args[1:])
		if err != nil {
			return err
		}
		n = int(v)
	}

	dbg.guarded(func() {
		for i := 0; i < n; i++ {
			// decorate with the nearest preceding symbol when there is one
			if e, d := dbg.sym.NearestBefore(addr); e != nil {
				if d == 0 {
					dbg.printLine(terminal.StyleFeedback, "%s:", e.Name)
				}
			}

			dbg.printLine(terminal.StyleInstruction, "%s  %s", addr, dbg.cpu.Disassemble(addr))

			l := dbg.cpu.OpcodeLength(addr)
			if l < 1 {
				l = 1
			}
			addr.Advance(uint64(l))
		}
	})

	return nil
}
