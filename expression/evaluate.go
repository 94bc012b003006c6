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

package expression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/polydbg/polydbg/curated"
	"github.com/polydbg/polydbg/numeric"
	"github.com/polydbg/polydbg/symbols"
	"github.com/polydbg/polydbg/variables"
)

// error patterns returned by the Evaluate functions.
const (
	ParseError         = "parse error: %v"
	UndefinedReference = "undefined reference: %v"
)

// RegisterResolver is the capability the CPU collaborator provides for
// register name lookup during evaluation.
type RegisterResolver interface {
	Register(name string) (int64, bool)
}

// Fixups collects the names that failed to resolve during an evaluation.
// Supplying a sink turns resolution failure into collection: the name is
// recorded and zero substituted.
type Fixups struct {
	names []string
}

func (f *Fixups) add(name string) {
	for _, n := range f.names {
		if n == name {
			return
		}
	}
	f.names = append(f.names, name)
}

// Names returns the collected names in collection order.
func (f *Fixups) Names() []string {
	return f.names
}

// Empty returns true if nothing was collected.
func (f *Fixups) Empty() bool {
	return len(f.names) == 0
}

// fixup recursion deeper than this indicates a reference cycle.
const maxFixupDepth = 16

// Evaluator evaluates expressions over values resolved from registers,
// symbols, variables and literals.
type Evaluator struct {
	eng  *numeric.Engine
	sym  *symbols.Table
	vars *variables.Store
	reg  RegisterResolver

	base     int
	dialect  Dialect
	charBits uint

	open  string
	close string
}

// NewEvaluator is the preferred method of initialisation for the Evaluator
// type. The symbol table and variable store may be nil, in which case those
// resolution steps are skipped.
func NewEvaluator(eng *numeric.Engine, sym *symbols.Table, vars *variables.Store) *Evaluator {
	return &Evaluator{
		eng:      eng,
		sym:      sym,
		vars:     vars,
		base:     16,
		charBits: 8,
		open:     "{",
		close:    "}",
	}
}

// SetRegisters attaches the register lookup collaborator.
func (ev *Evaluator) SetRegisters(reg RegisterResolver) {
	ev.reg = reg
}

// SetBase changes the default radix for numeric literals. Valid bases are 2,
// 8, 10 and 16.
func (ev *Evaluator) SetBase(base int) {
	switch base {
	case 2, 8, 10, 16:
		ev.base = base
	}
}

// Base returns the current default radix.
func (ev *Evaluator) Base() int {
	return ev.base
}

// SetDialect selects the operator precedence table.
func (ev *Evaluator) SetDialect(d Dialect) {
	ev.dialect = d
}

// SetCharBits changes the bits-per-character used when packing a
// double-quoted literal. Valid values are 7 and 8.
func (ev *Evaluator) SetCharBits(bits uint) {
	if bits == 7 || bits == 8 {
		ev.charBits = bits
	}
}

// SetBrackets changes the group delimiter pair. The delimiters are remapped
// to the canonical pair before tokenising.
func (ev *Evaluator) SetBrackets(open, close string) {
	if open != "" && close != "" && open != close {
		ev.open = open
		ev.close = close
	}
}

// Evaluate an expression. Returns the value truncated at the default word
// width. A failure to resolve a name is a hard error.
func (ev *Evaluator) Evaluate(input string) (int64, error) {
	return ev.evaluate(input, nil)
}

// EvaluateCollect evaluates an expression, recording unresolvable names in
// the sink rather than failing. Zero substitutes for each collected name.
func (ev *Evaluator) EvaluateCollect(input string, sink *Fixups) (int64, error) {
	return ev.evaluate(input, sink)
}

func (ev *Evaluator) evaluate(input string, sink *Fixups) (int64, error) {
	if ev.open != "{" {
		input = strings.ReplaceAll(input, ev.open, "{")
		input = strings.ReplaceAll(input, ev.close, "}")
	}

	tk, err := tokenise(input)
	if err != nil {
		return 0, err
	}
	if len(tk.list) == 0 {
		return 0, curated.Errorf(ParseError, "empty expression")
	}

	r := &run{
		ev:   ev,
		base: ev.base,
		sink: sink,
		prec: ev.dialect.precedence(),
	}

	v, err := r.evalGroup(tk, false)
	if err != nil {
		return 0, err
	}

	if _, ok := tk.peek(); ok {
		return 0, curated.Errorf(ParseError, "unbalanced group")
	}

	return ev.eng.TruncateDefault(v), nil
}

// run is the state of one evaluation. the current radix lives here so that
// group recursion can scope radix overrides.
type run struct {
	ev    *Evaluator
	base  int
	sink  *Fixups
	prec  map[string]int
	depth int
}

// evalGroup evaluates tokens up to the end of input or, when inner is true,
// up to the matching group closer.
func (r *run) evalGroup(tk *tokens, inner bool) (int64, error) {
	// the default radix is restored on exit from each group
	savedBase := r.base
	defer func() {
		r.base = savedBase
	}()

	values := make([]int64, 0, 8)
	ops := make([]string, 0, 8)

	// apply the pending operator on top of the operator stack to the top two
	// values
	apply := func() error {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if len(values) < 2 {
			return curated.Errorf(ParseError, "missing operand")
		}
		src := values[len(values)-1]
		values = values[:len(values)-1]
		v, err := r.applyBinary(values[len(values)-1], op, src)
		if err != nil {
			return err
		}
		values[len(values)-1] = v
		return nil
	}

	expectValue := true
	closed := false
	unary := 0

	for !closed {
		tok, ok := tk.get()
		if !ok {
			break
		}

		if expectValue {
			switch tok {
			case "{":
				v, err := r.evalGroup(tk, true)
				if err != nil {
					return 0, err
				}
				values = append(values, r.applyUnary(unary, v))
				unary = 0
				expectValue = false

			case "}":
				return 0, curated.Errorf(ParseError, "empty group")

			case "-":
				if unary > maxUnaryDepth {
					return 0, curated.Errorf(ParseError, "too many unary operators")
				}
				unary = unary<<2 | unaryNegate

			case "~":
				if unary > maxUnaryDepth {
					return 0, curated.Errorf(ParseError, "too many unary operators")
				}
				unary = unary<<2 | unaryComplement

			case "^L":
				if unary > maxUnaryDepth {
					return 0, curated.Errorf(ParseError, "too many unary operators")
				}
				unary = unary<<2 | unaryLeadingZeros

			case "^D":
				r.base = 10
			case "^O":
				r.base = 8
			case "^B":
				r.base = 2
			case "^X":
				r.base = 16

			default:
				var v int64
				var err error
				if tok[0] == '"' || tok[0] == '\'' {
					v, err = r.packChars(tok)
				} else {
					v, err = r.resolveValue(tok)
				}
				if err != nil {
					return 0, err
				}
				values = append(values, r.applyUnary(unary, v))
				unary = 0
				expectValue = false
			}

			continue
		}

		// expecting an operator
		if tok == "}" {
			if !inner {
				return 0, curated.Errorf(ParseError, "unbalanced group")
			}
			closed = true
			continue
		}

		p, known := r.prec[tok]
		if !known {
			return 0, curated.Errorf(ParseError, fmt.Sprintf("unrecognised operator (%s)", tok))
		}

		// precedence climbing: apply pending operators of equal or higher
		// precedence before pushing the incoming operator
		for len(ops) > 0 && p <= r.prec[ops[len(ops)-1]] {
			if err := apply(); err != nil {
				return 0, err
			}
		}

		ops = append(ops, tok)
		expectValue = true
	}

	if inner && !closed {
		return 0, curated.Errorf(ParseError, "unbalanced group")
	}
	if expectValue {
		return 0, curated.Errorf(ParseError, "missing operand")
	}

	for len(ops) > 0 {
		if err := apply(); err != nil {
			return 0, err
		}
	}

	if len(values) != 1 {
		return 0, curated.Errorf(ParseError, "malformed expression")
	}

	return values[0], nil
}

// applyUnary pops the accumulated unary operators, nearest to the value
// first, truncating after each application.
func (r *run) applyUnary(unary int, v int64) int64 {
	eng := r.ev.eng
	for unary != 0 {
		switch unary & 3 {
		case unaryNegate:
			v = -v
		case unaryComplement:
			v = eng.Not(v)
		case unaryLeadingZeros:
			v = eng.LeadingZeros(v)
		}
		v = eng.TruncateDefault(v)
		unary >>= 2
	}
	return v
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (r *run) applyBinary(dst int64, op string, src int64) (int64, error) {
	eng := r.ev.eng

	var v int64

	switch op {
	case "+":
		v = dst + src
	case "-":
		v = dst - src
	case "*":
		v = eng.Multiply(dst, src)
	case "/":
		if src == 0 {
			return 0, curated.Errorf(ParseError, "division by zero")
		}
		v = dst / src
	case "%":
		if src == 0 {
			return 0, curated.Errorf(ParseError, "modulo by zero")
		}
		v = dst % src
	case "&":
		v = eng.And(dst, src)
	case "|":
		v = eng.Or(dst, src)
	case "^":
		v = eng.Xor(dst, src)
	case "<<":
		if s := uint64(src); s > 63 {
			v = 0
		} else {
			v = eng.Truncate(dst, 0, true) << s
		}
	case ">>":
		s := uint64(src)
		if s > 63 {
			s = 63
		}
		v = eng.TruncateDefault(dst) >> s
	case ">>>":
		if s := uint64(src); s > 63 {
			v = 0
		} else {
			v = int64(uint64(eng.Truncate(dst, 0, true)) >> s)
		}
	case "==":
		v = boolValue(dst == src)
	case "!=":
		v = boolValue(dst != src)
	case "<":
		v = boolValue(dst < src)
	case ">":
		v = boolValue(dst > src)
	case "<=":
		v = boolValue(dst <= src)
	case ">=":
		v = boolValue(dst >= src)
	case "&&":
		v = boolValue(dst != 0 && src != 0)
	case "||":
		v = boolValue(dst != 0 || src != 0)
	case ",,":
		half := eng.Width() / 2
		mask := int64(1)<<half - 1
		v = (eng.Truncate(dst, 0, true)&mask)<<half | (eng.Truncate(src, 0, true) & mask)
	default:
		return 0, curated.Errorf(ParseError, fmt.Sprintf("unrecognised operator (%s)", op))
	}

	return eng.TruncateDefault(v), nil
}

// resolveValue resolves a value token in strict order: register, symbol,
// variable (following any fixup), numeric literal.
func (r *run) resolveValue(tok string) (int64, error) {
	eng := r.ev.eng

	if r.ev.reg != nil {
		if v, ok := r.ev.reg.Register(tok); ok {
			return eng.TruncateDefault(v), nil
		}
	}

	if r.ev.sym != nil {
		if e := r.ev.sym.EntryByName(tok); e != nil {
			return eng.TruncateDefault(int64(e.Addr.Offset)), nil
		}
	}

	if r.ev.vars != nil {
		if fixup, ok := r.ev.vars.Fixup(tok); ok {
			if r.depth >= maxFixupDepth {
				return 0, curated.Errorf(ParseError, "fixup recursion too deep")
			}

			ftk, err := tokenise(fixup)
			if err != nil {
				return 0, err
			}

			sub := &run{
				ev:    r.ev,
				base:  r.ev.base,
				sink:  r.sink,
				prec:  r.prec,
				depth: r.depth + 1,
			}
			return sub.evalGroup(ftk, false)
		}

		if v, ok := r.ev.vars.Get(tok); ok {
			return eng.TruncateDefault(v), nil
		}
	}

	if v, ok := r.parseLiteral(tok); ok {
		return v, nil
	}

	if r.sink != nil {
		r.sink.add(tok)
		return 0, nil
	}

	return 0, curated.Errorf(UndefinedReference, tok)
}

// parseLiteral parses a numeric literal in the current radix. A
// single-digit literal always parses as decimal, whatever the radix. An
// explicit prefix (0x, 0o, 0b) overrides the radix.
func (r *run) parseLiteral(tok string) (int64, bool) {
	if len(tok) == 1 {
		if tok[0] >= '0' && tok[0] <= '9' {
			return int64(tok[0] - '0'), true
		}
		return 0, false
	}

	base := r.base
	if len(tok) > 2 && tok[0] == '0' {
		switch tok[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			base = 0
		}
	}

	u, err := strconv.ParseUint(tok, base, 64)
	if err != nil {
		return 0, false
	}

	return r.ev.eng.Truncate(int64(u), 0, true), true
}
