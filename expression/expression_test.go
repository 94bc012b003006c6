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

package expression_test

import (
	"testing"

	"github.com/polydbg/polydbg/curated"
	"github.com/polydbg/polydbg/expression"
	"github.com/polydbg/polydbg/numeric"
	"github.com/polydbg/polydbg/symbols"
	"github.com/polydbg/polydbg/test"
	"github.com/polydbg/polydbg/variables"
)

type mockRegisters map[string]int64

// Register implements the expression.RegisterResolver interface.
func (m mockRegisters) Register(name string) (int64, bool) {
	v, ok := m[name]
	return v, ok
}

func newEvaluator(width uint) (*expression.Evaluator, *variables.Store) {
	eng := numeric.NewEngine(width)
	vars := variables.NewStore()
	return expression.NewEvaluator(eng, symbols.NewTable(), vars), vars
}

func TestGrouping(t *testing.T) {
	ev, _ := newEvaluator(32)

	v, err := ev.Evaluate("2*{3+{4/2}}")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 10)
}

func TestDivisionByZero(t *testing.T) {
	ev, _ := newEvaluator(32)

	_, err := ev.Evaluate("5/0")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Has(err, expression.ParseError))

	_, err = ev.Evaluate("5%0")
	test.ExpectedFailure(t, err)
}

func TestUnary(t *testing.T) {
	ev, _ := newEvaluator(32)

	// negate of complement
	v, err := ev.Evaluate("-~5")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 6)

	v, err = ev.Evaluate("-5+6")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 1)

	// ^L counts leading zeros within the default width
	ev16, _ := newEvaluator(16)
	v, err = ev16.Evaluate("^L1")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 15)
}

func TestPrecedence(t *testing.T) {
	ev, _ := newEvaluator(32)

	v, err := ev.Evaluate("1+2*3")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 7)

	// default dialect: relational binds tighter than bitwise
	v, err = ev.Evaluate("1&3==1")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0)

	// legacy dialect: bitwise binds tighter than relational
	ev.SetDialect(expression.DialectLegacy)
	v, err = ev.Evaluate("1&3==1")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 1)
}

func TestHalfWordCombine(t *testing.T) {
	eng := numeric.NewEngine(36)
	ev := expression.NewEvaluator(eng, nil, nil)
	ev.SetDialect(expression.DialectLegacy)
	ev.SetBase(8)

	// high half-word shifted over the low half-word (18 bits each at width
	// 36)
	v, err := ev.Evaluate("1,,2")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, (int64(1)<<18)|2)

	// ,, is not part of the default dialect
	ev.SetDialect(expression.DialectDefault)
	_, err = ev.Evaluate("1,,2")
	test.ExpectedFailure(t, err)
}

func TestRadix(t *testing.T) {
	ev, _ := newEvaluator(32)

	// default radix is 16
	v, err := ev.Evaluate("ff+1")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 256)

	// single-digit literals always parse as decimal
	ev.SetBase(2)
	v, err = ev.Evaluate("5")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 5)

	v, err = ev.Evaluate("101")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 5)

	// override for the remainder of the expression
	ev.SetBase(16)
	v, err = ev.Evaluate("^D 10+10")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 20)

	// override inside a group is restored on exit
	v, err = ev.Evaluate("{^O 10}+10")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 24)

	// $ prefix normalises to hex whatever the radix
	ev.SetBase(10)
	v, err = ev.Evaluate("$10")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 16)
}

func TestCharPacking(t *testing.T) {
	ev, _ := newEvaluator(32)

	v, err := ev.Evaluate("\"AB\"")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x4142)

	ev.SetCharBits(7)
	v, err = ev.Evaluate("\"AB\"")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, int64(0x41)<<7|0x42)

	// sixbit packing subtracts 0x20 from each character code
	v, err = ev.Evaluate("'AB'")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, int64(0x21)<<6|0x22)

	// the run must fit in the default word
	ev16, _ := newEvaluator(16)
	_, err = ev16.Evaluate("\"ABC\"")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Has(err, expression.ParseError))
}

func TestResolutionOrder(t *testing.T) {
	eng := numeric.NewEngine(32)
	sym := symbols.NewTable()
	sym.Load([]symbols.Def{{Offset: 0x2000, Kind: "label", Name: "START"}})
	vars := variables.NewStore()
	ev := expression.NewEvaluator(eng, sym, vars)

	// symbol resolves
	v, err := ev.Evaluate("START+2")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x2002)

	// register shadows symbol of the same name
	ev.SetRegisters(mockRegisters{"START": 7})
	v, err = ev.Evaluate("START+2")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 9)

	// variable resolves after symbols
	vars.Set("DELTA", 3, "")
	v, err = ev.Evaluate("DELTA*2")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 6)
}

func TestFixupResolution(t *testing.T) {
	eng := numeric.NewEngine(32)
	sym := symbols.NewTable()
	sym.Load([]symbols.Def{{Offset: 0x2000, Kind: "label", Name: "START"}})
	vars := variables.NewStore()
	ev := expression.NewEvaluator(eng, sym, vars)

	// the variable's deferred expression is evaluated when the variable is
	// read
	vars.Set("ENTRY", 0, "START+10")
	v, err := ev.Evaluate("ENTRY+1")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x2011)

	// cyclic fixups fail instead of recursing forever
	vars.Set("LOOPA", 0, "LOOPB")
	vars.Set("LOOPB", 0, "LOOPA")
	_, err = ev.Evaluate("LOOPA")
	test.ExpectedFailure(t, err)
}

func TestUndefinedReference(t *testing.T) {
	ev, _ := newEvaluator(16)

	_, err := ev.Evaluate("EDX+4")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Has(err, expression.UndefinedReference))

	// with a collection sink the name is recorded and zero substituted
	fixups := &expression.Fixups{}
	v, err := ev.EvaluateCollect("EDX+4", fixups)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 4)
	test.Equate(t, len(fixups.Names()), 1)
	test.Equate(t, fixups.Names()[0], "EDX")
}

func TestBracketRemap(t *testing.T) {
	ev, _ := newEvaluator(32)
	ev.SetBrackets("(", ")")

	v, err := ev.Evaluate("2*(3+(4/2))")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 10)
}

func TestMalformed(t *testing.T) {
	ev, _ := newEvaluator(32)

	for _, s := range []string{"", "1+", "+", "{1+2", "1+2}", "{}", "1 2"} {
		_, err := ev.Evaluate(s)
		if err == nil {
			t.Errorf("expected parse failure for %q", s)
		}
	}
}
