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

// Dialect selects the operator precedence table.
type Dialect int

// List of valid Dialect values. DialectLegacy serves the older assembler
// dialect: bitwise operators bind more tightly than relational operators and
// the ",," half-word combine operator is available.
const (
	DialectDefault Dialect = iota
	DialectLegacy
)

// the default table follows C ordering: relational operators bind more
// tightly than the bitwise operators.
var defaultPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"<<": 8, ">>": 8, ">>>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

var legacyPrecedence = map[string]int{
	",,": 1,
	"||": 2,
	"&&": 3,
	"==": 4, "!=": 4,
	"<": 5, ">": 5, "<=": 5, ">=": 5,
	"|": 6,
	"^": 7,
	"&": 8,
	"<<": 9, ">>": 9, ">>>": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
}

// precedence returns the operator table for the dialect.
func (d Dialect) precedence() map[string]int {
	if d == DialectLegacy {
		return legacyPrecedence
	}
	return defaultPrecedence
}

// unary operator codes. pushed onto a small stack two bits at a time,
// MSB-first, and applied in right-to-left order.
const (
	unaryNegate       = 1
	unaryComplement   = 2
	unaryLeadingZeros = 3
)

// the unary stack is a plain integer. this limit stops the two-bit push from
// shifting codes off the top.
const maxUnaryDepth = 1 << 28
