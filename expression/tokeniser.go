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
	"strings"

	"github.com/polydbg/polydbg/curated"
)

// operator spellings in longest-match-first order. multi-character operators
// must appear before their single-character prefixes or the tokeniser will
// split them.
var operatorTokens = []string{
	">>>",
	"^L", "^D", "^O", "^B", "^X",
	",,", "||", "&&", "==", "!=", ">=", "<=", "<<", ">>",
	"{", "}", "|", "^", "&", ">", "<", "+", "-", "*", "/", "%", "~",
}

// tokens is a walkable list of expression tokens.
type tokens struct {
	list []string
	curr int
}

func (tk *tokens) get() (string, bool) {
	if tk.curr >= len(tk.list) {
		return "", false
	}
	tk.curr++
	return tk.list[tk.curr-1], true
}

func (tk *tokens) peek() (string, bool) {
	if tk.curr >= len(tk.list) {
		return "", false
	}
	return tk.list[tk.curr], true
}

// matchOperator returns the operator spelled at position i of the input, or
// the empty string.
func matchOperator(input string, i int) string {
	for _, op := range operatorTokens {
		if strings.HasPrefix(input[i:], op) {
			return op
		}
	}
	return ""
}

// tokenise divides an expression into value and operator tokens. quoted
// character runs are kept whole, quotes included. the "$" hex prefix is
// normalised to "0x".
func tokenise(input string) (*tokens, error) {
	tk := &tokens{
		list: make([]string, 0, 16),
	}

	i := 0
	for i < len(input) {
		c := input[i]

		if c == ' ' || c == '\t' {
			i++
			continue
		}

		if c == '"' || c == '\'' {
			j := strings.IndexByte(input[i+1:], c)
			if j == -1 {
				return nil, curated.Errorf(ParseError, "unterminated quoted literal")
			}
			tk.list = append(tk.list, input[i:i+j+2])
			i += j + 2
			continue
		}

		if op := matchOperator(input, i); op != "" {
			tk.list = append(tk.list, op)
			i += len(op)
			continue
		}

		// accumulate a word up to the next space, quote or operator
		j := i
		for j < len(input) {
			c := input[j]
			if c == ' ' || c == '\t' || c == '"' || c == '\'' {
				break
			}
			if matchOperator(input, j) != "" {
				break
			}
			j++
		}

		word := input[i:j]
		if word[0] == '$' {
			word = "0x" + word[1:]
		}
		tk.list = append(tk.list, word)
		i = j
	}

	return tk, nil
}
