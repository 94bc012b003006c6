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

package symbols

import (
	"strings"

	"github.com/polydbg/polydbg/address"
	"github.com/polydbg/polydbg/logger"
)

// Def is one element of the flat symbol list supplied at load time.
type Def struct {
	Offset uint64
	Kind   string
	Name   string
}

// normaliseName removes leading/trailing space and compresses internal space
// to underscores.
func normaliseName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// Load adds symbols to the table in bulk. A def with an unrecognised kind
// token is skipped with a diagnostic, not treated as fatal. Returns the
// number of symbols actually added.
func (t *Table) Load(defs []Def) int {
	added := 0
	for _, d := range defs {
		k, ok := ParseKind(d.Kind)
		if !ok {
			logger.Logf("symbols", "skipping %s: unrecognised kind token (%s)", d.Name, d.Kind)
			continue
		}

		name := normaliseName(d.Name)
		if name == "" {
			logger.Logf("symbols", "skipping symbol at %#x: empty name", d.Offset)
			continue
		}

		e := &Entry{
			Addr: address.New(d.Offset),
			Kind: k,
			Name: name,
		}
		if t.add(e) {
			added++
		}
	}
	return added
}
