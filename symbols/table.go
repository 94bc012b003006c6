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
	"fmt"
	"sort"
	"strings"

	"github.com/polydbg/polydbg/address"
)

// Kind classifies a symbol.
type Kind int

// List of valid Kind values.
const (
	KindByte Kind = iota
	KindPair
	KindQuad
	KindLabel
	KindComment
	KindValue
)

// String implements the Stringer interface.
func (k Kind) String() string {
	switch k {
	case KindByte:
		return "byte"
	case KindPair:
		return "pair"
	case KindQuad:
		return "quad"
	case KindLabel:
		return "label"
	case KindComment:
		return "comment"
	case KindValue:
		return "value"
	}
	return "unknown"
}

// ParseKind converts a symbol-kind token, as found in a flat symbol list,
// into a Kind.
func ParseKind(tok string) (Kind, bool) {
	switch strings.ToLower(tok) {
	case "b", "byte":
		return KindByte, true
	case "p", "pair":
		return KindPair, true
	case "q", "quad":
		return KindQuad, true
	case "l", "label":
		return KindLabel, true
	case "c", "comment":
		return KindComment, true
	case "v", "value":
		return KindValue, true
	}
	return KindByte, false
}

// Entry is a single symbol record.
type Entry struct {
	Addr address.Address
	Kind Kind
	Name string
}

// String implements the Stringer interface.
func (e Entry) String() string {
	return fmt.Sprintf("%s %s (%s)", e.Addr, e.Name, e.Kind)
}

// Table is the dual-sorted symbol table. The same Entry instances are
// indexed by both orderings.
type Table struct {
	byName []*Entry
	byAddr []*Entry
}

// NewTable is the preferred method of initialisation for the Table type.
func NewTable() *Table {
	return &Table{
		byName: make([]*Entry, 0),
		byAddr: make([]*Entry, 0),
	}
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int {
	return len(t.byName)
}

// SearchByName finds the index of the symbol with the given name in the name
// ordering. If the name is not present the returned index is the insertion
// point that would keep the ordering intact and the second return value is
// false.
func (t *Table) SearchByName(name string) (int, bool) {
	i := sort.Search(len(t.byName), func(i int) bool {
		return t.byName[i].Name >= name
	})
	if i < len(t.byName) && t.byName[i].Name == name {
		return i, true
	}
	return i, false
}

// SearchByAddr finds the index of the symbol with the given address offset
// in the value ordering. Insertion point semantics as SearchByName.
func (t *Table) SearchByAddr(addr address.Address) (int, bool) {
	i := sort.Search(len(t.byAddr), func(i int) bool {
		return t.byAddr[i].Addr.Offset >= addr.Offset
	})
	if i < len(t.byAddr) && t.byAddr[i].Addr.Offset == addr.Offset {
		return i, true
	}
	return i, false
}

// EntryByName returns the symbol with the given name, or nil.
func (t *Table) EntryByName(name string) *Entry {
	if i, ok := t.SearchByName(name); ok {
		return t.byName[i]
	}
	return nil
}

// EntryByAddr returns the symbol at the given address offset, or nil.
func (t *Table) EntryByAddr(addr address.Address) *Entry {
	if i, ok := t.SearchByAddr(addr); ok {
		return t.byAddr[i]
	}
	return nil
}

// NearestBefore returns the symbol at or immediately below the given address
// offset, along with the distance between them. Returns nil if there is no
// symbol at or below the address.
func (t *Table) NearestBefore(addr address.Address) (*Entry, uint64) {
	i, ok := t.SearchByAddr(addr)
	if ok {
		return t.byAddr[i], 0
	}
	if i == 0 {
		return nil, 0
	}
	e := t.byAddr[i-1]
	return e, addr.Offset - e.Addr.Offset
}

// add inserts an entry into both orderings. insertion is a no-op if the name
// already appears in the name ordering or the address offset already appears
// in the value ordering.
func (t *Table) add(e *Entry) bool {
	ni, nok := t.SearchByName(e.Name)
	if nok {
		return false
	}
	ai, aok := t.SearchByAddr(e.Addr)
	if aok {
		return false
	}

	t.byName = append(t.byName, nil)
	copy(t.byName[ni+1:], t.byName[ni:])
	t.byName[ni] = e

	t.byAddr = append(t.byAddr, nil)
	copy(t.byAddr[ai+1:], t.byAddr[ai:])
	t.byAddr[ai] = e

	return true
}

// String implements the Stringer interface. Symbols are listed in the value
// ordering.
func (t *Table) String() string {
	s := strings.Builder{}
	for _, e := range t.byAddr {
		s.WriteString(e.String())
		s.WriteString("\n")
	}
	return s.String()
}
