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

package variables

import (
	"sort"
)

// legacy assemblers limit symbol names to six characters. lookups fall back
// to the truncated name so that long spellings of old symbols still resolve.
const legacyNameLength = 6

// Variable is a single named numeric binding.
type Variable struct {
	Value int64

	// a non-empty Fixup is an unresolved expression to be evaluated when the
	// variable is read
	Fixup string
}

// Snapshot is the complete set of bindings at one moment. Returned by
// ResetAll() and accepted by Restore().
type Snapshot map[string]Variable

// Store is the single mapping that owns all variables.
type Store struct {
	vars Snapshot
}

// NewStore is the preferred method of initialisation for the Store type.
func NewStore() *Store {
	return &Store{
		vars: make(Snapshot),
	}
}

// Set creates or overwrites a variable. A non-empty fixup records a deferred
// expression alongside the value.
func (st *Store) Set(name string, value int64, fixup string) {
	st.vars[name] = Variable{Value: value, Fixup: fixup}
}

// Get returns the value of the named variable. If the exact name is not
// bound, a second lookup is made with the name truncated to the legacy
// six-character limit.
func (st *Store) Get(name string) (int64, bool) {
	if v, ok := st.vars[name]; ok {
		return v.Value, true
	}
	if len(name) > legacyNameLength {
		if v, ok := st.vars[name[:legacyNameLength]]; ok {
			return v.Value, true
		}
	}
	return 0, false
}

// Fixup returns the deferred expression stored with the named variable, or
// false if the variable is unbound or has no fixup. The same legacy
// truncation as Get() applies.
func (st *Store) Fixup(name string) (string, bool) {
	if v, ok := st.vars[name]; ok {
		return v.Fixup, v.Fixup != ""
	}
	if len(name) > legacyNameLength {
		if v, ok := st.vars[name[:legacyNameLength]]; ok {
			return v.Fixup, v.Fixup != ""
		}
	}
	return "", false
}

// Delete removes a variable. Returns false if the variable was not bound.
func (st *Store) Delete(name string) bool {
	if _, ok := st.vars[name]; !ok {
		return false
	}
	delete(st.vars, name)
	return true
}

// ResetAll swaps the entire mapping out for a fresh one, returning the old
// mapping. Used to scope temporary variable sets during nested evaluation.
func (st *Store) ResetAll() Snapshot {
	old := st.vars
	st.vars = make(Snapshot)
	return old
}

// Restore replaces the entire mapping with a snapshot taken by ResetAll().
func (st *Store) Restore(snap Snapshot) {
	if snap == nil {
		snap = make(Snapshot)
	}
	st.vars = snap
}

// List returns the bound names in sorted order.
func (st *Store) List() []string {
	names := make([]string, 0, len(st.vars))
	for n := range st.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
