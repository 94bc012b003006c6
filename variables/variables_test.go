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

package variables_test

import (
	"testing"

	"github.com/polydbg/polydbg/test"
	"github.com/polydbg/polydbg/variables"
)

func TestSetGetDelete(t *testing.T) {
	st := variables.NewStore()

	_, ok := st.Get("EDX")
	test.ExpectedFailure(t, ok)

	st.Set("EDX", 10, "")
	v, ok := st.Get("EDX")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 10)

	test.ExpectedSuccess(t, st.Delete("EDX"))
	test.ExpectedFailure(t, st.Delete("EDX"))
	_, ok = st.Get("EDX")
	test.ExpectedFailure(t, ok)
}

func TestLegacyTruncation(t *testing.T) {
	st := variables.NewStore()
	st.Set("CURSOR", 99, "")

	// the lookup falls back to the six-character truncation
	v, ok := st.Get("CURSORPOS")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 99)
}

func TestFixup(t *testing.T) {
	st := variables.NewStore()
	st.Set("BASE", 0, "START+10")

	f, ok := st.Fixup("BASE")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, f, "START+10")

	st.Set("PLAIN", 1, "")
	_, ok = st.Fixup("PLAIN")
	test.ExpectedFailure(t, ok)
}

func TestSnapshot(t *testing.T) {
	st := variables.NewStore()
	st.Set("A", 1, "")
	st.Set("B", 2, "")

	snap := st.ResetAll()
	_, ok := st.Get("A")
	test.ExpectedFailure(t, ok)

	st.Set("C", 3, "")
	st.Restore(snap)

	v, ok := st.Get("A")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 1)
	_, ok = st.Get("C")
	test.ExpectedFailure(t, ok)

	test.Equate(t, len(st.List()), 2)
}
