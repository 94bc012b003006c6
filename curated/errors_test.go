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

package curated_test

import (
	"testing"

	"github.com/polydbg/polydbg/curated"
	"github.com/polydbg/polydbg/test"
)

func TestIdentity(t *testing.T) {
	const pattern = "parse error: %v"

	e := curated.Errorf(pattern, "unbalanced group")
	test.ExpectedSuccess(t, curated.IsAny(e))
	test.ExpectedSuccess(t, curated.Is(e, pattern))
	test.ExpectedFailure(t, curated.Is(e, "some other pattern"))

	f := curated.Errorf("evaluation failed: %v", e)
	test.ExpectedFailure(t, curated.Is(f, pattern))
	test.ExpectedSuccess(t, curated.Has(f, pattern))
}

func TestNormalisation(t *testing.T) {
	e := curated.Errorf("parse error: %v", curated.Errorf("parse error: %v", "division by zero"))
	test.Equate(t, e.Error(), "parse error: division by zero")
}

func TestNil(t *testing.T) {
	test.ExpectedFailure(t, curated.IsAny(nil))
	test.ExpectedFailure(t, curated.Is(nil, "any pattern"))
	test.ExpectedFailure(t, curated.Has(nil, "any pattern"))
}
