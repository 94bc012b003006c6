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

package numeric_test

import (
	"math/big"
	"testing"

	"github.com/polydbg/polydbg/numeric"
	"github.com/polydbg/polydbg/test"
)

func TestTruncateNarrow(t *testing.T) {
	e := numeric.NewEngine(32)

	test.Equate(t, e.Truncate(256, 8, true), 0)
	test.Equate(t, e.Truncate(-1, 8, true), 255)
	test.Equate(t, e.Truncate(128, 8, false), -128)
	test.Equate(t, e.Truncate(127, 8, false), 127)
	test.Equate(t, e.Truncate(255, 8, false), -1)
	test.Equate(t, e.Truncate(0x10000, 16, true), 0)
	test.Equate(t, e.Truncate(0x8000, 16, false), -32768)
}

func TestTruncateWide(t *testing.T) {
	e := numeric.NewEngine(36)

	// unsigned wraparound at 36 bits
	test.Equate(t, e.Truncate(int64(1)<<36, 0, true), 0)
	test.Equate(t, e.Truncate((int64(1)<<36)+5, 0, true), 5)
	test.Equate(t, e.Truncate(-1, 0, true), (int64(1)<<36)-1)

	// signed folding around zero at 36 bits
	test.Equate(t, e.Truncate((int64(1)<<35)-1, 0, false), (int64(1)<<35)-1)
	test.Equate(t, e.Truncate(int64(1)<<35, 0, false), -(int64(1) << 35))
	test.Equate(t, e.Truncate(-(int64(1)<<35)-1, 0, false), (int64(1)<<35)-1)
}

// reference truncation using arbitrary-precision arithmetic. this is the
// canonical definition of two's-complement reduction that the Engine must
// agree with at every width.
func refTruncate(v int64, width uint, unsigned bool) int64 {
	limit := new(big.Int).Lsh(big.NewInt(1), width)
	r := new(big.Int).Mod(big.NewInt(v), limit)
	if !unsigned {
		half := new(big.Int).Rsh(limit, 1)
		if r.Cmp(half) >= 0 {
			r.Sub(r, limit)
		}
	}
	return r.Int64()
}

func TestTruncateAgainstReference(t *testing.T) {
	for width := uint(33); width <= 63; width++ {
		e := numeric.NewEngine(width)
		half := int64(1) << (width - 1)
		limit := int64(1) << width

		vectors := []int64{
			0, 1, -1,
			half - 1, half, half + 1,
			-half - 1, -half, -half + 1,
			limit - 1, limit, limit + 1,
			-limit - 1, -limit, -limit + 1,
		}

		for _, v := range vectors {
			for _, unsigned := range []bool{true, false} {
				got := e.Truncate(v, 0, unsigned)
				want := refTruncate(v, width, unsigned)
				if got != want {
					t.Errorf("truncate(%d, %d, %v) = %d, reference says %d",
						v, width, unsigned, got, want)
				}
			}
		}
	}
}

func TestWideBitwise(t *testing.T) {
	e := numeric.NewEngine(36)

	test.Equate(t, e.And(0xFFFFFFFFF, 0x000000001), 1)
	test.Equate(t, e.And(0xF00000000F, 0xFF), 0xF)
	test.Equate(t, e.Or(0xF00000000, 0x00000000F), int64(0xF0000000F))
	test.Equate(t, e.Xor(0xFFFFFFFFF, 0xFFFFFFFFF), 0)
	test.Equate(t, e.Xor(0xFFFFFFFFF, 0), int64(0xFFFFFFFFF))

	// verified against arbitrary-precision reference
	a := int64(0xA5A5A5A5A)
	b := int64(0x5A5A5A5A5)
	bigMask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 36), big.NewInt(1))
	want := new(big.Int).And(big.NewInt(a), big.NewInt(b))
	want.And(want, bigMask)
	test.Equate(t, e.And(a, b), want.Int64())
}

func TestNot(t *testing.T) {
	e := numeric.NewEngine(16)
	test.Equate(t, e.Not(5), 0xFFFA)
	test.Equate(t, e.Not(0), 0xFFFF)

	w := numeric.NewEngine(36)
	test.Equate(t, w.Not(0), (int64(1)<<36)-1)
}

type tenArith struct{}

// Multiply implements the numeric.Arith interface. doubles the product, a
// stand-in for an architecture-specific multiply result.
func (a tenArith) Multiply(dst, src int64) int64 {
	return dst * src * 2
}

func TestMultiplySeam(t *testing.T) {
	e := numeric.NewEngine(32)
	test.Equate(t, e.Multiply(6, 7), 42)

	e.SetArith(tenArith{})
	test.Equate(t, e.Multiply(6, 7), 84)

	e.SetArith(nil)
	test.Equate(t, e.Multiply(6, 7), 42)
}

func TestLeadingZeros(t *testing.T) {
	e := numeric.NewEngine(16)
	test.Equate(t, e.LeadingZeros(0), 16)
	test.Equate(t, e.LeadingZeros(1), 15)
	test.Equate(t, e.LeadingZeros(0x8000), 0)

	w := numeric.NewEngine(36)
	test.Equate(t, w.LeadingZeros(1), 35)
}
