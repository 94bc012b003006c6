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

package numeric

import (
	"math/bits"
)

// Arith is the capability interface for architecture-specific arithmetic.
// An architecture that models its native multiply instruction (a double-word
// result, for instance) provides an implementation and attaches it to the
// Engine.
type Arith interface {
	Multiply(dst, src int64) int64
}

// Engine performs fixed-width integer arithmetic for a machine with the
// given default word width.
type Engine struct {
	width uint
	arith Arith
}

// NewEngine is the preferred method of initialisation for the Engine type.
// Width is the default word width in bits and must be between 1 and 64.
func NewEngine(width uint) *Engine {
	if width < 1 || width > 64 {
		width = 32
	}
	return &Engine{width: width}
}

// Width returns the default word width in bits.
func (e *Engine) Width() uint {
	return e.width
}

// SetArith attaches an architecture-specific arithmetic override. A nil
// value restores the default behaviour.
func (e *Engine) SetArith(arith Arith) {
	e.arith = arith
}

// Truncate enforces machine word semantics on a value. A bit width of zero
// selects the engine's default width.
//
// For unsigned truncation the value is masked to the bit width; widths above
// 32 bits are reduced modulo 2^width with a correction to keep the result
// non-negative. For signed truncation widths up to 32 bits sign-extend via a
// double shift; wider widths reduce to the canonical two's-complement value
// in the range [-2^(width-1), 2^(width-1)).
func (e *Engine) Truncate(v int64, width uint, unsigned bool) int64 {
	if width == 0 {
		width = e.width
	}
	if width >= 64 {
		return v
	}

	if unsigned {
		if width <= 32 {
			return v & int64(uint64(1)<<width-1)
		}
		// reduction modulo 2^width. the mask of the 64-bit pattern is the
		// modulus with the non-negative correction already applied
		return int64(uint64(v) & (uint64(1)<<width - 1))
	}

	if width <= 32 {
		return int64(int32(uint32(v)<<(32-width)) >> (32 - width))
	}

	// canonical two's-complement reduction. the subtraction relies on
	// uint64 wraparound to produce the negative half of the range
	r := uint64(v) & (uint64(1)<<width - 1)
	if r&(uint64(1)<<(width-1)) != 0 {
		return int64(r - uint64(1)<<width)
	}
	return int64(r)
}

// TruncateDefault truncates a value at the engine's default width with
// signed semantics.
func (e *Engine) TruncateDefault(v int64) int64 {
	return e.Truncate(v, 0, false)
}

// split divides an unsigned-truncated value into its 32-bit halves.
func split(v int64) (hi uint32, lo uint32) {
	return uint32(uint64(v) >> 32), uint32(uint64(v))
}

// join recombines two 32-bit halves into a single value.
func join(hi uint32, lo uint32) int64 {
	return int64(uint64(hi)<<32 | uint64(lo))
}

// And returns the bitwise AND of two values at the engine's default width.
// Both operands pass through unsigned truncation first; operands wider than
// 32 bits are composed from their 32-bit halves.
func (e *Engine) And(dst, src int64) int64 {
	dh, dl := split(e.Truncate(dst, 0, true))
	sh, sl := split(e.Truncate(src, 0, true))
	return join(dh&sh, dl&sl)
}

// Or returns the bitwise OR of two values at the engine's default width.
func (e *Engine) Or(dst, src int64) int64 {
	dh, dl := split(e.Truncate(dst, 0, true))
	sh, sl := split(e.Truncate(src, 0, true))
	return join(dh|sh, dl|sl)
}

// Xor returns the bitwise XOR of two values at the engine's default width.
func (e *Engine) Xor(dst, src int64) int64 {
	dh, dl := split(e.Truncate(dst, 0, true))
	sh, sl := split(e.Truncate(src, 0, true))
	return join(dh^sh, dl^sl)
}

// Not returns the bitwise complement of a value at the engine's default
// width.
func (e *Engine) Not(v int64) int64 {
	vh, vl := split(e.Truncate(v, 0, true))
	r := join(^vh, ^vl)
	return e.Truncate(r, 0, true)
}

// Multiply two values. The base behaviour is ordinary multiplication but an
// attached Arith capability replaces it entirely.
func (e *Engine) Multiply(dst, src int64) int64 {
	if e.arith != nil {
		return e.arith.Multiply(dst, src)
	}
	return dst * src
}

// LeadingZeros counts the zero bits above the most significant set bit of a
// value, within the engine's default width. A zero value counts the full
// width.
func (e *Engine) LeadingZeros(v int64) int64 {
	v = e.Truncate(v, 0, true)
	if v == 0 {
		return int64(e.width)
	}
	return int64(bits.LeadingZeros64(uint64(v)) - (64 - int(e.width)))
}
