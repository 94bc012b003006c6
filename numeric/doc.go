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

// Package numeric reproduces machine word semantics for the emulated
// architectures. Every value handled by the debugging core passes through an
// Engine so that arithmetic behaves identically whether the target machine
// has 8-bit, 16-bit, 32-bit or 36-bit words, signed or unsigned.
//
// The bitwise operations compose results from 32-bit halves. Wide machine
// words (a 36-bit PDP-10 word, for instance) are split into high and low
// halves, the native operation applied to each half and the halves
// recombined. The split points are part of the engine's contract and are
// exercised directly by the package tests.
package numeric
