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

// Package address defines the Address value type used throughout the
// debugging core. An Address unifies the different ways a location can be
// identified on a machine bus: a bare physical offset, a linear offset, or a
// segment:offset pair in either real or protected mode.
//
// Address values are cheap and have value semantics. They are created per
// operation and are not shared or owned beyond the caller's stack frame.
package address
