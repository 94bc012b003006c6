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

// Package variables holds the debugger's named numeric bindings. A variable
// can carry a deferred expression ("fixup") which the expression evaluator
// resolves lazily when the variable is read. The whole mapping can be
// swapped out and restored atomically, which is how temporary variable sets
// are scoped during nested evaluation.
package variables
