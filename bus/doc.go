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

// Package bus defines the interface boundary between the debugging core and
// the emulated machine's memory/IO bus. The bus implementation belongs to
// the machine; the debugger only installs and removes trap hooks on it and
// performs reads/writes for dumps and edits.
//
// The Memory type is a reference implementation, used by the package tests
// and by the standalone binary. A real machine supplies its own.
package bus
