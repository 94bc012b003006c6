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

package debugger

import (
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/polydbg/polydbg/curated"
	"github.com/polydbg/polydbg/debugger/terminal"
)

// dumpStructures implements the sv command: a graphviz rendering of the
// live breakpoint and variable structures, for inspection with dot.
func (dbg *Debugger) dumpStructures(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return curated.Errorf("structure dump: %v", err)
	}
	defer f.Close()

	data := struct {
		Breakpoints *breakpoints
		Variables   interface{}
	}{
		Breakpoints: dbg.brk,
		Variables:   dbg.vars,
	}
	memviz.Map(f, &data)

	dbg.printLine(terminal.StyleFeedback, "structure graph written to %s", file)
	return nil
}
