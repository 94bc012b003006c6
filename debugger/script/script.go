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

// Package script runs Lua scripts against the debugger console. A script
// sees a global "dbg" table with a single function:
//
//	dbg.exec(command)  -- dispatch one console command, returns an error
//	                      string or nil
//
// Anything else the script needs is ordinary Lua.
package script

import (
	"github.com/polydbg/polydbg/curated"
	lua "github.com/yuin/gopher-lua"
)

// error pattern for script failures.
const ScriptError = "script error: %v"

// Commander is the console surface exposed to a running script.
type Commander interface {
	Exec(command string) error
}

// Run the Lua script at path against the commander.
func Run(cmd Commander, path string) error {
	L := lua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	L.SetField(tbl, "exec", L.NewFunction(func(L *lua.LState) int {
		command := L.CheckString(1)
		if err := cmd.Exec(command); err != nil {
			L.Push(lua.LString(err.Error()))
			return 1
		}
		L.Push(lua.LNil)
		return 1
	}))
	L.SetGlobal("dbg", tbl)

	if err := L.DoFile(path); err != nil {
		return curated.Errorf(ScriptError, err)
	}

	return nil
}
