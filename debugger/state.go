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
	"strings"

	"github.com/polydbg/polydbg/curated"
	"github.com/polydbg/polydbg/logger"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// error pattern for restart-state handling.
const StateError = "restart state: %v"

// SaveState renders the restart state as a flat JSON array:
//
//	[deviceId, breakpointCommandString, messageBreakMask]
//
// breakpointCommandString is the semicolon-joined command list that
// reconstructs every breakpoint, including disabled ones.
func (dbg *Debugger) SaveState() (string, error) {
	blob := "[]"

	var err error
	if blob, err = sjson.Set(blob, "-1", dbg.deviceID); err != nil {
		return "", curated.Errorf(StateError, err)
	}
	if blob, err = sjson.Set(blob, "-1", dbg.brk.commandString()); err != nil {
		return "", curated.Errorf(StateError, err)
	}
	if blob, err = sjson.Set(blob, "-1", dbg.messageMask); err != nil {
		return "", curated.Errorf(StateError, err)
	}

	return blob, nil
}

// RestoreState rebuilds breakpoints and the message-break mask from a blob
// produced by SaveState. The blob is rejected if the identity in the first
// field does not match this debugger's device ID.
func (dbg *Debugger) RestoreState(blob string) error {
	if !gjson.Valid(blob) {
		return curated.Errorf(StateError, "malformed blob")
	}

	fields := gjson.Parse(blob).Array()
	if len(fields) != 3 {
		return curated.Errorf(StateError, "malformed blob")
	}

	if fields[0].String() != dbg.deviceID {
		return curated.Errorf(StateError,
			"blob belongs to another device ("+fields[0].String()+")")
	}

	// re-issue the breakpoint commands. replaying in the saved order
	// reproduces the saved break indexes.
	cmds := fields[1].String()
	if cmds != "" {
		for _, c := range strings.Split(cmds, ";") {
			if err := dbg.dispatch(c); err != nil {
				logger.Logf("debugger", "restart state: %v", err)
			}
		}
	}

	dbg.messageMask = fields[2].Int()

	return nil
}
