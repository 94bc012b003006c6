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

// Package logger is the central log for the application. There is only one
// log and it can be written to from anywhere with the Log() and Logf()
// functions. The SetEcho() function forwards new entries to an io.Writer as
// they arrive.
package logger

import (
	"io"
)

// only allowing one central log for the entire application. there's no need
// for more than one.
var central *logger

// maximum number of entries in the central log.
const maxCentral = 256

func init() {
	central = newLogger(maxCentral)
}

// Log adds an entry to the central log.
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central log.
func Logf(tag, detail string, args ...interface{}) {
	central.logf(tag, detail, args...)
}

// Clear all entries from the central log.
func Clear() {
	central.clear()
}

// Write the contents of the central log to the io.Writer.
func Write(output io.Writer) {
	central.write(output)
}

// Tail writes the last N entries to the io.Writer.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// SetEcho forwards new log entries to the io.Writer. A nil writer stops the
// forwarding.
func SetEcho(output io.Writer) {
	central.setEcho(output)
}
