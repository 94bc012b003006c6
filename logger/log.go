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

package logger

import (
	"fmt"
	"io"
	"strings"
)

// Entry represents a single line/entry in the log.
type Entry struct {
	Tag    string
	Detail string
}

// String implements the Stringer interface.
func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.Tag, e.Detail)
}

type logger struct {
	entries  []Entry
	maxLines int

	// the echo writer receives every new entry as it is added. can be nil.
	echo io.Writer
}

func newLogger(maxLines int) *logger {
	return &logger{
		entries:  make([]Entry, 0, maxLines),
		maxLines: maxLines,
	}
}

func (l *logger) log(tag, detail string) {
	// remove oldest entries to make room
	if len(l.entries) >= l.maxLines {
		l.entries = l.entries[1:]
	}

	// split multi-line details into separate entries
	for _, d := range strings.Split(detail, "\n") {
		if d == "" {
			continue
		}
		e := Entry{Tag: tag, Detail: d}
		l.entries = append(l.entries, e)
		if l.echo != nil {
			l.echo.Write([]byte(e.String() + "\n"))
		}
	}
}

func (l *logger) logf(tag, detail string, args ...interface{}) {
	l.log(tag, fmt.Sprintf(detail, args...))
}

func (l *logger) clear() {
	l.entries = l.entries[:0]
}

func (l *logger) write(output io.Writer) {
	for _, e := range l.entries {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
}

func (l *logger) tail(output io.Writer, number int) {
	t := len(l.entries) - number
	if t < 0 {
		t = 0
	}
	for _, e := range l.entries[t:] {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
}

func (l *logger) setEcho(output io.Writer) {
	l.echo = output
}
