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

package expression

import (
	"fmt"

	"github.com/polydbg/polydbg/curated"
)

// packChars converts a quoted character run into a single packed integer.
// The double-quote style packs at the evaluator's bits-per-character setting
// (7 or 8). The single-quote style packs at 6 bits with 0x20 subtracted from
// each character code first, matching sixbit encoding on the older
// architectures.
//
// The run must fit in the default word width.
func (r *run) packChars(tok string) (int64, error) {
	// the tokeniser guarantees the closing quote is present
	quote := tok[0]
	body := tok[1 : len(tok)-1]

	var bitsPerChar uint
	var sub int64

	switch quote {
	case '"':
		bitsPerChar = r.ev.charBits
	case '\'':
		bitsPerChar = 6
		sub = 0x20
	}

	if uint(len(body))*bitsPerChar > r.ev.eng.Width() {
		return 0, curated.Errorf(ParseError, fmt.Sprintf("too many characters in literal (%s)", tok))
	}

	mask := int64(1)<<bitsPerChar - 1

	var v int64
	for i := 0; i < len(body); i++ {
		code := (int64(body[i]) - sub) & mask
		v = v<<bitsPerChar | code
	}

	return r.ev.eng.TruncateDefault(v), nil
}
