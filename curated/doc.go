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

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, like fmt.Errorf(). The pattern
// doubles as the error's identity: the Is() function checks whether an error
// was created with a specific pattern and the Has() function checks whether
// the pattern occurs anywhere in the error chain.
//
// Packages that return curated errors declare their patterns as exported
// string constants. For example:
//
//	if err := ev.Evaluate(s); curated.Has(err, expression.ParseError) {
//		...
//	}
//
// The IsAny() function answers whether an error is curated at all. Uncurated
// errors can be treated as unexpected.
package curated
