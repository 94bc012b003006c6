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

// Package statsview serves live runtime statistics over a local HTTP
// server, built on "github.com/go-echarts/statsview". The server is only
// compiled in when the statsview build tag is given; without the tag the
// package reduces to a stub that reports its absence.
//
// With the tag, graphed statistics appear at localhost:12680/debug/statsview
// and the usual pprof endpoints at localhost:12680/debug/pprof/.
package statsview
