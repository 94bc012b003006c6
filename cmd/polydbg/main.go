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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/polydbg/polydbg/arch"
	"github.com/polydbg/polydbg/bus"
	"github.com/polydbg/polydbg/debugger"
	"github.com/polydbg/polydbg/debugger/terminal"
	"github.com/polydbg/polydbg/debugger/terminal/colorterm"
	"github.com/polydbg/polydbg/debugger/terminal/plainterm"
	"github.com/polydbg/polydbg/expression"
	"github.com/polydbg/polydbg/logger"
	"github.com/polydbg/polydbg/numeric"
	"github.com/polydbg/polydbg/statsview"
)

const deviceID = "polydbg-demo"

// the demo machine: a stub CPU walking a flat 64KB block of memory. every
// fetch goes through the bus so breakpoints and instruction history work the
// way they would on a real machine.
type machine struct {
	cpu *arch.Stub
	mem *bus.Memory

	running bool
}

// Run implements the debugger.Scheduler interface. Synchronous: returns
// when the machine halts or runs off the end of memory.
func (m *machine) Run() {
	m.running = true
	for m.running {
		if !m.step() {
			m.running = false
		}
	}
}

// Stop implements the debugger.Scheduler interface.
func (m *machine) Stop() {
	m.running = false
}

// Abort implements the debugger.Scheduler interface. the stub machine has
// no mid-instruction state so an abrupt halt is the same as a cooperative
// one.
func (m *machine) Abort() {
	m.running = false
}

// Step implements the debugger.Scheduler interface.
func (m *machine) Step(n int) {
	m.running = true
	for i := 0; i < n && m.running; i++ {
		if !m.step() {
			break
		}
	}
	m.running = false
}

// IsRunning implements the debugger.Scheduler interface.
func (m *machine) IsRunning() bool {
	return m.running
}

func (m *machine) step() bool {
	addr := m.cpu.Step()
	_, ok := m.mem.Read(addr.Offset)
	return ok
}

func run() error {
	width := flag.Uint("width", 32, "machine word width in bits (1 to 64)")
	base := flag.Int("base", 16, "default numeric radix (2, 8, 10, 16)")
	legacy := flag.Bool("legacy", false, "use the legacy assembler dialect")
	termType := flag.String("term", "color", "terminal type (color, plain)")
	useStats := flag.Bool("statsview", false, "run stats server (requires statsview build tag)")
	echoLog := flag.Bool("log", false, "echo log entries to stderr")
	flag.Parse()

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	if *useStats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Fprintln(os.Stderr, "statsview not available in this build")
		}
	}

	mem := bus.NewMemory()
	if err := mem.AddBlock("ram", 0x0000, 0x10000); err != nil {
		return err
	}

	cpu := arch.NewStub("PC", "AX", "BX", "CX", "DX")

	eng := numeric.NewEngine(*width)
	dbg := debugger.New(mem, cpu, deviceID, eng)

	dbg.Evaluator().SetBase(*base)
	if *legacy {
		dbg.Evaluator().SetDialect(expression.DialectLegacy)
	}

	mch := &machine{cpu: cpu, mem: mem}
	dbg.AttachScheduler(mch)

	var term terminal.Terminal
	switch *termType {
	case "color":
		term = &colorterm.ColorTerminal{}
	case "plain":
		term = &plainterm.PlainTerminal{}
	default:
		return fmt.Errorf("unknown terminal type (%s)", *termType)
	}
	dbg.AttachTerminal(term)

	return dbg.Start()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}
}
