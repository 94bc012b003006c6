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
	"os/signal"
	"strings"
	"syscall"

	"github.com/polydbg/polydbg/arch"
	"github.com/polydbg/polydbg/bus"
	"github.com/polydbg/polydbg/curated"
	"github.com/polydbg/polydbg/debugger/terminal"
	"github.com/polydbg/polydbg/expression"
	"github.com/polydbg/polydbg/history"
	"github.com/polydbg/polydbg/numeric"
	"github.com/polydbg/polydbg/symbols"
	"github.com/polydbg/polydbg/variables"
)

// Scheduler is the time/scheduler collaborator. It drives emulated execution
// and observes halt outcomes at its next decision point.
type Scheduler interface {
	Run()
	Stop()

	// Abort the current instruction step. machine state may be
	// mid-instruction afterwards.
	Abort()

	Step(n int)
	IsRunning() bool
}

// Debugger is the composition of the debugging core. Single-threaded by
// design: all operations execute on the goroutine that drives emulated
// execution.
type Debugger struct {
	bus   bus.Bus
	cpu   arch.CPU
	sched Scheduler
	term  terminal.Terminal

	eng  *numeric.Engine
	sym  *symbols.Table
	vars *variables.Store
	eval *expression.Evaluator
	hist *history.Recorder
	brk  *breakpoints

	// identity written into (and checked against) the persisted state
	deviceID string

	// re-entrancy guard. non-zero while the debugger itself accesses the
	// bus, suppressing self-triggered breaks
	guard int

	// message-based break condition. zero means disarmed
	messageMask int64

	// instruction-count break condition. decremented on every fetch;
	// reaching zero stops the machine. zero means disarmed
	instructionCount int
	countTrap        bus.TrapID
	countTrapOn      bool

	// history forced on by the sh command, surviving breakpoint clears
	forcedHistory bool

	abruptHalt bool
	outcome    Outcome

	// whether the input loop is running
	running bool
}

// New is the preferred method of initialisation for the Debugger type. The
// scheduler and terminal may be attached later with Attach functions; every
// other collaborator is required.
func New(b bus.Bus, cpu arch.CPU, deviceID string, eng *numeric.Engine) *Debugger {
	dbg := &Debugger{
		bus:      b,
		cpu:      cpu,
		deviceID: deviceID,
		eng:      eng,
		sym:      symbols.NewTable(),
		vars:     variables.NewStore(),
	}

	dbg.eval = expression.NewEvaluator(eng, dbg.sym, dbg.vars)
	dbg.eval.SetRegisters(cpu)
	dbg.hist = history.NewRecorder(b, cpu)
	dbg.hist.SetGuard(func() bool {
		return dbg.guard > 0
	})
	dbg.brk = newBreakpoints(dbg)

	return dbg
}

// AttachScheduler connects the time/scheduler collaborator.
func (dbg *Debugger) AttachScheduler(sched Scheduler) {
	dbg.sched = sched
}

// AttachTerminal connects the console terminal.
func (dbg *Debugger) AttachTerminal(term terminal.Terminal) {
	dbg.term = term
}

// Symbols returns the symbol table for bulk loading.
func (dbg *Debugger) Symbols() *symbols.Table {
	return dbg.sym
}

// Variables returns the variable store.
func (dbg *Debugger) Variables() *variables.Store {
	return dbg.vars
}

// Evaluator returns the expression evaluator for configuration (base,
// dialect, character packing width).
func (dbg *Debugger) Evaluator() *expression.Evaluator {
	return dbg.eval
}

// History returns the instruction history recorder.
func (dbg *Debugger) History() *history.Recorder {
	return dbg.hist
}

// guarded runs fn with the re-entrancy guard raised. bus accesses made by fn
// do not trigger breakpoints or history recording.
func (dbg *Debugger) guarded(fn func()) {
	dbg.guard++
	defer func() {
		dbg.guard--
	}()
	fn()
}

// Exec tokenises and dispatches a single console command. Implements the
// script.Commander interface.
func (dbg *Debugger) Exec(command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}
	dbg.printLine(terminal.StyleEcho, command)
	return dbg.dispatch(command)
}

// Start the input loop. Returns when the user quits or input is exhausted.
func (dbg *Debugger) Start() error {
	if dbg.term == nil {
		return curated.Errorf("debugger: no terminal attached")
	}

	if err := dbg.term.Initialise(); err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	defer dbg.term.CleanUp()

	events := &terminal.ReadEvents{
		Signal: make(chan os.Signal, 1),
		SignalHandler: func(sig os.Signal) error {
			if sig == syscall.SIGINT {
				return curated.Errorf(terminal.UserInterrupt)
			}
			return curated.Errorf(terminal.UserAbort)
		},
	}
	signal.Notify(events.Signal, syscall.SIGINT)
	defer signal.Stop(events.Signal)

	dbg.running = true
	for dbg.running {
		prompt := terminal.Prompt{
			Type:    terminal.PromptTypeCommand,
			Content: dbg.cpu.LastFetch().String(),
		}

		input, err := dbg.term.TermRead(prompt, events)
		if err != nil {
			if curated.Is(err, terminal.UserInterrupt) {
				dbg.printLine(terminal.StyleFeedback, "use QUIT to quit")
				continue
			}
			return err
		}

		if err := dbg.Exec(input); err != nil {
			dbg.printLine(terminal.StyleError, "%v", err)
		}
	}

	return nil
}

// Quit ends the input loop at the next prompt.
func (dbg *Debugger) Quit() {
	dbg.running = false
}
