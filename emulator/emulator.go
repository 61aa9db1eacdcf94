// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives the GMC-4 CPU core on behalf of a host front
// end. It owns the wiring between the CPU and the front-panel devices:
// keys buffered on the keypad resolve KA waits, buzzer requests are
// handed to a Sounder, and TIMR pauses go through a pluggable Clock so
// hosts can sleep, yield, or fast-forward.
package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"time"

	"github.com/ezrec/gmc4/cpu"
	"github.com/ezrec/gmc4/internal"
	gio "github.com/ezrec/gmc4/io"
)

// Mode is the operating mode chosen by the first key press after a
// reset: 0 selects memory editing, 1 selects program run.
type Mode uint8

const (
	MODE_EDIT = Mode(0)
	MODE_RUN  = Mode(1)
)

var _emulator_defines = map[string]string{
	"MODE_EDIT": fmt.Sprintf("%#v", uint8(MODE_EDIT)),
	"MODE_RUN":  fmt.Sprintf("%#v", uint8(MODE_RUN)),
}

// Clock owns the passage of real time for TIMR pauses.
type Clock interface {
	// Sleep pauses for the requested duration.
	Sleep(d time.Duration)
}

// RealClock sleeps on the wall clock.
type RealClock struct{}

func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// FastClock accumulates requested delays without sleeping, for tests
// and fast-forward runs.
type FastClock struct {
	Slept time.Duration
}

func (fc *FastClock) Sleep(d time.Duration) { fc.Slept += d }

// Emulator state. CPU + front-panel devices.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded listing, if assembled.

	Keypad  gio.Keypad  // Buffered key presses from the panel.
	Sounder gio.Sounder // Sink for buzzer requests.
	Clock   Clock       // Time source for TIMR pauses.
}

// NewEmulator creates an emulator with a hard-reset CPU, a silent
// buzzer, and a wall-clock timer.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Sounder: gio.Silent{},
		Clock:   RealClock{},
	}

	return
}

// Defines returns an iterator over all of the assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset resets the CPU; a hard reset also discards buffered key presses
// and forgets the loaded listing.
func (emu *Emulator) Reset(hard bool) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(hard)

	if hard {
		emu.Keypad.Reset()
		emu.Program = nil
	}
}

// SelectMode applies the mode key pressed after a reset. Edit mode
// halts the processor so the panel can edit memory directly; run mode
// begins execution at start. autoKey opts into the dummy key for a
// program whose first instruction is KA.
func (emu *Emulator) SelectMode(mode Mode, start uint8, autoKey bool) {
	switch mode {
	case MODE_EDIT:
		emu.Cpu.Halt()
	case MODE_RUN:
		emu.Cpu.BeginRun(start, autoKey)
	}
}

// LoadProgram loads an assembled program into memory and keeps the
// listing for line-mapped diagnostics.
func (emu *Emulator) LoadProgram(prog *cpu.Program) {
	emu.Program = prog
	prog.LoadInto(emu.Cpu.Mem)
}

// LoadHex loads a hex-text program at start.
func (emu *Emulator) LoadHex(text string, start int) {
	emu.Cpu.Mem.LoadText(text, start)
}

// Assemble parses assembly source, with the emulator's defines
// available as equates, and loads the result.
func (emu *Emulator) Assemble(input io.Reader) (prog *cpu.Program, err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err = asm.Parse(input)
	if err != nil {
		return
	}

	emu.LoadProgram(prog)

	return
}

// LineNo returns the source line number for the instruction at the
// program counter, or 0 when no listing covers it.
func (emu *Emulator) LineNo() (lineno int) {
	if emu.Program == nil {
		return
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode != nil {
		lineno = dbg.LineNo
	}

	return
}

// Tick performs a single tick of the emulator: resolve a pending input
// wait from the keypad, step the CPU once, pay out any TIMR pause on
// the clock, and deliver any buzzer request. It reports false only when
// the CPU has halted.
func (emu *Emulator) Tick() (cont bool) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Status == cpu.STATUS_WAITING {
		if key, ok := emu.Keypad.Poll(); ok {
			emu.Cpu.ProvideInput(key)
		}
	}

	cont, suspend := emu.Cpu.Step()

	if suspend > 0 {
		clock := emu.Clock
		if clock == nil {
			clock = RealClock{}
		}
		clock.Sleep(suspend)
	}

	if emu.Cpu.Sound != cpu.SOUND_NONE {
		if emu.Sounder != nil {
			emu.Sounder.Play(emu.Cpu.Sound, emu.Cpu.Note)
		}
		// The request is consumed; the panel owns its duration.
		emu.Cpu.Sound = cpu.SOUND_NONE
		emu.Cpu.Note = 0
	}

	return
}

// Run ticks the emulator until the CPU halts, suspends on input with no
// key buffered, or exhausts the tick budget. It reports the number of
// ticks performed.
func (emu *Emulator) Run(budget int) (steps int) {
	for range budget {
		cont := emu.Tick()
		steps++

		if !cont {
			return
		}
		if emu.Cpu.Status == cpu.STATUS_WAITING && emu.Keypad.Pending() == 0 {
			return
		}
	}

	return
}
