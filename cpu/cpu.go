package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"time"

	"github.com/ezrec/gmc4/mem"
)

const (
	LED_COUNT = 7    // Number of binary LEDs on the front panel.
	DSPR_LOW  = 0x5e // Data cell unpacked into LEDs 0-3 by DSPR.
	DSPR_HIGH = 0x5f // Data cell unpacked into LEDs 4-6 by DSPR.

	TIMR_UNIT = 100 * time.Millisecond // Delay unit of the TIMR instruction.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%#v", mem.Size),
	"DATA_BASE":   fmt.Sprintf("%#v", mem.DataBase),
	"LED_COUNT":   fmt.Sprintf("%#v", LED_COUNT),
	"DSPR_LOW":    fmt.Sprintf("%#v", DSPR_LOW),
	"DSPR_HIGH":   fmt.Sprintf("%#v", DSPR_HIGH),
}

// Status is the execution status of the CPU.
type Status uint8

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_RUNNING = Status(0) // running
	STATUS_HALTED  = Status(1) // halted
	STATUS_WAITING = Status(2) // waiting
)

// Sound is a buzzer request code. The CPU only records the most recent
// request; producing audio is the front panel's concern.
type Sound uint8

//go:generate go tool stringer -linecomment -type=Sound
const (
	SOUND_NONE  = Sound(0) // none
	SOUND_END   = Sound(1) // end
	SOUND_ERROR = Sound(2) // error
	SOUND_SHORT = Sound(3) // short
	SOUND_LONG  = Sound(4) // long
	SOUND_NOTE  = Sound(5) // note
)

// Duration returns the nominal length of the sound on the original buzzer.
func (s Sound) Duration() (d time.Duration) {
	switch s {
	case SOUND_END:
		d = 1000 * time.Millisecond
	case SOUND_ERROR:
		d = 800 * time.Millisecond
	case SOUND_SHORT:
		d = 300 * time.Millisecond
	case SOUND_LONG:
		d = 600 * time.Millisecond
	case SOUND_NOTE:
		d = 400 * time.Millisecond
	}
	return
}

// Cpu is the simulation context for the GMC-4 processor and its
// front-panel state. All registers and memory cells hold 4-bit values;
// the program counter wraps modulo the memory size.
//
// A Cpu is not safe for concurrent use. Step, ProvideInput and the
// reset/load operations must be serialized by the caller.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Mem *mem.Memory // Reference to the nibble memory.

	A, B, Y, Z     uint8 // Primary register set.
	A2, B2, Y2, Z2 uint8 // Shadow register set, swapped in by CHNG.
	Pc             uint8 // Program counter.
	Flag           bool  // Condition flag; its meaning is set by the last instruction.

	Display uint8           // Value on the 7-segment readout.
	Led     [LED_COUNT]bool // State of the binary LEDs.
	Sound   Sound           // Most recent buzzer request.
	Note    uint8           // Note selector recorded by SUND (the value of A).

	Status Status // Running, halted, or waiting for a key.

	Steps int // Instructions executed since the last hard reset.

	key      uint8 // Buffered key value.
	keyReady bool  // Set when a key value is buffered.
}

// NewCpu creates a CPU with its own memory, hard-reset to the power-on
// state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Mem: &mem.Memory{},
	}
	cpu.Reset(true)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
//
// A soft reset rewinds the program counter to zero and resumes running;
// memory, registers and panel state are untouched. A hard reset
// additionally fills every memory cell with 0xF, zeroes both register
// sets, sets the flag, and clears the panel and any buffered key.
func (cpu *Cpu) Reset(hard bool) {
	if cpu.Verbose {
		log.Printf("cpu: reset (hard=%v)", hard)
	}

	cpu.Pc = 0
	cpu.Status = STATUS_RUNNING

	if !hard {
		return
	}

	cpu.Mem.Fill(0xf)

	cpu.A, cpu.B, cpu.Y, cpu.Z = 0, 0, 0, 0
	cpu.A2, cpu.B2, cpu.Y2, cpu.Z2 = 0, 0, 0, 0
	cpu.Flag = true

	cpu.Display = 0
	clear(cpu.Led[:])
	cpu.Sound = SOUND_NONE
	cpu.Note = 0

	cpu.Steps = 0
	cpu.key = 0
	cpu.keyReady = false
}

// Halt drives the CPU into the terminal halted state. Only an external
// collaborator can halt the simulation; no opcode does.
func (cpu *Cpu) Halt() {
	cpu.Status = STATUS_HALTED
}

// BeginRun points the program counter at start and resumes running.
//
// When autoKey is set and the first instruction of the run is KA, a
// dummy key value of 0 is buffered so the program does not suspend
// immediately. This mirrors the original hardware's post-reset behavior
// for interactively started runs; it is never applied by Step itself.
func (cpu *Cpu) BeginRun(start uint8, autoKey bool) {
	cpu.Pc = start % mem.Size
	cpu.Status = STATUS_RUNNING

	if autoKey && !cpu.keyReady && Op(cpu.Mem.Get(int(cpu.Pc))) == OP_KA {
		if cpu.Verbose {
			log.Printf("cpu: auto key 0 for KA at %#02x", cpu.Pc)
		}
		cpu.key = 0
		cpu.keyReady = true
	}
}

// ProvideInput buffers a key value, masked to 4 bits, and resumes a CPU
// that is waiting on KA. The value is consumed by the next executed KA
// instruction, not immediately.
func (cpu *Cpu) ProvideInput(value uint8) {
	cpu.key = value & 0xf
	cpu.keyReady = true

	if cpu.Status == STATUS_WAITING {
		cpu.Status = STATUS_RUNNING
	}
}

// fetch reads the nibble at the program counter and advances it.
func (cpu *Cpu) fetch() (value uint8) {
	value = cpu.Mem.Get(int(cpu.Pc))
	cpu.Pc = (cpu.Pc + 1) % mem.Size
	return
}

// Step executes exactly one instruction.
//
// The returned cont is false only when the CPU is halted; a waiting CPU
// reports cont true and does no work until a key arrives. A nonzero
// suspend is the TIMR delay request: the caller owns the passage of
// time and may sleep, yield, or fast-forward before the next Step.
func (cpu *Cpu) Step() (cont bool, suspend time.Duration) {
	switch cpu.Status {
	case STATUS_HALTED:
		return
	case STATUS_WAITING:
		cont = true
		if !cpu.keyReady {
			return
		}
		cpu.Status = STATUS_RUNNING
	}

	pc := cpu.Pc
	op := Op(cpu.fetch())

	if cpu.Verbose {
		text, _ := Disassemble(cpu.Mem, pc)
		log.Printf("cpu: %02x: %v", pc, text)
	}

	switch op {
	case OP_KA:
		// The only suspension point. With no key buffered the program
		// counter is rewound so the next Step retries the KA.
		if cpu.keyReady {
			cpu.A = cpu.key
			cpu.key = 0
			cpu.keyReady = false
			cpu.Flag = false
		} else {
			cpu.Pc = pc
			cpu.Status = STATUS_WAITING
			cpu.Flag = true
		}

	case OP_AO:
		cpu.Display = cpu.A
		cpu.Flag = true

	case OP_CH:
		cpu.A, cpu.B = cpu.B, cpu.A
		cpu.Y, cpu.Z = cpu.Z, cpu.Y
		cpu.Flag = true

	case OP_CY:
		cpu.A, cpu.Y = cpu.Y, cpu.A
		cpu.Flag = true

	case OP_AM:
		cpu.Mem.Set(mem.DataBase+int(cpu.Y), cpu.A)
		cpu.Flag = true

	case OP_MA:
		cpu.A = cpu.Mem.Get(mem.DataBase + int(cpu.Y))
		cpu.Flag = true

	case OP_MPLUS:
		sum := int(cpu.A) + int(cpu.Mem.Get(mem.DataBase+int(cpu.Y)))
		cpu.Flag = sum > 0xf
		cpu.A = uint8(sum) & 0xf

	case OP_MMINUS:
		diff := int(cpu.A) - int(cpu.Mem.Get(mem.DataBase+int(cpu.Y)))
		cpu.Flag = diff < 0
		cpu.A = uint8(diff) & 0xf

	case OP_TIA:
		cpu.A = cpu.fetch()
		cpu.Flag = true

	case OP_AIA:
		sum := int(cpu.A) + int(cpu.fetch())
		cpu.Flag = sum > 0xf
		cpu.A = uint8(sum) & 0xf

	case OP_TIY:
		cpu.Y = cpu.fetch()
		cpu.Flag = true

	case OP_AIY:
		sum := int(cpu.Y) + int(cpu.fetch())
		cpu.Flag = sum > 0xf
		cpu.Y = uint8(sum) & 0xf

	case OP_CIA:
		cpu.Flag = cpu.A != cpu.fetch()

	case OP_CIY:
		cpu.Flag = cpu.Y != cpu.fetch()

	case OP_EXT:
		suspend = cpu.ext(ExtOp(cpu.fetch()))

	case OP_JUMP:
		hi := cpu.fetch()
		lo := cpu.fetch()
		if cpu.Flag {
			cpu.Pc = (hi<<4 | lo) % mem.Size
		}
		cpu.Flag = true
	}

	cpu.A &= 0xf
	cpu.B &= 0xf
	cpu.Y &= 0xf
	cpu.Z &= 0xf

	cpu.Steps += 1

	cont = cpu.Status != STATUS_HALTED

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	flag := 0
	if cpu.Flag {
		flag = 1
	}

	text = fmt.Sprintf("pc:%02X a:%X b:%X y:%X z:%X f:%d disp:%X status:%v",
		cpu.Pc, cpu.A, cpu.B, cpu.Y, cpu.Z, flag, cpu.Display, cpu.Status)

	return
}
