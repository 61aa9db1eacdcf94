package cpu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/gmc4/mem"
)

// loadCpu returns a hard-reset CPU with a hex-text program at address 0.
func loadCpu(text string) (cpu *Cpu) {
	cpu = NewCpu()
	cpu.Mem.LoadText(text, 0)
	return
}

// stepN steps the CPU n times, ignoring suspend requests.
func stepN(cpu *Cpu, n int) (cont bool) {
	cont = true
	for range n {
		cont, _ = cpu.Step()
	}
	return
}

func TestHardReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.A, cpu.B, cpu.Y, cpu.Z = 1, 2, 3, 4
	cpu.A2, cpu.Pc, cpu.Display = 5, 6, 7
	cpu.Led[0] = true
	cpu.Sound = SOUND_END
	cpu.Status = STATUS_HALTED
	cpu.ProvideInput(9)

	cpu.Reset(true)

	for n := range mem.Size {
		assert.Equal(uint8(0xf), cpu.Mem.Get(n), "cell %d", n)
	}
	assert.Equal(uint8(0), cpu.A)
	assert.Equal(uint8(0), cpu.B)
	assert.Equal(uint8(0), cpu.Y)
	assert.Equal(uint8(0), cpu.Z)
	assert.Equal(uint8(0), cpu.A2)
	assert.Equal(uint8(0), cpu.Pc)
	assert.True(cpu.Flag)
	assert.Equal(uint8(0), cpu.Display)
	assert.Equal([LED_COUNT]bool{}, cpu.Led)
	assert.Equal(SOUND_NONE, cpu.Sound)
	assert.Equal(STATUS_RUNNING, cpu.Status)
	assert.False(cpu.keyReady)
}

func TestSoftReset(t *testing.T) {
	assert := assert.New(t)

	cpu := loadCpu("85")
	stepN(cpu, 1)
	assert.Equal(uint8(5), cpu.A)
	assert.Equal(uint8(2), cpu.Pc)

	cpu.Reset(false)

	// Only the program counter rewinds; registers and memory survive.
	assert.Equal(uint8(0), cpu.Pc)
	assert.Equal(uint8(5), cpu.A)
	assert.Equal(uint8(8), cpu.Mem.Get(0))
	assert.Equal(STATUS_RUNNING, cpu.Status)
}

func TestTransferAndOutput(t *testing.T) {
	assert := assert.New(t)

	// TIA 5; AO
	cpu := loadCpu("851")
	cont := stepN(cpu, 2)

	assert.True(cont)
	assert.Equal(uint8(5), cpu.A)
	assert.Equal(uint8(5), cpu.Display)
	assert.True(cpu.Flag)
	assert.Equal(uint8(3), cpu.Pc)
}

func TestImmediateArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
		a    uint8
		y    uint8
		flag bool
	}){
		{"aia_overflow", "8F92", 1, 0, true},
		{"aia_plain", "83 94", 7, 0, false},
		{"aiy_overflow", "AF B3", 0, 2, true},
		{"aiy_plain", "A1 B2", 0, 3, false},
		{"aia_edge", "88 97", 15, 0, false},
	}

	for _, entry := range table {
		cpu := loadCpu(entry.text)
		stepN(cpu, 2)

		assert.Equal(entry.a, cpu.A, entry.name)
		assert.Equal(entry.y, cpu.Y, entry.name)
		assert.Equal(entry.flag, cpu.Flag, entry.name)
	}
}

func TestCompareImmediate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
		flag bool
	}){
		{"cia_equal", "85 C5", false},
		{"cia_differ", "85 C6", true},
		{"ciy_equal", "A3 D3", false},
		{"ciy_differ", "A3 D0", true},
	}

	for _, entry := range table {
		cpu := loadCpu(entry.text)
		stepN(cpu, 2)

		assert.Equal(entry.flag, cpu.Flag, entry.name)
	}
}

func TestExchange(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.A, cpu.B, cpu.Y, cpu.Z = 1, 2, 3, 4

	// CH
	cpu.Mem.LoadText("23", 0)
	stepN(cpu, 1)
	assert.Equal([4]uint8{2, 1, 4, 3}, [4]uint8{cpu.A, cpu.B, cpu.Y, cpu.Z})
	assert.True(cpu.Flag)

	// CY
	stepN(cpu, 1)
	assert.Equal([4]uint8{4, 1, 2, 3}, [4]uint8{cpu.A, cpu.B, cpu.Y, cpu.Z})
	assert.True(cpu.Flag)
}

func TestDataMemory(t *testing.T) {
	assert := assert.New(t)

	// TIY 3; TIA 9; AM; TIA 0; MA
	cpu := loadCpu("A3 89 4 80 5")
	stepN(cpu, 3)
	assert.Equal(uint8(9), cpu.Mem.Get(mem.DataBase+3))

	stepN(cpu, 2)
	assert.Equal(uint8(9), cpu.A)
	assert.True(cpu.Flag)
}

func TestMemoryArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		cell uint8 // value at 0x50
		a    uint8
		op   string
		want uint8
		flag bool
	}){
		{"add_plain", 3, 4, "6", 7, false},
		{"add_overflow", 9, 9, "6", 2, true},
		{"sub_plain", 3, 9, "7", 6, false},
		{"sub_borrow", 9, 3, "7", 10, true},
	}

	for _, entry := range table {
		cpu := loadCpu(entry.op)
		cpu.Mem.Set(mem.DataBase, entry.cell)
		cpu.A = entry.a
		stepN(cpu, 1)

		assert.Equal(entry.want, cpu.A, entry.name)
		assert.Equal(entry.flag, cpu.Flag, entry.name)
	}
}

func TestJump(t *testing.T) {
	assert := assert.New(t)

	// Flag set: JUMP 0x1A lands.
	cpu := loadCpu("F1A")
	stepN(cpu, 1)
	assert.Equal(uint8(0x1a), cpu.Pc)
	assert.True(cpu.Flag)

	// Flag clear: fall through, but the flag is set again regardless.
	cpu = loadCpu("85 C5 F1A")
	stepN(cpu, 3)
	assert.Equal(uint8(7), cpu.Pc)
	assert.True(cpu.Flag)
}

func TestJumpWraps(t *testing.T) {
	assert := assert.New(t)

	// Encoded targets above 0x7F wrap around the memory.
	cpu := loadCpu("FFF")
	stepN(cpu, 1)
	assert.Equal(uint8(0x7f), cpu.Pc)
}

func TestInputWait(t *testing.T) {
	assert := assert.New(t)

	cpu := loadCpu("0")

	cont := stepN(cpu, 1)
	assert.True(cont)
	assert.Equal(STATUS_WAITING, cpu.Status)
	assert.True(cpu.Flag)
	assert.Equal(uint8(0), cpu.Pc)

	// Waiting without a key is a no-op.
	cont = stepN(cpu, 1)
	assert.True(cont)
	assert.Equal(STATUS_WAITING, cpu.Status)

	cpu.ProvideInput(9)
	assert.Equal(STATUS_RUNNING, cpu.Status)
	assert.Equal(uint8(0), cpu.A)

	cont = stepN(cpu, 1)
	assert.True(cont)
	assert.Equal(uint8(9), cpu.A)
	assert.False(cpu.Flag)
	assert.Equal(STATUS_RUNNING, cpu.Status)
	assert.Equal(uint8(1), cpu.Pc)
}

func TestInputBuffered(t *testing.T) {
	assert := assert.New(t)

	// A key buffered before KA executes is consumed without waiting.
	cpu := loadCpu("0")
	cpu.ProvideInput(0x1c) // masked to 0xc

	stepN(cpu, 1)
	assert.Equal(uint8(0xc), cpu.A)
	assert.False(cpu.Flag)
	assert.Equal(STATUS_RUNNING, cpu.Status)
}

func TestBeginRunAutoKey(t *testing.T) {
	assert := assert.New(t)

	// Opt-in: the leading KA consumes a dummy key of 0.
	cpu := loadCpu("01")
	cpu.BeginRun(0, true)
	stepN(cpu, 1)
	assert.Equal(STATUS_RUNNING, cpu.Status)
	assert.False(cpu.Flag)
	assert.Equal(uint8(0), cpu.A)

	// Default: the leading KA suspends.
	cpu = loadCpu("01")
	cpu.BeginRun(0, false)
	stepN(cpu, 1)
	assert.Equal(STATUS_WAITING, cpu.Status)

	// No shim when the first instruction is not KA.
	cpu = loadCpu("85 0")
	cpu.BeginRun(0, true)
	stepN(cpu, 2)
	assert.Equal(STATUS_WAITING, cpu.Status)
}

func TestHalt(t *testing.T) {
	assert := assert.New(t)

	cpu := loadCpu("851")
	cpu.Halt()

	cont, suspend := cpu.Step()
	assert.False(cont)
	assert.Zero(suspend)
	assert.Equal(uint8(0), cpu.Pc)
	assert.Equal(uint8(0), cpu.A)
}

func TestTimerSuspend(t *testing.T) {
	assert := assert.New(t)

	// TIA 4; TIMR
	cpu := loadCpu("84 EC")
	stepN(cpu, 1)

	cont, suspend := cpu.Step()
	assert.True(cont)
	assert.Equal(500*time.Millisecond, suspend)
	assert.True(cpu.Flag)
}

func TestPcWraps(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Mem.Set(mem.Size-1, uint8(OP_CH))
	cpu.Pc = mem.Size - 1

	stepN(cpu, 1)
	assert.Equal(uint8(0), cpu.Pc)
}

func TestSnapshot(t *testing.T) {
	assert := assert.New(t)

	cpu := loadCpu("85 1 E1")
	cpu.Y = 2
	stepN(cpu, 3)

	snap := cpu.Snapshot()
	assert.Equal(uint8(5), snap.A)
	assert.Equal(uint8(5), snap.Display)
	assert.True(snap.Led[2])
	assert.False(snap.Halted)
	assert.False(snap.Waiting)
	assert.Equal(uint8(5), snap.Pc)

	// Mutating the snapshot does not touch the CPU.
	snap.Led[0] = true
	assert.False(cpu.Led[0])
}
