// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/gmc4/cpu"
	gio "github.com/ezrec/gmc4/io"
)

func TestRunProgram(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	_, err := emu.Assemble(strings.NewReader("TIA 5\nAO\n"))
	require.NoError(t, err)

	emu.SelectMode(MODE_RUN, 0, false)

	steps := emu.Run(2)
	assert.Equal(2, steps)
	assert.Equal(uint8(5), emu.Cpu.Display)
	assert.Equal(cpu.STATUS_RUNNING, emu.Cpu.Status)
}

func TestSelectModeEdit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.SelectMode(MODE_EDIT, 0, false)

	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)
	assert.False(emu.Tick())
}

func TestTimerClock(t *testing.T) {
	assert := assert.New(t)

	clock := &FastClock{}

	emu := NewEmulator()
	emu.Clock = clock

	// TIA 4; TIMR
	emu.LoadHex("84 EC", 0)
	emu.SelectMode(MODE_RUN, 0, false)
	emu.Run(2)

	assert.Equal(500*time.Millisecond, clock.Slept)
}

func TestKeypadResolvesWait(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	// KA; AO; JUMP 00
	emu.LoadHex("01F00", 0)
	emu.SelectMode(MODE_RUN, 0, false)

	steps := emu.Run(10)
	assert.Equal(1, steps)
	assert.Equal(cpu.STATUS_WAITING, emu.Cpu.Status)

	emu.Keypad.Press(9)
	emu.Run(2)

	assert.Equal(uint8(9), emu.Cpu.A)
	assert.Equal(uint8(9), emu.Cpu.Display)
	assert.Equal(cpu.STATUS_RUNNING, emu.Cpu.Status)
}

func TestAutoKey(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	// KA; AO
	emu.LoadHex("01", 0)
	emu.SelectMode(MODE_RUN, 0, true)
	emu.Run(2)

	assert.Equal(uint8(0), emu.Cpu.Display)
	assert.Equal(cpu.STATUS_RUNNING, emu.Cpu.Status)
}

func TestSounder(t *testing.T) {
	assert := assert.New(t)

	rec := &gio.Recorder{}

	emu := NewEmulator()
	emu.Sounder = rec

	// ENDS; TIA 3; SUND
	emu.LoadHex("E7 83 EB", 0)
	emu.SelectMode(MODE_RUN, 0, false)
	emu.Run(3)

	require.Len(t, rec.Played, 2)
	assert.Equal(gio.Request{Sound: cpu.SOUND_END}, rec.Played[0])
	assert.Equal(gio.Request{Sound: cpu.SOUND_NOTE, Note: 3}, rec.Played[1])

	// Requests are consumed as they are delivered.
	assert.Equal(cpu.SOUND_NONE, emu.Cpu.Sound)
	assert.Equal(uint8(0), emu.Cpu.Note)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	prog, err := emu.Assemble(strings.NewReader("TIY $(MODE_RUN + 1)\n"))
	require.NoError(t, err)

	require.Len(t, prog.Opcodes, 1)
	assert.Equal([]uint8{0xa, 2}, prog.Opcodes[0].Nibbles)
}

func TestLineNo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	_, err := emu.Assemble(strings.NewReader("; demo\nTIA 1\nAO\n"))
	require.NoError(t, err)

	emu.SelectMode(MODE_RUN, 0, false)
	assert.Equal(2, emu.LineNo())

	emu.Tick()
	assert.Equal(3, emu.LineNo())
}

func TestLineNoUnmapped(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.Equal(0, emu.LineNo())

	emu.LoadHex("85", 0)
	assert.Equal(0, emu.LineNo())
}

func TestHardReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Keypad.Press(1)

	_, err := emu.Assemble(strings.NewReader("TIA 5\n"))
	require.NoError(t, err)

	emu.Reset(true)

	assert.Zero(emu.Keypad.Pending())
	assert.Nil(emu.Program)
	assert.Equal(uint8(0xf), emu.Cpu.Mem.Get(0))
}

func TestSoftResetKeepsProgram(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	_, err := emu.Assemble(strings.NewReader("TIA 5\nAO\n"))
	require.NoError(t, err)

	emu.SelectMode(MODE_RUN, 0, false)
	emu.Run(2)

	emu.Reset(false)

	assert.NotNil(emu.Program)
	assert.Equal(uint8(0), emu.Cpu.Pc)
	assert.Equal(uint8(5), emu.Cpu.Display)
}
