package cpu

import (
	"time"

	"github.com/ezrec/gmc4/mem"
)

// ext executes a single extended instruction. Every extended instruction
// sets the flag, except SIFT which reports the parity of the bit shifted
// out. TIMR requests a real-time pause by returning a nonzero suspend
// duration; it never blocks here.
func (cpu *Cpu) ext(sub ExtOp) (suspend time.Duration) {
	cpu.Flag = true

	switch sub {
	case EXT_RSTO:
		cpu.Display = 0

	case EXT_SETR:
		led := int(cpu.Y) & 0x7
		if led < LED_COUNT {
			cpu.Led[led] = true
		}

	case EXT_RSTR:
		led := int(cpu.Y) & 0x7
		if led < LED_COUNT {
			cpu.Led[led] = false
		}

	case EXT_NONE:
		// Unused slot in the extended table. Defined as a no-op.

	case EXT_CMPL:
		cpu.A = ^cpu.A & 0xf

	case EXT_CHNG:
		cpu.A, cpu.A2 = cpu.A2, cpu.A
		cpu.B, cpu.B2 = cpu.B2, cpu.B
		cpu.Y, cpu.Y2 = cpu.Y2, cpu.Y
		cpu.Z, cpu.Z2 = cpu.Z2, cpu.Z

	case EXT_SIFT:
		cpu.Flag = cpu.A&0x1 == 0
		cpu.A >>= 1

	case EXT_ENDS:
		cpu.Sound = SOUND_END

	case EXT_ERRS:
		cpu.Sound = SOUND_ERROR

	case EXT_SHTS:
		cpu.Sound = SOUND_SHORT

	case EXT_LONS:
		cpu.Sound = SOUND_LONG

	case EXT_SUND:
		// Notes are selected by A in 1..E; other values are silent.
		if cpu.A >= 0x1 && cpu.A <= 0xe {
			cpu.Sound = SOUND_NOTE
			cpu.Note = cpu.A
		}

	case EXT_TIMR:
		suspend = time.Duration(cpu.A+1) * TIMR_UNIT

	case EXT_DSPR:
		low := cpu.Mem.Get(DSPR_LOW)
		high := cpu.Mem.Get(DSPR_HIGH) & 0x7
		for n := 0; n < 4; n++ {
			cpu.Led[n] = low&(1<<n) != 0
		}
		for n := 0; n < 3; n++ {
			cpu.Led[n+4] = high&(1<<n) != 0
		}

	case EXT_DEMMINUS:
		// Decimal subtract: a stored value above 9 is a carried BCD
		// digit whose true value is six less.
		addr := mem.DataBase + int(cpu.Y)
		value := int(cpu.Mem.Get(addr))
		if value > 9 {
			value -= 6
		}
		result := value - int(cpu.A)
		if result < 0 {
			result = (result + 10) & 0xf
		}
		cpu.Mem.Set(addr, uint8(result))
		cpu.Y = (cpu.Y - 1) & 0xf

	case EXT_DEMPLUS:
		// Decimal add: sums above 9 are pushed into the carried BCD
		// range by adding six.
		addr := mem.DataBase + int(cpu.Y)
		result := int(cpu.Mem.Get(addr)) + int(cpu.A)
		if result > 9 {
			result += 6
		}
		cpu.Mem.Set(addr, uint8(result)&0xf)
		cpu.Y = (cpu.Y - 1) & 0xf
	}

	return
}
