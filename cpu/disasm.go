package cpu

import (
	"fmt"

	"github.com/ezrec/gmc4/mem"
)

// Disassemble renders the instruction at addr as mnemonic text and
// reports the number of nibbles it occupies. Operand fetches wrap around
// the end of memory, matching the fetch behavior of Step.
func Disassemble(m *mem.Memory, addr uint8) (text string, size int) {
	op := Op(m.Get(int(addr)))
	size = 1 + op.Operands()

	operand := func(n int) uint8 {
		return m.Get(int((addr + uint8(n)) % mem.Size))
	}

	switch op {
	case OP_EXT:
		text = ExtOp(operand(1)).String()
	case OP_JUMP:
		text = fmt.Sprintf("%v %02X", op, operand(1)<<4|operand(2))
	default:
		switch op.Operands() {
		case 0:
			text = op.String()
		case 1:
			text = fmt.Sprintf("%v %X", op, operand(1))
		}
	}

	return
}
