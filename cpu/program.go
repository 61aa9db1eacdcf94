package cpu

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/gmc4/mem"
)

// Opcode represents one assembled source line: its location, source
// words, and the nibbles it generated.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      int      // Memory address of the first nibble.
	Words     []string // Source words after expansion.
	Nibbles   []uint8  // Generated nibble values.
	LinkLabel string   // Jump label resolved after parsing.
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode covering a memory address.
type Debug struct {
	*Opcode
	Index int
}

func (prog *Program) Debug(addr uint8) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+len(op.Nibbles) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Addr,
			}
			break
		}
	}

	return
}

// Nibbles iterates over every generated nibble with its address.
func (prog *Program) Nibbles() iter.Seq2[int, uint8] {
	return func(yield func(addr int, value uint8) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Nibbles {
				if !yield(op.Addr+n, value) {
					return
				}
			}
		}
	}
}

// LoadInto writes the program into memory at its assembled addresses.
func (prog *Program) LoadInto(m *mem.Memory) {
	for addr, value := range prog.Nibbles() {
		m.Set(addr, value)
	}
}

// Size returns the first address past the end of the program.
func (prog *Program) Size() (size int) {
	for _, op := range prog.Opcodes {
		if end := op.Addr + len(op.Nibbles); end > size {
			size = end
		}
	}

	return
}

// Listing renders the program as an address/nibbles/source listing.
func (prog *Program) Listing() (text string) {
	var sb strings.Builder

	for _, op := range prog.Opcodes {
		var hex strings.Builder
		for _, value := range op.Nibbles {
			fmt.Fprintf(&hex, "%X", value)
		}
		fmt.Fprintf(&sb, "%02X: %-4s %v\n", op.Addr, hex.String(), strings.Join(op.Words, " "))
	}

	text = sb.String()

	return
}
