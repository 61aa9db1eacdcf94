// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/gmc4/mem"
)

// Assembler is a single pass assembler for the GMC-4 instruction set.
//
// Each source line holds at most one instruction: a primary mnemonic with
// its operand nibbles, or a bare extended mnemonic. Lines may be prefixed
// with `label:` definitions, `;` starts a comment, `.equ NAME VALUE`
// defines a constant, `.org VALUE` moves the assembly address, and
// `$( ... )` evaluates a starlark expression at assembly time.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to addresses.
	Equate    map[string]string // Map of equates.

	addr int // Next assembly address.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 0, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	err = nil

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine expands a single source line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Fields(line), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	// .org VALUE
	if words[0] == ".org" {
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var addr int
		addr, err = asm.valueOf(asm.expand(words[1]))
		if err != nil {
			return
		}
		if addr < 0 || addr >= mem.Size {
			err = ErrAddressRange
			return
		}
		asm.addr = addr
		words = words[:0]
		return
	}

	for n, word := range words {
		words[n] = asm.expand(word)
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.addr
		words = words[1:]
	}

	return
}

// expand replaces a word with its equate value, if one is defined.
func (asm *Assembler) expand(word string) string {
	equate, ok := asm.Equate[word]
	if ok {
		return equate
	}
	return word
}

// nibbleOf parses an operand word as a single nibble value.
func (asm *Assembler) nibbleOf(word string) (value uint8, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if v < 0 || v > 0xf {
		err = ErrNibbleRange
		return
	}
	value = uint8(v)

	return
}

// parseWords assembles one expanded instruction line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	op := Opcode{
		LineNo: lineno,
		Addr:   asm.addr,
		Words:  slices.Clone(words),
	}

	mnemonic := strings.ToUpper(words[0])
	args := words[1:]

	sub, is_ext := extMap[mnemonic]
	primary, is_op := opMap[mnemonic]

	switch {
	case is_ext:
		if len(args) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		op.Nibbles = []uint8{uint8(OP_EXT), uint8(sub)}

	case is_op && primary == OP_EXT:
		// EXT n selects an extended instruction by number.
		if len(args) != 1 {
			err = ErrOperandMissing
			return
		}
		var value uint8
		value, err = asm.nibbleOf(args[0])
		if err != nil {
			return
		}
		op.Nibbles = []uint8{uint8(OP_EXT), value}

	case is_op && primary == OP_JUMP:
		if len(args) != 1 {
			err = ErrOperandMissing
			return
		}
		target, found := asm.Label[args[0]]
		switch {
		case found:
			op.Nibbles = []uint8{uint8(OP_JUMP), uint8(target >> 4), uint8(target & 0xf)}
		default:
			var value int
			value, err = asm.valueOf(args[0])
			if err != nil {
				// Not a number; assume a forward label reference.
				err = nil
				op.LinkLabel = args[0]
				op.Nibbles = []uint8{uint8(OP_JUMP), 0, 0}
				break
			}
			if value < 0 || value >= mem.Size {
				err = ErrAddressRange
				return
			}
			op.Nibbles = []uint8{uint8(OP_JUMP), uint8(value >> 4), uint8(value & 0xf)}
		}

	case is_op:
		switch primary.Operands() {
		case 0:
			if len(args) != 0 {
				err = ErrOpcodeExtraArgs
				return
			}
			op.Nibbles = []uint8{uint8(primary)}
		case 1:
			if len(args) != 1 {
				err = ErrOperandMissing
				return
			}
			var value uint8
			value, err = asm.nibbleOf(args[0])
			if err != nil {
				return
			}
			op.Nibbles = []uint8{uint8(primary), value}
		}

	default:
		err = ErrOpcodeInvalid
		return
	}

	if asm.addr+len(op.Nibbles) > mem.Size {
		err = ErrAddressRange
		return
	}

	asm.addr += len(op.Nibbles)
	asm.Opcode = append(asm.Opcode, op)

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.addr = 0

	asm.Equate = maps.Clone(_cpu_defines)
	asm.Equate["LINENO"] = "0"
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		target, ok := asm.Label[op.LinkLabel]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		op.Nibbles[1] = uint8(target >> 4)
		op.Nibbles[2] = uint8(target & 0xf)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
