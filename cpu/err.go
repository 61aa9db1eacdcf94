package cpu

import (
	"errors"

	"github.com/ezrec/gmc4/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrOrgSyntax       = errors.New(f(".org syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrNibbleRange     = errors.New(f("value does not fit a nibble"))
	ErrAddressRange    = errors.New(f("address out of range"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
