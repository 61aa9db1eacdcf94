package cpu

// Op is a primary opcode, the nibble fetched at the program counter.
type Op uint8

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_KA     = Op(0x0) // KA
	OP_AO     = Op(0x1) // AO
	OP_CH     = Op(0x2) // CH
	OP_CY     = Op(0x3) // CY
	OP_AM     = Op(0x4) // AM
	OP_MA     = Op(0x5) // MA
	OP_MPLUS  = Op(0x6) // M+
	OP_MMINUS = Op(0x7) // M-
	OP_TIA    = Op(0x8) // TIA
	OP_AIA    = Op(0x9) // AIA
	OP_TIY    = Op(0xa) // TIY
	OP_AIY    = Op(0xb) // AIY
	OP_CIA    = Op(0xc) // CIA
	OP_CIY    = Op(0xd) // CIY
	OP_EXT    = Op(0xe) // EXT
	OP_JUMP   = Op(0xf) // JUMP
)

// ExtOp is an extended opcode, the nibble following OP_EXT.
type ExtOp uint8

//go:generate go tool stringer -linecomment -type=ExtOp
const (
	EXT_RSTO     = ExtOp(0x0) // RSTO
	EXT_SETR     = ExtOp(0x1) // SETR
	EXT_RSTR     = ExtOp(0x2) // RSTR
	EXT_NONE     = ExtOp(0x3) // NONE
	EXT_CMPL     = ExtOp(0x4) // CMPL
	EXT_CHNG     = ExtOp(0x5) // CHNG
	EXT_SIFT     = ExtOp(0x6) // SIFT
	EXT_ENDS     = ExtOp(0x7) // ENDS
	EXT_ERRS     = ExtOp(0x8) // ERRS
	EXT_SHTS     = ExtOp(0x9) // SHTS
	EXT_LONS     = ExtOp(0xa) // LONS
	EXT_SUND     = ExtOp(0xb) // SUND
	EXT_TIMR     = ExtOp(0xc) // TIMR
	EXT_DSPR     = ExtOp(0xd) // DSPR
	EXT_DEMMINUS = ExtOp(0xe) // DEM-
	EXT_DEMPLUS  = ExtOp(0xf) // DEM+
)

// Operands returns the number of operand nibbles that follow the opcode.
func (op Op) Operands() (count int) {
	switch op {
	case OP_TIA, OP_AIA, OP_TIY, OP_AIY, OP_CIA, OP_CIY, OP_EXT:
		count = 1
	case OP_JUMP:
		count = 2
	}
	return
}

// opMap maps primary mnemonics to opcodes for the assembler.
var opMap = map[string]Op{
	OP_KA.String():     OP_KA,
	OP_AO.String():     OP_AO,
	OP_CH.String():     OP_CH,
	OP_CY.String():     OP_CY,
	OP_AM.String():     OP_AM,
	OP_MA.String():     OP_MA,
	OP_MPLUS.String():  OP_MPLUS,
	OP_MMINUS.String(): OP_MMINUS,
	OP_TIA.String():    OP_TIA,
	OP_AIA.String():    OP_AIA,
	OP_TIY.String():    OP_TIY,
	OP_AIY.String():    OP_AIY,
	OP_CIA.String():    OP_CIA,
	OP_CIY.String():    OP_CIY,
	OP_EXT.String():    OP_EXT,
	OP_JUMP.String():   OP_JUMP,
}

// extMap maps extended mnemonics to sub-opcodes for the assembler.
var extMap = map[string]ExtOp{
	EXT_RSTO.String():     EXT_RSTO,
	EXT_SETR.String():     EXT_SETR,
	EXT_RSTR.String():     EXT_RSTR,
	EXT_NONE.String():     EXT_NONE,
	EXT_CMPL.String():     EXT_CMPL,
	EXT_CHNG.String():     EXT_CHNG,
	EXT_SIFT.String():     EXT_SIFT,
	EXT_ENDS.String():     EXT_ENDS,
	EXT_ERRS.String():     EXT_ERRS,
	EXT_SHTS.String():     EXT_SHTS,
	EXT_LONS.String():     EXT_LONS,
	EXT_SUND.String():     EXT_SUND,
	EXT_TIMR.String():     EXT_TIMR,
	EXT_DSPR.String():     EXT_DSPR,
	EXT_DEMMINUS.String(): EXT_DEMMINUS,
	EXT_DEMPLUS.String():  EXT_DEMPLUS,
}
