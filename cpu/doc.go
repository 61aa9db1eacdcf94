// Package cpu implements the processor core and assembler for the GMC-4
// 4-bit microcomputer.
//
// The processor consists of four 4-bit registers (A, B, Y, Z) with a full
// shadow set, a 7-bit program counter, and a single condition flag whose
// meaning is redefined by each instruction. Programs live in a 128-cell
// nibble memory; the 16 primary opcodes and the 16 extended opcodes
// reached through EXT are each dispatched by an exhaustive switch.
//
// The assembler provides a line-oriented assembly language for the GMC-4
// instruction set, supporting labels, equates, origin directives, and
// compile-time expression evaluation.
package cpu
