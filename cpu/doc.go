// Package cpu implements the processor and assembler for the LS-8 system.
//
// The CPU consists of an 8-bit program counter, a flags register, eight
// 8-bit general-purpose registers (r0-r7, with r7 as the stack pointer),
// an ALU, and 256 bytes of memory shared by the program and a
// downward-growing stack.
//
// Each instruction is one opcode byte followed by zero, one or two operand
// bytes, as encoded in the two high bits of the opcode.
//
// The assembler provides a small assembly language for the LS-8
// instruction set, supporting macros, labels, equates, data bytes and
// compile-time expression evaluation.
package cpu
