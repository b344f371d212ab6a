package cpu

import (
	"fmt"
	"slices"
)

// Opcode is an instruction byte.
//
// The encoding carries its own arity: bit 7 marks a two operand
// instruction, bit 6 a one operand instruction. Bit 5 marks an ALU
// operation, and bit 4 an instruction that writes the program counter.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_HLT  = Opcode(0b00000001) // HLT
	OP_RET  = Opcode(0b00010001) // RET
	OP_PUSH = Opcode(0b01000101) // PUSH
	OP_POP  = Opcode(0b01000110) // POP
	OP_PRN  = Opcode(0b01000111) // PRN
	OP_CALL = Opcode(0b01010000) // CALL
	OP_JMP  = Opcode(0b01010100) // JMP
	OP_JEQ  = Opcode(0b01010101) // JEQ
	OP_JNE  = Opcode(0b01010110) // JNE
	OP_NOT  = Opcode(0b01101001) // NOT
	OP_LDI  = Opcode(0b10000010) // LDI
	OP_ADD  = Opcode(0b10100000) // ADD
	OP_MUL  = Opcode(0b10100010) // MUL
	OP_MOD  = Opcode(0b10100100) // MOD
	OP_CMP  = Opcode(0b10100111) // CMP
	OP_AND  = Opcode(0b10101000) // AND
	OP_OR   = Opcode(0b10101010) // OR
	OP_XOR  = Opcode(0b10101011) // XOR
	OP_SHL  = Opcode(0b10101100) // SHL
	OP_SHR  = Opcode(0b10101101) // SHR
)

const (
	OPCODE_TWO_OPERANDS = 0b1000_0000 // Two operand instruction.
	OPCODE_ONE_OPERAND  = 0b0100_0000 // One operand instruction.
	OPCODE_ALU          = 0b0010_0000 // ALU operation.
	OPCODE_SETS_PC      = 0b0001_0000 // Writes the program counter.
)

// Opcodes is the complete instruction set, in encoding order.
var Opcodes = []Opcode{
	OP_HLT, OP_RET,
	OP_PUSH, OP_POP, OP_PRN,
	OP_CALL, OP_JMP, OP_JEQ, OP_JNE,
	OP_NOT,
	OP_LDI,
	OP_ADD, OP_MUL, OP_MOD, OP_CMP,
	OP_AND, OP_OR, OP_XOR, OP_SHL, OP_SHR,
}

// aluMap maps ALU instructions to their ALU operation.
var aluMap = map[Opcode]AluOp{
	OP_ADD: ALU_OP_ADD,
	OP_MUL: ALU_OP_MUL,
	OP_MOD: ALU_OP_MOD,
	OP_AND: ALU_OP_AND,
	OP_OR:  ALU_OP_OR,
	OP_XOR: ALU_OP_XOR,
	OP_NOT: ALU_OP_NOT,
	OP_SHL: ALU_OP_SHL,
	OP_SHR: ALU_OP_SHR,
	OP_CMP: ALU_OP_CMP,
}

// Valid returns true if the opcode is a defined instruction.
func (op Opcode) Valid() bool {
	return slices.Contains(Opcodes, op)
}

// Operands returns the number of operand bytes that follow the opcode.
func (op Opcode) Operands() int {
	switch {
	case op&OPCODE_TWO_OPERANDS != 0:
		return 2
	case op&OPCODE_ONE_OPERAND != 0:
		return 1
	}
	return 0
}

// Length returns the instruction length in bytes, including the opcode.
func (op Opcode) Length() int {
	return 1 + op.Operands()
}

// IsAlu returns true if the opcode is executed by the ALU.
func (op Opcode) IsAlu() bool {
	return op&OPCODE_ALU != 0
}

// SetsPc returns true if the opcode may reposition the program counter.
func (op Opcode) SetsPc() bool {
	return op&OPCODE_SETS_PC != 0
}

// AluOp returns the ALU operation of an ALU instruction.
func (op Opcode) AluOp() (alu AluOp, ok bool) {
	alu, ok = aluMap[op]
	return
}

// Code is a decoded instruction: the opcode and its operand bytes.
// Operands beyond the opcode's arity are zero.
type Code struct {
	Opcode Opcode
	A      uint8
	B      uint8
}

// Length returns the length of the instruction in bytes.
func (code Code) Length() int {
	return code.Opcode.Length()
}

// Bytes returns the memory encoding of the instruction.
func (code Code) Bytes() (bytes []uint8) {
	bytes = []uint8{uint8(code.Opcode), code.A, code.B}
	return bytes[:code.Length()]
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	if !code.Opcode.Valid() {
		return fmt.Sprintf("DB 0x%02X", uint8(code.Opcode))
	}

	switch {
	case code.Opcode == OP_LDI:
		return fmt.Sprintf("%v R%d,0x%02X", code.Opcode, code.A, code.B)
	case code.Opcode.Operands() == 2:
		return fmt.Sprintf("%v R%d,R%d", code.Opcode, code.A, code.B)
	case code.Opcode.Operands() == 1:
		return fmt.Sprintf("%v R%d", code.Opcode, code.A)
	}

	return code.Opcode.String()
}
